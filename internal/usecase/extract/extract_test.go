package extract

import (
	"strings"
	"testing"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/xmltree"
)

func mustTree(t *testing.T, body string) *xmltree.Tree {
	t.Helper()
	tree, err := xmltree.Decode([]byte(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return tree
}

const listing = `<ListBucketResult>
  <Name>photos</Name>
  <IsTruncated>true</IsTruncated>
  <NextContinuationToken>tok-2</NextContinuationToken>
  <Contents><Key>a.jpg</Key><Size>1</Size></Contents>
  <Contents><Key>b.jpg</Key><Size>2</Size></Contents>
</ListBucketResult>`

func TestApply_EmptyRules(t *testing.T) {
	vars, results := Apply(mustTree(t, listing), domain.ExtractSpec{})
	if len(vars) != 0 {
		t.Fatalf("expected empty vars, got %v", vars)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty results, got %v", results)
	}
}

func TestApply_Success(t *testing.T) {
	rules := domain.ExtractSpec{
		"bucket": "$.ListBucketResult.Name",
		"token":  "$.ListBucketResult.NextContinuationToken",
		"second": "$.ListBucketResult.Contents[1].Key",
	}

	vars, res := Apply(mustTree(t, listing), rules)

	if vars["bucket"] != "photos" {
		t.Fatalf("expected bucket=photos, got=%q", vars["bucket"])
	}
	if vars["token"] != "tok-2" {
		t.Fatalf("expected token=tok-2, got=%q", vars["token"])
	}
	if vars["second"] != "b.jpg" {
		t.Fatalf("expected second=b.jpg, got=%q", vars["second"])
	}
	if len(res) != 3 {
		t.Fatalf("expected 3 results, got=%d", len(res))
	}
	for _, r := range res {
		if !r.Success {
			t.Fatalf("expected all success, got fail: %+v", r)
		}
	}
}

func TestApply_Wildcard_JoinsValues(t *testing.T) {
	vars, res := Apply(mustTree(t, listing), domain.ExtractSpec{"keys": "$.ListBucketResult.Contents[*].Key"})
	if !res[0].Success {
		t.Fatalf("expected success, got %s", res[0].Message)
	}
	if vars["keys"] != "a.jpg,b.jpg" {
		t.Fatalf("expected joined keys, got %q", vars["keys"])
	}
}

func TestApply_NilTree_FailsAll(t *testing.T) {
	vars, res := Apply(nil, domain.ExtractSpec{"bucket": "$.ListBucketResult.Name"})
	if len(vars) != 0 {
		t.Fatalf("expected no vars, got=%v", vars)
	}
	if len(res) != 1 || res[0].Success {
		t.Fatalf("expected one failure, got %+v", res)
	}
	if !strings.Contains(res[0].Message, "not XML") {
		t.Fatalf("unexpected message %q", res[0].Message)
	}
}

func TestApply_MissingAndEmpty(t *testing.T) {
	tree := mustTree(t, `<ListBucketResult><Name>b</Name><Prefix></Prefix></ListBucketResult>`)
	vars, res := Apply(tree, domain.ExtractSpec{
		"missing": "$.ListBucketResult.Marker",
		"prefix":  "$.ListBucketResult.Prefix",
		"blank":   "  ",
	})
	if len(vars) != 0 {
		t.Fatalf("expected no vars, got %v", vars)
	}
	for _, r := range res {
		if r.Success {
			t.Fatalf("expected failure for %s", r.Name)
		}
	}
}

func TestApply_ExtractElement(t *testing.T) {
	tree := mustTree(t, `<Error><Code>NoSuchKey</Code><Message>gone</Message></Error>`)
	vars, res := Apply(tree, domain.ExtractSpec{"err": "$.Error"})
	if !res[0].Success {
		t.Fatalf("expected success, got %s", res[0].Message)
	}
	if !strings.Contains(vars["err"], `"Code":"NoSuchKey"`) {
		t.Fatalf("expected element rendered as JSON, got %q", vars["err"])
	}
}

func TestApply_StableOrder(t *testing.T) {
	_, res := Apply(mustTree(t, listing), domain.ExtractSpec{
		"z": "$.ListBucketResult.Name",
		"a": "$.ListBucketResult.Name",
	})
	if res[0].Name != "a" || res[1].Name != "z" {
		t.Fatalf("expected sorted results, got %s,%s", res[0].Name, res[1].Name)
	}
}
