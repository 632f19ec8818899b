package xmltree

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aalvaropc/s3lens/internal/domain"
)

const listing = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>my-bucket</Name>
  <Prefix></Prefix>
  <IsTruncated>false</IsTruncated>
  <Contents>
    <Key>a.txt</Key>
    <Size>3</Size>
  </Contents>
  <Contents>
    <Key>b.txt</Key>
    <Size>5</Size>
  </Contents>
</ListBucketResult>`

func TestDecode_NoData(t *testing.T) {
	for _, in := range [][]byte{nil, {}} {
		_, err := Decode(in)
		if !errors.Is(err, domain.ErrNoData) {
			t.Fatalf("expected no_data for %v, got %v", in, err)
		}
		if !domain.InErrorDomain(err) {
			t.Fatalf("expected error in domain")
		}
	}
}

func TestDecode_NotWellFormed(t *testing.T) {
	cases := map[string]string{
		"plain text":       "hello",
		"unclosed":         "<Error><Code>x</Code>",
		"mismatched":       "<a><b></a></b>",
		"two roots":        "<a/><b/>",
		"trailing text":    "<a/>garbage",
		"leading text":     "junk<a/>",
		"only declaration": `<?xml version="1.0"?>`,
		"whitespace only":  "   \n ",
	}
	for name, in := range cases {
		_, err := Decode([]byte(in))
		if !errors.Is(err, domain.ErrDataFailed) {
			t.Errorf("%s: expected data_serialization_failed, got %v", name, err)
		}
	}
}

func TestDecode_WhitespaceAroundRootIsAccepted(t *testing.T) {
	tree, err := Decode([]byte("\n  <Empty/>\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Name() != "Empty" {
		t.Fatalf("expected root Empty, got %q", tree.Name())
	}
	if text, ok := tree.Text("Empty"); !ok || text != "" {
		t.Fatalf("expected empty text for empty root, got %q ok=%v", text, ok)
	}
}

func TestDecode_LeadingByteOrderMark(t *testing.T) {
	body := "\xef\xbb\xbf" + `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code></Error>`
	tree, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code, _ := tree.Text("Error/Code"); code != "AccessDenied" {
		t.Fatalf("expected AccessDenied, got %q", code)
	}

	_, err = Decode([]byte("\xef\xbb\xbf"))
	if !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("expected no_data for a bare byte-order mark, got %v", err)
	}
}

func TestDecode_DeclaredLatin1(t *testing.T) {
	body := `<?xml version="1.0" encoding="ISO-8859-1"?><Error><Code>NoSuchKey</Code><Message>caf` + "\xe9" + `</Message></Error>`
	tree, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg, _ := tree.Text("Error/Message"); msg != "café" {
		t.Fatalf("expected transcoded message, got %q", msg)
	}
}

func TestDecode_Listing(t *testing.T) {
	tree, err := Decode([]byte(listing))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Name() != "ListBucketResult" {
		t.Fatalf("unexpected root %q", tree.Name())
	}
	if name, ok := tree.Text("ListBucketResult/Name"); !ok || name != "my-bucket" {
		t.Fatalf("expected my-bucket, got %q ok=%v", name, ok)
	}
	if prefix, ok := tree.Text("ListBucketResult/Prefix"); !ok || prefix != "" {
		t.Fatalf("expected present empty prefix, got %q ok=%v", prefix, ok)
	}
	if _, ok := tree.Text("ListBucketResult/Marker"); ok {
		t.Fatalf("expected missing marker")
	}
	if _, ok := tree.Text("Error/Code"); ok {
		t.Fatalf("expected paths under another root to miss")
	}

	contents := tree.All("ListBucketResult/Contents")
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if key, _ := contents[1].Text("Key"); key != "b.txt" {
		t.Fatalf("expected document order, got %q", key)
	}
	if ns, ok := tree.Root().Attr("xmlns"); !ok || !strings.HasPrefix(ns, "http://s3.amazonaws.com") {
		t.Fatalf("expected xmlns attribute, got %q ok=%v", ns, ok)
	}
}

func TestDecode_Idempotent(t *testing.T) {
	a, err := Decode([]byte(listing))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Decode([]byte(listing))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(a.Map(), b.Map()); diff != "" {
		t.Fatalf("trees differ (-a +b):\n%s", diff)
	}
}

func TestTree_MapIsACopy(t *testing.T) {
	tree, err := Decode([]byte("<Error><Code>NoSuchKey</Code></Error>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := tree.Map()
	m["Error"].(map[string]interface{})["Code"] = "Changed"

	if code, _ := tree.Text("Error/Code"); code != "NoSuchKey" {
		t.Fatalf("expected tree to be unaffected, got %q", code)
	}
}

func TestTree_Query(t *testing.T) {
	tree, err := Decode([]byte(listing))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, err := tree.Query("$.ListBucketResult.Name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "my-bucket" {
		t.Fatalf("expected my-bucket, got %v", v)
	}

	v, err = tree.Query("$.ListBucketResult.Contents[1].Key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "b.txt" {
		t.Fatalf("expected b.txt, got %v", v)
	}

	if _, err := tree.Query("$.ListBucketResult.Missing"); err == nil {
		t.Fatalf("expected error for missing key")
	}
}

func TestTree_StringRendersXML(t *testing.T) {
	tree, err := Decode([]byte("<Error><Code>AccessDenied</Code></Error>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := tree.String()
	if !strings.Contains(out, "<Error>") || !strings.Contains(out, "<Code>AccessDenied</Code>") {
		t.Fatalf("unexpected rendering:\n%s", out)
	}
}

func TestNode_TextWithAttributes(t *testing.T) {
	tree, err := Decode([]byte(`<LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/">eu-west-1</LocationConstraint>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text, ok := tree.Text("LocationConstraint"); !ok || text != "eu-west-1" {
		t.Fatalf("expected eu-west-1, got %q ok=%v", text, ok)
	}
}
