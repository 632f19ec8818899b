package yamlprobes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/s3lens/internal/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "smoke.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadProbes_Valid(t *testing.T) {
	p := writeFile(t, `
name: Smoke
probes:
  - name: list photos
    kind: list-objects
    target: /photos
    query:
      list-type: "2"
    expect:
      status: 200
      max_ms: 1500
      jsonpath:
        "$.ListBucketResult.Name":
          eq: photos
        "$.ListBucketResult.KeyCount":
          gt: 0
    extract:
      token: $.ListBucketResult.NextContinuationToken
  - name: missing key
    kind: head-object
    target: /photos/nope.jpg
    expect:
      outcome: serialization
  - name: denied
    kind: get-object
    method: get
    target: /private/secret.txt
    expect:
      outcome: service
      code: AccessDenied
`)

	set, err := NewLoader().LoadProbes(p)
	if err != nil {
		t.Fatalf("LoadProbes error: %v", err)
	}
	if set.Name != "Smoke" || len(set.Probes) != 3 {
		t.Fatalf("unexpected set %+v", set)
	}

	list := set.Probes[0]
	if list.Request.Method != domain.MethodGet || list.Request.Kind != domain.KindListObjects {
		t.Fatalf("unexpected request %+v", list.Request)
	}
	if list.Request.Query["list-type"] != "2" {
		t.Fatalf("expected query, got %v", list.Request.Query)
	}
	if list.Expect.Status == nil || *list.Expect.Status != 200 || *list.Expect.MaxLatencyMS != 1500 {
		t.Fatalf("unexpected expectations %+v", list.Expect)
	}
	jp := list.Expect.JSONPath["$.ListBucketResult.Name"]
	if jp.Eq == nil || *jp.Eq != "photos" {
		t.Fatalf("expected eq assertion, got %+v", jp)
	}
	if g := list.Expect.JSONPath["$.ListBucketResult.KeyCount"].Gt; g == nil || *g != 0 {
		t.Fatalf("expected gt assertion")
	}
	if list.Extract["token"] != "$.ListBucketResult.NextContinuationToken" {
		t.Fatalf("unexpected extract %v", list.Extract)
	}

	if set.Probes[1].Request.Method != domain.MethodHead {
		t.Fatalf("expected HEAD default for head-object")
	}
	if set.Probes[1].Expect.Outcome != domain.OutcomeSerialization {
		t.Fatalf("expected serialization outcome")
	}
	if set.Probes[2].Expect.Code != "AccessDenied" || set.Probes[2].Request.Method != domain.MethodGet {
		t.Fatalf("unexpected denied probe %+v", set.Probes[2])
	}
}

func TestLoadProbes_NameDefaultsToFile(t *testing.T) {
	p := writeFile(t, `
probes:
  - name: buckets
    kind: list-buckets
    target: /
`)
	set, err := NewLoader().LoadProbes(p)
	if err != nil {
		t.Fatalf("LoadProbes error: %v", err)
	}
	if set.Name != "smoke" {
		t.Fatalf("expected name from file, got %q", set.Name)
	}
}

func TestLoadProbes_Invalid(t *testing.T) {
	cases := map[string]string{
		"probes": `name: x`,
		"kind": `
probes:
  - name: a
    kind: put-object
    target: /b/k`,
		"method": `
probes:
  - name: a
    kind: get-object
    method: PATCH
    target: /b/k`,
		"outcome": `
probes:
  - name: a
    kind: get-object
    target: /b/k
    expect:
      outcome: broken`,
		"target": `
probes:
  - name: a
    kind: get-object`,
		"name": `
probes:
  - kind: get-object
    target: /b/k`,
	}
	for field, content := range cases {
		_, err := NewLoader().LoadProbes(writeFile(t, content))
		if !domain.IsKind(err, domain.KindInvalidConfig) {
			t.Fatalf("%s: expected invalid_config, got %v", field, err)
		}
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("%s: expected field in message, got %v", field, err)
		}
	}
}

func TestLoadProbes_NotFound(t *testing.T) {
	_, err := NewLoader().LoadProbes(filepath.Join(t.TempDir(), "missing.yaml"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestLoadProbes_BadYAML(t *testing.T) {
	_, err := NewLoader().LoadProbes(writeFile(t, "probes: [unclosed"))
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}
