package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/aalvaropc/s3lens/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "s3lens.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return root
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if diff := cmp.Diff(domain.DefaultConfig(), cfg); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	root := writeConfig(t, "s3lens:\n  masking:\n    enabled: false\n")

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := domain.DefaultConfig()
	want.Masking.Enabled = false
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FullFile(t *testing.T) {
	root := writeConfig(t, `
s3lens:
  endpoint: http://localhost:9000
  path_style: false
  timeout: 5s
  max_body_bytes: 4096
  paths:
    captures_dir: caps
    runs_dir: reports
`)

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := domain.DefaultConfig()
	want.Transport = domain.TransportConfig{
		Endpoint:     "http://localhost:9000",
		PathStyle:    false,
		Timeout:      5 * time.Second,
		MaxBodyBytes: 4096,
	}
	want.Paths = domain.PathsConfig{CapturesDir: "caps", RunsDir: "reports"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []string{
		"s3lens:\n  timeout: soon\n",
		"s3lens:\n  endpoint: localhost\n",
		"s3lens:\n  max_body_bytes: 0\n",
		"s3lens: [\n",
	}
	for _, content := range cases {
		_, err := Load(writeConfig(t, content))
		if !domain.IsKind(err, domain.KindInvalidConfig) {
			t.Fatalf("expected invalid_config for %q, got %v", content, err)
		}
	}
}
