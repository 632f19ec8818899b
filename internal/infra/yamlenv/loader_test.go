package yamlenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/s3lens/internal/domain"
)

func writeEnvFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadEnvironment_MergesSecrets(t *testing.T) {
	root := t.TempDir()
	envDir := filepath.Join(root, "env")
	writeEnvFile(t, envDir, "dev.yaml", "vars:\n  bucket: photos-dev\n  sse_key: base\n")
	writeEnvFile(t, envDir, "secrets.local.yaml", "vars:\n  sse_key: secret\n")

	env, err := NewLoader(root).LoadEnvironment("dev")
	if err != nil {
		t.Fatalf("LoadEnvironment error: %v", err)
	}
	if env.Name != "dev" {
		t.Fatalf("expected name=dev, got=%s", env.Name)
	}
	if env.Vars["bucket"] != "photos-dev" {
		t.Fatalf("expected bucket, got=%s", env.Vars["bucket"])
	}
	if env.Vars["sse_key"] != "secret" {
		t.Fatalf("expected sse_key override, got=%s", env.Vars["sse_key"])
	}
}

func TestLoadEnvironment_SecretsMissing(t *testing.T) {
	root := t.TempDir()
	writeEnvFile(t, filepath.Join(root, "env"), "dev.yaml", "vars:\n  bucket: photos-dev\n")

	env, err := NewLoader(root).LoadEnvironment("dev")
	if err != nil {
		t.Fatalf("LoadEnvironment error: %v", err)
	}
	if env.Vars["bucket"] != "photos-dev" {
		t.Fatalf("expected bucket, got=%s", env.Vars["bucket"])
	}
}

func TestLoadEnvironment_EnvMissing(t *testing.T) {
	_, err := NewLoader(t.TempDir()).LoadEnvironment("dev")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestLoadEnvironment_SupportsYMLAndPaths(t *testing.T) {
	root := t.TempDir()
	p := writeEnvFile(t, filepath.Join(root, "env"), "prod.yml", "vars:\n  bucket: photos\n")

	env, err := NewLoader(root).LoadEnvironment("prod")
	if err != nil {
		t.Fatalf("LoadEnvironment error: %v", err)
	}
	if env.Name != "prod" || env.Vars["bucket"] != "photos" {
		t.Fatalf("unexpected env: %+v", env)
	}

	env, err = NewLoader("/elsewhere").LoadEnvironment(p)
	if err != nil {
		t.Fatalf("LoadEnvironment by path error: %v", err)
	}
	if env.Name != "prod" {
		t.Fatalf("expected name from file, got=%s", env.Name)
	}
}

func TestLoadEnvironment_InvalidFiles(t *testing.T) {
	root := t.TempDir()
	envDir := filepath.Join(root, "env")
	writeEnvFile(t, envDir, "bad.yaml", "vars: [\n")
	writeEnvFile(t, envDir, "braces.yaml", "vars:\n  \"{{x}}\": y\n")

	for _, name := range []string{"bad", "braces", " "} {
		if _, err := NewLoader(root).LoadEnvironment(name); !domain.IsKind(err, domain.KindInvalidConfig) {
			t.Fatalf("%q: expected invalid_config, got %v", name, err)
		}
	}
}
