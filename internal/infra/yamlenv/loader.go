// Package yamlenv loads probe variables from env/<name>.yaml, with an optional
// secrets.local.yaml beside it overriding values (credentials, SSE-C keys).
package yamlenv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/ports"
)

const (
	DefaultDir         = "env"
	DefaultSecretsFile = "secrets.local.yaml"
)

type Loader struct {
	rootDir     string
	envDir      string
	secretsFile string
}

type Option func(*Loader)

func WithEnvDir(dir string) Option {
	return func(l *Loader) { l.envDir = dir }
}

func WithSecretsFile(name string) Option {
	return func(l *Loader) { l.secretsFile = name }
}

func NewLoader(root string, opts ...Option) *Loader {
	l := &Loader{
		rootDir:     root,
		envDir:      DefaultDir,
		secretsFile: DefaultSecretsFile,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.EnvironmentLoader = (*Loader)(nil)

// LoadEnvironment accepts either an env name ("dev", resolved to env/dev.yaml or
// env/dev.yml) or a path to a YAML file.
func (l *Loader) LoadEnvironment(nameOrPath string) (domain.Environment, error) {
	in := strings.TrimSpace(nameOrPath)
	if in == "" {
		return domain.Environment{}, &domain.OpError{
			Op:   "yamlenv.load",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("environment name is empty"),
		}
	}

	envPath, envName := l.locate(in)

	base, err := readVars(envPath)
	if err != nil {
		return domain.Environment{}, err
	}

	secretsPath := filepath.Join(filepath.Dir(envPath), l.secretsFile)
	secrets, err := readVarsOptional(secretsPath)
	if err != nil {
		return domain.Environment{}, err
	}

	merged := domain.Vars{}
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range secrets {
		merged[k] = v
	}

	return domain.Environment{Name: envName, Vars: merged}, nil
}

func (l *Loader) locate(in string) (path, name string) {
	ext := strings.ToLower(filepath.Ext(in))
	if ext == ".yaml" || ext == ".yml" || strings.ContainsRune(in, filepath.Separator) || strings.Contains(in, "/") {
		path = filepath.Clean(in)
		return path, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	dir := filepath.Join(l.rootDir, l.envDir)
	path = filepath.Join(dir, in+".yaml")
	if _, err := os.Stat(path); err != nil {
		if alt := filepath.Join(dir, in+".yml"); fileExists(alt) {
			path = alt
		}
	}
	return path, in
}

type yamlEnv struct {
	Vars map[string]string `yaml:"vars"`
}

func readVars(path string) (domain.Vars, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{Op: "yamlenv.load", Kind: kind, Path: path, Err: err}
	}

	var y yamlEnv
	if err := yaml.Unmarshal(b, &y); err != nil {
		return nil, &domain.OpError{Op: "yamlenv.load", Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}

	out := domain.Vars{}
	for k, v := range y.Vars {
		key := strings.TrimSpace(k)
		if key == "" || strings.ContainsAny(key, "{}") {
			return nil, &domain.OpError{
				Op:   "yamlenv.validate",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("invalid variable name %q", k),
			}
		}
		out[key] = v
	}
	return out, nil
}

func readVarsOptional(path string) (domain.Vars, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Vars{}, nil
		}
		return nil, &domain.OpError{Op: "yamlenv.secrets", Kind: domain.KindExecution, Path: path, Err: err}
	}

	v, err := readVars(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	return v, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
