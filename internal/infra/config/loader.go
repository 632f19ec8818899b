package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/infra/workspacefinder"
)

// Load reads s3lens.yaml from the workspace root and applies it over the defaults.
// A missing file yields the defaults.
func Load(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, workspacefinder.ConfigFile)
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	var y YAMLConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return Apply(path, cfg, y)
}
