package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/infra/config"
	"github.com/aalvaropc/s3lens/internal/infra/logger"
	"github.com/aalvaropc/s3lens/internal/infra/workspacefinder"
)

// app holds global flags and the state loaded from the workspace.
type app struct {
	debug         bool
	workspaceFlag string

	root string
	cfg  domain.Config
}

// open resolves the workspace, starts file logging and loads s3lens.yaml.
// The returned cleanup is always safe to call.
func (a *app) open() (func(), error) {
	root, err := resolveWorkspaceRoot(a.workspaceFlag)
	if err != nil {
		return func() {}, err
	}
	a.root = root

	cleanup, lerr := logger.Setup(logger.Config{Root: root, Debug: a.debug})
	done := func() {
		if cleanup != nil {
			_ = cleanup()
		}
	}
	if lerr != nil && a.debug {
		fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", lerr)
	}

	cfg, err := config.Load(root)
	if err != nil {
		logger.L().Error("config.load", "root", root, "err", err)
		return done, err
	}
	a.cfg = cfg

	logger.L().Debug("workspace.open", "root", root, "endpoint", cfg.Transport.Endpoint)
	return done, nil
}

// resolveWorkspaceRoot uses the flag when given, otherwise the nearest directory with an
// s3lens.yaml, otherwise the working directory (defaults apply).
func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	root, ferr := workspacefinder.NewFinder().FindRoot(wd)
	if ferr == nil {
		return root, nil
	}
	if os.Getenv(workspacefinder.EnvVar) != "" {
		return "", ferr
	}
	return wd, nil
}

// resolveFile finds arg relative to the working directory first, then to the workspace
// root, then under dir inside the workspace (with .yaml/.yml tried for bare names).
func resolveFile(root, dir, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("file argument is required")
	}
	if filepath.IsAbs(in) || fileExists(in) {
		return filepath.Clean(in), nil
	}

	candidates := []string{filepath.Join(root, in)}
	if dir != "" && !looksLikePath(in) {
		base := filepath.Join(root, dir, in)
		candidates = append(candidates, base)
		if !hasYAMLExt(in) {
			candidates = append(candidates, base+".yaml", base+".yml")
		}
	}
	for _, p := range candidates {
		if fileExists(p) {
			return p, nil
		}
	}
	// Let the loader report not_found with the path the user meant.
	return filepath.Clean(in), nil
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
