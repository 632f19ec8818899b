package workspacefinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/ports"
)

const (
	// ConfigFile marks the root of an s3lens workspace.
	ConfigFile = "s3lens.yaml"
	// StateDir holds logs; a directory carrying it is a workspace even without a config.
	StateDir = ".s3lens"
	// EnvVar pins the workspace root and skips the upward search.
	EnvVar = "S3LENS_WORKSPACE"
)

// Finder locates the workspace root for a start directory.
type Finder struct {
	markers []string
	getenv  func(string) string
}

type Option func(*Finder)

// WithMarkers replaces the names whose presence marks a root, checked in order.
func WithMarkers(names ...string) Option {
	return func(f *Finder) { f.markers = names }
}

// WithGetenv overrides environment lookup.
func WithGetenv(getenv func(string) string) Option {
	return func(f *Finder) { f.getenv = getenv }
}

func NewFinder(opts ...Option) *Finder {
	f := &Finder{
		markers: []string{ConfigFile, StateDir},
		getenv:  os.Getenv,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

// FindRoot returns $S3LENS_WORKSPACE when set, otherwise the nearest directory at or
// above startDir holding one of the markers. A file path starts from its directory.
func (f *Finder) FindRoot(startDir string) (string, error) {
	if pinned := f.getenv(EnvVar); pinned != "" {
		return pinnedRoot(pinned)
	}
	if startDir == "" {
		return "", opErr(domain.KindInvalidConfig, "", errors.New("start directory is empty"))
	}

	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", opErr(domain.KindExecution, startDir, err)
	}
	if info, statErr := os.Stat(start); statErr == nil && !info.IsDir() {
		start = filepath.Dir(start)
	}

	for dir := filepath.Clean(start); ; dir = filepath.Dir(dir) {
		if f.marked(dir) {
			return dir, nil
		}
		if filepath.Dir(dir) == dir {
			return "", opErr(domain.KindNotFound, start, domain.ErrNotFound)
		}
	}
}

func (f *Finder) marked(dir string) bool {
	for _, m := range f.markers {
		if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
			return true
		}
	}
	return false
}

func pinnedRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", opErr(domain.KindExecution, path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", opErr(domain.KindNotFound, abs, fmt.Errorf("%s: %w", EnvVar, domain.ErrNotFound))
	}
	if !info.IsDir() {
		return "", opErr(domain.KindInvalidConfig, abs, fmt.Errorf("%s is not a directory", EnvVar))
	}
	return abs, nil
}

func opErr(kind domain.ErrorKind, path string, err error) error {
	return &domain.OpError{Op: "workspacefinder.findroot", Kind: kind, Path: path, Err: err}
}
