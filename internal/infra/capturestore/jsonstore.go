package capturestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/ports"
)

const (
	defaultRunsDir     = "runs"
	defaultCapturesDir = "captures"
	stampLayout        = "20060102T150405Z"
)

// JSONStore writes run reports and exchange captures as indented JSON files under the
// workspace root.
type JSONStore struct {
	rootDir         string
	runsDirName     string
	capturesDirName string
	maskingEnabled  bool
	writeIndex      bool
	now             func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a JSONL index of saved runs: runs/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	s := &JSONStore{
		rootDir:         root,
		runsDirName:     orDefault(cfg.Paths.RunsDir, defaultRunsDir),
		capturesDirName: orDefault(cfg.Paths.CapturesDir, defaultCapturesDir),
		maskingEnabled:  cfg.Masking.Enabled,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ ports.ArtifactStore = (*JSONStore)(nil)
	_ ports.CaptureStore  = (*JSONStore)(nil)
)

func (s *JSONStore) SaveRun(run domain.RunArtifact) (string, error) {
	dir := filepath.Join(s.rootDir, s.runsDirName)

	if run.StartedAt.IsZero() {
		run.StartedAt = s.now()
	}
	run.StartedAt = run.StartedAt.UTC()

	name := run.ProbeSetName
	if strings.TrimSpace(name) == "" {
		name = strings.TrimSuffix(filepath.Base(run.ProbeSetPath), filepath.Ext(run.ProbeSetPath))
	}
	slug := slugify(name)
	if slug == "" {
		slug = "run"
	}

	toSave := run
	if s.maskingEnabled {
		toSave = maskArtifact(run)
	}

	path, err := s.write(dir, run.StartedAt.Format(stampLayout)+"_"+slug, toSave, "capturestore.run")
	if err != nil {
		return "", err
	}
	id := strings.TrimSuffix(filepath.Base(path), ".json")

	if s.writeIndex {
		_ = s.appendIndex(dir, id, filepath.Base(path), run)
	}
	return id, nil
}

func (s *JSONStore) SaveCapture(c domain.Capture) (string, error) {
	dir := filepath.Join(s.rootDir, s.capturesDirName)

	if c.SavedAt.IsZero() {
		c.SavedAt = s.now()
	}
	c.SavedAt = c.SavedAt.UTC()

	base := c.SavedAt.Format(stampLayout) + "_" + orDefault(slugify(string(c.Kind)), "exchange")
	if id := slugify(c.ID); id != "" {
		if len(id) > 8 {
			id = id[:8]
		}
		base += "_" + id
	}

	if s.maskingEnabled {
		c = maskCapture(c)
	}
	return s.write(dir, base, c, "capturestore")
}

func (s *JSONStore) LoadCapture(path string) (domain.Capture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Capture{}, &domain.OpError{
			Op:   "capturestore.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var c domain.Capture
	if err := json.Unmarshal(b, &c); err != nil {
		return domain.Capture{}, &domain.OpError{
			Op:   "capturestore.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	if c.StatusCode == 0 && c.TransportError == "" {
		return domain.Capture{}, &domain.OpError{
			Op:   "capturestore.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("capture has neither a response nor a transport error"),
		}
	}
	return c, nil
}

// write stores v as dir/<base>.json, adding a numeric suffix instead of overwriting.
// The file is written to a temporary name first and renamed into place.
func (s *JSONStore) write(dir, base string, v any, op string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{Op: op + ".mkdir", Kind: domain.KindExecution, Path: dir, Err: err}
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", &domain.OpError{Op: op + ".marshal", Kind: domain.KindExecution, Path: dir, Err: err}
	}

	path := filepath.Join(dir, base+".json")
	for i := 2; fileExists(path); i++ {
		path = filepath.Join(dir, fmt.Sprintf("%s-%d.json", base, i))
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{Op: op + ".write", Kind: domain.KindExecution, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{Op: op + ".rename", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return path, nil
}

func (s *JSONStore) appendIndex(dir, id, filename string, run domain.RunArtifact) error {
	failed := 0
	for _, r := range run.Results {
		if r.Failed() {
			failed++
		}
	}

	line, err := json.Marshal(struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		ProbeSet  string    `json:"probe_set"`
		Env       string    `json:"env,omitempty"`
		Probes    int       `json:"probes"`
		Failed    int       `json:"failed"`
		StartedAt time.Time `json:"started_at"`
	}{
		ID:        id,
		File:      filename,
		ProbeSet:  run.ProbeSetName,
		Env:       run.EnvironmentName,
		Probes:    len(run.Results),
		Failed:    failed,
		StartedAt: run.StartedAt,
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, "index.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
