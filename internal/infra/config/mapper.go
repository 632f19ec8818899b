package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aalvaropc/s3lens/internal/domain"
)

// Apply layers the parsed file over base and validates the result.
func Apply(path string, base domain.Config, y YAMLConfig) (domain.Config, error) {
	cfg := base
	s := y.S3Lens

	if ep := strings.TrimSpace(s.Endpoint); ep != "" {
		u, err := url.Parse(ep)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return base, invalidField(path, "endpoint", fmt.Sprintf("%q is not an absolute URL", ep))
		}
		cfg.Transport.Endpoint = ep
	}
	if s.PathStyle != nil {
		cfg.Transport.PathStyle = *s.PathStyle
	}
	if t := strings.TrimSpace(s.Timeout); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil || d < 0 {
			return base, invalidField(path, "timeout", fmt.Sprintf("invalid duration %q", t))
		}
		cfg.Transport.Timeout = d
	}
	if s.MaxBodyBytes != nil {
		if *s.MaxBodyBytes <= 0 {
			return base, invalidField(path, "max_body_bytes", "must be positive")
		}
		cfg.Transport.MaxBodyBytes = *s.MaxBodyBytes
	}
	if s.Masking.Enabled != nil {
		cfg.Masking.Enabled = *s.Masking.Enabled
	}
	if d := strings.TrimSpace(s.Paths.CapturesDir); d != "" {
		cfg.Paths.CapturesDir = d
	}
	if d := strings.TrimSpace(s.Paths.RunsDir); d != "" {
		cfg.Paths.RunsDir = d
	}

	return cfg, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field s3lens.%s: %s", field, msg),
	}
}
