package domain

import "time"

// Config represents the s3lens configuration loaded from s3lens.yaml.
type Config struct {
	Transport TransportConfig
	Masking   MaskingConfig
	Paths     PathsConfig
}

type TransportConfig struct {
	// Endpoint is the service base URL used for relative request paths.
	Endpoint string
	// PathStyle addresses buckets as /bucket/key instead of bucket.host/key.
	PathStyle    bool
	Timeout      time.Duration
	MaxBodyBytes int64
}

type MaskingConfig struct {
	Enabled bool
}

type PathsConfig struct {
	CapturesDir string
	RunsDir     string
}

// DefaultConfig provides sane defaults if s3lens.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Transport: TransportConfig{
			Endpoint:     "https://s3.amazonaws.com",
			PathStyle:    true,
			Timeout:      30 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Masking: MaskingConfig{Enabled: true},
		Paths: PathsConfig{
			CapturesDir: "captures",
			RunsDir:     "runs",
		},
	}
}
