package config

// YAMLConfig mirrors s3lens.yaml. Pointers distinguish unset values from zero values.
type YAMLConfig struct {
	S3Lens YAMLSettings `yaml:"s3lens"`
}

type YAMLSettings struct {
	Endpoint     string `yaml:"endpoint"`
	PathStyle    *bool  `yaml:"path_style"`
	Timeout      string `yaml:"timeout"`
	MaxBodyBytes *int64 `yaml:"max_body_bytes"`

	Masking struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"masking"`

	Paths struct {
		CapturesDir string `yaml:"captures_dir"`
		RunsDir     string `yaml:"runs_dir"`
	} `yaml:"paths"`
}
