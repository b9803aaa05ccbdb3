// Package config defines tfgrant's configuration surface, loaded from
// flags, environment, and an optional config file.
package config

// Config is the full runtime configuration. Field tags match the
// config file keys viper binds.
type Config struct {
	// Path is the Terraform directory to analyze.
	Path string `mapstructure:"path"`

	// Strict fails the run instead of degrading when files cannot be
	// parsed.
	Strict bool `mapstructure:"strict"`

	// OutputDir receives generated artifacts (policy JSON, report).
	// An "s3://bucket/prefix" target uploads instead.
	OutputDir string `mapstructure:"output_dir"`

	// RulesFile optionally overrides the built-in lint rules (YAML).
	RulesFile string `mapstructure:"rules_file"`

	Verbose  bool `mapstructure:"verbose"`
	JsonLogs bool `mapstructure:"json_logs"`

	AWS          AWSConfig     `mapstructure:"aws"`
	Advisor      AdvisorConfig `mapstructure:"advisor"`
	OtelEndpoint string        `mapstructure:"otel_endpoint"`
}

// AWSConfig selects the account context for placeholder substitution
// and policy application.
type AWSConfig struct {
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`

	// PolicyName is the managed policy to create or update on apply.
	PolicyName string `mapstructure:"policy_name"`
	// AttachRole optionally attaches the applied policy to a role.
	AttachRole string `mapstructure:"attach_role"`
}

// AdvisorConfig controls the model-backed suggestion layer for
// resource types the catalog does not cover.
type AdvisorConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	CacheDir string `mapstructure:"cache_dir"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Path:      ".",
		OutputDir: "tfgrant-out",
		AWS: AWSConfig{
			PolicyName: "tfgrant-derived",
		},
		Advisor: AdvisorConfig{
			CacheDir: ".tfgrant/cache",
		},
	}
}
