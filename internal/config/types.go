package config

// Config is the top-level wabridge configuration, corresponding to
// .wabridge.yml.
type Config struct {
	// Gateway connection.
	GatewayURL      string `yaml:"gateway_url" koanf:"gateway_url"`
	GatewayUsername string `yaml:"gateway_username" koanf:"gateway_username"`
	GatewayPassword string `yaml:"gateway_password" koanf:"gateway_password"`

	// Shared secret the gateway signs webhook bodies with.
	WebhookSecret string `yaml:"webhook_secret" koanf:"webhook_secret"`

	Port             int    `yaml:"port" koanf:"port"`
	Timezone         string `yaml:"timezone" koanf:"timezone"`
	AllowSelfMessage bool   `yaml:"allow_self_message" koanf:"allow_self_message"`
	AssetsDir        string `yaml:"assets_dir" koanf:"assets_dir"`

	// Timeout for outbound gateway calls, in seconds.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" koanf:"request_timeout_seconds"`

	// AllowAllOrigins opens CORS up for local development.
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:                  8080,
		Timezone:              "Asia/Jakarta",
		AssetsDir:             "assets",
		RequestTimeoutSeconds: 30,
	}
}
