package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   "http://localhost:8000",
		PageSize:    20,
		Theme:       ThemeLight,
		LineNumbers: true,
		Web: WebConfig{
			Port:     8080,
			AllowAll: false,
		},
	}
}
