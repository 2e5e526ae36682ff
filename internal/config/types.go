package config

// Theme selects the highlighting style used when rendering snippets.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Config is the top-level tressa configuration, corresponding to .tressa.yml.
type Config struct {
	ServerURL   string    `yaml:"server_url" koanf:"server_url"`
	PageSize    int       `yaml:"page_size" koanf:"page_size"`
	Theme       Theme     `yaml:"theme" koanf:"theme"`
	LineNumbers bool      `yaml:"line_numbers" koanf:"line_numbers"`
	Web         WebConfig `yaml:"web" koanf:"web"`
}

// WebConfig holds settings for the built-in web frontend.
type WebConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
