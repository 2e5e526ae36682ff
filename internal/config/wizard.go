package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to tressa! Let's configure your client.")
	fmt.Println()

	cfg := DefaultConfig()

	serverPrompt := promptui.Prompt{
		Label:   "Tressa server URL",
		Default: cfg.ServerURL,
	}
	serverURL, err := serverPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server selection: %w", err)
	}
	cfg.ServerURL = serverURL

	themePrompt := promptui.Select{
		Label: "Highlighting theme",
		Items: []string{string(ThemeLight), string(ThemeDark)},
	}
	_, theme, err := themePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}
	cfg.Theme = Theme(theme)

	pagePrompt := promptui.Prompt{
		Label:   "Page size for listings",
		Default: strconv.Itoa(cfg.PageSize),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 100 {
				return fmt.Errorf("enter a number between 1 and 100")
			}
			return nil
		},
	}
	pageSize, err := pagePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("page size selection: %w", err)
	}
	cfg.PageSize, _ = strconv.Atoi(pageSize)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nSaved configuration to %s\n", path)
	return cfg, nil
}
