package config

import (
	"fmt"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .wabridge.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to wabridge! Let's configure your gateway connection.")
	fmt.Println()

	cfg := DefaultConfig()

	urlPrompt := promptui.Prompt{
		Label:   "Gateway base URL",
		Default: "http://localhost:3000",
	}
	gatewayURL, err := urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("gateway URL prompt: %w", err)
	}
	cfg.GatewayURL = gatewayURL

	userPrompt := promptui.Prompt{Label: "Gateway basic auth username"}
	username, err := userPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("username prompt: %w", err)
	}
	cfg.GatewayUsername = username

	passPrompt := promptui.Prompt{Label: "Gateway basic auth password", Mask: '*'}
	password, err := passPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("password prompt: %w", err)
	}
	cfg.GatewayPassword = password

	secretPrompt := promptui.Prompt{Label: "Webhook shared secret", Mask: '*'}
	secret, err := secretPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("secret prompt: %w", err)
	}
	cfg.WebhookSecret = secret

	tzPrompt := promptui.Prompt{
		Label:   "Timezone",
		Default: cfg.Timezone,
	}
	tz, err := tzPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("timezone prompt: %w", err)
	}
	cfg.Timezone = tz

	selfPrompt := promptui.Select{
		Label: "Process self-originated messages",
		Items: []string{"no", "yes"},
	}
	selfIdx, _, err := selfPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("self-message prompt: %w", err)
	}
	cfg.AllowSelfMessage = selfIdx == 1

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(".wabridge.yml"); err != nil {
		return nil, err
	}
	fmt.Println("\nConfiguration saved to .wabridge.yml")

	return cfg, nil
}
