package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// TONI_BASE_URL points at a running server, e.g. http://localhost:3000.
	// The suite is skipped when it is empty.
	BaseURL string `envconfig:"TONI_BASE_URL"`
	// E2E_WITH_AI runs the scenarios that reach the chat completion endpoint.
	WithAI bool `envconfig:"E2E_WITH_AI" default:"false"`
	// E2E_DEBUG_JSON dumps full request/response bodies
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
