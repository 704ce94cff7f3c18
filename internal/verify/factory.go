package verify

import (
	"fmt"
	"strings"

	"github.com/litmap/litmap/internal/model"
)

// NewProvider creates a verification provider based on configuration
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		// No provider configured - verification disabled
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown verification provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.VerifierConfig to verify.Config
func ConfigFromModel(cfg model.VerifierConfig) Config {
	return Config{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout,
	}
}
