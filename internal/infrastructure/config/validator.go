package configinfra

import (
	"fmt"
	"net/url"

	configdomain "github.com/chatterino-tools/cpm/internal/core/domain/config"
	configports "github.com/chatterino-tools/cpm/internal/core/ports/config"
)

// ConfigValidator validates configuration values
type ConfigValidator struct{}

func NewConfigValidator() *ConfigValidator { return &ConfigValidator{} }

func (v *ConfigValidator) Validate(cfg configdomain.Config) error {
	return v.ValidateAPIURL(cfg.APIURL)
}

// ValidateAPIURL validates the GitHub API base URL
func (v *ConfigValidator) ValidateAPIURL(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("API URL cannot be empty")
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %s (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must include host")
	}
	return nil
}

var _ configports.Validator = (*ConfigValidator)(nil)
