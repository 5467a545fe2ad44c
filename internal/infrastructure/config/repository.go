package configinfra

import (
	"context"
	"fmt"

	configdomain "github.com/chatterino-tools/cpm/internal/core/domain/config"
	configports "github.com/chatterino-tools/cpm/internal/core/ports/config"
)

// Repository merges loaders over the defaults and validates the result
type Repository struct {
	loaders   []configports.Loader
	validator configports.Validator
}

func NewRepository(validator configports.Validator, loaders ...configports.Loader) *Repository {
	return &Repository{loaders: loaders, validator: validator}
}

// Load returns the merged configuration and the snapshot it came from
func (r *Repository) Load(ctx context.Context) (configdomain.Config, configdomain.Snapshot, error) {
	snap := configdomain.Defaults()
	for _, l := range r.loaders {
		s, err := l.Load(ctx)
		if err != nil {
			return configdomain.Config{}, nil, fmt.Errorf("%s config: %w", l.Name(), err)
		}
		snap.Merge(s)
	}

	cfg := snap.ToConfig()
	if r.validator != nil {
		if err := r.validator.Validate(cfg); err != nil {
			return configdomain.Config{}, nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, snap, nil
}
