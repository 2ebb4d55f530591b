package usecase

import (
	"context"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/mobilityos/plansim/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct {
	Path string // configuration file the resolved config came from
}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	Path     string
	Resolved string // resolved configuration rendered as TOML
}

// ShowConfig renders the resolved planner configuration.
type ShowConfig struct {
	cfg *domain.Config
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(cfg *domain.Config) *ShowConfig {
	return &ShowConfig{cfg: cfg}
}

// Execute renders the configuration.
func (uc *ShowConfig) Execute(_ context.Context, in ShowConfigInput) (*ShowConfigOutput, error) {
	data, err := toml.Marshal(uc.cfg)
	if err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}
	return &ShowConfigOutput{Path: in.Path, Resolved: string(data)}, nil
}
