// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/mobilityos/plansim/internal/domain"
)

// DefaultFileName is the configuration file looked up in the working
// directory when no explicit path is given.
const DefaultFileName = "plansim.toml"

// Loader loads planner configuration from a TOML file over the built-in
// defaults.
type Loader struct {
	path     string
	explicit bool
}

// NewLoader creates a Loader for an explicit configuration path. The file
// must exist; a broken deployment aborts at startup rather than planning
// with partial configuration.
func NewLoader(path string) *Loader {
	return &Loader{path: path, explicit: true}
}

// NewDefaultLoader creates a Loader that overlays plansim.toml from the
// working directory when present and falls back to defaults otherwise.
func NewDefaultLoader() *Loader {
	return &Loader{path: DefaultFileName}
}

// Load returns the resolved configuration: defaults overlaid with the
// file's sections, validated.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	data, err := os.ReadFile(l.path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", l.path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		if l.explicit {
			return nil, fmt.Errorf("%s: %w", l.path, domain.ErrConfigNotFound)
		}
	default:
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", l.path, err)
	}
	return cfg, nil
}

// Path returns the configuration file path this loader resolves against.
func (l *Loader) Path() string {
	return l.path
}
