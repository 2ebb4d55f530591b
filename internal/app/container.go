// Package app provides the dependency injection container for the plansim
// binary.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mobilityos/plansim/internal/domain"
	"github.com/mobilityos/plansim/internal/infra/config"
	"github.com/mobilityos/plansim/internal/infra/logging"
	"github.com/mobilityos/plansim/internal/usecase"
)

// Container wires configuration and logging into the use cases.
type Container struct {
	Config     *domain.Config
	ConfigPath string
	Logger     *slog.Logger

	logCloser io.Closer
}

// New loads configuration and builds the container. A missing or malformed
// configuration file is a fatal startup error.
func New(configPath, logLevel string) (*Container, error) {
	loader := config.NewDefaultLoader()
	if configPath != "" {
		loader = config.NewLoader(configPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	levelStr := cfg.Logging.Level
	if logLevel != "" {
		levelStr = logLevel
	}
	level := logging.ParseLevel(levelStr)

	logger := logging.New(os.Stderr, level)
	var closer io.Closer
	if cfg.Logging.File != "" {
		logger, closer, err = logging.NewFile(cfg.Logging.File, level)
		if err != nil {
			return nil, err
		}
	}

	return &Container{
		Config:     cfg,
		ConfigPath: loader.Path(),
		Logger:     logger,
		logCloser:  closer,
	}, nil
}

// Close releases the log file handle, if any.
func (c *Container) Close() error {
	if c.logCloser != nil {
		return c.logCloser.Close()
	}
	return nil
}

// Simulate builds the Simulate use case.
func (c *Container) Simulate() *usecase.Simulate {
	return usecase.NewSimulate(c.Config, c.Logger)
}

// ShowConfig builds the ShowConfig use case.
func (c *Container) ShowConfig() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.Config)
}
