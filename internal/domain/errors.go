package domain

import "errors"

// Domain errors.
var (
	ErrInvalidConfig         = errors.New("invalid configuration")
	ErrMissingScenarioConfig = errors.New("missing scenario configuration")
	ErrScenarioNotRegistered = errors.New("scenario type not registered")
	ErrUnsupportedScenario   = errors.New("unsupported scenario type")
	ErrConfigNotFound        = errors.New("configuration file not found")
)
