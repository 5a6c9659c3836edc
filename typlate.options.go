package typlate

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	stepBudget int
	logger     *zap.Logger
	storage    TemplateStorage
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		stepBudget: DefaultStepBudget,
		logger:     nil,
		storage:    nil,
	}
}

// WithStepBudget sets the maximum number of rendering steps per render
// call. Each processed token, including loop re-entries, consumes one
// step; exhausting the budget aborts the render with a timeout error.
// Default: DefaultStepBudget
func WithStepBudget(steps int) Option {
	return func(c *engineConfig) {
		if steps > 0 {
			c.stepBudget = steps
		}
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithStorage attaches a template storage backend, enabling
// Engine.RenderStored lookups by template name.
// Default: nil (no storage)
func WithStorage(storage TemplateStorage) Option {
	return func(c *engineConfig) {
		c.storage = storage
	}
}
