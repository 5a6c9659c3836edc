package typlate

import (
	"context"

	"go.uber.org/zap"

	"github.com/SotaTne/typlate/internal"
)

// Engine is the main entry point for the typlate templating system.
// It manages tokenization, rendering, and optional template storage.
// An Engine holds no per-render state and is safe for concurrent use.
type Engine struct {
	config *engineConfig
	logger *zap.Logger
}

// New creates a new typlate Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgEngineCreated, zap.Int(LogFieldSteps, config.stepBudget))

	return &Engine{
		config: config,
		logger: logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Parse tokenizes a template source string and returns a Template.
// The returned Template can be rendered multiple times with different
// contexts.
func (e *Engine) Parse(source string) (*Template, error) {
	e.logger.Debug(LogMsgParseStart, zap.Int(LogFieldSourceBytes, len(source)))

	tokenizer := internal.NewTokenizer(source, e.logger)
	tokens, err := tokenizer.Tokenize()
	if err != nil {
		return nil, newTokenizeError(err)
	}

	e.logger.Debug(LogMsgParseEnd, zap.Int(LogFieldTokens, len(tokens)))
	return newTemplate(source, tokens, e.config), nil
}

// Render is a convenience method that parses and renders in one step.
// For templates that will be rendered multiple times, use Parse()
// instead.
func (e *Engine) Render(source string, ctx *TemplateContext) (string, error) {
	tmpl, err := e.Parse(source)
	if err != nil {
		return "", err
	}

	e.logger.Debug(LogMsgRenderStart, zap.Int(LogFieldTokens, tmpl.TokenCount()))
	out, err := tmpl.Render(ctx)
	if err != nil {
		e.logger.Debug(LogMsgRenderFailed, zap.Error(err))
		return "", err
	}
	e.logger.Debug(LogMsgRenderEnd, zap.Int(LogFieldOutputBytes, len(out)))
	return out, nil
}

// RenderStored fetches the latest version of a named template from the
// configured storage backend and renders it. Requires WithStorage.
func (e *Engine) RenderStored(ctx context.Context, name string, tc *TemplateContext) (string, error) {
	if e.config.storage == nil {
		return "", &StorageError{Message: ErrMsgNoStorageConfigured}
	}
	stored, err := e.config.storage.Get(ctx, name)
	if err != nil {
		return "", err
	}
	return e.Render(stored.Source, tc)
}

// Storage returns the configured storage backend, or nil.
func (e *Engine) Storage() TemplateStorage {
	return e.config.storage
}
