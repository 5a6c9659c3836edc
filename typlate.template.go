package typlate

import (
	"github.com/SotaTne/typlate/internal"
)

// Template is a tokenized template ready for rendering. The token
// sequence is built once at parse time, with loop bodies resolved into
// index spans, and is read-only afterwards: a Template may be rendered
// repeatedly and concurrently.
type Template struct {
	source string
	tokens []internal.Token
	config *engineConfig
}

func newTemplate(source string, tokens []internal.Token, config *engineConfig) *Template {
	return &Template{
		source: source,
		tokens: tokens,
		config: config,
	}
}

// Source returns the raw template source
func (t *Template) Source() string {
	return t.source
}

// TokenCount returns the length of the token sequence. Useful for
// sizing step budgets against known templates.
func (t *Template) TokenCount() int {
	return len(t.tokens)
}

// Render walks the token sequence once against the given context and
// returns the rendered string. On error no partial output is returned.
func (t *Template) Render(ctx *TemplateContext) (string, error) {
	return t.RenderWithBudget(ctx, t.config.stepBudget)
}

// RenderWithBudget renders with an explicit step budget, overriding the
// engine-level setting for this call only.
func (t *Template) RenderWithBudget(ctx *TemplateContext, budget int) (string, error) {
	if ctx == nil {
		ctx = NewTemplateContext(TableValue(nil))
	}
	r := newRenderer(t.tokens, ctx, budget)
	return r.render()
}
