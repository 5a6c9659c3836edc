package typlate

import "strings"

// TemplateContext wraps the root Value supplying substitution data for
// one render call. The root is expected to be a Table; any other kind
// fails at first path resolution. The context is read-only and never
// retained by the engine, so one context may serve concurrent renders.
type TemplateContext struct {
	root Value
}

// NewTemplateContext creates a context over the given root value
func NewTemplateContext(root Value) *TemplateContext {
	return &TemplateContext{root: root}
}

// Root returns the underlying value tree
func (c *TemplateContext) Root() Value {
	return c.root
}

// Resolve resolves a dotted path against the root value, without any
// loop overlays. Exposed for callers that inspect context data before
// rendering.
func (c *TemplateContext) Resolve(path string) (Value, error) {
	return resolvePath(c.root, nil, path, strings.Split(path, PathSeparator), Position{})
}

// Has reports whether a dotted path resolves to any value
func (c *TemplateContext) Has(path string) bool {
	_, err := c.Resolve(path)
	return err == nil
}
