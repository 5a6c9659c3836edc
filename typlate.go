// Package typlate provides a pure text-substitution template engine for
// generating Typst files from template sources and a structured data
// context. It performs lexical substitution only: no expression
// evaluation, no conditionals, and no execution of the destination
// language inside placeholders.
//
// # Template Syntax
//
//	Hello {{name}}!                    scalar placeholder
//	{{author.email}}                   nested placeholder (dotted path)
//	{{each items |item|}}...{{/each}}  list iteration with a binding
//	\{{literal}}                       escape, emits {{literal}} verbatim
//
// Whitespace immediately inside delimiters is insignificant. Templates
// are valid Typst before generation, so editors keep working on the
// template files themselves.
//
// # Basic Usage
//
// Build a context from a TOML document and render:
//
//	ctx, err := typlate.ContextFromTOML(configBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine := typlate.MustNew()
//	out, err := engine.Render("Hello {{name}}!", ctx)
//
// Templates that will be rendered many times should be parsed once:
//
//	tmpl, err := engine.Parse(source)
//	out, err := tmpl.Render(ctx)
//
// A parsed Template is immutable and safe for concurrent use; renders
// over the same context are byte-identical and side-effect free.
//
// # Error Handling
//
// All failures surface as typed errors with position or path context,
// and rendering is all-or-nothing: callers never observe partial
// output. Pathological inputs are bounded by a per-render step budget
// rather than wall-clock cancellation:
//
//	engine, _ := typlate.New(
//	    typlate.WithStepBudget(100_000),
//	    typlate.WithLogger(logger),
//	)
package typlate
