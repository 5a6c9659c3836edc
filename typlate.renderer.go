package typlate

import (
	"strings"

	"github.com/SotaTne/typlate/internal"
)

// renderer walks a token sequence once and accumulates output text.
// Loops are driven by an explicit frame stack over precomputed body
// spans, so nesting depth never grows the call stack and every token
// visit costs exactly one budget step. Rendering is all-or-nothing: on
// any error the accumulated output is discarded.
type renderer struct {
	tokens []internal.Token
	root   Value
	frames []loopFrame
	budget int
	out    strings.Builder
}

func newRenderer(tokens []internal.Token, ctx *TemplateContext, budget int) *renderer {
	return &renderer{
		tokens: tokens,
		root:   ctx.Root(),
		budget: budget,
	}
}

// render performs the single linear pass and returns the output
func (r *renderer) render() (string, error) {
	initial := r.budget
	i := 0

	for i < len(r.tokens) {
		r.budget--
		if r.budget < 0 {
			return "", NewTimeoutError(initial)
		}

		tok := &r.tokens[i]
		switch tok.Kind {
		case internal.TokenKindLiteral, internal.TokenKindEscapedLiteral:
			r.out.WriteString(tok.Text)
			i++

		case internal.TokenKindPlaceholder:
			if err := r.substitute(tok); err != nil {
				return "", err
			}
			i++

		case internal.TokenKindLoopStart:
			next, err := r.enterLoop(tok)
			if err != nil {
				return "", err
			}
			i = next

		case internal.TokenKindLoopEnd:
			// Reached only by falling through a completed body span
			i = r.advanceLoop(i)
		}
	}

	return r.out.String(), nil
}

// substitute resolves a placeholder and appends its stringified value
func (r *renderer) substitute(tok *internal.Token) error {
	value, err := r.resolve(tok)
	if err != nil {
		return err
	}
	text, ok := value.scalarText()
	if !ok {
		pos := position(tok)
		return NewTypeMismatchError(tok.Path, ExpectedScalar, value.Kind(), pos)
	}
	r.out.WriteString(text)
	return nil
}

// enterLoop resolves the loop source list and returns the next token
// index: the body start for a non-empty list, or just past the matching
// LoopEnd for an empty one
func (r *renderer) enterLoop(tok *internal.Token) (int, error) {
	value, err := r.resolve(tok)
	if err != nil {
		return 0, err
	}
	if value.Kind() != KindList {
		return 0, NewTypeMismatchError(tok.Path, KindList.String(), value.Kind(), position(tok))
	}
	items := value.items()
	if len(items) == 0 {
		return tok.BodyEnd + 1, nil
	}
	r.frames = append(r.frames, loopFrame{
		binding:   tok.Binding,
		list:      items,
		index:     0,
		bodyStart: tok.BodyStart,
		bodyEnd:   tok.BodyEnd,
	})
	return tok.BodyStart, nil
}

// advanceLoop moves the innermost frame to its next element, re-entering
// the body span, or pops the frame once the list is consumed
func (r *renderer) advanceLoop(loopEnd int) int {
	frame := &r.frames[len(r.frames)-1]
	frame.index++
	if frame.index < len(frame.list) {
		return frame.bodyStart
	}
	r.frames = r.frames[:len(r.frames)-1]
	return loopEnd + 1
}

func (r *renderer) resolve(tok *internal.Token) (Value, error) {
	return resolvePath(r.root, r.frames, tok.Path, tok.Segments, position(tok))
}

func position(tok *internal.Token) Position {
	return Position{
		Offset: tok.Position.Offset,
		Line:   tok.Position.Line,
		Column: tok.Position.Column,
	}
}
