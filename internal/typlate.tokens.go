package internal

import "fmt"

// Position represents a location in the source template
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// TokenKind classifies a token in the flat token sequence
type TokenKind int

const (
	// TokenKindLiteral is raw text copied verbatim to output
	TokenKindLiteral TokenKind = iota
	// TokenKindEscapedLiteral is delimiter text emitted without substitution
	TokenKindEscapedLiteral
	// TokenKindPlaceholder is a {{key}} substitution site
	TokenKindPlaceholder
	// TokenKindLoopStart is a {{each path |binding|}} construct
	TokenKindLoopStart
	// TokenKindLoopEnd is the matching {{/each}} boundary
	TokenKindLoopEnd
)

// String returns the token kind name
func (k TokenKind) String() string {
	switch k {
	case TokenKindLiteral:
		return "Literal"
	case TokenKindEscapedLiteral:
		return "EscapedLiteral"
	case TokenKindPlaceholder:
		return "Placeholder"
	case TokenKindLoopStart:
		return "LoopStart"
	case TokenKindLoopEnd:
		return "LoopEnd"
	default:
		return "Unknown"
	}
}

// Token is one element of the flat token sequence produced by the
// tokenizer. Loop bodies are represented as half-open index spans over
// the sequence, so the renderer never re-scans source text.
type Token struct {
	Kind TokenKind

	// Text holds verbatim output for Literal and EscapedLiteral tokens.
	Text string

	// Path is the dotted key path for Placeholder and LoopStart tokens.
	Path string

	// Segments is Path pre-split on dots, computed once at tokenize time.
	Segments []string

	// Binding is the loop variable name for LoopStart tokens.
	Binding string

	// BodyStart and BodyEnd form a half-open index span [BodyStart,
	// BodyEnd) over the token sequence covering the loop body. BodyEnd
	// is the index of the matching LoopEnd. Only set on LoopStart.
	BodyStart int
	BodyEnd   int

	// Position is where the token begins in the source.
	Position Position
}

// String returns a human-readable representation of the token
func (t Token) String() string {
	switch t.Kind {
	case TokenKindPlaceholder:
		return fmt.Sprintf("Token{%s: %q @ %s}", t.Kind, t.Path, t.Position)
	case TokenKindLoopStart:
		return fmt.Sprintf("Token{%s: %q |%s| @ %s}", t.Kind, t.Path, t.Binding, t.Position)
	case TokenKindLoopEnd:
		return fmt.Sprintf("Token{%s @ %s}", t.Kind, t.Position)
	default:
		return fmt.Sprintf("Token{%s: %q @ %s}", t.Kind, t.Text, t.Position)
	}
}

// TokenizeError represents a tokenization failure with position context
type TokenizeError struct {
	Message  string
	Position Position
	Path     string // offending key path, when applicable
}

func (e *TokenizeError) Error() string {
	if e.Path != "" {
		return e.Message + " '" + e.Path + "' at " + e.Position.String()
	}
	return e.Message + " at " + e.Position.String()
}
