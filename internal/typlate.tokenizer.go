package internal

import (
	"strings"

	"go.uber.org/zap"
)

// Tokenizer scans raw template text into a flat token sequence in a
// single left-to-right pass. Loop boundaries are resolved into index
// spans by a link pass over the finished sequence, so no text is ever
// re-scanned. Each Tokenize call is independent and stateless.
type Tokenizer struct {
	source string
	pos    int // Current byte position
	line   int // Current line (1-indexed)
	column int // Current column (1-indexed)
	tokens []Token
	logger *zap.Logger
}

// NewTokenizer creates a tokenizer for the given source
func NewTokenizer(source string, logger *zap.Logger) *Tokenizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgTokenizerCreated, zap.Int(LogFieldSourceBytes, len(source)))
	return &Tokenizer{
		source: source,
		pos:    0,
		line:   1,
		column: 1,
		logger: logger,
	}
}

// Tokenize processes the source and returns the linked token sequence
func (t *Tokenizer) Tokenize() ([]Token, error) {
	t.logger.Debug(LogMsgTokenizeStart)

	for !t.isAtEnd() {
		if err := t.scanNext(); err != nil {
			return nil, err
		}
	}

	if err := t.linkLoops(); err != nil {
		return nil, err
	}

	t.logger.Debug(LogMsgTokenizeEnd, zap.Int(LogFieldTokens, len(t.tokens)))
	return t.tokens, nil
}

// scanNext consumes the literal run up to the next opening delimiter,
// then the delimiter construct itself
func (t *Tokenizer) scanNext() error {
	runStart := t.pos
	idx := strings.Index(t.source[t.pos:], StrOpenDelim)
	if idx < 0 {
		// No more delimiters, rest of the source is literal text
		t.emitLiteral(t.source[t.pos:], t.currentPosition())
		t.advanceTo(len(t.source))
		return nil
	}

	delimPos := t.pos + idx

	// Count backslashes immediately before the delimiter. Odd count
	// escapes it; either way count/2 literal backslashes are emitted
	// and the markers themselves are consumed.
	backslashes := 0
	for delimPos-backslashes-1 >= runStart && t.source[delimPos-backslashes-1] == CharBackslash {
		backslashes++
	}
	textEnd := delimPos - backslashes

	if textEnd > runStart {
		t.emitLiteral(t.source[runStart:textEnd], t.currentPosition())
	}
	if backslashes/2 > 0 {
		pos := t.positionAt(textEnd)
		t.emitLiteral(strings.Repeat(string(CharBackslash), backslashes/2), pos)
	}
	t.advanceTo(delimPos)

	if backslashes%2 == 1 {
		return t.scanEscaped()
	}
	return t.scanConstruct()
}

// scanEscaped consumes an escaped {{...}} and emits it verbatim
func (t *Tokenizer) scanEscaped() error {
	pos := t.currentPosition()
	idx := strings.Index(t.source[t.pos+len(StrOpenDelim):], StrCloseDelim)
	if idx < 0 {
		return &TokenizeError{Message: ErrMsgUnterminatedPlaceholder, Position: pos}
	}
	end := t.pos + len(StrOpenDelim) + idx + len(StrCloseDelim)
	t.tokens = append(t.tokens, Token{
		Kind:     TokenKindEscapedLiteral,
		Text:     t.source[t.pos:end],
		Position: pos,
	})
	t.advanceTo(end)
	return nil
}

// scanConstruct consumes a {{...}} construct at the current position
// and emits a Placeholder, LoopStart, or LoopEnd token
func (t *Tokenizer) scanConstruct() error {
	pos := t.currentPosition()
	idx := strings.Index(t.source[t.pos+len(StrOpenDelim):], StrCloseDelim)
	if idx < 0 {
		return &TokenizeError{Message: ErrMsgUnterminatedPlaceholder, Position: pos}
	}
	content := t.source[t.pos+len(StrOpenDelim) : t.pos+len(StrOpenDelim)+idx]
	end := t.pos + len(StrOpenDelim) + idx + len(StrCloseDelim)

	trimmed := strings.TrimSpace(content)
	switch {
	case trimmed == KeywordEndEach:
		t.tokens = append(t.tokens, Token{Kind: TokenKindLoopEnd, Position: pos})
	case strings.HasPrefix(trimmed, KeywordEachPrefix):
		tok, err := t.parseLoopStart(strings.TrimPrefix(trimmed, KeywordEachPrefix), pos)
		if err != nil {
			return err
		}
		t.tokens = append(t.tokens, tok)
	case trimmed == KeywordEach || strings.HasPrefix(trimmed, "/"):
		return &TokenizeError{Message: ErrMsgInvalidLoopSyntax, Position: pos, Path: trimmed}
	default:
		segments, err := splitPath(trimmed, pos)
		if err != nil {
			return err
		}
		t.tokens = append(t.tokens, Token{
			Kind:     TokenKindPlaceholder,
			Path:     trimmed,
			Segments: segments,
			Position: pos,
		})
	}

	t.advanceTo(end)
	return nil
}

// parseLoopStart parses the "path |binding|" portion of an each header
func (t *Tokenizer) parseLoopStart(rest string, pos Position) (Token, error) {
	open := strings.IndexByte(rest, CharPipe)
	if open < 0 {
		return Token{}, &TokenizeError{Message: ErrMsgInvalidLoopSyntax, Position: pos, Path: rest}
	}
	closing := strings.IndexByte(rest[open+1:], CharPipe)
	if closing < 0 {
		return Token{}, &TokenizeError{Message: ErrMsgInvalidLoopSyntax, Position: pos, Path: rest}
	}

	path := strings.TrimSpace(rest[:open])
	binding := strings.TrimSpace(rest[open+1 : open+1+closing])
	trailing := strings.TrimSpace(rest[open+1+closing+1:])

	if binding == "" || !isIdentifier(binding) || trailing != "" {
		return Token{}, &TokenizeError{Message: ErrMsgInvalidLoopSyntax, Position: pos, Path: rest}
	}
	segments, err := splitPath(path, pos)
	if err != nil {
		return Token{}, err
	}

	return Token{
		Kind:      TokenKindLoopStart,
		Path:      path,
		Segments:  segments,
		Binding:   binding,
		BodyStart: -1,
		BodyEnd:   -1,
		Position:  pos,
	}, nil
}

// linkLoops matches LoopStart/LoopEnd pairs with a depth stack and
// records body spans as half-open index ranges
func (t *Tokenizer) linkLoops() error {
	var stack []int
	for i := range t.tokens {
		switch t.tokens[i].Kind {
		case TokenKindLoopStart:
			stack = append(stack, i)
		case TokenKindLoopEnd:
			if len(stack) == 0 {
				return &TokenizeError{
					Message:  ErrMsgUnmatchedLoopEnd,
					Position: t.tokens[i].Position,
				}
			}
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			t.tokens[start].BodyStart = start + 1
			t.tokens[start].BodyEnd = i
		}
	}
	if len(stack) > 0 {
		open := t.tokens[stack[len(stack)-1]]
		return &TokenizeError{
			Message:  ErrMsgUnterminatedLoop,
			Position: open.Position,
			Path:     open.Path,
		}
	}
	return nil
}

// emitLiteral appends a literal token, skipping empty runs
func (t *Tokenizer) emitLiteral(text string, pos Position) {
	if text == "" {
		return
	}
	t.tokens = append(t.tokens, Token{Kind: TokenKindLiteral, Text: text, Position: pos})
}

// Helper methods

// currentPosition returns the current position
func (t *Tokenizer) currentPosition() Position {
	return Position{Offset: t.pos, Line: t.line, Column: t.column}
}

// positionAt computes the position of a byte offset at or ahead of the
// current position without consuming input
func (t *Tokenizer) positionAt(offset int) Position {
	line, column := t.line, t.column
	for i := t.pos; i < offset && i < len(t.source); i++ {
		if t.source[i] == CharNewline {
			line++
			column = 1
		} else {
			column++
		}
	}
	return Position{Offset: offset, Line: line, Column: column}
}

// advanceTo consumes input up to the target offset, tracking lines
func (t *Tokenizer) advanceTo(target int) {
	for t.pos < target && t.pos < len(t.source) {
		if t.source[t.pos] == CharNewline {
			t.line++
			t.column = 1
		} else {
			t.column++
		}
		t.pos++
	}
}

// isAtEnd returns true if we've reached the end of source
func (t *Tokenizer) isAtEnd() bool {
	return t.pos >= len(t.source)
}

// splitPath validates a dotted key path and returns its segments.
// Segments are alphanumeric/underscore runs separated by single dots.
func splitPath(path string, pos Position) ([]string, error) {
	if path == "" {
		return nil, &TokenizeError{Message: ErrMsgEmptyPath, Position: pos}
	}
	segments := strings.Split(path, string(CharDot))
	for _, seg := range segments {
		if !isIdentifier(seg) {
			return nil, &TokenizeError{Message: ErrMsgInvalidPath, Position: pos, Path: path}
		}
	}
	return segments, nil
}

// isIdentifier reports whether s is a non-empty alphanumeric/underscore run
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) && !isDigit(s[i]) && s[i] != '_' {
			return false
		}
	}
	return true
}

// Character classification helpers

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
