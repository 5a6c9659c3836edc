package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTokenizer_Tokenize_PlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:  "simple text",
			input: "Hello, world!",
			expected: []Token{
				{Kind: TokenKindLiteral, Text: "Hello, world!", Position: Position{Offset: 0, Line: 1, Column: 1}},
			},
		},
		{
			name:  "multiline text",
			input: "Line 1\nLine 2\nLine 3",
			expected: []Token{
				{Kind: TokenKindLiteral, Text: "Line 1\nLine 2\nLine 3", Position: Position{Offset: 0, Line: 1, Column: 1}},
			},
		},
		{
			name:  "single closing braces without opener are literal",
			input: "a }} b",
			expected: []Token{
				{Kind: TokenKindLiteral, Text: "a }} b", Position: Position{Offset: 0, Line: 1, Column: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenizer := NewTokenizer(tt.input, zap.NewNop())
			tokens, err := tokenizer.Tokenize()
			require.NoError(t, err)
			assertTokensMatch(t, tt.expected, tokens)
		})
	}
}

func TestTokenizer_Tokenize_Placeholders(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "bare placeholder",
			input: "{{name}}",
			expected: []Token{
				{Kind: TokenKindPlaceholder, Path: "name", Segments: []string{"name"}, Position: Position{Offset: 0, Line: 1, Column: 1}},
			},
		},
		{
			name:  "placeholder with surrounding text",
			input: "Hello {{name}}!",
			expected: []Token{
				{Kind: TokenKindLiteral, Text: "Hello ", Position: Position{Offset: 0, Line: 1, Column: 1}},
				{Kind: TokenKindPlaceholder, Path: "name", Segments: []string{"name"}, Position: Position{Offset: 6, Line: 1, Column: 7}},
				{Kind: TokenKindLiteral, Text: "!", Position: Position{Offset: 14, Line: 1, Column: 15}},
			},
		},
		{
			name:  "whitespace inside delimiters is trimmed",
			input: "{{  name  }}",
			expected: []Token{
				{Kind: TokenKindPlaceholder, Path: "name", Segments: []string{"name"}, Position: Position{Offset: 0, Line: 1, Column: 1}},
			},
		},
		{
			name:  "nested path",
			input: "{{paper.author.name}}",
			expected: []Token{
				{Kind: TokenKindPlaceholder, Path: "paper.author.name", Segments: []string{"paper", "author", "name"}, Position: Position{Offset: 0, Line: 1, Column: 1}},
			},
		},
		{
			name:  "underscore and digits in segments",
			input: "{{item_2.value_1}}",
			expected: []Token{
				{Kind: TokenKindPlaceholder, Path: "item_2.value_1", Segments: []string{"item_2", "value_1"}, Position: Position{Offset: 0, Line: 1, Column: 1}},
			},
		},
		{
			name:  "placeholder on later line",
			input: "line one\nhi {{x}}",
			expected: []Token{
				{Kind: TokenKindLiteral, Text: "line one\nhi ", Position: Position{Offset: 0, Line: 1, Column: 1}},
				{Kind: TokenKindPlaceholder, Path: "x", Segments: []string{"x"}, Position: Position{Offset: 12, Line: 2, Column: 4}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenizer := NewTokenizer(tt.input, zap.NewNop())
			tokens, err := tokenizer.Tokenize()
			require.NoError(t, err)
			assertTokensMatch(t, tt.expected, tokens)
		})
	}
}

func TestTokenizer_Tokenize_Escapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "single backslash escapes the construct",
			input: `\{{name}}`,
			expected: []Token{
				{Kind: TokenKindEscapedLiteral, Text: "{{name}}", Position: Position{Offset: 1, Line: 1, Column: 2}},
			},
		},
		{
			name:  "double backslash yields one backslash and a live placeholder",
			input: `\\{{name}}`,
			expected: []Token{
				{Kind: TokenKindLiteral, Text: `\`, Position: Position{Offset: 0, Line: 1, Column: 1}},
				{Kind: TokenKindPlaceholder, Path: "name", Segments: []string{"name"}, Position: Position{Offset: 2, Line: 1, Column: 3}},
			},
		},
		{
			name:  "triple backslash yields one backslash and an escaped construct",
			input: `\\\{{name}}`,
			expected: []Token{
				{Kind: TokenKindLiteral, Text: `\`, Position: Position{Offset: 0, Line: 1, Column: 1}},
				{Kind: TokenKindEscapedLiteral, Text: "{{name}}", Position: Position{Offset: 3, Line: 1, Column: 4}},
			},
		},
		{
			name:  "backslash away from a delimiter is plain text",
			input: `a\b`,
			expected: []Token{
				{Kind: TokenKindLiteral, Text: `a\b`, Position: Position{Offset: 0, Line: 1, Column: 1}},
			},
		},
		{
			name:  "text before escaped construct",
			input: `use \{{x}} here`,
			expected: []Token{
				{Kind: TokenKindLiteral, Text: "use ", Position: Position{Offset: 0, Line: 1, Column: 1}},
				{Kind: TokenKindEscapedLiteral, Text: "{{x}}", Position: Position{Offset: 5, Line: 1, Column: 6}},
				{Kind: TokenKindLiteral, Text: " here", Position: Position{Offset: 10, Line: 1, Column: 11}},
			},
		},
		{
			name:  "escaped each header stays inert",
			input: `\{{each items |item|}}`,
			expected: []Token{
				{Kind: TokenKindEscapedLiteral, Text: "{{each items |item|}}", Position: Position{Offset: 1, Line: 1, Column: 2}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenizer := NewTokenizer(tt.input, zap.NewNop())
			tokens, err := tokenizer.Tokenize()
			require.NoError(t, err)
			assertTokensMatch(t, tt.expected, tokens)
		})
	}
}

func TestTokenizer_Tokenize_Loops(t *testing.T) {
	t.Run("simple loop body span", func(t *testing.T) {
		tokenizer := NewTokenizer("{{each items |item|}}{{item}}{{/each}}", zap.NewNop())
		tokens, err := tokenizer.Tokenize()
		require.NoError(t, err)
		require.Len(t, tokens, 3)

		assert.Equal(t, TokenKindLoopStart, tokens[0].Kind)
		assert.Equal(t, "items", tokens[0].Path)
		assert.Equal(t, "item", tokens[0].Binding)
		assert.Equal(t, 1, tokens[0].BodyStart)
		assert.Equal(t, 2, tokens[0].BodyEnd)

		assert.Equal(t, TokenKindPlaceholder, tokens[1].Kind)
		assert.Equal(t, "item", tokens[1].Path)

		assert.Equal(t, TokenKindLoopEnd, tokens[2].Kind)
	})

	t.Run("loop with literal body", func(t *testing.T) {
		tokenizer := NewTokenizer("{{each rows |r|}}- {{r.name}}\n{{/each}}", zap.NewNop())
		tokens, err := tokenizer.Tokenize()
		require.NoError(t, err)
		require.Len(t, tokens, 5)

		assert.Equal(t, TokenKindLoopStart, tokens[0].Kind)
		assert.Equal(t, 1, tokens[0].BodyStart)
		assert.Equal(t, 4, tokens[0].BodyEnd)
		assert.Equal(t, TokenKindLiteral, tokens[1].Kind)
		assert.Equal(t, "- ", tokens[1].Text)
		assert.Equal(t, TokenKindPlaceholder, tokens[2].Kind)
		assert.Equal(t, []string{"r", "name"}, tokens[2].Segments)
		assert.Equal(t, TokenKindLiteral, tokens[3].Kind)
		assert.Equal(t, "\n", tokens[3].Text)
		assert.Equal(t, TokenKindLoopEnd, tokens[4].Kind)
	})

	t.Run("nested loops link to their own ends", func(t *testing.T) {
		tokenizer := NewTokenizer("{{each outer |o|}}{{each o.inner |i|}}{{i}}{{/each}}{{/each}}", zap.NewNop())
		tokens, err := tokenizer.Tokenize()
		require.NoError(t, err)
		require.Len(t, tokens, 5)

		assert.Equal(t, TokenKindLoopStart, tokens[0].Kind)
		assert.Equal(t, "outer", tokens[0].Path)
		assert.Equal(t, 1, tokens[0].BodyStart)
		assert.Equal(t, 4, tokens[0].BodyEnd)

		assert.Equal(t, TokenKindLoopStart, tokens[1].Kind)
		assert.Equal(t, "o.inner", tokens[1].Path)
		assert.Equal(t, []string{"o", "inner"}, tokens[1].Segments)
		assert.Equal(t, 2, tokens[1].BodyStart)
		assert.Equal(t, 3, tokens[1].BodyEnd)
	})

	t.Run("dotted loop source path", func(t *testing.T) {
		tokenizer := NewTokenizer("{{each refs.sets |set|}}{{set.path}}{{/each}}", zap.NewNop())
		tokens, err := tokenizer.Tokenize()
		require.NoError(t, err)
		require.Len(t, tokens, 3)
		assert.Equal(t, []string{"refs", "sets"}, tokens[0].Segments)
		assert.Equal(t, "set", tokens[0].Binding)
	})

	t.Run("whitespace tolerant each header", func(t *testing.T) {
		tokenizer := NewTokenizer("{{ each items | item | }}{{/each}}", zap.NewNop())
		tokens, err := tokenizer.Tokenize()
		require.NoError(t, err)
		require.Len(t, tokens, 2)
		assert.Equal(t, "items", tokens[0].Path)
		assert.Equal(t, "item", tokens[0].Binding)
	})
}

func TestTokenizer_Tokenize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		line    int
		column  int
	}{
		{
			name:    "unterminated placeholder",
			input:   "Hello {{name",
			message: ErrMsgUnterminatedPlaceholder,
			line:    1,
			column:  7,
		},
		{
			name:    "unterminated escaped construct",
			input:   `\{{name`,
			message: ErrMsgUnterminatedPlaceholder,
			line:    1,
			column:  2,
		},
		{
			name:    "unterminated loop",
			input:   "{{each items |item|}}{{item}}",
			message: ErrMsgUnterminatedLoop,
			line:    1,
			column:  1,
		},
		{
			name:    "unmatched loop end",
			input:   "text {{/each}}",
			message: ErrMsgUnmatchedLoopEnd,
			line:    1,
			column:  6,
		},
		{
			name:    "each without binding",
			input:   "{{each items}}{{/each}}",
			message: ErrMsgInvalidLoopSyntax,
			line:    1,
			column:  1,
		},
		{
			name:    "each without path",
			input:   "{{each |item|}}{{/each}}",
			message: ErrMsgEmptyPath,
			line:    1,
			column:  1,
		},
		{
			name:    "each with trailing junk",
			input:   "{{each items |item| extra}}{{/each}}",
			message: ErrMsgInvalidLoopSyntax,
			line:    1,
			column:  1,
		},
		{
			name:    "each with empty binding",
			input:   "{{each items ||}}{{/each}}",
			message: ErrMsgInvalidLoopSyntax,
			line:    1,
			column:  1,
		},
		{
			name:    "bare each keyword",
			input:   "{{each}}",
			message: ErrMsgInvalidLoopSyntax,
			line:    1,
			column:  1,
		},
		{
			name:    "unknown slash construct",
			input:   "{{/if}}",
			message: ErrMsgInvalidLoopSyntax,
			line:    1,
			column:  1,
		},
		{
			name:    "empty placeholder",
			input:   "{{}}",
			message: ErrMsgEmptyPath,
			line:    1,
			column:  1,
		},
		{
			name:    "path with empty segment",
			input:   "{{a..b}}",
			message: ErrMsgInvalidPath,
			line:    1,
			column:  1,
		},
		{
			name:    "path with leading dot",
			input:   "{{.a}}",
			message: ErrMsgInvalidPath,
			line:    1,
			column:  1,
		},
		{
			name:    "path with illegal character",
			input:   "{{a-b}}",
			message: ErrMsgInvalidPath,
			line:    1,
			column:  1,
		},
		{
			name:    "error position on later line",
			input:   "line one\n  {{broken",
			message: ErrMsgUnterminatedPlaceholder,
			line:    2,
			column:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenizer := NewTokenizer(tt.input, zap.NewNop())
			tokens, err := tokenizer.Tokenize()
			require.Error(t, err)
			assert.Nil(t, tokens)

			var terr *TokenizeError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, tt.message, terr.Message)
			assert.Equal(t, tt.line, terr.Position.Line)
			assert.Equal(t, tt.column, terr.Position.Column)
		})
	}
}

func TestTokenizer_NilLoggerDefaultsToNop(t *testing.T) {
	tokenizer := NewTokenizer("{{x}}", nil)
	tokens, err := tokenizer.Tokenize()
	require.NoError(t, err)
	assert.Len(t, tokens, 1)
}

func TestTokenizeError_Error(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		err := &TokenizeError{
			Message:  ErrMsgInvalidPath,
			Position: Position{Offset: 4, Line: 2, Column: 3},
			Path:     "a..b",
		}
		assert.Equal(t, "invalid key path 'a..b' at line 2, column 3", err.Error())
	})

	t.Run("without path", func(t *testing.T) {
		err := &TokenizeError{
			Message:  ErrMsgUnterminatedPlaceholder,
			Position: Position{Offset: 0, Line: 1, Column: 1},
		}
		assert.Equal(t, "unterminated placeholder at line 1, column 1", err.Error())
	})
}

func TestTokenKind_String(t *testing.T) {
	assert.Equal(t, "Literal", TokenKindLiteral.String())
	assert.Equal(t, "EscapedLiteral", TokenKindEscapedLiteral.String())
	assert.Equal(t, "Placeholder", TokenKindPlaceholder.String())
	assert.Equal(t, "LoopStart", TokenKindLoopStart.String())
	assert.Equal(t, "LoopEnd", TokenKindLoopEnd.String())
	assert.Equal(t, "Unknown", TokenKind(99).String())
}

// assertTokensMatch compares the fields tests care about, ignoring the
// unlinked BodyStart/BodyEnd defaults on non-loop tokens
func assertTokensMatch(t *testing.T, expected, actual []Token) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.Equal(t, expected[i].Kind, actual[i].Kind, "token %d kind", i)
		assert.Equal(t, expected[i].Text, actual[i].Text, "token %d text", i)
		assert.Equal(t, expected[i].Path, actual[i].Path, "token %d path", i)
		assert.Equal(t, expected[i].Segments, actual[i].Segments, "token %d segments", i)
		assert.Equal(t, expected[i].Binding, actual[i].Binding, "token %d binding", i)
		assert.Equal(t, expected[i].Position, actual[i].Position, "token %d position", i)
	}
}
