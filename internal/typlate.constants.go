package internal

// Delimiter constants - the {{ }} syntax matches what template authors
// already know from common text templating, with backslash escaping
const (
	StrOpenDelim  = "{{"
	StrCloseDelim = "}}"
)

// Keyword constants for block constructs
const (
	KeywordEach       = "each"
	KeywordEachPrefix = "each "
	KeywordEndEach    = "/each"
)

// Character constants
const (
	CharBackslash = byte('\\')
	CharNewline   = byte('\n')
	CharPipe      = byte('|')
	CharDot       = byte('.')
)

// Log message constants
const (
	LogMsgTokenizerCreated = "tokenizer created"
	LogMsgTokenizeStart    = "tokenization started"
	LogMsgTokenizeEnd      = "tokenization completed"
)

// Log field constants
const (
	LogFieldSourceBytes = "source_bytes"
	LogFieldTokens      = "token_count"
)

// Error message constants for tokenization
const (
	ErrMsgUnterminatedPlaceholder = "unterminated placeholder"
	ErrMsgUnterminatedLoop        = "unterminated each loop"
	ErrMsgUnmatchedLoopEnd        = "unmatched loop end"
	ErrMsgInvalidLoopSyntax       = "invalid each syntax"
	ErrMsgInvalidPath             = "invalid key path"
	ErrMsgEmptyPath               = "key path cannot be empty"
)
