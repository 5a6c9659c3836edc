package typlate

import "time"

// Delimiter constants mirrored from the tokenizer for documentation
// and CLI help output
const (
	OpenDelim  = "{{"
	CloseDelim = "}}"
)

// Rendering defaults
const (
	// DefaultStepBudget bounds the number of tokens processed in one
	// render call. Each processed token, including loop re-entries,
	// consumes one step.
	DefaultStepBudget = 1_000_000
)

// Date stringification layout (ISO-8601 calendar date)
const (
	DateLayout = "2006-01-02"
)

// Boolean stringification literals
const (
	StrTrue  = "true"
	StrFalse = "false"
)

// Path separator for dot-notation
const PathSeparator = "."

// ExpectedScalar is the expected-kind label used in type mismatch
// errors raised at placeholder position
const ExpectedScalar = "Scalar"

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Tokenization errors
	ErrMsgTokenizeFailed          = "template tokenization failed"
	ErrMsgUnterminatedPlaceholder = "unterminated placeholder"
	ErrMsgUnterminatedLoop        = "unterminated each loop"
	ErrMsgUnmatchedLoopEnd        = "unmatched loop end"
	ErrMsgInvalidLoopSyntax       = "invalid each syntax"
	ErrMsgInvalidPath             = "invalid key path"
	ErrMsgEmptyPath               = "key path cannot be empty"

	// Rendering errors
	ErrMsgUnknownKey   = "unknown key"
	ErrMsgTypeMismatch = "type mismatch"
	ErrMsgTimeout      = "step budget exhausted"

	// Context decoding errors
	ErrMsgDecodeTOMLFailed = "TOML decoding failed"
	ErrMsgDecodeYAMLFailed = "YAML decoding failed"
	ErrMsgUnsupportedValue = "unsupported value type"
	ErrMsgNonStringMapKey  = "mapping keys must be strings"

	// Layout errors
	ErrMsgLayoutNotFound = "layout not found"
	ErrMsgLayoutNoRoot   = "layout root cannot be empty"
	ErrMsgGenerateFailed = "layout generation failed"
)

// Error code constants for categorization
const (
	ErrCodeTokenize = "TYPLATE_TOKENIZE"
	ErrCodeRender   = "TYPLATE_RENDER"
	ErrCodeDecode   = "TYPLATE_DECODE"
	ErrCodeLayout   = "TYPLATE_LAYOUT"
)

// Metadata key constants for error context
const (
	MetaKeyLine     = "line"
	MetaKeyColumn   = "column"
	MetaKeyOffset   = "offset"
	MetaKeyPath     = "path"
	MetaKeyExpected = "expected"
	MetaKeyActual   = "actual"
	MetaKeySteps    = "steps"
	MetaKeyLayout   = "layout"
	MetaKeyValue    = "value"
)

// Log message constants
const (
	LogMsgEngineCreated  = "engine created"
	LogMsgParseStart     = "template parse started"
	LogMsgParseEnd       = "template parse completed"
	LogMsgRenderStart    = "render started"
	LogMsgRenderEnd      = "render completed"
	LogMsgRenderFailed   = "render failed"
	LogMsgGenerateStart  = "layout generation started"
	LogMsgGenerateEnd    = "layout generation completed"
	LogMsgStorageChanged = "stored template changed on disk"
)

// Log field constants
const (
	LogFieldSourceBytes = "source_bytes"
	LogFieldTokens      = "token_count"
	LogFieldOutputBytes = "output_bytes"
	LogFieldSteps       = "steps_used"
	LogFieldLayout      = "layout"
	LogFieldFiles       = "file_count"
	LogFieldTemplate    = "template"
)

// Storage driver names
const (
	StorageDriverNameMemory     = "memory"
	StorageDriverNameFilesystem = "filesystem"
	StorageDriverNamePostgres   = "postgres"
)

// Filesystem storage constants
const (
	FilesystemDirPermissions  = 0o755
	FilesystemFilePermissions = 0o644
)

// Postgres storage defaults
const (
	PostgresTablePrefix            = "typlate_"
	PostgresDefaultMaxOpenConns    = 25
	PostgresDefaultMaxIdleConns    = 5
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
)

// Storage error message constants
const (
	ErrMsgStorageClosed        = "storage is closed"
	ErrMsgTemplateNotFound     = "template not found"
	ErrMsgTemplateNameEmpty    = "template name cannot be empty"
	ErrMsgInvalidStorageRoot   = "storage root cannot be empty"
	ErrMsgCreateStorageDir     = "failed to create storage directory"
	ErrMsgUnknownStorageDriver = "unknown storage driver"
	ErrMsgDriverExists         = "storage driver already registered"
	ErrMsgNoStorageConfigured  = "no storage configured"
	ErrMsgConnStringEmpty      = "connection string cannot be empty"
	ErrMsgStorageIO            = "storage I/O failed"
)
