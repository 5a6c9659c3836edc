package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameGenerate = "generate"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagTemplate = "template"
	FlagData     = "data"
	FlagDataFile = "data-file"
	FlagFormat   = "format"
	FlagOutput   = "output"
	FlagLayout   = "layout"
	FlagRoot     = "root"
	FlagBudget   = "budget"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagDataShort     = "d"
	FlagDataFileShort = "f"
	FlagFormatShort   = "F"
	FlagOutputShort   = "o"
	FlagLayoutShort   = "l"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = DataFormatTOML
	FlagDefaultLayout = "default"
)

// Data formats
const (
	DataFormatTOML = "toml"
	DataFormatYAML = "yaml"
)

// Input source markers
const (
	InputSourceStdin = "-"
)

// Exit codes
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeUsageError = 2
	ExitCodeInputError = 3
)

// File permissions for output files
const FilePermissions = 0o644

// Version of the CLI
const Version = "0.3.0"

// Output format strings
const (
	FmtErrorWithCause = "Error: %s: %v\n"
	FmtError          = "Error: %s\n"
	FmtVersion        = "typlate %s\n"
	FmtValidateOK     = "OK: %d tokens\n"
	FmtGeneratedFile  = "generated %s\n"
)

// Error message constants
const (
	ErrMsgMissingTemplate  = "missing -template flag"
	ErrMsgReadFileFailed   = "failed to read input"
	ErrMsgInvalidData      = "failed to decode data"
	ErrMsgUnknownFormat    = "unknown data format"
	ErrMsgRenderFailed     = "render failed"
	ErrMsgValidateFailed   = "template is invalid"
	ErrMsgWriteFailed      = "failed to write output"
	ErrMsgMissingData      = "missing -data-file flag"
	ErrMsgLayoutFailed     = "layout resolution failed"
	ErrMsgGenerateFailed   = "generation failed"
	ErrMsgMissingOutputDir = "missing -output flag"
)
