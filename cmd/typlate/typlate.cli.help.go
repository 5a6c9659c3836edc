package main

import (
	"fmt"
	"io"
)

func runVersion(stdout io.Writer) int {
	fmt.Fprintf(stdout, FmtVersion, Version)
	return ExitCodeSuccess
}

func runHelp(args []string, stdout io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(stdout, "unknown command: %s\n\n", args[0])
	}
	fmt.Fprint(stdout, helpText)
	if len(args) > 0 {
		return ExitCodeUsageError
	}
	return ExitCodeSuccess
}

const helpText = `typlate - text template rendering for Typst projects

Usage:
  typlate <command> [flags]

Commands:
  render     Render a template against TOML or YAML data
  validate   Check template syntax without rendering
  generate   Render a layout into an output directory
  version    Print version information
  help       Show this help

Render flags:
  -template, -t   Template file path, or - for stdin (required)
  -data, -d       Inline TOML data
  -data-file, -f  Data file path (.toml, .yaml, .yml)
  -format, -F     Data format: toml or yaml (default from file extension)
  -output, -o     Output file path, or - for stdout (default -)
  -budget         Step budget override

Validate flags:
  -template, -t   Template file path, or - for stdin (required)

Generate flags:
  -layout, -l     Layout name (default "default")
  -root           Project root, searched for a layouts directory (default ".")
  -data-file, -f  Data file path (required)
  -format, -F     Data format: toml or yaml (default from file extension)
  -output, -o     Output directory (required)

Examples:
  typlate render -t greeting.txt -d 'name = "Ada"'
  typlate render -t page.typ -f project.toml -o page.out.typ
  echo 'Hello {{name}}' | typlate render -t - -d 'name = "Ada"'
  typlate validate -t page.typ
  typlate generate -l default -f typlate.toml -o _generated
`
