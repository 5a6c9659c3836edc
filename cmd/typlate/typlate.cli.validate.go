package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/SotaTne/typlate"
)

// runValidate parses a template and reports whether its syntax is well formed.
func runValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(CmdNameValidate, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var templatePath string
	fs.StringVar(&templatePath, FlagTemplate, "", "template file path, or - for stdin")
	fs.StringVar(&templatePath, FlagTemplateShort, "", "template file path (short)")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, FmtError, err.Error())
		return ExitCodeUsageError
	}

	if templatePath == "" {
		fmt.Fprintf(stderr, FmtError, ErrMsgMissingTemplate)
		return ExitCodeUsageError
	}

	source, err := readInput(templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	engine := typlate.MustNew()
	tmpl, err := engine.Parse(source)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgValidateFailed, err)
		return ExitCodeError
	}

	fmt.Fprintf(stdout, FmtValidateOK, tmpl.TokenCount())
	return ExitCodeSuccess
}
