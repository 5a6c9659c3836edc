package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/SotaTne/typlate"
)

// runGenerate renders a named layout against a project data file and writes
// the result atomically into the output directory.
func runGenerate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(CmdNameGenerate, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var layoutName, root, dataFile, format, output string
	fs.StringVar(&layoutName, FlagLayout, FlagDefaultLayout, "layout name")
	fs.StringVar(&layoutName, FlagLayoutShort, FlagDefaultLayout, "layout name (short)")
	fs.StringVar(&root, FlagRoot, ".", "project root, searched for a layouts directory")
	fs.StringVar(&dataFile, FlagDataFile, "", "data file path")
	fs.StringVar(&dataFile, FlagDataFileShort, "", "data file path (short)")
	fs.StringVar(&format, FlagFormat, "", "data format: toml or yaml (default from file extension)")
	fs.StringVar(&format, FlagFormatShort, "", "data format (short)")
	fs.StringVar(&output, FlagOutput, "", "output directory")
	fs.StringVar(&output, FlagOutputShort, "", "output directory (short)")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, FmtError, err.Error())
		return ExitCodeUsageError
	}

	if dataFile == "" {
		fmt.Fprintf(stderr, FmtError, ErrMsgMissingData)
		return ExitCodeUsageError
	}
	if output == "" {
		fmt.Fprintf(stderr, FmtError, ErrMsgMissingOutputDir)
		return ExitCodeUsageError
	}

	raw, err := os.ReadFile(dataFile)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}
	if format == "" {
		format = formatFromExtension(dataFile)
	}

	var tc *typlate.TemplateContext
	switch format {
	case DataFormatTOML:
		tc, err = typlate.ContextFromTOML(raw)
	case DataFormatYAML:
		tc, err = typlate.ContextFromYAML(raw)
	default:
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgUnknownFormat, format)
		return ExitCodeUsageError
	}
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidData, err)
		return ExitCodeInputError
	}

	layout, err := typlate.ResolveLayout(root, layoutName)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLayoutFailed, err)
		return ExitCodeError
	}

	engine := typlate.MustNew()
	files, err := typlate.GenerateLayout(engine, layout, tc)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgGenerateFailed, err)
		return ExitCodeError
	}

	if err := typlate.WriteGenerated(output, files); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteFailed, err)
		return ExitCodeError
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(stdout, FmtGeneratedFile, name)
	}
	return ExitCodeSuccess
}
