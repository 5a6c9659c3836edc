package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/SotaTne/typlate"
)

// runRender renders a template file (or stdin) against TOML or YAML data.
func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(CmdNameRender, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var templatePath, data, dataFile, format, output string
	var budget int
	fs.StringVar(&templatePath, FlagTemplate, "", "template file path, or - for stdin")
	fs.StringVar(&templatePath, FlagTemplateShort, "", "template file path (short)")
	fs.StringVar(&data, FlagData, "", "inline TOML data")
	fs.StringVar(&data, FlagDataShort, "", "inline TOML data (short)")
	fs.StringVar(&dataFile, FlagDataFile, "", "data file path")
	fs.StringVar(&dataFile, FlagDataFileShort, "", "data file path (short)")
	fs.StringVar(&format, FlagFormat, "", "data format: toml or yaml (default from file extension)")
	fs.StringVar(&format, FlagFormatShort, "", "data format (short)")
	fs.StringVar(&output, FlagOutput, FlagDefaultOutput, "output file path, or - for stdout")
	fs.StringVar(&output, FlagOutputShort, FlagDefaultOutput, "output file path (short)")
	fs.IntVar(&budget, FlagBudget, 0, "step budget override")

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

	tc, code := loadContext(data, dataFile, format, stderr)
	if code != ExitCodeSuccess {
		return code
	}

	opts := []typlate.Option{}
	if budget > 0 {
		opts = append(opts, typlate.WithStepBudget(budget))
	}
	engine := typlate.MustNew(opts...)

	rendered, err := engine.Render(source, tc)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return ExitCodeError
	}

	if err := writeOutput(output, rendered, stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteFailed, err)
		return ExitCodeError
	}
	return ExitCodeSuccess
}

// loadContext builds a TemplateContext from inline data or a data file.
// An empty context is returned when neither is given.
func loadContext(data, dataFile, format string, stderr io.Writer) (*typlate.TemplateContext, int) {
	switch {
	case data != "":
		tc, err := typlate.ContextFromTOML([]byte(data))
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidData, err)
			return nil, ExitCodeInputError
		}
		return tc, ExitCodeSuccess
	case dataFile != "":
		raw, err := os.ReadFile(dataFile)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
			return nil, ExitCodeInputError
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
			return nil, ExitCodeUsageError
		}
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidData, err)
			return nil, ExitCodeInputError
		}
		return tc, ExitCodeSuccess
	default:
		return typlate.NewTemplateContext(typlate.TableValue(nil)), ExitCodeSuccess
	}
}

func formatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DataFormatYAML
	default:
		return FlagDefaultFormat
	}
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == InputSourceStdin {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func writeOutput(path, content string, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := io.WriteString(stdout, content)
		return err
	}
	return os.WriteFile(path, []byte(content), FilePermissions)
}
