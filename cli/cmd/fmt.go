package cmd

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/rensoftworks/slang/lang"
)

// Fmt parses a document and rewrites it in the chosen output format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical slang syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
}

// Native formats input as canonical slang syntax.
type Native struct {
	Inline bool `help:"Emit the whole document on a single line" short:"l"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the fmt command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openSource(f.Source)
	if err != nil {
		return err
	}
	defer file.Close()

	doc, err := lang.ParseReader(ctx, bufio.NewReader(file))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "native"))
	}

	err = doc.Format(ctx, os.Stdout, f.Inline)
	if err != nil {
		return err
	}

	if f.Inline && doc.Len() > 0 {
		_, err = os.Stdout.WriteString("\n")
	}

	return err
}

// JSON parses a document and outputs it as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openSource(j.Source)
	if err != nil {
		return err
	}
	defer file.Close()

	doc, err := lang.ParseReader(ctx, bufio.NewReader(file))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "json"))
	}

	return doc.FormatJSON(ctx, os.Stdout, j.Indent)
}

// YAML parses a document and outputs it as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openSource(y.Source)
	if err != nil {
		return err
	}
	defer file.Close()

	doc, err := lang.ParseReader(ctx, bufio.NewReader(file))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "yaml"))
	}

	return doc.FormatYAML(ctx, os.Stdout, y.Indent)
}
