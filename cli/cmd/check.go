package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/rensoftworks/slang/lang"
	"github.com/rensoftworks/slang/log"
)

// Check validates documents without producing formatted output. Each source
// is parsed independently and every failure is reported before the command
// returns.
type Check struct {
	Quiet bool `help:"Suppress per-file results, report only via exit status" short:"q"`

	Sources []string `arg:"" default:"-" help:"Source input file(s) or '-' for stdin." name:"sources" optional:""`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	failed := 0

	for _, src := range uniqueSources(c.Sources) {
		if err := c.checkSource(ctx, src); err != nil {
			failed++

			if !c.Quiet {
				fmt.Fprintf(os.Stderr, "%s: %v\n", src, err)

				// Lex and parse errors carry a position that can be
				// rendered against the offending source line.
				var le *lang.Error
				if errors.As(err, &le) {
					if snippet := sourceSnippet(src, le); snippet != "" {
						fmt.Fprint(os.Stderr, snippet)
					}
				}
			}

			continue
		}

		if !c.Quiet {
			fmt.Printf("%s: ok\n", src)
		}
	}

	if failed > 0 {
		return ErrCheckFailed.With(
			slog.Int("failed", failed),
			slog.Int("total", len(c.Sources)),
		)
	}

	return nil
}

// checkSource parses a single source, discarding the document.
func (c *Check) checkSource(ctx context.Context, src string) error {
	file, err := openSource(src)
	if err != nil {
		return err
	}
	defer file.Close()

	doc, err := lang.ParseReader(ctx, file)
	if err != nil {
		return err
	}

	log.TraceContext(ctx, "source valid",
		slog.String("source", src),
		slog.Int("key_count", doc.Len()),
	)

	return nil
}

// sourceSnippet re-reads a regular file to render the error's position
// against its source text. Stdin cannot be re-read, so it yields nothing.
func sourceSnippet(src string, le *lang.Error) string {
	if src == stdinSource {
		return ""
	}

	if _, ok := le.Pos(); !ok {
		return ""
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return ""
	}

	return le.Snippet(string(data))
}
