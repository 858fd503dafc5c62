package cmd

import (
	"context"
	"io"

	"github.com/rensoftworks/slang/cli/cmd/repl"
	"github.com/rensoftworks/slang/log"
)

// Repl starts an interactive session. When a source is given, the session
// begins with that document loaded; otherwise it starts empty.
type Repl struct {
	Source string `help:"Source input file or '-' for stdin" short:"f"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	cacheDir := ktx.Model.Vars()[CacheIdentifier]

	var reader io.Reader

	if r.Source != "" {
		file, err := openSource(r.Source)
		if err != nil {
			return err
		}
		defer file.Close()

		reader = file
	}

	return repl.Run(ctx, reader, cacheDir, log.Default())
}
