package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"

	"github.com/rensoftworks/slang/lang"
)

// Eval evaluates an expression against a document. The document's top-level
// keys are bound as variables in the expression environment.
type Eval struct {
	Expr   string `arg:"" help:"Expression to evaluate"        name:"expr"`
	Source string `       help:"Source input file or '-' for stdin" default:"-" short:"f"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openSource(e.Source)
	if err != nil {
		return err
	}
	defer file.Close()

	doc, err := lang.ParseReader(ctx, bufio.NewReader(file))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"))
	}

	result, err := evalExpr(e.Expr, doc)
	if err != nil {
		return ErrEvalExpr.
			With(slog.String("expr", e.Expr)).
			Wrap(err)
	}

	fmt.Println(formatResult(result))

	return nil
}

// evalExpr compiles and runs an expression with the document's native
// representation as its environment.
func evalExpr(src string, doc *lang.Map) (any, error) {
	env := doc.ToNative()

	program, err := expr.Compile(src,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, err
	}

	return expr.Run(program, env)
}

// formatResult renders an evaluation result. Values expressible in slang
// render in canonical syntax; anything else falls back to Go formatting.
func formatResult(result any) string {
	val, err := lang.FromNative(result)
	if err != nil {
		return fmt.Sprint(result)
	}

	return val.String()
}
