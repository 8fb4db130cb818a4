package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/calclab/analytic"
	"github.com/calclab/analytic/internal/batch"
	"github.com/calclab/analytic/internal/expr"
)

// DeriveResult is the output of the derive command.
type DeriveResult struct {
	Expr  string  `json:"expr"`
	At    float64 `json:"at"`
	Step  float64 `json:"step"`
	Value float64 `json:"value"`
}

// WriteText writes the derivative on one line.
func (r *DeriveResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "d/dx %s at x=%g: %s\n",
		r.Expr, r.At, valueColor.Sprint(batch.FormatValue(r.Value)))
	return err
}

// NewDeriveCommand creates the derive command.
func NewDeriveCommand(rootOpts *RootOptions) *cobra.Command {
	var at float64

	cmd := &cobra.Command{
		Use:   "derive <expr>",
		Short: "Differentiate an expression at a point",
		Long: `Approximate the derivative of an expression in x with a centered
difference of fixed step.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerive(rootOpts, args[0], at, cmd)
		},
	}

	cmd.Flags().Float64Var(&at, "at", 0, "point at which to differentiate")

	return cmd
}

func runDerive(rootOpts *RootOptions, src string, at float64, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	e, err := expr.Compile(src)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeExpression, "invalid expression", err)
	}

	slog.Debug("differentiating", "expr", src, "at", at, "step", analytic.DerivativeStep())
	value, err := batch.Derive(e.Func(), at)
	if evalErr := e.Err(); evalErr != nil {
		err = evalErr
	}
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeCompute, "differentiation failed", err)
	}

	return formatter.Success(&DeriveResult{
		Expr:  e.String(),
		At:    at,
		Step:  analytic.DerivativeStep(),
		Value: value,
	})
}
