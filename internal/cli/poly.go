package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/calclab/analytic"
	"github.com/calclab/analytic/internal/batch"
)

// PolyOptions holds flags for the poly command.
type PolyOptions struct {
	A, B float64
	At   float64
}

// PolyResult is the output of the poly command.
type PolyResult struct {
	Coefficients        []float64 `json:"coefficients"`
	Poly                string    `json:"poly"`
	LaTeX               string    `json:"latex"`
	Derivative          string    `json:"derivative"`
	DerivativeLaTeX     string    `json:"derivative_latex"`
	Antiderivative      string    `json:"antiderivative"`
	AntiderivativeLaTeX string    `json:"antiderivative_latex"`
	At                  float64   `json:"at"`
	Value               float64   `json:"value"`
	Slope               float64   `json:"slope"`
	A                   float64   `json:"a"`
	B                   float64   `json:"b"`
	Integral            float64   `json:"integral"`
}

// WriteText writes the symbolic results followed by the evaluations.
func (r *PolyResult) WriteText(w io.Writer) error {
	line := func(label, value string) {
		fmt.Fprintf(w, "%s %s\n", labelColor.Sprintf("%-10s", label), value)
	}
	line("p(x)", r.Poly)
	line("latex", r.LaTeX)
	line("p'(x)", r.Derivative)
	line("latex", r.DerivativeLaTeX)
	line("∫p(x)dx", r.Antiderivative)
	line("latex", r.AntiderivativeLaTeX)
	line(fmt.Sprintf("p(%g)", r.At), valueColor.Sprint(batch.FormatValue(r.Value)))
	line(fmt.Sprintf("p'(%g)", r.At), valueColor.Sprint(batch.FormatValue(r.Slope)))
	line(fmt.Sprintf("∫[%g,%g]", r.A, r.B), valueColor.Sprint(batch.FormatValue(r.Integral)))
	return nil
}

// NewPolyCommand creates the poly command.
func NewPolyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PolyOptions{}

	cmd := &cobra.Command{
		Use:   "poly <c0> [c1 ...]",
		Short: "Differentiate and integrate a polynomial symbolically",
		Long: `Differentiate and integrate the polynomial c0 + c1·x + c2·x² + ...
symbolically. The results are printed in plain and LaTeX notation,
together with p and p' at --at and the definite integral over [a, b].

Put -- before the coefficients if any of them is negative:

  analytic poly --at 2 -- 1 -1 3`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPoly(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.A, "a", 0, "lower bound of the definite integral")
	cmd.Flags().Float64Var(&opts.B, "b", 1, "upper bound of the definite integral")
	cmd.Flags().Float64Var(&opts.At, "at", 0, "point at which to evaluate")

	return cmd
}

func runPoly(rootOpts *RootOptions, opts *PolyOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	p := make(analytic.Poly, len(args))
	for i, arg := range args {
		c, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeArgs, fmt.Sprintf("coefficient %d", i), err)
		}
		p[i] = c
	}
	slog.Debug("polynomial", "coefficients", []float64(p), "degree", p.Degree())

	f := analytic.New(p.At, analytic.WithExpr(p))
	d, err := f.SymbolicDerivative()
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeCompute, "differentiating", err)
	}
	F, err := f.SymbolicAntiderivative()
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeCompute, "integrating", err)
	}
	slope, err := f.DerivativeAt(opts.At)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeCompute, "evaluating derivative", err)
	}
	integral, err := f.DefiniteIntegral(opts.A, opts.B)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeCompute, "evaluating integral", err)
	}

	return formatter.Success(&PolyResult{
		Coefficients:        p,
		Poly:                p.String(),
		LaTeX:               p.LaTeX(),
		Derivative:          d.String(),
		DerivativeLaTeX:     d.LaTeX(),
		Antiderivative:      F.String(),
		AntiderivativeLaTeX: F.LaTeX(),
		At:                  opts.At,
		Value:               f.Eval(opts.At),
		Slope:               real(slope),
		A:                   opts.A,
		B:                   opts.B,
		Integral:            real(integral),
	})
}
