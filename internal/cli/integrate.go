package cli

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calclab/analytic/internal/batch"
	"github.com/calclab/analytic/internal/expr"
)

// MethodAll runs every integration method.
const MethodAll = "all"

// IntegrateOptions holds flags for the integrate command.
type IntegrateOptions struct {
	A, B   float64
	Method string
	N, M   int
}

// MethodResult is the outcome of one integration method.
type MethodResult struct {
	Method string  `json:"method"`
	N      int     `json:"n"`
	M      *int    `json:"m,omitempty"`
	Value  float64 `json:"value"`
	Error  string  `json:"error,omitempty"`
}

// IntegrateResult is the output of the integrate command.
type IntegrateResult struct {
	Expr    string         `json:"expr"`
	A       float64        `json:"a"`
	B       float64        `json:"b"`
	Results []MethodResult `json:"results"`
}

// WriteText writes one line per method.
func (r *IntegrateResult) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "∫ %s dx over [%g, %g]\n", r.Expr, r.A, r.B)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, res := range r.Results {
		params := fmt.Sprintf("n=%d", res.N)
		if res.M != nil {
			params += fmt.Sprintf(" m=%d", *res.M)
		}
		fmt.Fprintf(tw, "  %s\t%s\t", labelColor.Sprint(res.Method), params)
		if res.Error != "" {
			fmt.Fprintln(tw, errorColor.Sprint("error: "+res.Error))
		} else {
			fmt.Fprintln(tw, valueColor.Sprint(batch.FormatValue(res.Value)))
		}
	}
	return tw.Flush()
}

// NewIntegrateCommand creates the integrate command.
func NewIntegrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IntegrateOptions{}

	cmd := &cobra.Command{
		Use:   "integrate <expr>",
		Short: "Integrate an expression over an interval",
		Long: `Integrate an expression in x over [a, b].

The method is one of trapezoid, simpson, gauss or romberg, or all to
compare them side by side. --n is the number of panels for trapezoid
and simpson, the order for gauss and the level for romberg; --m is the
Romberg column. An --n of zero selects the method's default; without
--m, Romberg uses column min(4, n).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("m") {
				opts.M = -1
			} else if opts.M < 0 {
				return newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr()).
					Fail(ExitCommandError, ErrCodeArgs, "--n and --m must not be negative", nil)
			}
			return runIntegrate(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.A, "a", 0, "lower bound")
	cmd.Flags().Float64Var(&opts.B, "b", 1, "upper bound")
	cmd.Flags().StringVar(&opts.Method, "method", batch.MethodGauss, "integration method (trapezoid|simpson|gauss|romberg|all)")
	cmd.Flags().IntVar(&opts.N, "n", 0, "panels, order or level (0 for default)")
	cmd.Flags().IntVar(&opts.M, "m", 0, "Romberg column (default min(4, n))")

	return cmd
}

func runIntegrate(rootOpts *RootOptions, opts *IntegrateOptions, src string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	methods := []string{opts.Method}
	if opts.Method == MethodAll {
		methods = batch.Methods
	} else if !batch.IsMethod(opts.Method) {
		return formatter.Fail(ExitCommandError, ErrCodeArgs,
			fmt.Sprintf("unknown method %q, must be one of %v or %q", opts.Method, batch.Methods, MethodAll), nil)
	}
	if opts.N < 0 {
		return formatter.Fail(ExitCommandError, ErrCodeArgs, "--n and --m must not be negative", nil)
	}

	e, err := expr.Compile(src)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeExpression, "invalid expression", err)
	}

	result := &IntegrateResult{Expr: e.String(), A: opts.A, B: opts.B}
	var errs []error
	for _, method := range methods {
		// Each method gets its own clone so evaluation errors stay apart.
		fe := e.Clone()
		n, m := batch.Params(method, opts.N, opts.M)
		slog.Debug("integrating", "expr", src, "method", method, "a", opts.A, "b", opts.B, "n", n, "m", m)
		value, err := batch.Integrate(fe.Func(), method, opts.A, opts.B, n, m)
		if evalErr := fe.Err(); evalErr != nil {
			err = evalErr
		}
		res := MethodResult{Method: method, N: n, Value: value}
		if method == batch.MethodRomberg {
			res.M = &m
		}
		if err != nil {
			errs = append(errs, err)
			res.Value = 0
			res.Error = err.Error()
		}
		result.Results = append(result.Results, res)
	}

	if len(methods) == 1 && len(errs) == 1 {
		return formatter.Fail(ExitFailure, ErrCodeCompute, "integration failed", errs[0])
	}
	if err := formatter.Success(result); err != nil {
		return err
	}
	if len(errs) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d methods failed", len(errs), len(methods)))
	}
	return nil
}
