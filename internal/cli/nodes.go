package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calclab/analytic"
)

// NodesResult is the output of the nodes command.
type NodesResult struct {
	N       int       `json:"n"`
	A       float64   `json:"a"`
	B       float64   `json:"b"`
	Nodes   []float64 `json:"nodes"`
	Weights []float64 `json:"weights"`
}

// WriteText writes the rule as a table.
func (r *NodesResult) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "%d-point Gauss-Legendre rule on [%g, %g]\n", r.N, r.A, r.B)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "i\tnode\tweight\t")
	for i := range r.Nodes {
		fmt.Fprintf(tw, "%d\t%.16f\t%.16f\t\n", i, r.Nodes[i], r.Weights[i])
	}
	return tw.Flush()
}

// NewNodesCommand creates the nodes command.
func NewNodesCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		n    int
		a, b float64
	)

	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "Print Gauss-Legendre nodes and weights",
		Long: `Print the nodes and weights of the n-point Gauss-Legendre rule,
on [-1, 1] or mapped to [a, b]. Nodes are listed in decreasing order.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNodes(rootOpts, n, a, b, cmd)
		},
	}

	cmd.Flags().IntVar(&n, "n", 5, "number of nodes")
	cmd.Flags().Float64Var(&a, "a", -1, "lower bound")
	cmd.Flags().Float64Var(&b, "b", 1, "upper bound")

	return cmd
}

func runNodes(rootOpts *RootOptions, n int, a, b float64, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	slog.Debug("computing Gauss-Legendre rule", "n", n, "a", a, "b", b)
	r, err := analytic.GaussLegendreOn(a, b, n)
	if err != nil {
		exit := ExitFailure
		if errors.Is(err, analytic.ErrInvalidOrder) {
			exit = ExitCommandError
		}
		return formatter.Fail(exit, ErrCodeCompute, "computing nodes", err)
	}

	return formatter.Success(&NodesResult{
		N:       n,
		A:       a,
		B:       b,
		Nodes:   r.Nodes,
		Weights: r.Weights,
	})
}
