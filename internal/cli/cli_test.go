package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// execute runs cmd with args and returns its standard output.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// decode unmarshals a JSON response, with Data decoded into data.
func decode(t *testing.T, out string, data interface{}) CLIResponse {
	t.Helper()
	var resp struct {
		CLIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	if data != nil && len(resp.Data) > 0 {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp.CLIResponse
}

func TestIntegrateText(t *testing.T) {
	out, err := execute(NewIntegrateCommand(&RootOptions{Format: "text"}),
		"x*x", "--a", "0", "--b", "3", "--n", "2")
	require.NoError(t, err)
	assert.Equal(t, "∫ x*x dx over [0, 3]\n  gauss  n=2  9\n", out)
}

func TestIntegrateAllJSON(t *testing.T) {
	out, err := execute(NewIntegrateCommand(&RootOptions{Format: "json"}),
		"exp(-x*x)", "--a", "-5", "--b", "5", "--method", "all", "--n", "16")
	require.NoError(t, err)

	var result IntegrateResult
	resp := decode(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, result.Results, 4)
	for _, res := range result.Results {
		assert.Empty(t, res.Error, res.Method)
	}
	assert.Equal(t, "simpson", result.Results[1].Method)
	assert.InDelta(t, math.Sqrt(math.Pi), result.Results[2].Value, 1e-3)
	assert.Equal(t, 16, result.Results[3].N)
	require.NotNil(t, result.Results[3].M)
	assert.Equal(t, 4, *result.Results[3].M)
	assert.Nil(t, result.Results[0].M)
}

func TestIntegrateRombergColumnZero(t *testing.T) {
	out, err := execute(NewIntegrateCommand(&RootOptions{Format: "json"}),
		"x*x", "--method", "romberg", "--n", "2", "--m", "0")
	require.NoError(t, err)
	var result IntegrateResult
	decode(t, out, &result)
	require.Len(t, result.Results, 1)
	require.NotNil(t, result.Results[0].M)
	assert.Equal(t, 0, *result.Results[0].M)

	out, err = execute(NewIntegrateCommand(&RootOptions{Format: "text"}),
		"x*x", "--method", "romberg", "--n", "2", "--m", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "n=2 m=0")
}

func TestIntegrateNotFinite(t *testing.T) {
	out, err := execute(NewIntegrateCommand(&RootOptions{Format: "json"}),
		"1/x", "--a", "0", "--b", "1", "--method", "trapezoid", "--n", "4")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	resp := decode(t, out, nil)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeCompute, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "not finite")
}

func TestIntegrateAllNotFinite(t *testing.T) {
	out, err := execute(NewIntegrateCommand(&RootOptions{Format: "json"}),
		"1/x", "--a", "0", "--b", "1", "--method", "all", "--n", "4")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "3 of 4 methods failed")

	var result IntegrateResult
	resp := decode(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, result.Results, 4)
	for _, res := range result.Results {
		if res.Method == "gauss" {
			assert.Empty(t, res.Error)
			continue
		}
		assert.Contains(t, res.Error, "not finite", res.Method)
		assert.Zero(t, res.Value, res.Method)
	}
}

func TestIntegrateAllPartialFailure(t *testing.T) {
	out, err := execute(NewIntegrateCommand(&RootOptions{Format: "text"}),
		"x", "--method", "all", "--n", "3")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 of 4 methods failed")
	assert.Contains(t, out, "error: Simpson's rule requires an even number of panels")
	assert.Contains(t, out, "trapezoid")
}

func TestIntegrateComputationError(t *testing.T) {
	out, err := execute(NewIntegrateCommand(&RootOptions{Format: "text"}),
		"x", "--method", "romberg", "--n", "2", "--m", "3")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
	assert.Contains(t, out, "0 <= m <= n")

	out, err = execute(NewIntegrateCommand(&RootOptions{Format: "text"}),
		"x", "--method", "romberg", "--m=-1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeArgs+"]")
}

func TestIntegrateEvaluationError(t *testing.T) {
	out, err := execute(NewIntegrateCommand(&RootOptions{Format: "json"}),
		"pow(x)", "--method", "trapezoid", "--n", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	resp := decode(t, out, nil)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeCompute, resp.Error.Code)
}

func TestIntegrateCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"bad expression", []string{"x +* ("}, ErrCodeExpression},
		{"unknown variable", []string{"y"}, ErrCodeExpression},
		{"unknown method", []string{"x", "--method", "midpoint"}, ErrCodeArgs},
		{"negative n", []string{"x", "--n=-2"}, ErrCodeArgs},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(NewIntegrateCommand(&RootOptions{Format: "text"}), tc.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tc.code)
			assert.Contains(t, out, "Error ["+tc.code+"]")
		})
	}
}

func TestDerive(t *testing.T) {
	out, err := execute(NewDeriveCommand(&RootOptions{Format: "text"}), "x*x", "--at", "0.5")
	require.NoError(t, err)
	assert.Equal(t, "d/dx x*x at x=0.5: 1\n", out)

	out, err = execute(NewDeriveCommand(&RootOptions{Format: "json"}), "sin(x)", "--at", "0")
	require.NoError(t, err)
	var result DeriveResult
	decode(t, out, &result)
	assert.InDelta(t, 1, result.Value, 1e-9)
	assert.InDelta(t, math.Cbrt(1e-16), result.Step, 1e-20)
}

func TestDeriveErrors(t *testing.T) {
	_, err := execute(NewDeriveCommand(&RootOptions{Format: "text"}), "sin(")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(NewDeriveCommand(&RootOptions{Format: "text"}), "pow(x)", "--at", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestDeriveNotFinite(t *testing.T) {
	out, err := execute(NewDeriveCommand(&RootOptions{Format: "json"}), "sqrt(x)", "--at", "-1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	resp := decode(t, out, nil)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeCompute, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "not finite")
}

func TestNodes(t *testing.T) {
	out, err := execute(NewNodesCommand(&RootOptions{Format: "json"}), "--n", "2")
	require.NoError(t, err)
	var result NodesResult
	decode(t, out, &result)
	require.Len(t, result.Nodes, 2)
	assert.InDelta(t, 1/math.Sqrt(3), result.Nodes[0], 1e-15)
	assert.InDelta(t, -1/math.Sqrt(3), result.Nodes[1], 1e-15)
	assert.InDelta(t, 1, result.Weights[0], 1e-14)

	out, err = execute(NewNodesCommand(&RootOptions{Format: "text"}), "--n", "1", "--a", "0", "--b", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "1-point Gauss-Legendre rule on [0, 4]")
	assert.Contains(t, out, "2.00000000")
	assert.Contains(t, out, "4.00000000")
}

func TestNodesInvalidOrder(t *testing.T) {
	out, err := execute(NewNodesCommand(&RootOptions{Format: "text"}), "--n", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "quadrature order must be at least 1")
}

func TestPoly(t *testing.T) {
	out, err := execute(NewPolyCommand(&RootOptions{Format: "text"}),
		"--at", "2", "--a", "0", "--b", "2", "--", "1", "-1", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "3*x^2 - x + 1")
	assert.Contains(t, out, "3 x^{2} - x + 1")
	assert.Contains(t, out, "6*x - 1")
	assert.Contains(t, out, "x^{3} - 0.5 x^{2} + x")

	out, err = execute(NewPolyCommand(&RootOptions{Format: "json"}),
		"--at", "2", "--a", "0", "--b", "2", "--", "1", "-1", "3")
	require.NoError(t, err)
	var result PolyResult
	decode(t, out, &result)
	assert.Equal(t, []float64{1, -1, 3}, result.Coefficients)
	assert.Equal(t, 11.0, result.Value)
	assert.Equal(t, 11.0, result.Slope)
	assert.Equal(t, 8.0, result.Integral)
}

func TestPolyBadCoefficient(t *testing.T) {
	out, err := execute(NewPolyCommand(&RootOptions{Format: "text"}), "1", "two")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "coefficient 1")
}

func TestRunJobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
jobs:
  - name: area
    expr: x*x
    op: integrate
    a: 0
    b: 3
    n: 2
  - name: slope
    expr: x*x
    op: derive
    at: 3
`), 0o644))

	out, err := execute(NewRunCommand(&RootOptions{Format: "text"}), path)
	require.NoError(t, err)
	assert.Contains(t, out, "area")
	assert.Contains(t, out, "2 jobs, 0 failed")
}

func TestRunJobsWithFailures(t *testing.T) {
	out, err := execute(NewRunCommand(&RootOptions{Format: "json"}), filepath.Join("..", "batch", "testdata", "jobs.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeJobs)
	resp := decode(t, out, nil)
	assert.Equal(t, "ok", resp.Status)
}

func TestRunJobsMissingFile(t *testing.T) {
	out, err := execute(NewRunCommand(&RootOptions{Format: "text"}), "/nonexistent/jobs.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E003]")
}

func TestRootInvalidFormat(t *testing.T) {
	_, err := execute(NewRootCommand(), "--format", "xml", "nodes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRootDispatch(t *testing.T) {
	out, err := execute(NewRootCommand(), "--no-color", "--format", "json", "nodes", "--n", "3")
	require.NoError(t, err)
	var result NodesResult
	resp := decode(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Len(t, result.Weights, 3)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitCommandError, GetExitCode(errors.New("unknown flag")))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "failed")))

	wrapped := WrapExitError(ExitCommandError, "E003", errors.New("boom"))
	assert.Equal(t, "E003: boom", wrapped.Error())
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}

func TestOutputFormatterVerboseLog(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}
	f.VerboseLog("loaded %d", 3)
	assert.Empty(t, out.String())
	assert.Equal(t, "loaded 3\n", errOut.String())

	f.Verbose = false
	f.VerboseLog("hidden")
	assert.Equal(t, "loaded 3\n", errOut.String())
}
