package batch

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/tabwriter"

	"github.com/calclab/analytic/internal/expr"
)

// Result is the outcome of one job.
type Result struct {
	Name   string  `json:"name"`
	Op     string  `json:"op"`
	Method string  `json:"method,omitempty"`
	Value  float64 `json:"value"`
	Error  string  `json:"error,omitempty"`
}

// OK reports whether the job succeeded.
func (r Result) OK() bool {
	return r.Error == ""
}

// Report collects the results of a batch, in job order.
type Report struct {
	Results []Result `json:"results"`
	Failed  int      `json:"failed"`
}

// Run executes jobs in order. A failing job is recorded in the report and
// doesn't stop the remaining ones.
func Run(jobs []Job) *Report {
	report := &Report{Results: make([]Result, 0, len(jobs))}
	for _, job := range jobs {
		res := runJob(job)
		if !res.OK() {
			report.Failed++
			slog.Debug("job failed", "name", job.Name, "error", res.Error)
		} else {
			slog.Debug("job done", "name", job.Name, "value", res.Value)
		}
		report.Results = append(report.Results, res)
	}
	return report
}

func runJob(job Job) Result {
	res := Result{Name: job.Name, Op: job.Op}
	e, err := expr.Compile(job.Expr)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	f := e.Func()

	switch job.Op {
	case OpIntegrate:
		res.Method = job.Method
		if res.Method == "" {
			res.Method = MethodGauss
		}
		m := -1
		if job.M != nil {
			m = *job.M
		}
		slog.Debug("integrating", "name", job.Name, "expr", job.Expr, "method", res.Method, "a", job.A, "b", job.B)
		res.Value, err = Integrate(f, res.Method, job.A, job.B, job.N, m)
	case OpDerive:
		slog.Debug("differentiating", "name", job.Name, "expr", job.Expr, "at", job.At)
		res.Value, err = Derive(f, job.At)
	default:
		err = fmt.Errorf("unknown op %q", job.Op)
	}
	// An evaluation error explains a NaN result better than the result does.
	if evalErr := e.Err(); evalErr != nil {
		err = evalErr
	}
	if err != nil {
		res.Value = 0
		res.Error = err.Error()
	}
	return res
}

// FormatValue formats a result value with ten significant digits.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// WriteText writes the report as an aligned table followed by a summary
// line.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tOP\tMETHOD\tRESULT")
	for _, res := range r.Results {
		method := res.Method
		if method == "" {
			method = "-"
		}
		value := FormatValue(res.Value)
		if !res.OK() {
			value = "error: " + res.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", res.Name, res.Op, method, value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d jobs, %d failed\n", len(r.Results), r.Failed)
	return err
}
