// Package batch runs integration and differentiation jobs described in YAML
// files.
//
// A job file looks like this:
//
//	jobs:
//	  - name: gaussian
//	    expr: exp(-x*x)
//	    op: integrate
//	    method: simpson
//	    a: -10
//	    b: 10
//	    n: 1000
//	  - name: slope
//	    expr: sin(x)
//	    op: derive
//	    at: 0
package batch

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/calclab/analytic/internal/expr"
)

// Operations.
const (
	OpIntegrate = "integrate"
	OpDerive    = "derive"
)

// File is the top level of a job file.
type File struct {
	Jobs []Job `yaml:"jobs"`
}

// Job is a single computation.
type Job struct {
	// Name identifies the job in reports. Names must be unique within a file.
	Name string `yaml:"name"`

	// Expr is the integrand or the function to differentiate, in the syntax
	// accepted by expr.Compile.
	Expr string `yaml:"expr"`

	// Op is either "integrate" or "derive".
	Op string `yaml:"op"`

	// Method selects the integrator. It defaults to gauss. Method, A, B, N
	// and M are only valid for integrate jobs, At only for derive jobs.
	Method string `yaml:"method,omitempty"`

	// A and B are the integration bounds.
	A float64 `yaml:"a,omitempty"`
	B float64 `yaml:"b,omitempty"`

	// N is the number of panels, the quadrature order or the Romberg level,
	// depending on Method. Zero selects the method's default.
	N int `yaml:"n,omitempty"`

	// M is the Romberg column. If unset, min(4, n) is used; m: 0 selects
	// the trapezoid column.
	M *int `yaml:"m,omitempty"`

	// At is the point at which derive evaluates the derivative.
	At float64 `yaml:"at,omitempty"`
}

// Load reads and validates a job file. Unknown fields are rejected.
func Load(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates the contents of a job file.
func Parse(data []byte) ([]Job, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := Validate(file.Jobs); err != nil {
		return nil, err
	}
	return file.Jobs, nil
}

// Validate checks that every job is well-formed and that names are unique.
// All problems are reported, joined into one error.
func Validate(jobs []Job) error {
	if len(jobs) == 0 {
		return errors.New("job file contains no jobs")
	}
	var errs []error
	seen := make(map[string]int, len(jobs))
	for i, job := range jobs {
		label := fmt.Sprintf("job %d", i+1)
		if job.Name != "" {
			label = fmt.Sprintf("job %d (%s)", i+1, job.Name)
		}
		if job.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", label))
		} else if prev, ok := seen[job.Name]; ok {
			errs = append(errs, fmt.Errorf("%s: duplicate name, first used by job %d", label, prev))
		} else {
			seen[job.Name] = i + 1
		}
		if _, err := expr.Compile(job.Expr); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", label, err))
		}
		switch job.Op {
		case OpIntegrate:
			if job.Method != "" && !IsMethod(job.Method) {
				errs = append(errs, fmt.Errorf("%s: unknown method %q, must be one of %v", label, job.Method, Methods))
			}
			if job.N < 0 || (job.M != nil && *job.M < 0) {
				errs = append(errs, fmt.Errorf("%s: n and m must not be negative", label))
			}
			if job.At != 0 {
				errs = append(errs, fmt.Errorf("%s: at is only valid for %s", label, OpDerive))
			}
		case OpDerive:
			if fields := integrateFields(job); len(fields) > 0 {
				errs = append(errs, fmt.Errorf("%s: %s only valid for %s", label, strings.Join(fields, ", "), OpIntegrate))
			}
		default:
			errs = append(errs, fmt.Errorf("%s: unknown op %q, must be %q or %q", label, job.Op, OpIntegrate, OpDerive))
		}
	}
	return errors.Join(errs...)
}

// integrateFields lists the integrate-only fields set on job. Fields set to
// their zero value can't be told apart from unset ones.
func integrateFields(job Job) []string {
	var fields []string
	if job.Method != "" {
		fields = append(fields, "method")
	}
	if job.A != 0 {
		fields = append(fields, "a")
	}
	if job.B != 0 {
		fields = append(fields, "b")
	}
	if job.N != 0 {
		fields = append(fields, "n")
	}
	if job.M != nil {
		fields = append(fields, "m")
	}
	return fields
}
