package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/calclab/analytic/internal/batch"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <jobs.yaml>",
		Short: "Run a batch of jobs from a YAML file",
		Long: `Run the integrate and derive jobs listed in a YAML file.

The file is validated as a whole before any job runs. A failing job
doesn't stop the others; the exit code is 1 if any job failed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobs(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runJobs(rootOpts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	jobs, err := batch.Load(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeJobFile, "loading "+path, err)
	}
	formatter.VerboseLog("Loaded %d job(s) from %s", len(jobs), path)
	slog.Info("running jobs", "file", path, "count", len(jobs))

	report := batch.Run(jobs)
	if err := formatter.Success(report); err != nil {
		return err
	}
	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %d of %d jobs failed", ErrCodeJobs, report.Failed, len(report.Results)))
	}
	return nil
}
