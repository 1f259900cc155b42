package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/zee/config"
	"github.com/katalvlaran/zee/report"
	"github.com/katalvlaran/zee/stopwatch"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
}

// runResult is the output of the run command.
type runResult struct {
	Name   string         `json:"name,omitempty"`
	Report *report.Report `json:"report"`
	Dump   string         `json:"dump,omitempty"`
	Plot   string         `json:"plot,omitempty"`
	SPMV   *spmvCheck     `json:"spmv,omitempty"`
}

func (r runResult) RenderText(w io.Writer) error {
	if err := r.Report.WriteText(w, reportLanguage); err != nil {
		return err
	}
	lines := [][2]string{{"spy dump", r.Dump}, {"spy plot", r.Plot}}
	if r.SPMV != nil {
		lines = append(lines, [2]string{"spmv", fmt.Sprintf("max |u - serial| = %g", r.SPMV.MaxAbsDiff)})
	}
	for _, l := range lines {
		if l[1] == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-15s %s\n", l[0], l[1]); err != nil {
			return err
		}
	}

	return nil
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <experiment.yaml>",
		Short: "Run an experiment file",
		Long: `Run an experiment described in YAML: load or generate a matrix,
partition it, report its metrics and optionally write a spy dump and plot
and check a distributed SPMV.

Example:
  zee run experiments/rand-cartesian.yaml
  zee run --format json experiments/eye.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExperiment(opts, args[0], cmd)
		},
	}

	return cmd
}

func runExperiment(opts *RunOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.Logger(cmd)

	e, err := config.Load(path)
	if err != nil {
		return failWith(f, "failed to load experiment", err)
	}
	name := e.Name
	if name == "" {
		name = stem(path)
	}
	logger.Info("experiment loaded", "name", name, "path", path)

	sw := stopwatch.New("run "+name, stopwatch.WithLogger(logger))
	if !opts.Verbose {
		sw.Silence()
	}
	sw.Phase("build")
	m, err := e.Build(logger)
	if err != nil {
		return failWith(f, "failed to build matrix", err)
	}

	sw.Phase("report")
	res := runResult{Name: name}
	if res.Report, err = report.New(m, report.WithTitle(name)); err != nil {
		return failWith(f, "failed to compute metrics", err)
	}

	if s := e.Spy; s != nil {
		sw.Phase("spy")
		title := s.Title
		if title == "" {
			title = name
		}
		if res.Dump, err = m.SpyFile(s.Dir, title); err != nil {
			return f.fail(ExitCommandError, ErrCodeWrite, "failed to write spy dump", err)
		}
		if s.Plot != "" {
			res.Plot = plotPath(res.Dump, s.Plot)
			if _, err = renderPlot(res.Dump, res.Plot, s.Plot, 6*vg.Inch); err != nil {
				return f.fail(ExitCommandError, ErrCodeWrite, "failed to render spy plot", err)
			}
		}
	}

	if e.SPMV {
		sw.Phase("spmv")
		check, err := checkSPMV(m, e.VectorSource())
		if err != nil {
			return failWith(f, "spmv failed", err)
		}
		res.SPMV = &check
		if !check.ok() {
			return f.fail(ExitFailure, ErrCodeMismatch, "distributed and serial products differ",
				fmt.Errorf("max |u - serial| = %g", check.MaxAbsDiff))
		}
	}
	sw.Finish()

	return f.Success(res)
}
