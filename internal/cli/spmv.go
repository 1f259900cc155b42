package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/zee/stopwatch"
)

// SpmvOptions holds flags for the spmv command.
type SpmvOptions struct {
	*RootOptions
	partition partitionFlags
}

// spmvResult is the output of the spmv command.
type spmvResult struct {
	Rows     int `json:"rows"`
	Cols     int `json:"cols"`
	NonZeros int `json:"nonzeros"`
	Procs    int `json:"procs"`
	spmvCheck
	MultiplyMs float64 `json:"multiply_ms"`
}

func (r spmvResult) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d × %d, %d nonzeros over %d images\n‖u‖∞ = %g, max |u - serial| = %g, %.3f ms\n",
		r.Rows, r.Cols, r.NonZeros, r.Procs, r.Norm, r.MaxAbsDiff, r.MultiplyMs)

	return err
}

// NewSpmvCommand creates the spmv command.
func NewSpmvCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SpmvOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "spmv <file.mtx>",
		Short: "Multiply a partitioned matrix with a random vector",
		Long: `Partition a MatrixMarket file, compute u = A·v for a random v with one
kernel per image, and check the result against a serial product.

Exits with status 1 when the two products disagree.

Example:
  zee spmv -p 8 --seed 42 data/west0479.mtx`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpmv(opts, args[0], cmd)
		},
	}
	opts.partition.register(cmd)

	return cmd
}

func runSpmv(opts *SpmvOptions, input string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.Logger(cmd)

	sw := stopwatch.New("spmv "+stem(input), stopwatch.WithLogger(logger))
	if !opts.Verbose {
		sw.Silence()
	}
	sw.Phase("load and partition")
	m, err := loadMatrix(cmd, f, &opts.partition, input, logger)
	if err != nil {
		return err
	}
	sw.Phase("multiply and check")
	check, err := checkSPMV(m, opts.partition.source(cmd))
	if err != nil {
		return failWith(f, "spmv failed", err)
	}
	timing := sw.Finish()

	res := spmvResult{
		Rows: m.Rows(), Cols: m.Cols(), NonZeros: m.NonZeros(), Procs: m.Procs(),
		spmvCheck:  check,
		MultiplyMs: float64(timing.Splits[1].Duration.Microseconds()) / 1000,
	}
	if !check.ok() {
		return f.fail(ExitFailure, ErrCodeMismatch, "distributed and serial products differ",
			fmt.Errorf("max |u - serial| = %g", check.MaxAbsDiff))
	}

	return f.Success(res)
}
