package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/zee/report"
	"github.com/katalvlaran/zee/stopwatch"
)

// PartitionOptions holds flags for the partition command.
type PartitionOptions struct {
	*RootOptions
	partition partitionFlags
}

// partitionResult is the output of the partition command.
type partitionResult struct {
	Report *report.Report `json:"report"`
}

func (r partitionResult) RenderText(w io.Writer) error {
	return r.Report.WriteText(w, reportLanguage)
}

// NewPartitionCommand creates the partition command.
func NewPartitionCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PartitionOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "partition <file.mtx>",
		Short: "Partition a MatrixMarket file and report its metrics",
		Long: `Read a MatrixMarket coordinate file, distribute its nonzeros over the
requested number of images and print the per-image loads, the load
imbalance and the communication volume.

Example:
  zee partition -p 4 -s block data/west0479.mtx
  zee partition -p 4 --assign cartesian --grid 2,2 data/west0479.mtx`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPartition(opts, args[0], cmd)
		},
	}
	opts.partition.register(cmd)

	return cmd
}

func runPartition(opts *PartitionOptions, input string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.Logger(cmd)

	sw := stopwatch.New("partition "+stem(input), stopwatch.WithLogger(logger))
	if !opts.Verbose {
		sw.Silence()
	}
	sw.Phase("load and partition")
	m, err := loadMatrix(cmd, f, &opts.partition, input, logger)
	if err != nil {
		return err
	}
	sw.Phase("metrics")
	r, err := report.New(m, report.WithTitle(stem(input)))
	if err != nil {
		return failWith(f, "failed to compute metrics", err)
	}
	sw.Finish()

	return f.Success(partitionResult{Report: r})
}
