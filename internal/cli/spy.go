package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/zee/report"
)

// DefaultSpyDir is where spy dumps go when --dir is not given.
const DefaultSpyDir = "spies"

// SpyOptions holds flags for the spy command.
type SpyOptions struct {
	*RootOptions
	partition partitionFlags
	Dir       string
	Title     string
	Plot      string
	Size      float64
}

// spyResult is the output of the spy command.
type spyResult struct {
	Report *report.Report `json:"report"`
	Dump   string         `json:"dump"`
	Plot   string         `json:"plot,omitempty"`
}

func (r spyResult) RenderText(w io.Writer) error {
	if err := r.Report.WriteText(w, reportLanguage); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-15s %s\n", "spy dump", r.Dump); err != nil {
		return err
	}
	if r.Plot != "" {
		_, err := fmt.Fprintf(w, "%-15s %s\n", "spy plot", r.Plot)

		return err
	}

	return nil
}

// NewSpyCommand creates the spy command.
func NewSpyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SpyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "spy <file.mtx>",
		Short: "Partition a MatrixMarket file and save its spy dump",
		Long: `Partition a MatrixMarket coordinate file and write a spy dump: a
MatrixMarket file whose value column holds the owning image. Existing dumps
are never overwritten; a numeric suffix is added instead.

Example:
  zee spy -p 4 --dir spies --plot png data/west0479.mtx`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpy(opts, args[0], cmd)
		},
	}
	opts.partition.register(cmd)
	cmd.Flags().StringVar(&opts.Dir, "dir", DefaultSpyDir, "output directory")
	cmd.Flags().StringVar(&opts.Title, "title", "", "dump title (default: input file name)")
	cmd.Flags().StringVar(&opts.Plot, "plot", "", "also render a plot (png|svg|pdf)")
	cmd.Flags().Float64Var(&opts.Size, "size", 6, "plot side length in inches")

	return cmd
}

func runSpy(opts *SpyOptions, input string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.Logger(cmd)

	m, err := loadMatrix(cmd, f, &opts.partition, input, logger)
	if err != nil {
		return err
	}
	title := opts.Title
	if title == "" {
		title = stem(input)
	}
	r, err := report.New(m, report.WithTitle(title))
	if err != nil {
		return failWith(f, "failed to compute metrics", err)
	}

	res := spyResult{Report: r}
	if res.Dump, err = m.SpyFile(opts.Dir, title); err != nil {
		return f.fail(ExitCommandError, ErrCodeWrite, "failed to write spy dump", err)
	}
	if opts.Plot != "" {
		res.Plot = plotPath(res.Dump, opts.Plot)
		if _, err = renderPlot(res.Dump, res.Plot, opts.Plot, vg.Length(opts.Size)*vg.Inch); err != nil {
			return f.fail(ExitCommandError, ErrCodeWrite, "failed to render spy plot", err)
		}
		logger.Info("spy plot saved", "path", res.Plot)
	}

	return f.Success(res)
}
