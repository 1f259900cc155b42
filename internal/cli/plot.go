package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

// PlotOptions holds flags for the plot command.
type PlotOptions struct {
	*RootOptions
	ImageFormat string
	Out         string
	Size        float64
}

// plotResult is the output of the plot command.
type plotResult struct {
	Dump     string `json:"dump"`
	Plot     string `json:"plot"`
	Images   int    `json:"images"`
	NonZeros int    `json:"nonzeros"`
}

func (r plotResult) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s: %d nonzeros over %d images -> %s\n", r.Dump, r.NonZeros, r.Images, r.Plot)

	return err
}

// NewPlotCommand creates the plot command.
func NewPlotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlotOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plot <dump.mtx>",
		Short: "Render a spy dump as an image",
		Long: `Render a spy dump written by "zee spy" as a spy plot, one colour per
image, row 0 at the top.

Example:
  zee plot spies/west0479.mtx
  zee plot --image-format svg --out west.svg spies/west0479.mtx`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.ImageFormat, "image-format", "png", "image format (png|svg|pdf)")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output file (default: dump path with the image extension)")
	cmd.Flags().Float64Var(&opts.Size, "size", 6, "side length in inches")

	return cmd
}

func runPlot(opts *PlotOptions, dump string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	out := opts.Out
	if out == "" {
		out = plotPath(dump, opts.ImageFormat)
	}

	d, err := renderPlot(dump, out, opts.ImageFormat, vg.Length(opts.Size)*vg.Inch)
	if err != nil {
		return failWith(f, "failed to render spy plot", err)
	}
	opts.Logger(cmd).Info("spy plot saved", "path", out)

	return f.Success(plotResult{Dump: dump, Plot: out, Images: d.Procs, NonZeros: len(d.Entries)})
}
