package cli

import (
	"errors"
	"io/fs"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/zee/config"
	"github.com/katalvlaran/zee/mtx"
	"github.com/katalvlaran/zee/sparse"
	"github.com/katalvlaran/zee/spmv"
	"github.com/katalvlaran/zee/spyplot"
)

// reportLanguage formats numbers in text reports.
var reportLanguage = language.English

// spmvTolerance bounds the distributed/serial SPMV difference relative to
// the result's max norm.
const spmvTolerance = 1e-9

// partitionFlags are the partition settings shared by matrix commands.
type partitionFlags struct {
	Procs  int
	Scheme string
	Assign string
	Grid   []int
	Seed   uint64
}

func (p *partitionFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVarP(&p.Procs, "procs", "p", sparse.DefaultProcs, "number of images")
	f.StringVarP(&p.Scheme, "scheme", "s", sparse.DefaultScheme.String(), "partitioning scheme (cyclic|block|random|custom)")
	f.StringVar(&p.Assign, "assign", "", "custom assignment (column-cyclic|cartesian), implies --scheme custom")
	f.IntSliceVar(&p.Grid, "grid", nil, "processor grid PR,PC of the cartesian assignment")
	f.Uint64Var(&p.Seed, "seed", 0, "seed for random choices (default: unseeded)")
}

// experiment turns the flags into a validated experiment on input.
func (p *partitionFlags) experiment(cmd *cobra.Command, input string) (*config.Experiment, error) {
	e := &config.Experiment{Input: input, Procs: p.Procs, Scheme: p.Scheme}
	if p.Assign != "" {
		e.Assign = &config.Assign{Kind: p.Assign, Grid: p.Grid}
		if !cmd.Flags().Changed("scheme") {
			e.Scheme = sparse.Custom.String()
		}
	}
	if cmd.Flags().Changed("seed") {
		seed := p.Seed
		e.Seed = &seed
	}

	return e, e.Validate()
}

// source returns a random source seeded from the flags when given.
func (p *partitionFlags) source(cmd *cobra.Command) rand.Source {
	if cmd.Flags().Changed("seed") {
		return rand.NewPCG(p.Seed, p.Seed+1)
	}

	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}

// loadMatrix validates the flags, then reads and partitions input.
func loadMatrix(cmd *cobra.Command, f *OutputFormatter, p *partitionFlags, input string, logger *slog.Logger) (*sparse.Matrix, error) {
	e, err := p.experiment(cmd, input)
	if err != nil {
		return nil, failWith(f, "invalid partition settings", err)
	}
	m, err := e.Build(logger)
	if err != nil {
		return nil, failWith(f, "failed to load matrix", err)
	}
	logger.Debug("matrix loaded", "path", input, "rows", m.Rows(), "cols", m.Cols(), "nonzeros", m.NonZeros())

	return m, nil
}

// failWith classifies err and reports it.
func failWith(f *OutputFormatter, message string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return f.fail(ExitCommandError, ErrCodeNotFound, message, err)
	case errors.Is(err, config.ErrInvalid), isSparseConfigError(err):
		return f.fail(ExitCommandError, ErrCodeInvalid, message, err)
	case isMalformed(err):
		return f.fail(ExitCommandError, ErrCodeMalformed, message, err)
	default:
		return f.fail(ExitCommandError, ErrCodeGeneric, message, err)
	}
}

func isSparseConfigError(err error) bool {
	for _, target := range []error{
		sparse.ErrMissingAssignment, sparse.ErrAssignmentOutOfRange, sparse.ErrInvalidProcs,
		sparse.ErrInvalidShape, sparse.ErrUnknownScheme, sparse.ErrInvalidDensity,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func isMalformed(err error) bool {
	for _, target := range []error{
		mtx.ErrBadHeader, mtx.ErrUnsupported, mtx.ErrBadSize, mtx.ErrBadEntry,
		mtx.ErrEntryOutOfRange, mtx.ErrEntryCount, spyplot.ErrMalformed,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// stem returns the file name of path without directory and extension.
func stem(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// renderPlot draws the spy dump at dump into out.
func renderPlot(dump, out, format string, size vg.Length) (*spyplot.Dump, error) {
	in, err := os.Open(dump)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	d, err := spyplot.Parse(in)
	if err != nil {
		return nil, err
	}

	fh, err := os.Create(out)
	if err != nil {
		return nil, err
	}
	if err = spyplot.Render(d, fh, format, size); err != nil {
		fh.Close()

		return nil, err
	}

	return d, fh.Close()
}

// plotPath places the plot next to the dump.
func plotPath(dump, format string) string {
	return strings.TrimSuffix(dump, filepath.Ext(dump)) + "." + format
}

// spmvCheck compares the distributed product with the serial reference.
type spmvCheck struct {
	Norm       float64 `json:"norm"`
	MaxAbsDiff float64 `json:"max_abs_diff"`
}

func (c spmvCheck) ok() bool {
	return c.MaxAbsDiff <= spmvTolerance*max(1, c.Norm)
}

// checkSPMV multiplies m with a random vector drawn from src.
func checkSPMV(m *sparse.Matrix, src rand.Source) (spmvCheck, error) {
	v := spmv.RandomVector(m.Cols(), src)
	u, ref := spmv.Zeros(m.Rows()), spmv.Zeros(m.Rows())
	if err := spmv.Multiply(m, v, u); err != nil {
		return spmvCheck{}, err
	}
	if err := spmv.Serial(m, v, ref); err != nil {
		return spmvCheck{}, err
	}
	if m.Rows() == 0 {
		return spmvCheck{}, nil
	}
	got, want := u.RawVector().Data, ref.RawVector().Data
	diff := make([]float64, len(got))
	floats.SubTo(diff, got, want)

	return spmvCheck{
		Norm:       floats.Norm(got, math.Inf(1)),
		MaxAbsDiff: floats.Norm(diff, math.Inf(1)),
	}, nil
}
