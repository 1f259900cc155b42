package config_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/zee/config"
	"github.com/katalvlaran/zee/sparse"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestLoadGenerate(t *testing.T) {
	e, err := config.Load(filepath.Join("testdata", "eye.yaml"))
	require.NoError(t, err)
	require.Equal(t, "eye-cyclic", e.Name)
	require.Equal(t, config.GenerateEye, e.Generate.Kind)
	require.Equal(t, 4, e.Procs)
	require.True(t, e.SPMV)
	require.Equal(t, filepath.Join("testdata", "out"), e.Spy.Dir)

	m, err := e.Build(quiet)
	require.NoError(t, err)
	require.Equal(t, 8, m.NonZeros())
	require.Equal(t, 4, m.Procs())
	require.Equal(t, sparse.Cyclic, m.Scheme())
}

func TestLoadInputResolvesRelativePath(t *testing.T) {
	e, err := config.Load(filepath.Join("testdata", "file.yaml"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join("testdata", "small.mtx"), e.Input)
	require.NotNil(t, e.Seed)
	require.EqualValues(t, 7, *e.Seed)

	m, err := e.Build(quiet)
	require.NoError(t, err)
	require.Equal(t, sparse.Custom, m.Scheme())
	require.Equal(t, 4, m.NonZeros())

	// cartesian 2×2: (row%2)*2 + col%2
	loads := sparse.Compute(m, func(v sparse.View, _ int) int { return v.NonZeros() })
	require.Equal(t, []int{3, 0, 0, 1}, loads)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := config.Load(filepath.Join("testdata", "typo.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "proc")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildRandIsSeeded(t *testing.T) {
	seed := uint64(11)
	e := &config.Experiment{
		Generate: &config.Generate{Kind: config.GenerateRand, Rows: 40, Cols: 30, Density: 0.1},
		Procs:    3,
		Seed:     &seed,
	}
	require.NoError(t, e.Validate())

	a, err := e.Build(quiet)
	require.NoError(t, err)
	b, err := e.Build(quiet)
	require.NoError(t, err)
	require.Equal(t, sparse.Random, a.Scheme())
	require.Equal(t, 30, a.Cols())
	require.Equal(t, a.Triplets(), b.Triplets())
}

func TestBuildColumnCyclic(t *testing.T) {
	e := &config.Experiment{
		Generate: &config.Generate{Kind: config.GenerateEye, Rows: 6},
		Procs:    3,
		Scheme:   "custom",
		Assign:   &config.Assign{Kind: config.AssignColumnCyclic},
	}
	require.NoError(t, e.Validate())
	m, err := e.Build(quiet)
	require.NoError(t, err)
	for s, v := range m.Images() {
		for tr := range v.Triplets() {
			require.Equal(t, tr.Col()%3, s)
		}
	}
}

func TestValidate(t *testing.T) {
	eye := func() *config.Generate { return &config.Generate{Kind: config.GenerateEye, Rows: 4} }
	cases := map[string]*config.Experiment{
		"no matrix":         {},
		"both sources":      {Input: "a.mtx", Generate: eye()},
		"bad kind":          {Generate: &config.Generate{Kind: "ones", Rows: 2}},
		"zero rows":         {Generate: &config.Generate{Kind: config.GenerateEye}},
		"eye not square":    {Generate: &config.Generate{Kind: config.GenerateEye, Rows: 2, Cols: 3}},
		"rand density":      {Generate: &config.Generate{Kind: config.GenerateRand, Rows: 2, Density: 2}},
		"negative procs":    {Generate: eye(), Procs: -1},
		"unknown scheme":    {Generate: eye(), Scheme: "diagonal"},
		"custom no assign":  {Generate: eye(), Scheme: "custom"},
		"assign not custom": {Generate: eye(), Assign: &config.Assign{Kind: config.AssignColumnCyclic}},
		"grid mismatch": {Generate: eye(), Procs: 3, Scheme: "custom",
			Assign: &config.Assign{Kind: config.AssignCartesian, Grid: []int{2, 2}}},
		"grid shape": {Generate: eye(), Procs: 2, Scheme: "custom",
			Assign: &config.Assign{Kind: config.AssignCartesian, Grid: []int{2}}},
		"unknown assign": {Generate: eye(), Scheme: "custom", Assign: &config.Assign{Kind: "diag"}},
		"spy no dir":     {Generate: eye(), Spy: &config.Spy{}},
		"spy bad plot":   {Generate: eye(), Spy: &config.Spy{Dir: "x", Plot: "gif"}},
	}
	for name, e := range cases {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, e.Validate(), config.ErrInvalid)
		})
	}
}
