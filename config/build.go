// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/katalvlaran/zee/mtx"
	"github.com/katalvlaran/zee/sparse"
)

// procs returns the configured image count, defaulting to sparse.DefaultProcs.
func (e *Experiment) procs() int {
	if e.Procs == 0 {
		return sparse.DefaultProcs
	}

	return e.Procs
}

// scheme resolves the configured scheme. Without one, generated matrices use
// their generator's scheme (cyclic for eye, random for rand) and files use
// sparse.DefaultScheme.
func (e *Experiment) scheme() (sparse.Scheme, error) {
	if e.Scheme != "" {
		return sparse.ParseScheme(e.Scheme)
	}
	if e.Generate != nil && e.Generate.Kind == GenerateRand {
		return sparse.Random, nil
	}

	return sparse.DefaultScheme, nil
}

// source returns the seeded random source, or a randomly seeded one.
func (e *Experiment) source() rand.Source {
	if e.Seed != nil {
		return rand.NewPCG(*e.Seed, *e.Seed)
	}

	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}

// VectorSource returns the random source for dense vectors, seeded one
// step after the matrix generator when a seed is configured.
func (e *Experiment) VectorSource() rand.Source {
	if e.Seed != nil {
		return rand.NewPCG(*e.Seed, *e.Seed+1)
	}

	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}

// Options returns the sparse options realizing the partition settings.
func (e *Experiment) Options(logger *slog.Logger) []sparse.Option {
	opts := []sparse.Option{sparse.WithLogger(logger), sparse.WithProcs(e.procs())}
	if e.Seed != nil {
		opts = append(opts, sparse.WithSeed(*e.Seed))
	}
	if a := e.Assign; a != nil {
		switch a.Kind {
		case AssignColumnCyclic:
			return append(opts, sparse.WithAssignFunc(sparse.ColumnCyclic(e.procs())))
		case AssignCartesian:
			return append(opts, sparse.WithAssignFunc(sparse.Cartesian(a.Grid[0], a.Grid[1])))
		}
	}
	scheme, err := e.scheme()
	if err == nil {
		opts = append(opts, sparse.WithScheme(scheme))
	}

	return opts
}

// Build loads or generates the matrix and partitions it. e must be valid.
func (e *Experiment) Build(logger *slog.Logger) (*sparse.Matrix, error) {
	var (
		rows, cols int
		ts         []sparse.Triplet
	)
	switch {
	case e.Input != "":
		f, err := readFile(e.Input)
		if err != nil {
			return nil, err
		}
		rows, cols, ts = f.Rows, f.Cols, f.Triplets
	default:
		g, err := e.generate(logger)
		if err != nil {
			return nil, err
		}
		rows, cols, ts = g.Rows(), g.Cols(), g.Triplets()
	}

	m, err := sparse.New(rows, cols, e.Options(logger)...)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	if err = m.SetFromTriplets(ts); err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	return m, nil
}

func (e *Experiment) generate(logger *slog.Logger) (*sparse.Matrix, error) {
	g := e.Generate
	var (
		m   *sparse.Matrix
		err error
	)
	switch g.Kind {
	case GenerateEye:
		m, err = sparse.Eye(g.Rows, 1, sparse.WithLogger(logger))
	default:
		cols := g.Cols
		if cols == 0 {
			cols = g.Rows
		}
		m, err = sparse.Rand(g.Rows, cols, 1, g.Density, e.source(), sparse.WithLogger(logger))
	}
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", g.Kind, err)
	}

	return m, nil
}

func readFile(path string) (*mtx.File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	defer fh.Close()

	return mtx.Read(fh)
}
