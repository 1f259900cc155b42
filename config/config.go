// SPDX-License-Identifier: MIT

// Package config loads experiment files.
//
// An experiment names a matrix (a MatrixMarket file or a generator), how to
// partition it, and what to produce afterwards:
//
//	name: rand-cartesian
//	generate: {kind: rand, rows: 200, cols: 200, density: 0.05}
//	procs: 4
//	scheme: custom
//	assign: {kind: cartesian, grid: [2, 2]}
//	seed: 42
//	spy: {dir: spies, title: rand200, plot: png}
//	spmv: true
//
// Unknown keys are rejected.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/zee/sparse"
)

// Generator kinds.
const (
	GenerateEye  = "eye"
	GenerateRand = "rand"
)

// Custom assignment kinds.
const (
	AssignColumnCyclic = "column-cyclic"
	AssignCartesian    = "cartesian"
)

// PlotFormats are the accepted spy plot formats; "" disables plotting.
var PlotFormats = []string{"", "png", "svg", "pdf"}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid experiment")

// Generate describes a generated matrix.
type Generate struct {
	Kind string `yaml:"kind"`
	Rows int    `yaml:"rows"`
	// Cols defaults to Rows.
	Cols    int     `yaml:"cols,omitempty"`
	Density float64 `yaml:"density,omitempty"`
}

// Assign selects a built-in assignment for the custom scheme.
type Assign struct {
	Kind string `yaml:"kind"`
	// Grid is the pr × pc processor grid of the cartesian assignment.
	Grid []int `yaml:"grid,omitempty"`
}

// Spy configures the spy dump and optional plot.
type Spy struct {
	Dir   string `yaml:"dir"`
	Title string `yaml:"title,omitempty"`
	Plot  string `yaml:"plot,omitempty"`
}

// Experiment is one experiment file.
type Experiment struct {
	Name     string    `yaml:"name,omitempty"`
	Input    string    `yaml:"input,omitempty"`
	Generate *Generate `yaml:"generate,omitempty"`
	Procs    int       `yaml:"procs,omitempty"`
	Scheme   string    `yaml:"scheme,omitempty"`
	Assign   *Assign   `yaml:"assign,omitempty"`
	Seed     *uint64   `yaml:"seed,omitempty"`
	Spy      *Spy      `yaml:"spy,omitempty"`
	SPMV     bool      `yaml:"spmv,omitempty"`
}

// Load reads, decodes and validates an experiment file. Relative input and
// spy directory paths are resolved against the file's directory.
func Load(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read experiment file: %w", err)
	}

	var e Experiment
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(&e); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Dir(path)
	if e.Input != "" && !filepath.IsAbs(e.Input) {
		e.Input = filepath.Join(base, e.Input)
	}
	if e.Spy != nil && e.Spy.Dir != "" && !filepath.IsAbs(e.Spy.Dir) {
		e.Spy.Dir = filepath.Join(base, e.Spy.Dir)
	}

	if err = e.Validate(); err != nil {
		return nil, err
	}

	return &e, nil
}

// Validate checks the experiment for consistency.
func (e *Experiment) Validate() error {
	switch {
	case e.Input == "" && e.Generate == nil:
		return invalid("one of input or generate is required")
	case e.Input != "" && e.Generate != nil:
		return invalid("input and generate are mutually exclusive")
	}
	if g := e.Generate; g != nil {
		if err := g.validate(); err != nil {
			return err
		}
	}
	if e.Procs < 0 {
		return invalid("procs must be positive, got %d", e.Procs)
	}

	scheme, err := e.scheme()
	if err != nil {
		return invalid("%v", err)
	}
	if (scheme == sparse.Custom) != (e.Assign != nil) {
		return invalid("assign is required by, and only allowed with, the custom scheme")
	}
	if e.Assign != nil {
		if err = e.Assign.validate(e.procs()); err != nil {
			return err
		}
	}

	if e.Spy != nil {
		if e.Spy.Dir == "" {
			return invalid("spy.dir is required")
		}
		if !slices.Contains(PlotFormats, e.Spy.Plot) {
			return invalid("spy.plot %q: must be one of %v", e.Spy.Plot, PlotFormats[1:])
		}
	}

	return nil
}

func (g *Generate) validate() error {
	if g.Rows < 1 {
		return invalid("generate.rows must be positive, got %d", g.Rows)
	}
	if g.Cols < 0 {
		return invalid("generate.cols must be positive, got %d", g.Cols)
	}
	switch g.Kind {
	case GenerateEye:
		if g.Cols != 0 && g.Cols != g.Rows {
			return invalid("generate.cols must equal rows for eye")
		}
	case GenerateRand:
		if !(g.Density > 0 && g.Density <= 1) {
			return invalid("generate.density must be in (0, 1], got %g", g.Density)
		}
	default:
		return invalid("generate.kind %q: must be %q or %q", g.Kind, GenerateEye, GenerateRand)
	}

	return nil
}

func (a *Assign) validate(procs int) error {
	switch a.Kind {
	case AssignColumnCyclic:
		if len(a.Grid) != 0 {
			return invalid("assign.grid is only used by %q", AssignCartesian)
		}
	case AssignCartesian:
		if len(a.Grid) != 2 || a.Grid[0] < 1 || a.Grid[1] < 1 {
			return invalid("assign.grid must be two positive integers, got %v", a.Grid)
		}
		if a.Grid[0]*a.Grid[1] != procs {
			return invalid("assign.grid %v covers %d images, procs is %d", a.Grid, a.Grid[0]*a.Grid[1], procs)
		}
	default:
		return invalid("assign.kind %q: must be %q or %q", a.Kind, AssignColumnCyclic, AssignCartesian)
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
