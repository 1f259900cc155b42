// SPDX-License-Identifier: MIT

// Package sparse: functional configuration for Matrix.
//   - Option mutates the internal options struct; New applies them in order.
//   - Defaults are documented constants (single source of truth).
//   - WithX constructors panic only on nonsensical values (programmer error).

package sparse

import (
	"log/slog"
	"math/rand/v2"
)

// Defaults.
const (
	// DefaultProcs is the processor count of a freshly created matrix.
	DefaultProcs = 1

	// DefaultScheme is the partitioning scheme of a freshly created matrix.
	DefaultScheme = Cyclic
)

const (
	panicProcsInvalid  = "sparse: WithProcs: procs must be >= 1"
	panicSchemeInvalid = "sparse: WithScheme: unknown scheme"
	panicSourceNil     = "sparse: WithRandSource: source must not be nil"
	panicFactoryNil    = "sparse: WithStorage: factory must not be nil"
	panicLoggerNil     = "sparse: WithLogger: logger must not be nil"
	panicAssignmentNil = "sparse: WithAssignFunc: function must not be nil"
)

// StorageFactory allocates the Storage of a fresh image.
// capacity is a sizing hint and may be ignored.
type StorageFactory func(capacity int) Storage

// Option configures a Matrix at construction time.
type Option func(*options)

type options struct {
	procs   int
	scheme  Scheme
	assign  AssignFunc
	src     rand.Source
	storage StorageFactory
	logger  *slog.Logger
}

func defaultOptions() options {
	return options{
		procs:   DefaultProcs,
		scheme:  DefaultScheme,
		storage: func(capacity int) Storage { return NewTripletList(capacity) },
	}
}

// WithProcs sets the number of images P.
func WithProcs(procs int) Option {
	if procs < 1 {
		panic(panicProcsInvalid)
	}

	return func(o *options) { o.procs = procs }
}

// WithScheme sets the partitioning scheme.
func WithScheme(s Scheme) Option {
	if !s.Valid() {
		panic(panicSchemeInvalid)
	}

	return func(o *options) { o.scheme = s }
}

// WithAssignFunc selects the Custom scheme with f as its policy.
func WithAssignFunc(f AssignFunc) Option {
	if f == nil {
		panic(panicAssignmentNil)
	}

	return func(o *options) {
		o.scheme = Custom
		o.assign = f
	}
}

// WithRandSource injects the random source used by the Random scheme.
// Without it the matrix draws from a source seeded by the process-wide
// generator, so Random partitions differ from run to run.
func WithRandSource(src rand.Source) Option {
	if src == nil {
		panic(panicSourceNil)
	}

	return func(o *options) { o.src = src }
}

// WithSeed is WithRandSource(rand.NewPCG(seed, seed)).
func WithSeed(seed uint64) Option {
	return WithRandSource(rand.NewPCG(seed, seed))
}

// WithStorage sets the storage layout used for the images the matrix builds.
func WithStorage(f StorageFactory) Option {
	if f == nil {
		panic(panicFactoryNil)
	}

	return func(o *options) { o.storage = f }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *options) { o.logger = l }
}
