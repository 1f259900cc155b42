// SPDX-License-Identifier: MIT

// Package report summarizes a partitioned matrix: shape, per-image loads and
// the two partition quality metrics. Reports render as aligned text through a
// golang.org/x/text message printer or as JSON.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/katalvlaran/zee/sparse"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/unicode/norm"
	"gonum.org/v1/gonum/stat"
)

// Report is a snapshot of a matrix partition.
type Report struct {
	RunID         string  `json:"run_id"`
	Title         string  `json:"title,omitempty"`
	Rows          int     `json:"rows"`
	Cols          int     `json:"cols"`
	NonZeros      int     `json:"nonzeros"`
	Procs         int     `json:"procs"`
	Scheme        string  `json:"scheme"`
	Sparsity      float64 `json:"sparsity"`
	ImageNonZeros []int   `json:"image_nonzeros"`
	MeanLoad      float64 `json:"mean_load"`
	StdDevLoad    float64 `json:"stddev_load"`
	// LoadImbalance is nil for a matrix without nonzeros.
	LoadImbalance       *float64 `json:"load_imbalance"`
	CommunicationVolume int      `json:"communication_volume"`
}

// IDFunc produces run identifiers.
type IDFunc func() string

// NewRunID returns a time-ordered UUIDv7 string.
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Option customizes New.
type Option func(*options)

type options struct {
	id    IDFunc
	title string
}

// WithRunID fixes the run identifier.
func WithRunID(id string) Option {
	return func(o *options) { o.id = func() string { return id } }
}

// WithIDFunc sets the run identifier generator. Default: NewRunID.
func WithIDFunc(f IDFunc) Option {
	if f == nil {
		panic("report: WithIDFunc: function must not be nil")
	}

	return func(o *options) { o.id = f }
}

// WithTitle attaches a title, stored in Unicode NFC form.
func WithTitle(title string) Option {
	return func(o *options) { o.title = norm.NFC.String(title) }
}

// New builds a report for m.
//
// The metrics are read one after another; a repartition running concurrently
// may leave them describing different partitions.
func New(m *sparse.Matrix, opts ...Option) (*Report, error) {
	o := options{id: NewRunID}
	for _, opt := range opts {
		opt(&o)
	}

	loads := sparse.Compute(m, func(v sparse.View, _ int) int { return v.NonZeros() })
	r := &Report{
		RunID:               o.id(),
		Title:               o.title,
		Rows:                m.Rows(),
		Cols:                m.Cols(),
		NonZeros:            sum(loads),
		Procs:               len(loads),
		Scheme:              m.Scheme().String(),
		ImageNonZeros:       loads,
		CommunicationVolume: m.CommunicationVolume(),
	}
	if size := m.Size(); size > 0 {
		r.Sparsity = float64(r.NonZeros) / float64(size)
	}
	r.MeanLoad, r.StdDevLoad = loadStats(loads)

	eps, err := m.LoadImbalance()
	switch {
	case err == nil:
		r.LoadImbalance = &eps
	case !errors.Is(err, sparse.ErrEmptyMatrix):
		return nil, fmt.Errorf("report: %w", err)
	}

	return r, nil
}

// loadStats returns the mean and sample standard deviation of the loads.
func loadStats(loads []int) (mean, std float64) {
	if len(loads) == 0 {
		return 0, 0
	}
	xs := make([]float64, len(loads))
	for i, n := range loads {
		xs[i] = float64(n)
	}
	if len(xs) == 1 {
		return xs[0], 0
	}

	return stat.MeanStdDev(xs, nil)
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}

	return total
}

// WriteText writes the report as aligned "label value" lines, formatting
// numbers for lang.
func (r *Report) WriteText(w io.Writer, lang language.Tag) error {
	p := message.NewPrinter(lang)
	loads := make([]string, len(r.ImageNonZeros))
	for i, n := range r.ImageNonZeros {
		loads[i] = p.Sprintf("%d", n)
	}
	imbalance := "n/a"
	if r.LoadImbalance != nil {
		imbalance = p.Sprintf("%.4f", *r.LoadImbalance)
	}

	lines := [][2]string{
		{"run", r.RunID},
		{"title", r.Title},
		{"shape", p.Sprintf("%d × %d", r.Rows, r.Cols)},
		{"nonzeros", p.Sprintf("%d", r.NonZeros)},
		{"sparsity", p.Sprintf("%.4f", r.Sparsity)},
		{"images", p.Sprintf("%d (%s)", r.Procs, r.Scheme)},
		{"image loads", strings.Join(loads, " ")},
		{"mean load", p.Sprintf("%.2f ± %.2f", r.MeanLoad, r.StdDevLoad)},
		{"load imbalance", imbalance},
		{"comm. volume", p.Sprintf("%d", r.CommunicationVolume)},
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

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}
