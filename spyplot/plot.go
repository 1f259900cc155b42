// SPDX-License-Identifier: MIT

package spyplot

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"math/bits"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// DefaultSize is the side length of a rendered plot.
const DefaultSize = 6 * vg.Inch

// markerFill is the fraction of a cell covered by its marker.
const markerFill = 0.8

// Hue returns the hue in [0, 1) assigned to image s.
//
// Hues follow a binary subdivision of the colour circle (1/2, 1/4, 3/4,
// 1/8, 3/8, ...) shifted by one half, so consecutive images are far apart.
func Hue(s int) float64 {
	denom := 1 << bits.Len(uint(s))
	h := float64(1+2*s-denom)/float64(denom) - 0.5
	if h < 0 {
		h++
	}

	return h
}

// ColorOf returns the fully saturated colour of image s.
func ColorOf(s int) color.Color {
	return palette.HSVA{H: Hue(s), S: 1, V: 1, A: 1}
}

// Render draws d as a square size × size plot in the given format ("png",
// "svg", "pdf", "eps", "jpg", "tif") and writes it to w. A non-positive size
// selects DefaultSize. Row 0 is at the top.
func Render(d *Dump, w io.Writer, format string, size vg.Length) error {
	if size <= 0 {
		size = DefaultSize
	}
	p := plot.New()
	p.Title.Text = d.Title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"
	p.X.Min, p.X.Max = -0.5, float64(d.Cols)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(d.Rows)-0.5
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	radius := vg.Length(markerFill/2) * size / vg.Length(max(d.Rows, d.Cols, 1))
	radius = max(radius, vg.Points(0.5))
	for s, entries := range d.ByImage() {
		if len(entries) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(entries))
		for k, e := range entries {
			xys[k] = plotter.XY{X: float64(e.Col), Y: float64(e.Row)}
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("Render: image %d: %w", s, err)
		}
		sc.GlyphStyle = draw.GlyphStyle{Color: ColorOf(s), Radius: radius, Shape: draw.BoxGlyph{}}
		p.Add(sc)
		if d.Procs <= maxLegend {
			p.Legend.Add(fmt.Sprintf("image %d", s), sc)
		}
	}
	if !math.IsNaN(d.LoadImbalance) {
		p.X.Label.Text = fmt.Sprintf("column  (ε=%.4f, V=%d)", d.LoadImbalance, d.Volume)
	}

	wt, err := p.WriterTo(size, size, format)
	if err != nil {
		return fmt.Errorf("Render: %w", err)
	}
	if _, err = wt.WriteTo(w); err != nil {
		return fmt.Errorf("Render: %w", err)
	}

	return nil
}

// maxLegend is the largest image count that still gets a legend.
const maxLegend = 16
