// SPDX-License-Identifier: MIT

// Package stopwatch times the phases of a run and reports them through slog.
//
// A Stopwatch starts on New. Each Phase call closes the previous phase (if
// any) and opens a new one; Finish closes the last phase. Time between New
// and the first Phase belongs to the total only.
//
//	sw := stopwatch.New("spmv")
//	sw.Phase("partition")
//	...
//	sw.Phase("multiply")
//	...
//	res := sw.Finish()
package stopwatch

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Clock returns the current time.
type Clock func() time.Time

// Option customizes a Stopwatch.
type Option func(*Stopwatch)

const (
	panicClockNil  = "stopwatch: WithClock: clock must not be nil"
	panicLoggerNil = "stopwatch: WithLogger: logger must not be nil"
)

// WithClock replaces time.Now.
func WithClock(c Clock) Option {
	if c == nil {
		panic(panicClockNil)
	}

	return func(w *Stopwatch) { w.now = c }
}

// WithLogger sets the destination of the report. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(w *Stopwatch) { w.logger = l }
}

// Split is the measured length of one phase.
type Split struct {
	Name     string
	Duration time.Duration
	// Percent is Duration relative to the total run time.
	Percent float64
}

// Result is the outcome of Finish.
type Result struct {
	Title  string
	Total  time.Duration
	Splits []Split
}

type mark struct {
	name string
	at   time.Time
}

// Stopwatch is not safe for concurrent use.
type Stopwatch struct {
	title  string
	now    Clock
	logger *slog.Logger
	start  time.Time
	marks  []mark
	silent bool
	done   *Result
}

// New starts a stopwatch.
func New(title string, opts ...Option) *Stopwatch {
	w := &Stopwatch{title: title, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	w.start = w.now()

	return w
}

// Phase starts the named phase.
func (w *Stopwatch) Phase(name string) {
	w.marks = append(w.marks, mark{name: name, at: w.now()})
}

// Silence suppresses the report logged by Finish.
func (w *Stopwatch) Silence() { w.silent = true }

// Finish stops the stopwatch, logs the report unless silenced, and returns
// it. Later calls return the same Result without logging again.
func (w *Stopwatch) Finish() Result {
	if w.done != nil {
		return *w.done
	}
	end := w.now()
	res := Result{Title: w.title, Total: end.Sub(w.start)}
	for k, m := range w.marks {
		next := end
		if k+1 < len(w.marks) {
			next = w.marks[k+1].at
		}
		d := next.Sub(m.at)
		pct := 0.0
		if res.Total > 0 {
			pct = 100 * float64(d) / float64(res.Total)
		}
		res.Splits = append(res.Splits, Split{Name: m.name, Duration: d, Percent: pct})
	}
	w.done = &res

	if !w.silent {
		w.logger.Info("benchmark finished", "title", res.Title, "total_ms", ms(res.Total))
		for _, s := range res.Splits {
			w.logger.Info("benchmark phase", "title", res.Title, "phase", s.Name,
				"ms", ms(s.Duration), "percent", fmt.Sprintf("%.2f", s.Percent))
		}
	}

	return res
}

// String renders the result as a small table.
func (r Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s total runtime: %.2f ms", r.Title, ms(r.Total))
	if len(r.Splits) == 0 {
		return b.String()
	}
	const hline = "----------------------------------------------------------"
	b.WriteString("\n" + hline + "\n")
	for _, s := range r.Splits {
		fmt.Fprintf(&b, "%-30s\t%.2f ms\t%.2f%%\n", s.Name, ms(s.Duration), s.Percent)
	}
	b.WriteString(hline)

	return b.String()
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
