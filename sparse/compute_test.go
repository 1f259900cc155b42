package sparse_test

import (
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/katalvlaran/zee/sparse"
	"github.com/stretchr/testify/require"
)

// TestComputeOrderedByImage runs an identity function with random delays many
// times and expects results ordered by image index every time.
func TestComputeOrderedByImage(t *testing.T) {
	const p = 8
	m := mustMatrix(t, 16, 16, sparse.WithProcs(p))
	require.NoError(t, m.SetFromTriplets(dense(16)))

	want := make([]int, p)
	for s := range want {
		want[s] = s
	}
	for round := 0; round < 50; round++ {
		got := sparse.Compute(m, func(_ sparse.View, s int) int {
			if rand.IntN(2) == 0 {
				runtime.Gosched()
			}
			time.Sleep(time.Duration(rand.IntN(200)) * time.Microsecond)

			return s
		})
		require.Equal(t, want, got)
	}
}

// TestComputeOneTaskPerImage checks exactly P invocations that all finish
// before Compute returns.
func TestComputeOneTaskPerImage(t *testing.T) {
	m := mustMatrix(t, 9, 9, sparse.WithProcs(5))
	require.NoError(t, m.SetFromTriplets(dense(9)))

	var calls, running, peak atomic.Int64
	m.ComputeEach(func(_ sparse.View, _ int) {
		calls.Add(1)
		n := running.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		running.Add(-1)
	})
	require.Equal(t, int64(5), calls.Load())
	require.Equal(t, int64(0), running.Load()) // joined
	require.LessOrEqual(t, peak.Load(), int64(5))
}

// TestComputeSeesImageContents sums nonzeros per image through views.
func TestComputeSeesImageContents(t *testing.T) {
	m := mustMatrix(t, 4, 4, sparse.WithProcs(2))
	require.NoError(t, m.SetFromTriplets(dense(4)))

	sums := sparse.Compute(m, func(v sparse.View, _ int) float64 {
		total := 0.0
		for tr := range v.Triplets() {
			total += tr.Value()
		}

		return total
	})
	// rows 0,2 → image 0: (1+2+3+4)+(9+10+11+12); rows 1,3 → image 1
	require.Equal(t, []float64{52, 84}, sums)
}

// TestRepartitionDuringComputeIsBusy verifies the single-writer rule: a
// repartition attempted from inside a compute call fails with ErrBusy and
// leaves the partition intact, while read accessors keep working.
func TestRepartitionDuringComputeIsBusy(t *testing.T) {
	m := mustMatrix(t, 4, 4, sparse.WithProcs(2))
	require.NoError(t, m.SetFromTriplets(identity(4)))

	errs := sparse.Compute(m, func(_ sparse.View, s int) [3]error {
		_ = m.NonZeros() // nested read is fine
		var out [3]error
		out[0] = m.SetFromTriplets(dense(4))
		out[1] = m.ResetImages([]*sparse.Image{sparse.NewImage()})
		out[2] = m.SetDistributionScheme(sparse.Block, 3)

		return out
	})
	for _, e := range errs {
		for _, err := range e {
			require.ErrorIs(t, err, sparse.ErrBusy)
		}
	}
	require.Equal(t, 4, m.NonZeros())
	require.Equal(t, 2, m.Procs())

	// After the join the matrix is writable again.
	require.NoError(t, m.SetFromTriplets(dense(4)))
	require.Equal(t, 16, m.NonZeros())
}

// gateWriter blocks its first Write until release is closed, signalling
// entered once the write has started.
type gateWriter struct {
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gateWriter) Write(p []byte) (int, error) {
	g.once.Do(func() { close(g.entered) })
	<-g.release

	return len(p), nil
}

// TestRepartitionDuringSpyIsBusy: any reader holding the matrix, not only a
// compute call, makes repartitioning fail with ErrBusy.
func TestRepartitionDuringSpyIsBusy(t *testing.T) {
	m := mustMatrix(t, 4, 4, sparse.WithProcs(2))
	require.NoError(t, m.SetFromTriplets(identity(4)))

	g := &gateWriter{entered: make(chan struct{}), release: make(chan struct{})}
	done := make(chan error, 1)
	go func() { done <- m.Spy(g, "held") }()
	<-g.entered

	err := m.SetFromTriplets(dense(4))
	require.ErrorIs(t, err, sparse.ErrBusy)
	require.Contains(t, err.Error(), "matrix in use")
	require.ErrorIs(t, m.SetDistributionScheme(sparse.Block, 2), sparse.ErrBusy)

	close(g.release)
	require.NoError(t, <-done)
	require.NoError(t, m.SetFromTriplets(dense(4)))
	require.Equal(t, 16, m.NonZeros())
}

// TestConcurrentMetrics runs metric readers concurrently; meant for -race.
func TestConcurrentMetrics(t *testing.T) {
	m := mustMatrix(t, 12, 12, sparse.WithProcs(3), sparse.WithScheme(sparse.Random), sparse.WithSeed(1))
	require.NoError(t, m.SetFromTriplets(dense(12)))
	want := m.CommunicationVolume()

	done := make(chan int, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- m.CommunicationVolume() }()
	}
	for i := 0; i < 8; i++ {
		require.Equal(t, want, <-done)
	}
}
