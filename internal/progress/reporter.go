// ABOUTME: Ticker-driven progress reporter running beside an attack
// ABOUTME: Reads the shared attempt counter and emits rate snapshots to a sink

package progress

import (
	"sync"
	"time"

	"github.com/hikmaai-io/hikmaai-dictcrack/internal/types"
)

// DefaultInterval is the tick period when WithInterval is not given.
const DefaultInterval = 100 * time.Millisecond

// Counter is the read-only view of the attempt counter.
type Counter interface {
	Load() int64
}

// Sink receives snapshots. Emit is called from the reporter goroutine and
// must not block for long.
type Sink interface {
	Emit(types.Snapshot)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(types.Snapshot)

// Emit calls f(s).
func (f SinkFunc) Emit(s types.Snapshot) { f(s) }

// Option configures a Reporter.
type Option func(*Reporter)

// WithInterval sets the tick period. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(r *Reporter) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithSampler attaches host resource usage to every snapshot.
func WithSampler(s Sampler) Option {
	return func(r *Reporter) {
		r.sampler = s
	}
}

// Reporter periodically publishes attack progress. A Reporter is single-use:
// Start after Stop does nothing.
type Reporter struct {
	sink     Sink
	interval time.Duration
	sampler  Sampler

	mu        sync.Mutex
	running   bool
	finished  bool
	counter   Counter
	startedAt time.Time
	stop      chan struct{}
	done      chan struct{}
}

// NewReporter creates a reporter that emits to sink. A nil sink discards.
func NewReporter(sink Sink, opts ...Option) *Reporter {
	if sink == nil {
		sink = SinkFunc(func(types.Snapshot) {})
	}
	r := &Reporter{
		sink:     sink,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Interval returns the configured tick period.
func (r *Reporter) Interval() time.Duration {
	return r.interval
}

// Start launches the reporting goroutine. Elapsed time is measured from started.
func (r *Reporter) Start(counter Counter, started time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running || r.finished || counter == nil {
		return
	}

	r.running = true
	r.counter = counter
	r.startedAt = started
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	go r.run()
}

// Stop halts the goroutine, waits for it to exit, and emits a final snapshot.
// It is idempotent and does nothing if the reporter was never started.
func (r *Reporter) Stop() {
	r.mu.Lock()
	if !r.running {
		r.finished = true
		r.mu.Unlock()
		return
	}
	r.running = false
	r.finished = true
	close(r.stop)
	done := r.done
	r.mu.Unlock()

	<-done

	snap := r.snapshot()
	snap.Final = true
	r.sink.Emit(snap)
}

func (r *Reporter) run() {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.sink.Emit(r.snapshot())
		}
	}
}

func (r *Reporter) snapshot() types.Snapshot {
	snap := types.NewSnapshot(r.counter.Load(), time.Since(r.startedAt))
	if r.sampler != nil {
		if host, err := r.sampler.Sample(); err == nil {
			snap.CPUPercent = host.CPUPercent
			snap.MemoryUsedPercent = host.MemoryUsedPercent
		}
	}
	return snap
}
