package harness

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/mirkobrombin/go-memlock/v1/errors"
	"github.com/mirkobrombin/go-memlock/v1/lock"
	"github.com/mirkobrombin/go-memlock/v1/metrics"
	"github.com/mirkobrombin/go-memlock/v1/ordering"
)

var tracer = otel.Tracer("github.com/mirkobrombin/go-memlock/v1/harness")

// Config describes one contention run.
type Config struct {
	// Mode is the memory-ordering mode the Peterson lock is built with.
	Mode ordering.Mode
	// Iterations is the number of lock/unlock cycles each participant
	// performs. Defaults to 1000.
	Iterations int
	// Hold is an optional time spent inside each critical section. Zero
	// means the section only updates the holder counters.
	Hold time.Duration
}

// Runner executes contention runs for a fixed Config.
type Runner struct {
	cfg          Config
	traceEnabled bool

	acquireCounter   prometheus.Counter
	releaseCounter   prometheus.Counter
	violationCounter prometheus.Counter
	holdersGauge     prometheus.Gauge
}

// Option configures a Runner.
type Option func(*Runner)

// WithTracing enables an OpenTelemetry span per run.
func WithTracing() Option {
	return func(r *Runner) {
		r.traceEnabled = true
	}
}

// WithMetrics routes the runner's collectors to the provided registerer
// instead of the package-level defaults in v1/metrics. Each runner registers
// its own collectors, so two runners must not share a registry.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(r *Runner) {
		r.acquireCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memlock_acquire_total",
			Help: "Total number of lock acquisitions",
		})
		r.releaseCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memlock_release_total",
			Help: "Total number of lock releases",
		})
		r.violationCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memlock_violation_total",
			Help: "Total number of observed mutual exclusion violations",
		})
		r.holdersGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "memlock_holders",
			Help: "Current number of critical section holders",
		})
		reg.MustRegister(r.acquireCounter, r.releaseCounter, r.violationCounter, r.holdersGauge)
	}
}

// New returns a Runner for cfg.
func New(cfg Config, opts ...Option) *Runner {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1000
	}
	r := &Runner{
		cfg:              cfg,
		acquireCounter:   metrics.AcquireCounter,
		releaseCounter:   metrics.ReleaseCounter,
		violationCounter: metrics.ViolationCounter,
		holdersGauge:     metrics.HoldersGauge,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one contention run: both slots loop over
// Lock/observe/Unlock for the configured number of iterations. It returns a
// Report of what the instrumentation saw, or errors.ErrTimeout if the context
// expired before both participants finished.
//
// The lock has no cancellation, so a participant stuck spinning (possible
// under modes weaker than SeqCst, Plain especially) is leaked when Run
// returns early; each run builds a fresh lock, so the leak is bounded by the
// two goroutines of that run.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:      uuid.NewString(),
		Mode:       r.cfg.Mode,
		Iterations: r.cfg.Iterations,
	}
	if r.traceEnabled {
		var end func()
		ctx, end = r.startSpan(ctx, report)
		defer end()
	}

	l := lock.NewPeterson(r.cfg.Mode)
	var (
		holders    atomic.Int32
		maxHolders atomic.Int32
		violations atomic.Int64
	)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for s := 0; s < 2; s++ {
		slot := lock.Slot(s)
		g.Go(func() error {
			for i := 0; i < r.cfg.Iterations; i++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				l.Lock(slot)
				r.acquireCounter.Inc()
				n := holders.Add(1)
				r.holdersGauge.Set(float64(n))
				if n > 1 {
					violations.Add(1)
					r.violationCounter.Inc()
				}
				for {
					cur := maxHolders.Load()
					if n <= cur || maxHolders.CompareAndSwap(cur, n) {
						break
					}
				}
				if r.cfg.Hold > 0 {
					time.Sleep(r.cfg.Hold)
				}
				r.holdersGauge.Set(float64(holders.Add(-1)))
				l.Unlock(slot)
				r.releaseCounter.Inc()
			}
			return nil
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		return nil, errors.ErrTimeout
	}

	report.MaxHolders = maxHolders.Load()
	report.Violations = violations.Load()
	report.Elapsed = time.Since(start)
	return report, nil
}

// Run executes a single contention run for cfg with a throwaway Runner.
func Run(ctx context.Context, cfg Config, opts ...Option) (*Report, error) {
	return New(cfg, opts...).Run(ctx)
}

func (r *Runner) startSpan(ctx context.Context, rep *Report) (context.Context, func()) {
	ctx, span := tracer.Start(ctx, "harness.Run")
	span.SetAttributes(
		attribute.String("memlock.run_id", rep.RunID),
		attribute.String("memlock.mode", rep.Mode.String()),
		attribute.Int("memlock.iterations", rep.Iterations),
	)
	return ctx, func() {
		span.SetAttributes(
			attribute.Int("memlock.max_holders", int(rep.MaxHolders)),
			attribute.Int64("memlock.violations", rep.Violations),
		)
		span.End()
	}
}
