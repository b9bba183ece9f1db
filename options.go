package treekit

import (
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Planner.
type Option func(*plannerConfig)

// plannerConfig holds configuration collected from options before the
// Planner is built.
type plannerConfig struct {
	root         string
	jitterLength int
	rand         io.Reader
	clock        func() time.Time
	logger       *slog.Logger
	tracer       trace.Tracer
	meter        metric.MeterProvider
}

// WithRoot sets the root segment of generated paths. Defaults to
// ltree.DefaultRoot ("root").
func WithRoot(root string) Option {
	return func(c *plannerConfig) {
		c.root = root
	}
}

// WithJitterLength sets the number of random symbols appended to generated
// order keys. Zero disables jitter; see the fracdex package for the
// collision trade-off.
func WithJitterLength(n int) Option {
	return func(c *plannerConfig) {
		if n >= 0 {
			c.jitterLength = n
		}
	}
}

// WithRand sets the random source shared by identifier and order-key
// generation. Defaults to crypto/rand. Intended for tests that need
// deterministic output.
func WithRand(r io.Reader) Option {
	return func(c *plannerConfig) {
		c.rand = r
	}
}

// WithClock sets the wall-clock function used for identifier timestamps.
// Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *plannerConfig) {
		c.clock = now
	}
}

// WithLogger sets a custom logger. If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *plannerConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for the planner's operations.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *plannerConfig) {
		c.tracer = tracer
	}
}

// WithMeterProvider enables OpenTelemetry metrics. The planner records a
// key-length histogram (fractional keys grow under repeated insertion at
// the same slot, which is the operational signal that a sibling group needs
// rebalancing) and counters for planned positions and rebased paths.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *plannerConfig) {
		c.meter = mp
	}
}
