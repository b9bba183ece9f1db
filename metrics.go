package treekit

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// instrumentationName identifies this module to the meter provider.
const instrumentationName = "github.com/treekit/treekit"

// otelMetrics holds the metric instruments. Created once during New when a
// meter provider is configured, nil otherwise.
type otelMetrics struct {
	// keyLength records the length of each generated order key. Growth of
	// this distribution over time means writers keep splitting the same
	// gaps and the affected sibling groups are due for a key rebalance.
	keyLength metric.Int64Histogram

	// positions counts planned insert/move positions.
	positions metric.Int64Counter

	// rebasedPaths counts descendant paths rewritten by Rebase.
	rebasedPaths metric.Int64Counter
}

// newOtelMetrics creates the instruments on the given meter.
func newOtelMetrics(meter metric.Meter) (*otelMetrics, error) {
	m := &otelMetrics{}
	var err error

	m.keyLength, err = meter.Int64Histogram(
		"treekit.key_length",
		metric.WithDescription("Length in symbols of generated order keys"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create key length histogram: %w", err)
	}

	m.positions, err = meter.Int64Counter(
		"treekit.positions",
		metric.WithDescription("Number of tree positions planned"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create positions counter: %w", err)
	}

	m.rebasedPaths, err = meter.Int64Counter(
		"treekit.rebased_paths",
		metric.WithDescription("Number of descendant paths rewritten during rebase"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create rebased paths counter: %w", err)
	}

	return m, nil
}

// recordPosition records instruments for one planned position. Safe to call
// with metrics disabled.
func (p *Planner) recordPosition(ctx context.Context, pos Position) {
	if p.metrics == nil {
		return
	}
	p.metrics.keyLength.Record(ctx, int64(len(pos.OrderKey)))
	p.metrics.positions.Add(ctx, 1)
}

// recordRebase records the number of paths rewritten by one Rebase call.
func (p *Planner) recordRebase(ctx context.Context, n int) {
	if p.metrics == nil {
		return
	}
	p.metrics.rebasedPaths.Add(ctx, int64(n))
}
