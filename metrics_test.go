package treekit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func counterValue(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestPlannerMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	planner, err := New(WithMeterProvider(provider))
	require.NoError(t, err)
	ctx := context.Background()

	first, err := planner.PlanInsert(ctx, "root", "", "")
	require.NoError(t, err)
	_, err = planner.PlanInsert(ctx, "root", first.OrderKey, "")
	require.NoError(t, err)

	_, err = planner.Rebase(ctx, first.Path, "root.a1", []string{first.Path})
	require.NoError(t, err)

	metrics := collectMetrics(t, reader)

	positions, ok := metrics["treekit.positions"]
	require.True(t, ok, "positions counter not recorded")
	assert.Equal(t, int64(2), counterValue(t, positions))

	rebased, ok := metrics["treekit.rebased_paths"]
	require.True(t, ok, "rebased paths counter not recorded")
	assert.Equal(t, int64(1), counterValue(t, rebased))

	keyLength, ok := metrics["treekit.key_length"]
	require.True(t, ok, "key length histogram not recorded")
	hist, ok := keyLength.Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)
}

func TestPlannerWithoutMetrics(t *testing.T) {
	planner, err := New()
	require.NoError(t, err)
	require.Nil(t, planner.metrics)

	// Recording with metrics disabled must be a no-op, not a panic.
	planner.recordPosition(context.Background(), Position{OrderKey: "V"})
	planner.recordRebase(context.Background(), 3)
}
