package remap

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/steveyegge/refmap/internal/telemetry"
)

// runMetrics holds lazily-initialized OTel instruments for remap runs.
var runMetrics struct {
	filesScanned  metric.Int64Counter
	filesChanged  metric.Int64Counter
	refsRewritten metric.Int64Counter
	duration      metric.Float64Histogram
}

var runMetricsOnce sync.Once

func initRunMetrics() {
	m := telemetry.Meter("github.com/steveyegge/refmap/remap")
	runMetrics.filesScanned, _ = m.Int64Counter("refmap.files.scanned",
		metric.WithDescription("Files passing the reference pre-filter"),
		metric.WithUnit("{file}"),
	)
	runMetrics.filesChanged, _ = m.Int64Counter("refmap.files.changed",
		metric.WithDescription("Files with at least one rewritten reference"),
		metric.WithUnit("{file}"),
	)
	runMetrics.refsRewritten, _ = m.Int64Counter("refmap.references.rewritten",
		metric.WithDescription("Issue references rewritten"),
		metric.WithUnit("{reference}"),
	)
	runMetrics.duration, _ = m.Float64Histogram("refmap.run.duration",
		metric.WithDescription("Remap run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
}

// RecordRun publishes run-level counters. When telemetry is disabled the
// instruments belong to the global no-op meter, so this costs nothing.
func RecordRun(ctx context.Context, stats RunStats, dryRun bool, elapsed time.Duration) {
	runMetricsOnce.Do(initRunMetrics)
	if runMetrics.filesScanned == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.Bool("refmap.dry_run", dryRun))
	runMetrics.filesScanned.Add(ctx, int64(stats.FilesScanned), attrs)
	runMetrics.filesChanged.Add(ctx, int64(stats.FilesChanged), attrs)
	runMetrics.refsRewritten.Add(ctx, int64(stats.TotalChanges), attrs)
	runMetrics.duration.Record(ctx, float64(elapsed.Milliseconds()), attrs)
}
