// Package metrics provides Prometheus instrumentation for geoinspect.
//
// A CLI run is too short to be scraped, so the registry is written once at
// exit in the node_exporter textfile format:
//
//	METRICS_TEXTFILE=/var/lib/node_exporter/geoinspect.prom geoinspect ogrinspect ...
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every geoinspect collector. It is separate from the
// default registry so the textfile contains only geoinspect series.
var Registry = prometheus.NewRegistry()

var (
	// InspectDuration tracks how long opening and inspecting a source takes.
	InspectDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "geoinspect",
			Name:      "inspect_duration_seconds",
			Help:      "Duration of data source inspections in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"driver"},
	)

	// InspectTotal counts inspections by driver and outcome.
	InspectTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geoinspect",
			Name:      "inspections_total",
			Help:      "Total number of data source inspections.",
		},
		[]string{"driver", "status"},
	)

	// FieldsGenerated counts generated model fields by source field type.
	FieldsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geoinspect",
			Name:      "fields_generated_total",
			Help:      "Total number of model fields generated.",
		},
		[]string{"type"},
	)

	// SRIDLookups counts SRID resolutions by the step that answered.
	SRIDLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geoinspect",
			Name:      "srid_lookups_total",
			Help:      "Total number of SRID resolutions by source.",
		},
		[]string{"source"},
	)
)

func init() {
	Registry.MustRegister(InspectDuration, InspectTotal, FieldsGenerated, SRIDLookups)
}

// ObserveInspect records one inspection.
func ObserveInspect(driver string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	InspectDuration.WithLabelValues(driver).Observe(time.Since(start).Seconds())
	InspectTotal.WithLabelValues(driver, status).Inc()
}

// WriteTextfile writes the registry to path. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
