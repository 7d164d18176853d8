// Package metrics provides Prometheus metrics for the log engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/smazurov/openlogger/internal/events"
)

var (
	entriesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "openlogger",
		Subsystem: "entries",
		Name:      "written_total",
		Help:      "Log entries appended to a log file",
	}, []string{"severity"})

	entriesFiltered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "openlogger",
		Subsystem: "entries",
		Name:      "filtered_total",
		Help:      "Log entries dropped by the severity threshold",
	}, []string{"severity"})

	writeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "openlogger",
		Subsystem: "writer",
		Name:      "failures_total",
		Help:      "Failed attempts to open or append to a log file",
	}, []string{"code"})

	optionsGeneration = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "openlogger",
		Subsystem: "options",
		Name:      "generation",
		Help:      "Current logger options generation",
	})
)

// RecordWritten counts one written entry.
func RecordWritten(severity string) {
	entriesWritten.WithLabelValues(severity).Inc()
}

// RecordFiltered counts one entry dropped by the threshold.
func RecordFiltered(severity string) {
	entriesFiltered.WithLabelValues(severity).Inc()
}

// RecordFailure counts one open or write failure.
func RecordFailure(code string) {
	writeFailures.WithLabelValues(code).Inc()
}

// SetGeneration records the active options generation.
func SetGeneration(gen uint64) {
	optionsGeneration.Set(float64(gen))
}

// Subscribe feeds the metrics from bus events. Returns a function that
// removes all subscriptions.
func Subscribe(bus *events.Bus) func() {
	unsubs := []func(){
		bus.Subscribe(func(e events.EntryWrittenEvent) { RecordWritten(e.Severity) }),
		bus.Subscribe(func(e events.EntryFilteredEvent) { RecordFiltered(e.Severity) }),
		bus.Subscribe(func(e events.WriteFailedEvent) { RecordFailure(e.Code) }),
		bus.Subscribe(func(e events.OptionsReloadedEvent) { SetGeneration(e.Generation) }),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
