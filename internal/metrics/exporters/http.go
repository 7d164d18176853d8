// Package exporters exposes the collected metrics over HTTP.
package exporters

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smazurov/openlogger/internal/logging"
)

// scrapeErrorLog adapts the module logger to promhttp.Logger.
type scrapeErrorLog struct {
	logger logging.Logger
}

func (l scrapeErrorLog) Println(v ...any) {
	l.logger.Warn("Metrics scrape error", "error", fmt.Sprint(v...))
}

// HTTPHandler serves the default registry, which holds every promauto
// metric, and counts its own scrapes.
func HTTPHandler() http.Handler {
	return promhttp.InstrumentMetricHandler(prometheus.DefaultRegisterer,
		promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
			ErrorLog:          scrapeErrorLog{logger: logging.GetLogger("metrics")},
			ErrorHandling:     promhttp.ContinueOnError,
			EnableOpenMetrics: true,
		}))
}
