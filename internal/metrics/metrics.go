package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for list loads
type Metrics struct {
	Loads        *prometheus.CounterVec
	LoadDuration prometheus.Histogram
	ListsLoaded  prometheus.Gauge
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Loads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "giftlists_loads_total",
			Help: "List loads by outcome (success, transport, status, decode, schema).",
		}, []string{"outcome"}),
		LoadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "giftlists_load_duration_seconds",
			Help:    "Time spent fetching and normalizing the lists.",
			Buckets: prometheus.DefBuckets,
		}),
		ListsLoaded: f.NewGauge(prometheus.GaugeOpts{
			Name: "giftlists_lists_loaded",
			Help: "Number of lists shown after the last successful load.",
		}),
	}
}

// ObserveLoad records one finished load. lists is only used on success.
func (m *Metrics) ObserveLoad(outcome string, d time.Duration, lists int) {
	m.Loads.WithLabelValues(outcome).Inc()
	m.LoadDuration.Observe(d.Seconds())
	if outcome == "success" {
		m.ListsLoaded.Set(float64(lists))
	}
}

// Handler exposes the collectors gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
