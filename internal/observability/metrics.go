package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analysis and report pipeline.
type Metrics struct {
	ReportsGenerated *prometheus.CounterVec // labels: mode={check,plan}
	WeatherFetches   *prometheus.CounterVec // labels: source={geocoding,archive,climate,advisory}, outcome={success,error}
	GeocodeLookups   *prometheus.CounterVec // labels: outcome={resolved,not_found,error}

	FetchDuration  *prometheus.HistogramVec // labels: source={geocoding,archive,climate,advisory}
	ReportDuration prometheus.Histogram

	CropProfilesLoaded prometheus.Gauge
}

// NewMetrics creates all pipeline metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ReportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cropcast",
			Name:      "reports_generated_total",
			Help:      "Season reports generated, by analysis mode.",
		}, []string{"mode"}),
		WeatherFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cropcast",
			Name:      "weather_fetches_total",
			Help:      "Open-Meteo and advisory fetches, by source and outcome.",
		}, []string{"source", "outcome"}),
		GeocodeLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cropcast",
			Name:      "geocode_lookups_total",
			Help:      "Location lookups, by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cropcast",
			Name:      "fetch_duration_seconds",
			Help:      "Remote fetch duration in seconds, by source.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cropcast",
			Name:      "report_duration_seconds",
			Help:      "Duration of a complete analyze-render-store cycle.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		CropProfilesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cropcast",
			Name:      "crop_profiles_loaded",
			Help:      "Crop profiles served by the catalog after the last load.",
		}),
	}

	reg.MustRegister(
		m.ReportsGenerated,
		m.WeatherFetches,
		m.GeocodeLookups,
		m.FetchDuration,
		m.ReportDuration,
		m.CropProfilesLoaded,
	)

	return m
}

// NewMetricsForTesting creates Metrics over a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
