package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// daily check loop.
type Metrics struct {
	CyclesTotal   prometheus.Counter
	FetchFailures prometheus.Counter
	FetchDuration prometheus.Histogram

	// Last-cycle forecast snapshot.
	ForecastDates  prometheus.Gauge
	FavorableDates prometheus.Gauge
	MaxKpForecast  prometheus.Gauge

	NotificationsSent prometheus.Counter
	NotifyFailures    prometheus.Counter

	CycleDuration    prometheus.Histogram
	SchedulerRunning prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		CyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aurora_watch",
			Name:      "cycles_total",
			Help:      "Total daily check cycles started.",
		}),
		FetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aurora_watch",
			Name:      "fetch_failures_total",
			Help:      "Total forecast fetches that failed and skipped the cycle.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aurora_watch",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the forecast HTTP fetch.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ForecastDates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aurora_watch",
			Name:      "forecast_dates",
			Help:      "Dates parsed from the most recent forecast.",
		}),
		FavorableDates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aurora_watch",
			Name:      "favorable_dates",
			Help:      "Dates at or above the Kp threshold in the most recent forecast.",
		}),
		MaxKpForecast: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aurora_watch",
			Name:      "max_kp_forecast",
			Help:      "Highest Kp value in the most recent forecast.",
		}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aurora_watch",
			Name:      "notifications_sent_total",
			Help:      "Total notifications delivered to the configured sink.",
		}),
		NotifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aurora_watch",
			Name:      "notify_failures_total",
			Help:      "Total notification deliveries that failed.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aurora_watch",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a complete fetch-parse-evaluate-notify cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		SchedulerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aurora_watch",
			Name:      "scheduler_running",
			Help:      "1 when the scheduling loop is active, 0 when shut down.",
		}),
	}

	prometheus.MustRegister(
		m.CyclesTotal,
		m.FetchFailures,
		m.FetchDuration,
		m.ForecastDates,
		m.FavorableDates,
		m.MaxKpForecast,
		m.NotificationsSent,
		m.NotifyFailures,
		m.CycleDuration,
		m.SchedulerRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		CyclesTotal:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "aurora_watch", Name: "cycles_total"}),
		FetchFailures:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "aurora_watch", Name: "fetch_failures_total"}),
		FetchDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "aurora_watch", Name: "fetch_duration_seconds"}),
		ForecastDates:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "aurora_watch", Name: "forecast_dates"}),
		FavorableDates:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "aurora_watch", Name: "favorable_dates"}),
		MaxKpForecast:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "aurora_watch", Name: "max_kp_forecast"}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "aurora_watch", Name: "notifications_sent_total"}),
		NotifyFailures:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "aurora_watch", Name: "notify_failures_total"}),
		CycleDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "aurora_watch", Name: "cycle_duration_seconds"}),
		SchedulerRunning:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "aurora_watch", Name: "scheduler_running"}),
	}
}
