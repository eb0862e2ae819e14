package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	CustomersRegistered prometheus.Counter
	CustomersDeleted    prometheus.Counter
	CustomersPurged     prometheus.Counter
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "customer_service_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		CustomersRegistered: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customer_service_customers_registered_total",
				Help: "Total number of customers successfully registered.",
			},
		),
		CustomersDeleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customer_service_customers_deleted_total",
				Help: "Total number of customers deleted on request.",
			},
		),
		CustomersPurged: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customer_service_customers_purged_total",
				Help: "Total number of inactive customers removed by the purge job.",
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

// ObserveDBQuery is meant to be deferred: defer monitoring.ObserveDBQuery("find_by_id", time.Now(), &err).
func ObserveDBQuery(queryName string, start time.Time, err *error) {
	status := StatusSuccess
	if err != nil && *err != nil {
		status = StatusError
	}
	RecordDBQuery(queryName, status, time.Since(start))
}

func RecordCustomerRegistered() {
	Business.CustomersRegistered.Inc()
}

func RecordCustomerDeleted() {
	Business.CustomersDeleted.Inc()
}

func RecordCustomersPurged(n int64) {
	if n > 0 {
		Business.CustomersPurged.Add(float64(n))
	}
}
