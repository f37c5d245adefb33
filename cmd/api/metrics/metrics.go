package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"doc-pager/pagination"
)

const (
	ModeOffset = "offset"
	ModeCursor = "cursor"
)

var (
	// RequestsTotal counts pagination requests. Labels: mode (offset, cursor), status (ok, error)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "doc_pager_pagination_requests_total",
			Help: "Total number of pagination requests",
		},
		[]string{"mode", "status"},
	)

	// DurationSeconds tracks pagination duration, find and count included.
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "doc_pager_pagination_duration_seconds",
			Help:    "Pagination duration distribution",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"mode"},
	)

	// TotalItems is the latest total seen by an offset query, per collection.
	TotalItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "doc_pager_total_items",
			Help: "Total matching documents reported by the last offset query",
		},
		[]string{"collection"},
	)

	// ErrorsTotal counts pagination errors. Labels: kind (invalid, source, canceled)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "doc_pager_pagination_errors_total",
			Help: "Total number of pagination errors",
		},
		[]string{"kind"},
	)
)

// RecordRequest records one pagination call with its outcome and duration in seconds.
func RecordRequest(mode string, err error, seconds float64) {
	status := "ok"
	if err != nil {
		status = "error"
		ErrorsTotal.WithLabelValues(ErrorKind(err)).Inc()
	}
	RequestsTotal.WithLabelValues(mode, status).Inc()
	DurationSeconds.WithLabelValues(mode).Observe(seconds)
}

func UpdateTotalItems(collection string, n int64) {
	TotalItems.WithLabelValues(collection).Set(float64(n))
}

// ErrorKind buckets an engine error into a label value.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, pagination.ErrInvalidParameter):
		return "invalid"
	case errors.Is(err, pagination.ErrCanceled):
		return "canceled"
	default:
		return "source"
	}
}
