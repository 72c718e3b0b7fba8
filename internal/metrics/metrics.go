package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Media store
	MediaUploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_uploads_total",
			Help: "Total media store uploads",
		},
		[]string{"result"}, // ok|error
	)
	MediaDeletesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "media_deletes_total",
			Help: "Total media store delete attempts",
		},
	)

	// Domain
	BlogsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "blogs_created_total",
			Help: "Total blogs created",
		},
	)
	UsersRegisteredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total users registered",
		},
	)
)

// Handler serves the /metrics endpoint
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(HTTPLatency)
	prometheus.MustRegister(MediaUploadsTotal)
	prometheus.MustRegister(MediaDeletesTotal)
	prometheus.MustRegister(BlogsCreatedTotal)
	prometheus.MustRegister(UsersRegisteredTotal)
}
