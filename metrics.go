package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ytaudio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ytaudio_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ytaudio_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Streaming pipeline metrics
var (
	streamsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ytaudio_streams_started_total",
			Help: "Total number of transcoder processes started",
		},
	)

	streamBytesRelayed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ytaudio_stream_bytes_relayed_total",
			Help: "Total transcoded bytes relayed to clients",
		},
	)

	streamFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ytaudio_stream_failures_total",
			Help: "Total streaming failures by stage",
		},
		[]string{"stage"}, // "source", "transcode", "relay"
	)
)
