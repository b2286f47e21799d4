package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bingo_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bingo_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Realtime transport
	ConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bingo_ws_connections_active",
			Help: "Open websocket connections",
		},
	)

	EventsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bingo_ws_events_received_total",
			Help: "Inbound websocket events by action",
		},
		[]string{"action"},
	)

	MessagesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bingo_ws_messages_dropped_total",
			Help: "Outbound frames dropped because a connection's send buffer was full",
		},
	)

	// Game metrics
	RoomsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bingo_rooms_active",
			Help: "Rooms currently registered",
		},
	)

	RoundsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bingo_rounds_started_total",
			Help: "Rounds started by a host",
		},
	)

	NumbersCalled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bingo_numbers_called_total",
			Help: "Numbers accepted into a room's call ledger",
		},
	)

	Claims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bingo_claims_total",
			Help: "Bingo claims by result",
		},
		[]string{"result"}, // "valid" or "invalid"
	)

	Rejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bingo_rejections_total",
			Help: "Client intents rejected by the room state machine",
		},
		[]string{"reason"},
	)

	ArchiveErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bingo_archive_errors_total",
			Help: "Finished rounds that could not be archived",
		},
	)
)
