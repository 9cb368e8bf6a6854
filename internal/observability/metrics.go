package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnlms_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "learnlms_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// LectureRoomParticipants is the gauge of participants per live lecture room.
	LectureRoomParticipants = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "learnlms_lecture_room_participants",
		Help: "Number of WebSocket participants per live lecture room",
	}, []string{"lecture_id"})

	// ActiveWebSockets is the gauge of total WebSocket connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "learnlms_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// ChatMessagesTotal counts chat messages processed per room and type.
	ChatMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnlms_chat_messages_total",
		Help: "Total number of chat messages processed",
	}, []string{"lecture_id", "message_type"})

	// WebSocketEventsTotal counts WebSocket events by type.
	WebSocketEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnlms_websocket_events_total",
		Help: "Total WebSocket events by type",
	}, []string{"event_type"})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnlms_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})

	// LectureRoomsEvicted counts idle rooms reclaimed by the eviction reaper.
	LectureRoomsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "learnlms_lecture_rooms_evicted_total",
		Help: "Total number of idle lecture rooms evicted",
	})
)
