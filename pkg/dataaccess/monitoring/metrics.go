package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MongoLatency is the duration of Mongo queries.
	MongoLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dataaccess_mongo_latency",
			Help: "Duration of Mongo queries",
		},
		[]string{"dal", "query", "database", "collection"},
	)

	// MongoTotalRequests is the total number of Mongo requests.
	MongoTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_mongo_total_requests",
			Help: "Total number of Mongo requests",
		},
		[]string{"dal", "query", "database", "collection"},
	)

	// RedisLatency is the duration of Redis commands.
	RedisLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dataaccess_redis_latency",
			Help: "Duration of Redis commands",
		},
		[]string{"dal", "command"},
	)

	// RedisTotalRequests is the total number of Redis commands.
	RedisTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_redis_total_requests",
			Help: "Total number of Redis commands",
		},
		[]string{"dal", "command"},
	)

	// LockWaitDuration is how long callers waited to acquire a requester lock.
	LockWaitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dataaccess_lock_wait_duration",
			Help: "Duration spent waiting for requester locks",
		},
		[]string{"dal"},
	)
)
