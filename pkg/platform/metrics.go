package platform

import (
	"fmt"

	"github.com/Jacobbrewer1/swig/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DiscordApiLatency is the duration of Discord REST calls made by the ticket lifecycle.
	DiscordApiLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: fmt.Sprintf("%s_discord_api_latency", config.AppName),
			Help: "Duration of Discord REST calls",
		},
		[]string{"operation"},
	)

	// DiscordApiTotalRequests is the total number of Discord REST calls made by the ticket lifecycle.
	DiscordApiTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_discord_api_total_requests", config.AppName),
			Help: "Total number of Discord REST calls",
		},
		[]string{"operation", "outcome"},
	)
)
