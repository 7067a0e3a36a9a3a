package connection

import (
	"context"
	"fmt"

	dbMonitoring "github.com/Jacobbrewer1/swig/pkg/dataaccess/monitoring"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

type Redis struct {
	Addr     string
	Password string
	DB       int
}

// PingRedis checks that the client can reach the server.
func PingRedis(ctx context.Context, client *redis.Client) error {
	t := prometheus.NewTimer(dbMonitoring.RedisLatency.WithLabelValues("health_check", "ping"))
	defer t.ObserveDuration()
	dbMonitoring.RedisTotalRequests.WithLabelValues("health_check", "ping").Inc()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("error pinging redis: %w", err)
	}
	return nil
}

// Connect creates a Redis client and pings it. The client is closed again if the ping fails.
func (r *Redis) Connect(ctx context.Context) (*redis.Client, error) {
	if r.Addr == "" {
		return nil, fmt.Errorf("redis address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := PingRedis(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
