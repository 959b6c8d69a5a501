package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis parses a redis:// URL and returns a connected client.
// Connectivity is verified up front: the price-check cache and the job
// queues both assume redis is reachable, so failing at startup beats
// failing on the first sale.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
