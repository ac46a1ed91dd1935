package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/jobboard-service/internal/config"
)

const redisProbeTimeout = 2 * time.Second

// Redis is the optional rate-limit backend. The service keeps running when it
// cannot be reached.
type Redis struct {
	Client    *redis.Client
	reachable bool
}

// NewRedis builds the client and probes it once.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	r := &Redis{Client: redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  redisProbeTimeout,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})}

	probeCtx, cancel := context.WithTimeout(ctx, redisProbeTimeout)
	defer cancel()
	if err := r.Ping(probeCtx); err != nil {
		logger.Warn("redis unreachable; rate limiting stays in process", zap.String("addr", cfg.Addr), zap.Error(err))
		return r
	}
	r.reachable = true
	logger.Info("connected to redis", zap.String("addr", cfg.Addr))
	return r
}

// Reachable reports the outcome of the startup probe.
func (r *Redis) Reachable() bool {
	return r != nil && r.Client != nil && r.reachable
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}
