package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/jobboard-service/internal/config"
)

const (
	connectAttempts = 3
	connectBackoff  = 500 * time.Millisecond
)

// Postgres holds the pool backing the SQL repositories. Pool is nil when the
// service runs on the in-process store.
type Postgres struct {
	Pool *pgxpool.Pool
}

// PoolStats is the readiness view of the pool.
type PoolStats struct {
	Total    int32 `json:"total"`
	Idle     int32 `json:"idle"`
	Acquired int32 `json:"acquired"`
	Max      int32 `json:"max"`
}

// NewPostgres opens the pool and waits for the first successful ping. An
// empty DSN selects the in-process store.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		logger.Warn("POSTGRES_DSN not provided; using the in-process store")
		return &Postgres{}, nil
	}

	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	var pingErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if pingErr = pool.Ping(ctx); pingErr == nil {
			break
		}
		logger.Warn("postgres not reachable yet", zap.Int("attempt", attempt), zap.Error(pingErr))
		if attempt == connectAttempts {
			break
		}
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * connectBackoff):
		}
	}
	if pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres unreachable after %d attempts: %w", connectAttempts, pingErr)
	}

	logger.Info("connected to postgres", zap.Int32("max_conns", poolCfg.MaxConns))
	return &Postgres{Pool: pool}, nil
}

func poolConfig(cfg config.PostgresConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse POSTGRES_DSN: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 && cfg.MinConns <= poolCfg.MaxConns {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}
	return poolCfg, nil
}

// Enabled reports whether the SQL store is in use.
func (p *Postgres) Enabled() bool {
	return p != nil && p.Pool != nil
}

// Ping checks the pool.
func (p *Postgres) Ping(ctx context.Context) error {
	if !p.Enabled() {
		return errors.New("postgres not configured")
	}
	return p.Pool.Ping(ctx)
}

// Stats reports pool usage. It is zero when the SQL store is not in use.
func (p *Postgres) Stats() PoolStats {
	if !p.Enabled() {
		return PoolStats{}
	}
	s := p.Pool.Stat()
	return PoolStats{
		Total:    s.TotalConns(),
		Idle:     s.IdleConns(),
		Acquired: s.AcquiredConns(),
		Max:      s.MaxConns(),
	}
}

func (p *Postgres) Close() {
	if p.Enabled() {
		p.Pool.Close()
	}
}
