// Package worker provides goroutine pool management for batch migrations.
//
// Naked goroutines are not used: concurrent work goes through a Pool with
// context propagation.
//
// Import Path: purl-migrate.io/migrator/internal/pkg/worker
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"purl-migrate.io/migrator/internal/pkg/logger"
)

// ErrPoolClosed is returned when submitting to a closed pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Task is a context-aware task function.
type Task func(ctx context.Context)

// Pool wraps ants.Pool with context-aware submission.
type Pool struct {
	pool            *ants.Pool
	name            string
	shutdownTimeout time.Duration
}

// PoolConfig contains Worker Pool configuration.
type PoolConfig struct {
	Name string
	Size int
	// ShutdownTimeout bounds Release; zero means 30s.
	ShutdownTimeout time.Duration
}

// DefaultPoolConfig returns default configuration.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Name:            "migrate",
		Size:            4,
		ShutdownTimeout: 30 * time.Second,
	}
}

// NewPool creates a blocking pool: Submit waits for a free worker.
func NewPool(cfg PoolConfig) (*Pool, error) {
	panicHandler := func(p interface{}) {
		logger.Error("Worker panic recovered",
			zap.String("pool", cfg.Name),
			zap.Any("panic", p),
			zap.Stack("stack"),
		)
	}

	p, err := ants.NewPool(cfg.Size,
		ants.WithPanicHandler(panicHandler),
		ants.WithNonblocking(false),
		ants.WithExpiryDuration(10*time.Second),
	)
	if err != nil {
		return nil, err
	}
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Pool{pool: p, name: cfg.Name, shutdownTimeout: timeout}, nil
}

// Submit submits a context-aware task.
// If context is already cancelled, returns ctx.Err() immediately without submitting.
// Once accepted, the task always runs, even if ctx is cancelled while it is
// queued; tasks observe ctx themselves so per-task cleanup is never skipped.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	err := p.pool.Submit(func() {
		task(ctx)
	})
	if errors.Is(err, ants.ErrPoolClosed) {
		return ErrPoolClosed
	}
	return err
}

// Release waits for running tasks (bounded by timeout) and stops the pool.
// A zero timeout uses the configured ShutdownTimeout.
func (p *Pool) Release(timeout time.Duration) {
	if timeout <= 0 {
		timeout = p.shutdownTimeout
	}
	if err := p.pool.ReleaseTimeout(timeout); err != nil {
		logger.Warn("Worker pool shutdown timeout",
			zap.String("pool", p.name),
			zap.Error(err),
		)
	}
}

// Metrics returns pool metrics for logging.
func (p *Pool) Metrics() map[string]int {
	return map[string]int{
		"running": p.pool.Running(),
		"free":    p.pool.Free(),
		"cap":     p.pool.Cap(),
	}
}
