package database

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/credential-service/internal/domain"
)

// ConnectionManager owns the process-wide store connection. The pool is
// opened lazily on first use and reused by every later caller. A failed dial
// leaves the manager disconnected so the next call tries again.
type ConnectionManager struct {
	dial         DialFunc
	logger       *zap.Logger
	afterConnect func(ctx context.Context, db DBTX) error

	mu     sync.Mutex
	pool   atomic.Pointer[poolHolder]
	closed atomic.Bool
}

type poolHolder struct {
	pool Pool
}

type Option func(*ConnectionManager)

// WithAfterConnect runs fn once, right after the first successful dial.
// If fn fails the pool is closed and the dial counts as failed.
func WithAfterConnect(fn func(ctx context.Context, db DBTX) error) Option {
	return func(m *ConnectionManager) {
		m.afterConnect = fn
	}
}

func NewConnectionManager(dial DialFunc, logger *zap.Logger, opts ...Option) *ConnectionManager {
	m := &ConnectionManager{
		dial:   dial,
		logger: logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// EnsureConnected establishes the connection if needed. Calling it again
// once connected is a no-op.
func (m *ConnectionManager) EnsureConnected(ctx context.Context) error {
	_, err := m.DB(ctx)
	return err
}

// DB returns the shared handle, connecting first if necessary. Concurrent
// first callers share a single dial.
func (m *ConnectionManager) DB(ctx context.Context) (DBTX, error) {
	if m.closed.Load() {
		return nil, domain.ErrConnectionClosed
	}
	if h := m.pool.Load(); h != nil {
		return h.pool, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed.Load() {
		return nil, domain.ErrConnectionClosed
	}
	if h := m.pool.Load(); h != nil {
		return h.pool, nil
	}

	pool, err := m.dial(ctx)
	if err != nil {
		m.logger.Error("failed to connect to database", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	if m.afterConnect != nil {
		if err := m.afterConnect(ctx, pool); err != nil {
			pool.Close()
			m.logger.Error("failed to prepare database", zap.Error(err))
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
	}

	m.pool.Store(&poolHolder{pool: pool})
	m.logger.Info("connected to database")

	return pool, nil
}

// Connected reports whether a pool is currently held.
func (m *ConnectionManager) Connected() bool {
	return !m.closed.Load() && m.pool.Load() != nil
}

// Ping checks the store, connecting first if necessary.
func (m *ConnectionManager) Ping(ctx context.Context) error {
	if _, err := m.DB(ctx); err != nil {
		return err
	}
	h := m.pool.Load()
	if h == nil {
		return domain.ErrConnectionClosed
	}
	if err := h.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Close releases the pool. Later calls to DB return ErrConnectionClosed.
func (m *ConnectionManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed.Swap(true) {
		return
	}
	if h := m.pool.Swap(nil); h != nil {
		h.pool.Close()
		m.logger.Info("database connection closed")
	}
}
