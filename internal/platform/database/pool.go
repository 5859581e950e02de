package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/config"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RetryPolicy bounds how long the list read path may wait on the store.
type RetryPolicy struct {
	AcquireTimeout time.Duration
	Attempts       int
	Backoff        time.Duration
	QueryTimeout   time.Duration
}

// Ceiling is the worst-case time ConnectWithRetry spends before giving up.
func (p RetryPolicy) Ceiling() time.Duration {
	total := time.Duration(p.Attempts)*p.AcquireTimeout + p.QueryTimeout
	for attempt := 1; attempt < p.Attempts; attempt++ {
		total += time.Duration(attempt) * p.Backoff
	}
	return total
}

// RetryPolicyFromConfig reads the LIST_* settings.
func RetryPolicyFromConfig(cfg *config.Config) RetryPolicy {
	return RetryPolicy{
		AcquireTimeout: cfg.ListAcquireTimeout,
		Attempts:       cfg.ListRetryAttempts,
		Backoff:        cfg.ListRetryBackoff,
		QueryTimeout:   cfg.ListQueryTimeout,
	}
}

// AcquireError reports that no pooled connection could be checked out.
type AcquireError struct {
	Attempts int
	Err      error
}

func (e *AcquireError) Error() string {
	return fmt.Sprintf("could not acquire database connection after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *AcquireError) Unwrap() error { return e.Err }

// Pool hands out database handles. Connect and Transaction pin one pooled
// connection for the duration of the callback and always return it afterwards.
type Pool struct {
	db     *gorm.DB
	policy RetryPolicy
	logger *zap.Logger
}

// NewPool wraps db.
func NewPool(db *gorm.DB, policy RetryPolicy, logger *zap.Logger) *Pool {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	return &Pool{db: db, policy: policy, logger: logger.Named("Pool")}
}

// ProvidePool builds the application pool from configuration.
func ProvidePool(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *Pool {
	return NewPool(db, RetryPolicyFromConfig(cfg), logger)
}

// Policy returns the retry policy used by ConnectWithRetry.
func (p *Pool) Policy() RetryPolicy { return p.policy }

// Query returns a handle for one-shot statements on the shared pool.
func (p *Pool) Query(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx)
}

// Connect checks out a dedicated connection, runs fn on it and releases it on
// every exit path, panics included.
func (p *Pool) Connect(ctx context.Context, fn func(conn *gorm.DB) error) error {
	conn, err := p.acquire(ctx)
	if err != nil {
		return &AcquireError{Attempts: 1, Err: err}
	}
	defer p.release(conn)

	return fn(p.bind(ctx, conn))
}

// Transaction runs fn inside BEGIN/COMMIT on a dedicated connection. Any error
// or panic from fn rolls the whole unit back.
func (p *Pool) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return p.Connect(ctx, func(conn *gorm.DB) error {
		return conn.Transaction(fn)
	})
}

// ConnectWithRetry is Connect with bounded waiting: each acquire attempt gets
// AcquireTimeout, failed attempts back off linearly, and fn runs under QueryTimeout.
func (p *Pool) ConnectWithRetry(ctx context.Context, fn func(conn *gorm.DB) error) error {
	var (
		conn    *sql.Conn
		lastErr error
	)
	for attempt := 1; attempt <= p.policy.Attempts; attempt++ {
		acquireCtx, cancel := context.WithTimeout(ctx, p.policy.AcquireTimeout)
		conn, lastErr = p.acquire(acquireCtx)
		cancel()
		if lastErr == nil {
			break
		}

		p.logger.Warn("Connection acquire failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", p.policy.Attempts),
			zap.Error(lastErr),
		)
		if attempt == p.policy.Attempts {
			return &AcquireError{Attempts: attempt, Err: lastErr}
		}

		wait := time.NewTimer(time.Duration(attempt) * p.policy.Backoff)
		select {
		case <-ctx.Done():
			wait.Stop()
			return &AcquireError{Attempts: attempt, Err: ctx.Err()}
		case <-wait.C:
		}
	}
	defer p.release(conn)

	queryCtx, cancel := context.WithTimeout(ctx, p.policy.QueryTimeout)
	defer cancel()
	return fn(p.bind(queryCtx, conn))
}

// Ping checks store connectivity.
func (p *Pool) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (p *Pool) acquire(ctx context.Context) (*sql.Conn, error) {
	sqlDB, err := p.db.DB()
	if err != nil {
		return nil, err
	}
	return sqlDB.Conn(ctx)
}

func (p *Pool) release(conn *sql.Conn) {
	if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		p.logger.Warn("Failed to release connection", zap.Error(err))
	}
}

// bind returns a gorm session whose statements all run on conn.
func (p *Pool) bind(ctx context.Context, conn *sql.Conn) *gorm.DB {
	session := p.db.Session(&gorm.Session{NewDB: true, Context: ctx})
	session.Statement.ConnPool = conn
	return session
}
