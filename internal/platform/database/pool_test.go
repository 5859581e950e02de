package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/platform/database"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/platform/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type widget struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func newPool(t *testing.T, policy database.RetryPolicy) (*database.Pool, *gorm.DB) {
	t.Helper()
	db := dbtest.New(t, &widget{})
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return database.NewPool(db, policy, zap.NewNop()), db
}

func quickPolicy() database.RetryPolicy {
	return database.RetryPolicy{
		AcquireTimeout: 40 * time.Millisecond,
		Attempts:       3,
		Backoff:        10 * time.Millisecond,
		QueryTimeout:   200 * time.Millisecond,
	}
}

func TestPool_ConnectReleasesOnEveryExit(t *testing.T) {
	pool, _ := newPool(t, quickPolicy())
	ctx := context.Background()

	errBoom := errors.New("boom")
	err := pool.Connect(ctx, func(conn *gorm.DB) error { return errBoom })
	assert.ErrorIs(t, err, errBoom)

	assert.Panics(t, func() {
		_ = pool.Connect(ctx, func(conn *gorm.DB) error { panic("handler exploded") })
	})

	// With a single connection allowed, this only succeeds if both calls above released theirs.
	acquireCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	err = pool.Connect(acquireCtx, func(conn *gorm.DB) error {
		return conn.Create(&widget{Name: "after"}).Error
	})
	require.NoError(t, err)
}

func TestPool_TransactionRollsBack(t *testing.T) {
	pool, db := newPool(t, quickPolicy())
	ctx := context.Background()

	err := pool.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&widget{Name: "first"}).Error; err != nil {
			return err
		}
		return errors.New("second insert failed")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&widget{}).Count(&count).Error)
	assert.Zero(t, count)

	err = pool.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&widget{Name: "kept"}).Error
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&widget{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPool_ConnectWithRetryGivesUpWithinCeiling(t *testing.T) {
	policy := quickPolicy()
	pool, db := newPool(t, policy)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	held, err := sqlDB.Conn(context.Background())
	require.NoError(t, err)
	defer held.Close()

	called := false
	start := time.Now()
	err = pool.ConnectWithRetry(context.Background(), func(conn *gorm.DB) error {
		called = true
		return nil
	})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.False(t, called)
	var acquireErr *database.AcquireError
	require.ErrorAs(t, err, &acquireErr)
	assert.Equal(t, policy.Attempts, acquireErr.Attempts)
	assert.Equal(t, database.KindConnection, database.Classify(err))
	assert.Less(t, elapsed, policy.Ceiling()+500*time.Millisecond)
}

func TestPool_ConnectWithRetrySucceeds(t *testing.T) {
	pool, _ := newPool(t, quickPolicy())

	var names []string
	err := pool.ConnectWithRetry(context.Background(), func(conn *gorm.DB) error {
		if err := conn.Create(&widget{Name: "listed"}).Error; err != nil {
			return err
		}
		return conn.Model(&widget{}).Pluck("name", &names).Error
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"listed"}, names)
	assert.NoError(t, pool.Ping(context.Background()))
}

func TestRetryPolicy_Ceiling(t *testing.T) {
	p := database.RetryPolicy{AcquireTimeout: 8 * time.Second, Attempts: 3, Backoff: time.Second, QueryTimeout: 5 * time.Second}
	// 3 acquires, backoff after attempts 1 and 2, then the query.
	assert.Equal(t, 32*time.Second, p.Ceiling())
}
