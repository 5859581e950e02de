// Package jobs holds background work scheduled alongside the HTTP server.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const storeCheckTimeout = 5 * time.Second

// Pinger is anything that can report store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreHealthJob pings the relational store on a schedule and logs when it
// goes down or comes back. Request handling never waits on it.
type StoreHealthJob struct {
	pinger        Pinger
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron

	mu       sync.Mutex
	known    bool
	up       bool
	inFlight atomic.Bool
	wg       sync.WaitGroup
}

// NewStoreHealthJob creates a new StoreHealthJob.
func NewStoreHealthJob(pinger Pinger, logger *zap.Logger, cfg *config.Config) *StoreHealthJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))
	return &StoreHealthJob{
		pinger:        pinger,
		logger:        logger.Named("StoreHealthJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the periodic check. An empty schedule
// disables it.
func (j *StoreHealthJob) SetupAndStart() error {
	spec := j.cfg.HealthCheckSchedule
	if spec == "" {
		j.logger.Warn("Store health check schedule not defined (HEALTH_CHECK_SCHEDULE). Job will not run.")
		return nil
	}
	jobID, err := j.cronScheduler.AddFunc(spec, func() { j.Check(context.Background()) })
	if err != nil {
		j.logger.Error("Failed to schedule store health check", zap.String("spec", spec), zap.Error(err))
		return err
	}
	j.logger.Info("Store health check scheduled", zap.String("spec", spec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// Check pings the store once and reports whether it answered.
func (j *StoreHealthJob) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, storeCheckTimeout)
	defer cancel()

	err := j.pinger.Ping(ctx)
	up := err == nil

	j.mu.Lock()
	changed := !j.known || j.up != up
	j.known, j.up = true, up
	j.mu.Unlock()

	switch {
	case !changed:
		j.logger.Debug("Store health unchanged", zap.Bool("up", up))
	case up:
		j.logger.Info("Store is reachable")
	default:
		j.logger.Warn("Store is unreachable", zap.Error(err))
	}
	return up
}

// CheckAsync starts a background check unless one is already running.
func (j *StoreHealthJob) CheckAsync() {
	if !j.inFlight.CompareAndSwap(false, true) {
		return
	}
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		defer j.inFlight.Store(false)
		j.Check(context.Background())
	}()
}

// Status returns the last observed state; ok is false before the first check.
func (j *StoreHealthJob) Status() (up bool, ok bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.up, j.known
}

// Stop halts the scheduler and waits for in-flight checks.
func (j *StoreHealthJob) Stop() {
	j.logger.Info("Stopping store health scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(10 * time.Second):
		j.logger.Warn("Store health scheduler stop timed out.")
	}
	j.wg.Wait()
}

// cronLogger adapts zap.Logger to cron.Logger.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Debug(msg, cl.fields(keysAndValues...)...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	cl.zl.Error(msg, append(cl.fields(keysAndValues...), zap.Error(err))...)
}

func (cl *cronLogger) fields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprintf("%v", keysAndValues[i])
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(key, keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(key, "MISSING_VALUE"))
		}
	}
	return fields
}
