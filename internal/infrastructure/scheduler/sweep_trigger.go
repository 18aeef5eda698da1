package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	appbilling "github.com/rentworks/backend/internal/application/billing"
)

// OverdueSweeper runs one pass of the overdue invoice sweep.
type OverdueSweeper interface {
	Sweep(ctx context.Context, today time.Time) (appbilling.SweepResult, error)
}

// SweepTriggerConfig holds configuration for the daily sweep trigger.
type SweepTriggerConfig struct {
	// SweepHour/SweepMinute is the local time of day to run (24h format).
	SweepHour   int
	SweepMinute int

	// CheckInterval is how often to check whether it's time to run.
	CheckInterval time.Duration
}

// DefaultSweepTriggerConfig returns the default trigger configuration.
// The sweep compares due dates against the calendar date, so it runs
// shortly after midnight.
func DefaultSweepTriggerConfig() SweepTriggerConfig {
	return SweepTriggerConfig{
		SweepHour:     0,
		SweepMinute:   30,
		CheckInterval: time.Minute,
	}
}

// SweepTrigger runs the overdue sweep once per calendar day at the
// configured time.
type SweepTrigger struct {
	config  SweepTriggerConfig
	sweeper OverdueSweeper
	logger  *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string // Date we last swept, guards against double runs
}

// NewSweepTrigger creates a new sweep trigger.
func NewSweepTrigger(config SweepTriggerConfig, sweeper OverdueSweeper, logger *zap.Logger) *SweepTrigger {
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	return &SweepTrigger{
		config:  config,
		sweeper: sweeper,
		logger:  logger,
	}
}

// Start starts the trigger loop. Calling Start on a running trigger is a no-op.
func (t *SweepTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	t.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Overdue sweep trigger started",
		zap.Int("sweep_hour", t.config.SweepHour),
		zap.Int("sweep_minute", t.config.SweepMinute),
		zap.Duration("check_interval", t.config.CheckInterval),
	)
	return nil
}

// Stop stops the trigger and waits for the loop to exit.
func (t *SweepTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Overdue sweep trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *SweepTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.checkAndTrigger(ctx)
		}
	}
}

func (t *SweepTrigger) checkAndTrigger(ctx context.Context) {
	now := time.Now()
	currentDate := now.Format("2006-01-02")

	t.mu.Lock()
	alreadyRan := t.lastRunDate == currentDate
	t.mu.Unlock()
	if alreadyRan {
		return
	}

	if now.Hour() != t.config.SweepHour || now.Minute() != t.config.SweepMinute {
		return
	}

	t.mu.Lock()
	t.lastRunDate = currentDate
	t.mu.Unlock()

	t.runSweep(ctx, now)
}

func (t *SweepTrigger) runSweep(ctx context.Context, now time.Time) {
	t.logger.Info("Triggering overdue invoice sweep", zap.Time("as_of", now))

	result, err := t.sweeper.Sweep(ctx, now)
	if err != nil {
		t.logger.Error("Overdue sweep failed", zap.Error(err))
		return
	}

	t.logger.Info("Overdue sweep finished",
		zap.Int("scanned", result.ScannedCount),
		zap.Int("updated", result.UpdatedCount),
	)
}

// TriggerNow runs the sweep immediately, outside the daily schedule.
// Used by the manual sweep endpoint.
func (t *SweepTrigger) TriggerNow(ctx context.Context, asOf time.Time) (appbilling.SweepResult, error) {
	t.logger.Info("Manual overdue sweep requested", zap.Time("as_of", asOf))
	return t.sweeper.Sweep(ctx, asOf)
}
