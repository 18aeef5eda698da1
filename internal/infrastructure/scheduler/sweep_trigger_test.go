package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appbilling "github.com/rentworks/backend/internal/application/billing"
)

// fakeSweeper records sweep invocations
type fakeSweeper struct {
	mu     sync.Mutex
	calls  int
	result appbilling.SweepResult
	err    error
}

func (f *fakeSweeper) Sweep(_ context.Context, _ time.Time) (appbilling.SweepResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.result, f.err
}

func (f *fakeSweeper) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestSweepTrigger_StartAndStop(t *testing.T) {
	trigger := NewSweepTrigger(SweepTriggerConfig{
		SweepHour:     0,
		SweepMinute:   30,
		CheckInterval: 10 * time.Millisecond,
	}, &fakeSweeper{}, zap.NewNop())

	require.NoError(t, trigger.Start(context.Background()))
	// Second start is a no-op
	require.NoError(t, trigger.Start(context.Background()))

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, trigger.Stop(stopCtx))

	// Stopping again is also a no-op
	require.NoError(t, trigger.Stop(stopCtx))
}

func TestSweepTrigger_DoesNotFireOutsideWindow(t *testing.T) {
	sweeper := &fakeSweeper{}

	// Pick a sweep time guaranteed not to be now.
	notNow := time.Now().Add(2 * time.Hour)
	trigger := NewSweepTrigger(SweepTriggerConfig{
		SweepHour:     notNow.Hour(),
		SweepMinute:   notNow.Minute(),
		CheckInterval: 5 * time.Millisecond,
	}, sweeper, zap.NewNop())

	require.NoError(t, trigger.Start(context.Background()))
	time.Sleep(50 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, trigger.Stop(stopCtx))

	assert.Equal(t, 0, sweeper.callCount())
}

func TestSweepTrigger_TriggerNow(t *testing.T) {
	sweeper := &fakeSweeper{result: appbilling.SweepResult{ScannedCount: 3, UpdatedCount: 2}}
	trigger := NewSweepTrigger(DefaultSweepTriggerConfig(), sweeper, zap.NewNop())

	result, err := trigger.TriggerNow(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 3, result.ScannedCount)
	assert.Equal(t, 2, result.UpdatedCount)
	assert.Equal(t, 1, sweeper.callCount())
}

func TestSweepTrigger_TriggerNowPropagatesError(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("database unavailable")}
	trigger := NewSweepTrigger(DefaultSweepTriggerConfig(), sweeper, zap.NewNop())

	_, err := trigger.TriggerNow(context.Background(), time.Now())
	assert.Error(t, err)
}
