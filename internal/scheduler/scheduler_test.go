package scheduler

import (
	"sync"
	"testing"
	"time"

	"linguahouse/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweeper struct {
	mu    sync.Mutex
	calls []time.Duration
}

func (f *fakeSweeper) SweepIdleSessions(maxIdle time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, maxIdle)
	return 1
}

func (f *fakeSweeper) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestNew_DefaultInterval(t *testing.T) {
	s := New(&fakeSweeper{}, time.Hour, 0, testutil.NewTestLogger())
	assert.Equal(t, DefaultSweepInterval, s.interval)
}

func TestScheduler_SweepUsesMaxIdle(t *testing.T) {
	sweeper := &fakeSweeper{}
	s := New(sweeper, 2*time.Hour, time.Minute, testutil.NewTestLogger())

	s.sweepIdleSessions()

	require.Equal(t, 1, sweeper.count())
	assert.Equal(t, 2*time.Hour, sweeper.calls[0])
}

func TestScheduler_StartStop(t *testing.T) {
	sweeper := &fakeSweeper{}
	s := New(sweeper, time.Hour, time.Hour, testutil.NewTestLogger())

	require.NoError(t, s.Start())
	assert.Equal(t, 1, s.scheduler.Len())
	assert.True(t, s.scheduler.IsRunning())

	// gocron runs a new job right away
	assert.Eventually(t, func() bool { return sweeper.count() >= 1 }, time.Second, 10*time.Millisecond)

	s.Stop()
	assert.False(t, s.scheduler.IsRunning())
}
