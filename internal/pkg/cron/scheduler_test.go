package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTracker struct {
	failures atomic.Int32
}

func (c *countingTracker) TrackJob(string) func(error) error {
	return func(err error) error {
		if err != nil {
			c.failures.Add(1)
		}
		return err
	}
}

func TestScheduler_RunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler(nil)
	var runs atomic.Int32
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()
}

func TestScheduler_TracksFailures(t *testing.T) {
	tracker := &countingTracker{}
	s := NewScheduler(tracker)
	s.AddJob("broken", time.Hour, func(ctx context.Context) error { return errors.New("boom") })

	s.Start()
	assert.Eventually(t, func() bool { return tracker.failures.Load() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()
}

func TestScheduler_RunOnceReturnsFirstError(t *testing.T) {
	s := NewScheduler(nil)
	boom := errors.New("boom")
	s.AddJob("ok", time.Hour, func(ctx context.Context) error { return nil })
	s.AddJob("bad", time.Hour, func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, s.RunOnce(context.Background()), boom)
}

type stubTenants []string

func (s stubTenants) ListActiveTenants(context.Context) ([]string, error) { return s, nil }

type stubRefresher struct {
	calls map[string]int
	fail  string
}

func (s *stubRefresher) RefreshTenantBalances(_ context.Context, tenantID string, year int) (int, error) {
	if tenantID == s.fail {
		return 0, errors.New("db down")
	}
	s.calls[tenantID] = year
	return 1, nil
}

func TestLeaveJobs_RefreshAccruals(t *testing.T) {
	refresher := &stubRefresher{calls: map[string]int{}}
	jobs := NewLeaveJobs(stubTenants{"t1", "t2"}, refresher)
	jobs.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, jobs.RefreshAccruals(context.Background()))
	assert.Equal(t, map[string]int{"t1": 2025, "t2": 2025}, refresher.calls)

	refresher.fail = "t1"
	assert.Error(t, jobs.RefreshAccruals(context.Background()))
}

func TestLeaveJobs_RegisterJobs(t *testing.T) {
	s := NewScheduler(nil)
	NewLeaveJobs(stubTenants{}, &stubRefresher{calls: map[string]int{}}).RegisterJobs(s)

	require.Len(t, s.jobs, 1)
	assert.Equal(t, AccrualRefreshJob, s.jobs[0].Name)
	assert.Equal(t, 24*time.Hour, s.jobs[0].Interval)
}
