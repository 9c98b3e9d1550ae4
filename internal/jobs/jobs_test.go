package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakeCleaner struct {
	calls atomic.Int32
	rows  int64
	err   error
}

func (f *fakeCleaner) CleanupExpired(context.Context) (int64, error) {
	f.calls.Add(1)
	return f.rows, f.err
}

func TestNew_InvalidSchedule(t *testing.T) {
	if _, err := New("every now and then", &fakeCleaner{}); err == nil {
		t.Fatal("expected schedule parse error")
	}
}

func TestCleanupRateLimits(t *testing.T) {
	c := &fakeCleaner{rows: 4}
	s, err := New("@every 1h", c)
	if err != nil {
		t.Fatal(err)
	}
	if n := s.CleanupRateLimits(context.Background()); n != 4 {
		t.Fatalf("rows = %d, want 4", n)
	}

	c.err = errors.New("db down")
	if n := s.CleanupRateLimits(context.Background()); n != 0 {
		t.Fatalf("rows on error = %d, want 0", n)
	}
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	c := &fakeCleaner{}
	s, err := New("@every 1s", c)
	if err != nil {
		t.Fatal(err)
	}
	s.Start()
	deadline := time.Now().Add(3 * time.Second)
	for c.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
	if c.calls.Load() == 0 {
		t.Fatal("cleanup never ran")
	}
}
