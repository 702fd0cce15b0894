package queue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type mockDLQPurger struct {
	purgeFunc func(ctx context.Context, retention time.Duration) (int, error)
}

func (m *mockDLQPurger) PurgeOlderThan(ctx context.Context, retention time.Duration) (int, error) {
	if m.purgeFunc != nil {
		return m.purgeFunc(ctx, retention)
	}
	return 0, nil
}

func TestGarbageCollector_Start_NilPurgerWaitsForCancel(t *testing.T) {
	t.Parallel()
	gc := NewGarbageCollector(nil, time.Millisecond, 24*time.Hour, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := gc.Start(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Start() = %v, want deadline exceeded", err)
	}
}

func TestGarbageCollector_Start_PurgesImmediately(t *testing.T) {
	t.Parallel()
	purged := make(chan struct{}, 1)
	mock := &mockDLQPurger{purgeFunc: func(context.Context, time.Duration) (int, error) {
		select {
		case purged <- struct{}{}:
		default:
		}
		return 1, nil
	}}
	gc := NewGarbageCollector(mock, time.Hour, time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gc.Start(ctx) }()

	select {
	case <-purged:
	case <-time.After(time.Second):
		t.Fatal("no purge on start")
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() = %v, want context.Canceled", err)
	}
}

func TestGarbageCollector_Collect_MockPurger(t *testing.T) {
	t.Parallel()
	var called atomic.Bool
	mock := &mockDLQPurger{
		purgeFunc: func(ctx context.Context, retention time.Duration) (int, error) {
			called.Store(true)
			if retention != 24*time.Hour {
				return 0, errors.New("unexpected retention")
			}
			return 3, nil
		},
	}
	gc := NewGarbageCollector(mock, time.Minute, 24*time.Hour, nil)
	err := gc.collect(context.Background())
	if err != nil {
		t.Errorf("collect: %v", err)
	}
	if !called.Load() {
		t.Error("PurgeOlderThan was not called")
	}
}

func TestGarbageCollector_Collect_PurgerError(t *testing.T) {
	t.Parallel()
	mock := &mockDLQPurger{
		purgeFunc: func(context.Context, time.Duration) (int, error) {
			return 0, errors.New("purge failed")
		},
	}
	gc := NewGarbageCollector(mock, time.Minute, time.Hour, nil)
	err := gc.collect(context.Background())
	if err == nil {
		t.Error("expected error from collect")
	}
}

func TestGarbageCollector_Start_StopsOnContextCancel(t *testing.T) {
	t.Parallel()
	mock := &mockDLQPurger{purgeFunc: func(context.Context, time.Duration) (int, error) { return 0, nil }}
	gc := NewGarbageCollector(mock, 24*time.Hour, time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := gc.Start(ctx)
	if err == nil {
		t.Error("expected context cancelled error")
	}
}

func TestGarbageCollector_Start_ZeroIntervalWaitsForCancel(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	mock := &mockDLQPurger{purgeFunc: func(context.Context, time.Duration) (int, error) {
		calls.Add(1)
		return 0, nil
	}}
	gc := NewGarbageCollector(mock, 0, time.Hour, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := gc.Start(ctx); err == nil {
		t.Error("expected context error")
	}
	if calls.Load() != 0 {
		t.Errorf("purger called %d times with interval 0", calls.Load())
	}
}
