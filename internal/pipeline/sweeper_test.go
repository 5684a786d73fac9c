package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSweeperRunsImmediatelyAndOnInterval(t *testing.T) {
	var passes atomic.Int64
	sweeper := NewSweeper(10*time.Millisecond, func(context.Context) (int, error) {
		passes.Add(1)
		return 0, nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for passes.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 passes, got %d", passes.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	settled := passes.Load()
	time.Sleep(30 * time.Millisecond)
	if passes.Load() != settled {
		t.Fatal("sweeper kept running after cancellation")
	}
}

func TestSweeperContinuesAfterError(t *testing.T) {
	var passes atomic.Int64
	sweeper := NewSweeper(5*time.Millisecond, func(context.Context) (int, error) {
		if passes.Add(1) == 1 {
			return 0, errors.New("boom")
		}
		return 1, nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for passes.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("sweeper stopped after a failing pass")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done
}
