package parallel

import (
	"context"
	"errors"
	"runtime"
	"slices"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -3} {
		pool := NewWorkerPool(n)
		if got, want := pool.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, got, want)
		}
		pool.Close()
	}
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	jobs := make([]func(), 500)
	for i := range jobs {
		jobs[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(jobs)

	if counter.Load() != 500 {
		t.Errorf("counter = %d, want 500", counter.Load())
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	// Should not panic or block.
	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAll_Uneven(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Every fourth job is slow and lands on the same worker; the others
	// must steal to finish in time.
	var counter atomic.Int64
	jobs := make([]func(), 40)
	for i := range jobs {
		jobs[i] = func() {
			if i%4 == 0 {
				time.Sleep(time.Millisecond)
			}
			counter.Add(1)
		}
	}

	done := make(chan struct{})
	go func() {
		pool.ExecuteAll(jobs)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timeout, counter = %d", counter.Load())
	}
	if counter.Load() != 40 {
		t.Errorf("counter = %d, want 40", counter.Load())
	}
}

func TestWorkerPool_ExecuteAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	var ran atomic.Bool
	pool.ExecuteAll([]func(){func() { ran.Store(true) }})
	if ran.Load() {
		t.Error("closed pool ran a job")
	}
	if pool.IsRunning() {
		t.Error("IsRunning() = true after Close")
	}
}

func TestWorkerPool_CloseTwice(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()
}

// =============================================================================
// Map Tests
// =============================================================================

func TestMap_Order(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	items := make([]int, 200)
	for i := range items {
		items[i] = i
	}
	got, err := Map(context.Background(), pool, items, func(_ context.Context, i, item int) (int, error) {
		if i != item {
			t.Errorf("index %d got item %d", i, item)
		}
		return item * item, nil
	})
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	for i, v := range got {
		if v != i*i {
			t.Fatalf("got[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestMap_Empty(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	got, err := Map(context.Background(), pool, nil, func(context.Context, int, string) (string, error) {
		return "", nil
	})
	if err != nil || len(got) != 0 {
		t.Errorf("Map(nil) = %v, %v", got, err)
	}
}

func TestMap_Error(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	boom := errors.New("boom")
	var calls atomic.Int64
	items := slices.Repeat([]int{1}, 1000)
	got, err := Map(context.Background(), pool, items, func(_ context.Context, i, _ int) (int, error) {
		calls.Add(1)
		if i == 3 {
			return 0, boom
		}
		return i, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Map() error = %v, want %v", err, boom)
	}
	if got != nil {
		t.Errorf("Map() results = %v, want nil on error", got)
	}
	if calls.Load() == 0 {
		t.Error("no job ran")
	}
}

func TestMap_Canceled(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Map(ctx, pool, []int{1, 2, 3}, func(context.Context, int, int) (int, error) {
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Map() error = %v, want context.Canceled", err)
	}
}

func TestMap_ClosedPool(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	_, err := Map(context.Background(), pool, []int{1}, func(context.Context, int, int) (int, error) {
		return 1, nil
	})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Map() error = %v, want ErrClosed", err)
	}
}
