package parallel

import (
	"errors"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// counting returns n work items that each increment counter.
func counting(n int, counter *atomic.Int64) []func() error {
	work := make([]func() error, n)
	for i := range work {
		work[i] = func() error {
			counter.Add(1)
			return nil
		}
	}
	return work
}

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
		t.Error("Pool should be running after creation")
	}
	if pool.QueuedWork() != 0 {
		t.Errorf("initial QueuedWork() = %d, want 0", pool.QueuedWork())
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if got, want := pool.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d (GOMAXPROCS)", n, got, want)
		}
		pool.Close()
	}
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		tasks   int
	}{
		{"single task", 4, 1},
		{"single worker", 1, 50},
		{"typical", 4, 100},
		{"many small tasks", 4, 10000},
		{"more workers than tasks", 32, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewWorkerPool(tt.workers)
			defer pool.Close()

			var counter atomic.Int64
			if err := pool.ExecuteAll(counting(tt.tasks, &counter)); err != nil {
				t.Fatalf("ExecuteAll() error = %v", err)
			}
			if counter.Load() != int64(tt.tasks) {
				t.Errorf("counter = %d, want %d", counter.Load(), tt.tasks)
			}
		})
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if err := pool.ExecuteAll(nil); err != nil {
		t.Errorf("ExecuteAll(nil) = %v, want nil", err)
	}
	if err := pool.ExecuteAll([]func() error{}); err != nil {
		t.Errorf("ExecuteAll(empty) = %v, want nil", err)
	}
}

func TestWorkerPool_ExecuteAll_Error(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	errBoom := errors.New("boom")
	var counter atomic.Int64
	work := counting(20, &counter)
	work[7] = func() error { return errBoom }

	if err := pool.ExecuteAll(work); !errors.Is(err, errBoom) {
		t.Errorf("ExecuteAll() error = %v, want %v", err, errBoom)
	}
	// The failure does not cancel the other items.
	if counter.Load() != 19 {
		t.Errorf("counter = %d, want 19", counter.Load())
	}
}

func TestWorkerPool_ExecuteAll_Panic(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var counter atomic.Int64
	work := counting(10, &counter)
	work[3] = func() error {
		var s []int
		_ = s[5]
		return nil
	}

	err := pool.ExecuteAll(work)
	if !errors.Is(err, ErrWorkerPanic) {
		t.Fatalf("ExecuteAll() error = %v, want ErrWorkerPanic", err)
	}
	if !strings.Contains(err.Error(), "index out of range") {
		t.Errorf("error %q does not carry the panic value", err)
	}
	if counter.Load() != 9 {
		t.Errorf("counter = %d, want 9", counter.Load())
	}

	// Workers survive the panic.
	counter.Store(0)
	if err := pool.ExecuteAll(counting(10, &counter)); err != nil || counter.Load() != 10 {
		t.Errorf("ExecuteAll() after panic = %v, counter %d", err, counter.Load())
	}
}

func TestWorkerPool_ExecuteAll_FirstErrorWins(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	first := errors.New("first")
	second := errors.New("second")
	work := []func() error{
		func() error { return first },
		func() error { return second },
	}
	// A single worker runs its queue in order.
	if err := pool.ExecuteAll(work); !errors.Is(err, first) {
		t.Errorf("ExecuteAll() error = %v, want %v", err, first)
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(4)
	if !pool.IsRunning() {
		t.Error("Pool should be running before close")
	}

	pool.Close()
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after close")
	}
}

func TestWorkerPool_ExecuteAfterClose(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()

	var counter atomic.Int64
	if err := pool.ExecuteAll(counting(3, &counter)); !errors.Is(err, ErrClosed) {
		t.Errorf("ExecuteAll() after Close = %v, want ErrClosed", err)
	}

	time.Sleep(20 * time.Millisecond)
	if counter.Load() != 0 {
		t.Error("Work was executed on closed pool")
	}
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	numGoroutines := 10
	numTasksPerGoroutine := 50

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for range numGoroutines {
		go func() {
			defer wg.Done()
			if err := pool.ExecuteAll(counting(numTasksPerGoroutine, &counter)); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	expected := int64(numGoroutines * numTasksPerGoroutine)
	if counter.Load() != expected {
		t.Errorf("counter = %d, want %d", counter.Load(), expected)
	}
}

func TestWorkerPool_WorkStealing(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var fastCount, slowCount atomic.Int64

	work := make([]func() error, 100)
	for i := range work {
		if i%10 == 0 {
			work[i] = func() error {
				time.Sleep(10 * time.Millisecond)
				slowCount.Add(1)
				return nil
			}
		} else {
			work[i] = func() error {
				fastCount.Add(1)
				return nil
			}
		}
	}

	start := time.Now()
	if err := pool.ExecuteAll(work); err != nil {
		t.Fatal(err)
	}
	elapsed := time.Since(start)

	if slowCount.Load() != 10 {
		t.Errorf("slowCount = %d, want 10", slowCount.Load())
	}
	if fastCount.Load() != 90 {
		t.Errorf("fastCount = %d, want 90", fastCount.Load())
	}
	t.Logf("Elapsed time: %v (work stealing should help)", elapsed)
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for range 5 {
		pool := NewWorkerPool(4)
		var counter atomic.Int64
		_ = pool.ExecuteAll(counting(100, &counter))
		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	final := runtime.NumGoroutine()
	if final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkWorkerPool_ExecuteAll_Small(b *testing.B) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := counting(10, &counter)

	b.ResetTimer()
	for b.Loop() {
		_ = pool.ExecuteAll(work)
	}
}

func BenchmarkWorkerPool_ExecuteAll_Large(b *testing.B) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := counting(1000, &counter)

	b.ResetTimer()
	for b.Loop() {
		_ = pool.ExecuteAll(work)
	}
}

func BenchmarkWorkerPool_vs_Goroutines(b *testing.B) {
	const tasks = 100
	var counter atomic.Int64

	b.Run("WorkerPool", func(b *testing.B) {
		pool := NewWorkerPool(runtime.GOMAXPROCS(0))
		defer pool.Close()
		work := counting(tasks, &counter)

		b.ResetTimer()
		for b.Loop() {
			_ = pool.ExecuteAll(work)
		}
	})

	b.Run("Goroutines", func(b *testing.B) {
		for b.Loop() {
			var wg sync.WaitGroup
			wg.Add(tasks)
			for range tasks {
				go func() {
					defer wg.Done()
					counter.Add(1)
				}()
			}
			wg.Wait()
		}
	})
}
