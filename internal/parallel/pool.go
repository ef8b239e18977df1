package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// ErrWorkerPanic wraps a panic recovered from a work item.
var ErrWorkerPanic = errors.New("parallel: worker panic")

// ErrClosed is returned when work is submitted to a closed pool.
var ErrClosed = errors.New("parallel: pool closed")

// WorkerPool is a pool of goroutines for chunked rasterization.
//
// Each worker has its own queue and steals from the others when it runs
// dry, which balances chunks of uneven cost. A panic inside a work item is
// recovered and reported by ExecuteAll instead of crashing the process.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// Workers start immediately and wait for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case work := <-myQueue:
			work()

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case work := <-myQueue:
				work()
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes work from another worker's queue, or returns nil.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work across workers and waits for all of it to
// complete. It returns the first error or recovered panic; the remaining
// items still run to completion.
func (p *WorkerPool) ExecuteAll(work []func() error) error {
	if len(work) == 0 {
		return nil
	}
	if !p.running.Load() {
		return ErrClosed
	}

	var (
		completion sync.WaitGroup
		once       sync.Once
		first      error
	)
	fail := func(err error) {
		once.Do(func() { first = err })
	}

	completion.Add(len(work))
	for i, fn := range work {
		wrapped := func() {
			defer completion.Done()
			defer func() {
				if r := recover(); r != nil {
					fail(fmt.Errorf("%w: %v\n%s", ErrWorkerPanic, r, debug.Stack()))
				}
			}()
			if err := fn(); err != nil {
				fail(err)
			}
		}

		select {
		case p.workQueues[i%p.workers] <- wrapped:
		case <-p.done:
			completion.Done()
			fail(ErrClosed)
		}
	}

	completion.Wait()
	return first
}

// Close stops accepting work, waits for queued work to complete and stops
// all workers. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// QueuedWork returns an approximate count of queued work items.
func (p *WorkerPool) QueuedWork() int {
	total := 0
	for _, q := range p.workQueues {
		total += len(q)
	}
	return total
}
