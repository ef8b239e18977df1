package parallel

import "sync"

// maxRetainedBatch is the largest capacity returned to the pool. Batches
// that grew past it are left to the garbage collector.
const maxRetainedBatch = 1 << 20

// BatchPool reuses the local slices that work items fill before flushing.
//
// Each chunk of a draw collects its output in a batch, flushes it under the
// framebuffer lock and returns it here, so steady-state frames allocate
// almost nothing.
//
// Thread safety: BatchPool is safe for concurrent use.
type BatchPool[T any] struct {
	pool sync.Pool
}

// NewBatchPool creates a pool whose fresh batches have the given capacity.
func NewBatchPool[T any](capacity int) *BatchPool[T] {
	p := &BatchPool[T]{}
	p.pool.New = func() any {
		b := make([]T, 0, capacity)
		return &b
	}
	return p
}

// Get returns an empty batch.
func (p *BatchPool[T]) Get() *[]T {
	b := p.pool.Get().(*[]T)
	*b = (*b)[:0]
	return b
}

// Put returns a batch to the pool. Nil and oversized batches are ignored.
func (p *BatchPool[T]) Put(b *[]T) {
	if b == nil || cap(*b) > maxRetainedBatch {
		return
	}
	clear(*b)
	*b = (*b)[:0]
	p.pool.Put(b)
}

// Chunks splits n items into consecutive [start, end) ranges of at most size
// items. A non-positive size yields a single range.
func Chunks(n, size int) [][2]int {
	if n <= 0 {
		return nil
	}
	if size <= 0 {
		size = n
	}
	out := make([][2]int, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		out = append(out, [2]int{start, min(start+size, n)})
	}
	return out
}
