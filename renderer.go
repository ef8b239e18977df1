package gg4d

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg4d/internal/parallel"
)

var (
	// ErrWorkerPanic wraps a panic recovered while rasterizing a chunk.
	ErrWorkerPanic = parallel.ErrWorkerPanic

	// ErrClosed is returned by Render on a closed parallel renderer.
	ErrClosed = parallel.ErrClosed
)

// Renderer rasterizes meshes into framebuffers by fanning chunks of
// primitives out to a worker pool.
//
// Each work item rasterizes its chunk into a local batch without touching
// shared state, then flushes the whole batch under the framebuffer lock
// once. Lock acquisitions are therefore proportional to chunks, not pixels.
//
// Thread safety: Renderer is safe for concurrent use. Draws into the same
// framebuffer from several goroutines interleave at chunk granularity.
type Renderer struct {
	pool      *parallel.WorkerPool
	batches   *parallel.BatchPool[Fragment]
	chunkSize int
	serial    bool
}

// NewRenderer creates a renderer. Call Close to stop its workers.
func NewRenderer(opts ...RendererOption) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &Renderer{
		batches:   parallel.NewBatchPool[Fragment](o.chunkSize * 16),
		chunkSize: o.chunkSize,
		serial:    o.serial,
	}
	if !o.serial {
		r.pool = parallel.NewWorkerPool(o.workers)
	}
	return r
}

// Close stops the worker pool. A closed renderer returns an error from
// Render unless it is serial.
func (r *Renderer) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// ChunkSize returns the number of primitives per work item.
func (r *Renderer) ChunkSize() int {
	return r.chunkSize
}

// Workers returns the number of worker goroutines, or 0 for a serial
// renderer.
func (r *Renderer) Workers() int {
	if r.pool == nil {
		return 0
	}
	return r.pool.Workers()
}

// Stats describes one Render call.
type Stats struct {
	Chunks    int
	Fragments int64
	Elapsed   time.Duration
}

// Render draws the nodes, edges and faces of m into fb and returns once
// every write is committed.
//
// Nodes, edges and faces are chunked independently. If a worker fails, for
// example on a face with a dangling index, the first failure is returned
// after all other chunks finish; the framebuffer then holds whatever the
// successful chunks wrote.
func Render[P Point[P]](r *Renderer, fb *Framebuffer, m *Mesh[P], proj Projection) error {
	_, err := RenderStats(r, fb, m, proj)
	return err
}

// RenderStats is like Render but also reports what was drawn.
func RenderStats[P Point[P]](r *Renderer, fb *Framebuffer, m *Mesh[P], proj Projection) (Stats, error) {
	start := time.Now()
	size := fb.Size()
	nodes := m.Nodes
	var fragments atomic.Int64

	var work []func() error
	add := func(n int, emit func(i int, batch *[]Fragment)) {
		for _, c := range parallel.Chunks(n, r.chunkSize) {
			work = append(work, func() error {
				batch := r.batches.Get()
				defer r.batches.Put(batch)
				for i := c[0]; i < c[1]; i++ {
					emit(i, batch)
				}
				fragments.Add(int64(len(*batch)))
				fb.Flush(*batch)
				return nil
			})
		}
	}

	add(len(m.Nodes), func(i int, batch *[]Fragment) {
		for f := range DrawPoint(nodes[i], proj, size) {
			*batch = append(*batch, f)
		}
	})
	add(len(m.Edges), func(i int, batch *[]Fragment) {
		e := m.Edges[i]
		for f := range DrawEdge(nodes[e.Start], nodes[e.End], e, proj, size) {
			*batch = append(*batch, f)
		}
	})
	add(len(m.Faces), func(i int, batch *[]Fragment) {
		f := m.Faces[i]
		for frag := range DrawTriangle(nodes[f.A], nodes[f.B], nodes[f.C], f, proj, size) {
			*batch = append(*batch, frag)
		}
	})

	var err error
	if r.serial {
		err = runSerial(work)
	} else {
		err = r.pool.ExecuteAll(work)
	}

	st := Stats{Chunks: len(work), Fragments: fragments.Load(), Elapsed: time.Since(start)}
	Logger().Debug("gg4d: render",
		slog.String("mode", proj.Mode.String()),
		slog.Int("chunks", st.Chunks),
		slog.Int64("fragments", st.Fragments),
		slog.Duration("elapsed", st.Elapsed))
	return st, err
}

// RenderSerial draws m into fb on the calling goroutine, chunk by chunk in
// order. It is the reference the parallel path is checked against.
func RenderSerial[P Point[P]](fb *Framebuffer, m *Mesh[P], proj Projection) error {
	return Render(serialRenderer(), fb, m, proj)
}

// runSerial runs work in order, converting panics to errors the same way
// the worker pool does.
func runSerial(work []func() error) error {
	var first error
	for _, fn := range work {
		if err := callRecover(fn); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func callRecover(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", parallel.ErrWorkerPanic, r)
		}
	}()
	return fn()
}

var (
	defaultOnce sync.Once
	defaultR    *Renderer
	serialOnce  sync.Once
	serialR     *Renderer
)

// defaultRenderer is shared by Mesh.Draw and lives for the process.
func defaultRenderer() *Renderer {
	defaultOnce.Do(func() { defaultR = NewRenderer() })
	return defaultR
}

func serialRenderer() *Renderer {
	serialOnce.Do(func() { serialR = NewRenderer(WithSerial()) })
	return serialR
}

// Draw renders m into fb with a shared default renderer.
func (m *Mesh[P]) Draw(fb *Framebuffer, proj Projection) error {
	return Render(defaultRenderer(), fb, m, proj)
}
