package gg4d

// DefaultChunkSize is the number of primitives rasterized per work item.
const DefaultChunkSize = 200

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	// GOMAXPROCS workers, chunks of 200 primitives
//	r := gg4d.NewRenderer()
//
//	// Four workers, smaller chunks for small meshes
//	r := gg4d.NewRenderer(gg4d.WithWorkers(4), gg4d.WithChunkSize(64))
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	workers   int
	chunkSize int
	serial    bool
}

func defaultOptions() rendererOptions {
	return rendererOptions{
		workers:   0, // GOMAXPROCS
		chunkSize: DefaultChunkSize,
	}
}

// WithWorkers sets the number of worker goroutines.
// Zero or a negative value uses GOMAXPROCS.
func WithWorkers(n int) RendererOption {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithChunkSize sets how many nodes, edges or faces each work item
// rasterizes before flushing. Non-positive values keep the default.
func WithChunkSize(n int) RendererOption {
	return func(o *rendererOptions) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithSerial makes the renderer rasterize every chunk on the calling
// goroutine. Output is the same as the parallel path when no two primitives
// tie on depth at the same pixel.
func WithSerial() RendererOption {
	return func(o *rendererOptions) {
		o.serial = true
	}
}
