package mobiledoc2md

import (
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps parallel renderers; rendering is CPU bound and
	// more workers than cores only adds contention.
	MaxPoolSize = 16
)

// RendererPool manages Renderer instances for parallel rendering.
// A Renderer is not safe for concurrent use, so each goroutine acquires its
// own. The first renderer is built eagerly so invalid options surface from
// NewRendererPool; the rest are created lazily on Acquire.
type RendererPool struct {
	size      int
	opts      []Option
	renderers []*Renderer
	sem       chan *Renderer
	mu        sync.Mutex
	created   int
	closed    bool
}

// NewRendererPool creates a pool with capacity for n renderers sharing opts.
// Returns an error wrapping ErrRegistration if opts register an invalid plugin.
func NewRendererPool(n int, opts ...Option) (*RendererPool, error) {
	if n < 1 {
		n = 1
	}

	first, err := NewRenderer(opts...)
	if err != nil {
		return nil, err
	}

	p := &RendererPool{
		size:      n,
		opts:      opts,
		renderers: make([]*Renderer, 0, n),
		sem:       make(chan *Renderer, n),
		created:   1,
	}
	p.renderers = append(p.renderers, first)
	p.sem <- first
	return p, nil
}

// Acquire gets a renderer from the pool, creating one if needed.
// Blocks if all renderers are in use.
func (p *RendererPool) Acquire() *Renderer {
	// Try to get an existing renderer (non-blocking)
	select {
	case r := <-p.sem:
		return r
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Options already validated by the first renderer.
		r, err := NewRenderer(p.opts...)
		if err != nil {
			panic("mobiledoc2md: renderer options changed after pool creation: " + err.Error())
		}

		p.mu.Lock()
		p.renderers = append(p.renderers, r)
		p.mu.Unlock()

		return r
	}
	p.mu.Unlock()

	// All renderers created, wait for one to be released
	return <-p.sem
}

// Release returns a renderer to the pool.
// The lock is released before sending to avoid deadlock when channel is full.
func (p *RendererPool) Release(r *Renderer) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.sem <- r
}

// Close marks the pool closed. Later Release calls are ignored.
func (p *RendererPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.renderers = nil
}

// Size returns the pool capacity.
func (p *RendererPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0)

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
