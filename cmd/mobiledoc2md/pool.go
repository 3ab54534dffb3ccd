package main

import (
	"context"

	"github.com/alnah/go-mobiledoc2md"
)

// DocumentRenderer is the renderer interface the CLI depends on.
type DocumentRenderer interface {
	Render(ctx context.Context, doc mobiledoc2md.Document) (*mobiledoc2md.Rendered, error)
}

// Compile-time interface implementation check.
var _ DocumentRenderer = (*mobiledoc2md.Renderer)(nil)

// Pool abstracts renderer pool operations for testability.
type Pool interface {
	Acquire() DocumentRenderer
	Release(DocumentRenderer)
	Size() int
}

// poolAdapter exposes a *mobiledoc2md.RendererPool as a Pool.
type poolAdapter struct {
	pool *mobiledoc2md.RendererPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire() DocumentRenderer {
	return a.pool.Acquire()
}

// Release panics if r did not come from Acquire (programmer error).
func (a *poolAdapter) Release(r DocumentRenderer) {
	renderer, ok := r.(*mobiledoc2md.Renderer)
	if !ok {
		panic("poolAdapter.Release: unexpected type, expected *mobiledoc2md.Renderer")
	}
	a.pool.Release(renderer)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}
