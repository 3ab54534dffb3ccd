package mobiledoc2md

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-mobiledoc2md/internal/mobiledoc"
	"github.com/alnah/go-mobiledoc2md/internal/render"
)

// Renderer renders mobiledocs to Markdown with a fixed set of cards and atoms.
// Create with NewRenderer and reuse it for any number of Render calls.
// A Renderer is not safe for concurrent use; use a RendererPool to render
// in parallel.
type Renderer struct {
	cfg    rendererConfig
	cards  *registry
	atoms  *registry
	logger *log.Logger

	// active counts Render calls in flight on this Renderer. Cards that
	// start a fresh context still nest inside the outer call.
	active int
}

// NewRenderer creates a Renderer. The built-in code, html and image cards are
// always registered; WithCards may replace them by name.
// Returns an error wrapping ErrRegistration if a card or atom is invalid.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg:    rendererConfig{maxDepth: DefaultMaxDepth},
		logger: log.New(io.Discard),
	}

	for _, opt := range opts {
		opt(r)
	}

	var err error
	r.cards, err = newRegistry(KindCard, builtinCards(r.cfg.detectLanguage), r.cfg.cards, r.cfg.unknownCard)
	if err != nil {
		return nil, err
	}
	r.atoms, err = newRegistry(KindAtom, nil, r.cfg.atoms, r.cfg.unknownAtom)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Rendered is the outcome of one Render call.
type Rendered struct {
	Result string

	teardowns []func()
	once      sync.Once
}

// Teardown runs the callbacks plugins registered with Env.OnTeardown, in
// registration order. Only the first call has an effect.
func (r *Rendered) Teardown() {
	r.once.Do(func() {
		for _, fn := range r.teardowns {
			fn()
		}
		r.teardowns = nil
	})
}

// Render renders doc to Markdown.
//
// Nesting is counted both through ctx and by the calls in flight on r, so a
// card that renders through r is bounded even when it does not pass on the
// ctx it received. Cards that render through another Renderer must pass ctx.
// Past WithMaxDepth levels Render fails with ErrRecursionLimit. If rendering
// fails, teardown callbacks registered so far are run before the error is
// returned.
func (r *Renderer) Render(ctx context.Context, doc Document) (*Rendered, error) {
	r.active++
	defer func() { r.active-- }()

	depth := max(depthFromContext(ctx)+1, r.active)
	if depth > r.cfg.maxDepth {
		return nil, fmt.Errorf("%w: depth %d (max %d)", ErrRecursionLimit, depth, r.cfg.maxDepth)
	}
	ctx = withDepth(ctx, depth)

	normalized, err := mobiledoc.Normalize(doc.raw())
	if err != nil {
		return nil, err
	}

	pass := &renderPass{
		cards:   r.cards,
		atoms:   r.atoms,
		options: r.cfg.cardOptions,
		logger:  r.logger,
	}

	out, err := render.New(pass, r.logger).Document(ctx, normalized)
	if err != nil {
		pass.release()
		return nil, err
	}

	r.logger.Debug("rendered document",
		"version", normalized.Version,
		"sections", len(normalized.Sections),
		"depth", depth,
		"teardowns", len(pass.teardowns))

	return &Rendered{Result: out, teardowns: pass.teardowns}, nil
}

// RenderJSON parses a JSON mobiledoc and renders it.
func (r *Renderer) RenderJSON(ctx context.Context, data []byte) (*Rendered, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, doc)
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// depthKey stores how many renders enclose the current one.
const depthKey ctxKey = 0

func withDepth(ctx context.Context, depth int) context.Context {
	return context.WithValue(ctx, depthKey, depth)
}

func depthFromContext(ctx context.Context) int {
	if d, ok := ctx.Value(depthKey).(int); ok {
		return d
	}
	return 0
}
