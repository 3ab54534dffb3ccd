// Package mobiledoc2md renders mobiledoc documents to Markdown.
//
// # Quick Start
//
// Create a renderer, render a document, and tear it down when the output has
// been consumed:
//
//	r, err := mobiledoc2md.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rendered, err := r.RenderJSON(ctx, data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rendered.Teardown()
//	fmt.Print(rendered.Result)
//
// Documents in the legacy 0.2.0 schema and the 0.3.x schemas (0.3.0, 0.3.1,
// 0.3.2) are accepted. Any other version fails with ErrFormat.
//
// # Output
//
// Only a fixed set of tags produces Markdown syntax:
//
//   - sections p, h1 to h6, blockquote, pull-quote and aside
//   - lists ul and ol, rendered as "* " bullets
//   - markups b, strong, i, em, s, strike, del, code and a
//
// Any other tag renders its text without syntax. Image sections render as
// ![](src) and cards render exactly what their plugin returns.
//
// # Cards and Atoms
//
// Cards and atoms are rendered by plugins registered with options:
//
//	mention := mobiledoc2md.Plugin{
//	    Name: "mention",
//	    Type: mobiledoc2md.RenderType,
//	    Render: func(ctx context.Context, args mobiledoc2md.RenderArgs) (any, error) {
//	        return "@" + args.Value, nil
//	    },
//	}
//	r, err := mobiledoc2md.NewRenderer(mobiledoc2md.WithAtoms(mention))
//
// A plugin returns a string, or nil for no output. The built-in code-card,
// html and image-card cards are always present and may be replaced by name.
// Cards and atoms with no plugin fail with ErrPluginNotFound unless
// WithUnknownCardHandler or WithUnknownAtomHandler is set.
//
// # Teardown
//
// Plugins may register cleanup with Env.OnTeardown. Callbacks belong to one
// Render call and run when Rendered.Teardown is called, or before Render
// returns an error.
//
// # Nested Documents
//
// A card may render another document with the same Renderer. It must pass
// the ctx it received so nesting is bounded by WithMaxDepth.
//
// # Parallel Rendering
//
// A Renderer is not safe for concurrent use. RendererPool hands out one
// renderer per goroutine:
//
//	pool, err := mobiledoc2md.NewRendererPool(4, mobiledoc2md.WithCards(cards...))
//	r := pool.Acquire()
//	defer pool.Release(r)
package mobiledoc2md
