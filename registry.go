package mobiledoc2md

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-mobiledoc2md/internal/mobiledoc"
	"github.com/alnah/go-mobiledoc2md/internal/render"
)

// Compile-time interface implementation check.
var _ render.Plugins = (*renderPass)(nil)

// registry maps plugin names to plugins for one kind. It is built once by
// NewRenderer and only read afterwards.
type registry struct {
	kind    Kind
	plugins map[string]Plugin
	unknown RenderFunc
}

// newRegistry registers builtins first, then user plugins. A user plugin may
// replace a builtin of the same name but not another user plugin.
func newRegistry(kind Kind, builtins, plugins []Plugin, unknown RenderFunc) (*registry, error) {
	reg := &registry{
		kind:    kind,
		plugins: make(map[string]Plugin, len(builtins)+len(plugins)),
		unknown: unknown,
	}
	for _, p := range builtins {
		reg.plugins[p.Name] = p
	}

	seen := make(map[string]bool, len(plugins))
	for _, p := range plugins {
		if err := p.validate(kind); err != nil {
			return nil, err
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: %s %q registered more than once", ErrRegistration, kind, p.Name)
		}
		seen[p.Name] = true
		reg.plugins[p.Name] = p
	}
	return reg, nil
}

// lookup returns the plugin for name, the unknown handler, or an error.
func (reg *registry) lookup(name string) (RenderFunc, bool, error) {
	if p, ok := reg.plugins[name]; ok {
		return p.Render, false, nil
	}
	if reg.unknown != nil {
		return reg.unknown, true, nil
	}
	return nil, false, &PluginError{
		Kind: reg.kind,
		Name: name,
		Err:  fmt.Errorf("%w and no unknown %s handler configured", ErrPluginNotFound, reg.kind),
	}
}

// renderPass is the per-call state of one Render: it owns the teardown list
// and resolves cards and atoms for the render package.
type renderPass struct {
	cards     *registry
	atoms     *registry
	options   any
	logger    *log.Logger
	teardowns []func()
}

func (p *renderPass) RenderCard(ctx context.Context, card mobiledoc.Card) (string, error) {
	return p.invoke(ctx, p.cards, card.Name, RenderArgs{Payload: card.Payload})
}

func (p *renderPass) RenderAtom(ctx context.Context, atom mobiledoc.Atom) (string, error) {
	return p.invoke(ctx, p.atoms, atom.Name, RenderArgs{Payload: atom.Payload, Value: atom.Value})
}

func (p *renderPass) invoke(ctx context.Context, reg *registry, name string, args RenderArgs) (string, error) {
	fn, fallback, err := reg.lookup(name)
	if err != nil {
		return "", err
	}
	if fallback {
		p.logger.Debug("using unknown handler", "kind", reg.kind, "name", name)
	}

	args.Env = Env{Name: name, IsInEditor: false, onTeardown: p.onTeardown}
	args.Options = p.options

	out, err := fn(ctx, args)
	if err != nil {
		return "", &PluginError{Kind: reg.kind, Name: name, Err: err}
	}

	switch v := out.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", &PluginError{
			Kind: reg.kind,
			Name: name,
			Err:  fmt.Errorf("%w, got %T", ErrPluginResult, out),
		}
	}
}

func (p *renderPass) onTeardown(fn func()) {
	p.teardowns = append(p.teardowns, fn)
}

// release runs the registered teardowns in order.
func (p *renderPass) release() {
	for _, fn := range p.teardowns {
		fn()
	}
	p.teardowns = nil
}
