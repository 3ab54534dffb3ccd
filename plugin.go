package mobiledoc2md

import (
	"context"
	"fmt"
)

// RenderType is the only plugin type this renderer accepts.
const RenderType = "markdown"

// Kind distinguishes block cards from inline atoms.
type Kind int

const (
	KindCard Kind = iota
	KindAtom
)

func (k Kind) String() string {
	switch k {
	case KindCard:
		return "card"
	case KindAtom:
		return "atom"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Env describes the surroundings of one plugin call.
type Env struct {
	Name       string // card or atom name from the document
	IsInEditor bool   // always false when rendering Markdown

	onTeardown func(func())
}

// OnTeardown registers fn to run when the caller tears the render down.
// Callbacks run in registration order, once.
func (e Env) OnTeardown(fn func()) {
	if e.onTeardown != nil && fn != nil {
		e.onTeardown(fn)
	}
}

// RenderArgs is what a plugin receives.
type RenderArgs struct {
	Env     Env
	Payload any    // card or atom payload, an empty map when the document has none
	Value   string // atom display text; empty for cards
	Options any    // value given to WithCardOptions
}

// RenderFunc renders a card or atom. It must return a string or nil (rendered
// as the empty string); anything else fails the render with ErrPluginResult.
// Cards that render nested documents should pass ctx to Renderer.Render so
// the nesting depth is tracked.
type RenderFunc func(ctx context.Context, args RenderArgs) (any, error)

// Plugin is a named card or atom renderer.
type Plugin struct {
	Name   string
	Type   string // must be RenderType
	Render RenderFunc
}

// validate checks a plugin at registration time.
func (p Plugin) validate(kind Kind) error {
	if p.Name == "" {
		return fmt.Errorf("%w: %s must have a name", ErrRegistration, kind)
	}
	if p.Type != RenderType {
		return fmt.Errorf("%w: %s %q must be of type %q, got %q", ErrRegistration, kind, p.Name, RenderType, p.Type)
	}
	if p.Render == nil {
		return fmt.Errorf("%w: %s %q must define render", ErrRegistration, kind, p.Name)
	}
	return nil
}
