package mobiledoc2md

import (
	"github.com/charmbracelet/log"
)

// DefaultMaxDepth bounds nested renders (cards rendering documents that
// contain cards...) when WithMaxDepth is not used.
const DefaultMaxDepth = 32

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	cards          []Plugin
	atoms          []Plugin
	cardOptions    any
	unknownCard    RenderFunc
	unknownAtom    RenderFunc
	maxDepth       int
	detectLanguage bool
}

// WithCards registers card plugins. Cards are validated by NewRenderer.
func WithCards(cards ...Plugin) Option {
	return func(r *Renderer) {
		r.cfg.cards = append(r.cfg.cards, cards...)
	}
}

// WithAtoms registers atom plugins. Atoms are validated by NewRenderer.
func WithAtoms(atoms ...Plugin) Option {
	return func(r *Renderer) {
		r.cfg.atoms = append(r.cfg.atoms, atoms...)
	}
}

// WithCardOptions sets the value passed as RenderArgs.Options to every card,
// atom and unknown handler.
func WithCardOptions(options any) Option {
	return func(r *Renderer) {
		r.cfg.cardOptions = options
	}
}

// WithUnknownCardHandler sets the fallback for cards with no registered plugin.
// Its result is checked and rendered exactly like a plugin's.
func WithUnknownCardHandler(fn RenderFunc) Option {
	return func(r *Renderer) {
		r.cfg.unknownCard = fn
	}
}

// WithUnknownAtomHandler sets the fallback for atoms with no registered plugin.
// Its result is checked and rendered exactly like a plugin's.
func WithUnknownAtomHandler(fn RenderFunc) Option {
	return func(r *Renderer) {
		r.cfg.unknownAtom = fn
	}
}

// WithMaxDepth sets how many renders may be nested inside each other.
// Panics if n <= 0 (programmer error, similar to time.NewTicker).
func WithMaxDepth(n int) Option {
	if n <= 0 {
		panic("mobiledoc2md: WithMaxDepth must be positive")
	}
	return func(r *Renderer) {
		r.cfg.maxDepth = n
	}
}

// WithLogger sets the logger used for debug output (dropped tags, unknown
// handler use, nesting depth). By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCodeLanguageDetection makes the built-in code card guess a missing
// language from the code itself.
func WithCodeLanguageDetection() Option {
	return func(r *Renderer) {
		r.cfg.detectLanguage = true
	}
}
