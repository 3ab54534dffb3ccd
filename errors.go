package mobiledoc2md

import (
	"errors"
	"fmt"

	"github.com/alnah/go-mobiledoc2md/internal/mobiledoc"
)

// Sentinel errors for library operations.
var (
	// ErrFormat reports an unsupported document version or a document too
	// malformed to render.
	ErrFormat = mobiledoc.ErrFormat

	// ErrRegistration reports a card or atom rejected by NewRenderer.
	ErrRegistration = errors.New("invalid plugin registration")

	// ErrPluginNotFound reports a card or atom with no registered plugin and
	// no unknown handler.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrPluginResult reports a plugin that returned something other than a
	// string or nil.
	ErrPluginResult = errors.New("plugin must render markdown")

	// ErrRecursionLimit reports nested renders deeper than the configured maximum.
	ErrRecursionLimit = errors.New("render depth limit exceeded")
)

// PluginError identifies the card or atom that failed during a render.
// Err is ErrPluginNotFound, ErrPluginResult (possibly wrapped), or the
// error returned by the plugin itself.
type PluginError struct {
	Kind Kind
	Name string
	Err  error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *PluginError) Unwrap() error {
	return e.Err
}
