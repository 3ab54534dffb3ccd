// Package assets provides stylesheets and page layouts for HTML previews.
// Assets can be loaded from embedded files or a custom directory.
package assets

// Names of the built-in assets.
const (
	DefaultStyleName  = "default"
	DefaultLayoutName = "default"
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the default embedded loader.
// The name should not include the .css extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadLayout loads a page layout by name using the default embedded loader.
// Returns ErrLayoutNotFound if the layout does not exist.
func LoadLayout(name string) (string, error) {
	return defaultLoader.LoadLayout(name)
}
