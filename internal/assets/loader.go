package assets

// PreviewSource supplies the two named assets a preview page is built from.
// Names are bare identifiers; each source adds its own extension.
type PreviewSource interface {
	// LoadStyle returns the stylesheet called name, or ErrStyleNotFound.
	LoadStyle(name string) (string, error)

	// LoadLayout returns the html/template page layout called name, or
	// ErrLayoutNotFound.
	LoadLayout(name string) (string, error)
}
