// Package assets provides stylesheets and page layouts for HTML previews.
//
// # Loader Architecture
//
//	PreviewSource (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is what the CLI uses. It tries the custom FilesystemLoader
// first and falls back to EmbeddedLoader when the asset is not found, so a
// user directory can override one asset and keep the other defaults.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css     # stylesheet inlined into the page
//	└── layouts/
//	    └── {name}.html    # html/template with .Title, .CSS and .Body
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
