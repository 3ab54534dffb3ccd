package assets

import "errors"

var (
	ErrStyleNotFound  = errors.New("stylesheet not found")
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrInvalidAssetName is returned for names outside [A-Za-z0-9_-]
	// or longer than maxNameLen.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath means the assets directory is missing or unreadable.
	ErrInvalidBasePath = errors.New("invalid assets directory")
	ErrAssetRead       = errors.New("cannot read asset")

	// ErrPathTraversal means a resolved asset path left the assets directory.
	ErrPathTraversal = errors.New("asset path escapes assets directory")
)
