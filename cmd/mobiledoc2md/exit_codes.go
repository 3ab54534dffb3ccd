package main

import (
	"errors"
	"os"

	"github.com/alnah/go-mobiledoc2md"
	"github.com/alnah/go-mobiledoc2md/internal/assets"
	"github.com/alnah/go-mobiledoc2md/internal/config"
	"github.com/alnah/go-mobiledoc2md/internal/fileutil"
	"github.com/alnah/go-mobiledoc2md/internal/preview"
)

// Exit codes for the mobiledoc2md CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All documents rendered
	ExitGeneral = 1 // General/unexpected error, or several files failed
	ExitUsage   = 2 // Invalid flags, config, preview assets, or plugin registration
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitRender  = 4 // Document could not be rendered
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Render errors (exit 4)
	var pluginErr *mobiledoc2md.PluginError
	if errors.Is(err, mobiledoc2md.ErrFormat) ||
		errors.Is(err, mobiledoc2md.ErrPluginNotFound) ||
		errors.Is(err, mobiledoc2md.ErrPluginResult) ||
		errors.Is(err, mobiledoc2md.ErrRecursionLimit) ||
		errors.Is(err, preview.ErrConversion) ||
		errors.As(err, &pluginErr) {
		return ExitRender
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, assets.ErrAssetRead) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, fileutil.ErrUnsupportedInput) ||
		errors.Is(err, fileutil.ErrExtensionEmpty) ||
		errors.Is(err, fileutil.ErrExtensionPathTraversal) ||
		errors.Is(err, mobiledoc2md.ErrRegistration) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrLayoutNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, preview.ErrLayout) {
		return ExitUsage
	}

	return ExitGeneral
}
