// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strconv"
	"strings"
)

// configDir is the per-user config directory name.
const configDir = "go-mobiledoc2md"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, configDir) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForFormat returns hints for documents that cannot be decoded or rendered.
func ForFormat(versions []string) string {
	if len(versions) == 0 {
		return ""
	}
	return format("supported mobiledoc versions: " + strings.Join(versions, ", "))
}

// ForPluginNotFound returns hints for cards or atoms with no renderer.
// kind is "card" or "atom".
func ForPluginNotFound(kind string) string {
	return format("use --unknown-" + kind + "s skip to render missing " + kind + "s as nothing")
}

// ForRecursionLimit returns hints for documents nested too deeply.
func ForRecursionLimit() string {
	return format("raise the limit with --max-depth if the nesting is intended")
}

// ForUnsupportedInput returns hints listing accepted input extensions.
func ForUnsupportedInput(extensions []string) string {
	if len(extensions) == 0 {
		return ""
	}
	return format("accepted extensions: " + strings.Join(extensions, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}

// Join combines several hints into one hint line, skipping empty ones.
func Join(hints ...string) string {
	var texts []string
	for _, h := range hints {
		if text := strings.TrimPrefix(h, "\n  hint: "); text != "" {
			texts = append(texts, text)
		}
	}
	return formatHints(texts)
}

// ForPreviewAsset returns hints for a missing preview stylesheet or layout.
func ForPreviewAsset(defaultName string) string {
	return format("put custom files in <assetsDir>/styles/<name>.css or <assetsDir>/layouts/<name>.html, or use " + strconv.Quote(defaultName))
}
