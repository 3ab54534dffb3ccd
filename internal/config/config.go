package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mobiledoc2md/internal/dateutil"
	"github.com/alnah/go-mobiledoc2md/internal/fileutil"
	"github.com/alnah/go-mobiledoc2md/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxExtensionLength = 16   // ".md", ".markdown"
	MaxStyleLength     = 50   // chroma style, stylesheet or layout name
	MaxCardOptions     = 256  // top-level cardOptions keys
)

// MaxRenderDepth caps render.maxDepth.
const MaxRenderDepth = 1024

// Unknown card and atom policies.
const (
	PolicyError = "error" // fail the file
	PolicySkip  = "skip"  // render nothing
)

// DefaultExtension is the extension of written Markdown files.
const DefaultExtension = ".md"

// appDir is the directory searched under the user config dir.
const appDir = "go-mobiledoc2md"

// Config holds all configuration for the CLI.
type Config struct {
	Output      OutputConfig   `yaml:"output"`
	Render      RenderConfig   `yaml:"render"`
	CardOptions map[string]any `yaml:"cardOptions"`
	Preview     PreviewConfig  `yaml:"preview"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source
	Extension  string `yaml:"extension"`  // Empty = ".md"
}

// RenderConfig defines renderer options.
type RenderConfig struct {
	MaxDepth           int    `yaml:"maxDepth"`     // 0 = library default
	UnknownCards       string `yaml:"unknownCards"` // "error" or "skip" (default: "error")
	UnknownAtoms       string `yaml:"unknownAtoms"` // "error" or "skip" (default: "error")
	DetectCodeLanguage bool   `yaml:"detectCodeLanguage"`
}

// PreviewConfig defines the HTML preview written next to the Markdown.
type PreviewConfig struct {
	HTML       bool   `yaml:"html"`
	RawHTML    bool   `yaml:"rawHTML"`    // let html cards through unescaped
	Style      string `yaml:"style"`      // chroma style (default: "github")
	Stylesheet string `yaml:"stylesheet"` // page CSS name (default: "default")
	Layout     string `yaml:"layout"`     // page layout name (default: "default")
	AssetsDir  string `yaml:"assetsDir"`  // custom styles/ and layouts/, searched first
	Date       string `yaml:"date"`       // render date pattern or preset; empty = no date
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.extension", c.Output.Extension, MaxExtensionLength); err != nil {
		return err
	}
	if c.Output.Extension != "" && !strings.HasPrefix(c.Output.Extension, ".") {
		return fmt.Errorf("%w: output.extension must start with a dot, got %q", ErrInvalidValue, c.Output.Extension)
	}

	if c.Render.MaxDepth < 0 || c.Render.MaxDepth > MaxRenderDepth {
		return fmt.Errorf("%w: render.maxDepth must be between 0 and %d, got %d", ErrInvalidValue, MaxRenderDepth, c.Render.MaxDepth)
	}
	if err := ValidatePolicy("render.unknownCards", c.Render.UnknownCards); err != nil {
		return err
	}
	if err := ValidatePolicy("render.unknownAtoms", c.Render.UnknownAtoms); err != nil {
		return err
	}

	if len(c.CardOptions) > MaxCardOptions {
		return fmt.Errorf("%w: cardOptions has %d keys (max %d)", ErrInvalidValue, len(c.CardOptions), MaxCardOptions)
	}

	if err := validateFieldLength("preview.style", c.Preview.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("preview.stylesheet", c.Preview.Stylesheet, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("preview.layout", c.Preview.Layout, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("preview.assetsDir", c.Preview.AssetsDir, MaxPathLength); err != nil {
		return err
	}
	if c.Preview.Date != "" {
		if _, err := dateutil.Layout(c.Preview.Date); err != nil {
			return fmt.Errorf("%w: preview.date: %v", ErrInvalidValue, err)
		}
	}

	return nil
}

// ValidatePolicy checks an unknown card or atom policy. Empty means the
// default, PolicyError.
func ValidatePolicy(field, value string) error {
	switch strings.ToLower(value) {
	case "", PolicyError, PolicySkip:
		return nil
	}
	return fmt.Errorf("%w: %s must be %q or %q, got %q", ErrInvalidValue, field, PolicyError, PolicySkip, value)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output:  OutputConfig{DefaultDir: "", Extension: DefaultExtension},
		Render:  RenderConfig{UnknownCards: PolicyError, UnknownAtoms: PolicyError},
		Preview: PreviewConfig{HTML: false},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields the file leaves empty keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if cfg.Output.Extension == "" {
		cfg.Output.Extension = DefaultExtension
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-mobiledoc2md/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
