// Package fileutil provides file discovery and path utilities for the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrUnsupportedInput       = errors.New("unsupported input file")
)

// File permission constants.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// InputExtensions are the file extensions read as mobiledocs.
var InputExtensions = []string{".json", ".mobiledoc", ".yaml", ".yml"}

// Job pairs a discovered input with the path its Markdown is written to.
type Job struct {
	InputPath  string
	OutputPath string
}

// IsInput reports whether path has a mobiledoc input extension.
func IsInput(path string) bool {
	return slices.Contains(InputExtensions, strings.ToLower(filepath.Ext(path)))
}

// IsYAML reports whether path should be decoded as YAML rather than JSON.
func IsYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Discover finds the inputs under inputPath. A file is returned on its own
// (it must have an input extension); a directory is walked recursively and
// its tree is mirrored under outputDir. Results are in lexical order.
func Discover(inputPath, outputDir, extension string) ([]Job, error) {
	if err := ValidateExtension(extension); err != nil {
		return nil, err
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !IsInput(inputPath) {
			return nil, fmt.Errorf("%w: %s (want one of %s)", ErrUnsupportedInput, inputPath, strings.Join(InputExtensions, ", "))
		}
		return []Job{{InputPath: inputPath, OutputPath: OutputPath(inputPath, outputDir, "", extension)}}, nil
	}

	var jobs []Job
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !IsInput(path) {
			return nil
		}
		jobs = append(jobs, Job{InputPath: path, OutputPath: OutputPath(path, outputDir, inputPath, extension)})
		return nil
	})

	return jobs, err
}

// OutputPath determines where the Markdown for inputPath is written.
// With no outputDir it goes next to the input. An outputDir ending in
// extension is taken as the output file itself. With baseInputDir set, the
// input's path relative to it is kept under outputDir.
func OutputPath(inputPath, outputDir, baseInputDir, extension string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+extension)
	}

	if strings.HasSuffix(outputDir, extension) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base+extension)
		}
	}

	return filepath.Join(outputDir, base+extension)
}

// ReplaceExtension swaps the extension of path for extension.
func ReplaceExtension(path, extension string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + extension
}

// WriteFile writes content to path, creating parent directories. The content
// goes to a temporary file in the same directory first and is renamed into
// place, so readers never see a partial file.
func WriteFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".mobiledoc2md-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, writeErr := tmpFile.Write(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	// #nosec G302 -- rendered Markdown is meant to be readable
	if err := os.Chmod(tmpPath, FilePermissions); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ValidateExtension checks that an output extension is safe to append to a
// file name.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "site" -> false (config name)
//   - "./site.yaml" -> true (relative path)
//   - "/etc/mobiledoc2md/site.yaml" -> true (absolute)
//   - "C:\config\site.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
