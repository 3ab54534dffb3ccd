package main

import (
	"bytes"
	"errors"
	"testing"

	flag "github.com/spf13/pflag"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	args := []string{
		"-o", "out", "-w", "3", "--html",
		"--unknown-cards", "skip", "--unknown-atoms=error",
		"--max-depth", "5", "--detect-language",
		"-c", "site", "-v", "docs",
	}

	f, positional, err := parseFlags(args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags() error: %v", err)
	}

	if f.output != "out" || f.workers != 3 || !f.html {
		t.Errorf("I/O flags = %+v", f)
	}
	want := renderFlags{unknownCards: "skip", unknownAtoms: "error", maxDepth: 5, detectLanguage: true}
	if f.render != want {
		t.Errorf("render flags = %+v, want %+v", f.render, want)
	}
	if f.common.config != "site" || !f.common.verbose || f.common.quiet {
		t.Errorf("common flags = %+v", f.common)
	}
	if len(positional) != 1 || positional[0] != "docs" {
		t.Errorf("positional = %v, want [docs]", positional)
	}
}

func TestParseFlags_StdinDash(t *testing.T) {
	t.Parallel()

	_, positional, err := parseFlags([]string{"-"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags() error: %v", err)
	}
	if len(positional) != 1 || positional[0] != stdinArg {
		t.Errorf("positional = %v, want [-]", positional)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--nope"}},
		{"bad int", []string{"-w", "many"}},
		{"missing value", []string{"-o"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, _, err := parseFlags(tt.args, &bytes.Buffer{}); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseFlags_Help(t *testing.T) {
	t.Parallel()

	var usage bytes.Buffer
	f, _, err := parseFlags([]string{"-h"}, &usage)
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("parseFlags(-h) error: %v", err)
	}
	if err == nil && !f.help {
		t.Error("-h should set help")
	}
}
