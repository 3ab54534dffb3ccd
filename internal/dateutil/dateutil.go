// Package dateutil formats the render date shown in HTML previews.
//
// Patterns use the tokens YYYY, YY, MMMM, MMM, MM, M, DD and D. Text in
// square brackets is copied literally, as is any other character. A pattern
// may also be one of the preset names iso, european, us or long.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date pattern.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits pattern length.
const MaxDateFormatLength = 50

// tokens maps pattern tokens to Go layout fragments, longest first so
// matching is greedy.
var tokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// presets are named patterns, matched case-insensitively.
var presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// Presets returns the preset names in a stable order.
func Presets() []string {
	return []string{"iso", "european", "us", "long"}
}

// Layout converts a pattern or preset name to a Go time layout.
func Layout(pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("%w: pattern cannot be empty", ErrInvalidDateFormat)
	}
	if len(pattern) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: pattern exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}
	if preset, ok := presets[strings.ToLower(pattern)]; ok {
		pattern = preset
	}

	var sb strings.Builder
	sb.Grow(len(pattern) + 8)

	for rest := pattern; rest != ""; {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(pattern)-len(rest))
			}
			sb.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}

		layout, n := matchToken(rest)
		if n == 0 {
			sb.WriteByte(rest[0])
			n = 1
		} else {
			sb.WriteString(layout)
		}
		rest = rest[n:]
	}

	return sb.String(), nil
}

// matchToken returns the layout for the token at the start of s and its
// length, or 0 when s does not start with a token.
func matchToken(s string) (string, int) {
	for _, t := range tokens {
		if strings.HasPrefix(s, t.token) {
			return t.layout, len(t.token)
		}
	}
	return "", 0
}

// Format renders t with pattern. An empty pattern renders nothing.
func Format(pattern string, t time.Time) (string, error) {
	if pattern == "" {
		return "", nil
	}
	layout, err := Layout(pattern)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
