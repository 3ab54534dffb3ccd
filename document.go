package mobiledoc2md

import (
	"encoding/json"
	"fmt"

	"github.com/alnah/go-mobiledoc2md/internal/mobiledoc"
	"github.com/alnah/go-mobiledoc2md/internal/yamlutil"
)

// Supported mobiledoc versions.
const (
	Version020 = mobiledoc.Version020
	Version030 = mobiledoc.Version030
	Version031 = mobiledoc.Version031
	Version032 = mobiledoc.Version032
)

// SupportedVersions lists the mobiledoc versions Render accepts.
func SupportedVersions() []string {
	return []string{Version020, Version030, Version031, Version032}
}

// Document is a decoded mobiledoc of either supported schema. Entries are the
// generic values JSON decoding produces: lists are []any, numbers float64,
// objects map[string]any. Go callers may also use any integer type.
//
// In 0.2.0 documents Sections holds the [markups, sections] pair and the
// Markups, Atoms and Cards fields are unused.
type Document struct {
	Version  string `json:"version"`
	Markups  []any  `json:"markups,omitempty"`
	Atoms    []any  `json:"atoms,omitempty"`
	Cards    []any  `json:"cards,omitempty"`
	Sections []any  `json:"sections"`
}

func (d Document) raw() mobiledoc.Raw {
	return mobiledoc.Raw{
		Version:  d.Version,
		Markups:  d.Markups,
		Atoms:    d.Atoms,
		Cards:    d.Cards,
		Sections: d.Sections,
	}
}

// ParseDocument decodes a JSON mobiledoc. The version is not checked here;
// Render rejects unsupported versions.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: decoding JSON: %v", ErrFormat, err)
	}
	return doc, nil
}

// ParseYAMLDocument decodes a mobiledoc written as YAML.
func ParseYAMLDocument(data []byte) (Document, error) {
	js, err := yamlutil.ToJSON(data)
	if err != nil {
		return Document{}, fmt.Errorf("%w: decoding YAML: %v", ErrFormat, err)
	}
	return ParseDocument(js)
}

// DocumentFrom converts a value found in a card payload into a Document.
// It accepts a Document, *Document, a decoded JSON object
// (map[string]any), or JSON text as []byte or string.
func DocumentFrom(v any) (Document, error) {
	switch d := v.(type) {
	case Document:
		return d, nil
	case *Document:
		if d == nil {
			return Document{}, fmt.Errorf("%w: nil document", ErrFormat)
		}
		return *d, nil
	case []byte:
		return ParseDocument(d)
	case string:
		return ParseDocument([]byte(d))
	case map[string]any:
		return documentFromMap(d)
	}
	return Document{}, fmt.Errorf("%w: cannot use %T as a document", ErrFormat, v)
}

func documentFromMap(m map[string]any) (Document, error) {
	var doc Document
	if v, ok := m["version"]; ok {
		s, ok := v.(string)
		if !ok {
			return Document{}, fmt.Errorf("%w: version must be a string, got %T", ErrFormat, v)
		}
		doc.Version = s
	}

	fields := []struct {
		key string
		dst *[]any
	}{
		{"markups", &doc.Markups},
		{"atoms", &doc.Atoms},
		{"cards", &doc.Cards},
		{"sections", &doc.Sections},
	}
	for _, f := range fields {
		v, ok := m[f.key]
		if !ok || v == nil {
			continue
		}
		list, ok := v.([]any)
		if !ok {
			return Document{}, fmt.Errorf("%w: %s must be a list, got %T", ErrFormat, f.key, v)
		}
		*f.dst = list
	}
	return doc, nil
}
