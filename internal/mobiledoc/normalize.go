package mobiledoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrFormat indicates an unsupported version or a document too malformed to render.
var ErrFormat = errors.New("invalid mobiledoc")

// Normalize converts a raw document of either supported schema into a Document.
// The version is checked before anything else is looked at.
func Normalize(raw Raw) (*Document, error) {
	switch raw.Version {
	case Version020:
		return normalizeLegacy(raw)
	case Version030, Version031, Version032:
		return normalizeCurrent(raw)
	default:
		return nil, fmt.Errorf("%w: unexpected mobiledoc version %q", ErrFormat, raw.Version)
	}
}

// IsSupportedVersion reports whether v names a schema Normalize accepts.
func IsSupportedVersion(v string) bool {
	switch v {
	case Version020, Version030, Version031, Version032:
		return true
	}
	return false
}

// normalizeLegacy handles 0.2.0, where sections is [markups, sections].
func normalizeLegacy(raw Raw) (*Document, error) {
	doc := &Document{Version: raw.Version}
	if len(raw.Sections) == 0 {
		return doc, nil
	}
	if len(raw.Sections) != 2 {
		return nil, fmt.Errorf("%w: sections must be a [markups, sections] pair, got %d entries", ErrFormat, len(raw.Sections))
	}

	markups, ok := raw.Sections[0].([]any)
	if !ok && raw.Sections[0] != nil {
		return nil, fmt.Errorf("%w: markups must be a list", ErrFormat)
	}
	sections, ok := raw.Sections[1].([]any)
	if !ok && raw.Sections[1] != nil {
		return nil, fmt.Errorf("%w: sections must be a list", ErrFormat)
	}

	var err error
	if doc.Markups, err = parseMarkups(markups); err != nil {
		return nil, err
	}

	for i, s := range sections {
		section, err := parseLegacySection(doc, s)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc, nil
}

func parseLegacySection(doc *Document, v any) (Section, error) {
	tuple, kind, err := sectionTuple(v)
	if err != nil {
		return Section{}, err
	}

	switch kind {
	case markupSectionType:
		tag, items, err := taggedList(tuple)
		if err != nil {
			return Section{}, err
		}
		markers, err := parseLegacyMarkers(doc, items)
		if err != nil {
			return Section{}, err
		}
		return Section{Kind: MarkupSection, Tag: tag, Markers: markers}, nil

	case listSectionType:
		tag, items, err := taggedList(tuple)
		if err != nil {
			return Section{}, err
		}
		section := Section{Kind: ListSection, Tag: tag}
		for j, item := range items {
			list, ok := item.([]any)
			if !ok {
				return Section{}, fmt.Errorf("%w: list item %d must be a list of markers", ErrFormat, j)
			}
			markers, err := parseLegacyMarkers(doc, list)
			if err != nil {
				return Section{}, fmt.Errorf("list item %d: %w", j, err)
			}
			section.Items = append(section.Items, markers)
		}
		return section, nil

	case imageSectionType:
		src, err := imageSource(tuple)
		if err != nil {
			return Section{}, err
		}
		return Section{Kind: ImageSection, Src: src}, nil

	case cardSectionType:
		if len(tuple) < 2 {
			return Section{}, fmt.Errorf("%w: card section needs a name", ErrFormat)
		}
		name, ok := tuple[1].(string)
		if !ok {
			return Section{}, fmt.Errorf("%w: card name must be a string", ErrFormat)
		}
		var payload any
		if len(tuple) > 2 {
			payload = tuple[2]
		}
		doc.Cards = append(doc.Cards, Card{Name: name, Payload: payloadOrEmpty(payload)})
		return Section{Kind: CardSection, Card: len(doc.Cards) - 1}, nil
	}

	return Section{}, fmt.Errorf("%w: unknown section type %d", ErrFormat, kind)
}

// parseLegacyMarkers reads [[openIdx...], closeCount, text] markers.
func parseLegacyMarkers(doc *Document, items []any) ([]Marker, error) {
	markers := make([]Marker, 0, len(items))
	for i, item := range items {
		tuple, ok := item.([]any)
		if !ok || len(tuple) < 3 {
			return nil, fmt.Errorf("%w: marker %d must be [opens, closeCount, text]", ErrFormat, i)
		}
		opens, closes, err := markerCounts(doc, tuple[0], tuple[1])
		if err != nil {
			return nil, fmt.Errorf("marker %d: %w", i, err)
		}
		text, ok := tuple[2].(string)
		if !ok {
			return nil, fmt.Errorf("%w: marker %d text must be a string", ErrFormat, i)
		}
		markers = append(markers, Marker{Kind: TextMarker, Opens: opens, Closes: closes, Text: text})
	}
	return markers, nil
}

// normalizeCurrent handles 0.3.x documents.
func normalizeCurrent(raw Raw) (*Document, error) {
	doc := &Document{Version: raw.Version}

	var err error
	if doc.Markups, err = parseMarkups(raw.Markups); err != nil {
		return nil, err
	}
	if doc.Atoms, err = parseAtoms(raw.Atoms); err != nil {
		return nil, err
	}
	if doc.Cards, err = parseCards(raw.Cards); err != nil {
		return nil, err
	}

	for i, s := range raw.Sections {
		section, err := parseSection(doc, s)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc, nil
}

func parseSection(doc *Document, v any) (Section, error) {
	tuple, kind, err := sectionTuple(v)
	if err != nil {
		return Section{}, err
	}

	switch kind {
	case markupSectionType:
		tag, items, err := taggedList(tuple)
		if err != nil {
			return Section{}, err
		}
		markers, err := parseMarkers(doc, items)
		if err != nil {
			return Section{}, err
		}
		return Section{Kind: MarkupSection, Tag: tag, Markers: markers}, nil

	case listSectionType:
		tag, items, err := taggedList(tuple)
		if err != nil {
			return Section{}, err
		}
		section := Section{Kind: ListSection, Tag: tag}
		for j, item := range items {
			list, ok := item.([]any)
			if !ok {
				return Section{}, fmt.Errorf("%w: list item %d must be a list of markers", ErrFormat, j)
			}
			markers, err := parseMarkers(doc, list)
			if err != nil {
				return Section{}, fmt.Errorf("list item %d: %w", j, err)
			}
			section.Items = append(section.Items, markers)
		}
		return section, nil

	case imageSectionType:
		src, err := imageSource(tuple)
		if err != nil {
			return Section{}, err
		}
		return Section{Kind: ImageSection, Src: src}, nil

	case cardSectionType:
		if len(tuple) < 2 {
			return Section{}, fmt.Errorf("%w: card section needs a card index", ErrFormat)
		}
		idx, ok := toInt(tuple[1])
		if !ok || idx < 0 || idx >= len(doc.Cards) {
			return Section{}, fmt.Errorf("%w: card index %v out of range", ErrFormat, tuple[1])
		}
		return Section{Kind: CardSection, Card: idx}, nil
	}

	return Section{}, fmt.Errorf("%w: unknown section type %d", ErrFormat, kind)
}

// parseMarkers reads [type, [openIdx...], closeCount, value] markers.
func parseMarkers(doc *Document, items []any) ([]Marker, error) {
	markers := make([]Marker, 0, len(items))
	for i, item := range items {
		tuple, ok := item.([]any)
		if !ok || len(tuple) < 4 {
			return nil, fmt.Errorf("%w: marker %d must be [type, opens, closeCount, value]", ErrFormat, i)
		}
		opens, closes, err := markerCounts(doc, tuple[1], tuple[2])
		if err != nil {
			return nil, fmt.Errorf("marker %d: %w", i, err)
		}
		marker := Marker{Opens: opens, Closes: closes}

		kind, ok := toInt(tuple[0])
		if !ok {
			kind = -1
		}
		switch kind {
		case textMarkerType:
			text, ok := tuple[3].(string)
			if !ok {
				return nil, fmt.Errorf("%w: marker %d text must be a string", ErrFormat, i)
			}
			marker.Kind = TextMarker
			marker.Text = text
		case atomMarkerType:
			idx, ok := toInt(tuple[3])
			if !ok || idx < 0 || idx >= len(doc.Atoms) {
				return nil, fmt.Errorf("%w: marker %d atom index %v out of range", ErrFormat, i, tuple[3])
			}
			marker.Kind = AtomMarker
			marker.Atom = idx
		default:
			return nil, fmt.Errorf("%w: marker %d has unknown type %v", ErrFormat, i, tuple[0])
		}
		markers = append(markers, marker)
	}
	return markers, nil
}

func parseMarkups(items []any) ([]Markup, error) {
	markups := make([]Markup, 0, len(items))
	for i, item := range items {
		tuple, ok := item.([]any)
		if !ok || len(tuple) == 0 {
			return nil, fmt.Errorf("%w: markup %d must be [tagName, attributes?]", ErrFormat, i)
		}
		tag, ok := tuple[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: markup %d tag must be a string", ErrFormat, i)
		}
		markup := Markup{Tag: tag}
		if len(tuple) > 1 && tuple[1] != nil {
			attrs, ok := tuple[1].([]any)
			if !ok {
				return nil, fmt.Errorf("%w: markup %d attributes must be a list", ErrFormat, i)
			}
			for _, a := range attrs {
				markup.Attrs = append(markup.Attrs, fmt.Sprint(a))
			}
		}
		markups = append(markups, markup)
	}
	return markups, nil
}

func parseAtoms(items []any) ([]Atom, error) {
	atoms := make([]Atom, 0, len(items))
	for i, item := range items {
		tuple, ok := item.([]any)
		if !ok || len(tuple) == 0 {
			return nil, fmt.Errorf("%w: atom %d must be [name, value, payload]", ErrFormat, i)
		}
		name, ok := tuple[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: atom %d name must be a string", ErrFormat, i)
		}
		atom := Atom{Name: name}
		if len(tuple) > 1 && tuple[1] != nil {
			atom.Value = fmt.Sprint(tuple[1])
		}
		if len(tuple) > 2 {
			atom.Payload = tuple[2]
		}
		atom.Payload = payloadOrEmpty(atom.Payload)
		atoms = append(atoms, atom)
	}
	return atoms, nil
}

func parseCards(items []any) ([]Card, error) {
	cards := make([]Card, 0, len(items))
	for i, item := range items {
		tuple, ok := item.([]any)
		if !ok || len(tuple) == 0 {
			return nil, fmt.Errorf("%w: card %d must be [name, payload]", ErrFormat, i)
		}
		name, ok := tuple[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: card %d name must be a string", ErrFormat, i)
		}
		var payload any
		if len(tuple) > 1 {
			payload = tuple[1]
		}
		cards = append(cards, Card{Name: name, Payload: payloadOrEmpty(payload)})
	}
	return cards, nil
}

// sectionTuple checks that v is a non-empty list and returns its type code.
func sectionTuple(v any) ([]any, int, error) {
	tuple, ok := v.([]any)
	if !ok || len(tuple) == 0 {
		return nil, 0, fmt.Errorf("%w: section must be a non-empty list", ErrFormat)
	}
	kind, ok := toInt(tuple[0])
	if !ok {
		return nil, 0, fmt.Errorf("%w: section type %v is not an integer", ErrFormat, tuple[0])
	}
	return tuple, kind, nil
}

// taggedList reads the [type, tagName, [...]] shape shared by markup and list sections.
func taggedList(tuple []any) (string, []any, error) {
	if len(tuple) < 2 {
		return "", nil, fmt.Errorf("%w: section needs a tag name", ErrFormat)
	}
	tag, ok := tuple[1].(string)
	if !ok {
		return "", nil, fmt.Errorf("%w: section tag name must be a string", ErrFormat)
	}
	if len(tuple) < 3 || tuple[2] == nil {
		return tag, nil, nil
	}
	items, ok := tuple[2].([]any)
	if !ok {
		return "", nil, fmt.Errorf("%w: section %q content must be a list", ErrFormat, tag)
	}
	return tag, items, nil
}

func imageSource(tuple []any) (string, error) {
	if len(tuple) < 2 {
		return "", fmt.Errorf("%w: image section needs a source", ErrFormat)
	}
	src, ok := tuple[1].(string)
	if !ok {
		return "", fmt.Errorf("%w: image source must be a string", ErrFormat)
	}
	return src, nil
}

// markerCounts validates the open indices and close count of a marker.
func markerCounts(doc *Document, rawOpens, rawCloses any) ([]int, int, error) {
	var opens []int
	if rawOpens != nil {
		list, ok := rawOpens.([]any)
		if !ok {
			return nil, 0, fmt.Errorf("%w: open markups must be a list", ErrFormat)
		}
		for _, o := range list {
			idx, ok := toInt(o)
			if !ok || idx < 0 || idx >= len(doc.Markups) {
				return nil, 0, fmt.Errorf("%w: markup index %v out of range", ErrFormat, o)
			}
			opens = append(opens, idx)
		}
	}

	closes, ok := toInt(rawCloses)
	if !ok || closes < 0 {
		return nil, 0, fmt.Errorf("%w: close count %v must be a non-negative integer", ErrFormat, rawCloses)
	}
	return opens, closes, nil
}

// payloadOrEmpty gives plugins an empty payload instead of nil, like the
// original renderer's `payload || {}`.
func payloadOrEmpty(v any) any {
	if v == nil {
		return map[string]any{}
	}
	return v
}

// toInt accepts any numeric value that is integral and fits in an int32,
// so indexes behave the same on every platform.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return int64ToInt(int64(n))
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int64ToInt(n)
	case uint:
		return uint64ToInt(uint64(n))
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return uint64ToInt(uint64(n))
	case uint64:
		return uint64ToInt(n)
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return floatToInt(jsonFloat(n))
		}
		return int64ToInt(i)
	}
	return 0, false
}

func int64ToInt(n int64) (int, bool) {
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return int(n), true
}

func uint64ToInt(n uint64) (int, bool) {
	if n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

// jsonFloat returns NaN for numbers that are not valid floats either.
func jsonFloat(n json.Number) float64 {
	f, err := n.Float64()
	if err != nil {
		return math.NaN()
	}
	return f
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
