// Package mobiledoc normalizes the two serialized mobiledoc schemas into a
// single internal model.
//
// Two schema generations are supported:
//
//   - 0.2.0: sections holds a pair of [markups, sections]; cards are embedded
//     inline in card sections as [10, name, payload].
//   - 0.3.x: top-level markups, atoms and cards tables; markers carry a type
//     discriminant and reference markups, atoms and cards by index.
//
// Normalize only translates shape. It performs no tag filtering; the render
// package decides what reaches the output.
package mobiledoc

// Supported versions.
const (
	Version020 = "0.2.0"
	Version030 = "0.3.0"
	Version031 = "0.3.1"
	Version032 = "0.3.2"
)

// Section type codes shared by both schemas.
const (
	markupSectionType = 1
	imageSectionType  = 2
	listSectionType   = 3
	cardSectionType   = 10
)

// Marker type codes (0.3 only).
const (
	textMarkerType = 0
	atomMarkerType = 1
)

// SectionKind identifies the variant held by a Section.
type SectionKind int

const (
	MarkupSection SectionKind = iota + 1
	ImageSection
	ListSection
	CardSection
)

// MarkerKind identifies the variant held by a Marker.
type MarkerKind int

const (
	TextMarker MarkerKind = iota
	AtomMarker
)

// Markup is an inline formatting directive such as bold or a link.
type Markup struct {
	Tag   string
	Attrs []string // flat name/value pairs
}

// Attr returns the value of the named attribute, or "" when absent.
func (m Markup) Attr(name string) string {
	for i := 0; i+1 < len(m.Attrs); i += 2 {
		if m.Attrs[i] == name {
			return m.Attrs[i+1]
		}
	}
	return ""
}

// Atom is an inline unit rendered by an atom plugin.
type Atom struct {
	Name    string
	Value   string
	Payload any
}

// Card is a block unit rendered by a card plugin.
type Card struct {
	Name    string
	Payload any
}

// Marker is a run of text, or an atom reference, inside a section.
// Opens lists the markup indices opened before the content; Closes counts
// the open markups closed right after it.
type Marker struct {
	Kind   MarkerKind
	Opens  []int
	Closes int
	Text   string
	Atom   int
}

// Section is one block of the document. Which fields are set depends on Kind:
// Tag and Markers for markup sections, Tag and Items for lists, Src for
// images, Card for cards.
type Section struct {
	Kind    SectionKind
	Tag     string
	Markers []Marker
	Items   [][]Marker
	Src     string
	Card    int
}

// Document is the schema-independent form of a mobiledoc.
type Document struct {
	Version  string
	Markups  []Markup
	Atoms    []Atom
	Cards    []Card
	Sections []Section
}

// Raw is a decoded mobiledoc before normalization. Values are the generic
// shapes produced by JSON or YAML decoding ([]any, string, numbers, maps).
type Raw struct {
	Version  string
	Markups  []any
	Atoms    []any
	Cards    []any
	Sections []any
}
