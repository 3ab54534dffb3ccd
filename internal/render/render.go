// Package render turns a normalized mobiledoc into Markdown.
//
// Sections are rendered in document order and concatenated with no extra
// separator: markup sections and list items end with a newline, images and
// cards do not. Inline markups are nested with an explicit stack, so the
// output stays balanced even when open and close counts interleave.
//
// Cards and atoms are delegated to a Plugins implementation supplied by the
// caller; this package knows nothing about registration or teardown.
package render

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-mobiledoc2md/internal/mobiledoc"
	"github.com/alnah/go-mobiledoc2md/internal/tags"
)

// Plugins renders the opaque units of a document.
type Plugins interface {
	RenderCard(ctx context.Context, card mobiledoc.Card) (string, error)
	RenderAtom(ctx context.Context, atom mobiledoc.Atom) (string, error)
}

// Renderer renders normalized documents.
type Renderer struct {
	plugins Plugins
	logger  *log.Logger
}

// New creates a Renderer. A nil logger discards output.
func New(plugins Plugins, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Renderer{plugins: plugins, logger: logger}
}

// Document renders every section of doc. The context is checked between
// sections and passed to plugins.
func (r *Renderer) Document(ctx context.Context, doc *mobiledoc.Document) (string, error) {
	var sb strings.Builder
	for _, section := range doc.Sections {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := r.section(ctx, &sb, doc, section); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func (r *Renderer) section(ctx context.Context, sb *strings.Builder, doc *mobiledoc.Document, s mobiledoc.Section) error {
	switch s.Kind {
	case mobiledoc.MarkupSection:
		return r.markupSection(ctx, sb, doc, s)
	case mobiledoc.ListSection:
		return r.listSection(ctx, sb, doc, s)
	case mobiledoc.ImageSection:
		sb.WriteString("![](" + s.Src + ")")
		return nil
	case mobiledoc.CardSection:
		out, err := r.plugins.RenderCard(ctx, doc.Cards[s.Card])
		if err != nil {
			return err
		}
		sb.WriteString(out)
		return nil
	}
	return nil
}

func (r *Renderer) markupSection(ctx context.Context, sb *strings.Builder, doc *mobiledoc.Document, s mobiledoc.Section) error {
	prefix, ok := tags.SectionPrefix(s.Tag)
	if !ok {
		r.logger.Debug("dropping section tag", "tag", s.Tag)
	}

	text, err := r.Markers(ctx, doc, s.Markers)
	if err != nil {
		return err
	}

	sb.WriteString(prefix)
	sb.WriteString(continueBlock(prefix, text))
	sb.WriteByte('\n')
	return nil
}

// continueBlock keeps multi-line text inside its block: quote lines repeat
// the prefix, heading lines are joined since a heading is a single line.
func continueBlock(prefix, text string) string {
	if !strings.Contains(text, "\n") {
		return text
	}
	switch {
	case strings.HasPrefix(prefix, ">"):
		return strings.ReplaceAll(text, "\n", "\n"+prefix)
	case strings.HasPrefix(prefix, "#"):
		return strings.ReplaceAll(text, "\n", " ")
	}
	return text
}

func (r *Renderer) listSection(ctx context.Context, sb *strings.Builder, doc *mobiledoc.Document, s mobiledoc.Section) error {
	bullet := tags.Bullet
	if !tags.IsListTag(s.Tag) {
		r.logger.Debug("dropping list tag", "tag", s.Tag)
		bullet = ""
	}

	for _, item := range s.Items {
		text, err := r.Markers(ctx, doc, item)
		if err != nil {
			return err
		}
		sb.WriteString(bullet)
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	return nil
}
