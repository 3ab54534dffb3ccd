package render

import (
	"context"
	"strings"

	"github.com/alnah/go-mobiledoc2md/internal/mobiledoc"
	"github.com/alnah/go-mobiledoc2md/internal/tags"
)

// openMarkup is one entry of the markup stack. Markups outside the whitelist
// push an entry with an empty close so counts still balance.
type openMarkup struct {
	close string
}

// Markers renders one run of markers (a markup section body or a list item).
//
// For each marker the markups it opens are pushed and their opening syntax
// written, then its content, then Closes entries are popped and their
// closing syntax written. Extra closes on an empty stack are ignored and
// markups still open after the last marker are closed, innermost first.
func (r *Renderer) Markers(ctx context.Context, doc *mobiledoc.Document, markers []mobiledoc.Marker) (string, error) {
	var sb strings.Builder
	stack := make([]openMarkup, 0, 4)

	for _, m := range markers {
		for _, idx := range m.Opens {
			markup := doc.Markups[idx]
			syntax, ok := r.markupSyntax(markup)
			if !ok {
				r.logger.Debug("dropping markup tag", "tag", markup.Tag)
			}
			sb.WriteString(syntax.Open)
			stack = append(stack, openMarkup{close: syntax.Close})
		}

		switch m.Kind {
		case mobiledoc.TextMarker:
			sb.WriteString(m.Text)
		case mobiledoc.AtomMarker:
			out, err := r.plugins.RenderAtom(ctx, doc.Atoms[m.Atom])
			if err != nil {
				return "", err
			}
			sb.WriteString(out)
		}

		for i := 0; i < m.Closes && len(stack) > 0; i++ {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			sb.WriteString(top.close)
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sb.WriteString(top.close)
	}

	return sb.String(), nil
}

// markupSyntax resolves a markup to its delimiters. The boolean is false
// when the tag is not whitelisted; the returned Syntax is then empty.
func (r *Renderer) markupSyntax(m mobiledoc.Markup) (tags.Syntax, bool) {
	if tags.IsLink(m.Tag) {
		return tags.LinkSyntax(m.Attr("href")), true
	}
	return tags.MarkupSyntax(m.Tag)
}
