// Package preview converts rendered Markdown to a standalone HTML page so a
// render can be checked in a browser.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Sentinel errors for preview operations.
var (
	ErrConversion = errors.New("HTML preview failed")
	ErrLayout     = errors.New("invalid preview layout")
)

// DefaultStyle is the chroma style used for fenced code.
const DefaultStyle = "github"

// defaultLayout wraps goldmark's fragment output in a complete HTML5 document.
var defaultLayout = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- if .CSS}}
<style>{{.CSS}}</style>
{{- end}}
</head>
<body>
{{.Body}}
{{- if .Date}}
<footer>Rendered {{.Date}}</footer>
{{- end}}
</body>
</html>`))

// Page is the data a layout is executed with.
type Page struct {
	Title string
	Date  string // empty unless WithDate is set
	CSS   template.CSS
	Body  template.HTML
}

// ParseLayout parses an html/template page layout. The layout receives a
// Page; Title is escaped, CSS and Body are inserted as is.
func ParseLayout(text string) (*template.Template, error) {
	t, err := template.New("page").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayout, err)
	}
	return t, nil
}

// Converter abstracts Markdown to HTML conversion.
type Converter interface {
	ToHTML(ctx context.Context, title, markdown string) (string, error)
}

// Compile-time interface implementation check.
var _ Converter = (*GoldmarkConverter)(nil)

// Option configures a GoldmarkConverter.
type Option func(*options)

type options struct {
	rawHTML bool
	style   string
	css     string
	date    string
	layout  *template.Template
}

// WithRawHTML lets raw HTML through, so html cards show as they would on a
// site. Off by default: documents are untrusted input.
func WithRawHTML() Option {
	return func(o *options) { o.rawHTML = true }
}

// WithStyle selects the chroma style for fenced code. Inline styles are used
// so the page needs no external stylesheet.
func WithStyle(name string) Option {
	return func(o *options) {
		if name != "" {
			o.style = name
		}
	}
}

// WithCSS inlines a stylesheet into the page head.
func WithCSS(css string) Option {
	return func(o *options) { o.css = css }
}

// WithDate sets the render date shown by the layout.
func WithDate(date string) Option {
	return func(o *options) { o.date = date }
}

// WithLayout replaces the built-in page layout. A nil layout is ignored.
func WithLayout(t *template.Template) Option {
	return func(o *options) {
		if t != nil {
			o.layout = t
		}
	}
}

// GoldmarkConverter converts Markdown to HTML using goldmark.
type GoldmarkConverter struct {
	md     goldmark.Markdown
	css    string
	date   string
	layout *template.Template
}

// New creates a GoldmarkConverter with GFM extensions and syntax highlighting.
func New(opts ...Option) *GoldmarkConverter {
	o := options{style: DefaultStyle, layout: defaultLayout}
	for _, opt := range opts {
		opt(&o)
	}

	rendererOpts := []renderer.Option{gmhtml.WithXHTML()}
	if o.rawHTML {
		rendererOpts = append(rendererOpts, gmhtml.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle(o.style),
				highlighting.WithFormatOptions(
					chromahtml.WithLineNumbers(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &GoldmarkConverter{md: md, css: o.css, date: o.date, layout: o.layout}
}

// ToHTML converts markdown to a standalone HTML5 document titled title.
// Goldmark has no context support, so conversion runs in a goroutine and
// ctx only bounds how long the caller waits.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, title, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(markdown), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrConversion, err)}
			return
		}

		page := Page{
			Title: title,
			Date:  c.date,
			CSS:   template.CSS(c.css),         // #nosec G203 -- stylesheet chosen by the user
			Body:  template.HTML(buf.String()), // #nosec G203 -- goldmark output
		}
		var out bytes.Buffer
		if err := c.layout.Execute(&out, page); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrConversion, err)}
			return
		}
		done <- result{html: out.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
