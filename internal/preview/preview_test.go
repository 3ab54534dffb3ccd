package preview

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "heading with id",
			input:        "# Hello World\n",
			wantContains: []string{"<!DOCTYPE html>", "<h1", `id="hello-world"`, "Hello World</h1>"},
		},
		{
			name:         "rendered markups",
			input:        "**bold** and *em* and [link](/x)\n",
			wantContains: []string{"<strong>bold</strong>", "<em>em</em>", `<a href="/x">link</a>`},
		},
		{
			name:         "bullets",
			input:        "* first item\n* second item\n",
			wantContains: []string{"<ul>", "<li>first item</li>", "<li>second item</li>"},
		},
		{
			name:         "strikethrough",
			input:        "~~gone~~\n",
			wantContains: []string{"<del>gone</del>"},
		},
		{
			name:         "blockquote",
			input:        "> quoted\n",
			wantContains: []string{"<blockquote>", "quoted"},
		},
		{
			name:         "fenced code is highlighted",
			input:        "```go\nfunc main() {}\n```",
			wantContains: []string{"<pre", "style="},
		},
		{
			name:         "image",
			input:        "![](a.png)",
			wantContains: []string{`<img src="a.png" alt="" />`},
		},
		{
			name:         "raw html is omitted by default",
			input:        "<script>alert(1)</script>\n",
			wantContains: []string{"<!-- raw HTML omitted -->"},
			wantNot:      []string{"<script>"},
		},
	}

	conv := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), "doc", tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() missing %q in:\n%s", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("ToHTML() should not contain %q", not)
				}
			}
		})
	}
}

func TestGoldmarkConverter_RawHTML(t *testing.T) {
	t.Parallel()

	got, err := New(WithRawHTML()).ToHTML(context.Background(), "doc", "<hr class=\"x\">\n")
	if err != nil {
		t.Fatalf("ToHTML() error: %v", err)
	}
	if !strings.Contains(got, `<hr class="x">`) {
		t.Errorf("raw HTML should pass through:\n%s", got)
	}
}

func TestGoldmarkConverter_TitleEscaped(t *testing.T) {
	t.Parallel()

	got, err := New().ToHTML(context.Background(), "a<b>", "x")
	if err != nil {
		t.Fatalf("ToHTML() error: %v", err)
	}
	if !strings.Contains(got, "<title>a&lt;b&gt;</title>") {
		t.Errorf("title not escaped:\n%s", got)
	}
}

func TestGoldmarkConverter_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().ToHTML(ctx, "doc", "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestGoldmarkConverter_CSS(t *testing.T) {
	t.Parallel()

	got, err := New(WithCSS("body { color: red; }")).ToHTML(context.Background(), "doc", "x")
	if err != nil {
		t.Fatalf("ToHTML() error: %v", err)
	}
	if !strings.Contains(got, "<style>body { color: red; }</style>") {
		t.Errorf("stylesheet not inlined:\n%s", got)
	}

	plain, err := New().ToHTML(context.Background(), "doc", "x")
	if err != nil {
		t.Fatalf("ToHTML() error: %v", err)
	}
	if strings.Contains(plain, "<style>") {
		t.Errorf("no stylesheet expected:\n%s", plain)
	}
}

func TestGoldmarkConverter_Layout(t *testing.T) {
	t.Parallel()

	layout, err := ParseLayout(`<main data-title="{{.Title}}">{{.Body}}</main>`)
	if err != nil {
		t.Fatalf("ParseLayout() error: %v", err)
	}

	got, err := New(WithLayout(layout)).ToHTML(context.Background(), `a"b`, "**x**")
	if err != nil {
		t.Fatalf("ToHTML() error: %v", err)
	}
	want := `<main data-title="a&#34;b"><p><strong>x</strong></p>` + "\n</main>"
	if got != want {
		t.Errorf("ToHTML() = %q, want %q", got, want)
	}
}

func TestParseLayout_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := ParseLayout("{{.Title"); !errors.Is(err, ErrLayout) {
		t.Errorf("ParseLayout() error = %v, want ErrLayout", err)
	}
}

func TestGoldmarkConverter_LayoutExecutionError(t *testing.T) {
	t.Parallel()

	layout, err := ParseLayout("{{.Missing}}")
	if err != nil {
		t.Fatalf("ParseLayout() error: %v", err)
	}
	if _, err := New(WithLayout(layout)).ToHTML(context.Background(), "doc", "x"); !errors.Is(err, ErrConversion) {
		t.Errorf("ToHTML() error = %v, want ErrConversion", err)
	}
}

func TestGoldmarkConverter_Date(t *testing.T) {
	t.Parallel()

	got, err := New(WithDate("2024-03-05")).ToHTML(context.Background(), "doc", "x")
	if err != nil {
		t.Fatalf("ToHTML() error: %v", err)
	}
	if !strings.Contains(got, "<footer>Rendered 2024-03-05</footer>") {
		t.Errorf("date footer missing:\n%s", got)
	}

	plain, err := New().ToHTML(context.Background(), "doc", "x")
	if err != nil {
		t.Fatalf("ToHTML() error: %v", err)
	}
	if strings.Contains(plain, "<footer>") {
		t.Errorf("no footer expected without a date:\n%s", plain)
	}
}
