package render

// Notes:
// - fakePlugins records every call so tests can check that card and atom
//   output is spliced in verbatim and in document order.
// - Documents are built directly in the normalized model; schema decoding
//   is covered by internal/mobiledoc.

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-mobiledoc2md/internal/mobiledoc"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakePlugins struct {
	calls []string
	err   error
}

func (f *fakePlugins) RenderCard(ctx context.Context, card mobiledoc.Card) (string, error) {
	f.calls = append(f.calls, "card:"+card.Name)
	if f.err != nil {
		return "", f.err
	}
	return "<" + card.Name + ">", nil
}

func (f *fakePlugins) RenderAtom(ctx context.Context, atom mobiledoc.Atom) (string, error) {
	f.calls = append(f.calls, "atom:"+atom.Name)
	if f.err != nil {
		return "", f.err
	}
	return "@" + atom.Value, nil
}

func text(opens []int, closes int, s string) mobiledoc.Marker {
	return mobiledoc.Marker{Kind: mobiledoc.TextMarker, Opens: opens, Closes: closes, Text: s}
}

func paragraph(tag string, markers ...mobiledoc.Marker) mobiledoc.Section {
	return mobiledoc.Section{Kind: mobiledoc.MarkupSection, Tag: tag, Markers: markers}
}

// ---------------------------------------------------------------------------
// Markers
// ---------------------------------------------------------------------------

func TestMarkers(t *testing.T) {
	t.Parallel()

	markups := []mobiledoc.Markup{
		{Tag: "B"},
		{Tag: "I"},
		{Tag: "A", Attrs: []string{"href", "http://google.com"}},
		{Tag: "script"},
		{Tag: "code"},
		{Tag: "u"},
	}

	tests := []struct {
		name    string
		markers []mobiledoc.Marker
		want    string
	}{
		{
			name: "no markers",
			want: "",
		},
		{
			name:    "plain text",
			markers: []mobiledoc.Marker{text(nil, 0, "hello world")},
			want:    "hello world",
		},
		{
			name:    "bold open and close on one marker",
			markers: []mobiledoc.Marker{text([]int{0}, 1, "hello world")},
			want:    "**hello world**",
		},
		{
			name:    "link carries href to its close",
			markers: []mobiledoc.Marker{text([]int{2}, 1, "hello world")},
			want:    "[hello world](http://google.com)",
		},
		{
			name: "interleaved closes follow the stack",
			markers: []mobiledoc.Marker{
				text([]int{0}, 0, "hello "),
				text([]int{1}, 0, "brave "),
				text(nil, 1, "new "),
				text(nil, 1, "world"),
			},
			want: "**hello *brave new *world**",
		},
		{
			name: "unknown markup absorbs its own close",
			markers: []mobiledoc.Marker{
				text([]int{0}, 0, "bold text"),
				text([]int{1, 3}, 3, `alert("markup XSS")`),
				text(nil, 0, "plain text"),
			},
			want: `**bold text*alert("markup XSS")***plain text`,
		},
		{
			name:    "pass-through markup emits nothing",
			markers: []mobiledoc.Marker{text([]int{5}, 1, "under")},
			want:    "under",
		},
		{
			name:    "inline code",
			markers: []mobiledoc.Marker{text([]int{4}, 1, "x := 1")},
			want:    "`x := 1`",
		},
		{
			name:    "extra closes are ignored",
			markers: []mobiledoc.Marker{text([]int{0}, 5, "a")},
			want:    "**a**",
		},
		{
			name: "unclosed markups are closed at the end",
			markers: []mobiledoc.Marker{
				text([]int{0}, 0, "a "),
				text([]int{1}, 0, "b"),
			},
			want: "**a *b***",
		},
		{
			name:    "html-like text passes through",
			markers: []mobiledoc.Marker{text(nil, 0, "<b>not bold</b>")},
			want:    "<b>not bold</b>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := New(&fakePlugins{}, nil)
			doc := &mobiledoc.Document{Markups: markups}

			got, err := r.Markers(context.Background(), doc, tt.markers)
			if err != nil {
				t.Fatalf("Markers() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Markers() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkers_Atom(t *testing.T) {
	t.Parallel()

	plugins := &fakePlugins{}
	r := New(plugins, nil)
	doc := &mobiledoc.Document{
		Markups: []mobiledoc.Markup{{Tag: "em"}},
		Atoms:   []mobiledoc.Atom{{Name: "mention", Value: "bob"}},
	}
	markers := []mobiledoc.Marker{
		text(nil, 0, "hi "),
		{Kind: mobiledoc.AtomMarker, Opens: []int{0}, Closes: 1, Atom: 0},
	}

	got, err := r.Markers(context.Background(), doc, markers)
	if err != nil {
		t.Fatalf("Markers() error: %v", err)
	}
	if got != "hi *@bob*" {
		t.Errorf("Markers() = %q, want %q", got, "hi *@bob*")
	}
	if len(plugins.calls) != 1 || plugins.calls[0] != "atom:mention" {
		t.Errorf("calls = %v", plugins.calls)
	}
}

func TestMarkers_AtomError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	r := New(&fakePlugins{err: boom}, nil)
	doc := &mobiledoc.Document{Atoms: []mobiledoc.Atom{{Name: "x"}}}

	_, err := r.Markers(context.Background(), doc, []mobiledoc.Marker{{Kind: mobiledoc.AtomMarker}})
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

// ---------------------------------------------------------------------------
// Document
// ---------------------------------------------------------------------------

func TestDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sections []mobiledoc.Section
		want     string
	}{
		{
			name: "empty document",
			want: "",
		},
		{
			name:     "paragraph ends with newline",
			sections: []mobiledoc.Section{paragraph("P", text(nil, 0, "hello world"))},
			want:     "hello world\n",
		},
		{
			name:     "empty paragraph still ends with newline",
			sections: []mobiledoc.Section{paragraph("p")},
			want:     "\n",
		},
		{
			name:     "heading prefix",
			sections: []mobiledoc.Section{paragraph("h2", text(nil, 0, "Title"))},
			want:     "## Title\n",
		},
		{
			name:     "blockquote prefix",
			sections: []mobiledoc.Section{paragraph("blockquote", text(nil, 0, "quoted"))},
			want:     "> quoted\n",
		},
		{
			name:     "multi-line blockquote repeats prefix",
			sections: []mobiledoc.Section{paragraph("blockquote", text(nil, 0, "first\nsecond"))},
			want:     "> first\n> second\n",
		},
		{
			name:     "multi-line pull-quote repeats prefix",
			sections: []mobiledoc.Section{paragraph("pull-quote", text(nil, 0, "a\nb\nc"))},
			want:     "> a\n> b\n> c\n",
		},
		{
			name:     "multi-line heading stays on one line",
			sections: []mobiledoc.Section{paragraph("h1", text(nil, 0, "Two\nlines"))},
			want:     "# Two lines\n",
		},
		{
			name:     "multi-line paragraph unchanged",
			sections: []mobiledoc.Section{paragraph("p", text(nil, 0, "a\nb"))},
			want:     "a\nb\n",
		},
		{
			name:     "unknown section tag keeps text only",
			sections: []mobiledoc.Section{paragraph("script", text(nil, 0, `alert("x")`))},
			want:     "alert(\"x\")\n",
		},
		{
			name: "list items",
			sections: []mobiledoc.Section{{
				Kind: mobiledoc.ListSection,
				Tag:  "ul",
				Items: [][]mobiledoc.Marker{
					{text(nil, 0, "first item")},
					{text(nil, 0, "second item")},
				},
			}},
			want: "* first item\n* second item\n",
		},
		{
			name: "unknown list tag drops bullets",
			sections: []mobiledoc.Section{{
				Kind:  mobiledoc.ListSection,
				Tag:   "script",
				Items: [][]mobiledoc.Marker{{text(nil, 0, "item")}},
			}},
			want: "item\n",
		},
		{
			name:     "image has no terminator",
			sections: []mobiledoc.Section{{Kind: mobiledoc.ImageSection, Src: "data:image/gif;base64,AAA"}},
			want:     "![](data:image/gif;base64,AAA)",
		},
		{
			name: "sections concatenate in order",
			sections: []mobiledoc.Section{
				paragraph("h1", text(nil, 0, "Doc")),
				{Kind: mobiledoc.CardSection, Card: 0},
				paragraph("p", text(nil, 0, "after")),
			},
			want: "# Doc\n<code-card>after\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := New(&fakePlugins{}, nil)
			doc := &mobiledoc.Document{
				Cards:    []mobiledoc.Card{{Name: "code-card"}},
				Sections: tt.sections,
			}

			got, err := r.Document(context.Background(), doc)
			if err != nil {
				t.Fatalf("Document() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Document() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocument_UnknownTagsNeverLeak(t *testing.T) {
	t.Parallel()

	r := New(&fakePlugins{}, nil)
	doc := &mobiledoc.Document{
		Markups: []mobiledoc.Markup{{Tag: "b"}, {Tag: "em"}, {Tag: "script"}},
		Sections: []mobiledoc.Section{
			paragraph("script", text(nil, 0, `alert("markup section XSS")`)),
			{Kind: mobiledoc.ListSection, Tag: "script", Items: [][]mobiledoc.Marker{{text(nil, 0, `alert("list section XSS")`)}}},
			paragraph("p",
				text([]int{0}, 0, "bold text"),
				text([]int{1, 2}, 3, `alert("markup XSS")`),
				text(nil, 0, "plain text"),
			),
		},
	}

	got, err := r.Document(context.Background(), doc)
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}
	if strings.Contains(got, "script") {
		t.Errorf("output leaks a dropped tag: %q", got)
	}
	if !strings.Contains(got, "list section XSS") {
		t.Errorf("output lost the list text: %q", got)
	}
}

func TestDocument_CardError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	r := New(&fakePlugins{err: boom}, nil)
	doc := &mobiledoc.Document{
		Cards:    []mobiledoc.Card{{Name: "c"}},
		Sections: []mobiledoc.Section{{Kind: mobiledoc.CardSection}},
	}

	if _, err := r.Document(context.Background(), doc); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

func TestDocument_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(&fakePlugins{}, nil)
	doc := &mobiledoc.Document{Sections: []mobiledoc.Section{paragraph("p", text(nil, 0, "x"))}}

	if _, err := r.Document(ctx, doc); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestDocument_Deterministic(t *testing.T) {
	t.Parallel()

	r := New(&fakePlugins{}, nil)
	doc := &mobiledoc.Document{
		Markups:  []mobiledoc.Markup{{Tag: "b"}},
		Sections: []mobiledoc.Section{paragraph("p", text([]int{0}, 1, "same"))},
	}

	first, err := r.Document(context.Background(), doc)
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := r.Document(context.Background(), doc)
		if err != nil {
			t.Fatalf("Document() error: %v", err)
		}
		if again != first {
			t.Fatalf("render %d = %q, want %q", i, again, first)
		}
	}
}
