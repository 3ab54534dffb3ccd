// Package tags holds the whitelist of section and markup tag names the
// renderer is allowed to emit, and the Markdown syntax each one maps to.
//
// Lookups are case-insensitive: documents written by different editors use
// "P" and "p", "B" and "b" interchangeably. Any tag not listed here is
// dropped by the renderer; its text is kept but the tag never reaches the
// output.
package tags

import "strings"

// Bullet prefixes every list item. Only unordered bullets are emitted.
const Bullet = "* "

// Syntax is the pair of delimiters a markup tag wraps its text with.
type Syntax struct {
	Open  string
	Close string
}

// sectionPrefixes maps markup section tags to their block prefix.
var sectionPrefixes = map[string]string{
	"p":          "",
	"h1":         "# ",
	"h2":         "## ",
	"h3":         "### ",
	"h4":         "#### ",
	"h5":         "##### ",
	"h6":         "###### ",
	"blockquote": "> ",
	"pull-quote": "> ",
	"aside":      "> ",
}

var listTags = map[string]bool{
	"ul": true,
	"ol": true,
}

// markupSyntax maps inline markup tags to their delimiters. Links are
// handled separately because their closing delimiter carries the href.
var markupSyntax = map[string]Syntax{
	"b":      {Open: "**", Close: "**"},
	"strong": {Open: "**", Close: "**"},
	"i":      {Open: "*", Close: "*"},
	"em":     {Open: "*", Close: "*"},
	"s":      {Open: "~~", Close: "~~"},
	"strike": {Open: "~~", Close: "~~"},
	"del":    {Open: "~~", Close: "~~"},
	"code":   {Open: "`", Close: "`"},
	"u":      {},
	"sub":    {},
	"sup":    {},
	"mark":   {},
}

// LinkTag is the markup tag rendered as a Markdown link.
const LinkTag = "a"

// IsSectionTag reports whether tag may wrap a markup section.
func IsSectionTag(tag string) bool {
	_, ok := sectionPrefixes[normalize(tag)]
	return ok
}

// SectionPrefix returns the block prefix for a whitelisted section tag.
// The boolean is false for tags outside the whitelist.
func SectionPrefix(tag string) (string, bool) {
	prefix, ok := sectionPrefixes[normalize(tag)]
	return prefix, ok
}

// IsListTag reports whether tag may wrap a list section.
func IsListTag(tag string) bool {
	return listTags[normalize(tag)]
}

// IsMarkupTag reports whether tag may be rendered as inline markup.
func IsMarkupTag(tag string) bool {
	t := normalize(tag)
	if t == LinkTag {
		return true
	}
	_, ok := markupSyntax[t]
	return ok
}

// IsLink reports whether tag is the link markup tag.
func IsLink(tag string) bool {
	return normalize(tag) == LinkTag
}

// MarkupSyntax returns the delimiters for a whitelisted, non-link markup tag.
// Pass-through tags return an empty Syntax and true.
func MarkupSyntax(tag string) (Syntax, bool) {
	s, ok := markupSyntax[normalize(tag)]
	return s, ok
}

// LinkSyntax returns the delimiters for a link pointing at href. An href
// with whitespace, parentheses or angle brackets is written in the <...>
// destination form so the link still parses.
func LinkSyntax(href string) Syntax {
	return Syntax{Open: "[", Close: "](" + linkDestination(href) + ")"}
}

// destinationEscaper escapes what may not appear inside <...>.
var destinationEscaper = strings.NewReplacer(`\`, `\\`, "<", `\<`, ">", `\>`, "\n", "%0A", "\r", "%0D")

func linkDestination(href string) string {
	if !strings.ContainsAny(href, " \t\n\r()<>") {
		return href
	}
	return "<" + destinationEscaper.Replace(href) + ">"
}

func normalize(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
