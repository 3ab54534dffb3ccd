package mobiledoc2md

import (
	"context"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// Built-in card names, as written in documents.
const (
	CodeCardName  = "code-card"
	HTMLCardName  = "html"
	ImageCardName = "image-card"
)

// minFence is the shortest code fence the code card emits.
const minFence = 3

// CodeCard renders {code, language} payloads as a fenced code block.
var CodeCard = Plugin{Name: CodeCardName, Type: RenderType, Render: codeRenderer(false)}

// HTMLCard passes the payload's html field through unchanged.
var HTMLCard = Plugin{Name: HTMLCardName, Type: RenderType, Render: renderHTMLCard}

// ImageCard renders a {src} payload as a Markdown image, or nothing without src.
var ImageCard = Plugin{Name: ImageCardName, Type: RenderType, Render: renderImageCard}

// builtinCards returns the cards every Renderer starts with.
func builtinCards(detectLanguage bool) []Plugin {
	code := CodeCard
	if detectLanguage {
		code.Render = codeRenderer(true)
	}
	return []Plugin{code, HTMLCard, ImageCard}
}

func codeRenderer(detectLanguage bool) RenderFunc {
	return func(ctx context.Context, args RenderArgs) (any, error) {
		code := payloadString(args.Payload, "code")
		language := payloadString(args.Payload, "language")
		if language == "" && detectLanguage {
			language = detectCodeLanguage(code)
		}

		fence := strings.Repeat("`", fenceLength(code))
		return strings.Join([]string{fence + language, code, fence}, "\n"), nil
	}
}

func renderHTMLCard(ctx context.Context, args RenderArgs) (any, error) {
	return payloadString(args.Payload, "html"), nil
}

func renderImageCard(ctx context.Context, args RenderArgs) (any, error) {
	src := payloadString(args.Payload, "src")
	if src == "" {
		return "", nil
	}
	return "![](" + src + ")", nil
}

// fenceLength returns a backtick count longer than any backtick run in code,
// so the code cannot close its own fence.
func fenceLength(code string) int {
	longest, run := 0, 0
	for _, c := range code {
		if c == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return max(minFence, longest+1)
}

// detectCodeLanguage guesses a fence language with chroma's lexer analysers.
// Returns "" when no lexer claims the code.
func detectCodeLanguage(code string) string {
	if strings.TrimSpace(code) == "" {
		return ""
	}
	lexer := lexers.Analyse(code)
	if lexer == nil {
		return ""
	}
	cfg := lexer.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}

// payloadString reads a string field from a map payload.
func payloadString(payload any, key string) string {
	m, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
