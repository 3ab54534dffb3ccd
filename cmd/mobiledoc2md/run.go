package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-mobiledoc2md"
	"github.com/alnah/go-mobiledoc2md/internal/assets"
	"github.com/alnah/go-mobiledoc2md/internal/config"
	"github.com/alnah/go-mobiledoc2md/internal/dateutil"
	"github.com/alnah/go-mobiledoc2md/internal/fileutil"
	"github.com/alnah/go-mobiledoc2md/internal/hints"
	"github.com/alnah/go-mobiledoc2md/internal/preview"
)

// stdinArg is the positional argument that selects stdin.
const stdinArg = "-"

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input specified")
	ErrReadInput          = errors.New("failed to read document")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrRenderFailed       = errors.New("some documents failed to render")
)

// runOptions groups what every file render shares.
type runOptions struct {
	cfg     *config.Config
	preview preview.Converter // nil unless HTML previews are written
	logger  *log.Logger
}

// run orchestrates one CLI invocation.
func run(ctx context.Context, positional []string, flags *cliFlags, env *Environment, logger *log.Logger) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if len(positional) == 0 {
		return ErrNoInput
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	}

	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		var err error
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}

	opts := &runOptions{cfg: cfg, logger: logger}
	if cfg.Preview.HTML {
		conv, err := newPreview(cfg.Preview, env.Now())
		if err != nil {
			return fmt.Errorf("preparing HTML preview: %w", err)
		}
		opts.preview = conv
	}

	poolSize := mobiledoc2md.ResolvePoolSize(flags.workers)
	rendererPool, err := mobiledoc2md.NewRendererPool(poolSize, rendererOptions(cfg, logger)...)
	if err != nil {
		return err
	}
	defer rendererPool.Close()
	pool := &poolAdapter{pool: rendererPool}

	if positional[0] == stdinArg {
		return renderStdin(ctx, pool, flags.output, env, opts)
	}

	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	jobs, err := fileutil.Discover(positional[0], outputDir, cfg.Output.Extension)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(jobs) == 0 {
		return fmt.Errorf("%w: no documents found in %s", ErrNoInput, positional[0])
	}
	logger.Debug("discovered documents", "count", len(jobs), "workers", min(poolSize, len(jobs)))

	results := renderBatch(ctx, pool, jobs, opts, env.Now)
	return summarize(results, logger)
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) error {
	if flags.render.unknownCards != "" {
		cfg.Render.UnknownCards = flags.render.unknownCards
	}
	if flags.render.unknownAtoms != "" {
		cfg.Render.UnknownAtoms = flags.render.unknownAtoms
	}
	if flags.render.maxDepth != 0 {
		cfg.Render.MaxDepth = flags.render.maxDepth
	}
	if flags.render.detectLanguage {
		cfg.Render.DetectCodeLanguage = true
	}
	if flags.html {
		cfg.Preview.HTML = true
	}
	return cfg.Validate()
}

// rendererOptions translates config into renderer options.
func rendererOptions(cfg *config.Config, logger *log.Logger) []mobiledoc2md.Option {
	opts := []mobiledoc2md.Option{mobiledoc2md.WithLogger(logger)}

	if cfg.Render.MaxDepth > 0 {
		opts = append(opts, mobiledoc2md.WithMaxDepth(cfg.Render.MaxDepth))
	}
	if cfg.Render.DetectCodeLanguage {
		opts = append(opts, mobiledoc2md.WithCodeLanguageDetection())
	}
	if cfg.CardOptions != nil {
		opts = append(opts, mobiledoc2md.WithCardOptions(cfg.CardOptions))
	}
	if strings.EqualFold(cfg.Render.UnknownCards, config.PolicySkip) {
		opts = append(opts, mobiledoc2md.WithUnknownCardHandler(skipUnknown(mobiledoc2md.KindCard, logger)))
	}
	if strings.EqualFold(cfg.Render.UnknownAtoms, config.PolicySkip) {
		opts = append(opts, mobiledoc2md.WithUnknownAtomHandler(skipUnknown(mobiledoc2md.KindAtom, logger)))
	}
	return opts
}

// skipUnknown renders unknown cards or atoms as nothing.
func skipUnknown(kind mobiledoc2md.Kind, logger *log.Logger) mobiledoc2md.RenderFunc {
	return func(ctx context.Context, args mobiledoc2md.RenderArgs) (any, error) {
		logger.Warn("skipping "+kind.String()+" with no renderer", "name", args.Env.Name)
		return nil, nil
	}
}

// newPreview builds the HTML converter, resolving the stylesheet and layout
// from the assets directory first, then the built-in assets.
func newPreview(cfg config.PreviewConfig, now time.Time) (*preview.GoldmarkConverter, error) {
	resolver, err := assets.NewAssetResolver(cfg.AssetsDir)
	if err != nil {
		return nil, err
	}

	css, err := resolver.LoadStyle(cmp.Or(cfg.Stylesheet, assets.DefaultStyleName))
	if err != nil {
		return nil, err
	}
	layoutText, err := resolver.LoadLayout(cmp.Or(cfg.Layout, assets.DefaultLayoutName))
	if err != nil {
		return nil, err
	}
	layout, err := preview.ParseLayout(layoutText)
	if err != nil {
		return nil, err
	}

	date, err := dateutil.Format(cfg.Date, now)
	if err != nil {
		return nil, err
	}

	opts := []preview.Option{preview.WithCSS(css), preview.WithLayout(layout), preview.WithDate(date)}
	if cfg.RawHTML {
		opts = append(opts, preview.WithRawHTML())
	}
	if cfg.Style != "" {
		opts = append(opts, preview.WithStyle(cfg.Style))
	}
	return preview.New(opts...), nil
}

// renderStdin renders one document from stdin. Output goes to stdout (HTML
// when previews are on) unless -o names a file.
func renderStdin(ctx context.Context, pool Pool, output string, env *Environment, opts *runOptions) error {
	data, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
	}

	doc, err := decodeDocument(data, looksLikeYAML(data))
	if err != nil {
		return err
	}

	r := pool.Acquire()
	defer pool.Release(r)

	rendered, err := r.Render(ctx, doc)
	if err != nil {
		return err
	}
	defer rendered.Teardown()

	if output != "" {
		return writeOutputs(ctx, output, "stdin", rendered.Result, opts)
	}

	out := rendered.Result
	if opts.preview != nil {
		out, err = opts.preview.ToHTML(ctx, "stdin", rendered.Result)
		if err != nil {
			return err
		}
	}
	if _, err := io.WriteString(env.Stdout, out); err != nil {
		return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
	}
	return nil
}

// looksLikeYAML reports whether stdin data is not a JSON object.
func looksLikeYAML(data []byte) bool {
	trimmed := strings.TrimSpace(string(data))
	return !strings.HasPrefix(trimmed, "{")
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > mobiledoc2md.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, mobiledoc2md.MaxPoolSize)
	}
	return nil
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var pluginErr *mobiledoc2md.PluginError
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, fileutil.ErrUnsupportedInput):
		return hints.ForUnsupportedInput(fileutil.InputExtensions)
	case errors.Is(err, mobiledoc2md.ErrRecursionLimit):
		return hints.ForRecursionLimit()
	case errors.Is(err, mobiledoc2md.ErrPluginNotFound) && errors.As(err, &pluginErr):
		return hints.ForPluginNotFound(pluginErr.Kind.String())
	case errors.Is(err, mobiledoc2md.ErrFormat):
		return hints.ForFormat(mobiledoc2md.SupportedVersions())
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, assets.ErrStyleNotFound), errors.Is(err, assets.ErrLayoutNotFound):
		return hints.ForPreviewAsset(assets.DefaultStyleName)
	}
	return ""
}

// titleFor derives a preview page title from an input path.
func titleFor(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
