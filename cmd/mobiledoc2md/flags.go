package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags controlling config and output verbosity.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds flags forwarded to the renderer.
type renderFlags struct {
	unknownCards   string
	unknownAtoms   string
	maxDepth       int
	detectLanguage bool
}

// cliFlags holds all command-line flags.
type cliFlags struct {
	common  commonFlags
	render  renderFlags
	output  string
	workers int
	html    bool
	version bool
	help    bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output and timing")
}

// addRenderFlags adds renderer flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.unknownCards, "unknown-cards", "", "cards with no renderer: error, skip")
	fs.StringVar(&f.unknownAtoms, "unknown-atoms", "", "atoms with no renderer: error, skip")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "nested render limit (0 = default)")
	fs.BoolVar(&f.detectLanguage, "detect-language", false, "guess missing code card languages")
}

// parseFlags parses command-line flags and returns positional args.
// args excludes the program name.
func parseFlags(args []string, usage io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("mobiledoc2md", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &cliFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.html, "html", false, "also write an HTML preview")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)

	fs.Usage = func() { printUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
