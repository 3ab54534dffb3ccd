package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mobiledoc2md [flags] <input>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render mobiledoc documents to Markdown.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Document file, directory, or - for stdin")
	fmt.Fprintln(w, "           Files: .json, .mobiledoc, .yaml, .yml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --html                Also write an HTML preview")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --unknown-cards <s>   Cards with no renderer: error, skip")
	fmt.Fprintln(w, "      --unknown-atoms <s>   Atoms with no renderer: error, skip")
	fmt.Fprintln(w, "      --max-depth <n>       Nested render limit (default 32)")
	fmt.Fprintln(w, "      --detect-language     Guess missing code card languages")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output and timing")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "HTML previews take their stylesheet, layout and date from the")
	fmt.Fprintln(w, "preview section of the config file.")
}
