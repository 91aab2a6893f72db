package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: qtf2html <command> [flags] [args]")
	fmt.Fprintln(w, "       qtf2html <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert QTF files to HTML (default)")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'qtf2html help convert' for conversion flags.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: qtf2html convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert QTF files to standalone HTML documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    QTF file or directory (optional with -i or input.defaultDir)")
	fmt.Fprintln(w, "           Directories are searched recursively for *.qtf")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <path>        QTF file or directory")
	fmt.Fprintln(w, "  -o, --output <path>       Output directory (default: comp/cache)")
	fmt.Fprintln(w, "  -e, --encoding <name>     Source charset (default: utf-8)")
	fmt.Fprintln(w, "      --pdf                 Also render <name>.pdf (requires Chrome)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       PDF rendering timeout per file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Style:")
	fmt.Fprintln(w, "  -s, --style <s>           Style name, CSS file path, or inline CSS (default: none)")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file applied after the style")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory containing styles/*.css")
	fmt.Fprintln(w, "      --no-style            Inject no stylesheet, even if configured")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page (PDF only):")
	fmt.Fprintln(w, "  -p, --page-size <s>       letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log conversion timing")
	fmt.Fprintln(w, "  -d, --debug               Log parser and pipeline details")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  qtf2html doc.qtf")
	fmt.Fprintln(w, "  qtf2html -i ./topics -o ./html --style print")
	fmt.Fprintln(w, "  qtf2html convert legacy.qtf --encoding windows-1252 --pdf")
}
