package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdacademic <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render      Render markdown files to HTML")
	fmt.Fprintln(w, "  pdf         Render markdown files to PDF")
	fmt.Fprintln(w, "  doctor      Check the engine library and browser setup")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdacademic help <command>' for details on a specific command.")
}

func printInputUsage(w io.Writer) {
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --lib <path>          Engine library (overrides MARKDOWN_ACADEMIC_LIB)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -m, --math <s>            Math backend: katex, mathjax, mathml")
	fmt.Fprintln(w, "      --base-path <dir>     Directory for relative paths (default: input's directory)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name>        Named style: academic, plain (chrome default: academic)")
	fmt.Fprintln(w, "      --highlight           Syntax-highlight fenced code blocks")
	fmt.Fprintln(w, "      --highlight-style <s> Chroma style (default: github)")
	fmt.Fprintln(w, "      --css <path>          CSS file injected into standalone output")
}

func printOutputControlUsage(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdacademic render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown files to HTML.")
	fmt.Fprintln(w)
	printInputUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "HTML:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (- for stdout)")
	fmt.Fprintln(w, "  -s, --standalone          Emit a full HTML document")
	printOutputControlUsage(w)
}

// printPDFUsage prints usage for the pdf command.
func printPDFUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdacademic pdf <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown files to PDF.")
	fmt.Fprintln(w)
	printInputUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -e, --engine <s>          Engine: native, chrome, auto (default: auto)")
	fmt.Fprintln(w, "      --direct              Let the native engine write the file")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout for chrome (e.g. 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --paper <s>           Paper size: letter, a4")
	fmt.Fprintln(w, "      --font-size <n>       Body font size in points (default: 11)")
	fmt.Fprintln(w, "      --title-page          Add a title page")
	fmt.Fprintln(w, "      --no-page-numbers     Omit page numbers")
	fmt.Fprintln(w, "      --title <s>           Title (default: first H1, then file name)")
	printOutputControlUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "pdf":
		printPDFUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: mdacademic doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check the engine library, PDF support, and Chrome.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdacademic version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdacademic help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
