// Package main provides the countgpt CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/countgpt/countgpt/internal/resolver"
	"github.com/countgpt/countgpt/internal/tokenizer"
	"github.com/countgpt/countgpt/internal/visualize"
)

type options struct {
	model      string
	verbose    bool
	listModels bool
	colorize   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.model, "model", resolver.DefaultEncoding, "tokenizer encoding or LLM model name")
	flag.StringVar(&opts.model, "m", resolver.DefaultEncoding, "shorthand for -model")
	flag.BoolVar(&opts.verbose, "verbose", false, "show detailed information")
	flag.BoolVar(&opts.verbose, "v", false, "shorthand for -verbose")
	flag.BoolVar(&opts.listModels, "list-models", false, "list supported models and exit")
	flag.BoolVar(&opts.listModels, "l", false, "shorthand for -list-models")
	flag.BoolVar(&opts.colorize, "color", false, "show how the text splits into tokens, one background color per token")
	flag.BoolVar(&opts.colorize, "c", false, "shorthand for -color")
	flag.Usage = func() { printUsage(os.Stderr) }
	flag.Parse()

	// Only hand run a stdin reader when input is actually piped in.
	var stdin io.Reader
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		stdin = os.Stdin
	}

	os.Exit(run(opts, flag.Args(), stdin, os.Stdout, os.Stderr))
}

// run executes one CLI invocation. stdin is nil when the process is
// attached to a terminal with nothing piped in.
func run(opts options, files []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if opts.listModels {
		printModels(stdout)
		return 0
	}

	res := resolver.New(tokenizer.Encodings(), stderr)
	encoding := res.Resolve(opts.model)
	codec, err := tokenizer.New(encoding)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintln(stderr, "Use --list-models to see available options.")
		return 1
	}

	switch {
	case len(files) > 0:
		return runFiles(opts, codec, files, stdout, stderr)
	case stdin != nil:
		return runStdin(opts, codec, stdin, stdout, stderr)
	default:
		// No files and no pipe: show help.
		printUsage(stdout)
		return 0
	}
}

func runStdin(opts options, codec *tokenizer.Codec, stdin io.Reader, stdout, stderr io.Writer) int {
	content, err := io.ReadAll(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading stdin: %v\n", err)
		return 1
	}
	text := string(content)

	if opts.colorize {
		colorize(codec, text, stdout, stderr)
		return 0
	}

	if opts.verbose {
		fmt.Fprintln(stdout, "Stdin (piped input):")
		printVerbose(stdout, opts.model, codec, text)
	} else {
		fmt.Fprintln(stdout, codec.Count(text))
	}
	return 0
}

func runFiles(opts options, codec *tokenizer.Codec, files []string, stdout, stderr io.Writer) int {
	total := 0

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			// Report and keep going; the other files still count.
			fmt.Fprintf(stderr, "Error reading %s: %v\n", path, err)
			continue
		}
		text := string(content)

		if opts.colorize {
			colorize(codec, text, stdout, stderr)
			continue
		}

		count := codec.Count(text)
		total += count
		if opts.verbose {
			fmt.Fprintf(stdout, "%s:\n", path)
			printVerbose(stdout, opts.model, codec, text)
		} else {
			fmt.Fprintf(stdout, "%s: %d\n", path, count)
		}
	}

	if len(files) > 1 && !opts.colorize {
		if opts.verbose {
			fmt.Fprintf(stdout, "Total tokens across all files: %d\n", total)
		} else {
			fmt.Fprintf(stdout, "Total: %d\n", total)
		}
	}
	return 0
}

func printVerbose(w io.Writer, model string, codec *tokenizer.Codec, text string) {
	if model != codec.Name() {
		fmt.Fprintf(w, "  Model: %s (using %s tokenizer)\n", model, codec.Name())
	} else {
		fmt.Fprintf(w, "  Model: %s\n", model)
	}
	fmt.Fprintf(w, "  Token count: %d\n", codec.Count(text))
	fmt.Fprintf(w, "  Character count: %d\n", utf8.RuneCountInString(text))
}

func colorize(codec *tokenizer.Codec, text string, stdout, stderr io.Writer) {
	ids := codec.Encode(text)
	spans := visualize.Spans(text, codec.TokenBytes(ids), stderr)
	visualize.Render(stdout, text, spans)
}

func printModels(w io.Writer) {
	res := resolver.New(tokenizer.Encodings(), nil)

	fmt.Fprintln(w, "Available tokenizer models:")
	encodings := tokenizer.Encodings()
	sort.Strings(encodings)
	for _, name := range encodings {
		fmt.Fprintf(w, "  %s\n", name)
	}

	groups := []struct {
		title  string
		family resolver.Family
	}{
		{"Anthropic Models", resolver.FamilyAnthropic},
		{"OpenAI Models", resolver.FamilyOpenAI},
		{"Shorthands", resolver.FamilyShorthand},
		{"Other Models", resolver.FamilyOther},
	}

	models := resolver.Models()
	sort.Strings(models)
	for _, group := range groups {
		fmt.Fprintf(w, "\n%s:\n", group.title)
		for _, model := range models {
			if family, ok := resolver.ModelFamily(model); ok && family == group.family {
				fmt.Fprintf(w, "  %s (uses %s)\n", model, res.Resolve(model))
			}
		}
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: countgpt [OPTIONS] [FILES]...

Count tokens in text files or from standard input.

You can specify either a tokenizer encoding (like cl100k_base) or an
actual LLM model name (like gpt-4, gpt-3.5-turbo) to count tokens.

Options:
  -m, -model NAME   Tokenizer encoding or LLM model name. Default: cl100k_base
  -v, -verbose      Show detailed information
  -l, -list-models  List all supported models and exit
  -c, -color        Show token boundaries with background colors

Examples:
  countgpt file.txt
  countgpt file1.txt file2.md
  countgpt -m gpt-4 file.txt
  cat file.txt | countgpt
  echo "Hello world" | countgpt -c
`)
}
