// Package countgpt counts BPE tokens in text.
//
// The model argument accepted throughout is either a tokenizer encoding
// name (like "cl100k_base") or an LLM model name (like "gpt-4"); model
// names are mapped to the right encoding, and unrecognized names fall
// back to the default encoding.
//
// Example usage:
//
//	n, err := countgpt.Count("Hello, world!", "gpt-4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(n) // 4
package countgpt

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/countgpt/countgpt/internal/resolver"
	"github.com/countgpt/countgpt/internal/tokenizer"
)

// FileStats reports the result of counting tokens in one file.
type FileStats struct {
	File       string
	Tokens     int
	Characters int
	Model      string
	Encoding   string
}

// Count returns the number of tokens in text under the given model or
// encoding name.
func Count(text, model string) (int, error) {
	codec, err := codecFor(model)
	if err != nil {
		return 0, err
	}
	return codec.Count(text), nil
}

// CountFile counts tokens in the UTF-8 file at path.
func CountFile(path, model string) (FileStats, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileStats{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	codec, err := codecFor(model)
	if err != nil {
		return FileStats{}, err
	}

	text := string(content)
	return FileStats{
		File:       path,
		Tokens:     codec.Count(text),
		Characters: utf8.RuneCountInString(text),
		Model:      model,
		Encoding:   codec.Name(),
	}, nil
}

// codecFor resolves model silently; the library API has no diagnostic
// channel, so the fallback warning is the CLI's concern.
func codecFor(model string) (*tokenizer.Codec, error) {
	res := resolver.New(tokenizer.Encodings(), nil)
	return tokenizer.New(res.Resolve(model))
}
