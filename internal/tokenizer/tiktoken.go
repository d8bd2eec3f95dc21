package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// knownEncodings lists every encoding the underlying BPE registry accepts.
// Keep in sync with tiktoken-go's encoding registry.
var knownEncodings = []string{
	"cl100k_base",
	"o200k_base",
	"p50k_base",
	"p50k_edit",
	"r50k_base",
}

// loaderOnce installs the dictionary loader exactly once, so encodings
// load from embedded data where possible instead of fetching over the
// network.
var loaderOnce sync.Once

// Codec wraps one tiktoken BPE encoding.
//
// Supported encodings:
//   - cl100k_base: GPT-4, GPT-3.5-turbo, text-embedding-ada-002
//   - o200k_base: GPT-4o, o1
//   - p50k_base, p50k_edit, r50k_base: GPT-3 era models
type Codec struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// New creates a Codec for the named encoding.
//
// The encoding name must be one of Encodings(); anything else is an error.
func New(encodingName string) (*Codec, error) {
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(newDictLoader())
	})

	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding %q: %w", encodingName, err)
	}

	return &Codec{
		encoding: encoding,
		name:     encodingName,
	}, nil
}

// Encode converts text to token IDs. Special token markers in the input
// are tokenized as plain text.
func (c *Codec) Encode(text string) []int {
	return c.encoding.Encode(text, nil, nil)
}

// Count returns the number of tokens text encodes to.
func (c *Codec) Count(text string) int {
	return len(c.Encode(text))
}

// TokenBytes decodes each token ID to its raw byte sequence.
//
// A single token's bytes are not guaranteed to be valid UTF-8: BPE merges
// can split a multi-byte character across neighboring tokens.
func (c *Codec) TokenBytes(ids []int) [][]byte {
	out := make([][]byte, len(ids))
	for i := range ids {
		out[i] = []byte(c.encoding.Decode(ids[i : i+1]))
	}
	return out
}

// Decode converts token IDs back to text.
func (c *Codec) Decode(ids []int) string {
	return c.encoding.Decode(ids)
}

// Name returns the encoding name the Codec was created with.
func (c *Codec) Name() string {
	return c.name
}

// Encodings returns the names of all supported encodings.
func Encodings() []string {
	out := make([]string, len(knownEncodings))
	copy(out, knownEncodings)
	return out
}
