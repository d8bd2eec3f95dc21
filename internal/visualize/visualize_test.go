package visualize

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toTokens(parts ...string) [][]byte {
	tokens := make([][]byte, len(parts))
	for i, p := range parts {
		tokens[i] = []byte(p)
	}
	return tokens
}

func TestSpans(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		tokens [][]byte
		want   []Span
	}{
		{
			name:   "empty",
			text:   "",
			tokens: nil,
			want:   []Span{},
		},
		{
			name:   "hello world",
			text:   "Hello, world!",
			tokens: toTokens("Hello", ",", " world", "!"),
			want: []Span{
				{Start: 0, End: 5, Text: "Hello"},
				{Start: 5, End: 6, Text: ","},
				{Start: 6, End: 12, Text: " world"},
				{Start: 12, End: 13, Text: "!"},
			},
		},
		{
			name:   "repeated substring matches after cursor",
			text:   "aa aa",
			tokens: toTokens("aa", " ", "aa"),
			want: []Span{
				{Start: 0, End: 2, Text: "aa"},
				{Start: 2, End: 3, Text: " "},
				{Start: 3, End: 5, Text: "aa"},
			},
		},
		{
			name:   "unfound token anchored at cursor",
			text:   "ab",
			tokens: toTokens("a", "x", "b"),
			want: []Span{
				{Start: 0, End: 1, Text: "a"},
				// "x" is nowhere in the text: anchored, cursor advances.
				{Start: 1, End: 2, Text: "x"},
				// The advance pushed the cursor past "b", so it anchors too.
				{Start: 2, End: 3, Text: "b"},
			},
		},
		{
			name:   "rune offsets for multi-byte text",
			text:   "héllo wörld",
			tokens: toTokens("héllo", " wörld"),
			want: []Span{
				{Start: 0, End: 5, Text: "héllo"},
				{Start: 5, End: 11, Text: " wörld"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var diag bytes.Buffer
			got := Spans(tt.text, tt.tokens, &diag)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, diag.String(), "no warning expected")
		})
	}
}

func TestSpans_InvalidBytesReplaced(t *testing.T) {
	// A lone continuation byte is not valid UTF-8 on its own; it must
	// decode to the replacement character, not break the call.
	spans := Spans("abc", [][]byte{{0xA9}}, nil)
	require.Len(t, spans, 1)
	assert.Equal(t, "�", spans[0].Text)
	assert.Equal(t, 0, spans[0].Start)
	assert.Equal(t, 1, spans[0].End)
}

func TestSpans_WarnsWhenTooManyMiss(t *testing.T) {
	var diag bytes.Buffer
	tokens := toTokens("x", "x", "x", "x", "x", "x", "x")

	spans := Spans("", tokens, &diag)
	require.Len(t, spans, 7)

	warning := diag.String()
	assert.Contains(t, warning, "may be inaccurate")
	assert.Equal(t, 1, strings.Count(warning, "Warning:"), "one warning per call, not per miss")
}

func TestSpans_NoWarningAtThreshold(t *testing.T) {
	var diag bytes.Buffer
	tokens := toTokens("x", "x", "x", "x", "x")

	Spans("", tokens, &diag)
	assert.Empty(t, diag.String())
}

// For tokens that reconstruct perfectly, concatenating the span texts in
// order reproduces the input.
func TestSpans_Roundtrip(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog"
	tokens := toTokens("The", " quick", " brown", " fox", " jumps", " over", " the", " lazy", " dog")

	var joined strings.Builder
	for _, span := range Spans(text, tokens, nil) {
		joined.WriteString(span.Text)
	}
	assert.Equal(t, text, joined.String())
}

func TestRender_EmptySpans(t *testing.T) {
	var out bytes.Buffer
	Render(&out, "plain text", nil)
	assert.Equal(t, "plain text\n", out.String())
}

func TestRender_HelloWorld(t *testing.T) {
	text := "Hello, world!"
	spans := Spans(text, toTokens("Hello", ",", " world", "!"), nil)

	var out bytes.Buffer
	Render(&out, text, spans)

	want := "Tokens: 4        Characters: 13\n\n" +
		"\x1b[48;5;153mHello\x1b[0m" +
		"\x1b[48;5;184m,\x1b[0m" +
		"\x1b[48;5;214m world\x1b[0m" +
		"\x1b[48;5;209m!\x1b[0m\n"
	assert.Equal(t, want, out.String())
}

func TestRender_GapsAndTrailing(t *testing.T) {
	text := "a b c"
	spans := Spans(text, toTokens("a", "b"), nil)

	var out bytes.Buffer
	Render(&out, text, spans)

	// The space between the spans and the trailing " c" stay uncolored.
	want := "Tokens: 2        Characters: 5\n\n" +
		"\x1b[48;5;153ma\x1b[0m" +
		" " +
		"\x1b[48;5;184mb\x1b[0m" +
		" c\n"
	assert.Equal(t, want, out.String())
}

func TestRender_PaletteCycles(t *testing.T) {
	parts := make([]string, len(palette)+1)
	for i := range parts {
		parts[i] = "a"
	}
	text := strings.Repeat("a", len(parts))

	var out bytes.Buffer
	Render(&out, text, Spans(text, toTokens(parts...), nil))

	// Token len(palette) wraps back to the first color.
	assert.Equal(t, 2, strings.Count(out.String(), palette[0]))
}

func TestRender_CharacterCountIsRunes(t *testing.T) {
	text := "héllo wörld"
	spans := Spans(text, toTokens("héllo", " wörld"), nil)

	var out bytes.Buffer
	Render(&out, text, spans)
	assert.Contains(t, out.String(), "Tokens: 2        Characters: 11\n")
}

func TestRender_AnchoredSpanPastEnd(t *testing.T) {
	// Spans from unfound tokens can extend past the text; Render must not
	// panic and must not invent trailing text.
	text := "ab"
	spans := Spans(text, toTokens("ab", "xyz"), nil)

	var out bytes.Buffer
	Render(&out, text, spans)
	assert.Contains(t, out.String(), "\x1b[48;5;184mxyz\x1b[0m")
}

func TestIndexRunes(t *testing.T) {
	tests := []struct {
		name string
		s    string
		sub  string
		from int
		want int
	}{
		{name: "found at start", s: "hello", sub: "he", from: 0, want: 0},
		{name: "found after cursor", s: "abab", sub: "ab", from: 1, want: 2},
		{name: "not found before cursor", s: "abc", sub: "a", from: 1, want: -1},
		{name: "not found at all", s: "abc", sub: "z", from: 0, want: -1},
		{name: "empty sub", s: "abc", sub: "", from: 2, want: 2},
		{name: "empty sub past end", s: "abc", sub: "", from: 4, want: -1},
		{name: "sub longer than rest", s: "abc", sub: "bcd", from: 1, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := indexRunes([]rune(tt.s), []rune(tt.sub), tt.from)
			assert.Equal(t, tt.want, got)
		})
	}
}
