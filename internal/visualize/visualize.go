package visualize

import (
	"fmt"
	"io"
	"strings"
)

// Span locates one token in the original text. Start and End are rune
// offsets, not byte offsets.
type Span struct {
	Start int
	End   int
	Text  string
}

// palette holds the background colors tokens cycle through, in order.
// 256-color codes picked for contrast between neighbors.
var palette = []string{
	"\x1b[48;5;153m",
	"\x1b[48;5;184m",
	"\x1b[48;5;214m",
	"\x1b[48;5;209m",
	"\x1b[48;5;183m",
	"\x1b[48;5;157m",
	"\x1b[48;5;156m",
	"\x1b[48;5;147m",
	"\x1b[48;5;146m",
	"\x1b[48;5;218m",
	"\x1b[48;5;222m",
	"\x1b[48;5;229m",
	"\x1b[48;5;193m",
	"\x1b[48;5;157m",
	"\x1b[48;5;122m",
}

const reset = "\x1b[0m"

// maxUnpositioned is how many tokens may fail to be located in the text
// before Spans warns that the visualization is off.
const maxUnpositioned = 5

// Spans reconstructs the approximate position of each decoded token in the
// original text.
//
// A running cursor walks the text: each token is searched for at or after
// the cursor, so repeated substrings earlier in the text are not matched
// again. Tokens that cannot be found (BPE can split a multi-byte character
// across tokens, leaving bytes that decode to nothing present in the text)
// are anchored at the cursor as a best effort. If more than maxUnpositioned
// tokens miss, one warning is written to diag for the whole call.
func Spans(text string, tokens [][]byte, diag io.Writer) []Span {
	if diag == nil {
		diag = io.Discard
	}

	runes := []rune(text)
	spans := make([]Span, 0, len(tokens))
	offset := 0
	missed := 0

	for _, token := range tokens {
		// Lossy decode: each invalid byte becomes U+FFFD, so one bad
		// token cannot abort the whole call.
		decoded := []rune(string(token))

		if p := indexRunes(runes, decoded, offset); p >= 0 {
			spans = append(spans, Span{Start: p, End: p + len(decoded), Text: string(decoded)})
			offset = p + len(decoded)
			continue
		}

		spans = append(spans, Span{Start: offset, End: offset + len(decoded), Text: string(decoded)})
		offset += len(decoded)
		missed++
	}

	if missed > maxUnpositioned {
		fmt.Fprintf(diag, "Warning: token visualization may be inaccurate (%d tokens could not be positioned)\n", missed)
	}

	return spans
}

// indexRunes returns the index of the first occurrence of sub in s at or
// after from, or -1 if there is none.
func indexRunes(s, sub []rune, from int) int {
	if from < 0 {
		from = 0
	}
	if len(sub) == 0 {
		if from <= len(s) {
			return from
		}
		return -1
	}
	for i := from; i+len(sub) <= len(s); i++ {
		j := 0
		for j < len(sub) && s[i+j] == sub[j] {
			j++
		}
		if j == len(sub) {
			return i
		}
	}
	return -1
}

// Render writes text to w with each span's substring wrapped in a
// background color, cycling through the palette by token index.
//
// With no spans the text is written unchanged and there is no header.
// Gaps between spans and text after the last span are written verbatim,
// uncolored.
func Render(w io.Writer, text string, spans []Span) {
	if len(spans) == 0 {
		fmt.Fprintln(w, text)
		return
	}

	runes := []rune(text)
	var b strings.Builder
	last := 0

	for i, span := range spans {
		// Anchored spans can point past the end of the text; clamp
		// rather than color text that is not there.
		if gap := min(span.Start, len(runes)); gap > last {
			b.WriteString(string(runes[last:gap]))
		}
		b.WriteString(palette[i%len(palette)])
		b.WriteString(span.Text)
		b.WriteString(reset)
		if span.End > last {
			last = span.End
		}
	}
	if last < len(runes) {
		b.WriteString(string(runes[last:]))
	}

	fmt.Fprintf(w, "Tokens: %d        Characters: %d\n\n", len(spans), len(runes))
	fmt.Fprintln(w, b.String())
}
