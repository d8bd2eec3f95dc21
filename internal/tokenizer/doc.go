// Package tokenizer wraps the tiktoken BPE encodings used for token counting.
//
// A Codec encodes text to token IDs, counts tokens, and decodes individual
// token IDs back to their raw bytes for visualization. Dictionaries load
// from data embedded in the binary where available; the rest come through
// tiktoken-go's default loader and its TIKTOKEN_CACHE_DIR cache.
//
// Example usage:
//
//	codec, err := tokenizer.New("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(codec.Count("Hello, world!"))
package tokenizer
