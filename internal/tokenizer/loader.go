package tokenizer

import (
	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// dictLoader serves BPE dictionaries from the offline embedded set and
// falls back to tiktoken-go's default loader for dictionaries the
// embedded set does not carry (o200k_base, as of tiktoken-go-loader
// v0.0.1). The fallback honors TIKTOKEN_CACHE_DIR, so the dictionary is
// fetched at most once per cache.
type dictLoader struct {
	offline  tiktoken.BpeLoader
	fallback tiktoken.BpeLoader
}

func newDictLoader() dictLoader {
	return dictLoader{
		offline:  tiktoken_loader.NewOfflineLoader(),
		fallback: tiktoken.NewDefaultBpeLoader(),
	}
}

func (l dictLoader) LoadTiktokenBpe(file string) (map[string]int, error) {
	ranks, err := l.offline.LoadTiktokenBpe(file)
	if err == nil {
		return ranks, nil
	}
	return l.fallback.LoadTiktokenBpe(file)
}
