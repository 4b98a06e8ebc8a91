package semantic

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// localDims is the fixed dimensionality of the hashing embedder. 256 buckets
// keep unrelated texts from colliding while the vectors stay tiny.
const localDims = 256

// LocalEmbedder is a deterministic offline embedder: term frequencies of
// unigrams and bigrams are feature-hashed into a fixed-size vector and L2
// normalized. It captures lexical overlap rather than meaning, which is the
// behavior of the original fast-mode matcher, and it never fails, which makes
// it the fallback when no embedding API is configured.
type LocalEmbedder struct {
	dims int
}

func NewLocalEmbedder() *LocalEmbedder {
	return &LocalEmbedder{dims: localDims}
}

// Embed hashes the text's terms into a normalized frequency vector. The
// context is accepted for interface symmetry; the computation is local.
func (l *LocalEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float64, l.dims)

	tokens := tokenize(text)
	for i, tok := range tokens {
		vec[l.bucket(tok)]++
		if i+1 < len(tokens) {
			vec[l.bucket(tok+" "+tokens[i+1])]++
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	out := make([]float32, l.dims)
	if norm == 0 {
		return out, nil
	}
	norm = math.Sqrt(norm)
	for i, v := range vec {
		out[i] = float32(v / norm)
	}

	return out, nil
}

func (l *LocalEmbedder) Name() string {
	return "local/hash-256"
}

func (l *LocalEmbedder) Close() error {
	return nil
}

func (l *LocalEmbedder) bucket(term string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(term))
	return int(h.Sum32() % uint32(l.dims))
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
