// Package semantic produces the dense text embeddings behind the semantic
// sub-score. Two implementations exist: the Gemini embedding API for real
// semantic similarity, and a deterministic local hashing embedder that works
// offline and never fails. Both emit vectors in a single run-wide space.
package semantic

import (
	"context"
	"math"
)

// Embedder turns text into a dense vector. Implementations must be safe for
// concurrent use; the matching engine embeds postings in parallel.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Name() string
	Close() error
}

// Cosine computes cosine similarity between two vectors. Mismatched lengths
// and zero vectors yield 0 so callers never divide by zero.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
