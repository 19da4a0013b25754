// Package testutil provides hermetic test doubles for the AI providers.
package testutil

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/koopa0/studybot/internal/ai"
)

// HashEmbedderDim is the dimension of vectors produced by HashEmbedder.
const HashEmbedderDim = 64

// HashEmbedder returns a deterministic ai.EmbedFunc that needs no network.
//
// Each lowercased token is hashed into one of HashEmbedderDim buckets and the
// bucket counts are L2-normalized. Texts sharing words therefore have higher
// cosine similarity, which is enough for retrieval ranking tests: a query
// containing a term present verbatim in one document ranks that document
// first.
func HashEmbedder() ai.EmbedFunc {
	return func(_ context.Context, text string) ([]float32, error) {
		vec := make([]float32, HashEmbedderDim)

		tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		for _, tok := range tokens {
			h := fnv.New32a()
			_, _ = h.Write([]byte(tok))
			vec[h.Sum32()%HashEmbedderDim]++
		}

		var norm float64
		for _, v := range vec {
			norm += float64(v) * float64(v)
		}
		if norm == 0 {
			// Empty or punctuation-only text maps to a fixed unit vector so
			// the embedding is never all zeros.
			vec[0] = 1
			return vec, nil
		}

		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
		return vec, nil
	}
}
