// Package vector holds the similarity and blob-encoding helpers shared by
// the store adapters.
package vector

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/viant/vec/search"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// CosineDistance returns 1 - cosine similarity of a and b.
// Lower is more similar. Vectors must have equal, non-zero length and
// non-zero magnitude.
func CosineDistance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("vector: empty vectors")
	}
	va, vb := search.Float32s(a), search.Float32s(b)
	if va.Magnitude() == 0 || vb.Magnitude() == 0 {
		return 0, fmt.Errorf("vector: zero-magnitude vector")
	}
	return float64(va.CosineDistance(b)), nil
}

// Encode packs vec as little-endian float32 values.
func Encode(vec []float32) []byte {
	if len(vec) == 0 {
		return nil
	}
	b := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

// Decode unpacks a blob produced by Encode.
func Decode(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("vector: invalid blob length %d", len(b))
	}
	vec := make([]float32, len(b)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return vec, nil
}

// SortAndLimit orders results by ascending distance and truncates to limit.
// Ties keep their input order.
func SortAndLimit(results []domain.SearchResult, limit int) []domain.SearchResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
