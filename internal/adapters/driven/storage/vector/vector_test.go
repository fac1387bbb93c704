package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/documind/internal/core/domain"
)

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, 2},
		{"scaled", []float32{1, 1}, []float32{3, 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := CosineDistance(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, d, 1e-5)
		})
	}
}

func TestCosineDistance_Errors(t *testing.T) {
	_, err := CosineDistance([]float32{1}, []float32{1, 2})
	assert.Error(t, err)

	_, err = CosineDistance(nil, nil)
	assert.Error(t, err)

	_, err = CosineDistance([]float32{0, 0}, []float32{1, 1})
	assert.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	vec := []float32{0.5, -1.25, 3.0}

	blob := Encode(vec)
	assert.Len(t, blob, 12)

	out, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, vec, out)
}

func TestEncodeDecode_Empty(t *testing.T) {
	assert.Nil(t, Encode(nil))

	out, err := Decode(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestDecode_InvalidLength(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestSortAndLimit(t *testing.T) {
	results := []domain.SearchResult{
		{ChunkID: "c", Distance: 0.9},
		{ChunkID: "a", Distance: 0.1},
		{ChunkID: "b", Distance: 0.5},
		{ChunkID: "a2", Distance: 0.1},
	}

	out := SortAndLimit(results, 3)

	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].ChunkID)
	assert.Equal(t, "a2", out[1].ChunkID)
	assert.Equal(t, "b", out[2].ChunkID)
}

func TestSortAndLimit_LimitLargerThanResults(t *testing.T) {
	out := SortAndLimit([]domain.SearchResult{{ChunkID: "x"}}, 10)
	assert.Len(t, out, 1)
}
