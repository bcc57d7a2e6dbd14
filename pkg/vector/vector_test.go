package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSelfSimilarity(t *testing.T) {
	v := []float64{0.3, -1.2, 4.5, 0.01}

	got, err := Cosine(v, v)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestCosineOppositeVectors(t *testing.T) {
	v := []float64{1, 2, -3}
	neg := []float64{-1, -2, 3}

	got, err := Cosine(v, neg)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, got, 1e-9)
}

func TestCosineSymmetric(t *testing.T) {
	a := []float64{0.5, 0.1, -0.7, 2.2}
	b := []float64{-1.1, 0.9, 0.4, 0.0}

	ab, err := Cosine(a, b)
	require.NoError(t, err)
	ba, err := Cosine(b, a)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
}

func TestCosineZeroVector(t *testing.T) {
	zero := []float64{0, 0, 0}
	v := []float64{1, 2, 3}

	for _, pair := range [][2][]float64{{zero, v}, {v, zero}, {zero, zero}} {
		got, err := Cosine(pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
		assert.False(t, math.IsNaN(got))
	}
}

func TestCosineDimensionMismatch(t *testing.T) {
	_, err := Cosine([]float64{1, 2}, []float64{1, 2, 3})
	require.Error(t, err)

	var dimErr *DimensionError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 2, dimErr.LenA)
	assert.Equal(t, 3, dimErr.LenB)
}

func TestCosineOrthogonal(t *testing.T) {
	got, err := Cosine([]float64{1, 0}, []float64{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-9)
}

func TestBestCategoryEmptyCorpus(t *testing.T) {
	match, err := BestCategory([]float64{1, 0}, nil)
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestBestCategoryMeanPerCategory(t *testing.T) {
	query := []float64{1, 0, 0}
	labeled := []Labeled{
		{Embedding: []float64{0.99, 0.05, 0}, CategoryID: "work"},
		{Embedding: []float64{0.95, -0.02, 0.1}, CategoryID: "work"},
		{Embedding: []float64{0.01, 1, 0}, CategoryID: "spam"},
	}

	match, err := BestCategory(query, labeled)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "work", match.CategoryID)

	s1, _ := Cosine(query, labeled[0].Embedding)
	s2, _ := Cosine(query, labeled[1].Embedding)
	assert.InDelta(t, (s1+s2)/2, match.Confidence, 1e-9)
}

func TestBestCategoryTieBreaksOnSmallestID(t *testing.T) {
	query := []float64{1, 0}
	// Identical embeddings in two categories produce identical means.
	labeled := []Labeled{
		{Embedding: []float64{1, 0}, CategoryID: "zeta"},
		{Embedding: []float64{1, 0}, CategoryID: "alpha"},
	}

	for i := 0; i < 20; i++ {
		match, err := BestCategory(query, labeled)
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "alpha", match.CategoryID)
	}
}

func TestBestCategoryPropagatesDimensionError(t *testing.T) {
	_, err := BestCategory([]float64{1, 0}, []Labeled{
		{Embedding: []float64{1, 0, 0}, CategoryID: "work"},
	})

	var dimErr *DimensionError
	require.ErrorAs(t, err, &dimErr)
}

func TestBestCategoryDoesNotMutateInputs(t *testing.T) {
	query := []float64{0.4, 0.6}
	labeled := []Labeled{{Embedding: []float64{0.5, 0.5}, CategoryID: "a"}}

	_, err := BestCategory(query, labeled)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.4, 0.6}, query)
	assert.Equal(t, []float64{0.5, 0.5}, labeled[0].Embedding)
}
