// Package vector implements the numeric core of email classification:
// cosine similarity between embeddings and nearest-centroid category scoring.
// Everything here is pure and deterministic.
package vector

import (
	"fmt"
	"math"
)

// DimensionError reports two embeddings of different lengths. Mixing
// dimensionalities means the vectors came from different providers or a
// corrupted record; callers should treat it as fatal for that operation.
type DimensionError struct {
	LenA, LenB int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: %d vs %d", e.LenA, e.LenB)
}

// Labeled is one reference point for scoring: the embedding of an
// already-classified email and the category it belongs to.
type Labeled struct {
	Embedding  []float64
	CategoryID string
}

// Match is the scoring result: the winning category and the mean cosine
// similarity of the query against that category's reference embeddings.
type Match struct {
	CategoryID string
	Confidence float64
}

// Cosine returns the cosine similarity of a and b. A zero vector is defined
// as maximally dissimilar to everything, so the result is 0 rather than NaN
// when either magnitude is zero.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionError{LenA: len(a), LenB: len(b)}
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	magA = math.Sqrt(magA)
	magB = math.Sqrt(magB)
	if magA == 0 || magB == 0 {
		return 0, nil
	}

	return dot / (magA * magB), nil
}

// BestCategory scores query against every labeled embedding, averages the
// similarities per category, and returns the category with the highest mean.
// A nil result with nil error means the labeled corpus is empty and there is
// no signal to classify with yet.
//
// Ties on the mean are broken by the lexicographically smallest category id,
// so the outcome does not depend on map iteration order.
func BestCategory(query []float64, labeled []Labeled) (*Match, error) {
	if len(labeled) == 0 {
		return nil, nil
	}

	type score struct {
		total float64
		count int
	}
	scores := make(map[string]*score, len(labeled))

	for _, l := range labeled {
		sim, err := Cosine(query, l.Embedding)
		if err != nil {
			return nil, err
		}
		s, ok := scores[l.CategoryID]
		if !ok {
			s = &score{}
			scores[l.CategoryID] = s
		}
		s.total += sim
		s.count++
	}

	var best *Match
	for categoryID, s := range scores {
		mean := s.total / float64(s.count)
		switch {
		case best == nil,
			mean > best.Confidence,
			mean == best.Confidence && categoryID < best.CategoryID:
			best = &Match{CategoryID: categoryID, Confidence: mean}
		}
	}

	return best, nil
}
