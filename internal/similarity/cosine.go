package similarity

import (
	"math"

	"github.com/spigell/skillgap/internal/vector"
)

// Score returns the cosine similarity of a and b in [0, 1].
// A zero vector on either side scores 0, as do vectors from different vocabularies.
func Score(a, b vector.Vector) float64 {
	if a.Dim != b.Dim {
		return 0
	}
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}

	s := a.Dot(b) / (na * nb)
	switch {
	case s > 1:
		return 1
	case s < 0:
		return 0
	default:
		return s
	}
}

// Percent converts a score into a percentage rounded to two decimals.
func Percent(score float64) float64 {
	return math.Round(score*100*100) / 100
}
