package fuzzy

import (
	"fmt"
	"math"
)

// Universe is a discretized numeric domain sampled at a fixed step.
// It is immutable once created.
type Universe struct {
	points []float64
}

// NewUniverse samples [min, max] at the given step. The last point is the
// largest min+i*step not exceeding max.
func NewUniverse(min, max, step float64) (Universe, error) {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsNaN(step) {
		return Universe{}, fmt.Errorf("%w: universe bounds must be numbers", ErrConfig)
	}
	if min >= max {
		return Universe{}, fmt.Errorf("%w: universe min %g must be below max %g", ErrConfig, min, max)
	}
	if step <= 0 {
		return Universe{}, fmt.Errorf("%w: universe step %g must be positive", ErrConfig, step)
	}

	// Tolerance absorbs representation error in (max-min)/step, e.g. 1/0.01.
	n := int(math.Floor((max-min)/step+1e-9)) + 1
	points := make([]float64, n)
	for i := range points {
		points[i] = min + float64(i)*step
	}

	return Universe{points: points}, nil
}

// Len returns the number of sample points
func (u Universe) Len() int { return len(u.points) }

// Points returns a copy of the sample points in ascending order
func (u Universe) Points() []float64 {
	out := make([]float64, len(u.points))
	copy(out, u.points)
	return out
}

// Sample evaluates mf at every point of the universe.
func (u Universe) Sample(mf Membership) []float64 {
	out := make([]float64, len(u.points))
	for i, x := range u.points {
		out[i] = mf.Evaluate(x)
	}
	return out
}
