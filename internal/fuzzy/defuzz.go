package fuzzy

// Centroid returns Σ(u·μ(u)) / Σμ(u) over the universe's sample points.
// mu must be sampled over u; extra values are ignored. An empty set
// (zero denominator) defuzzifies to 0.
func Centroid(u Universe, mu []float64) float64 {
	var num, den float64
	for i, x := range u.points {
		if i >= len(mu) {
			break
		}
		num += x * mu[i]
		den += mu[i]
	}
	if den == 0 {
		return 0
	}
	return num / den
}
