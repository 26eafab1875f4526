package vectors

import "math"

// Norm returns the L2 norm of v.
func Norm(v []float32) float64 {
	return math.Sqrt(Dot(v, v))
}

// Dot returns the inner product of a and b over their common prefix.
func Dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var s float64
	for i := 0; i < n; i++ {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

// Normalize returns a unit-length copy of v. The input is never modified.
// A zero vector is returned as a zero-valued copy.
func Normalize(v []float32) []float32 {
	out := make([]float32, len(v))
	n := Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return out
	}
	for i, x := range v {
		out[i] = float32(float64(x) / n)
	}
	return out
}

// IsUnit reports whether v has unit L2 norm within tol.
func IsUnit(v []float32, tol float64) bool {
	return math.Abs(Norm(v)-1) < tol
}

// Cosine returns the raw cosine similarity of a and b in [-1, 1].
// It returns 0 when the lengths differ or either vector has zero norm.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	na, nb := Norm(a), Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return Dot(a, b) / (na * nb)
}

// Similarity returns cosine similarity clamped to [0, 1].
func Similarity(a, b []float32) float64 {
	return Clamp01(Cosine(a, b))
}

// Clamp01 clamps s to [0, 1]; NaN becomes 0.
func Clamp01(s float64) float64 {
	switch {
	case math.IsNaN(s), s < 0:
		return 0
	case s > 1:
		return 1
	default:
		return s
	}
}

// Clone returns a copy of v.
func Clone(v []float32) []float32 {
	if v == nil {
		return nil
	}
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
