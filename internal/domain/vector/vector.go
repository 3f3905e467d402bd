// Package vector provides the primitive operations the matcher builds
// query vectors from. All functions are pure; none mutate their inputs.
package vector

import (
	"math"

	"github.com/citymood/vibescout/internal/domain"
)

// Dot returns the inner product of two equal-length vectors.
// For unit-length inputs this equals cosine similarity; Dot does not
// enforce that precondition — callers must normalize derived vectors
// before comparing. Returns 0 when either vector is empty or the
// lengths differ, so one malformed record degrades to a neutral score
// instead of aborting a ranking pass.
func Dot(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// Norm returns the Euclidean length of v.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// MeanPool returns the element-wise average of the given vectors.
// A single input is returned as-is (no copy). All vectors must share
// one length; a mismatched vector yields ErrVectorDimMismatch and an
// empty input yields ErrEmptyPool.
//
// The pooled vector is NOT unit length even when every input is —
// callers must Normalize before using it as a similarity query.
func MeanPool(vecs [][]float32) ([]float32, error) {
	if len(vecs) == 0 {
		return nil, domain.ErrEmptyPool
	}
	if len(vecs) == 1 {
		return vecs[0], nil
	}

	dim := len(vecs[0])
	for _, v := range vecs[1:] {
		if len(v) != dim {
			return nil, domain.ErrVectorDimMismatch
		}
	}

	out := make([]float32, dim)
	for _, v := range vecs {
		for i, x := range v {
			out[i] += x
		}
	}
	n := float32(len(vecs))
	for i := range out {
		out[i] /= n
	}
	return out, nil
}

// Normalize returns a unit-length copy of v. A zero vector is returned
// unchanged (guards divide-by-zero).
func Normalize(v []float32) []float32 {
	n := Norm(v)
	if n == 0 {
		return v
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / n)
	}
	return out
}

// Subtract returns a - b element-wise. On a length mismatch it returns
// a unchanged.
func Subtract(a, b []float32) []float32 {
	if len(a) != len(b) {
		return a
	}
	out := make([]float32, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}
