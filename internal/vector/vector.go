package vector

import (
	"fmt"
	"math"
)

// Vector is a sparse fixed-dimension vector. Indices are strictly increasing
// and lie in [0, Dim).
type Vector struct {
	Dim     int       `json:"dim"`
	Indices []int     `json:"indices,omitempty"`
	Values  []float64 `json:"values,omitempty"`
}

// Zero returns an all-zero vector of the given dimension.
func Zero(dim int) Vector {
	return Vector{Dim: dim}
}

// FromDense builds a sparse vector from dense values, skipping zeros.
func FromDense(values []float64) Vector {
	v := Vector{Dim: len(values)}
	for i, x := range values {
		if x == 0 {
			continue
		}
		v.Indices = append(v.Indices, i)
		v.Values = append(v.Values, x)
	}
	return v
}

// Validate checks the structural invariants of the vector.
func (v Vector) Validate() error {
	if v.Dim < 0 {
		return fmt.Errorf("negative dimension %d", v.Dim)
	}
	if len(v.Indices) != len(v.Values) {
		return fmt.Errorf("indices and values length differ: %d != %d", len(v.Indices), len(v.Values))
	}
	prev := -1
	for _, idx := range v.Indices {
		if idx <= prev || idx >= v.Dim {
			return fmt.Errorf("index %d out of order or out of range [0, %d)", idx, v.Dim)
		}
		prev = idx
	}
	return nil
}

// NNZ returns the number of stored non-zero entries.
func (v Vector) NNZ() int {
	return len(v.Indices)
}

// IsZero reports whether the vector has no non-zero entries.
func (v Vector) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

// Dense expands the vector into a slice of length Dim.
func (v Vector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for i, idx := range v.Indices {
		out[idx] = v.Values[i]
	}
	return out
}

// Dot returns the inner product of two sparse vectors.
func (v Vector) Dot(o Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// DotDense returns the inner product with a dense weight row.
func (v Vector) DotDense(weights []float64) float64 {
	var sum float64
	for i, idx := range v.Indices {
		sum += v.Values[i] * weights[idx]
	}
	return sum
}

// Norm returns the Euclidean norm.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Normalized returns a copy scaled to unit length. Zero vectors are returned unchanged.
func (v Vector) Normalized() Vector {
	norm := v.Norm()
	out := Vector{
		Dim:     v.Dim,
		Indices: append([]int(nil), v.Indices...),
		Values:  append([]float64(nil), v.Values...),
	}
	if norm == 0 {
		return out
	}
	for i := range out.Values {
		out.Values[i] /= norm
	}
	return out
}
