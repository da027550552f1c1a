package sparse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// CSR is a square matrix in compressed-row form, the solving phase. The
// nonzero pattern is frozen at conversion time; values may be rewritten in
// place through Row, but entries cannot be added or removed. Entries
// assigned zero stay in the pattern as explicit zeros.
//
// CSR implements mat.Matrix, so it composes with gonum operations that
// accept read-only matrices.
type CSR struct {
	n      int
	rowPtr []int // rowPtr[i]..rowPtr[i+1] bounds row i in cols and vals
	cols   []int
	vals   []float64
}

// Dims returns the matrix dimensions.
func (a *CSR) Dims() (r, c int) { return a.n, a.n }

// At returns the entry at (i, j), scanning the stored columns of row i.
// Positions outside the pattern read as zero.
func (a *CSR) At(i, j int) float64 {
	if i < 0 || i >= a.n || j < 0 || j >= a.n {
		panic(fmt.Sprintf("sparse: index (%d,%d) out of range for %dx%d matrix", i, j, a.n, a.n))
	}
	for k := a.rowPtr[i]; k < a.rowPtr[i+1]; k++ {
		if a.cols[k] == j {
			return a.vals[k]
		}
	}
	return 0
}

// T returns the transpose as a gonum view.
func (a *CSR) T() mat.Matrix { return mat.Transpose{Matrix: a} }

// NNZ returns the number of stored entries, explicit zeros included.
func (a *CSR) NNZ() int { return len(a.vals) }

// Row returns row i's column indices and values. Both slices alias matrix
// storage until the next conversion: writing vals[k] updates the entry in
// place, which is how boundary elimination rewrites the system without
// changing the pattern. cols must not be modified.
func (a *CSR) Row(i int) (cols []int, vals []float64) {
	if i < 0 || i >= a.n {
		panic(fmt.Sprintf("sparse: row %d out of range for %dx%d matrix", i, a.n, a.n))
	}
	lo, hi := a.rowPtr[i], a.rowPtr[i+1]
	return a.cols[lo:hi], a.vals[lo:hi]
}

// MulVecTo computes dst = A*x. The slices must have length n and may not
// alias each other.
func (a *CSR) MulVecTo(dst, x []float64) {
	if len(dst) != a.n || len(x) != a.n {
		panic(fmt.Sprintf("sparse: vector lengths %d, %d do not match %dx%d matrix", len(dst), len(x), a.n, a.n))
	}
	for i := 0; i < a.n; i++ {
		var s float64
		for k := a.rowPtr[i]; k < a.rowPtr[i+1]; k++ {
			s += a.vals[k] * x[a.cols[k]]
		}
		dst[i] = s
	}
}
