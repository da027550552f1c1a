// Package sparse implements the two-phase sparse storage behind assembly:
// a coordinate-list accumulator while element contributions stream in, and
// a compressed-row matrix once the pattern is final.
package sparse

import "fmt"

// COO is a square matrix in coordinate-list form, the accumulation phase.
// Add appends triplets without merging, so repeated coordinates coexist and
// are summed only when the matrix is compressed by ToCSR. That makes Add
// O(1) and order-independent, which is exactly what scatter-add assembly
// needs.
type COO struct {
	n    int
	rows []int
	cols []int
	vals []float64
}

// NewCOO returns an empty n x n coordinate-list matrix.
func NewCOO(n int) *COO {
	return &COO{n: n}
}

// Add appends value v at (i, j). Repeated coordinates accumulate: the
// compressed matrix stores their sum. Indices outside [0, n) panic.
func (c *COO) Add(i, j int, v float64) {
	if i < 0 || i >= c.n || j < 0 || j >= c.n {
		panic(fmt.Sprintf("sparse: index (%d,%d) out of range for %dx%d matrix", i, j, c.n, c.n))
	}
	c.rows = append(c.rows, i)
	c.cols = append(c.cols, j)
	c.vals = append(c.vals, v)
}

// NNZ returns the number of stored triplets, duplicates included.
func (c *COO) NNZ() int {
	return len(c.vals)
}

// ToCSR compresses the triplets into row-major compressed form. Within a
// row, entries are ordered by column and duplicate coordinates are summed
// in insertion order. The receiver is left unchanged.
func (c *COO) ToCSR() *CSR {
	n := c.n

	// Bucket triplets by row.
	start := make([]int, n+1)
	for _, i := range c.rows {
		start[i+1]++
	}
	for i := 0; i < n; i++ {
		start[i+1] += start[i]
	}
	cols := make([]int, len(c.cols))
	vals := make([]float64, len(c.vals))
	next := make([]int, n)
	copy(next, start[:n])
	for k, i := range c.rows {
		p := next[i]
		next[i]++
		cols[p] = c.cols[k]
		vals[p] = c.vals[k]
	}

	// Order each row by column and merge duplicates.
	csr := &CSR{
		n:      n,
		rowPtr: make([]int, n+1),
		cols:   make([]int, 0, len(cols)),
		vals:   make([]float64, 0, len(vals)),
	}
	for i := 0; i < n; i++ {
		lo, hi := start[i], start[i+1]
		sortRow(cols[lo:hi], vals[lo:hi])
		for k := lo; k < hi; k++ {
			if k > lo && cols[k] == cols[k-1] {
				csr.vals[len(csr.vals)-1] += vals[k]
				continue
			}
			csr.cols = append(csr.cols, cols[k])
			csr.vals = append(csr.vals, vals[k])
		}
		csr.rowPtr[i+1] = len(csr.cols)
	}
	return csr
}

// sortRow orders one row's column/value pairs by column index. Insertion
// sort keeps equal columns in insertion order, and assembled rows hold only
// a handful of couplings each.
func sortRow(cols []int, vals []float64) {
	for i := 1; i < len(cols); i++ {
		for j := i; j > 0 && cols[j] < cols[j-1]; j-- {
			cols[j], cols[j-1] = cols[j-1], cols[j]
			vals[j], vals[j-1] = vals[j-1], vals[j]
		}
	}
}
