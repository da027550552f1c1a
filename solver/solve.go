package solver

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/fempack/poisson2d/sparse"
)

// ErrNotPositiveDefinite reports a dense system whose Cholesky
// factorization failed. A correctly assembled and boundary-conditioned
// Poisson matrix is symmetric positive definite, so this usually points at
// missing boundary conditions or a malformed mesh.
var ErrNotPositiveDefinite = errors.New("solver: matrix is not positive definite")

// Conjugate-gradient bounds used by the sparse pipeline.
const (
	DefaultCGMaxIter = 1000
	DefaultCGTol     = 1e-10
)

// SolveDense solves the boundary-conditioned system by Cholesky
// factorization. On factorization failure no solution is returned.
func SolveDense(a *mat.SymDense, b []float64) ([]float64, error) {
	n, _ := a.Dims()
	if len(b) != n {
		panic(fmt.Sprintf("solver: rhs length %d does not match %dx%d matrix", len(b), n, n))
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(a); !ok {
		return nil, ErrNotPositiveDefinite
	}
	x := mat.NewVecDense(n, nil)
	if err := chol.SolveVecTo(x, mat.NewVecDense(n, b)); err != nil {
		return nil, fmt.Errorf("solver: cholesky solve: %w", err)
	}
	return x.RawVector().Data, nil
}

// SolveSparse solves the boundary-conditioned system by conjugate gradient
// with the pipeline's fixed iteration cap and residual tolerance. Failure
// to converge within the cap is reported, never silently truncated.
func SolveSparse(a *sparse.CSR, b []float64) ([]float64, error) {
	cg := sparse.CG{MaxIter: DefaultCGMaxIter, Tol: DefaultCGTol}
	return cg.Solve(a, b)
}
