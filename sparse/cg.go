package sparse

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrNoConvergence reports that conjugate gradient hit its iteration cap
// before the residual dropped below tolerance.
var ErrNoConvergence = errors.New("sparse: conjugate gradient did not converge")

// CG is a linear conjugate gradient solver (see
// http://wikipedia.org/wiki/Conjugate_gradient_method) for symmetric
// positive definite systems. MaxIter and Tol must be set before use.
type CG struct {
	MaxIter int     // iteration cap
	Tol     float64 // absolute tolerance on the residual 2-norm
	Niter   int     // iterations taken by the last Solve
}

// Solve returns x satisfying A x = b, iterating from x = 0 until the
// residual 2-norm falls below Tol. If MaxIter iterations do not get there,
// or the iteration breaks down because a is not positive definite, the
// solution is withheld and the returned error wraps ErrNoConvergence.
func (cg *CG) Solve(a *CSR, b []float64) ([]float64, error) {
	n, _ := a.Dims()
	if len(b) != n {
		panic(fmt.Sprintf("sparse: rhs length %d does not match %dx%d matrix", len(b), n, n))
	}

	x := make([]float64, n)
	r := make([]float64, n)
	p := make([]float64, n)
	ap := make([]float64, n)
	copy(r, b) // residual at x = 0
	copy(p, r)

	rr := floats.Dot(r, r)
	cg.Niter = 0
	// Negated exit test: a NaN residual from a breakdown must keep
	// iterating into the cap, not read as converged.
	for !(math.Sqrt(rr) < cg.Tol) {
		if cg.Niter == cg.MaxIter {
			return nil, fmt.Errorf("%w after %d iterations (residual %g)",
				ErrNoConvergence, cg.Niter, math.Sqrt(rr))
		}
		cg.Niter++

		a.MulVecTo(ap, p)
		alpha := rr / floats.Dot(p, ap)
		floats.AddScaled(x, alpha, p)   // x += alpha*p
		floats.AddScaled(r, -alpha, ap) // r -= alpha*A*p

		rrNext := floats.Dot(r, r)
		beta := rrNext / rr
		rr = rrNext
		floats.Scale(beta, p)
		floats.Add(p, r) // p = r + beta*p
	}
	return x, nil
}
