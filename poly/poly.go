// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package poly implements the piecewise-polynomial approximator used by the
// kernel library to evaluate smoothing kernels without re-deriving a closed
// form at every call: a function on [-1,1] is fit, subinterval by
// subinterval, with a Chebyshev-node polynomial, and evaluated by Horner.
package poly

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Table holds an L x N piecewise-polynomial approximation of a function
// f: R -> R on [-1,1], split into L = 2M subintervals of half-width 1/L.
// Subinterval ℓ (0-based, numbered right-to-left: ℓ=0 sits near +1) is
// centred at hℓ = 1 - (2ℓ+1)/L and covers y = hℓ + x·δ for x in [-1,1].
// Once built, Cs is immutable.
type Table struct {
	L  int         // number of subintervals, L = 2M
	N  int         // polynomial degree + 1
	Cs [][]float64 // L x N matrix of Chebyshev-fitted coefficients, low-to-high degree
}

// Build fits f on [-1,1] with L = 2*m subintervals of degree n-1 polynomials.
func Build(f func(y float64) float64, m, n int) (tbl *Table, err error) {
	if m < 1 {
		return nil, chk.Err("poly: half-width m must be >= 1; got %d", m)
	}
	if n < 2 {
		return nil, chk.Err("poly: polynomial size n must be >= 2; got %d", n)
	}
	l := 2 * m
	cs := la.MatAlloc(l, n)

	// Chebyshev nodes in [-1,1], shared by every subinterval
	xs := make([]float64, n)
	for k := 1; k <= n; k++ {
		xs[k-1] = math.Cos(math.Pi * (float64(k) - 0.5) / float64(n))
	}

	// Vandermonde matrix A_{ij} = x_i^(j-1) is the same for every row;
	// factor it once via a dense inverse and reuse for every right-hand side.
	a := la.MatAlloc(n, n)
	for i := 0; i < n; i++ {
		p := 1.0
		for j := 0; j < n; j++ {
			a[i][j] = p
			p *= xs[i]
		}
	}
	ai := la.MatAlloc(n, n)
	det := la.MatInv(ai, a, n)
	if math.Abs(det) < 1e-300 {
		return nil, chk.Err("poly: Vandermonde system is singular for n=%d", n)
	}

	delta := 1.0 / float64(l)
	y := make([]float64, n)
	for ell := 0; ell < l; ell++ {
		h := 1.0 - float64(2*ell+1)/float64(l)
		for k := 0; k < n; k++ {
			y[k] = f(h + xs[k]*delta)
		}
		la.MatVecMul(cs[ell], 1, ai, y)
	}

	return &Table{L: l, N: n, Cs: cs}, nil
}

// Eval returns the approximated value at displacement delta in [0, 2/L)
// from the left endpoint of the covered domain. Callers outside that range
// get a silently wrong index in release builds; EvalStrict panics instead.
func (tbl *Table) Eval(delta float64) float64 {
	ell := int(float64(tbl.L) * delta)
	if ell < 0 {
		ell = 0
	} else if ell >= tbl.L {
		ell = tbl.L - 1
	}
	x := float64(tbl.L)*delta - 1
	return horner(tbl.Cs[ell], x)
}

// EvalStrict is Eval with a debug assertion enforcing the caller contract
// delta in [0, 2/L) (see spec §9 open question on evaluate_piecewise).
func (tbl *Table) EvalStrict(delta float64) float64 {
	if delta < 0 || delta >= 2.0/float64(tbl.L) {
		chk.Panic("poly: displacement %g out of range [0, %g)", delta, 2.0/float64(tbl.L))
	}
	return tbl.Eval(delta)
}

// EvalAllRows evaluates every one of the L subinterval polynomials at the
// same local variable x in [-1,1] and writes the results into out (which
// must have length L). This is what the kernel library uses to produce the
// 2M contiguous support values around a point in a single pass: the table
// is built with L = 2M rows, one per neighbour offset, and a single
// fractional-offset x selects the corresponding point within each row's
// subinterval simultaneously.
func (tbl *Table) EvalAllRows(x float64, out []float64) {
	if len(out) != tbl.L {
		chk.Panic("poly: EvalAllRows output length %d does not match L=%d", len(out), tbl.L)
	}
	for ell := 0; ell < tbl.L; ell++ {
		out[ell] = horner(tbl.Cs[ell], x)
	}
}

// horner evaluates a polynomial with coefficients c (low-to-high degree) at x.
func horner(c []float64, x float64) float64 {
	n := len(c)
	v := c[n-1]
	for k := n - 2; k >= 0; k-- {
		v = v*x + c[k]
	}
	return v
}
