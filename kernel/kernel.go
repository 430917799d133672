// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kernel implements the NUFFT smoothing-kernel library: B-spline,
// Gaussian, Kaiser-Bessel, and backwards Kaiser-Bessel families, each
// evaluated through a poly.Table and each carrying an analytical Fourier
// transform used by the planner for deconvolution.
package kernel

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gonufft/grid"
	"github.com/cpmech/gonufft/poly"
)

// Family names a smoothing-kernel family.
type Family int

const (
	BSpline Family = iota
	Gaussian
	KaiserBessel
	KaiserBesselBackwards
)

func (f Family) String() string {
	switch f {
	case BSpline:
		return "bspline"
	case Gaussian:
		return "gaussian"
	case KaiserBessel:
		return "kb"
	case KaiserBesselBackwards:
		return "kb-backwards"
	}
	return "unknown"
}

// Descriptor is an immutable (post-construction) kernel bound to a half-width
// M, an oversampled grid step Dx, and a family-specific shape (Params). The
// piecewise-polynomial table tbl is built once; ghat is filled lazily on
// first FourierAll call and invalidated on rebind to a different-length
// wavenumber vector.
type Descriptor struct {
	Family    Family
	M         int
	Dx        float64
	Params    fun.Prms
	backwards bool
	tbl       *poly.Table
	fourierFn func(k float64) float64

	ghat   []float64
	ghatKs []float64
}

// allocator builds an "optimal" descriptor for a family given m, dx, sigma.
type allocator func(m int, dx, sigma float64) (*Descriptor, error)

var allocators = map[Family]allocator{}

// register is called from each family's init() to add itself to the registry,
// mirroring the teacher's mreten model-factory idiom (allocators["bc"] = ...).
func register(f Family, a allocator) {
	allocators[f] = a
}

// OptimalKernel builds a descriptor for family f, half-width m, grid step dx,
// and oversampling sigma, using that family's own shape-parameter formula.
func OptimalKernel(f Family, m int, dx, sigma float64) (*Descriptor, error) {
	if m < 1 {
		return nil, chk.Err("kernel: half-width m must be >= 1; got %d", m)
	}
	if dx <= 0 {
		return nil, chk.Err("kernel: Dx must be > 0; got %g", dx)
	}
	if sigma < 1 {
		return nil, chk.Err("kernel: oversampling sigma must be >= 1; got %g", sigma)
	}
	a, ok := allocators[f]
	if !ok {
		return nil, chk.Err("kernel: family %v is not registered", f)
	}
	return a(m, dx, sigma)
}

// Evaluate returns the 1-based central cell index i and the 2M contiguous
// kernel values around x0 (already reduced to [0, 2π)), ordered so entry j
// (0-based) corresponds to grid cell i-M+1+j (forward convention) or
// i+M-1-j (backwards convention, used by the backwards Kaiser-Bessel kernel
// to align with its symmetry).
func (d *Descriptor) Evaluate(x0 float64) (i int, values []float64) {
	i, xi := grid.CentralCell(x0, d.Dx)
	x := 2*xi - 1
	values = make([]float64, 2*d.M)
	d.tbl.EvalAllRows(x, values)
	if d.backwards {
		reverse(values)
	}
	return i, values
}

// EvaluateInto is Evaluate without allocating: values must have length 2M.
func (d *Descriptor) EvaluateInto(x0 float64, values []float64) (i int) {
	i, xi := grid.CentralCell(x0, d.Dx)
	x := 2*xi - 1
	d.tbl.EvalAllRows(x, values)
	if d.backwards {
		reverse(values)
	}
	return i
}

func reverse(v []float64) {
	for a, b := 0, len(v)-1; a < b; a, b = a+1, b-1 {
		v[a], v[b] = v[b], v[a]
	}
}

// Fourier evaluates the kernel's analytical Fourier transform at wavenumber k.
func (d *Descriptor) Fourier(k float64) float64 {
	return d.fourierFn(k)
}

// FourierAll evaluates and caches Fourier(k) for every k in ks. A rebind to a
// wavenumber vector of a different length invalidates the cache.
func (d *Descriptor) FourierAll(ks []float64) []float64 {
	if d.ghat != nil && len(d.ghatKs) == len(ks) {
		return d.ghat
	}
	d.ghat = make([]float64, len(ks))
	d.ghatKs = ks
	for j, k := range ks {
		d.ghat[j] = d.fourierFn(k)
	}
	return d.ghat
}
