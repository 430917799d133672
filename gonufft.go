// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gonufft implements a non-uniform FFT (NUFFT) engine: the
// discrete Fourier relation between samples at arbitrary locations and a
// uniform grid of Fourier coefficients, in 1-D, 2-D, or 3-D, over a
// periodic domain of length 2π per axis. Package gonufft is the public
// facade; the spreading/interpolation/kernel machinery lives in the
// kernel, poly, grid, spread, interp, and fft sub-packages.
package gonufft

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonufft/fft"
	"github.com/cpmech/gonufft/grid"
	"github.com/cpmech/gonufft/interp"
	"github.com/cpmech/gonufft/kernel"
	"github.com/cpmech/gonufft/spread"
)

// Options configures a Plan at construction.
type Options struct {
	HalfSupport int           // M, kernel half-width (cells); 2M cells touched per axis
	Sigma       float64       // requested oversampling factor; >= 1
	Kernel      kernel.Family // smoothing kernel family
	Real        bool          // real-valued transform (half-spectrum axis 1) vs. complex
}

// Plan owns the kernel descriptors, oversampled buffers, FFT state, and
// bound point set for repeated type-1/type-2 transforms at a fixed
// dimension, size, and kernel family (spec §3 "Plan").
type Plan struct {
	Ns      []int    // non-oversampled sizes, one per axis
	Ntil    []int    // oversampled {2,3,5}-smooth sizes
	Sigma   float64  // effective oversampling, max_d(Ntil[d]/Ns[d])
	Kernels []*kernel.Descriptor
	Ks      [][]float64 // non-oversampled wavenumber vectors, one per axis
	Real    bool

	points [][]float64 // struct-of-arrays, D x P

	grids []*spread.Grid // complex oversampled buffers (used directly for the complex path)

	// real-transform-only scratch: one real oversampled buffer and one
	// half-spectrum complex buffer per channel, rebuilt lazily whenever an
	// Exec call requests a different channel count.
	realUs [][]float64
	halfUs [][]complex128
}

// NewPlan sizes the oversampled grid, builds the kernel descriptors (one
// per axis, all sharing M and the requested family), and precomputes the
// non-oversampled wavenumber vectors. ns gives the non-oversampled size per
// axis; len(ns) fixes the dimension D in {1,2,3}.
func NewPlan(ns []int, opts Options) (*Plan, error) {
	d := len(ns)
	if d < 1 || d > 3 {
		return nil, chk.Err("gonufft: dimension must be 1, 2, or 3; got %d axes", d)
	}
	m := opts.HalfSupport
	if m < 1 {
		return nil, chk.Err("gonufft: half-support M must be >= 1; got %d", m)
	}
	if opts.Sigma < 1 {
		return nil, chk.Err("gonufft: oversampling sigma must be >= 1; got %g", opts.Sigma)
	}
	for a, n := range ns {
		if n < 1 {
			return nil, chk.Err("gonufft: axis %d size must be >= 1; got %d", a, n)
		}
		if m >= n/2 {
			return nil, chk.Err("gonufft: half-support M=%d violates M < N/2 for axis %d (N=%d)", m, a, n)
		}
	}

	ntil := make([]int, d)
	sigmaEff := 1.0
	for a, n := range ns {
		want := int(opts.Sigma * float64(n))
		if want < n {
			want = n
		}
		ntil[a] = grid.NextSmooth235(want)
		if s := float64(ntil[a]) / float64(n); s > sigmaEff {
			sigmaEff = s
		}
	}

	dx := make([]float64, d)
	for a := range dx {
		dx[a] = 2 * math.Pi / float64(ntil[a])
	}

	kernels := make([]*kernel.Descriptor, d)
	for a := 0; a < d; a++ {
		kd, err := kernel.OptimalKernel(opts.Kernel, m, dx[a], sigmaEff)
		if err != nil {
			return nil, err
		}
		kernels[a] = kd
	}

	ks := make([][]float64, d)
	for a, n := range ns {
		var ints []int
		if opts.Real && a == 0 {
			ints = grid.WavenumbersHalf(n)
		} else {
			ints = grid.WavenumbersSigned(n)
		}
		fs := make([]float64, len(ints))
		for i, v := range ints {
			fs[i] = float64(v)
		}
		ks[a] = fs
	}
	for a, kd := range kernels {
		kd.FourierAll(ks[a])
	}

	return &Plan{
		Ns:      append([]int(nil), ns...),
		Ntil:    ntil,
		Sigma:   sigmaEff,
		Kernels: kernels,
		Ks:      ks,
		Real:    opts.Real,
	}, nil
}

// SetPoints rebinds the plan's non-uniform point set. xs must have D rows
// (one per axis) of equal length P; it invalidates no kernel state since
// kernels depend only on M, Dx, and the bound wavenumber vectors, not on
// the points themselves.
func (p *Plan) SetPoints(xs [][]float64) error {
	if len(xs) != len(p.Ns) {
		return chk.Err("gonufft: SetPoints got %d axes, expected %d", len(xs), len(p.Ns))
	}
	if len(xs) == 0 {
		return chk.Err("gonufft: SetPoints requires at least one axis")
	}
	np := len(xs[0])
	for a, x := range xs {
		if len(x) != np {
			return chk.Err("gonufft: SetPoints axis %d has %d points, expected %d", a, len(x), np)
		}
	}
	p.points = make([][]float64, len(xs))
	for a, x := range xs {
		p.points[a] = append([]float64(nil), x...)
	}
	return nil
}

// ensureComplexGrids allocates (or re-zeroes, if already sized for nchan)
// the complex oversampled buffers used by the complex transform path.
func (p *Plan) ensureComplexGrids(nchan int) {
	if len(p.grids) != nchan {
		p.grids = make([]*spread.Grid, nchan)
		for c := range p.grids {
			p.grids[c] = spread.NewGrid(p.Ntil)
		}
		return
	}
	for _, g := range p.grids {
		g.Zero()
	}
}

// ExecType1 scatters values (C channels x P points) onto the oversampled
// grid, FFTs, deconvolves by the kernel's Fourier transform, and writes the
// non-oversampled coefficients into out (C channels, row-major flattened Ns
// per channel).
func (p *Plan) ExecType1(values [][]complex128, out [][]complex128) error {
	if p.points == nil {
		return chk.Err("gonufft: ExecType1 called before SetPoints")
	}
	if p.Real {
		return chk.Err("gonufft: ExecType1 called on a plan built with Options.Real=true; use ExecType1Real")
	}
	if len(values) != len(out) {
		return chk.Err("gonufft: ExecType1 got %d value channels but %d output channels", len(values), len(out))
	}
	nchan := len(values)
	p.ensureComplexGrids(nchan)

	if err := spread.Exec(p.points, values, p.Kernels, p.grids); err != nil {
		return err
	}
	total := 1
	for _, n := range p.Ns {
		total *= n
	}
	for c, g := range p.grids {
		if err := fft.ComplexND(g.Data, p.Ntil, false); err != nil {
			return err
		}
		if len(out[c]) != total {
			return chk.Err("gonufft: ExecType1 output channel %d has length %d, expected %d", c, len(out[c]), total)
		}
		deconvolveAndTruncate(g.Data, p.Ntil, p.Ns, p.Kernels, p.Ks, out[c])
	}
	return nil
}

// ExecType2 populates the oversampled Fourier buffer from in (C channels,
// row-major flattened Ns per channel) divided by the kernel's Fourier
// transform, inverse-FFTs, and interpolates at the bound points into values.
func (p *Plan) ExecType2(in [][]complex128, values [][]complex128) error {
	if p.points == nil {
		return chk.Err("gonufft: ExecType2 called before SetPoints")
	}
	if p.Real {
		return chk.Err("gonufft: ExecType2 called on a plan built with Options.Real=true; use ExecType2Real")
	}
	if len(in) != len(values) {
		return chk.Err("gonufft: ExecType2 got %d input channels but %d value channels", len(in), len(values))
	}
	nchan := len(in)
	p.ensureComplexGrids(nchan)

	total := 1
	for _, n := range p.Ns {
		total *= n
	}
	for c, g := range p.grids {
		if len(in[c]) != total {
			return chk.Err("gonufft: ExecType2 input channel %d has length %d, expected %d", c, len(in[c]), total)
		}
		expandAndDeconvolve(in[c], p.Ns, p.Ntil, p.Kernels, p.Ks, g.Data)
		if err := fft.ComplexND(g.Data, p.Ntil, true); err != nil {
			return err
		}
	}
	return interp.Exec(p.points, p.grids, p.Kernels, values)
}

// halfShape returns the real<->half-spectrum shape for an oversampled (or
// non-oversampled) size vector: axis 0 collapses to n0/2+1, every other
// axis is unchanged.
func halfShape(ns []int) []int {
	hs := append([]int(nil), ns...)
	hs[0] = ns[0]/2 + 1
	return hs
}

func flatLen(ns []int) int {
	total := 1
	for _, n := range ns {
		total *= n
	}
	return total
}

// ensureRealBuffers allocates the per-channel real oversampled buffer and
// half-spectrum complex buffer used by the real transform path; when they
// are already sized for nchan it re-zeroes the real buffers only (the
// half-spectrum buffers are fully overwritten by every transform).
func (p *Plan) ensureRealBuffers(nchan int) {
	total := flatLen(p.Ntil)
	halfTotal := flatLen(halfShape(p.Ntil))
	if len(p.realUs) != nchan {
		p.realUs = make([][]float64, nchan)
		p.halfUs = make([][]complex128, nchan)
		for c := 0; c < nchan; c++ {
			p.realUs[c] = make([]float64, total)
			p.halfUs[c] = make([]complex128, halfTotal)
		}
		return
	}
	for c := 0; c < nchan; c++ {
		for i := range p.realUs[c] {
			p.realUs[c][i] = 0
		}
	}
}

// ExecType1Real is the real-valued sibling of ExecType1: values are real
// per-point samples, and out receives the non-oversampled half-spectrum
// coefficients (shape Ns with axis 0 collapsed to Ns[0]/2+1).
func (p *Plan) ExecType1Real(values [][]float64, out [][]complex128) error {
	if p.points == nil {
		return chk.Err("gonufft: ExecType1Real called before SetPoints")
	}
	if !p.Real {
		return chk.Err("gonufft: ExecType1Real called on a plan built with Options.Real=false; use ExecType1")
	}
	if len(values) != len(out) {
		return chk.Err("gonufft: ExecType1Real got %d value channels but %d output channels", len(values), len(out))
	}
	nchan := len(values)
	p.ensureRealBuffers(nchan)

	if err := spread.ExecReal(p.points, values, p.Kernels, p.Ntil, p.realUs); err != nil {
		return err
	}
	nsHalf := halfShape(p.Ns)
	outTotal := flatLen(nsHalf)
	for c := range p.realUs {
		if err := fft.RealND(p.realUs[c], p.halfUs[c], p.Ntil, false); err != nil {
			return err
		}
		if len(out[c]) != outTotal {
			return chk.Err("gonufft: ExecType1Real output channel %d has length %d, expected %d", c, len(out[c]), outTotal)
		}
		deconvolveHalfAndTruncate(p.halfUs[c], halfShape(p.Ntil), nsHalf, p.Ns, p.Kernels, p.Ks, out[c])
	}
	return nil
}

// ExecType2Real is the real-valued sibling of ExecType2: in carries the
// non-oversampled half-spectrum coefficients, and values receives the real
// per-point samples.
func (p *Plan) ExecType2Real(in [][]complex128, values [][]float64) error {
	if p.points == nil {
		return chk.Err("gonufft: ExecType2Real called before SetPoints")
	}
	if !p.Real {
		return chk.Err("gonufft: ExecType2Real called on a plan built with Options.Real=false; use ExecType2")
	}
	if len(in) != len(values) {
		return chk.Err("gonufft: ExecType2Real got %d input channels but %d value channels", len(in), len(values))
	}
	nchan := len(in)
	p.ensureRealBuffers(nchan)

	nsHalf := halfShape(p.Ns)
	inTotal := flatLen(nsHalf)
	ntilHalf := halfShape(p.Ntil)
	for c := range p.halfUs {
		if len(in[c]) != inTotal {
			return chk.Err("gonufft: ExecType2Real input channel %d has length %d, expected %d", c, len(in[c]), inTotal)
		}
		expandHalfAndDeconvolve(in[c], nsHalf, p.Ns, ntilHalf, p.Kernels, p.Ks, p.halfUs[c])
		if err := fft.RealND(p.realUs[c], p.halfUs[c], p.Ntil, true); err != nil {
			return err
		}
	}
	return interp.ExecReal(p.points, p.realUs, p.Kernels, p.Ntil, values)
}

// ghatCaches returns, for each axis, the kernel's ĝk vector divided by that
// axis's grid step Dx, indexed identically to ks[a] (position j holds
// ghat(ks[a][j])/Dx). spread and interp use the kernel samples without the
// Dx factor that turns their grid sum into the continuous integral, so the
// deconvolution divides by ĝk/Dx instead. ĝk itself is read from the cache
// NewPlan filled with kd.FourierAll(ks[a]); only the scaled copy is
// allocated on each call.
func ghatCaches(kernels []*kernel.Descriptor, ks [][]float64) [][]float64 {
	caches := make([][]float64, len(kernels))
	for a, kd := range kernels {
		ghat := kd.FourierAll(ks[a])
		scaled := make([]float64, len(ghat))
		for j, v := range ghat {
			scaled[j] = v / kd.Dx
		}
		caches[a] = scaled
	}
	return caches
}

// deconvolveHalfAndTruncate is deconvolveAndTruncate specialised to the
// real transform's half-spectrum layout: axis 0 keeps its index unchanged
// (no wraparound, since both shapes hold only non-negative axis-0 modes);
// every other axis uses the same signed-wraparound mapping as the complex
// path. ks holds the non-oversampled wavenumber vector per axis (ks[a][j]
// is the wavenumber at row-major position j), the same vectors NewPlan
// used to pre-populate each kernel's ĝk cache, so ghatCaches(...)[a][idx]
// is built from that cache instead of recomputing the Fourier transform
// per cell.
func deconvolveHalfAndTruncate(full []complex128, ntilHalf, nsHalf, ns []int, kernels []*kernel.Descriptor, ks [][]float64, out []complex128) {
	d := len(nsHalf)
	fullSt := rowStrides(ntilHalf)
	outSt := rowStrides(nsHalf)
	ghat := ghatCaches(kernels, ks)
	idx := make([]int, d)
	fullIdx := make([]int, d)
	for lin := 0; lin < len(out); lin++ {
		unflatten(lin, nsHalf, outSt, idx)
		g := 1.0
		for a := 0; a < d; a++ {
			if a == 0 {
				fullIdx[a] = idx[a]
			} else {
				fullIdx[a] = modeToFullIndex(idx[a], ns[a], ntilHalf[a])
			}
			g *= ghat[a][idx[a]]
		}
		foff := 0
		for a := 0; a < d; a++ {
			foff += fullIdx[a] * fullSt[a]
		}
		out[lin] = full[foff] / complex(g, 0)
	}
}

// expandHalfAndDeconvolve is the mirror of deconvolveHalfAndTruncate, used
// by ExecType2Real to populate the oversampled half-spectrum buffer.
func expandHalfAndDeconvolve(in []complex128, nsHalf, ns, ntilHalf []int, kernels []*kernel.Descriptor, ks [][]float64, full []complex128) {
	for i := range full {
		full[i] = 0
	}
	d := len(nsHalf)
	fullSt := rowStrides(ntilHalf)
	outSt := rowStrides(nsHalf)
	ghat := ghatCaches(kernels, ks)
	idx := make([]int, d)
	fullIdx := make([]int, d)
	for lin := 0; lin < len(in); lin++ {
		unflatten(lin, nsHalf, outSt, idx)
		g := 1.0
		for a := 0; a < d; a++ {
			if a == 0 {
				fullIdx[a] = idx[a]
			} else {
				fullIdx[a] = modeToFullIndex(idx[a], ns[a], ntilHalf[a])
			}
			g *= ghat[a][idx[a]]
		}
		foff := 0
		for a := 0; a < d; a++ {
			foff += fullIdx[a] * fullSt[a]
		}
		full[foff] = in[lin] / complex(g, 0)
	}
}

// deconvolveAndTruncate divides the oversampled spectrum by
// prod_d ghat_d(k_d)/Dx_d and copies the subset of modes corresponding to the
// non-oversampled wavenumber grid into out (row-major, shape ns). ks holds
// the non-oversampled wavenumber vector per axis, see ghatCaches.
func deconvolveAndTruncate(full []complex128, ntil, ns []int, kernels []*kernel.Descriptor, ks [][]float64, out []complex128) {
	d := len(ns)
	fullSt := rowStrides(ntil)
	outSt := rowStrides(ns)
	ghat := ghatCaches(kernels, ks)
	idx := make([]int, d)
	fullIdx := make([]int, d)
	for lin := 0; lin < len(out); lin++ {
		unflatten(lin, ns, outSt, idx)
		g := 1.0
		for a := 0; a < d; a++ {
			fullIdx[a] = modeToFullIndex(idx[a], ns[a], ntil[a])
			g *= ghat[a][idx[a]]
		}
		foff := 0
		for a := 0; a < d; a++ {
			foff += fullIdx[a] * fullSt[a]
		}
		out[lin] = full[foff] / complex(g, 0)
	}
}

// expandAndDeconvolve divides the caller's non-oversampled coefficients by
// prod_d ghat_d(k_d)/Dx_d (see ghatCaches) and scatters them into the oversampled buffer (zeroed
// first), the mirror of deconvolveAndTruncate.
func expandAndDeconvolve(in []complex128, ns, ntil []int, kernels []*kernel.Descriptor, ks [][]float64, full []complex128) {
	for i := range full {
		full[i] = 0
	}
	d := len(ns)
	fullSt := rowStrides(ntil)
	outSt := rowStrides(ns)
	ghat := ghatCaches(kernels, ks)
	idx := make([]int, d)
	fullIdx := make([]int, d)
	for lin := 0; lin < len(in); lin++ {
		unflatten(lin, ns, outSt, idx)
		g := 1.0
		for a := 0; a < d; a++ {
			fullIdx[a] = modeToFullIndex(idx[a], ns[a], ntil[a])
			g *= ghat[a][idx[a]]
		}
		foff := 0
		for a := 0; a < d; a++ {
			foff += fullIdx[a] * fullSt[a]
		}
		full[foff] = in[lin] / complex(g, 0)
	}
}

func rowStrides(ns []int) []int {
	d := len(ns)
	st := make([]int, d)
	st[d-1] = 1
	for a := d - 2; a >= 0; a-- {
		st[a] = st[a+1] * ns[a+1]
	}
	return st
}

func unflatten(lin int, ns, st []int, idx []int) {
	for a := range ns {
		idx[a] = (lin / st[a]) % ns[a]
	}
}

// modeToFullIndex maps a signed wavenumber's row-major index on the
// non-oversampled axis (length n) to the equivalent row-major index on the
// oversampled axis (length ntil), both following the same signed layout:
// low non-negative modes keep their index, negative modes shift to the top
// of the larger axis.
func modeToFullIndex(idx, n, ntil int) int {
	if idx <= (n-1)/2 {
		return idx
	}
	return ntil + (idx - n)
}
