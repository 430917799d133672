// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fft adapts gonum.org/v1/gonum/dsp/fourier to the narrow
// real/complex forward/inverse contract the planner needs (spec §6's
// "external collaborator", treated here as an honest dependency rather
// than a stub). Multi-dimensional transforms are built as a sequence of
// 1-D transforms along each axis, matching the row-major (last axis
// contiguous) layout the spread/interp packages already use.
package fft

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ComplexND performs an in-place D-dimensional complex FFT (forward if
// inverse is false, otherwise the inverse transform) over data of shape ns,
// row-major with the last axis contiguous. Neither direction is normalised
// (gonum's convention): a forward transform followed by an inverse one
// multiplies the data by the product of ns.
func ComplexND(data []complex128, ns []int, inverse bool) error {
	total := 1
	for _, n := range ns {
		total *= n
	}
	if len(data) != total {
		return chk.Err("fft: data length %d does not match shape product %d", len(data), total)
	}
	d := len(ns)
	st := strides(ns)
	for axis := 0; axis < d; axis++ {
		n := ns[axis]
		plan := fourier.NewCmplxFFT(n)
		line := make([]complex128, n)
		count := total / n
		base := make([]int, d)
		for c := 0; c < count; c++ {
			offsetFromCounter(base, ns, axis, c)
			start := dot(base, st)
			for k := 0; k < n; k++ {
				line[k] = data[start+k*st[axis]]
			}
			var out []complex128
			if inverse {
				out = plan.Sequence(nil, line)
			} else {
				out = plan.Coefficients(nil, line)
			}
			for k := 0; k < n; k++ {
				data[start+k*st[axis]] = out[k]
			}
		}
	}
	return nil
}

// strides returns row-major strides (last axis fastest).
func strides(ns []int) []int {
	d := len(ns)
	st := make([]int, d)
	st[d-1] = 1
	for a := d - 2; a >= 0; a-- {
		st[a] = st[a+1] * ns[a+1]
	}
	return st
}

func dot(a, b []int) int {
	s := 0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// offsetFromCounter fills base with the multi-index of the c-th line
// running along axis, enumerating every other axis in row-major order.
func offsetFromCounter(base []int, ns []int, axis, c int) {
	d := len(ns)
	for a := range base {
		base[a] = 0
	}
	for a := d - 1; a >= 0; a-- {
		if a == axis {
			continue
		}
		base[a] = c % ns[a]
		c /= ns[a]
	}
}

// RealND performs a D-dimensional real<->half-spectrum-complex transform:
// forward (inverse=false) consumes a real buffer of shape ns and produces a
// complex half-spectrum buffer of shape (ns[0]/2+1, ns[1], ..., ns[D-1]);
// inverse consumes that half-spectrum and reconstructs the real buffer.
// Axis 0 carries the real<->complex half-spectrum collapse; the remaining
// axes are full complex FFTs, matching spec §4.6's wavenumber layout.
func RealND(real []float64, half []complex128, ns []int, inverse bool) error {
	d := len(ns)
	n0 := ns[0]
	halfN0 := n0/2 + 1
	hns := append([]int(nil), ns...)
	hns[0] = halfN0

	totalReal := 1
	for _, n := range ns {
		totalReal *= n
	}
	totalHalf := 1
	for _, n := range hns {
		totalHalf *= n
	}
	if len(real) != totalReal {
		return chk.Err("fft: real buffer length %d does not match shape product %d", len(real), totalReal)
	}
	if len(half) != totalHalf {
		return chk.Err("fft: half-spectrum buffer length %d does not match shape product %d", len(half), totalHalf)
	}

	if !inverse {
		// axis 0: real -> half-spectrum complex
		realPlan := fourier.NewFFT(n0)
		count := totalReal / n0
		rst := strides(ns)
		hst := strides(hns)
		base := make([]int, d)
		line := make([]float64, n0)
		for c := 0; c < count; c++ {
			offsetFromCounter(base, ns, 0, c)
			rstart := dot(base, rst)
			hstart := dot(base, hst)
			for k := 0; k < n0; k++ {
				line[k] = real[rstart+k*rst[0]]
			}
			out := realPlan.Coefficients(nil, line)
			for k := 0; k < halfN0; k++ {
				half[hstart+k*hst[0]] = out[k]
			}
		}
		// remaining axes: full complex FFT on the half-spectrum buffer
		if d > 1 {
			if err := complexSubND(half, hns, 1, false); err != nil {
				return err
			}
		}
		return nil
	}

	// inverse: complex axes first, then axis 0 back to real
	if d > 1 {
		if err := complexSubND(half, hns, 1, true); err != nil {
			return err
		}
	}
	realPlan := fourier.NewFFT(n0)
	count := totalReal / n0
	rst := strides(ns)
	hst := strides(hns)
	base := make([]int, d)
	line := make([]complex128, halfN0)
	for c := 0; c < count; c++ {
		offsetFromCounter(base, ns, 0, c)
		rstart := dot(base, rst)
		hstart := dot(base, hst)
		for k := 0; k < halfN0; k++ {
			line[k] = half[hstart+k*hst[0]]
		}
		out := realPlan.Sequence(nil, line)
		for k := 0; k < n0; k++ {
			real[rstart+k*rst[0]] = out[k]
		}
	}
	return nil
}

// complexSubND runs a complex FFT over every axis in [fromAxis, d), each
// time enumerating the full cross-section of all other axes (including any
// below fromAxis, which carry real-derived half-spectrum data that still
// needs the remaining axes transformed independently at every one of its
// indices).
func complexSubND(data []complex128, ns []int, fromAxis int, inverse bool) error {
	d := len(ns)
	st := strides(ns)
	total := 1
	for _, n := range ns {
		total *= n
	}
	for axis := fromAxis; axis < d; axis++ {
		n := ns[axis]
		plan := fourier.NewCmplxFFT(n)
		count := total / n
		line := make([]complex128, n)
		base := make([]int, d)
		for c := 0; c < count; c++ {
			offsetFromCounter(base, ns, axis, c)
			start := dot(base, st)
			for k := 0; k < n; k++ {
				line[k] = data[start+k*st[axis]]
			}
			var out []complex128
			if inverse {
				out = plan.Sequence(nil, line)
			} else {
				out = plan.Coefficients(nil, line)
			}
			for k := 0; k < n; k++ {
				data[start+k*st[axis]] = out[k]
			}
		}
	}
	return nil
}
