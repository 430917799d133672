// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interp implements the type-2 NUFFT operation: gathering values
// at non-uniform points from C oversampled grids via the tensor product of
// per-axis kernel weights, the gather-direction mirror of package spread.
package interp

import (
	"runtime"
	"sync"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonufft/grid"
	"github.com/cpmech/gonufft/kernel"
	"github.com/cpmech/gonufft/spread"
)

// Exec performs the type-2 interpolation: for each point p and channel c,
// values[c][p] = sum over the 2M^D neighbourhood of prod_d kernels[d] *
// grids[c][neighbour]. No accumulation across points, so point ranges are
// trivially safe to parallelise (reads only).
func Exec(points [][]float64, grids []*spread.Grid, kernels []*kernel.Descriptor, values [][]complex128) error {
	d := len(points)
	if d != len(kernels) {
		return chk.Err("interp: %d point axes but %d kernels", d, len(kernels))
	}
	if len(values) != len(grids) {
		return chk.Err("interp: %d channels of values but %d grids", len(values), len(grids))
	}
	if len(grids) == 0 {
		return nil
	}
	p := len(points[0])
	for i, pts := range points {
		if len(pts) != p {
			return chk.Err("interp: axis %d has %d points, expected %d", i, len(pts), p)
		}
	}
	for c, v := range values {
		if len(v) != p {
			return chk.Err("interp: channel %d has %d output slots, expected %d", c, len(v), p)
		}
	}
	ns := grids[0].Ns
	for _, g := range grids {
		if len(g.Ns) != d {
			return chk.Err("interp: grid has %d axes, expected %d", len(g.Ns), d)
		}
		for a := 0; a < d; a++ {
			if g.Ns[a] != ns[a] {
				return chk.Err("interp: grids disagree on shape at axis %d", a)
			}
		}
	}
	if p == 0 {
		return nil
	}

	nw := runtime.GOMAXPROCS(0)
	if nw > p {
		nw = p
	}
	if nw < 1 {
		nw = 1
	}
	chunkSize := (p + nw - 1) / nw
	var wg sync.WaitGroup
	for w := 0; w < nw; w++ {
		lo := w * chunkSize
		hi := lo + chunkSize
		if hi > p {
			hi = p
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			gatherRange(points, grids, kernels, values, ns, lo, hi)
		}(lo, hi)
	}
	wg.Wait()
	return nil
}

func gatherRange(points [][]float64, grids []*spread.Grid, kernels []*kernel.Descriptor, values [][]complex128, ns []int, lo, hi int) {
	d := len(points)
	st := gridStrides(ns)

	idx := make([]int, d)
	kvals := make([][]float64, d)
	for a := range kvals {
		kvals[a] = make([]float64, 2*kernels[a].M)
	}
	nbr := make([][]int, d)
	for a := range nbr {
		nbr[a] = make([]int, 2*kernels[a].M)
	}
	acc := make([]complex128, len(grids))

	for p := lo; p < hi; p++ {
		for a := 0; a < d; a++ {
			x := grid.ToUnitCell(points[a][p])
			i := kernels[a].EvaluateInto(x, kvals[a])
			grid.Neighbours(i, kernels[a].M, ns[a], true, nbr[a])
		}
		tensorGather(d, kvals, nbr, st, idx, grids, values, p, acc)
	}
}

// ExecReal is the real-valued sibling of Exec: it gathers from real-valued
// oversampled grids (flat, row-major, shape ns) into real-valued per-point
// values, for use with fft.RealND's real<->half-spectrum path.
func ExecReal(points [][]float64, bufs [][]float64, kernels []*kernel.Descriptor, ns []int, values [][]float64) error {
	d := len(points)
	if d != len(kernels) {
		return chk.Err("interp: %d point axes but %d kernels", d, len(kernels))
	}
	if len(values) != len(bufs) {
		return chk.Err("interp: %d channels of values but %d buffers", len(values), len(bufs))
	}
	if len(bufs) == 0 {
		return nil
	}
	p := len(points[0])
	total := 1
	for _, n := range ns {
		total *= n
	}
	for c, buf := range bufs {
		if len(buf) != total {
			return chk.Err("interp: buffer %d has length %d, expected %d", c, len(buf), total)
		}
		if len(values[c]) != p {
			return chk.Err("interp: channel %d has %d output slots, expected %d", c, len(values[c]), p)
		}
	}
	if p == 0 {
		return nil
	}

	st := gridStrides(ns)
	idx := make([]int, d)
	kvals := make([][]float64, d)
	for a := range kvals {
		kvals[a] = make([]float64, 2*kernels[a].M)
	}
	nbr := make([][]int, d)
	for a := range nbr {
		nbr[a] = make([]int, 2*kernels[a].M)
	}
	acc := make([]float64, len(bufs))

	for pt := 0; pt < p; pt++ {
		for a := 0; a < d; a++ {
			x := grid.ToUnitCell(points[a][pt])
			i := kernels[a].EvaluateInto(x, kvals[a])
			grid.Neighbours(i, kernels[a].M, ns[a], true, nbr[a])
		}
		for c := range acc {
			acc[c] = 0
		}
		tensorGatherReal(d, kvals, nbr, st, idx, bufs, acc)
		for c := range bufs {
			values[c][pt] = acc[c]
		}
	}
	return nil
}

func tensorGatherReal(d int, kvals [][]float64, nbr [][]int, st []int, idx []int, bufs [][]float64, acc []float64) {
	for a := range idx {
		idx[a] = 0
	}
	for {
		w := 1.0
		off := 0
		for a := 0; a < d; a++ {
			w *= kvals[a][idx[a]]
			off += (nbr[a][idx[a]] - 1) * st[a]
		}
		for c, buf := range bufs {
			acc[c] += w * buf[off]
		}
		a := d - 1
		for a >= 0 {
			idx[a]++
			if idx[a] < len(kvals[a]) {
				break
			}
			idx[a] = 0
			a--
		}
		if a < 0 {
			return
		}
	}
}

func gridStrides(ns []int) []int {
	d := len(ns)
	st := make([]int, d)
	st[d-1] = 1
	for a := d - 2; a >= 0; a-- {
		st[a] = st[a+1] * ns[a+1]
	}
	return st
}

func tensorGather(d int, kvals [][]float64, nbr [][]int, st []int, idx []int, grids []*spread.Grid, values [][]complex128, p int, acc []complex128) {
	for a := range idx {
		idx[a] = 0
	}
	for c := range acc {
		acc[c] = 0
	}
	for {
		w := 1.0
		off := 0
		for a := 0; a < d; a++ {
			w *= kvals[a][idx[a]]
			off += (nbr[a][idx[a]] - 1) * st[a]
		}
		for c, g := range grids {
			acc[c] += complex(w, 0) * g.Data[off]
		}
		a := d - 1
		for a >= 0 {
			idx[a]++
			if idx[a] < len(kvals[a]) {
				break
			}
			idx[a] = 0
			a--
		}
		if a < 0 {
			break
		}
	}
	for c := range grids {
		values[c][p] = acc[c]
	}
}
