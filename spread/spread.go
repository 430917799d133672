// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spread implements the type-1 NUFFT operation: scattering
// non-uniform sample values onto C co-located oversampled grids via the
// tensor product of per-axis kernel weights.
package spread

import (
	"runtime"
	"sync"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonufft/grid"
	"github.com/cpmech/gonufft/kernel"
)

// Grid is a flat, row-major (last axis contiguous) complex oversampled
// buffer of shape Ns, owned by the caller and zero-initialised before Exec.
type Grid struct {
	Ns   []int
	Data []complex128
}

// NewGrid allocates a zeroed grid of the given oversampled shape.
func NewGrid(ns []int) *Grid {
	total := 1
	for _, n := range ns {
		total *= n
	}
	return &Grid{Ns: append([]int(nil), ns...), Data: make([]complex128, total)}
}

// Zero clears the grid in place, for buffer reuse across transforms.
func (g *Grid) Zero() {
	for i := range g.Data {
		g.Data[i] = 0
	}
}

// strides returns row-major strides for shape ns (last axis fastest).
func strides(ns []int) []int {
	d := len(ns)
	st := make([]int, d)
	st[d-1] = 1
	for a := d - 2; a >= 0; a-- {
		st[a] = st[a+1] * ns[a+1]
	}
	return st
}

// Exec performs the type-1 spread: for each point p and channel c, adds
// values[c][p] * prod_d kernels[d](x_d[p]) into the 2M^D neighbourhood of
// grids[c], with periodic wrap. Inputs: points[d] has length P for each of
// D axes (struct-of-arrays); values[c] has length P for each of C channels;
// grids[c] has shape Ns matching kernels' bound axis lengths.
func Exec(points [][]float64, values [][]complex128, kernels []*kernel.Descriptor, grids []*Grid) error {
	d := len(points)
	if d != len(kernels) {
		return chk.Err("spread: %d point axes but %d kernels", d, len(kernels))
	}
	if len(values) != len(grids) {
		return chk.Err("spread: %d channels of values but %d grids", len(values), len(grids))
	}
	if len(grids) == 0 {
		return nil
	}
	p := len(points[0])
	for i, pts := range points {
		if len(pts) != p {
			return chk.Err("spread: axis %d has %d points, expected %d", i, len(pts), p)
		}
	}
	for c, v := range values {
		if len(v) != p {
			return chk.Err("spread: channel %d has %d values, expected %d", c, len(v), p)
		}
	}
	ns := grids[0].Ns
	if len(ns) != d {
		return chk.Err("spread: grid has %d axes, expected %d", len(ns), d)
	}
	for _, g := range grids {
		if len(g.Ns) != d {
			return chk.Err("spread: grid has %d axes, expected %d", len(g.Ns), d)
		}
		for a := 0; a < d; a++ {
			if g.Ns[a] != ns[a] {
				return chk.Err("spread: grids disagree on shape at axis %d", a)
			}
		}
	}
	if p == 0 {
		return nil
	}
	return execBlocked(points, values, kernels, grids, ns)
}

// execBlocked partitions points across a fixed worker pool, one disjoint,
// deterministic point range per worker. Each worker accumulates its range
// into its own scratch grid using the wrap-around neighbour variant; the
// scratch grids are added into the shared grids after a barrier, so the
// oversampled grid itself is never tiled or written concurrently - the
// "shadow buffer" alternative spec §5 permits when block-tiling the grid
// itself is impractical for small D.
func execBlocked(points [][]float64, values [][]complex128, kernels []*kernel.Descriptor, grids []*Grid, ns []int) error {
	p := len(points[0])
	nw := runtime.GOMAXPROCS(0)
	if nw > p {
		nw = p
	}
	if nw < 1 {
		nw = 1
	}
	if nw == 1 {
		acc := newAccumulator(ns, len(grids))
		spreadRange(points, values, kernels, acc, 0, p)
		acc.mergeInto(grids)
		return nil
	}

	chunk := (p + nw - 1) / nw
	accs := make([]*accumulator, nw)
	var wg sync.WaitGroup
	for w := 0; w < nw; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > p {
			hi = p
		}
		if lo >= hi {
			continue
		}
		accs[w] = newAccumulator(ns, len(grids))
		wg.Add(1)
		go func(acc *accumulator, lo, hi int) {
			defer wg.Done()
			spreadRange(points, values, kernels, acc, lo, hi)
		}(accs[w], lo, hi)
	}
	wg.Wait()
	for _, acc := range accs {
		if acc != nil {
			acc.mergeInto(grids)
		}
	}
	return nil
}

// accumulator is a per-worker shadow buffer (spec §5's "per-thread shadow
// buffers merged at barrier" discipline), indexed identically to the final
// grids so merging is a plain element-wise add.
type accumulator struct {
	ns    []int
	total int
	data  [][]complex128 // one flat buffer per channel
}

func newAccumulator(ns []int, nchan int) *accumulator {
	total := 1
	for _, n := range ns {
		total *= n
	}
	data := make([][]complex128, nchan)
	for c := range data {
		data[c] = make([]complex128, total)
	}
	return &accumulator{ns: append([]int(nil), ns...), total: total, data: data}
}

func (a *accumulator) mergeInto(grids []*Grid) {
	for c, g := range grids {
		src := a.data[c]
		for i, v := range src {
			g.Data[i] += v
		}
	}
}

func spreadRange(points [][]float64, values [][]complex128, kernels []*kernel.Descriptor, acc *accumulator, lo, hi int) {
	d := len(points)
	ns := acc.ns
	st := strides(ns)

	// scratch reused across points in this range
	idx := make([]int, d)
	kvals := make([][]float64, d)
	for a := range kvals {
		kvals[a] = make([]float64, 2*kernels[a].M)
	}
	nbr := make([][]int, d)
	for a := range nbr {
		nbr[a] = make([]int, 2*kernels[a].M)
	}

	for p := lo; p < hi; p++ {
		for a := 0; a < d; a++ {
			x := grid.ToUnitCell(points[a][p])
			i := kernels[a].EvaluateInto(x, kvals[a])
			grid.Neighbours(i, kernels[a].M, ns[a], true, nbr[a])
		}
		tensorAccumulate(d, kvals, nbr, st, idx, values, acc.data, p)
	}
}

// ExecReal is the real-valued sibling of Exec: it spreads real-valued
// point samples into real-valued oversampled grids (flat, row-major, shape
// ns), for use with fft.RealND's real<->half-spectrum transform instead of
// the full complex path.
func ExecReal(points [][]float64, values [][]float64, kernels []*kernel.Descriptor, ns []int, bufs [][]float64) error {
	d := len(points)
	if d != len(kernels) {
		return chk.Err("spread: %d point axes but %d kernels", d, len(kernels))
	}
	if len(values) != len(bufs) {
		return chk.Err("spread: %d channels of values but %d buffers", len(values), len(bufs))
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
			return chk.Err("spread: buffer %d has length %d, expected %d", c, len(buf), total)
		}
		if len(values[c]) != p {
			return chk.Err("spread: channel %d has %d values, expected %d", c, len(values[c]), p)
		}
	}
	if p == 0 {
		return nil
	}

	st := strides(ns)
	idx := make([]int, d)
	kvals := make([][]float64, d)
	for a := range kvals {
		kvals[a] = make([]float64, 2*kernels[a].M)
	}
	nbr := make([][]int, d)
	for a := range nbr {
		nbr[a] = make([]int, 2*kernels[a].M)
	}

	for pt := 0; pt < p; pt++ {
		for a := 0; a < d; a++ {
			x := grid.ToUnitCell(points[a][pt])
			i := kernels[a].EvaluateInto(x, kvals[a])
			grid.Neighbours(i, kernels[a].M, ns[a], true, nbr[a])
		}
		tensorAccumulateReal(d, kvals, nbr, st, idx, values, bufs, pt)
	}
	return nil
}

func tensorAccumulateReal(d int, kvals [][]float64, nbr [][]int, st []int, idx []int, values [][]float64, bufs [][]float64, p int) {
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
			buf[off] += w * values[c][p]
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

// tensorAccumulate walks the D-dimensional 2M_1 x ... x 2M_D neighbourhood
// via an odometer (mixed-radix counter) over idx, adding the tensor-product
// weight times each channel's point value into the flat accumulator at the
// corresponding strided offset.
func tensorAccumulate(d int, kvals [][]float64, nbr [][]int, st []int, idx []int, values [][]complex128, data [][]complex128, p int) {
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
		for c, buf := range data {
			buf[off] += complex(w, 0) * values[c][p]
		}
		// advance the odometer
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
