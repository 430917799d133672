// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid implements the point-to-cell indexing, periodic neighbour
// expansion, {2,3,5}-smooth oversampled sizing, and FFT-natural wavenumber
// layouts shared by the spreading, interpolation, and planner packages.
package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

const twoPi = 2 * math.Pi

// ToUnitCell reduces x to the fundamental cell [0, 2π).
func ToUnitCell(x float64) float64 {
	y := x - twoPi*math.Floor(x/twoPi)
	if y >= twoPi { // guards against floating-point drift at the top edge
		y -= twoPi
	}
	if y < 0 {
		y = 0
	}
	return y
}

// CentralCell returns the 1-based index i of the cell owning x (already
// reduced to [0, 2π)) under step dx, together with the fractional position
// xi = (x - (i-1)·dx)/dx in [0,1) within that cell, satisfying
// (i-1)·dx <= x < i·dx.
func CentralCell(x, dx float64) (i int, xi float64) {
	i = int(math.Floor(x/dx)) + 1
	if float64(i)*dx <= x {
		i++
	}
	xi = (x - float64(i-1)*dx) / dx
	if xi < 0 {
		xi = 0
	} else if xi >= 1 {
		xi = 1 - 1e-15
	}
	return
}

// Neighbours expands the 2M cell indices (i-M+1) .. (i+M) around the
// 1-based central cell i, wrapped modulo n into 1..n when wrap is true, or
// left unwrapped (caller's responsibility, used for interior-block tiles)
// when wrap is false. Requires m < n/2.
func Neighbours(i, m, n int, wrap bool, out []int) {
	if len(out) != 2*m {
		chk.Panic("grid: Neighbours output length %d does not match 2m=%d", len(out), 2*m)
	}
	if 2*m >= n {
		chk.Panic("grid: half-width m=%d violates m < n/2 for n=%d", m, n)
	}
	if !wrap {
		j := i - m + 1
		for k := 0; k < 2*m; k++ {
			out[k] = j
			j++
		}
		return
	}
	j := i - m + 1
	for j < 1 {
		j += n
	}
	for j > n {
		j -= n
	}
	for k := 0; k < 2*m; k++ {
		out[k] = j
		if j == n {
			j = 1
		} else {
			j++
		}
	}
}

// smoothFactors are the admissible prime factors of an oversampled axis length.
var smoothFactors = [3]int{2, 3, 5}

// NextSmooth235 returns the smallest integer >= n whose only prime factors
// are 2, 3, or 5.
func NextSmooth235(n int) int {
	if n < 1 {
		n = 1
	}
	for cand := n; ; cand++ {
		if isSmooth235(cand) {
			return cand
		}
	}
}

func isSmooth235(n int) bool {
	for _, p := range smoothFactors {
		for n%p == 0 {
			n /= p
		}
	}
	return n == 1
}

// WavenumbersSigned returns the signed FFT-natural wavenumber layout on n
// samples: 0, 1, ..., n/2-1, -n/2, ..., -1 for even n, or
// 0, 1, ..., (n-1)/2, -(n-1)/2, ..., -1 for odd n.
func WavenumbersSigned(n int) []int {
	ks := make([]int, n)
	for k := 0; k < n; k++ {
		if k <= (n-1)/2 {
			ks[k] = k
		} else {
			ks[k] = k - n
		}
	}
	return ks
}

// WavenumbersHalf returns the real-FFT half-spectrum layout 0, 1, ..., n/2
// used on axis 1 of a real transform.
func WavenumbersHalf(n int) []int {
	ks := make([]int, n/2+1)
	for k := range ks {
		ks[k] = k
	}
	return ks
}
