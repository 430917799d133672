// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_grid01(tst *testing.T) {

	chk.PrintTitle("grid01: central cell invariant over a dense sample")

	dx := twoPi / 32.0
	for k := 0; k < 1000; k++ {
		x := ToUnitCell(float64(k) * 0.0179)
		i, _ := CentralCell(x, dx)
		lo := float64(i-1) * dx
		hi := float64(i) * dx
		if x < lo-1e-9 || x >= hi+1e-9 {
			tst.Fatalf("cell invariant violated: x=%v i=%v lo=%v hi=%v", x, i, lo, hi)
		}
	}
}

func Test_grid02(tst *testing.T) {

	chk.PrintTitle("grid02: boundary cases at 0 and 2π")

	dx := twoPi / 16.0
	i0, _ := CentralCell(ToUnitCell(0), dx)
	chk.IntAssert(i0, 1)
	i1, _ := CentralCell(ToUnitCell(twoPi), dx)
	chk.IntAssert(i1, 1)

	// just below 2π must not wrap past N
	x := twoPi - 1e-12
	i2, _ := CentralCell(ToUnitCell(x), dx)
	chk.IntAssert(i2, 16)
}

func Test_grid03(tst *testing.T) {

	chk.PrintTitle("grid03: periodic neighbour wrap matches {(i-m+j-1) mod n + 1}")

	n, m, i := 16, 4, 2
	out := make([]int, 2*m)
	Neighbours(i, m, n, true, out)
	for j := 1; j <= 2*m; j++ {
		want := mod(i-m+j-1, n) + 1
		if out[j-1] != want {
			tst.Fatalf("neighbour j=%d: got %d want %d", j, out[j-1], want)
		}
	}
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

func Test_grid04(tst *testing.T) {

	chk.PrintTitle("grid04: NextSmooth235 only emits {2,3,5}-smooth integers >= n")

	cases := []struct{ n, want int }{
		{1, 1}, {7, 8}, {8, 8}, {11, 12}, {127, 128}, {97, 100},
	}
	for _, c := range cases {
		got := NextSmooth235(c.n)
		if got != c.want {
			tst.Fatalf("NextSmooth235(%d): got %d want %d", c.n, got, c.want)
		}
		if !isSmooth235(got) || got < c.n {
			tst.Fatalf("NextSmooth235(%d)=%d is not a valid smooth bound", c.n, got)
		}
	}
}

func Test_grid05(tst *testing.T) {

	chk.PrintTitle("grid05: wavenumber layouts")

	chk.Ints(tst, "signed n=4", WavenumbersSigned(4), []int{0, 1, -2, -1})
	chk.Ints(tst, "signed n=5", WavenumbersSigned(5), []int{0, 1, 2, -2, -1})
	chk.Ints(tst, "half n=8", WavenumbersHalf(8), []int{0, 1, 2, 3, 4})
}
