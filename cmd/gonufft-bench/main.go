// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gonufft-bench drives a single type-1/type-2 NUFFT round trip at
// a requested size, dimension, kernel family, and oversampling factor,
// reporting timing and the round-trip error against a known input.
package main

import (
	"flag"
	"math"
	"math/cmplx"
	"strings"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"

	"github.com/cpmech/gonufft"
	"github.com/cpmech/gonufft/kernel"
)

func main() {

	n := flag.Int("n", 64, "grid size per axis")
	d := flag.Int("d", 1, "dimension (1, 2, or 3)")
	m := flag.Int("m", 6, "kernel half-support M")
	sigma := flag.Float64("sigma", 2.0, "oversampling factor")
	fam := flag.String("kernel", "kb", "kernel family: bspline, gaussian, kb, kbbackwards")
	np := flag.Int("np", 1000, "number of non-uniform points")
	seed := flag.Int("seed", 0, "random seed")
	flag.Parse()

	io.PfWhite("\ngonufft-bench\n\n")

	family, err := parseFamily(*fam)
	if err != nil {
		chk.Panic("%v", err)
	}
	if *d < 1 || *d > 3 {
		chk.Panic("dimension must be 1, 2, or 3; got %d", *d)
	}

	ns := make([]int, *d)
	for a := range ns {
		ns[a] = *n
	}

	plan, err := gonufft.NewPlan(ns, gonufft.Options{HalfSupport: *m, Sigma: *sigma, Kernel: family})
	if err != nil {
		chk.Panic("%v", err)
	}
	io.Pf("dimension    = %d\n", *d)
	io.Pf("grid size    = %v\n", ns)
	io.Pf("oversampled  = %v (sigma=%.3f)\n", plan.Ntil, plan.Sigma)
	io.Pf("half-support = %d\n", *m)
	io.Pf("kernel       = %s\n", family)
	io.Pf("points       = %d\n", *np)
	for a, kd := range plan.Kernels {
		io.Pf("axis %d params:", a)
		for _, p := range kd.Params {
			io.Pf(" %s=%g", p.N, p.V)
		}
		io.Pf("\n")
	}
	io.Pf("\n")

	rnd.Init(*seed)
	points := make([][]float64, *d)
	for a := range points {
		points[a] = make([]float64, *np)
		for p := range points[a] {
			points[a][p] = rnd.Float64(0, 2*math.Pi)
		}
	}
	if err := plan.SetPoints(points); err != nil {
		chk.Panic("%v", err)
	}

	total := 1
	for _, x := range ns {
		total *= x
	}
	values := make([]complex128, *np)
	for p := range values {
		values[p] = complex(rnd.Float64(-1, 1), rnd.Float64(-1, 1))
	}

	t0 := time.Now()
	coeffs := make([]complex128, total)
	if err := plan.ExecType1([][]complex128{values}, [][]complex128{coeffs}); err != nil {
		chk.Panic("%v", err)
	}
	t1 := time.Now()
	io.Pf("type-1: %v\n", t1.Sub(t0))

	recovered := make([]complex128, *np)
	if err := plan.ExecType2([][]complex128{coeffs}, [][]complex128{recovered}); err != nil {
		chk.Panic("%v", err)
	}
	t2 := time.Now()
	io.Pf("type-2: %v\n", t2.Sub(t1))

	maxErr := 0.0
	for p := range values {
		if e := cmplx.Abs(recovered[p] - values[p]); e > maxErr {
			maxErr = e
		}
	}
	io.Pf("\nmax |type-2(type-1(v)) - v| over all points: %.6e\n", maxErr)
}

func parseFamily(s string) (kernel.Family, error) {
	switch strings.ToLower(s) {
	case "bspline":
		return kernel.BSpline, nil
	case "gaussian":
		return kernel.Gaussian, nil
	case "kb", "kaiserbessel":
		return kernel.KaiserBessel, nil
	case "kbbackwards", "kaiserbesselbackwards":
		return kernel.KaiserBesselBackwards, nil
	}
	return kernel.BSpline, chk.Err("unknown kernel family %q", s)
}
