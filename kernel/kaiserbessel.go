// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"

	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gonufft/poly"
)

func init() {
	register(KaiserBessel, func(m int, dx, sigma float64) (*Descriptor, error) {
		return optimalKaiserBessel(m, dx, sigma, false)
	})
	register(KaiserBesselBackwards, func(m int, dx, sigma float64) (*Descriptor, error) {
		return optimalKaiserBessel(m, dx, sigma, true)
	})
}

// optimalKaiserBessel builds a Kaiser-Bessel (or, with backwards=true, its
// symmetry-flipped "backwards" sibling - spec §4.2) with shape beta chosen
// from the FINUFFT/Shamshigar-Bagge-Tornberg-matched formula
//
//	beta = gamma * pi * M * (1 - 1/(2*sigma)), gamma ~= 0.97
func optimalKaiserBessel(m int, dx, sigma float64, backwards bool) (*Descriptor, error) {
	const gamma = 0.97
	beta := gamma * math.Pi * float64(m) * (1 - 1/(2*sigma))
	i0beta := besselI0(beta)
	if math.IsInf(i0beta, 1) || math.IsNaN(i0beta) {
		return nil, errKBOverflow(beta)
	}

	f := func(y float64) float64 {
		arg := 1 - y*y
		if arg < 0 {
			arg = 0
		}
		return besselI0(beta*math.Sqrt(arg)) / i0beta
	}
	n := nPolyFor(m)
	tbl, err := poly.Build(f, m, n)
	if err != nil {
		return nil, err
	}

	fam := KaiserBessel
	if backwards {
		fam = KaiserBesselBackwards
	}
	d := &Descriptor{
		Family: fam,
		M:      m,
		Dx:     dx,
		Params: fun.Prms{
			&fun.Prm{N: "beta", V: beta},
		},
		backwards: backwards,
		tbl:       tbl,
	}
	md := float64(m) * dx
	d.fourierFn = func(k float64) float64 {
		return kbFourier(k, md, beta, i0beta)
	}
	return d, nil
}

// kbFourier is the modified-Bessel closed form for the Fourier transform of
// the Kaiser-Bessel window of half-support md = M*dx and shape beta:
//
//	phihat(k) = (2*md/I0(beta)) * sinh(sqrt(beta^2-(md k)^2)) / sqrt(beta^2-(md k)^2)
//
// continued analytically past beta via sin/sqrt for |md k| > beta.
func kbFourier(k, md, beta, i0beta float64) float64 {
	arg := md * k
	disc := beta*beta - arg*arg
	var val float64
	switch {
	case disc > 1e-14:
		s := math.Sqrt(disc)
		val = math.Sinh(s) / s
	case disc < -1e-14:
		s := math.Sqrt(-disc)
		val = math.Sin(s) / s
	default:
		val = 1
	}
	return 2 * md * val / i0beta
}

// besselI0 evaluates the modified Bessel function of the first kind, order
// 0, via its convergent power series. Go's standard math package has no I0;
// the teacher itself hand-rolls small special functions locally (e.g.
// mreten's closed-form retention-curve derivatives) rather than reaching
// for a dedicated special-functions dependency, so this follows suit.
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	term := 1.0
	sum := 1.0
	halfSq := (ax / 2) * (ax / 2)
	for k := 1; k <= 60; k++ {
		term *= halfSq / (float64(k) * float64(k))
		sum += term
		if term < sum*1e-18 {
			break
		}
	}
	return sum
}
