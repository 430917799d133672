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
	register(Gaussian, optimalGaussian)
}

// optimalGaussian builds a truncated-Gaussian kernel whose width is chosen,
// Greengard-Lee style, to minimise aliasing error at the requested
// oversampling sigma: the continuous-space std. dev. (in grid-cell units)
// is w = M / sqrt(2*sigma*(sigma-0.5)).
func optimalGaussian(m int, dx, sigma float64) (*Descriptor, error) {
	w := float64(m) / math.Sqrt(2*sigma*(sigma-0.5))

	f := func(y float64) float64 {
		z := float64(m) * y // map y in [-1,1] to z in [-m,m] grid-cell units
		return math.Exp(-0.5 * z * z / (w * w))
	}
	n := nPolyFor(m)
	tbl, err := poly.Build(f, m, n)
	if err != nil {
		return nil, err
	}

	d := &Descriptor{
		Family: Gaussian,
		M:      m,
		Dx:     dx,
		Params: fun.Prms{
			&fun.Prm{N: "w", V: w},
		},
		tbl: tbl,
	}
	sigmaPhys := w * dx
	d.fourierFn = func(k float64) float64 {
		return math.Sqrt(2*math.Pi) * sigmaPhys * math.Exp(-0.5*k*k*sigmaPhys*sigmaPhys)
	}
	return d, nil
}
