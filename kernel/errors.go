// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "github.com/cpmech/gosl/chk"

// errKBOverflow reports kernel-parameter overflow (spec §4.7): an excessive
// beta drove I0(beta) to infinity or NaN during construction.
func errKBOverflow(beta float64) error {
	return chk.Err("kernel: Kaiser-Bessel shape beta=%g overflowed I0 during construction", beta)
}
