// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainutil

const (
	// QuarkPerVantacent is the number of quarks in one vantachain cent.
	QuarkPerVantacent = 1e6

	// QuarkPerVantachain is the number of quarks in one vantachain (1 VNT).
	QuarkPerVantachain = 1e8

	// MaxQuark is the maximum amount that can ever be in circulation across
	// all three reward channels combined, in quarks.
	MaxQuark = 84e6 * QuarkPerVantachain
)
