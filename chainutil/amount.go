// Copyright (c) 2013, 2014 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AmountUnit describes a method of converting an Amount to something
// other than the base unit of a vantachain. The value of the AmountUnit
// is the exponent component of the decadic multiple to convert from
// an amount in vantachain to an amount counted in units.
type AmountUnit int

// These constants define various units used when describing a vantachain
// monetary amount.
const (
	AmountMegaVNT  AmountUnit = 6
	AmountKiloVNT  AmountUnit = 3
	AmountVNT      AmountUnit = 0
	AmountMilliVNT AmountUnit = -3
	AmountMicroVNT AmountUnit = -6
	AmountQuark    AmountUnit = -8
)

// String returns the unit as a string. For recognized units, the SI
// prefix is used, or "Quark" for the base unit. For all unrecognized
// units, "1eN VNT" is returned, where N is the AmountUnit.
func (u AmountUnit) String() string {
	switch u {
	case AmountMegaVNT:
		return "MVNT"
	case AmountKiloVNT:
		return "kVNT"
	case AmountVNT:
		return "VNT"
	case AmountMilliVNT:
		return "mVNT"
	case AmountMicroVNT:
		return "μVNT"
	case AmountQuark:
		return "Quark"
	default:
		return "1e" + strconv.FormatInt(int64(u), 10) + " VNT"
	}
}

// Amount represents the base vantachain monetary unit (colloquially referred
// to as a "Quark"). A single Amount is equal to 1e-8 of a vantachain.
type Amount int64

// round converts a floating point number, which may or may not be representable
// as an integer, to the Amount integer type by rounding to the nearest integer.
// This is performed by adding or subtracting 0.5 depending on the sign, and
// relying on integer truncation to round the value to the nearest Amount.
func round(f float64) Amount {
	if f < 0 {
		return Amount(f - 0.5)
	}
	return Amount(f + 0.5)
}

// NewAmount creates an Amount from a floating point value representing some
// value in vantachain. NewAmount errors if f is NaN or +-Infinity, but does
// not check that the amount is within the total amount of vantachain
// producible as f may not refer to an amount at a single moment in time.
//
// NewAmount is specifically for converting VNT to Quark. For creating a new
// Amount with an int64 value which denotes a quantity of Quark, do a simple
// type conversion from type int64 to Amount.
func NewAmount(f float64) (Amount, error) {
	// The amount is only considered invalid if it cannot be represented
	// as an integer type. This may happen if f is NaN or +-Infinity.
	switch {
	case math.IsNaN(f):
		fallthrough
	case math.IsInf(f, 1):
		fallthrough
	case math.IsInf(f, -1):
		return 0, errors.New("invalid vantachain amount")
	}

	return round(f * QuarkPerVantachain), nil
}

// ToUnit converts a monetary amount counted in vantachain base units to a
// floating point value representing an amount of vantachain.
func (a Amount) ToUnit(u AmountUnit) float64 {
	return float64(a) / math.Pow10(int(u+8))
}

// ToVNT is the equivalent of calling ToUnit with AmountVNT.
func (a Amount) ToVNT() float64 {
	return a.ToUnit(AmountVNT)
}

// Format formats a monetary amount counted in vantachain base units as a
// string for a given unit. The conversion will succeed for any unit,
// however, known units will be formatted with an appended label describing
// the units with SI notation, or "Quark" for the base unit.
func (a Amount) Format(u AmountUnit) string {
	units := " " + u.String()
	formatted := strconv.FormatFloat(a.ToUnit(u), 'f', -int(u+8), 64)

	// When formatting full VNT, add trailing zeroes for numbers
	// with decimal point to ease reading of quark amounts.
	if u == AmountVNT {
		if strings.Contains(formatted, ".") {
			return fmt.Sprintf("%.8f%s", a.ToUnit(u), units)
		}
	}
	return formatted + units
}

// String is the equivalent of calling Format with AmountVNT.
func (a Amount) String() string {
	return a.Format(AmountVNT)
}

// MulF64 multiplies an Amount by a floating point value. While this is not
// an operation that must typically be done by a full node or wallet, it is
// useful for services that build on top of vantachain (for example,
// calculating a fee by multiplying by a percentage).
func (a Amount) MulF64(f float64) Amount {
	return round(float64(a) * f)
}
