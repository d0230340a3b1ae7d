// Package chips converts between the wire representation of chip amounts
// (decimal integer strings in micro-units, 10^6 per display dollar) and the
// float values bound to sliders and inputs. All monetary arithmetic stays in
// micro-unit integers; the display form exists only for rendering.
package chips

import (
	"fmt"
	"math"
	"math/big"
)

// MicroPerUnit is the number of micro-units in one display dollar.
const MicroPerUnit = 1_000_000

const microPerCent = MicroPerUnit / 100

// Parse converts a wire amount into micro-units. The node omits amount
// fields on non-monetary actions, so absent, empty, negative or non-numeric
// values all parse as zero rather than erroring.
func Parse(raw string) *big.Int {
	if raw == "" {
		return new(big.Int)
	}
	n, ok := new(big.Int).SetString(raw, 10)
	if !ok || n.Sign() < 0 {
		return new(big.Int)
	}
	return n
}

// ToDisplay converts micro-units to a display dollar value rounded to two
// decimal places. The result is for rendering and input binding only; it
// must never feed back into monetary arithmetic.
func ToDisplay(micro *big.Int) float64 {
	if micro == nil || micro.Sign() <= 0 {
		return 0
	}
	cents, rem := new(big.Int).QuoRem(micro, big.NewInt(microPerCent), new(big.Int))
	if rem.Int64() >= microPerCent/2 {
		cents.Add(cents, big.NewInt(1))
	}
	c, _ := new(big.Float).SetInt(cents).Float64()
	return c / 100
}

// FromDisplay converts a user-entered dollar value back into micro-units,
// rounding to the nearest integer. Negative or non-finite input is a
// contract violation and fails loudly; clamping is the UI's job, not ours.
func FromDisplay(display float64) (*big.Int, error) {
	if math.IsNaN(display) || math.IsInf(display, 0) {
		return nil, fmt.Errorf("chips: non-finite display amount %v", display)
	}
	if display < 0 {
		return nil, fmt.Errorf("chips: negative display amount %v", display)
	}
	f := new(big.Float).Mul(big.NewFloat(display), big.NewFloat(MicroPerUnit))
	// Round half up before truncating to an integer.
	f.Add(f, big.NewFloat(0.5))
	micro, _ := f.Int(nil)
	return micro, nil
}

// Format renders micro-units as a two-decimal dollar string, e.g. "1.50".
func Format(micro *big.Int) string {
	if micro == nil || micro.Sign() <= 0 {
		return "0.00"
	}
	cents, rem := new(big.Int).QuoRem(micro, big.NewInt(microPerCent), new(big.Int))
	if rem.Int64() >= microPerCent/2 {
		cents.Add(cents, big.NewInt(1))
	}
	whole, frac := new(big.Int).QuoRem(cents, big.NewInt(100), new(big.Int))
	return fmt.Sprintf("%s.%02d", whole.String(), frac.Int64())
}
