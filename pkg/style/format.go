package style

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/leapstack-labs/figlens/pkg/figma"
)

// Px formats a length in pixels, rounded to two decimals with trailing zeros
// dropped. Halves round away from zero on the exact binary value, so 1.005
// (stored as 1.00499...) formats as "1px".
func Px(size float64) string {
	return formatNumber(round2(size)) + "px"
}

func round2(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	r := new(big.Rat).SetFloat64(f)
	rounded, err := strconv.ParseFloat(r.FloatString(2), 64)
	if err != nil {
		return f
	}
	return rounded
}

// formatNumber renders a float with the shortest representation that
// round-trips, without exponent for everyday magnitudes.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// 1e-07 -> 1e-7, 1e+21 -> 1e+21
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Color formats a paint color: "transparent" for zero alpha, otherwise
// #rrggbb with a two-digit alpha suffix when alpha is not 1. Channels are
// scaled by 255 and truncated.
func Color(c figma.Color) string {
	if c.IsTransparent() {
		return "transparent"
	}
	hex := fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
	if c.A != 1 {
		hex += fmt.Sprintf("%02x", channel(c.A))
	}
	return hex
}

func channel(v float64) int32 {
	return int32(v * 0xff)
}

func colorValue(c *figma.Color) string {
	if c == nil {
		return "transparent"
	}
	return Color(*c)
}

// shadow keeps the color channels as raw 0-1 floats.
func shadow(e figma.Effect) string {
	var offset figma.Vector
	if e.Offset != nil {
		offset = *e.Offset
	}
	var c figma.Color
	if e.Color != nil {
		c = *e.Color
	}
	return fmt.Sprintf("%spx %spx %spx rgba(%s, %s, %s, %s)",
		formatNumber(offset.X), formatNumber(offset.Y), formatNumber(e.Radius),
		formatNumber(c.R), formatNumber(c.G), formatNumber(c.B), formatNumber(c.A))
}

func padding(top, right, bottom, left float64) string {
	return Px(top) + " " + Px(right) + " " + Px(bottom) + " " + Px(left)
}
