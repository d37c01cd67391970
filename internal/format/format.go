// Package format renders computed quantities for people: grouped decimals in
// the everyday range and "m × 10ⁿ" outside it.
package format

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	humanMin  = 1e-3
	humanMax  = 1e5
	sigDigits = 6
)

var printer = message.NewPrinter(language.English)

var superscripts = map[rune]rune{
	'-': '⁻', '0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
}

// Human formats x with at most six significant digits when
// 0.001 <= |x| < 100000, and as a two-decimal mantissa times a power of ten
// otherwise.
func Human(x float64) string {
	switch {
	case x == 0:
		return "0"
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "∞"
	case math.IsInf(x, -1):
		return "-∞"
	}

	abs := math.Abs(x)
	if abs >= humanMin && abs < humanMax {
		return printer.Sprint(number.Decimal(x, number.Precision(sigDigits)))
	}

	exp := int(math.Floor(math.Log10(abs)))
	mantissa := x / math.Pow(10, float64(exp))
	// 9.996e-20 would otherwise print as 10.00 × 10⁻²⁰.
	if math.Abs(mantissa) >= 9.995 {
		exp++
		mantissa /= 10
	}
	return strconv.FormatFloat(mantissa, 'f', 2, 64) + " × 10" + Superscript(exp)
}

// Superscript writes n with Unicode superscript digits.
func Superscript(n int) string {
	var b strings.Builder
	for _, r := range strconv.Itoa(n) {
		if s, ok := superscripts[r]; ok {
			b.WriteRune(s)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Scientific splits x into a base in [1, 10) and a decimal exponent, rounded
// to ten decimals.
func Scientific(x float64) (base float64, exp int) {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, 0
	}
	s := strconv.FormatFloat(x, 'e', 10, 64)
	i := strings.IndexByte(s, 'e')
	base, _ = strconv.ParseFloat(s[:i], 64)
	exp, _ = strconv.Atoi(s[i+1:])
	return base, exp
}

// Quantity formats x followed by its unit symbol.
func Quantity(x float64, unit string) string {
	if unit == "" {
		return Human(x)
	}
	return Human(x) + " " + unit
}
