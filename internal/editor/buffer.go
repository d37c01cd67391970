package editor

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	// RelTol and AbsTol bound how far the buffer may drift from the
	// parent's value before it is rewritten.
	RelTol = 1e-9
	AbsTol = 1e-15

	// DefaultPrecision is the number of mantissa decimals Split tries first.
	DefaultPrecision = 6

	maxPrecision = 16
	splitTol     = 1e-12
)

// Buffer is the pair of texts the user edits directly.
type Buffer struct {
	Mantissa string
	Exponent string
}

// Zero is the buffer an editor starts from.
var Zero = Buffer{Mantissa: "0", Exponent: "0"}

// Split formats x as a mantissa/exponent pair at DefaultPrecision.
func Split(x float64) Buffer {
	return SplitPrecision(x, DefaultPrecision)
}

// SplitPrecision formats x in exponential notation with prec mantissa
// decimals and strips the padding, so 1.230000e-09 becomes ("1.23", "-9").
// When prec digits cannot carry x to within 1e-12 relative, more digits are
// used, up to full float64 precision.
func SplitPrecision(x float64, prec int) Buffer {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return Zero
	}
	if prec < 0 {
		prec = DefaultPrecision
	}

	var buf Buffer
	for p := prec; p <= maxPrecision; p++ {
		buf = splitAt(x, p)
		if v, ok := Combine(buf.Mantissa, buf.Exponent); ok && math.Abs(v-x) <= math.Abs(x)*splitTol {
			return buf
		}
	}
	return buf
}

func splitAt(x float64, prec int) Buffer {
	s := strconv.FormatFloat(x, 'e', prec, 64)
	i := strings.IndexByte(s, 'e')
	m, _ := strconv.ParseFloat(s[:i], 64)
	e, _ := strconv.Atoi(s[i+1:])
	return Buffer{
		Mantissa: strconv.FormatFloat(m, 'f', -1, 64),
		Exponent: strconv.Itoa(e),
	}
}

// Combine parses both texts and returns mantissa × 10^exponent. Parsing is
// lenient about trailing junk: it takes the longest numeric prefix, so "1."
// and "2e" parse while "", "-" and "." do not.
func Combine(mantissa, exponent string) (float64, bool) {
	m, ok := parseLeading(mantissa)
	if !ok {
		return 0, false
	}
	e, ok := parseLeading(exponent)
	if !ok {
		return 0, false
	}
	return scale(m, e), true
}

// Encoded returns the SI value the buffer represents under factor.
func Encoded(buf Buffer, factor float64) (float64, bool) {
	v, ok := Combine(buf.Mantissa, buf.Exponent)
	if !ok {
		return 0, false
	}
	return v * factor, true
}

// ShouldResync reports whether buf has to be rewritten to show valueSI under
// factor: either it does not parse, or the value it encodes differs from
// valueSI by more than |valueSI|*RelTol + AbsTol.
func ShouldResync(buf Buffer, valueSI, factor float64) bool {
	local, ok := Encoded(buf, factor)
	if !ok || math.IsNaN(local) {
		return true
	}
	return math.Abs(local-valueSI) > math.Abs(valueSI)*RelTol+AbsTol
}

// scale computes m × 10^e. Integral exponents go through decimal parsing so
// that 5 × 10^-10 is exactly the float64 nearest 5e-10.
func scale(m, e float64) float64 {
	if m != 0 && !math.IsInf(m, 0) && e == math.Trunc(e) && math.Abs(e) < 1e4 {
		s := strconv.FormatFloat(m, 'e', -1, 64)
		i := strings.IndexByte(s, 'e')
		e0, _ := strconv.Atoi(s[i+1:])
		v, err := strconv.ParseFloat(s[:i]+"e"+strconv.Itoa(e0+int(e)), 64)
		if err == nil || isRange(err) {
			return v
		}
	}
	return m * math.Pow(10, e)
}

// parseLeading parses the longest prefix of s that reads as a decimal
// number, after leading white space.
func parseLeading(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil && !isRange(err) {
		return 0, false
	}
	return v, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isRange(err error) bool {
	var ne *strconv.NumError
	return errors.As(err, &ne) && ne.Err == strconv.ErrRange
}
