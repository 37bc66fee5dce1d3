// Copyright 2023 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package fwrite

import (
	"math"
	"strconv"
	"strings"

	"github.com/m1el/f77-io/format"
)

// A field that does not fit its width is replaced by asterisks, the
// whole width of it.
func starFill(width int) string { return strings.Repeat("*", width) }

func rightAlign(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func boolField(val bool, width int) string {
	if width == format.Unset {
		width = 2
	}
	c := "F"
	if val {
		c = "T"
	}
	return rightAlign(c, width)
}

// intField renders a sign/magnitude pair in the given base,
// zero-padding the digit part to minDigits when requested. The
// zero-padding sits between the sign and the digits, so -42 under I8.3
// is "    -042".
func intField(neg bool, mag uint64, base, width, minDigits int) string {
	var digits string
	if minDigits == 0 && mag == 0 {
		// Iw.0 of zero is an all-blank field.
		digits = ""
	} else {
		digits = strconv.FormatUint(mag, base)
	}
	if minDigits != format.Unset && len(digits) < minDigits {
		digits = strings.Repeat("0", minDigits-len(digits)) + digits
	}
	if neg {
		digits = "-" + digits
	}
	if len(digits) > width {
		return starFill(width)
	}
	return rightAlign(digits, width)
}

// fixedField renders Fw.d editing. The scale factor multiplies the
// external value by 10^k.
func fixedField(v float64, d, scale, bits int) string {
	if scale != 0 {
		v *= math.Pow(10, float64(scale))
	}
	return strconv.FormatFloat(v, 'f', d, bits)
}

// sciField renders Ew.d / Dw.d editing: sign, mantissa, exponent
// letter, exponent sign and expDigits exponent digits. With a zero
// scale the mantissa is 0.d…d; a positive scale k moves k digits in
// front of the point (showing d+1 significant digits), a negative one
// inserts |k| leading zeros (showing d+k). Returns "" when the field
// cannot be rendered, which the caller turns into asterisk fill.
func sciField(v float64, d, expDigits, scale int, expChar byte, bits int) string {
	if expDigits == format.Unset {
		expDigits = 2
	}
	k := scale
	sig := d
	switch {
	case k > 0:
		if k >= d+2 {
			return ""
		}
		sig = d + 1
	case k < 0:
		sig = d + k
	}
	if sig < 1 {
		return ""
	}

	neg := math.Signbit(v)
	abs := math.Abs(v)
	var digits string
	var exp10 int
	if abs == 0 {
		digits = strings.Repeat("0", sig)
		neg = false
		k = 0
		exp10 = 0
	} else {
		// FormatFloat normalizes to a single leading digit, so the
		// mantissa digits and the 0.d…d exponent fall out directly.
		s := strconv.FormatFloat(abs, 'e', sig-1, bits)
		i := strings.IndexByte(s, 'e')
		mant, expStr := s[:i], s[i+1:]
		digits = strings.Replace(mant, ".", "", 1)
		e, err := strconv.Atoi(expStr)
		if err != nil {
			return ""
		}
		exp10 = e + 1
	}

	var buf strings.Builder
	if neg {
		buf.WriteByte('-')
	}
	switch {
	case k > 0:
		buf.WriteString(digits[:k])
		buf.WriteByte('.')
		buf.WriteString(digits[k:])
	case k == 0:
		buf.WriteString("0.")
		buf.WriteString(digits)
	default:
		buf.WriteString("0.")
		buf.WriteString(strings.Repeat("0", -k))
		buf.WriteString(digits)
	}

	printedExp := exp10 - k
	if abs == 0 {
		printedExp = 0
	}
	expSign := byte('+')
	if printedExp < 0 {
		expSign = '-'
		printedExp = -printedExp
	}
	es := strconv.Itoa(printedExp)
	if len(es) > expDigits {
		return ""
	}
	buf.WriteByte(expChar)
	buf.WriteByte(expSign)
	buf.WriteString(strings.Repeat("0", expDigits-len(es)))
	buf.WriteString(es)
	return buf.String()
}

// realField renders one floating-point value under F/E/D/G editing
// into a width-resolved field.
func realField(v float64, kind format.RealKind, width, d, e, scale, bits int) string {
	var s string
	if d == format.Unset {
		s = strconv.FormatFloat(v, 'g', -1, bits)
	} else {
		switch kind {
		case format.RealF:
			s = fixedField(v, d, scale, bits)
		case format.RealE:
			s = sciField(v, d, e, scale, 'E', bits)
		case format.RealD:
			s = sciField(v, d, e, scale, 'D', bits)
		case format.RealG:
			abs := math.Abs(v)
			if abs == 0 || (abs >= 0.1 && abs < math.Pow(10, float64(d))) {
				s = fixedField(v, d, 0, bits)
			} else {
				s = sciField(v, d, e, scale, 'E', bits)
			}
		}
	}
	if s == "" || len(s) > width {
		return starFill(width)
	}
	return rightAlign(s, width)
}

// strField renders character editing. A short value is padded on the
// left with asterisks; an over-long value keeps its leading characters.
func strField(s string, width int) string {
	if width == format.Unset {
		return s
	}
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return strings.Repeat("*", width-len(r)) + s
}
