package parser

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// cSpace is the set of characters skipped before a number, same as C isspace.
const cSpace = " \t\n\v\f\r"

// parseNumber reports whether the whole text is a C floating-point literal and returns its value.
// Accepted forms: optional leading white space, optional sign, then a decimal number with optional
// e-exponent, a hexadecimal number ("0x" prefix) with optional p-exponent, "inf", "infinity", or "nan"
// in any case. Out of range values give infinities or zeros.
func parseNumber(text string) (float64, bool) {
	s := strings.TrimLeft(text, cSpace)
	body := s
	sign := 1
	if body != "" && (body[0] == '+' || body[0] == '-') {
		if body[0] == '-' {
			sign = -1
		}
		body = body[1:]
	}

	switch strings.ToLower(body) {
	case "inf", "infinity":
		return math.Inf(sign), true
	case "nan":
		return math.NaN(), true
	}

	if len(body) > 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		hasExp, valid := scanNumber(body[2:], isHexDigit, 'p')
		if !valid {
			return 0, false
		}
		if !hasExp {
			s += "p0"
		}
		return convert(s)
	}

	if _, valid := scanNumber(body, isDecDigit, 'e'); !valid {
		return 0, false
	}
	return convert(s)
}

// scanNumber checks that s is a mantissa with at least one digit and optional '.',
// followed by an optional exponent: expMark (any case), optional sign, and decimal digits.
func scanNumber(s string, isDigit func(byte) bool, expMark byte) (hasExp, valid bool) {
	i := 0
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
		return false, false
	}
	if i == len(s) {
		return false, true
	}

	if s[i] != expMark && s[i] != expMark-'a'+'A' {
		return false, false
	}
	i++
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if i == len(s) {
		return true, false
	}
	for ; i < len(s); i++ {
		if !isDecDigit(s[i]) {
			return true, false
		}
	}
	return true, true
}

func isDecDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDecDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func convert(s string) (float64, bool) {
	v, e := strconv.ParseFloat(s, 64)
	if e == nil || errors.Is(e, strconv.ErrRange) {
		return v, true
	}
	return 0, false
}
