// Package numeral converts Persian and Arabic-Indic digit glyphs to ASCII
// and parses user supplied shift values.
package numeral

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var (
	// ErrNotANumber is returned when a value has no leading digits.
	ErrNotANumber = errors.New("value is not a number")
	// ErrOutOfRange is returned when a value does not fit in an int.
	ErrOutOfRange = errors.New("value out of range")
)

const (
	persianZero = '۰'
	persianNine = '۹'
	arabicZero  = '٠'
	arabicOne   = '١'
	arabicNine  = '٩'
)

// defaultDigit maps every Persian digit and every Arabic-Indic digit except
// '١', which is left unmapped.
func defaultDigit(r rune) rune {
	if r == arabicOne {
		return r
	}
	return completeDigit(r)
}

// completeDigit maps all twenty Persian and Arabic-Indic digit glyphs.
func completeDigit(r rune) rune {
	switch {
	case r >= persianZero && r <= persianNine:
		return '0' + (r - persianZero)
	case r >= arabicZero && r <= arabicNine:
		return '0' + (r - arabicZero)
	default:
		return r
	}
}

// ToASCIIDigits replaces Persian and Arabic-Indic digit glyphs with ASCII digits,
// leaving Arabic-Indic one untouched.
func ToASCIIDigits(s string) string {
	return mapString(defaultDigit, s)
}

// ToASCIIDigitsComplete is ToASCIIDigits with Arabic-Indic one mapped as well.
func ToASCIIDigitsComplete(s string) string {
	return mapString(completeDigit, s)
}

func mapString(fn func(rune) rune, s string) string {
	if s == "" {
		return ""
	}

	result, _, err := transform.String(runes.Map(fn), s)
	if err != nil {
		return s
	}
	return result
}

// ParseShift reads a leading integer from s the way a lenient form field would.
// Leading whitespace and a sign are accepted, trailing characters are ignored,
// and a "0x" prefix switches to hexadecimal. The value may be zero; rejecting it
// is left to the caller.
func ParseShift(s string) (int, error) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}

	base, isDigit := 10, isDecimal
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') && isHex(s[2]) {
		base, isDigit = 16, isHex
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == 0 {
		return 0, ErrNotANumber
	}

	n, err := strconv.ParseInt(sign+s[:end], base, strconv.IntSize)
	if err != nil {
		return 0, ErrOutOfRange
	}

	return int(n), nil
}

func isDecimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
