package cplx

import (
	"math"
	"strconv"
	"strings"
)

// Parse converts the text form "(re,im)" into a Value.
//
// Whitespace is tolerated around the parentheses, the comma, and each
// numeral. Each field must parse as a finite float64; "Inf" and "NaN"
// spellings are rejected even though strconv accepts them, because the
// text form is defined over finite numerals only. Anything other than
// whitespace after the closing parenthesis is an error.
//
// Parse is pure: same input, same output, no side effects. The host may
// cache or reorder calls freely, and must not call it with a null argument
// (the function is registered strict).
func Parse(text string) (Value, error) {
	s := strings.TrimSpace(text)
	open := strings.IndexByte(s, '(')
	if open != 0 {
		return Value{}, newFormatError(ErrCodeMalformedText, "missing opening parenthesis", text)
	}
	close := strings.LastIndexByte(s, ')')
	if close < 0 {
		return Value{}, newFormatError(ErrCodeMalformedText, "missing closing parenthesis", text)
	}
	if rest := strings.TrimSpace(s[close+1:]); rest != "" {
		return Value{}, newFormatError(ErrCodeTrailingGarbage, "unexpected content after closing parenthesis", text)
	}

	inner := s[1:close]
	comma := strings.IndexByte(inner, ',')
	if comma < 0 {
		return Value{}, newFormatError(ErrCodeMalformedText, "missing comma separator", text)
	}

	re, err := parseNumeral(inner[:comma], text)
	if err != nil {
		return Value{}, err
	}
	im, err := parseNumeral(inner[comma+1:], text)
	if err != nil {
		return Value{}, err
	}
	return Value{Re: re, Im: im}, nil
}

// Format renders a Value as "(re,im)" using the shortest decimal form that
// round-trips: Parse(Format(v)) is bit-identical to v for every finite v.
// Format always succeeds; it is the exact counterpart of Parse and is
// registered with the same strict/immutable flags.
func Format(v Value) string {
	var b strings.Builder
	b.Grow(32)
	b.WriteByte('(')
	b.WriteString(strconv.FormatFloat(v.Re, 'g', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(v.Im, 'g', -1, 64))
	b.WriteByte(')')
	return b.String()
}

func parseNumeral(field, input string) (float64, error) {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return 0, newFormatError(ErrCodeBadNumeral, "empty numeral", input)
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, newFormatError(ErrCodeBadNumeral, "not a decimal numeral: "+trimmed, input)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, newFormatError(ErrCodeBadNumeral, "numeral is not finite: "+trimmed, input)
	}
	return f, nil
}
