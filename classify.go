package toon

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// numberRE implements the numeric grammar from spec §4.1:
//
//	"-"? ("0" | [1-9] digit*) ("." digit+)? ([eE] [+-]? digit+)?
//
// grounded on the teacher's analogous numRE in ccl.go, narrowed to TOON's
// stricter "no leading zeros, no hex" rule.
var numberRE = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// classifyToken classifies a raw unquoted token per spec §4.1's rules,
// applied in order: null, bool, number, else unquoted string. It never
// fails; classification is total.
func classifyToken(token string) Value {
	switch token {
	case "null":
		return Null
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if numberRE.MatchString(token) {
		if !strings.ContainsAny(token, ".eE") {
			if i, ok := new(big.Int).SetString(token, 10); ok {
				return Int(i)
			}
			// Unreachable for a string matching numberRE, but fall
			// through to string rather than fail: classification is
			// total per spec §4.1.
			return String(token)
		}
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return String(token)
		}
		return Float(f)
	}
	return String(token)
}

// formatPrimitive renders the canonical textual lexeme for a scalar
// Value (null, bool, int, or float). It does not handle String values and
// panics on them, as on containers; callers that need a token usable as
// unescaped TOON text for a String value must go through quoteIfNeeded in
// stringcodec.go.
func formatPrimitive(v Value) string {
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		b, _ := v.AsBool()
		if b {
			return "true"
		}
		return "false"
	case KindInt:
		i, _ := v.AsInt()
		return i.String()
	case KindFloat:
		f, _ := v.AsFloat()
		return formatFloat(f)
	default:
		panic("toon: formatPrimitive called on non-scalar Value")
	}
}

// formatFloat renders f in decimal form, never scientific notation, with
// the shortest digit sequence that round-trips (invariant 4, spec §3).
func formatFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, "eE") {
		return s
	}
	// The shortest form used scientific notation; expand to fixed-point.
	// 'f' with -1 precision also gives the shortest round-tripping
	// digits, just always in fixed form.
	return strconv.FormatFloat(f, 'f', -1, 64)
}
