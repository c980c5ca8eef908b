package toon

import (
	"strings"
)

// escapePairs is the complete escape set TOON recognizes, spec §4.2 — a
// deliberately narrow subset of the teacher's C11-flavored escape table in
// ccl.go (which also allows \a, \?, octal, \xNN, \uNNNN, \UNNNNNNNN and
// line-continuation; TOON permits none of those).
var escapePairs = []struct {
	raw     byte
	escaped byte
}{
	{'"', '"'},
	{'\\', '\\'},
	{'\n', 'n'},
	{'\r', 'r'},
	{'\t', 't'},
	{'\b', 'b'},
	{'\f', 'f'},
}

func escapeByte(b byte) (escaped byte, ok bool) {
	for _, p := range escapePairs {
		if p.raw == b {
			return p.escaped, true
		}
	}
	return 0, false
}

func unescapeByte(b byte) (raw byte, ok bool) {
	for _, p := range escapePairs {
		if p.escaped == b {
			return p.raw, true
		}
	}
	return 0, false
}

// quoteString encloses s in double quotes, escaping the characters in
// escapePairs and leaving every other Unicode scalar, including non-ASCII
// text, literal on the wire (spec §4.2).
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if esc, ok := escapeByte(c); ok {
			b.WriteByte('\\')
			b.WriteByte(esc)
			continue
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

// needsQuoting implements the unquoted-string admissibility rule of spec
// §4.1: a string must be quoted when empty, has leading/trailing ASCII
// whitespace, contains a structurally significant character, or would
// re-lex as null/bool/number.
func needsQuoting(s string, delimiter Delimiter) bool {
	if s == "" {
		return true
	}
	if isASCIISpace(s[0]) || isASCIISpace(s[len(s)-1]) {
		return true
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == byte(delimiter) {
			return true
		}
		switch c {
		case ':', '"', '\\', '{', '}', '[', ']', '#':
			return true
		}
	}
	switch s {
	case "null", "true", "false":
		return true
	}
	if numberRE.MatchString(s) {
		return true
	}
	return false
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// quoteIfNeeded renders s either as a bare token or a quoted, escaped
// token, per needsQuoting.
func quoteIfNeeded(s string, delimiter Delimiter) string {
	if needsQuoting(s, delimiter) {
		return quoteString(s)
	}
	return s
}

// unquoteString consumes a quoted string starting at the opening '"' in
// content and returns the unescaped value plus the number of bytes
// consumed (including both quote characters). It fails with
// ErrUnterminatedString if the closing quote is not found before the end
// of content, and ErrInvalidEscape on any escape not in escapePairs.
func unquoteString(content string, line int) (value string, consumed int, err *DecodeError) {
	if len(content) == 0 || content[0] != '"' {
		return "", 0, newDecodeError(KindUnterminatedString, line, "expected opening quote")
	}
	var b strings.Builder
	i := 1
	for i < len(content) {
		c := content[i]
		switch c {
		case '"':
			return b.String(), i + 1, nil
		case '\\':
			if i+1 >= len(content) {
				return "", 0, newDecodeError(KindUnterminatedString, line, "string reaches end of line while escaping")
			}
			raw, ok := unescapeByte(content[i+1])
			if !ok {
				return "", 0, newDecodeError(KindInvalidEscape, line, "unknown escape sequence %q", "\\"+string(content[i+1]))
			}
			b.WriteByte(raw)
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, newDecodeError(KindUnterminatedString, line, "string reaches end of line without a closing quote")
}
