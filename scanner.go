package toon

import "strings"

// scannedLine is one physical line of a TOON document with its
// indentation already classified (spec §4.3). The scanner does not
// interpret structure beyond this; blank-line policy and indentation
// transitions are the block parser's job (§4.5).
type scannedLine struct {
	number  int
	indent  int
	content string
	blank   bool
}

// scanLines splits input into scannedLines. indentSize is the number of
// spaces that make up one depth level.
func scanLines(input string, indentSize int, strict bool) ([]scannedLine, *DecodeError) {
	normalized := strings.ReplaceAll(input, "\r\n", "\n")
	raw := strings.Split(normalized, "\n")
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}

	lines := make([]scannedLine, 0, len(raw))
	for idx, r := range raw {
		lineNo := idx + 1
		if strings.TrimSpace(r) == "" {
			lines = append(lines, scannedLine{number: lineNo, blank: true})
			continue
		}
		indent, content, err := computeIndent(r, indentSize, strict, lineNo)
		if err != nil {
			return nil, err
		}
		lines = append(lines, scannedLine{number: lineNo, indent: indent, content: content})
	}
	return lines, nil
}

// computeIndent counts leading whitespace and converts it to a depth,
// returning the line content past the indentation.
func computeIndent(line string, indentSize int, strict bool, lineNo int) (depth int, content string, err *DecodeError) {
	count := 0
	i := 0
loop:
	for i < len(line) {
		switch line[i] {
		case ' ':
			count++
			i++
		case '\t':
			if strict {
				return 0, "", newDecodeError(KindIndentError, lineNo, "tabs are not allowed in indentation")
			}
			count++
			i++
		default:
			break loop
		}
	}
	if strict && count%indentSize != 0 {
		return 0, "", newDecodeError(KindIndentError, lineNo, "indentation of %d spaces is not a multiple of %d", count, indentSize)
	}
	return count / indentSize, line[i:], nil
}
