package toon

import "strings"

// Decode parses a TOON document into a Value, per spec §4.5. It returns a
// *DecodeError (wrapped as error) on any strict-mode violation; in
// non-strict mode the recoverable kinds named in spec §7 are relaxed
// instead of failing.
func Decode(text string, opts *DecodeOptions) (Value, error) {
	cfg := opts.resolve()
	lines, serr := scanLines(text, cfg.indent, cfg.strict)
	if serr != nil {
		return Value{}, serr
	}
	p := &parser{lines: lines, cfg: cfg}
	v, derr := p.parseDocument()
	if derr != nil {
		return Value{}, derr
	}
	return v, nil
}

// DecodeString is an alias for Decode kept for callers that prefer the
// more explicit name; TOON documents are always text, so there is no
// byte/string distinction to make here.
func DecodeString(text string, opts *DecodeOptions) (Value, error) {
	return Decode(text, opts)
}

// parser is the recursive-descent block parser (C5). It carries its
// state — the scanned lines and the cursor — as explicit struct fields
// rather than any ambient/global state, following the teacher's parser
// shape in ccl.go.
type parser struct {
	lines []scannedLine
	pos   int
	cfg   resolvedDecodeOptions
}

func (p *parser) current() scannedLine { return p.lines[p.pos] }

func (p *parser) skipBlankLines() {
	for p.pos < len(p.lines) && p.lines[p.pos].blank {
		p.pos++
	}
}

func (p *parser) countRemainingNonBlank() int {
	n := 0
	for _, l := range p.lines[p.pos:] {
		if !l.blank {
			n++
		}
	}
	return n
}

// parseDocument implements the top-level grammar rule: a single primitive
// line, a header-led Array, or key/value pairs forming an Object.
func (p *parser) parseDocument() (Value, *DecodeError) {
	p.skipBlankLines()
	if p.pos >= len(p.lines) {
		return ObjectValue(NewObject()), nil
	}

	first := p.current()
	nonBlank := p.countRemainingNonBlank()

	key, h, rest, isHeaderLine, err := p.tryHeaderLine(first.content, first.number)
	if err != nil {
		return Value{}, err
	}

	if nonBlank == 1 && !isHeaderLine && !isKeyValueLine(first.content) {
		token := strings.TrimSpace(first.content)
		v, err := p.decodeScalarToken(token, first.number)
		if err != nil {
			return Value{}, err
		}
		p.pos++
		return v, nil
	}

	if isHeaderLine && first.indent == 0 && key == "" {
		p.pos++
		return p.parseArray(h, rest, 0, first.number)
	}

	obj, err := p.parseObject(0)
	if err != nil {
		return Value{}, err
	}
	return ObjectValue(obj), nil
}

// parseObject parses key/value members at the given depth until a line
// of lesser depth (or end of input) is reached, per spec §4.5.
func (p *parser) parseObject(depth int) (*Object, *DecodeError) {
	obj := NewObject()
	for p.pos < len(p.lines) {
		line := p.current()
		if line.blank {
			p.pos++
			continue
		}
		if line.indent < depth {
			break
		}
		if line.indent > depth {
			return nil, newDecodeError(KindIndentError, line.number, "unexpected indentation")
		}

		key, h, rest, isHeaderLine, err := p.tryHeaderLine(line.content, line.number)
		if err != nil {
			return nil, err
		}
		if isHeaderLine {
			if key == "" {
				return nil, newDecodeError(KindMissingColon, line.number, "arrays within objects must have a key")
			}
			p.pos++
			val, err := p.parseArray(h, rest, depth, line.number)
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
			continue
		}

		k, valRest, ok, serr := p.splitKeyValue(line.content, line.number)
		if serr != nil {
			if !p.cfg.strict {
				p.pos++
				continue
			}
			return nil, serr
		}
		if !ok {
			if !p.cfg.strict {
				p.pos++
				continue
			}
			return nil, newDecodeError(KindMissingColon, line.number, "expected ':' after key")
		}
		p.pos++

		if valRest == "" {
			child, err := p.parseObject(depth + 1)
			if err != nil {
				return nil, err
			}
			obj.Set(k, ObjectValue(child))
			continue
		}

		v, err := p.decodeScalarToken(valRest, line.number)
		if err != nil {
			return nil, err
		}
		obj.Set(k, v)
	}
	return obj, nil
}

// parseArray dispatches to the inline, tabular, or list array form
// depending on what followed the header on its own line (spec §4.5).
func (p *parser) parseArray(h header, rest string, depth, lineNo int) (Value, *DecodeError) {
	if strings.TrimSpace(rest) != "" {
		return p.parseInlineArray(h, rest, lineNo)
	}
	if h.fields != nil {
		return p.parseTabularArray(h, depth, lineNo)
	}
	return p.parseListArray(h, depth, lineNo)
}

func (p *parser) parseInlineArray(h header, rest string, lineNo int) (Value, *DecodeError) {
	tokens, serr := splitDelimited(rest, h.delimiter, lineNo)
	if serr != nil {
		return Value{}, serr
	}
	elems := make([]Value, 0, len(tokens))
	for _, tok := range tokens {
		v, err := p.decodeScalarToken(tok, lineNo)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
	if p.cfg.strict && len(elems) != h.length {
		if len(elems) < h.length {
			return Value{}, newDecodeError(KindExpectedRows, lineNo,
				"inline array declares length %d but has %d elements", h.length, len(elems))
		}
		return Value{}, newDecodeError(KindLengthMismatch, lineNo,
			"inline array declares length %d but has %d elements", h.length, len(elems))
	}
	return Array(elems...), nil
}

func (p *parser) parseTabularArray(h header, depth, lineNo int) (Value, *DecodeError) {
	rows := make([]Value, 0, h.length)
	for p.pos < len(p.lines) {
		line := p.current()
		if line.blank {
			// A blank line always ends a tabular array's body in strict
			// mode (spec §7: BlankInArray "may surface as ExpectedRows"
			// once the declared/actual row counts are compared below);
			// non-strict mode simply skips it and keeps collecting rows.
			if p.cfg.strict {
				break
			}
			p.pos++
			continue
		}
		if line.indent <= depth {
			break
		}
		if line.indent != depth+1 {
			// Spec §4.5: a row indented deeper than depth+1 is an error
			// in strict mode, skipped in non-strict mode.
			if !p.cfg.strict {
				p.pos++
				continue
			}
			return Value{}, newDecodeError(KindIndentError, line.number, "invalid indentation for tabular row")
		}
		trimmed := strings.TrimSpace(line.content)
		if findKeyColon(trimmed) != -1 {
			// Looks like a key:value or header line, not a row: the
			// table ends here (nested content is not permitted inside
			// a tabular row, spec §4.5).
			break
		}
		p.pos++
		tokens, serr := splitDelimited(trimmed, h.delimiter, line.number)
		if serr != nil {
			return Value{}, serr
		}
		if p.cfg.strict && len(tokens) != len(h.fields) {
			return Value{}, newDecodeError(KindRowWidthMismatch, line.number,
				"tabular row has %d fields, header declares %d", len(tokens), len(h.fields))
		}
		obj := NewObject()
		for i, field := range h.fields {
			if i >= len(tokens) {
				break
			}
			v, err := p.decodeScalarToken(tokens[i], line.number)
			if err != nil {
				return Value{}, err
			}
			obj.Set(field, v)
		}
		rows = append(rows, ObjectValue(obj))
		if p.cfg.strict && len(rows) > h.length {
			return Value{}, newDecodeError(KindLengthMismatch, line.number,
				"tabular array has more rows than declared length %d", h.length)
		}
	}
	if p.cfg.strict && len(rows) != h.length {
		return Value{}, newDecodeError(KindExpectedRows, lineNo,
			"tabular array declares length %d but found %d rows", h.length, len(rows))
	}
	return Array(rows...), nil
}

func (p *parser) parseListArray(h header, depth, lineNo int) (Value, *DecodeError) {
	elems := make([]Value, 0, h.length)
	for p.pos < len(p.lines) {
		line := p.current()
		if line.blank {
			if p.cfg.strict {
				break
			}
			p.pos++
			continue
		}
		if line.indent <= depth {
			break
		}
		if line.indent != depth+1 {
			// Spec §4.5: an item indented deeper than depth+1 is an error
			// in strict mode, skipped in non-strict mode.
			if !p.cfg.strict {
				p.pos++
				continue
			}
			return Value{}, newDecodeError(KindIndentError, line.number, "invalid indentation for list item")
		}
		if !strings.HasPrefix(line.content, "-") {
			break
		}
		itemContent := strings.TrimSpace(line.content[1:])
		p.pos++

		if itemContent == "" {
			child, err := p.parseObject(depth + 2)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, ObjectValue(child))
			continue
		}

		v, bareScalar, err := p.parseListItemContent(itemContent, depth, line.number)
		if err != nil {
			return Value{}, err
		}
		if bareScalar {
			v, err = p.resolveMixedListItem(v, depth)
			if err != nil {
				return Value{}, err
			}
		}
		elems = append(elems, v)
		if p.cfg.strict && len(elems) > h.length {
			return Value{}, newDecodeError(KindLengthMismatch, line.number,
				"list array has more items than declared length %d", h.length)
		}
	}
	if p.cfg.strict && len(elems) != h.length {
		return Value{}, newDecodeError(KindExpectedRows, lineNo,
			"list array declares length %d but found %d items", h.length, len(elems))
	}
	return Array(elems...), nil
}

// parseListItemContent parses everything that can follow "- " on a list
// item's own line: a nested anonymous array header, the first field of
// an inline object (possibly with sibling fields indented further), or a
// bare primitive. bareScalar reports the last case, which the caller
// must still check for a mixed-form continuation (spec §4, resolving
// the Open Question on inline-primitive-plus-field-continuation items).
func (p *parser) parseListItemContent(itemContent string, depth, lineNo int) (v Value, bareScalar bool, err *DecodeError) {
	if strings.HasPrefix(itemContent, "[") {
		h2, rest2, ok2, perr := tryParseHeader(itemContent, lineNo)
		if perr != nil {
			return Value{}, false, perr
		}
		if !ok2 {
			return Value{}, false, newDecodeError(KindMissingColon, lineNo, "invalid array header in list item")
		}
		v, err = p.parseArray(h2, rest2, depth+1, lineNo)
		return v, false, err
	}

	key, h2, rest2, isHeaderLine, herr := p.tryHeaderLine(itemContent, lineNo)
	if herr != nil {
		return Value{}, false, herr
	}
	if isHeaderLine {
		if key == "" {
			return Value{}, false, newDecodeError(KindMissingColon, lineNo, "arrays within objects must have a key")
		}
		arr, aerr := p.parseArray(h2, rest2, depth+1, lineNo)
		if aerr != nil {
			return Value{}, false, aerr
		}
		obj := NewObject(Field{Key: key, Value: arr})
		if serr := p.collectObjectListSiblings(obj, depth, lineNo); serr != nil {
			return Value{}, false, serr
		}
		return ObjectValue(obj), false, nil
	}

	if isKeyValueLine(itemContent) {
		k, rest3, ok3, serr := p.splitKeyValue(itemContent, lineNo)
		if serr != nil {
			return Value{}, false, serr
		}
		if !ok3 {
			v, err = p.decodeScalarToken(itemContent, lineNo)
			return v, true, err
		}
		if rest3 == "" {
			child, cerr := p.parseObject(depth + 3)
			if cerr != nil {
				return Value{}, false, cerr
			}
			obj := NewObject(Field{Key: k, Value: ObjectValue(child)})
			if serr := p.collectObjectListSiblings(obj, depth, lineNo); serr != nil {
				return Value{}, false, serr
			}
			return ObjectValue(obj), false, nil
		}
		fv, ferr := p.decodeScalarToken(rest3, lineNo)
		if ferr != nil {
			return Value{}, false, ferr
		}
		obj := NewObject(Field{Key: k, Value: fv})
		if serr := p.collectObjectListSiblings(obj, depth, lineNo); serr != nil {
			return Value{}, false, serr
		}
		return ObjectValue(obj), false, nil
	}

	v, err = p.decodeScalarToken(itemContent, lineNo)
	return v, true, err
}

// resolveMixedListItem checks whether a bare-scalar list item ("- 5") is
// immediately followed by deeper field-continuation lines (depth+2) —
// the mixed form from spec §4's Open Question. Strict mode rejects it
// with KindMixedListItem; non-strict mode discards the scalar and
// parses the continuation lines as the item's object fields instead.
func (p *parser) resolveMixedListItem(scalar Value, depth int) (Value, *DecodeError) {
	if !p.cfg.strict {
		p.skipBlankLines()
	}
	if p.pos >= len(p.lines) {
		return scalar, nil
	}
	next := p.current()
	if next.blank || next.indent != depth+2 {
		return scalar, nil
	}
	if p.cfg.strict {
		return Value{}, newDecodeError(KindMixedListItem, next.number,
			"list item mixes an inline value with field continuation")
	}
	child, err := p.parseObject(depth + 2)
	if err != nil {
		return Value{}, err
	}
	return ObjectValue(child), nil
}

// collectObjectListSiblings gathers the remaining fields (at depth+2) of
// an object-list item whose first field was written inline after "-".
func (p *parser) collectObjectListSiblings(obj *Object, depth, _ int) *DecodeError {
	for p.pos < len(p.lines) {
		next := p.current()
		if next.blank {
			if p.cfg.strict {
				break
			}
			p.pos++
			continue
		}
		if next.indent <= depth+1 {
			break
		}
		if next.indent != depth+2 {
			return newDecodeError(KindIndentError, next.number, "invalid indentation for object list sibling")
		}

		key, h2, rest2, isHeaderLine, err := p.tryHeaderLine(next.content, next.number)
		if err != nil {
			return err
		}
		if isHeaderLine {
			if key == "" {
				return newDecodeError(KindMissingColon, next.number, "arrays within objects must have a key")
			}
			p.pos++
			val, err := p.parseArray(h2, rest2, depth+2, next.number)
			if err != nil {
				return err
			}
			obj.Set(key, val)
			continue
		}

		k, rest3, ok3, serr := p.splitKeyValue(next.content, next.number)
		if serr != nil {
			return serr
		}
		if !ok3 {
			if !p.cfg.strict {
				p.pos++
				continue
			}
			return newDecodeError(KindMissingColon, next.number, "expected ':' after key")
		}
		p.pos++
		if rest3 == "" {
			child, err := p.parseObject(depth + 3)
			if err != nil {
				return err
			}
			obj.Set(k, ObjectValue(child))
			continue
		}
		v, err := p.decodeScalarToken(rest3, next.number)
		if err != nil {
			return err
		}
		obj.Set(k, v)
	}
	return nil
}

// decodeScalarToken lexes a single trimmed token as a quoted string or a
// primitive per spec §4.1.
func (p *parser) decodeScalarToken(token string, lineNo int) (Value, *DecodeError) {
	if token == "" {
		return String(""), nil
	}
	if token[0] == '"' {
		s, consumed, err := unquoteString(token, lineNo)
		if err != nil {
			return Value{}, err
		}
		if consumed != len(token) {
			return Value{}, newDecodeError(KindUnterminatedString, lineNo, "trailing content after quoted value")
		}
		return String(s), nil
	}
	return classifyToken(token), nil
}

// tryHeaderLine recognizes the combined "key[header]:rest" form used for
// array-valued object fields and root arrays (key == "" in the latter
// case). It locates the first key-terminating colon (outside quotes and
// bracket/brace nesting), and if a '[' appears before that colon,
// delegates the bracket-through-colon text to tryParseHeader.
func (p *parser) tryHeaderLine(content string, lineNo int) (key string, h header, rest string, ok bool, err *DecodeError) {
	if strings.HasPrefix(content, "[") {
		// No key to extract: the header's own bracket/brace nesting would
		// otherwise swallow its terminating colon in the generic
		// key-colon scan below, so a leading '[' is handled directly.
		h, rest, ok, err = tryParseHeader(content, lineNo)
		return "", h, rest, ok, err
	}
	colon := findKeyColon(content)
	if colon == -1 {
		return "", header{}, "", false, nil
	}
	left := strings.TrimSpace(content[:colon])
	if left == "" {
		return "", header{}, "", false, nil
	}
	bracketIdx := strings.IndexByte(left, '[')
	if bracketIdx == -1 {
		return "", header{}, "", false, nil
	}
	keyPart := strings.TrimSpace(left[:bracketIdx])
	if keyPart != "" {
		kn, kerr := decodeFieldToken(keyPart, lineNo)
		if kerr != nil {
			return "", header{}, "", false, kerr
		}
		key = kn
	}
	headerCandidate := left[bracketIdx:] + ":" + content[colon+1:]
	h, rest, ok, err = tryParseHeader(headerCandidate, lineNo)
	if err != nil || !ok {
		return "", header{}, "", false, err
	}
	return key, h, rest, true, nil
}

// splitKeyValue splits a plain (non-header) key:value line, per spec
// §4.5's key definition: a quoted string, or an unquoted run up to the
// first unescaped ':' not inside brackets/braces.
func (p *parser) splitKeyValue(content string, lineNo int) (key, rest string, ok bool, err *DecodeError) {
	colon := findKeyColon(content)
	if colon == -1 {
		return "", "", false, nil
	}
	left := strings.TrimSpace(content[:colon])
	if left == "" {
		return "", "", false, nil
	}
	if left[0] == '"' {
		k, kerr := decodeFieldToken(left, lineNo)
		if kerr != nil {
			return "", "", false, kerr
		}
		key = k
	} else {
		key = left
	}
	rest = strings.TrimSpace(content[colon+1:])
	return key, rest, true, nil
}

func isKeyValueLine(content string) bool {
	return findKeyColon(content) > 0
}

// findKeyColon returns the byte offset of the first ':' that is outside
// any quoted string and outside any [...]/{...} nesting, or -1 if none.
// Nesting only suppresses a colon while the bracket/brace in question
// actually closes later on the line; an unterminated '[' or '{' (e.g.
// "items[3:") must not swallow the line's real terminating colon, per
// spec §4's resolution for that case.
func findKeyColon(s string) int {
	closes := closingBrackets(s)
	depth := 0
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuotes:
			if c == '\\' {
				i++
				continue
			}
			if c == '"' {
				inQuotes = false
			}
		case c == '"':
			inQuotes = true
		case c == '[' || c == '{':
			if closes[i] {
				depth++
			}
		case c == ']' || c == '}':
			if depth > 0 {
				depth--
			}
		case c == ':' && depth == 0:
			return i
		}
	}
	return -1
}

// closingBrackets reports, for each byte offset in s holding an
// unquoted '[' or '{', whether some later unquoted ']' or '}' closes
// it. Matching is by generic nesting depth (any close can close the
// innermost open), mirroring findKeyColon's own depth model.
func closingBrackets(s string) map[int]bool {
	closes := make(map[int]bool)
	var stack []int
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuotes:
			if c == '\\' {
				i++
				continue
			}
			if c == '"' {
				inQuotes = false
			}
		case c == '"':
			inQuotes = true
		case c == '[' || c == '{':
			stack = append(stack, i)
		case c == ']' || c == '}':
			if len(stack) > 0 {
				closes[stack[len(stack)-1]] = true
				stack = stack[:len(stack)-1]
			}
		}
	}
	return closes
}
