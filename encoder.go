package toon

import "strings"

// Encode renders v as TOON text, per spec §3–§4. Encode never fails on a
// well-formed Value produced by this package's own constructors or by
// FromAny; its error return exists for forward compatibility and is
// currently always nil.
func Encode(v Value, opts *EncodeOptions) (string, error) {
	cfg := opts.resolve()
	e := &encoder{cfg: cfg}
	e.encodeRoot(v)
	return e.b.String(), nil
}

type encoder struct {
	b   strings.Builder
	cfg resolvedEncodeOptions
}

func (e *encoder) writeIndent(depth int) {
	for i := 0; i < depth*e.cfg.indent; i++ {
		e.b.WriteByte(' ')
	}
}

// encodeRoot implements the three root forms mirrored from decode: a
// lone primitive, a header-led array, or an object's key/value lines.
func (e *encoder) encodeRoot(v Value) {
	switch v.Kind() {
	case KindArray:
		elems, _ := v.AsArray()
		e.encodeArrayHeaderAndBody("", elems, 0)
	case KindObject:
		obj, _ := v.AsObject()
		e.encodeObjectBody(obj, 0)
	default:
		e.b.WriteString(formatScalar(v, e.cfg.delimiter))
		e.b.WriteByte('\n')
	}
}

// encodeObjectBody writes one key:value line per field at depth.
func (e *encoder) encodeObjectBody(obj *Object, depth int) {
	for _, f := range obj.Fields() {
		e.encodeObjectFieldAt(f, depth)
	}
}

// encodeObjectFieldAt writes a single object field's line(s) at depth:
// an array header (plus body), a nested object header (plus its
// recursively indented body), or a scalar "key: value" line.
func (e *encoder) encodeObjectFieldAt(f Field, depth int) {
	keyLiteral := quoteIfNeeded(f.Key, e.cfg.delimiter)
	switch f.Value.Kind() {
	case KindArray:
		elems, _ := f.Value.AsArray()
		e.encodeArrayHeaderAndBody(keyLiteral, elems, depth)
	case KindObject:
		child, _ := f.Value.AsObject()
		e.writeIndent(depth)
		e.b.WriteString(keyLiteral)
		e.b.WriteString(":\n")
		e.encodeObjectBody(child, depth+1)
	default:
		e.writeIndent(depth)
		e.b.WriteString(keyLiteral)
		e.b.WriteString(": ")
		e.b.WriteString(formatScalar(f.Value, e.cfg.delimiter))
		e.b.WriteByte('\n')
	}
}

// encodeArrayHeaderAndBody writes the indented header line for an array
// at depth, then its body at depth+1.
func (e *encoder) encodeArrayHeaderAndBody(keyLiteral string, elems []Value, depth int) {
	e.writeIndent(depth)
	e.encodeArrayInline(keyLiteral, elems, depth+1)
}

// encodeArrayInline writes an array's header (without any leading
// indent of its own — the caller has either indented or written a "- "
// prefix already) and, for the tabular/list forms, its body at
// bodyDepth. This split lets a header ride directly after "- " on a
// list item's own line while its body still lands one level deeper than
// that item.
func (e *encoder) encodeArrayInline(keyLiteral string, elems []Value, bodyDepth int) {
	if fields, ok := detectTabular(elems); ok {
		e.b.WriteString(renderHeader(keyLiteral, len(elems), e.cfg.delimiter, e.cfg.lengthMarker, fields))
		e.b.WriteByte('\n')
		e.encodeTabularRows(elems, fields, bodyDepth)
		return
	}

	if allPrimitive(elems) {
		e.b.WriteString(renderHeader(keyLiteral, len(elems), e.cfg.delimiter, e.cfg.lengthMarker, nil))
		if len(elems) > 0 {
			e.b.WriteByte(' ')
			e.b.WriteString(e.joinInline(elems))
		}
		e.b.WriteByte('\n')
		return
	}

	e.b.WriteString(renderHeader(keyLiteral, len(elems), e.cfg.delimiter, e.cfg.lengthMarker, nil))
	e.b.WriteByte('\n')
	for _, elem := range elems {
		e.encodeListItem(elem, bodyDepth)
	}
}

func (e *encoder) joinInline(elems []Value) string {
	parts := make([]string, len(elems))
	for i, el := range elems {
		parts[i] = formatScalar(el, e.cfg.delimiter)
	}
	return strings.Join(parts, string(rune(e.cfg.delimiter)))
}

func (e *encoder) encodeTabularRows(rows []Value, fields []string, depth int) {
	for _, row := range rows {
		obj, _ := row.AsObject()
		parts := make([]string, len(fields))
		for i, f := range fields {
			v, _ := obj.Get(f)
			parts[i] = formatScalar(v, e.cfg.delimiter)
		}
		e.writeIndent(depth)
		e.b.WriteString(strings.Join(parts, string(rune(e.cfg.delimiter))))
		e.b.WriteByte('\n')
	}
}

// encodeListItem writes one "- ..." line for an array element that isn't
// part of a tabular/inline body: a bare scalar, a nested array, or an
// object. depth is the item's own line depth (the enclosing array's
// depth + 1).
func (e *encoder) encodeListItem(v Value, depth int) {
	switch v.Kind() {
	case KindObject:
		// Object list items always use the bare "-" form, with their
		// fields written as an ordinary object body one level deeper
		// than the item itself (the decoder's parseObject(arrayDepth+2),
		// i.e. depth+1 here). The decoder also accepts a first field
		// riding the "- " line (spec §4.5), but the encoder picks this
		// one canonical, unambiguous form.
		obj, _ := v.AsObject()
		e.writeIndent(depth)
		e.b.WriteString("-\n")
		e.encodeObjectBody(obj, depth+1)
	case KindArray:
		elems, _ := v.AsArray()
		e.writeIndent(depth)
		e.b.WriteString("- ")
		e.encodeArrayInline("", elems, depth+1)
	default:
		e.writeIndent(depth)
		e.b.WriteString("- ")
		e.b.WriteString(formatScalar(v, e.cfg.delimiter))
		e.b.WriteByte('\n')
	}
}

// formatScalar renders any non-container Value as it appears on the
// wire: numbers and bool/null via formatPrimitive, strings quoted only
// when needsQuoting requires it.
func formatScalar(v Value, delimiter Delimiter) string {
	if s, ok := v.AsString(); ok {
		return quoteIfNeeded(s, delimiter)
	}
	return formatPrimitive(v)
}

// detectTabular reports whether elems qualifies for the tabular array
// form (spec §4.6): at least one element, every element an object, every
// object sharing the same non-empty ordered key set, and every field
// value a scalar (not array/object).
func detectTabular(elems []Value) (fields []string, ok bool) {
	if len(elems) == 0 {
		return nil, false
	}
	first, isObj := elems[0].AsObject()
	if !isObj || first.IsEmpty() {
		return nil, false
	}
	want := make([]string, 0, first.Len())
	for _, f := range first.Fields() {
		if !isScalarKind(f.Value.Kind()) {
			return nil, false
		}
		want = append(want, f.Key)
	}
	for _, elem := range elems[1:] {
		obj, isObj := elem.AsObject()
		if !isObj || obj.Len() != len(want) {
			return nil, false
		}
		for i, f := range obj.Fields() {
			if f.Key != want[i] || !isScalarKind(f.Value.Kind()) {
				return nil, false
			}
		}
	}
	return want, true
}

// allPrimitive reports whether every element is a scalar, qualifying the
// array for the inline form.
func allPrimitive(elems []Value) bool {
	for _, el := range elems {
		if !isScalarKind(el.Kind()) {
			return false
		}
	}
	return true
}

func isScalarKind(k Kind) bool {
	switch k {
	case KindNull, KindBool, KindInt, KindFloat, KindString:
		return true
	default:
		return false
	}
}
