package legacy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/synnergy-network/substrate-codec/typemarker"
)

// orderedEntry is one key/value pair of a JSON object, in document order.
// encoding/json's map decoding does not preserve key order, and field/
// variant order is load-bearing for SCALE (it is the wire order), so every
// object in a type-definition document is re-scanned with json.Decoder's
// token stream instead of unmarshalled into a map.
type orderedEntry struct {
	Key   string
	Value json.RawMessage
}

func parseOrderedObject(raw json.RawMessage) ([]orderedEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, &ParseError{Detail: err.Error()}
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, &ParseError{Detail: "expected JSON object"}
	}
	var out []orderedEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Detail: err.Error()}
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, &ParseError{Detail: "expected string object key"}
		}
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, &ParseError{Detail: err.Error()}
		}
		out = append(out, orderedEntry{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, &ParseError{Detail: err.Error()}
	}
	return out, nil
}

func parseOrderedArray(raw json.RawMessage) ([]json.RawMessage, error) {
	var out []json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &ParseError{Detail: err.Error()}
	}
	return out, nil
}

// enumVariantDef is one ordered, indexed variant of a parsed _enum def.
type enumVariantDef struct {
	Name  string
	Index uint8
	Def   *rawDef // nil for a unit variant
}

// fieldDef is one ordered field of a parsed struct-shaped def. The value is
// kept as raw JSON and parsed lazily by buildFields, since a struct field's
// type definition is itself a full TypeDef that may be an alias or a
// nested composite.
type fieldDef struct {
	Name      string
	lazyValue json.RawMessage
}

// rawDef is the structural parse of one TypeDef document node (spec.md §6),
// prior to resolving any custom type names it references. Exactly one of
// the fields below is populated.
type rawDef struct {
	Alias    *string
	Variants []enumVariantDef // _enum
	SetBits  map[string]int   // _set
	Fields   []fieldDef       // _struct or bare field map
}

func parseRawDef(raw json.RawMessage) (*rawDef, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &ParseError{Detail: "empty type definition"}
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, &ParseError{Detail: err.Error()}
		}
		return &rawDef{Alias: &s}, nil
	}
	if trimmed[0] != '{' {
		return nil, &ParseError{Detail: fmt.Sprintf("unexpected type definition token: %s", trimmed)}
	}

	entries, err := parseOrderedObject(trimmed)
	if err != nil {
		return nil, err
	}
	if len(entries) == 1 && entries[0].Key == "_enum" {
		return parseEnumDef(entries[0].Value)
	}
	if len(entries) == 1 && entries[0].Key == "_set" {
		return parseSetDef(entries[0].Value)
	}
	if len(entries) == 1 && entries[0].Key == "_struct" {
		inner, err := parseOrderedObject(entries[0].Value)
		if err != nil {
			return nil, err
		}
		return &rawDef{Fields: fieldsFromEntries(inner)}, nil
	}
	return &rawDef{Fields: fieldsFromEntries(entries)}, nil
}

func fieldsFromEntries(entries []orderedEntry) []fieldDef {
	fields := make([]fieldDef, len(entries))
	for i, e := range entries {
		fields[i] = fieldDef{Name: e.Key}
		fields[i].lazyValue = e.Value
	}
	return fields
}

func parseEnumDef(raw json.RawMessage) (*rawDef, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		names, err := parseOrderedArray(trimmed)
		if err != nil {
			return nil, err
		}
		variants := make([]enumVariantDef, len(names))
		for i, n := range names {
			var name string
			if err := json.Unmarshal(n, &name); err != nil {
				return nil, &ParseError{Detail: err.Error()}
			}
			variants[i] = enumVariantDef{Name: name, Index: uint8(i)}
		}
		return &rawDef{Variants: variants}, nil
	}

	entries, err := parseOrderedObject(trimmed)
	if err != nil {
		return nil, err
	}
	variants := make([]enumVariantDef, len(entries))
	for i, e := range entries {
		v := bytes.TrimSpace(e.Value)
		variants[i] = enumVariantDef{Name: e.Key, Index: uint8(i)}
		if string(v) == "null" || string(v) == `""` {
			continue
		}
		def, err := parseRawDef(e.Value)
		if err != nil {
			return nil, err
		}
		variants[i].Def = def
	}
	return &rawDef{Variants: variants}, nil
}

func parseSetDef(raw json.RawMessage) (*rawDef, error) {
	entries, err := parseOrderedObject(raw)
	if err != nil {
		return nil, err
	}
	bits := make(map[string]int, len(entries))
	for _, e := range entries {
		n, err := strconv.Atoi(strings.TrimSpace(string(e.Value)))
		if err != nil {
			return nil, &ParseError{Detail: fmt.Sprintf("_set flag %q: %v", e.Key, err)}
		}
		bits[e.Key] = n
	}
	return &rawDef{SetBits: bits}, nil
}

// buildMarker converts a structurally-parsed rawDef into a TypeMarker.
// Custom type names nested inside it (enum variant payloads, struct field
// types, set bit widths aside) become typemarker.Lookup placeholders,
// deferring their resolution until Walk actually needs them; this keeps
// mutually-recursive type dictionaries from looping at build time.
func buildMarker(d *rawDef) (*typemarker.TypeMarker, error) {
	switch {
	case d.Alias != nil:
		return resolveTypeName(*d.Alias), nil

	case d.Variants != nil:
		variants := make([]typemarker.EnumVariant, len(d.Variants))
		for i, v := range d.Variants {
			ev := typemarker.EnumVariant{Name: v.Name, Index: v.Index, Shape: typemarker.ShapeUnit}
			if v.Def != nil {
				switch {
				case v.Def.Alias != nil:
					ev.Shape = typemarker.ShapeTuple
					ev.Tuple = []*typemarker.TypeMarker{resolveTypeName(*v.Def.Alias)}
				case v.Def.Fields != nil:
					ev.Shape = typemarker.ShapeStruct
					fields, err := buildFields(v.Def.Fields)
					if err != nil {
						return nil, err
					}
					ev.Field = fields
				default:
					return nil, &ParseError{Detail: fmt.Sprintf("unsupported _enum payload for variant %q", v.Name)}
				}
			}
			variants[i] = ev
		}
		return typemarker.Enum(variants...), nil

	case d.SetBits != nil:
		max := 0
		for _, bit := range d.SetBits {
			if bit > max {
				max = bit
			}
		}
		return typemarker.Primitive(setWidth(max)), nil

	case d.Fields != nil:
		fields, err := buildFields(d.Fields)
		if err != nil {
			return nil, err
		}
		return typemarker.Struct(fields...), nil

	default:
		return nil, &ParseError{Detail: "empty type definition"}
	}
}

func buildFields(defs []fieldDef) ([]typemarker.StructField, error) {
	fields := make([]typemarker.StructField, len(defs))
	for i, f := range defs {
		inner, err := parseRawDef(f.lazyValue)
		if err != nil {
			return nil, err
		}
		var t *typemarker.TypeMarker
		if inner.Alias != nil {
			t = resolveTypeName(*inner.Alias)
		} else {
			t, err = buildMarker(inner)
			if err != nil {
				return nil, err
			}
		}
		fields[i] = typemarker.StructField{Name: f.Name, Type: t}
	}
	return fields, nil
}

func setWidth(maxBit int) typemarker.PrimitiveKind {
	switch {
	case maxBit < 8:
		return typemarker.PrimU8
	case maxBit < 16:
		return typemarker.PrimU16
	case maxBit < 32:
		return typemarker.PrimU32
	default:
		return typemarker.PrimU64
	}
}

// ParseTypeName converts a bare legacy type-name or shape-grammar string
// (spec.md §4.3 step 5) into a TypeMarker with no chain/spec/pallet context.
// Call-argument and storage-entry types in legacy (pre-v14) metadata are
// themselves wire-encoded as plain type-name strings, so the metadata parser
// uses this directly to build the markers it stores; any custom name that
// isn't a built-in or shape form becomes a deferred Lookup, resolved later
// against the full (chain, spec, pallet) context at Walk time.
func ParseTypeName(name string) *typemarker.TypeMarker {
	return resolveTypeName(name)
}

// resolveTypeName converts a bare type-name or shape-grammar string into a
// TypeMarker. A name matching the global built-in table resolves directly;
// a shape form (Vec<T>, Option<T>, (T,U,...), [T; N], Compact<T>, &T)
// builds the matching composite, with T/U/N/etc. resolved by one more call
// to resolveTypeName; anything else becomes a deferred Lookup.
func resolveTypeName(name string) *typemarker.TypeMarker {
	name = strings.TrimSpace(name)
	if m, ok := globalBuiltins[name]; ok {
		return m
	}
	if m, ok := parseShape(name); ok {
		return m
	}
	return typemarker.Lookup(name)
}

func parseShape(name string) (*typemarker.TypeMarker, bool) {
	switch {
	case strings.HasPrefix(name, "&"):
		return resolveTypeName(name[1:]), true

	case strings.HasPrefix(name, "Vec<") && strings.HasSuffix(name, ">"):
		inner := name[len("Vec<") : len(name)-1]
		if inner == "u8" {
			return typemarker.Primitive(typemarker.PrimBytes), true
		}
		return typemarker.Sequence(resolveTypeName(inner)), true

	case strings.HasPrefix(name, "Option<") && strings.HasSuffix(name, ">"):
		inner := name[len("Option<") : len(name)-1]
		return typemarker.Generic("Option", resolveTypeName(inner)), true

	case strings.HasPrefix(name, "Compact<") && strings.HasSuffix(name, ">"):
		inner := name[len("Compact<") : len(name)-1]
		m, err := typemarker.NewCompact(resolveTypeName(inner))
		if err != nil {
			return nil, false
		}
		return m, true

	case strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") && strings.Contains(name, ";"):
		body := name[1 : len(name)-1]
		parts := strings.SplitN(body, ";", 2)
		if len(parts) != 2 {
			return nil, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, false
		}
		return typemarker.Array(resolveTypeName(strings.TrimSpace(parts[0])), n), true

	case strings.HasPrefix(name, "(") && strings.HasSuffix(name, ")"):
		body := name[1 : len(name)-1]
		parts := splitTopLevel(body)
		if len(parts) < 2 {
			return nil, false
		}
		markers := make([]*typemarker.TypeMarker, len(parts))
		for i, p := range parts {
			markers[i] = resolveTypeName(strings.TrimSpace(p))
		}
		return typemarker.Tuple(markers...), true

	default:
		return nil, false
	}
}

// splitTopLevel splits s on commas that are not nested inside <>, (), or [].
func splitTopLevel(s string) []string {
	var out []string
	depth := 0
	last := 0
	for i, r := range s {
		switch r {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[last:i])
				last = i + 1
			}
		}
	}
	out = append(out, s[last:])
	return out
}
