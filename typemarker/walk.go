package typemarker

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/synnergy-network/substrate-codec/scale"
)

// Resolver resolves a symbolic Lookup marker to a concrete TypeMarker. The
// legacy regime implements this as a (chain, spec, pallet, name) walk
// through the legacy.Dictionary fallback chain; the current regime implements
// it as an O(1) id lookup into registry.Registry. See DESIGN.md (C4) and
// DESIGN_NOTES §9 for why the two stay behind this one closure boundary
// rather than a shared concrete resolver type.
type Resolver func(name string) (*TypeMarker, error)

// Walk decodes bytes from cur according to m, producing a Value of the
// matching shape and advancing cur by exactly the bytes consumed. A Lookup
// marker is resolved exactly once per node via resolve; the resolved marker
// replaces the node for this walk only, never mutating m itself.
func Walk(m *TypeMarker, cur *scale.Cursor, resolve Resolver) (Value, error) {
	switch m.Kind {
	case KindNull:
		return VNull{}, nil

	case KindPrimitive:
		return walkPrimitive(m.Primitive, cur)

	case KindArray:
		out := make(VArray, m.Length)
		for i := 0; i < m.Length; i++ {
			v, err := Walk(m.Elem, cur, resolve)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case KindSequence:
		return walkSequence(m.Elem, cur, resolve)

	case KindTuple:
		out := make(VTuple, len(m.Tuple))
		for i, elem := range m.Tuple {
			v, err := Walk(elem, cur, resolve)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case KindStruct:
		fields, err := walkFields(m.Field, cur, resolve)
		if err != nil {
			return nil, err
		}
		return VStruct{Field: fields}, nil

	case KindEnum:
		return walkEnum(m, cur, resolve)

	case KindGeneric:
		return walkGeneric(m, cur, resolve)

	case KindLookup:
		if resolve == nil {
			return nil, &UnresolvedLookupError{Name: m.LookupName}
		}
		resolved, err := resolve(m.LookupName)
		if err != nil {
			return nil, err
		}
		return Walk(resolved, cur, resolve)

	default:
		return nil, &UnknownGenericError{Name: m.Kind.String()}
	}
}

func walkFields(fields []StructField, cur *scale.Cursor, resolve Resolver) ([]FieldValue, error) {
	out := make([]FieldValue, len(fields))
	for i, f := range fields {
		v, err := Walk(f.Type, cur, resolve)
		if err != nil {
			return nil, err
		}
		out[i] = FieldValue{Name: f.Name, Value: v}
	}
	return out, nil
}

func walkSequence(elem *TypeMarker, cur *scale.Cursor, resolve Resolver) (Value, error) {
	n, err := cur.ReadCompactUint64()
	if err != nil {
		return nil, err
	}
	out := make(VSequence, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := Walk(elem, cur, resolve)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func walkEnum(m *TypeMarker, cur *scale.Cursor, resolve Resolver) (Value, error) {
	idx, err := cur.ReadByte()
	if err != nil {
		return nil, err
	}
	var match *EnumVariant
	var max uint8
	for i := range m.Variant {
		if m.Variant[i].Index > max {
			max = m.Variant[i].Index
		}
		if m.Variant[i].Index == idx {
			match = &m.Variant[i]
		}
	}
	if match == nil {
		return nil, &BadVariantIndexError{Index: idx, Max: max}
	}
	out := VEnum{Variant: match.Name, Index: match.Index, Shape: match.Shape}
	switch match.Shape {
	case ShapeUnit:
		// nothing more to read
	case ShapeTuple:
		vals := make([]Value, len(match.Tuple))
		for i, t := range match.Tuple {
			v, err := Walk(t, cur, resolve)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		out.Tuple = vals
	case ShapeStruct:
		fields, err := walkFields(match.Field, cur, resolve)
		if err != nil {
			return nil, err
		}
		out.Field = fields
	}
	return out, nil
}

func walkGeneric(m *TypeMarker, cur *scale.Cursor, resolve Resolver) (Value, error) {
	switch m.GenericName {
	case "Option":
		some, err := cur.ReadOption()
		if err != nil {
			return nil, err
		}
		if !some {
			return VOption{Some: false}, nil
		}
		v, err := Walk(m.GenericArg[0], cur, resolve)
		if err != nil {
			return nil, err
		}
		return VOption{Some: true, Value: v}, nil

	case "Result":
		ok, err := cur.ReadResult()
		if err != nil {
			return nil, err
		}
		if ok {
			v, err := Walk(m.GenericArg[0], cur, resolve)
			if err != nil {
				return nil, err
			}
			return VResult{Ok: true, Value: v}, nil
		}
		v, err := Walk(m.GenericArg[1], cur, resolve)
		if err != nil {
			return nil, err
		}
		return VResult{Ok: false, Value: v}, nil

	case "Compact":
		raw, err := cur.ReadCompact()
		if err != nil {
			return nil, err
		}
		inner, err := coerceCompact(raw, m.GenericArg[0].Primitive)
		if err != nil {
			return nil, err
		}
		return VCompact{Inner: inner}, nil

	case "Vec":
		return walkSequence(m.GenericArg[0], cur, resolve)

	case "Box":
		return Walk(m.GenericArg[0], cur, resolve)

	case "AccountId":
		b, err := cur.ReadBytes(32)
		if err != nil {
			return nil, err
		}
		return VAccountID(common.BytesToHash(b)), nil

	case "Era":
		first, err := cur.ReadByte()
		if err != nil {
			return nil, err
		}
		if first == 0 {
			return VEra{Immortal: true}, nil
		}
		second, err := cur.ReadByte()
		if err != nil {
			return nil, err
		}
		encoded := uint16(first) | uint16(second)<<8
		period := uint64(2) << (encoded % 16)
		quantizeFactor := period >> 12
		if quantizeFactor == 0 {
			quantizeFactor = 1
		}
		phase := uint64(encoded>>4) * quantizeFactor
		return VEra{Period: period, Phase: phase}, nil

	case "Linkage":
		// struct { value: T, previous: Option<Key>, next: Option<Key> },
		// the historical Substrate linked-map storage wrapper.
		valueType, keyType := m.GenericArg[0], m.GenericArg[1]
		optKey := Generic("Option", keyType)
		fields, err := walkFields([]StructField{
			{Name: "value", Type: valueType},
			{Name: "previous", Type: optKey},
			{Name: "next", Type: optKey},
		}, cur, resolve)
		if err != nil {
			return nil, err
		}
		return VStruct{Field: fields}, nil

	default:
		return nil, &UnknownGenericError{Name: m.GenericName}
	}
}

func walkPrimitive(kind PrimitiveKind, cur *scale.Cursor) (Value, error) {
	switch kind {
	case PrimBool:
		v, err := cur.ReadBool()
		return VBool(v), err
	case PrimU8:
		v, err := cur.ReadU8()
		return VU8(v), err
	case PrimU16:
		v, err := cur.ReadU16()
		return VU16(v), err
	case PrimU32:
		v, err := cur.ReadU32()
		return VU32(v), err
	case PrimU64:
		v, err := cur.ReadU64()
		return VU64(v), err
	case PrimU128:
		v, err := cur.ReadUintN(16)
		if err != nil {
			return nil, err
		}
		return VBigInt{Value: v}, nil
	case PrimU256:
		v, err := cur.ReadUintN(32)
		if err != nil {
			return nil, err
		}
		return VBigInt{Value: v}, nil
	case PrimI8:
		v, err := cur.ReadI8()
		return VI8(v), err
	case PrimI16:
		v, err := cur.ReadI16()
		return VI16(v), err
	case PrimI32:
		v, err := cur.ReadI32()
		return VI32(v), err
	case PrimI64:
		v, err := cur.ReadI64()
		return VI64(v), err
	case PrimI128:
		v, err := cur.ReadIntN(16)
		if err != nil {
			return nil, err
		}
		return VBigInt{Value: v}, nil
	case PrimI256:
		v, err := cur.ReadIntN(32)
		if err != nil {
			return nil, err
		}
		return VBigInt{Value: v}, nil
	case PrimStr:
		v, err := cur.ReadString()
		return VStr(v), err
	case PrimBytes:
		v, err := cur.ReadCompactBytes()
		return VBytes(v), err
	default:
		return nil, &UnknownGenericError{Name: kind.String()}
	}
}

func coerceCompact(v *big.Int, kind PrimitiveKind) (Value, error) {
	fits := func(bits uint) bool {
		max := new(big.Int).Lsh(big.NewInt(1), bits)
		return v.Sign() >= 0 && v.Cmp(max) < 0
	}
	switch kind {
	case PrimU8:
		if !fits(8) {
			return nil, &BadCompactWidthError{Kind: kind, Value: v.String()}
		}
		return VU8(v.Uint64()), nil
	case PrimU16:
		if !fits(16) {
			return nil, &BadCompactWidthError{Kind: kind, Value: v.String()}
		}
		return VU16(v.Uint64()), nil
	case PrimU32:
		if !fits(32) {
			return nil, &BadCompactWidthError{Kind: kind, Value: v.String()}
		}
		return VU32(v.Uint64()), nil
	case PrimU64:
		if !fits(64) {
			return nil, &BadCompactWidthError{Kind: kind, Value: v.String()}
		}
		return VU64(v.Uint64()), nil
	case PrimU128:
		if !fits(128) {
			return nil, &BadCompactWidthError{Kind: kind, Value: v.String()}
		}
		return VBigInt{Value: v}, nil
	default:
		return nil, &BadCompactWidthError{Kind: kind, Value: v.String()}
	}
}
