package metadata

import (
	"github.com/synnergy-network/substrate-codec/registry"
	"github.com/synnergy-network/substrate-codec/scale"
	"github.com/synnergy-network/substrate-codec/typemarker"
)

// v14PrimitiveKinds maps the scale-info TypeDefPrimitive discriminant order
// (Bool, Char, Str, U8..U256, I8..I256) onto typemarker.PrimitiveKind. Char
// has no dedicated leaf in this module's primitive set; it is carried as a
// u32 the same way codec::Encode represents a Rust char on the wire.
var v14PrimitiveKinds = []typemarker.PrimitiveKind{
	typemarker.PrimBool,
	typemarker.PrimU32, // Char
	typemarker.PrimStr,
	typemarker.PrimU8, typemarker.PrimU16, typemarker.PrimU32, typemarker.PrimU64, typemarker.PrimU128, typemarker.PrimU256,
	typemarker.PrimI8, typemarker.PrimI16, typemarker.PrimI32, typemarker.PrimI64, typemarker.PrimI128, typemarker.PrimI256,
}

func readCompactID(cur *scale.Cursor) (uint32, error) {
	v, err := cur.ReadCompactUint64()
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func readIDVec(cur *scale.Cursor) ([]uint32, error) {
	count, err := cur.ReadCompactUint64()
	if err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	for i := range out {
		if out[i], err = readCompactID(cur); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readStringVec(cur *scale.Cursor) ([]string, error) {
	count, err := cur.ReadCompactUint64()
	if err != nil {
		return nil, err
	}
	out := make([]string, count)
	for i := range out {
		if out[i], err = cur.ReadString(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func skipDocs(cur *scale.Cursor) error {
	_, err := readStringVec(cur)
	return err
}

func parseField(cur *scale.Cursor) (registry.Field, error) {
	hasName, err := cur.ReadOption()
	if err != nil {
		return registry.Field{}, err
	}
	var name string
	if hasName {
		if name, err = cur.ReadString(); err != nil {
			return registry.Field{}, err
		}
	}
	id, err := readCompactID(cur)
	if err != nil {
		return registry.Field{}, err
	}
	hasTypeName, err := cur.ReadOption()
	if err != nil {
		return registry.Field{}, err
	}
	if hasTypeName {
		if _, err := cur.ReadString(); err != nil { // type_name, descriptive only
			return registry.Field{}, err
		}
	}
	if err := skipDocs(cur); err != nil {
		return registry.Field{}, err
	}
	return registry.Field{Name: name, ID: id}, nil
}

func parseFieldsVec(cur *scale.Cursor) ([]registry.Field, error) {
	count, err := cur.ReadCompactUint64()
	if err != nil {
		return nil, err
	}
	out := make([]registry.Field, count)
	for i := range out {
		if out[i], err = parseField(cur); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseVariant(cur *scale.Cursor) (registry.Variant, error) {
	name, err := cur.ReadString()
	if err != nil {
		return registry.Variant{}, err
	}
	fields, err := parseFieldsVec(cur)
	if err != nil {
		return registry.Variant{}, err
	}
	tuple := false
	for _, f := range fields {
		if f.Name == "" {
			tuple = true
			break
		}
	}
	index, err := cur.ReadByte()
	if err != nil {
		return registry.Variant{}, err
	}
	if err := skipDocs(cur); err != nil {
		return registry.Variant{}, err
	}
	return registry.Variant{Name: name, Index: index, Fields: fields, Tuple: tuple}, nil
}

func parseVariantsVec(cur *scale.Cursor) ([]registry.Variant, error) {
	count, err := cur.ReadCompactUint64()
	if err != nil {
		return nil, err
	}
	out := make([]registry.Variant, count)
	for i := range out {
		if out[i], err = parseVariant(cur); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// parseTypeDef decodes a scale-info TypeDef body given its already-read
// one-byte discriminant, in the same Composite/Variant/Sequence/Array/
// Tuple/Primitive/Compact/BitSequence declaration order as
// registry.DefKind.
func parseTypeDef(cur *scale.Cursor, tag byte) (registry.Def, error) {
	switch tag {
	case 0: // Composite
		fields, err := parseFieldsVec(cur)
		if err != nil {
			return registry.Def{}, err
		}
		return registry.Def{Kind: registry.DefComposite, Fields: fields}, nil

	case 1: // Variant
		variants, err := parseVariantsVec(cur)
		if err != nil {
			return registry.Def{}, err
		}
		return registry.Def{Kind: registry.DefVariant, Variant: variants}, nil

	case 2: // Sequence
		elem, err := readCompactID(cur)
		if err != nil {
			return registry.Def{}, err
		}
		return registry.Def{Kind: registry.DefSequence, Elem: elem}, nil

	case 3: // Array
		length, err := cur.ReadU32()
		if err != nil {
			return registry.Def{}, err
		}
		elem, err := readCompactID(cur)
		if err != nil {
			return registry.Def{}, err
		}
		return registry.Def{Kind: registry.DefArray, Length: int(length), Elem: elem}, nil

	case 4: // Tuple
		ids, err := readIDVec(cur)
		if err != nil {
			return registry.Def{}, err
		}
		return registry.Def{Kind: registry.DefTuple, Tuple: ids}, nil

	case 5: // Primitive
		prim, err := cur.ReadByte()
		if err != nil {
			return registry.Def{}, err
		}
		if int(prim) >= len(v14PrimitiveKinds) {
			return registry.Def{}, &ParseError{Detail: "unknown TypeDefPrimitive discriminant"}
		}
		return registry.Def{Kind: registry.DefPrimitive, Prim: v14PrimitiveKinds[prim]}, nil

	case 6: // Compact
		elem, err := readCompactID(cur)
		if err != nil {
			return registry.Def{}, err
		}
		return registry.Def{Kind: registry.DefCompact, Elem: elem}, nil

	case 7: // BitSequence
		store, err := readCompactID(cur)
		if err != nil {
			return registry.Def{}, err
		}
		order, err := readCompactID(cur)
		if err != nil {
			return registry.Def{}, err
		}
		return registry.Def{Kind: registry.DefBitSequence, Store: store, Order: order}, nil

	default:
		return registry.Def{}, &ParseError{Detail: "unknown TypeDef discriminant"}
	}
}

// parsePortableType decodes one PortableRegistry entry: an id, then a Type
// (path, type params, the TypeDef body, docs).
func parsePortableType(cur *scale.Cursor) (uint32, registry.Def, error) {
	id, err := readCompactID(cur)
	if err != nil {
		return 0, registry.Def{}, err
	}
	if _, err := readStringVec(cur); err != nil { // path segments, descriptive only
		return 0, registry.Def{}, err
	}
	paramCount, err := cur.ReadCompactUint64()
	if err != nil {
		return 0, registry.Def{}, err
	}
	for i := uint64(0); i < paramCount; i++ {
		if _, err := cur.ReadString(); err != nil { // type parameter name
			return 0, registry.Def{}, err
		}
		hasTy, err := cur.ReadOption()
		if err != nil {
			return 0, registry.Def{}, err
		}
		if hasTy {
			if _, err := readCompactID(cur); err != nil {
				return 0, registry.Def{}, err
			}
		}
	}
	tag, err := cur.ReadByte()
	if err != nil {
		return 0, registry.Def{}, err
	}
	def, err := parseTypeDef(cur, tag)
	if err != nil {
		return 0, registry.Def{}, err
	}
	if err := skipDocs(cur); err != nil {
		return 0, registry.Def{}, err
	}
	return id, def, nil
}

func parsePortableRegistry(cur *scale.Cursor) (*registry.Registry, error) {
	count, err := cur.ReadCompactUint64()
	if err != nil {
		return nil, err
	}
	reg := registry.New()
	for i := uint64(0); i < count; i++ {
		id, def, err := parsePortableType(cur)
		if err != nil {
			return nil, err
		}
		reg.Add(id, def)
	}
	return reg, nil
}

func parsePalletStorage(cur *scale.Cursor, reg *registry.Registry) ([]StorageEntry, error) {
	if _, err := cur.ReadString(); err != nil { // prefix
		return nil, err
	}
	count, err := cur.ReadCompactUint64()
	if err != nil {
		return nil, err
	}
	out := make([]StorageEntry, count)
	for i := range out {
		name, err := cur.ReadString()
		if err != nil {
			return nil, err
		}
		if _, err := cur.ReadByte(); err != nil { // modifier
			return nil, err
		}
		tag, err := cur.ReadByte()
		if err != nil {
			return nil, err
		}
		entry := StorageEntry{Name: name}
		switch tag {
		case 0: // Plain
			id, err := readCompactID(cur)
			if err != nil {
				return nil, err
			}
			valueMarker, err := reg.Resolve(id)
			if err != nil {
				return nil, err
			}
			entry.Kind = StoragePlain
			entry.Value = valueMarker

		case 1: // Map (v14 unifies Map/DoubleMap/NMap behind one or more hashers)
			hcount, err := cur.ReadCompactUint64()
			if err != nil {
				return nil, err
			}
			hashers := make([]Hasher, hcount)
			for j := range hashers {
				if hashers[j], err = readHasher(cur); err != nil {
					return nil, err
				}
			}
			keyID, err := readCompactID(cur)
			if err != nil {
				return nil, err
			}
			valID, err := readCompactID(cur)
			if err != nil {
				return nil, err
			}
			valueMarker, err := reg.Resolve(valID)
			if err != nil {
				return nil, err
			}
			entry.Value = valueMarker

			switch {
			case hcount == 1:
				entry.Kind = StorageMap
				keyMarker, err := reg.Resolve(keyID)
				if err != nil {
					return nil, err
				}
				entry.Keys = []KeySegment{{Hasher: hashers[0], Type: keyMarker}}
			default:
				if hcount == 2 {
					entry.Kind = StorageDoubleMap
				} else {
					entry.Kind = StorageNMap
				}
				keyDef, ok := reg.Lookup(keyID)
				if ok && keyDef.Kind == registry.DefTuple && len(keyDef.Tuple) == int(hcount) {
					segs := make([]KeySegment, hcount)
					for j, tid := range keyDef.Tuple {
						m, err := reg.Resolve(tid)
						if err != nil {
							return nil, err
						}
						segs[j] = KeySegment{Hasher: hashers[j], Type: m}
					}
					entry.Keys = segs
				} else {
					// key type isn't a decomposable tuple; every segment
					// shares the whole key type rather than losing the
					// entry entirely.
					keyMarker, err := reg.Resolve(keyID)
					if err != nil {
						return nil, err
					}
					segs := make([]KeySegment, hcount)
					for j := range segs {
						segs[j] = KeySegment{Hasher: hashers[j], Type: keyMarker}
					}
					entry.Keys = segs
				}
			}

		default:
			return nil, &ParseError{Detail: "unknown v14 storage entry type tag"}
		}
		defBytes, err := cur.ReadCompactBytes()
		if err != nil {
			return nil, err
		}
		entry.Default = defBytes
		if err := skipDocs(cur); err != nil {
			return nil, err
		}
		out[i] = entry
	}
	return out, nil
}

func parsePalletCalls(cur *scale.Cursor, reg *registry.Registry) ([]Call, error) {
	id, err := readCompactID(cur)
	if err != nil {
		return nil, err
	}
	def, ok := reg.Lookup(id)
	if !ok {
		return nil, &ParseError{Detail: "pallet call type id not found in registry"}
	}
	if def.Kind != registry.DefVariant {
		return nil, &ParseError{Detail: "pallet call type is not a variant"}
	}
	calls := make([]Call, len(def.Variant))
	for i, v := range def.Variant {
		args := make([]Arg, len(v.Fields))
		for j, f := range v.Fields {
			m, err := reg.Resolve(f.ID)
			if err != nil {
				return nil, err
			}
			args[j] = Arg{Name: f.Name, Type: m}
		}
		calls[i] = Call{Name: v.Name, Index: v.Index, Args: args}
	}
	return calls, nil
}

func parsePalletConstants(cur *scale.Cursor, reg *registry.Registry) ([]Constant, error) {
	count, err := cur.ReadCompactUint64()
	if err != nil {
		return nil, err
	}
	out := make([]Constant, count)
	for i := range out {
		name, err := cur.ReadString()
		if err != nil {
			return nil, err
		}
		id, err := readCompactID(cur)
		if err != nil {
			return nil, err
		}
		val, err := cur.ReadCompactBytes()
		if err != nil {
			return nil, err
		}
		if err := skipDocs(cur); err != nil {
			return nil, err
		}
		m, err := reg.Resolve(id)
		if err != nil {
			return nil, err
		}
		out[i] = Constant{Name: name, Type: m, Value: val}
	}
	return out, nil
}

func parsePallet(cur *scale.Cursor, reg *registry.Registry) (*Pallet, error) {
	name, err := cur.ReadString()
	if err != nil {
		return nil, err
	}
	p := &Pallet{Name: name}

	hasStorage, err := cur.ReadOption()
	if err != nil {
		return nil, err
	}
	if hasStorage {
		if p.Storage, err = parsePalletStorage(cur, reg); err != nil {
			return nil, err
		}
	}

	hasCalls, err := cur.ReadOption()
	if err != nil {
		return nil, err
	}
	if hasCalls {
		if p.Calls, err = parsePalletCalls(cur, reg); err != nil {
			return nil, err
		}
	}

	hasEvent, err := cur.ReadOption()
	if err != nil {
		return nil, err
	}
	if hasEvent {
		if _, err := readCompactID(cur); err != nil {
			return nil, err
		}
		log.WithField("pallet", name).Debug("metadata: event type present but left unpopulated")
	}

	if p.Constants, err = parsePalletConstants(cur, reg); err != nil {
		return nil, err
	}

	hasError, err := cur.ReadOption()
	if err != nil {
		return nil, err
	}
	if hasError {
		if _, err := readCompactID(cur); err != nil {
			return nil, err
		}
	}

	idx, err := cur.ReadByte()
	if err != nil {
		return nil, err
	}
	p.Index = idx
	return p, nil
}

func parseExtrinsicMetadata(cur *scale.Cursor, reg *registry.Registry) ([]SignedExtension, error) {
	if _, err := readCompactID(cur); err != nil { // extrinsic envelope type, unused
		return nil, err
	}
	if _, err := cur.ReadByte(); err != nil { // transaction version
		return nil, err
	}
	count, err := cur.ReadCompactUint64()
	if err != nil {
		return nil, err
	}
	out := make([]SignedExtension, count)
	for i := range out {
		ident, err := cur.ReadString()
		if err != nil {
			return nil, err
		}
		extraID, err := readCompactID(cur)
		if err != nil {
			return nil, err
		}
		addID, err := readCompactID(cur)
		if err != nil {
			return nil, err
		}
		extraM, err := reg.Resolve(extraID)
		if err != nil {
			return nil, err
		}
		addM, err := reg.Resolve(addID)
		if err != nil {
			return nil, err
		}
		out[i] = SignedExtension{Name: ident, Extra: extraM, Additional: addM}
	}
	return out, nil
}

// parseV14 decodes a v14+ metadata body: an embedded PortableRegistry, the
// pallet list (each pallet's calls/storage referencing registry ids), and
// the extrinsic's signed-extension list (spec.md §4.5).
func parseV14(cur *scale.Cursor, version uint8) (*Metadata, error) {
	reg, err := parsePortableRegistry(cur)
	if err != nil {
		return nil, err
	}
	palletCount, err := cur.ReadCompactUint64()
	if err != nil {
		return nil, err
	}
	pallets := make([]Pallet, palletCount)
	for i := range pallets {
		p, err := parsePallet(cur, reg)
		if err != nil {
			return nil, err
		}
		pallets[i] = *p
	}
	exts, err := parseExtrinsicMetadata(cur, reg)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		Regime:           RegimeCurrent,
		Version:          version,
		Pallets:          pallets,
		SignedExtensions: exts,
		Registry:         reg,
	}, nil
}
