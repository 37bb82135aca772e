package metadata

import (
	"github.com/synnergy-network/substrate-codec/legacy"
	"github.com/synnergy-network/substrate-codec/scale"
)

// parseLegacy decodes a v8-v13 metadata body: a compact-prefixed list of
// modules, each with an optional storage section, an optional call list,
// and a constant list (spec.md §4.5). Prior to v12 modules carry no
// explicit wire index; their position in the list is their index.
func parseLegacy(cur *scale.Cursor, version uint8) (*Metadata, error) {
	count, err := cur.ReadCompactUint64()
	if err != nil {
		return nil, err
	}
	m := &Metadata{Regime: RegimeLegacy, Version: version, SignedExtensions: legacySignedExtensions()}
	for i := uint64(0); i < count; i++ {
		p, err := parseLegacyModule(cur, uint8(i), version)
		if err != nil {
			return nil, err
		}
		m.Pallets = append(m.Pallets, *p)
	}
	return m, nil
}

func parseLegacyModule(cur *scale.Cursor, positionalIndex uint8, version uint8) (*Pallet, error) {
	name, err := cur.ReadString()
	if err != nil {
		return nil, err
	}
	p := &Pallet{Name: name, Index: positionalIndex}

	hasStorage, err := cur.ReadOption()
	if err != nil {
		return nil, err
	}
	if hasStorage {
		entries, err := parseLegacyStorage(cur)
		if err != nil {
			return nil, err
		}
		p.Storage = entries
	}

	hasCalls, err := cur.ReadOption()
	if err != nil {
		return nil, err
	}
	if hasCalls {
		calls, err := parseLegacyCalls(cur)
		if err != nil {
			return nil, err
		}
		p.Calls = calls
	}

	constants, err := parseLegacyConstants(cur)
	if err != nil {
		return nil, err
	}
	p.Constants = constants

	if version >= 12 {
		idx, err := cur.ReadByte()
		if err != nil {
			return nil, err
		}
		p.Index = idx
	}
	return p, nil
}

// parseLegacyStorage reads a legacy storage section. Each entry's kind is a
// one-byte discriminant in the legacy wire format (Plain=0, Map=1,
// DoubleMap=2), mapped onto StorageKind.
func parseLegacyStorage(cur *scale.Cursor) ([]StorageEntry, error) {
	if _, err := cur.ReadString(); err != nil { // module storage prefix, unused beyond grouping
		return nil, err
	}
	count, err := cur.ReadCompactUint64()
	if err != nil {
		return nil, err
	}
	out := make([]StorageEntry, 0, count)
	for i := uint64(0); i < count; i++ {
		name, err := cur.ReadString()
		if err != nil {
			return nil, err
		}
		if _, err := cur.ReadByte(); err != nil { // modifier: Optional=0/Default=1, doesn't affect decode shape
			return nil, err
		}
		kind, err := cur.ReadByte()
		if err != nil {
			return nil, err
		}
		entry := StorageEntry{Name: name}
		switch kind {
		case 0: // Plain
			entry.Kind = StoragePlain
			valTy, err := cur.ReadString()
			if err != nil {
				return nil, err
			}
			entry.Value = legacy.ParseTypeName(valTy)
		case 1: // Map
			entry.Kind = StorageMap
			hasher, err := readHasher(cur)
			if err != nil {
				return nil, err
			}
			keyTy, err := cur.ReadString()
			if err != nil {
				return nil, err
			}
			valTy, err := cur.ReadString()
			if err != nil {
				return nil, err
			}
			entry.Keys = []KeySegment{{Hasher: hasher, Type: legacy.ParseTypeName(keyTy)}}
			entry.Value = legacy.ParseTypeName(valTy)
		case 2: // DoubleMap
			entry.Kind = StorageDoubleMap
			h1, err := readHasher(cur)
			if err != nil {
				return nil, err
			}
			k1, err := cur.ReadString()
			if err != nil {
				return nil, err
			}
			h2, err := readHasher(cur)
			if err != nil {
				return nil, err
			}
			k2, err := cur.ReadString()
			if err != nil {
				return nil, err
			}
			valTy, err := cur.ReadString()
			if err != nil {
				return nil, err
			}
			entry.Keys = []KeySegment{
				{Hasher: h1, Type: legacy.ParseTypeName(k1)},
				{Hasher: h2, Type: legacy.ParseTypeName(k2)},
			}
			entry.Value = legacy.ParseTypeName(valTy)
		default:
			return nil, &ParseError{Detail: "unknown legacy storage entry kind"}
		}
		defBytes, err := cur.ReadCompactBytes()
		if err != nil {
			return nil, err
		}
		entry.Default = defBytes
		if err := skipDocs(cur); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

func parseLegacyCalls(cur *scale.Cursor) ([]Call, error) {
	count, err := cur.ReadCompactUint64()
	if err != nil {
		return nil, err
	}
	out := make([]Call, count)
	for i := uint64(0); i < count; i++ {
		name, err := cur.ReadString()
		if err != nil {
			return nil, err
		}
		argCount, err := cur.ReadCompactUint64()
		if err != nil {
			return nil, err
		}
		args := make([]Arg, argCount)
		for j := uint64(0); j < argCount; j++ {
			argName, err := cur.ReadString()
			if err != nil {
				return nil, err
			}
			argTy, err := cur.ReadString()
			if err != nil {
				return nil, err
			}
			args[j] = Arg{Name: argName, Type: legacy.ParseTypeName(argTy)}
		}
		if err := skipDocs(cur); err != nil {
			return nil, err
		}
		out[i] = Call{Name: name, Index: uint8(i), Args: args}
	}
	return out, nil
}

func parseLegacyConstants(cur *scale.Cursor) ([]Constant, error) {
	count, err := cur.ReadCompactUint64()
	if err != nil {
		return nil, err
	}
	out := make([]Constant, count)
	for i := uint64(0); i < count; i++ {
		name, err := cur.ReadString()
		if err != nil {
			return nil, err
		}
		ty, err := cur.ReadString()
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
		out[i] = Constant{Name: name, Type: legacy.ParseTypeName(ty), Value: val}
	}
	return out, nil
}
