// Package storage implements storage-key matching and storage-entry
// decoding (spec.md §4.6): recovering which declared entry a raw storage
// key belongs to from the key bytes alone, splitting its hasher chain, and
// decoding the key segments and value against the entry's declared types.
package storage

import (
	"bytes"

	"github.com/synnergy-network/substrate-codec/metadata"
	"github.com/synnergy-network/substrate-codec/scale"
	"github.com/synnergy-network/substrate-codec/typemarker"
)

// KeyValue is one decoded key segment. Value is nil when the segment's
// hasher is opaque (Twox128/Twox256/Blake2_128/Blake2_256): the plain key
// is not recoverable from the digest, so only the raw digest is carried.
type KeyValue struct {
	Hasher metadata.Hasher
	Value  typemarker.Value
	Digest []byte
}

// Record is one fully decoded storage entry: which pallet/entry a raw key
// resolved to, its decoded key segments (empty for a Plain entry), and its
// decoded value. Value is always a typemarker.VOption (spec.md §6 types the
// record's value as option<SubstrateValue>): Some when bytes were found on
// the wire or recovered from the entry's declared default, None when the
// value was absent and the default itself is empty.
type Record struct {
	Pallet *metadata.Pallet
	Entry  *metadata.StorageEntry
	Keys   []KeyValue
	Value  typemarker.Value
}

// MatchEntry recomputes twox128(pallet.Name)||twox128(entry.Name) for every
// storage entry declared in meta and returns the first match against key's
// first 32 bytes, plus the unconsumed key tail (spec.md §4.6).
func MatchEntry(meta *metadata.Metadata, key []byte) (*metadata.Pallet, *metadata.StorageEntry, []byte, error) {
	if len(key) < 32 {
		return nil, nil, nil, &NoMatchingEntryError{KeyPrefix: key}
	}
	prefix := key[:32]
	for i := range meta.Pallets {
		pallet := &meta.Pallets[i]
		palletDigest := Twox128([]byte(pallet.Name))
		if !bytes.Equal(prefix[:16], palletDigest) {
			continue
		}
		for j := range pallet.Storage {
			entry := &pallet.Storage[j]
			entryDigest := Twox128([]byte(entry.Name))
			if bytes.Equal(prefix[16:], entryDigest) {
				return pallet, entry, key[32:], nil
			}
		}
	}
	return nil, nil, nil, &NoMatchingEntryError{KeyPrefix: prefix}
}

// DecodeEntry decodes a matched entry's key tail and value bytes into a
// Record. resolve is the regime-appropriate typemarker.Resolver scoped to
// pallet's namespace.
//
// value is nil when no value was found on the wire for this key (spec.md
// §4.6/§8's named "absent value" boundary case); DecodeEntry then falls back
// to entry.Default, and produces a VOption{Some: false} when that default is
// itself empty, rather than attempting to decode zero bytes.
func DecodeEntry(pallet *metadata.Pallet, entry *metadata.StorageEntry, keyTail []byte, value *[]byte, resolve typemarker.Resolver) (*Record, error) {
	rec := &Record{Pallet: pallet, Entry: entry}
	for _, seg := range entry.Keys {
		kv, rest, err := decodeKeySegment(seg, keyTail, resolve)
		if err != nil {
			return nil, err
		}
		rec.Keys = append(rec.Keys, kv)
		keyTail = rest
	}

	raw := entry.Default
	if value != nil {
		raw = *value
	} else if len(entry.Default) == 0 {
		rec.Value = typemarker.VOption{Some: false}
		return rec, nil
	}

	cur := scale.NewCursor(raw)
	val, err := typemarker.Walk(entry.Value, cur, resolve)
	if err != nil {
		return nil, err
	}
	if cur.Remaining() != 0 {
		return nil, &scale.LengthMismatchError{Declared: len(raw), Consumed: cur.Pos()}
	}
	rec.Value = typemarker.VOption{Some: true, Value: val}
	return rec, nil
}

// decodeKeySegment splits one (hasher, key-type) segment off the front of
// keyTail. For a preserving hasher it also verifies the digest recomputed
// from the decoded plain key matches the one found on the wire, the
// round-trip property spec.md §8 tests for.
func decodeKeySegment(seg metadata.KeySegment, keyTail []byte, resolve typemarker.Resolver) (KeyValue, []byte, error) {
	digestLen := seg.Hasher.DigestLen()
	if len(keyTail) < digestLen {
		return KeyValue{}, nil, &ShortKeyError{Need: digestLen, Got: len(keyTail)}
	}
	digest := keyTail[:digestLen]
	rest := keyTail[digestLen:]

	if !seg.Hasher.Preserves() {
		return KeyValue{Hasher: seg.Hasher, Digest: digest}, rest, nil
	}

	cur := scale.NewCursor(rest)
	val, err := typemarker.Walk(seg.Type, cur, resolve)
	if err != nil {
		return KeyValue{}, nil, err
	}
	plain := rest[:cur.Pos()]
	want := Digest(seg.Hasher, plain)
	if !bytes.Equal(digest, want) {
		return KeyValue{}, nil, &DigestMismatchError{Hasher: seg.Hasher.String(), Want: want, Got: digest}
	}
	return KeyValue{Hasher: seg.Hasher, Value: val, Digest: digest}, rest[cur.Pos():], nil
}
