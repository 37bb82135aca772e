// Package metadata implements the metadata parser (spec.md §4.5): decoding
// both legacy (v8-13) and current (v14+) metadata blobs into a common
// internal schema of pallets, calls, storage entries, and signed
// extensions, normalizing the version-specific wire formats the two
// regimes use to describe the same concepts.
package metadata

import (
	"bytes"

	"github.com/sirupsen/logrus"

	"github.com/synnergy-network/substrate-codec/registry"
	"github.com/synnergy-network/substrate-codec/scale"
	"github.com/synnergy-network/substrate-codec/typemarker"
)

var log = logrus.StandardLogger()

// magic is the four-byte prefix every metadata blob begins with (spec.md
// §4.5: the ASCII bytes "meta").
var magic = []byte{0x6d, 0x65, 0x74, 0x61}

// Regime discriminates which of the two resolution regimes (spec.md §1)
// a parsed Metadata belongs to.
type Regime int

const (
	RegimeLegacy Regime = iota
	RegimeCurrent
)

func (r Regime) String() string {
	if r == RegimeCurrent {
		return "current"
	}
	return "legacy"
}

// Arg is one named, ordered call or constant argument.
type Arg struct {
	Name string
	Type *typemarker.TypeMarker
}

// Call is one pallet call (dispatchable extrinsic function), indexed by its
// position within the pallet's call enum.
type Call struct {
	Name  string
	Index uint8
	Args  []Arg
}

// KeySegment is one (hasher, key-type) pair of a Map/DoubleMap/NMap storage
// entry's key layout (spec.md §4.6).
type KeySegment struct {
	Hasher Hasher
	Type   *typemarker.TypeMarker
}

// StorageKind discriminates the shape of a storage entry's key.
type StorageKind int

const (
	StoragePlain StorageKind = iota
	StorageMap
	StorageDoubleMap
	StorageNMap
)

// StorageEntry is one declared storage entry of a pallet.
type StorageEntry struct {
	Name    string
	Kind    StorageKind
	Keys    []KeySegment // empty for StoragePlain
	Value   *typemarker.TypeMarker
	Default []byte
}

// Constant is one pallet constant: a name, declared type, and its
// SCALE-encoded value, baked into the metadata at runtime-build time.
type Constant struct {
	Name  string
	Type  *typemarker.TypeMarker
	Value []byte
}

// SignedExtension is one ordered entry of the extrinsic signed-extension
// list (spec.md §4.7). Additional is carried for schema completeness (the
// current regime's ExtrinsicMetadata declares it) but is never decoded from
// the wire: additional-signed data is implicit, not transmitted.
type SignedExtension struct {
	Name       string
	Extra      *typemarker.TypeMarker
	Additional *typemarker.TypeMarker
}

// Pallet is one module of a runtime: its calls and storage entries, indexed
// both by name and by the small integer index used on the wire.
type Pallet struct {
	Name      string
	Index     uint8
	Calls     []Call
	Storage   []StorageEntry
	Constants []Constant
}

// Call looks up a call declared on p by its wire index.
func (p *Pallet) Call(index uint8) (*Call, bool) {
	for i := range p.Calls {
		if p.Calls[i].Index == index {
			return &p.Calls[i], true
		}
	}
	return nil, false
}

// StorageEntry looks up a storage entry declared on p by name.
func (p *Pallet) StorageEntry(name string) (*StorageEntry, bool) {
	for i := range p.Storage {
		if p.Storage[i].Name == name {
			return &p.Storage[i], true
		}
	}
	return nil, false
}

// Metadata is the internal schema normalized from either a legacy or a
// current metadata blob (spec.md §3 "Metadata schema").
type Metadata struct {
	Regime           Regime
	Version          uint8
	Pallets          []Pallet
	SignedExtensions []SignedExtension
	Registry         *registry.Registry // non-nil only when Regime == RegimeCurrent
}

// Pallet looks up a pallet by name.
func (m *Metadata) Pallet(name string) (*Pallet, bool) {
	for i := range m.Pallets {
		if m.Pallets[i].Name == name {
			return &m.Pallets[i], true
		}
	}
	return nil, false
}

// PalletByIndex looks up a pallet by its wire index.
func (m *Metadata) PalletByIndex(index uint8) (*Pallet, bool) {
	for i := range m.Pallets {
		if m.Pallets[i].Index == index {
			return &m.Pallets[i], true
		}
	}
	return nil, false
}

// ResolverFactory builds a typemarker.Resolver scoped to a single pallet's
// namespace. Both regimes implement it: the legacy regime closes over a
// (chain, spec, pallet) resolution through legacy.Dictionary; the current
// regime ignores pallet and closes over registry.Registry.MakeResolver,
// which is already pallet-agnostic (spec.md §9 "dual-regime dispatch").
type ResolverFactory func(pallet string) typemarker.Resolver

// Parse decodes a length-free, magic-prefixed metadata blob (spec.md §4.5):
// four magic bytes, a one-byte version, then a version-specific body.
// Versions 8 through 13 route to the legacy schema builder; 14 and above
// route to the current schema builder, which additionally populates a
// registry.Registry.
func Parse(raw []byte) (*Metadata, error) {
	cur := scale.NewCursor(raw)
	got, err := cur.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(got, magic) {
		return nil, &BadMagicError{Got: got}
	}
	version, err := cur.ReadByte()
	if err != nil {
		return nil, err
	}
	switch {
	case version >= 8 && version < 14:
		m, err := parseLegacy(cur, version)
		if err != nil {
			return nil, err
		}
		return m, nil
	case version >= 14:
		m, err := parseV14(cur, version)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, &UnsupportedMetadataVersionError{Version: version}
	}
}
