package typemarker

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Value is the SubstrateValue tree (spec.md §3): a tagged variant mirroring
// TypeMarker, whose leaves carry concrete payloads. Every concrete type
// below carries enough context that a consumer can render it without
// reference to the original metadata.
type Value interface {
	isValue()
}

// VBool is a decoded bool leaf.
type VBool bool

func (VBool) isValue() {}

// VU8, VU16, VU32, VU64 are decoded fixed-width unsigned integer leaves.
type VU8 uint8
type VU16 uint16
type VU32 uint32
type VU64 uint64

func (VU8) isValue()  {}
func (VU16) isValue() {}
func (VU32) isValue() {}
func (VU64) isValue() {}

// VI8, VI16, VI32, VI64 are decoded fixed-width signed integer leaves.
type VI8 int8
type VI16 int16
type VI32 int32
type VI64 int64

func (VI8) isValue()  {}
func (VI16) isValue() {}
func (VI32) isValue() {}
func (VI64) isValue() {}

// VBigInt is a decoded u128/u256/i128/i256 leaf, carried as an
// arbitrary-precision integer (negative for signed values).
type VBigInt struct {
	Value *big.Int
}

func (VBigInt) isValue() {}

// VStr is a decoded length-prefixed UTF-8 string leaf.
type VStr string

func (VStr) isValue() {}

// VBytes is a decoded length-prefixed byte-sequence leaf.
type VBytes []byte

func (VBytes) isValue() {}

// VNull is the zero-width value.
type VNull struct{}

func (VNull) isValue() {}

// VArray is a decoded fixed-length array.
type VArray []Value

func (VArray) isValue() {}

// VSequence is a decoded compact-length-prefixed list.
type VSequence []Value

func (VSequence) isValue() {}

// VTuple is a decoded fixed tuple.
type VTuple []Value

func (VTuple) isValue() {}

// FieldValue is one named field of a decoded struct or struct-shaped enum
// variant.
type FieldValue struct {
	Name  string
	Value Value
}

// VStruct is a decoded ordered set of named fields.
type VStruct struct {
	Field []FieldValue
}

func (VStruct) isValue() {}

// VEnum is a decoded tagged variant.
type VEnum struct {
	Variant string
	Index   uint8
	Shape   VariantShapeKind
	Tuple   []Value      // Shape == ShapeTuple
	Field   []FieldValue // Shape == ShapeStruct
}

func (VEnum) isValue() {}

// VOption is a decoded Option<T>.
type VOption struct {
	Some  bool
	Value Value // valid when Some
}

func (VOption) isValue() {}

// VResult is a decoded Result<T, E>.
type VResult struct {
	Ok    bool
	Value Value
}

func (VResult) isValue() {}

// VCompact is a decoded Compact<T>. Inner holds the same leaf shape T would
// have produced on its own (VU8/.../VBigInt) so consumers can treat a
// compact integer exactly like its plain counterpart.
type VCompact struct {
	Inner Value
}

func (VCompact) isValue() {}

// VAccountID is a 32-byte account identifier, reusing go-ethereum's fixed
// 32-byte hash type for its hex-string ergonomics (SPEC_FULL.md §3).
type VAccountID common.Hash

func (VAccountID) isValue() {}

// VAddress is a decoded extrinsic sender address. Kind is one of
// "AccountId" (legacy, fixed 32-byte account), or the v14+ MultiAddress
// variant names "Id", "Index", "Raw", "Address32", "Address20".
type VAddress struct {
	Kind      string
	AccountID VAccountID // Kind == "AccountId" or "Id" or "Address32"
	Index     *big.Int   // Kind == "Index"
	Raw       []byte     // Kind == "Raw" or "Address20"
}

func (VAddress) isValue() {}

// VSignature is a decoded, unverified extrinsic signature. Kind is one of
// "Ed25519", "Sr25519", "Ecdsa".
type VSignature struct {
	Kind string
	Raw  []byte
}

func (VSignature) isValue() {}

// VEra is a decoded transaction mortality era (the CheckMortality signed
// extension's wire shape): either immortal, or a mortal era expressed as a
// period/phase pair.
type VEra struct {
	Immortal bool
	Period   uint64 // valid when !Immortal
	Phase    uint64 // valid when !Immortal
}

func (VEra) isValue() {}

// Arg is one named, ordered call argument.
type Arg struct {
	Name  string
	Value Value
}

// VCall is a decoded extrinsic call: a pallet name, a call name, and its
// ordered named arguments.
type VCall struct {
	Pallet string
	Name   string
	Args   []Arg
}

func (VCall) isValue() {}
