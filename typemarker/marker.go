// Package typemarker implements the type-marker model (spec.md §3/§4.2):
// a tagged description of every shape the decoder can walk, and the
// parallel SubstrateValue tree a walk produces.
package typemarker

import "fmt"

// Kind discriminates the variants of TypeMarker.
type Kind int

const (
	KindPrimitive Kind = iota
	KindArray
	KindSequence
	KindTuple
	KindStruct
	KindEnum
	KindGeneric
	KindLookup
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindArray:
		return "Array"
	case KindSequence:
		return "Sequence"
	case KindTuple:
		return "Tuple"
	case KindStruct:
		return "Struct"
	case KindEnum:
		return "Enum"
	case KindGeneric:
		return "Generic"
	case KindLookup:
		return "Lookup"
	case KindNull:
		return "Null"
	default:
		return "Unknown"
	}
}

// PrimitiveKind enumerates the leaf scalar kinds.
type PrimitiveKind int

const (
	PrimBool PrimitiveKind = iota
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimU128
	PrimU256
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimI128
	PrimI256
	PrimStr
	PrimBytes
)

func (p PrimitiveKind) String() string {
	names := [...]string{"bool", "u8", "u16", "u32", "u64", "u128", "u256",
		"i8", "i16", "i32", "i64", "i128", "i256", "str", "bytes"}
	if int(p) < len(names) {
		return names[p]
	}
	return "unknown"
}

// IsUnsignedInt reports whether p is an unsigned integer primitive at most
// 128 bits wide — the only primitives legal as the inner type of a
// Compact<T> generic (spec.md §3 invariant).
func (p PrimitiveKind) IsUnsignedInt() bool {
	switch p {
	case PrimU8, PrimU16, PrimU32, PrimU64, PrimU128:
		return true
	default:
		return false
	}
}

// VariantShapeKind discriminates the payload shape of an enum variant.
type VariantShapeKind int

const (
	ShapeUnit VariantShapeKind = iota
	ShapeTuple
	ShapeStruct
)

// StructField is one named field of a Struct marker or a Struct-shaped
// enum variant.
type StructField struct {
	Name string
	Type *TypeMarker
}

// EnumVariant is one named, indexed variant of an Enum marker.
type EnumVariant struct {
	Name  string
	Index uint8
	Shape VariantShapeKind
	Tuple []*TypeMarker // valid when Shape == ShapeTuple
	Field []StructField // valid when Shape == ShapeStruct
}

// TypeMarker is a tagged variant describing a single decodable shape.
// Construction is pure; no marker ever does I/O.
type TypeMarker struct {
	Kind Kind

	Primitive PrimitiveKind // KindPrimitive

	Elem   *TypeMarker // KindArray / KindSequence
	Length int         // KindArray

	Tuple []*TypeMarker // KindTuple

	Field []StructField // KindStruct

	Variant []EnumVariant // KindEnum

	GenericName string        // KindGeneric: "Option","Result","Compact","Vec","Box","Linkage"
	GenericArg  []*TypeMarker // KindGeneric

	LookupName string // KindLookup
}

// Primitive returns a TypeMarker for a scalar primitive kind.
func Primitive(kind PrimitiveKind) *TypeMarker {
	return &TypeMarker{Kind: KindPrimitive, Primitive: kind}
}

// Array returns a TypeMarker for a fixed-length array of elem.
func Array(elem *TypeMarker, length int) *TypeMarker {
	return &TypeMarker{Kind: KindArray, Elem: elem, Length: length}
}

// Sequence returns a TypeMarker for a compact-length-prefixed list of elem.
func Sequence(elem *TypeMarker) *TypeMarker {
	return &TypeMarker{Kind: KindSequence, Elem: elem}
}

// Tuple returns a TypeMarker for a fixed tuple of markers.
func Tuple(markers ...*TypeMarker) *TypeMarker {
	return &TypeMarker{Kind: KindTuple, Tuple: markers}
}

// Struct returns a TypeMarker for an ordered set of named fields.
func Struct(fields ...StructField) *TypeMarker {
	return &TypeMarker{Kind: KindStruct, Field: fields}
}

// Enum returns a TypeMarker for an ordered set of named, indexed variants.
func Enum(variants ...EnumVariant) *TypeMarker {
	return &TypeMarker{Kind: KindEnum, Variant: variants}
}

// Lookup returns a symbolic placeholder TypeMarker that must be resolved
// before it can be walked.
func Lookup(name string) *TypeMarker {
	return &TypeMarker{Kind: KindLookup, LookupName: name}
}

// Null returns the zero-width TypeMarker.
func Null() *TypeMarker {
	return &TypeMarker{Kind: KindNull}
}

// Generic returns a TypeMarker for a named generic instantiation such as
// Option<T>, Result<T,E>, Vec<T>, Box<T>, or a Linkage<T,Key> storage
// wrapper. NewCompact should be used for Compact<T> so the unsigned-integer
// invariant is enforced.
func Generic(name string, args ...*TypeMarker) *TypeMarker {
	return &TypeMarker{Kind: KindGeneric, GenericName: name, GenericArg: args}
}

// AccountID returns a TypeMarker for a bare 32-byte account identifier,
// decoded directly into a VAccountID rather than a 32-element VArray.
func AccountID() *TypeMarker {
	return Generic("AccountId")
}

// Era returns a TypeMarker for a transaction mortality era, the wire shape
// the CheckMortality signed extension contributes to an extrinsic's "extra"
// tail.
func Era() *TypeMarker {
	return Generic("Era")
}

// NewCompact returns a TypeMarker for Compact<elem>. elem must be an
// unsigned integer primitive no wider than u128 (spec.md §3 invariant);
// otherwise an error is returned.
func NewCompact(elem *TypeMarker) (*TypeMarker, error) {
	if elem.Kind != KindPrimitive || !elem.Primitive.IsUnsignedInt() {
		return nil, fmt.Errorf("typemarker: Compact<T> requires an unsigned integer <= u128, got %s", elem.describe())
	}
	return Generic("Compact", elem), nil
}

func (m *TypeMarker) describe() string {
	if m.Kind == KindPrimitive {
		return m.Primitive.String()
	}
	return m.Kind.String()
}

// Equal reports whether two markers are structurally identical.
func (m *TypeMarker) Equal(other *TypeMarker) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Kind != other.Kind {
		return false
	}
	switch m.Kind {
	case KindPrimitive:
		return m.Primitive == other.Primitive
	case KindArray:
		return m.Length == other.Length && m.Elem.Equal(other.Elem)
	case KindSequence:
		return m.Elem.Equal(other.Elem)
	case KindTuple:
		return equalMarkerSlices(m.Tuple, other.Tuple)
	case KindStruct:
		if len(m.Field) != len(other.Field) {
			return false
		}
		for i := range m.Field {
			if m.Field[i].Name != other.Field[i].Name || !m.Field[i].Type.Equal(other.Field[i].Type) {
				return false
			}
		}
		return true
	case KindEnum:
		if len(m.Variant) != len(other.Variant) {
			return false
		}
		for i := range m.Variant {
			a, b := m.Variant[i], other.Variant[i]
			if a.Name != b.Name || a.Index != b.Index || a.Shape != b.Shape {
				return false
			}
			if !equalMarkerSlices(a.Tuple, b.Tuple) {
				return false
			}
			if len(a.Field) != len(b.Field) {
				return false
			}
			for j := range a.Field {
				if a.Field[j].Name != b.Field[j].Name || !a.Field[j].Type.Equal(b.Field[j].Type) {
					return false
				}
			}
		}
		return true
	case KindGeneric:
		return m.GenericName == other.GenericName && equalMarkerSlices(m.GenericArg, other.GenericArg)
	case KindLookup:
		return m.LookupName == other.LookupName
	case KindNull:
		return true
	default:
		return false
	}
}

func equalMarkerSlices(a, b []*TypeMarker) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
