package typemarker

import (
	"math/big"
	"testing"

	"github.com/synnergy-network/substrate-codec/scale"
)

func walk(t *testing.T, m *TypeMarker, data []byte, resolve Resolver) Value {
	t.Helper()
	cur := scale.NewCursor(data)
	v, err := Walk(m, cur, resolve)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if cur.Remaining() != 0 {
		t.Fatalf("walk left %d bytes unconsumed", cur.Remaining())
	}
	return v
}

func TestWalkPrimitives(t *testing.T) {
	v := walk(t, Primitive(PrimU64), []byte{0, 0, 0, 0, 0, 0, 0, 1}, nil)
	if v.(VU64) != VU64(1<<56) {
		t.Fatalf("got %v", v)
	}

	v = walk(t, Primitive(PrimBool), []byte{0x01}, nil)
	if v.(VBool) != true {
		t.Fatalf("got %v", v)
	}
}

func TestWalkArrayAndTuple(t *testing.T) {
	m := Array(Primitive(PrimU8), 3)
	v := walk(t, m, []byte{1, 2, 3}, nil)
	arr := v.(VArray)
	if len(arr) != 3 || arr[0].(VU8) != 1 || arr[2].(VU8) != 3 {
		t.Fatalf("got %v", arr)
	}

	tup := Tuple(Primitive(PrimBool), Primitive(PrimU8))
	tv := walk(t, tup, []byte{0x01, 0x2a}, nil).(VTuple)
	if tv[0].(VBool) != true || tv[1].(VU8) != 0x2a {
		t.Fatalf("got %v", tv)
	}
}

func TestWalkSequence(t *testing.T) {
	m := Sequence(Primitive(PrimU8))
	// compact length 2, then two bytes
	v := walk(t, m, []byte{0x08, 0x0a, 0x0b}, nil).(VSequence)
	if len(v) != 2 || v[0].(VU8) != 0x0a || v[1].(VU8) != 0x0b {
		t.Fatalf("got %v", v)
	}
}

func TestWalkStruct(t *testing.T) {
	m := Struct(
		StructField{Name: "a", Type: Primitive(PrimU8)},
		StructField{Name: "b", Type: Primitive(PrimBool)},
	)
	v := walk(t, m, []byte{0x05, 0x01}, nil).(VStruct)
	if v.Field[0].Name != "a" || v.Field[0].Value.(VU8) != 5 {
		t.Fatalf("got %v", v)
	}
	if v.Field[1].Value.(VBool) != true {
		t.Fatalf("got %v", v)
	}
}

func TestWalkEnumUnitAndTuple(t *testing.T) {
	m := Enum(
		EnumVariant{Name: "None", Index: 0, Shape: ShapeUnit},
		EnumVariant{Name: "Some", Index: 1, Shape: ShapeTuple, Tuple: []*TypeMarker{Primitive(PrimU8)}},
	)
	v := walk(t, m, []byte{0x00}, nil).(VEnum)
	if v.Variant != "None" {
		t.Fatalf("got %v", v)
	}
	v = walk(t, m, []byte{0x01, 0x07}, nil).(VEnum)
	if v.Variant != "Some" || v.Tuple[0].(VU8) != 7 {
		t.Fatalf("got %v", v)
	}
}

func TestWalkEnumBadVariantIndex(t *testing.T) {
	m := Enum(EnumVariant{Name: "A", Index: 0, Shape: ShapeUnit})
	cur := scale.NewCursor([]byte{0x05})
	if _, err := Walk(m, cur, nil); err == nil {
		t.Fatal("expected BadVariantIndexError")
	}
}

func TestWalkOptionAndResult(t *testing.T) {
	opt := Generic("Option", Primitive(PrimU8))
	v := walk(t, opt, []byte{0x00}, nil).(VOption)
	if v.Some {
		t.Fatalf("got %v", v)
	}
	v = walk(t, opt, []byte{0x01, 0x09}, nil).(VOption)
	if !v.Some || v.Value.(VU8) != 9 {
		t.Fatalf("got %v", v)
	}

	res := Generic("Result", Primitive(PrimU8), Primitive(PrimBool))
	rv := walk(t, res, []byte{0x00, 0x02}, nil).(VResult)
	if !rv.Ok || rv.Value.(VU8) != 2 {
		t.Fatalf("got %v", rv)
	}
	rv = walk(t, res, []byte{0x01, 0x01}, nil).(VResult)
	if rv.Ok || rv.Value.(VBool) != true {
		t.Fatalf("got %v", rv)
	}
}

func TestWalkCompact(t *testing.T) {
	c, err := NewCompact(Primitive(PrimU64))
	if err != nil {
		t.Fatal(err)
	}
	v := walk(t, c, []byte{0xfc}, nil).(VCompact)
	if v.Inner.(VU64) != 63 {
		t.Fatalf("got %v", v)
	}
}

func TestNewCompactRejectsWideType(t *testing.T) {
	if _, err := NewCompact(Primitive(PrimU256)); err == nil {
		t.Fatal("expected error for Compact<u256>")
	}
	if _, err := NewCompact(Primitive(PrimI32)); err == nil {
		t.Fatal("expected error for Compact<i32> (signed)")
	}
}

func TestWalkBoxPassthrough(t *testing.T) {
	m := Generic("Box", Primitive(PrimU8))
	v := walk(t, m, []byte{0x2a}, nil)
	if v.(VU8) != 0x2a {
		t.Fatalf("got %v", v)
	}
}

func TestWalkAccountID(t *testing.T) {
	data := make([]byte, 32)
	data[0] = 0xaa
	data[31] = 0xbb
	v := walk(t, AccountID(), data, nil).(VAccountID)
	if v[0] != 0xaa || v[31] != 0xbb {
		t.Fatalf("got %v", v)
	}
}

func TestWalkLookupResolves(t *testing.T) {
	resolve := func(name string) (*TypeMarker, error) {
		if name == "Balance" {
			return Primitive(PrimU128), nil
		}
		return nil, &UnresolvedLookupError{Name: name}
	}
	m := Lookup("Balance")
	b := make([]byte, 16)
	b[0] = 0x10
	v := walk(t, m, b, resolve).(VBigInt)
	if v.Value.Cmp(big.NewInt(0x10)) != 0 {
		t.Fatalf("got %v", v.Value)
	}
	// the stored marker is untouched by resolution.
	if m.Kind != KindLookup {
		t.Fatalf("lookup marker was mutated: %v", m.Kind)
	}
}

func TestWalkLinkage(t *testing.T) {
	m := Generic("Linkage", Primitive(PrimU32), Primitive(PrimU8))
	// value=1, previous=None, next=Some(7)
	data := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x01, 0x07}
	v := walk(t, m, data, nil).(VStruct)
	if v.Field[0].Name != "value" || v.Field[0].Value.(VU32) != 1 {
		t.Fatalf("got %v", v)
	}
	if v.Field[1].Value.(VOption).Some {
		t.Fatalf("expected previous=None")
	}
	next := v.Field[2].Value.(VOption)
	if !next.Some || next.Value.(VU8) != 7 {
		t.Fatalf("got %v", next)
	}
}
