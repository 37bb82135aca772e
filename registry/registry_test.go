package registry

import (
	"testing"

	"github.com/synnergy-network/substrate-codec/scale"
	"github.com/synnergy-network/substrate-codec/typemarker"
)

func TestResolvePrimitive(t *testing.T) {
	r := New()
	r.Add(1, Def{Kind: DefPrimitive, Prim: typemarker.PrimU32})

	m, err := r.Resolve(1)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equal(typemarker.Primitive(typemarker.PrimU32)) {
		t.Fatalf("got %#v", m)
	}
}

func TestResolveUnknownId(t *testing.T) {
	r := New()
	_, err := r.Resolve(42)
	if _, ok := err.(*BadTypeIdError); !ok {
		t.Fatalf("expected BadTypeIdError, got %v", err)
	}
}

func TestResolveCompositeThroughWalk(t *testing.T) {
	r := New()
	r.Add(0, Def{Kind: DefPrimitive, Prim: typemarker.PrimU32})
	r.Add(1, Def{Kind: DefPrimitive, Prim: typemarker.PrimBool})
	r.Add(2, Def{Kind: DefComposite, Fields: []Field{
		{Name: "nonce", ID: 0},
		{Name: "active", ID: 1},
	}})

	top, err := r.Resolve(2)
	if err != nil {
		t.Fatal(err)
	}
	resolve := r.MakeResolver()
	cur := scale.NewCursor([]byte{0x2a, 0x00, 0x00, 0x00, 0x01})
	v, err := typemarker.Walk(top, cur, resolve)
	if err != nil {
		t.Fatal(err)
	}
	st := v.(typemarker.VStruct)
	if st.Field[0].Value.(typemarker.VU32) != 0x2a {
		t.Fatalf("got %#v", st)
	}
	if st.Field[1].Value.(typemarker.VBool) != true {
		t.Fatalf("got %#v", st)
	}
}

func TestResolveVariantUnitAndTuple(t *testing.T) {
	r := New()
	r.Add(0, Def{Kind: DefPrimitive, Prim: typemarker.PrimU8})
	r.Add(1, Def{Kind: DefVariant, Variant: []Variant{
		{Name: "None", Index: 0},
		{Name: "Some", Index: 1, Tuple: true, Fields: []Field{{ID: 0}}},
	}})

	top, err := r.Resolve(1)
	if err != nil {
		t.Fatal(err)
	}
	resolve := r.MakeResolver()

	cur := scale.NewCursor([]byte{0x01, 0x07})
	v, err := typemarker.Walk(top, cur, resolve)
	if err != nil {
		t.Fatal(err)
	}
	ev := v.(typemarker.VEnum)
	if ev.Variant != "Some" || ev.Tuple[0].(typemarker.VU8) != 7 {
		t.Fatalf("got %#v", ev)
	}
}

func TestResolveSequenceArrayTupleCompact(t *testing.T) {
	r := New()
	r.Add(0, Def{Kind: DefPrimitive, Prim: typemarker.PrimU8})
	r.Add(1, Def{Kind: DefSequence, Elem: 0})
	r.Add(2, Def{Kind: DefArray, Elem: 0, Length: 2})
	r.Add(3, Def{Kind: DefTuple, Tuple: []uint32{0, 0}})
	r.Add(4, Def{Kind: DefCompact, Elem: 0})

	resolve := r.MakeResolver()

	seqTop, _ := r.Resolve(1)
	cur := scale.NewCursor([]byte{0x04, 0x09, 0x0a})
	v, err := typemarker.Walk(seqTop, cur, resolve)
	if err != nil || len(v.(typemarker.VSequence)) != 2 {
		t.Fatalf("seq: %v %v", v, err)
	}

	arrTop, _ := r.Resolve(2)
	cur = scale.NewCursor([]byte{1, 2})
	v, err = typemarker.Walk(arrTop, cur, resolve)
	if err != nil || len(v.(typemarker.VArray)) != 2 {
		t.Fatalf("arr: %v %v", v, err)
	}

	tupTop, _ := r.Resolve(3)
	cur = scale.NewCursor([]byte{1, 2})
	v, err = typemarker.Walk(tupTop, cur, resolve)
	if err != nil || len(v.(typemarker.VTuple)) != 2 {
		t.Fatalf("tuple: %v %v", v, err)
	}

	compTop, _ := r.Resolve(4)
	cur = scale.NewCursor([]byte{0xfc})
	v, err = typemarker.Walk(compTop, cur, resolve)
	if err != nil || v.(typemarker.VCompact).Inner.(typemarker.VU8) != 63 {
		t.Fatalf("compact: %v %v", v, err)
	}
}

func TestResolveBitSequenceUsesStoreType(t *testing.T) {
	r := New()
	r.Add(0, Def{Kind: DefPrimitive, Prim: typemarker.PrimU8})
	r.Add(1, Def{Kind: DefBitSequence, Store: 0, Order: 0})

	top, err := r.Resolve(1)
	if err != nil {
		t.Fatal(err)
	}
	resolve := r.MakeResolver()
	cur := scale.NewCursor([]byte{0x0f})
	v, err := typemarker.Walk(top, cur, resolve)
	if err != nil {
		t.Fatal(err)
	}
	if v.(typemarker.VU8) != 0x0f {
		t.Fatalf("got %#v", v)
	}
}

func TestMakeResolverRejectsNonRegistryName(t *testing.T) {
	r := New()
	resolve := r.MakeResolver()
	if _, err := resolve("SomeLegacyName"); err == nil {
		t.Fatal("expected error for non-#id name")
	}
}
