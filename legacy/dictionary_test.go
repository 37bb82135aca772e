package legacy

import (
	"testing"

	"github.com/synnergy-network/substrate-codec/internal/testutil"
	"github.com/synnergy-network/substrate-codec/typemarker"
)

func TestResolveGlobalBuiltin(t *testing.T) {
	d := NewEmptyResolver()
	m, err := d.Resolve("kusama", 1000, "", "u64")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equal(typemarker.Primitive(typemarker.PrimU64)) {
		t.Fatalf("got %v", m)
	}
}

func TestResolveShapeGrammar(t *testing.T) {
	d := NewEmptyResolver()

	cases := map[string]*typemarker.TypeMarker{
		"Vec<Balance>":    typemarker.Sequence(typemarker.Primitive(typemarker.PrimU128)),
		"Option<u32>":     typemarker.Generic("Option", typemarker.Primitive(typemarker.PrimU32)),
		"[u8; 4]":         typemarker.Array(typemarker.Primitive(typemarker.PrimU8), 4),
		"(u8,u16)":        typemarker.Tuple(typemarker.Primitive(typemarker.PrimU8), typemarker.Primitive(typemarker.PrimU16)),
		"&AccountId":      typemarker.AccountID(),
		"Vec<u8>":         typemarker.Primitive(typemarker.PrimBytes),
	}
	for input, want := range cases {
		got, err := d.Resolve("kusama", 1000, "", input)
		if err != nil {
			t.Fatalf("%s: %v", input, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%s: got %#v want %#v", input, got, want)
		}
	}
}

func TestResolveCompactGrammar(t *testing.T) {
	d := NewEmptyResolver()
	got, err := d.Resolve("kusama", 1000, "", "Compact<Balance>")
	if err != nil {
		t.Fatal(err)
	}
	want, _ := typemarker.NewCompact(typemarker.Primitive(typemarker.PrimU128))
	if !got.Equal(want) {
		t.Fatalf("got %#v", got)
	}
}

func TestResolveUnknownName(t *testing.T) {
	d := NewEmptyResolver()
	_, err := d.Resolve("kusama", 1000, "", "SomeCustomType")
	if _, ok := err.(*TypeNotFoundError); !ok {
		t.Fatalf("expected TypeNotFoundError, got %v", err)
	}
}

const typesDoc = `{
  "kusama": [
    { "minMax": [1000, 1100], "types": {
        "VoteThreshold": { "_enum": ["SuperMajorityApprove", "SuperMajorityAgainst", "SimpleMajority"] },
        "RawSolution": { "_struct": { "compact": "CompactAssignments", "score": "u128" } },
        "Outcome": { "_enum": { "Accepted": null, "Rejected": "u32", "Pending": { "at": "u32", "why": "Vec<u8>" } } },
        "Permission": { "_set": { "Read": 0, "Write": 1, "Execute": 2 } },
        "Alias1": "u32",
        "Cyclic": "Cyclic"
      }
    },
    { "minMax": [900, 999], "types": {
        "VoteThreshold": "u8"
      }
    }
  ]
}`

func loadDoc(t *testing.T) *Dictionary {
	t.Helper()
	box, err := testutil.NewSandbox()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { box.Cleanup() })
	if err := box.WriteFile("types.json", []byte(typesDoc), 0o600); err != nil {
		t.Fatal(err)
	}
	raw, err := box.ReadFile("types.json")
	if err != nil {
		t.Fatal(err)
	}
	d, err := NewDictionary(raw, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestResolveEnumArrayForm(t *testing.T) {
	d := loadDoc(t)
	m, err := d.Resolve("kusama", 1050, "", "VoteThreshold")
	if err != nil {
		t.Fatal(err)
	}
	want := typemarker.Enum(
		typemarker.EnumVariant{Name: "SuperMajorityApprove", Index: 0, Shape: typemarker.ShapeUnit},
		typemarker.EnumVariant{Name: "SuperMajorityAgainst", Index: 1, Shape: typemarker.ShapeUnit},
		typemarker.EnumVariant{Name: "SimpleMajority", Index: 2, Shape: typemarker.ShapeUnit},
	)
	if !m.Equal(want) {
		t.Fatalf("got %#v", m)
	}
}

func TestResolveRangeSelectsFirstMatch(t *testing.T) {
	d := loadDoc(t)
	m, err := d.Resolve("kusama", 950, "", "VoteThreshold")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equal(typemarker.Primitive(typemarker.PrimU8)) {
		t.Fatalf("expected the 900..999 range's u8 override, got %#v", m)
	}
}

func TestResolveStructDef(t *testing.T) {
	d := loadDoc(t)
	m, err := d.Resolve("kusama", 1050, "", "RawSolution")
	if err != nil {
		t.Fatal(err)
	}
	want := typemarker.Struct(
		typemarker.StructField{Name: "compact", Type: typemarker.Lookup("CompactAssignments")},
		typemarker.StructField{Name: "score", Type: typemarker.Primitive(typemarker.PrimU128)},
	)
	if !m.Equal(want) {
		t.Fatalf("got %#v", m)
	}
}

func TestResolveEnumObjectFormMixedShapes(t *testing.T) {
	d := loadDoc(t)
	m, err := d.Resolve("kusama", 1050, "", "Outcome")
	if err != nil {
		t.Fatal(err)
	}
	want := typemarker.Enum(
		typemarker.EnumVariant{Name: "Accepted", Index: 0, Shape: typemarker.ShapeUnit},
		typemarker.EnumVariant{Name: "Rejected", Index: 1, Shape: typemarker.ShapeTuple,
			Tuple: []*typemarker.TypeMarker{typemarker.Primitive(typemarker.PrimU32)}},
		typemarker.EnumVariant{Name: "Pending", Index: 2, Shape: typemarker.ShapeStruct,
			Field: []typemarker.StructField{
				{Name: "at", Type: typemarker.Primitive(typemarker.PrimU32)},
				{Name: "why", Type: typemarker.Primitive(typemarker.PrimBytes)},
			}},
	)
	if !m.Equal(want) {
		t.Fatalf("got %#v", m)
	}
}

func TestResolveSetDef(t *testing.T) {
	d := loadDoc(t)
	m, err := d.Resolve("kusama", 1050, "", "Permission")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equal(typemarker.Primitive(typemarker.PrimU8)) {
		t.Fatalf("got %#v", m)
	}
}

func TestResolveAliasChain(t *testing.T) {
	d := loadDoc(t)
	m, err := d.Resolve("kusama", 1050, "", "Alias1")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equal(typemarker.Primitive(typemarker.PrimU32)) {
		t.Fatalf("got %#v", m)
	}
}

func TestResolveCyclicAlias(t *testing.T) {
	d := loadDoc(t)
	_, err := d.Resolve("kusama", 1050, "", "Cyclic")
	if _, ok := err.(*CyclicTypeError); !ok {
		t.Fatalf("expected CyclicTypeError, got %v", err)
	}
}

func TestTryFallbackChainWide(t *testing.T) {
	chainWide := `{"kusama": {"SessionKeys": {"grandpa": "AccountId", "babe": "AccountId"}}}`
	d, err := NewDictionary(nil, []byte(chainWide), nil)
	if err != nil {
		t.Fatal(err)
	}
	m, err := d.TryFallback("kusama", "SessionKeys")
	if err != nil {
		t.Fatal(err)
	}
	want := typemarker.Struct(
		typemarker.StructField{Name: "grandpa", Type: typemarker.AccountID()},
		typemarker.StructField{Name: "babe", Type: typemarker.AccountID()},
	)
	if !m.Equal(want) {
		t.Fatalf("got %#v", m)
	}
}

func TestGetExtrinsicTySeparateNamespace(t *testing.T) {
	extrinsicsDoc := `{"kusama": [{ "minMax": [1000, null], "types": { "LookupSource": "AccountId" } }]}`
	d, err := NewDictionary(nil, nil, []byte(extrinsicsDoc))
	if err != nil {
		t.Fatal(err)
	}
	m, err := d.GetExtrinsicTy("kusama", 1050, "LookupSource")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equal(typemarker.AccountID()) {
		t.Fatalf("got %#v", m)
	}
	if _, err := d.Resolve("kusama", 1050, "", "LookupSource"); err != nil {
		t.Fatalf("Resolve should still reach the global builtin, got %v", err)
	}
}

func TestPalletScopedBuiltin(t *testing.T) {
	d := NewEmptyResolver()
	m, err := d.Resolve("kusama", 1000, "system", "AccountInfo")
	if err != nil {
		t.Fatal(err)
	}
	if m.Kind != typemarker.KindStruct {
		t.Fatalf("got %#v", m)
	}
}
