package legacy

import "github.com/synnergy-network/substrate-codec/typemarker"

// globalBuiltins is the global built-in table (spec.md §4.3 step 4): type
// names every chain understands regardless of its JSON type dictionary.
var globalBuiltins = map[string]*typemarker.TypeMarker{
	"bool": typemarker.Primitive(typemarker.PrimBool),

	"u8":   typemarker.Primitive(typemarker.PrimU8),
	"u16":  typemarker.Primitive(typemarker.PrimU16),
	"u32":  typemarker.Primitive(typemarker.PrimU32),
	"u64":  typemarker.Primitive(typemarker.PrimU64),
	"u128": typemarker.Primitive(typemarker.PrimU128),
	"u256": typemarker.Primitive(typemarker.PrimU256),

	"i8":   typemarker.Primitive(typemarker.PrimI8),
	"i16":  typemarker.Primitive(typemarker.PrimI16),
	"i32":  typemarker.Primitive(typemarker.PrimI32),
	"i64":  typemarker.Primitive(typemarker.PrimI64),
	"i128": typemarker.Primitive(typemarker.PrimI128),
	"i256": typemarker.Primitive(typemarker.PrimI256),

	"Text":   typemarker.Primitive(typemarker.PrimStr),
	"String": typemarker.Primitive(typemarker.PrimStr),

	"Bytes": typemarker.Primitive(typemarker.PrimBytes),
	"Vec<u8>": typemarker.Primitive(typemarker.PrimBytes),

	"Null": typemarker.Null(),
	"()":   typemarker.Null(),

	"AccountId":   typemarker.AccountID(),
	"AccountId32": typemarker.AccountID(),
	"LookupSource": typemarker.AccountID(),
	"Address":      typemarker.AccountID(),

	"Hash": typemarker.Array(typemarker.Primitive(typemarker.PrimU8), 32),
	"H256": typemarker.Array(typemarker.Primitive(typemarker.PrimU8), 32),
	"H160": typemarker.Array(typemarker.Primitive(typemarker.PrimU8), 20),
	"H512": typemarker.Array(typemarker.Primitive(typemarker.PrimU8), 64),

	"Balance":     typemarker.Primitive(typemarker.PrimU128),
	"BlockNumber": typemarker.Primitive(typemarker.PrimU32),
	"Index":       typemarker.Primitive(typemarker.PrimU32),
	"Nonce":       typemarker.Primitive(typemarker.PrimU32),
	"Moment":      typemarker.Primitive(typemarker.PrimU64),
	"Weight":      typemarker.Primitive(typemarker.PrimU64),
}

// palletBuiltins is the pallet-scoped built-in table (spec.md §4.3 step 3):
// a small fixed set of names whose meaning only makes sense within a
// specific pallet's namespace.
var palletBuiltins = map[string]map[string]*typemarker.TypeMarker{
	"balances": {
		"Balance": typemarker.Primitive(typemarker.PrimU128),
	},
	"system": {
		"AccountInfo": typemarker.Struct(
			typemarker.StructField{Name: "nonce", Type: typemarker.Primitive(typemarker.PrimU32)},
			typemarker.StructField{Name: "consumers", Type: typemarker.Primitive(typemarker.PrimU32)},
			typemarker.StructField{Name: "providers", Type: typemarker.Primitive(typemarker.PrimU32)},
			typemarker.StructField{Name: "sufficients", Type: typemarker.Primitive(typemarker.PrimU32)},
			typemarker.StructField{Name: "data", Type: typemarker.Lookup("AccountData")},
		),
	},
	"timestamp": {
		"Moment": typemarker.Primitive(typemarker.PrimU64),
	},
}
