package metadata

import "github.com/synnergy-network/substrate-codec/typemarker"

// legacySignedExtensions returns the well-known signed-extension list and
// wire shapes used by every pre-v14 chain this module targets. Legacy
// metadata (v8-13) never carries per-extension types the way v14's
// ExtrinsicMetadata.signed_extensions does; the ordered extension set and
// each extension's "extra" wire shape is effectively fixed ABI shared by
// the whole Substrate-family legacy era (SPEC_FULL.md §4, grounded on
// nathanwhit/desub's extrinsics test fixtures, which hard-code the same
// extension set for Kusama blocks 342962/422871).
func legacySignedExtensions() []SignedExtension {
	null := typemarker.Null()
	u32Compact, _ := typemarker.NewCompact(typemarker.Primitive(typemarker.PrimU32))
	u128Compact, _ := typemarker.NewCompact(typemarker.Primitive(typemarker.PrimU128))
	return []SignedExtension{
		{Name: "CheckSpecVersion", Extra: null, Additional: typemarker.Primitive(typemarker.PrimU32)},
		{Name: "CheckTxVersion", Extra: null, Additional: typemarker.Primitive(typemarker.PrimU32)},
		{Name: "CheckGenesis", Extra: null, Additional: typemarker.AccountID()},
		{Name: "CheckMortality", Extra: typemarker.Era(), Additional: typemarker.AccountID()},
		{Name: "CheckNonce", Extra: u32Compact, Additional: null},
		{Name: "CheckWeight", Extra: null, Additional: null},
		{Name: "ChargeTransactionPayment", Extra: u128Compact, Additional: null},
	}
}
