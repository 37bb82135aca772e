package extrinsic

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/synnergy-network/substrate-codec/metadata"
	"github.com/synnergy-network/substrate-codec/scale"
	"github.com/synnergy-network/substrate-codec/typemarker"
)

// decodeAddress decodes a signed extrinsic's sender address. Legacy
// (pre-v14) chains encode it as a fixed 32-byte AccountId; current chains
// encode it as the MultiAddress enum (spec.md §4.7).
func decodeAddress(cur *scale.Cursor, regime metadata.Regime) (typemarker.VAddress, error) {
	if regime == metadata.RegimeLegacy {
		b, err := cur.ReadBytes(32)
		if err != nil {
			return typemarker.VAddress{}, err
		}
		return typemarker.VAddress{Kind: "AccountId", AccountID: typemarker.VAccountID(common.BytesToHash(b))}, nil
	}

	tag, err := cur.ReadByte()
	if err != nil {
		return typemarker.VAddress{}, err
	}
	switch tag {
	case 0: // Id
		b, err := cur.ReadBytes(32)
		if err != nil {
			return typemarker.VAddress{}, err
		}
		return typemarker.VAddress{Kind: "Id", AccountID: typemarker.VAccountID(common.BytesToHash(b))}, nil
	case 1: // Index
		idx, err := cur.ReadCompact()
		if err != nil {
			return typemarker.VAddress{}, err
		}
		return typemarker.VAddress{Kind: "Index", Index: idx}, nil
	case 2: // Raw
		b, err := cur.ReadCompactBytes()
		if err != nil {
			return typemarker.VAddress{}, err
		}
		return typemarker.VAddress{Kind: "Raw", Raw: b}, nil
	case 3: // Address32
		b, err := cur.ReadBytes(32)
		if err != nil {
			return typemarker.VAddress{}, err
		}
		return typemarker.VAddress{Kind: "Address32", AccountID: typemarker.VAccountID(common.BytesToHash(b))}, nil
	case 4: // Address20
		b, err := cur.ReadBytes(20)
		if err != nil {
			return typemarker.VAddress{}, err
		}
		return typemarker.VAddress{Kind: "Address20", Raw: b}, nil
	default:
		return typemarker.VAddress{}, &BadAddressTagError{Tag: tag}
	}
}
