package extrinsic

import (
	"github.com/synnergy-network/substrate-codec/scale"
	"github.com/synnergy-network/substrate-codec/typemarker"
)

// decodeSignature decodes the MultiSignature enum: a one-byte discriminant
// (0 Ed25519, 1 Sr25519, 2 Ecdsa) followed by the fixed-width raw signature
// bytes. No scheme's signature is verified here (spec.md Non-goals).
func decodeSignature(cur *scale.Cursor) (typemarker.VSignature, error) {
	tag, err := cur.ReadByte()
	if err != nil {
		return typemarker.VSignature{}, err
	}
	switch tag {
	case 0:
		b, err := cur.ReadBytes(64)
		if err != nil {
			return typemarker.VSignature{}, err
		}
		return typemarker.VSignature{Kind: "Ed25519", Raw: b}, nil
	case 1:
		b, err := cur.ReadBytes(64)
		if err != nil {
			return typemarker.VSignature{}, err
		}
		return typemarker.VSignature{Kind: "Sr25519", Raw: b}, nil
	case 2:
		b, err := cur.ReadBytes(65)
		if err != nil {
			return typemarker.VSignature{}, err
		}
		return typemarker.VSignature{Kind: "Ecdsa", Raw: b}, nil
	default:
		return typemarker.VSignature{}, &BadSignatureTagError{Tag: tag}
	}
}
