// Package extrinsic implements the extrinsic envelope decoder (spec.md
// §4.7): the version/signed-flag byte, the optional signed preamble
// (address, signature, ordered signed-extension "extra" tail), and the
// pallet/call dispatch with its named arguments.
package extrinsic

import (
	"github.com/sirupsen/logrus"

	"github.com/synnergy-network/substrate-codec/metadata"
	"github.com/synnergy-network/substrate-codec/scale"
	"github.com/synnergy-network/substrate-codec/typemarker"
)

var log = logrus.StandardLogger()

// DecodedExtrinsic is one fully decoded extrinsic.
type DecodedExtrinsic struct {
	Signed    bool
	Version   uint8
	Address   *typemarker.VAddress
	Signature *typemarker.VSignature
	Extra     []typemarker.Arg // one entry per metadata.SignedExtension, present only when Signed
	Call      typemarker.VCall
}

// DecodeExtrinsics decodes a Vec<UncheckedExtrinsic> blob: a compact count
// followed by that many compact-length-prefixed extrinsic bodies. Decoding
// is best-effort (spec.md §8 scenario 6): on failure it returns the
// extrinsics successfully decoded so far alongside the error that stopped
// it, rather than discarding the whole batch.
func DecodeExtrinsics(raw []byte, meta *metadata.Metadata, resolverFactory metadata.ResolverFactory) ([]*DecodedExtrinsic, error) {
	cur := scale.NewCursor(raw)
	count, err := cur.ReadCompactUint64()
	if err != nil {
		return nil, err
	}
	out := make([]*DecodedExtrinsic, 0, count)
	for i := uint64(0); i < count; i++ {
		length, err := cur.ReadCompactUint64()
		if err != nil {
			log.WithError(err).WithField("decoded", len(out)).Warn("extrinsic: batch decode stopped reading a length prefix")
			return out, err
		}
		body, err := cur.ReadBytes(int(length))
		if err != nil {
			log.WithError(err).WithField("decoded", len(out)).Warn("extrinsic: batch decode stopped short of a declared body length")
			return out, err
		}
		dec, err := decodeOne(body, meta, resolverFactory)
		if err != nil {
			log.WithError(err).WithField("index", i).Warn("extrinsic: batch decode stopped on a malformed extrinsic")
			return out, err
		}
		out = append(out, dec)
	}
	return out, nil
}

// DecodeOne decodes a single already-length-stripped extrinsic body.
func DecodeOne(body []byte, meta *metadata.Metadata, resolverFactory metadata.ResolverFactory) (*DecodedExtrinsic, error) {
	return decodeOne(body, meta, resolverFactory)
}

func decodeOne(body []byte, meta *metadata.Metadata, resolverFactory metadata.ResolverFactory) (*DecodedExtrinsic, error) {
	cur := scale.NewCursor(body)
	verByte, err := cur.ReadByte()
	if err != nil {
		return nil, err
	}
	dec := &DecodedExtrinsic{
		Signed:  verByte&0x80 != 0,
		Version: verByte & 0x7f,
	}

	if dec.Signed {
		addr, err := decodeAddress(cur, meta.Regime)
		if err != nil {
			return nil, err
		}
		sig, err := decodeSignature(cur)
		if err != nil {
			return nil, err
		}
		dec.Address = &addr
		dec.Signature = &sig

		extensionResolve := resolverFactory("")
		extra := make([]typemarker.Arg, len(meta.SignedExtensions))
		for i, ext := range meta.SignedExtensions {
			v, err := typemarker.Walk(ext.Extra, cur, extensionResolve)
			if err != nil {
				return nil, err
			}
			extra[i] = typemarker.Arg{Name: ext.Name, Value: v}
		}
		dec.Extra = extra
	}

	palletIdx, err := cur.ReadByte()
	if err != nil {
		return nil, err
	}
	callIdx, err := cur.ReadByte()
	if err != nil {
		return nil, err
	}
	pallet, ok := meta.PalletByIndex(palletIdx)
	if !ok {
		return nil, &UnknownPalletError{Index: palletIdx}
	}
	call, ok := pallet.Call(callIdx)
	if !ok {
		return nil, &UnknownCallError{Pallet: pallet.Name, Index: callIdx}
	}

	resolve := resolverFactory(pallet.Name)
	args := make([]typemarker.Arg, len(call.Args))
	for i, a := range call.Args {
		v, err := typemarker.Walk(a.Type, cur, resolve)
		if err != nil {
			return nil, err
		}
		args[i] = typemarker.Arg{Name: a.Name, Value: v}
	}
	dec.Call = typemarker.VCall{Pallet: pallet.Name, Name: call.Name, Args: args}

	if cur.Remaining() != 0 {
		return nil, &scale.LengthMismatchError{Declared: len(body), Consumed: cur.Pos()}
	}
	return dec, nil
}
