package metadata

import "github.com/synnergy-network/substrate-codec/scale"

// Hasher discriminates a storage-key mixing function (spec.md §4.6,
// GLOSSARY). Discriminant order follows the on-chain StorageHasher enum:
// a fieldless SCALE enum decodes as one byte tagging declaration order.
type Hasher uint8

const (
	HasherBlake2_128 Hasher = iota
	HasherBlake2_256
	HasherBlake2_128Concat
	HasherTwox128
	HasherTwox256
	HasherTwox64Concat
	HasherIdentity
)

func (h Hasher) String() string {
	switch h {
	case HasherBlake2_128:
		return "Blake2_128"
	case HasherBlake2_256:
		return "Blake2_256"
	case HasherBlake2_128Concat:
		return "Blake2_128Concat"
	case HasherTwox128:
		return "Twox128"
	case HasherTwox256:
		return "Twox256"
	case HasherTwox64Concat:
		return "Twox64Concat"
	case HasherIdentity:
		return "Identity"
	default:
		return "Unknown"
	}
}

// Preserves reports whether h appends the plain SCALE-encoded key after its
// digest (Identity, Twox64Concat, Blake2_128Concat), as opposed to an
// opaque hasher whose digest alone is returned on decode (spec.md §4.6).
func (h Hasher) Preserves() bool {
	switch h {
	case HasherIdentity, HasherTwox64Concat, HasherBlake2_128Concat:
		return true
	default:
		return false
	}
}

// DigestLen returns the fixed byte length of h's digest, excluding any
// appended plain key.
func (h Hasher) DigestLen() int {
	switch h {
	case HasherIdentity:
		return 0
	case HasherTwox64Concat:
		return 8
	case HasherBlake2_128, HasherBlake2_128Concat, HasherTwox128:
		return 16
	case HasherBlake2_256, HasherTwox256:
		return 32
	default:
		return 0
	}
}

// readHasher decodes a one-byte StorageHasher discriminant.
func readHasher(cur *scale.Cursor) (Hasher, error) {
	b, err := cur.ReadByte()
	if err != nil {
		return 0, err
	}
	if b > uint8(HasherIdentity) {
		return 0, &BadHasherError{Index: b}
	}
	return Hasher(b), nil
}
