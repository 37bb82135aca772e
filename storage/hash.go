package storage

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/synnergy-network/substrate-codec/metadata"
)

const (
	xxh64Prime1 = 0x9E3779B185EBCA87
	xxh64Prime2 = 0xC2B2AE3D27D4EB4F
	xxh64Prime3 = 0x165667B19E3779F9
	xxh64Prime4 = 0x85EBCA77C2B2AE63
	xxh64Prime5 = 0x27D4EB2F165667C5
)

func rotl64(x uint64, r uint) uint64 {
	return x<<r | x>>(64-r)
}

func xxh64Round(acc, input uint64) uint64 {
	acc += input * xxh64Prime2
	acc = rotl64(acc, 31)
	return acc * xxh64Prime1
}

func xxh64MergeRound(acc, val uint64) uint64 {
	val = xxh64Round(0, val)
	acc ^= val
	return acc*xxh64Prime1 + xxh64Prime4
}

// xxh64 computes XXH64 of data with an arbitrary seed. cespare/xxhash/v2
// (this module's xxhash dependency) only exposes the seed-0 variant through
// Sum64; Substrate's Twox128/Twox256 hashers chain successive seeds
// (0, 1, 2, ...) over the same input, so non-zero seeds are computed
// directly from the published XXH64 algorithm, reusing the library itself
// for the seed-0 case every hasher needs at least once.
func xxh64(seed uint64, data []byte) uint64 {
	if seed == 0 {
		return xxhash.Sum64(data)
	}

	n := len(data)
	var h64 uint64
	if n >= 32 {
		v1 := seed + xxh64Prime1 + xxh64Prime2
		v2 := seed + xxh64Prime2
		v3 := seed
		v4 := seed - xxh64Prime1
		for len(data) >= 32 {
			v1 = xxh64Round(v1, binary.LittleEndian.Uint64(data[0:8]))
			v2 = xxh64Round(v2, binary.LittleEndian.Uint64(data[8:16]))
			v3 = xxh64Round(v3, binary.LittleEndian.Uint64(data[16:24]))
			v4 = xxh64Round(v4, binary.LittleEndian.Uint64(data[24:32]))
			data = data[32:]
		}
		h64 = rotl64(v1, 1) + rotl64(v2, 7) + rotl64(v3, 12) + rotl64(v4, 18)
		h64 = xxh64MergeRound(h64, v1)
		h64 = xxh64MergeRound(h64, v2)
		h64 = xxh64MergeRound(h64, v3)
		h64 = xxh64MergeRound(h64, v4)
	} else {
		h64 = seed + xxh64Prime5
	}

	h64 += uint64(n)
	for len(data) >= 8 {
		k1 := xxh64Round(0, binary.LittleEndian.Uint64(data[0:8]))
		h64 ^= k1
		h64 = rotl64(h64, 27)*xxh64Prime1 + xxh64Prime4
		data = data[8:]
	}
	if len(data) >= 4 {
		h64 ^= uint64(binary.LittleEndian.Uint32(data[0:4])) * xxh64Prime1
		h64 = rotl64(h64, 23)*xxh64Prime2 + xxh64Prime3
		data = data[4:]
	}
	for len(data) > 0 {
		h64 ^= uint64(data[0]) * xxh64Prime5
		h64 = rotl64(h64, 11) * xxh64Prime1
		data = data[1:]
	}

	h64 ^= h64 >> 33
	h64 *= xxh64Prime2
	h64 ^= h64 >> 29
	h64 *= xxh64Prime3
	h64 ^= h64 >> 32
	return h64
}

func appendU64LE(out []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(out, buf[:]...)
}

// Twox64 computes the 8-byte Twox64 digest (a single XXH64 pass, seed 0).
func Twox64(data []byte) []byte {
	return appendU64LE(nil, xxh64(0, data))
}

// Twox128 computes the 16-byte Twox128 digest: two XXH64 passes with seeds
// 0 and 1, concatenated.
func Twox128(data []byte) []byte {
	out := appendU64LE(nil, xxh64(0, data))
	return appendU64LE(out, xxh64(1, data))
}

// Twox256 computes the 32-byte Twox256 digest: four XXH64 passes with seeds
// 0 through 3, concatenated.
func Twox256(data []byte) []byte {
	out := appendU64LE(nil, xxh64(0, data))
	out = appendU64LE(out, xxh64(1, data))
	out = appendU64LE(out, xxh64(2, data))
	return appendU64LE(out, xxh64(3, data))
}

// Blake2_128 computes the 16-byte BLAKE2b digest.
func Blake2_128(data []byte) []byte {
	h, err := blake2b.New(16, nil)
	if err != nil {
		panic(err) // only fails for an invalid size/key, both fixed here
	}
	h.Write(data)
	return h.Sum(nil)
}

// Blake2_256 computes the 32-byte BLAKE2b digest.
func Blake2_256(data []byte) []byte {
	sum := blake2b.Sum256(data)
	return sum[:]
}

// Digest returns h's digest of data, with no plain-key suffix appended even
// for preserving hashers (spec.md §4.6); callers append the plain
// SCALE-encoded key themselves when h.Preserves().
func Digest(h metadata.Hasher, data []byte) []byte {
	switch h {
	case metadata.HasherIdentity:
		return nil
	case metadata.HasherTwox64Concat:
		return Twox64(data)
	case metadata.HasherTwox128:
		return Twox128(data)
	case metadata.HasherTwox256:
		return Twox256(data)
	case metadata.HasherBlake2_128Concat, metadata.HasherBlake2_128:
		return Blake2_128(data)
	case metadata.HasherBlake2_256:
		return Blake2_256(data)
	default:
		return nil
	}
}
