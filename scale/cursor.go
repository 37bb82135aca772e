// Package scale implements the SCALE primitive codec: compact integers,
// fixed-width integers, booleans, length-prefixed byte sequences and
// strings, and the Option/Result discriminant convention used throughout
// Substrate-family wire formats.
package scale

import (
	"math/big"
)

// Cursor is a forward-only reader over a byte slice that tracks how many
// bytes have been consumed. It never panics on short input; every read
// method returns an error instead.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a Cursor over b. b is not copied; callers must not
// mutate it while the cursor is in use.
func NewCursor(b []byte) *Cursor {
	return &Cursor{buf: b}
}

// Pos returns the number of bytes consumed so far.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Rest returns the unread tail of the underlying buffer without consuming
// it.
func (c *Cursor) Rest() []byte { return c.buf[c.pos:] }

// require checks that n more bytes are available, returning a
// *TruncatedError otherwise.
func (c *Cursor) require(n int) error {
	if c.Remaining() < n {
		return &TruncatedError{Expected: n, Got: c.Remaining()}
	}
	return nil
}

// ReadByte reads a single byte.
func (c *Cursor) ReadByte() (byte, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// ReadBytes reads and returns a copy of the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, &BadCompactError{Reason: "negative length"}
	}
	if err := c.require(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.buf[c.pos:c.pos+n])
	c.pos += n
	return out, nil
}

// ReadBool decodes a one-byte boolean: 0x00 = false, 0x01 = true.
func (c *Cursor) ReadBool() (bool, error) {
	b, err := c.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, &BadBooleanError{Got: b}
	}
}

func (c *Cursor) readUintLE(n int) (uint64, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// ReadU8, ReadU16, ReadU32, ReadU64 decode little-endian unsigned fixed
// width integers.
func (c *Cursor) ReadU8() (uint8, error) {
	v, err := c.readUintLE(1)
	return uint8(v), err
}

func (c *Cursor) ReadU16() (uint16, error) {
	v, err := c.readUintLE(2)
	return uint16(v), err
}

func (c *Cursor) ReadU32() (uint32, error) {
	v, err := c.readUintLE(4)
	return uint32(v), err
}

func (c *Cursor) ReadU64() (uint64, error) {
	return c.readUintLE(8)
}

// ReadUintN decodes an n-byte little-endian unsigned integer of arbitrary
// width (used for u128/u256) as a *big.Int.
func (c *Cursor) ReadUintN(n int) (*big.Int, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(reverseBytes(b)), nil
}

// ReadIntN decodes an n-byte little-endian two's-complement signed integer
// of arbitrary width as a *big.Int.
func (c *Cursor) ReadIntN(n int) (*big.Int, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	be := reverseBytes(b)
	v := new(big.Int).SetBytes(be)
	if n > 0 && be[0]&0x80 != 0 {
		// negative: v - 2^(8n)
		mod := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
		v.Sub(v, mod)
	}
	return v, nil
}

// ReadI8, ReadI16, ReadI32, ReadI64 decode little-endian two's-complement
// signed fixed width integers as native Go types.
func (c *Cursor) ReadI8() (int8, error) {
	v, err := c.ReadU8()
	return int8(v), err
}

func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

func (c *Cursor) ReadI64() (int64, error) {
	v, err := c.ReadU64()
	return int64(v), err
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
