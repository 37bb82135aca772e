package scale

import (
	"math/big"
	"testing"
)

func TestReadFixedIntegersLittleEndian(t *testing.T) {
	cur := NewCursor([]byte{0x2a, 0x00, 0x01})
	v, err := cur.ReadU8()
	if err != nil || v != 0x2a {
		t.Fatalf("ReadU8: %v %v", v, err)
	}

	cur = NewCursor([]byte{0xff, 0x01})
	u16, err := cur.ReadU16()
	if err != nil || u16 != 0x01ff {
		t.Fatalf("ReadU16: %v %v", u16, err)
	}

	cur = NewCursor([]byte{0x01, 0x00, 0x00, 0x00})
	u32, err := cur.ReadU32()
	if err != nil || u32 != 1 {
		t.Fatalf("ReadU32: %v %v", u32, err)
	}

	cur = NewCursor([]byte{0, 0, 0, 0, 0, 0, 0, 1})
	u64, err := cur.ReadU64()
	if err != nil || u64 != 1<<56 {
		t.Fatalf("ReadU64: %v %v", u64, err)
	}
}

func TestReadSignedFixedIntegers(t *testing.T) {
	cur := NewCursor([]byte{0xff})
	i8, err := cur.ReadI8()
	if err != nil || i8 != -1 {
		t.Fatalf("ReadI8: %v %v", i8, err)
	}

	cur = NewCursor([]byte{0xff, 0xff, 0xff, 0xff})
	i32, err := cur.ReadI32()
	if err != nil || i32 != -1 {
		t.Fatalf("ReadI32: %v %v", i32, err)
	}
}

func TestReadU128SignedAndUnsigned(t *testing.T) {
	// 16 bytes LE, 0x2a in the low byte and zero elsewhere -> value 42.
	b := make([]byte, 16)
	b[0] = 0x2a
	cur := NewCursor(b)
	got, err := cur.ReadUintN(16)
	if err != nil {
		t.Fatal(err)
	}
	if got.Cmp(big.NewInt(0x2a)) != 0 {
		t.Fatalf("want 42 got %s", got.String())
	}

	// -1 as a 16-byte two's complement value is all 0xff bytes.
	allFF := make([]byte, 16)
	for i := range allFF {
		allFF[i] = 0xff
	}
	cur = NewCursor(allFF)
	got, err = cur.ReadIntN(16)
	if err != nil {
		t.Fatal(err)
	}
	if got.Cmp(big.NewInt(-1)) != 0 {
		t.Fatalf("want -1 got %s", got.String())
	}
}

func TestReadBoolRejectsOtherBytes(t *testing.T) {
	cur := NewCursor([]byte{0x02})
	if _, err := cur.ReadBool(); err == nil {
		t.Fatal("expected BadBooleanError")
	}
}

func TestReadOptionAndResult(t *testing.T) {
	cur := NewCursor([]byte{0x00})
	some, err := cur.ReadOption()
	if err != nil || some {
		t.Fatalf("want None: %v %v", some, err)
	}

	cur = NewCursor([]byte{0x01})
	some, err = cur.ReadOption()
	if err != nil || !some {
		t.Fatalf("want Some: %v %v", some, err)
	}

	cur = NewCursor([]byte{0x02})
	if _, err := cur.ReadOption(); err == nil {
		t.Fatal("expected BadOptionError")
	}

	cur = NewCursor([]byte{0x00})
	ok, err := cur.ReadResult()
	if err != nil || !ok {
		t.Fatalf("want Ok: %v %v", ok, err)
	}

	cur = NewCursor([]byte{0x01})
	ok, err = cur.ReadResult()
	if err != nil || ok {
		t.Fatalf("want Err: %v %v", ok, err)
	}
}

func TestReadStringRejectsInvalidUTF8(t *testing.T) {
	// compact length 1, then an invalid UTF-8 byte.
	cur := NewCursor([]byte{0x04, 0xff})
	if _, err := cur.ReadString(); err == nil {
		t.Fatal("expected Utf8Error")
	}
}

func TestTruncatedRequire(t *testing.T) {
	cur := NewCursor([]byte{})
	if _, err := cur.ReadByte(); err == nil {
		t.Fatal("expected TruncatedError")
	}
}
