package borsh

import (
	"bytes"
	"testing"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteU8(7)
	w.WriteU32(1234)
	w.WriteU64(9876543210)
	w.WriteFixedBytes([]byte{1, 2, 3, 4})
	w.WriteBytes([]byte("hello"))
	w.WriteString("world")
	w.WriteOptionPresent(true)
	w.WriteU8(42)
	w.WriteOptionPresent(false)
	w.WriteBool(true)

	r := NewReader(w.Bytes())
	if got := r.ReadU8(); got != 7 {
		t.Fatalf("ReadU8 = %d, want 7", got)
	}
	if got := r.ReadU32(); got != 1234 {
		t.Fatalf("ReadU32 = %d, want 1234", got)
	}
	if got := r.ReadU64(); got != 9876543210 {
		t.Fatalf("ReadU64 = %d, want 9876543210", got)
	}
	if got := r.ReadFixedBytes(4); !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Fatalf("ReadFixedBytes = %v, want [1 2 3 4]", got)
	}
	if got := r.ReadBytes(); !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("ReadBytes = %q, want hello", got)
	}
	if got := r.ReadString(); got != "world" {
		t.Fatalf("ReadString = %q, want world", got)
	}
	if !r.ReadOptionPresent() {
		t.Fatalf("expected option present")
	}
	if got := r.ReadU8(); got != 42 {
		t.Fatalf("ReadU8 (option payload) = %d, want 42", got)
	}
	if r.ReadOptionPresent() {
		t.Fatalf("expected option absent")
	}
	if !r.ReadBool() {
		t.Fatalf("expected bool true")
	}
	if err := r.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
}

func TestU128RoundTrip(t *testing.T) {
	// Big-endian representation of 0x0102030405060708090a0b0c0d0e0f10.
	be := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
	w := NewWriter()
	w.WriteU128(be)

	r := NewReader(w.Bytes())
	got := r.ReadU128LE()
	if !bytes.Equal(got, be) {
		t.Fatalf("ReadU128LE = %x, want %x", got, be)
	}
}

func TestU128ShortInput(t *testing.T) {
	// Zero, encoded by uint256.Int.Bytes() as an empty slice, must still
	// round-trip through the fixed 16-byte wire width.
	w := NewWriter()
	w.WriteU128(nil)
	if len(w.Bytes()) != 16 {
		t.Fatalf("encoded length = %d, want 16", len(w.Bytes()))
	}
	r := NewReader(w.Bytes())
	got := r.ReadU128LE()
	for _, b := range got {
		if b != 0 {
			t.Fatalf("expected all-zero bytes, got %x", got)
		}
	}
}

func TestReaderUnexpectedEOF(t *testing.T) {
	r := NewReader([]byte{1, 2})
	r.ReadFixedBytes(5)
	if r.Err() != ErrUnexpectedEOF {
		t.Fatalf("Err() = %v, want ErrUnexpectedEOF", r.Err())
	}
}

func TestReaderTrailingBytes(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	r.ReadU8()
	if err := r.Finish(); err != ErrTrailingBytes {
		t.Fatalf("Finish() = %v, want ErrTrailingBytes", err)
	}
}

func TestReaderInvalidOptionTag(t *testing.T) {
	r := NewReader([]byte{5})
	r.ReadOptionPresent()
	if r.Err() != ErrInvalidOptionTag {
		t.Fatalf("Err() = %v, want ErrInvalidOptionTag", r.Err())
	}
}

func TestStickyErrorShortCircuits(t *testing.T) {
	r := NewReader([]byte{1, 2})
	r.ReadFixedBytes(10) // fails, sets r.err
	if got := r.ReadU64(); got != 0 {
		t.Fatalf("ReadU64 after error = %d, want 0", got)
	}
	if got := r.ReadString(); got != "" {
		t.Fatalf("ReadString after error = %q, want empty", got)
	}
}
