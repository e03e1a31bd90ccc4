// Package borsh implements the subset of NEAR's borsh binary encoding this
// light client needs: little-endian fixed-width integers, length-prefixed
// byte vectors, a one-byte Option tag, and one-byte enum discriminants
// followed by variant payload. Round-trip is exact: Decode(Encode(x)) == x
// for every type this package knows how to encode, and Encode is
// deterministic for equal values.
//
// Encoding for concrete message types is written by hand per type in
// light/codec.go rather than derived via reflection — the wire layouts are
// small and fixed, and exactness matters more than genericity.
package borsh

import "encoding/binary"

// Writer accumulates a borsh-encoded byte stream.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated encoding.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteU8 writes a single byte.
func (w *Writer) WriteU8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteU32 writes a little-endian uint32.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteU64 writes a little-endian uint64.
func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteU128 writes a little-endian 16-byte unsigned integer from the given
// big-endian byte representation (as produced by uint256.Int.Bytes()),
// zero-padding up to 16 bytes and then reversing to little-endian order.
func (w *Writer) WriteU128(beBytes []byte) {
	var le [16]byte
	n := len(beBytes)
	for i := 0; i < n && i < 16; i++ {
		le[i] = beBytes[n-1-i]
	}
	w.buf = append(w.buf, le[:]...)
}

// WriteFixedBytes appends raw bytes with no length prefix, for fixed-width
// fields such as a CryptoHash or Ed25519 key/signature.
func (w *Writer) WriteFixedBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteBytes writes a u32 length prefix followed by the bytes, borsh's
// encoding for Vec<u8> and String.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteU32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

// WriteString writes a borsh string (a length-prefixed UTF-8 byte vector).
func (w *Writer) WriteString(s string) {
	w.WriteBytes([]byte(s))
}

// WriteOptionPresent writes the one-byte Option tag. Callers write the
// payload themselves when present is true.
func (w *Writer) WriteOptionPresent(present bool) {
	if present {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
}

// WriteBool writes a borsh bool (one byte, 0 or 1).
func (w *Writer) WriteBool(v bool) {
	w.WriteOptionPresent(v)
}
