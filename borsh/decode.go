package borsh

import "encoding/binary"

// Reader consumes a borsh-encoded byte stream left to right, tracking the
// first error encountered so call sites can chain reads without checking
// every return value.
type Reader struct {
	buf []byte
	pos int
	err error
}

// NewReader wraps b for sequential borsh decoding.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Err returns the first error encountered during reading, if any.
func (r *Reader) Err() error {
	return r.err
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Finish returns an error if the stream carries unread trailing bytes, or
// if a prior read already failed.
func (r *Reader) Finish() error {
	if r.err != nil {
		return r.err
	}
	if r.pos != len(r.buf) {
		return ErrTrailingBytes
	}
	return nil
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.pos+n > len(r.buf) {
		r.err = ErrUnexpectedEOF
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// ReadU32 reads a little-endian uint32.
func (r *Reader) ReadU32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// ReadU64 reads a little-endian uint64.
func (r *Reader) ReadU64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// ReadU128LE reads 16 little-endian bytes and returns them re-ordered as
// big-endian, suitable for uint256.Int.SetBytes.
func (r *Reader) ReadU128LE() []byte {
	b := r.take(16)
	if b == nil {
		return nil
	}
	be := make([]byte, 16)
	for i := 0; i < 16; i++ {
		be[i] = b[15-i]
	}
	return be
}

// ReadFixedBytes reads exactly n raw bytes with no length prefix.
func (r *Reader) ReadFixedBytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// ReadBytes reads a u32-length-prefixed byte vector.
func (r *Reader) ReadBytes() []byte {
	n := r.ReadU32()
	if r.err != nil {
		return nil
	}
	return r.ReadFixedBytes(int(n))
}

// ReadString reads a borsh string (length-prefixed UTF-8 bytes).
func (r *Reader) ReadString() string {
	b := r.ReadBytes()
	if b == nil {
		return ""
	}
	return string(b)
}

// ReadOptionPresent reads the one-byte Option tag and reports whether the
// payload is present.
func (r *Reader) ReadOptionPresent() bool {
	tag := r.ReadU8()
	if r.err != nil {
		return false
	}
	switch tag {
	case 0:
		return false
	case 1:
		return true
	default:
		r.err = ErrInvalidOptionTag
		return false
	}
}

// ReadBool reads a borsh bool.
func (r *Reader) ReadBool() bool {
	return r.ReadOptionPresent()
}
