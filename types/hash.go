// Package types defines the wire-level value types shared by the NEAR light
// client: opaque hashes, heights, and the tagged-enum key/signature types
// NEAR borsh-encodes as a one-byte discriminant followed by fixed payload.
package types

import (
	"encoding/hex"

	"github.com/mr-tron/base58"
)

// HashLength is the width of a CryptoHash in bytes (SHA-256 digest size).
const HashLength = 32

// CryptoHash is an opaque 32-byte digest. Equality is byte-equality.
type CryptoHash [HashLength]byte

// IsZero reports whether h is the all-zero hash.
func (h CryptoHash) IsZero() bool {
	return h == CryptoHash{}
}

// Bytes returns a copy of the hash as a byte slice.
func (h CryptoHash) Bytes() []byte {
	b := make([]byte, HashLength)
	copy(b, h[:])
	return b
}

// String renders the hash base58-encoded, matching NEAR's human-readable
// hash display.
func (h CryptoHash) String() string {
	return base58.Encode(h[:])
}

// Hex renders the hash as a 0x-prefixed hex string, useful in log lines
// next to base58 account/key material.
func (h CryptoHash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

// HashFromBytes copies b into a CryptoHash. b must be exactly HashLength
// bytes long.
func HashFromBytes(b []byte) (CryptoHash, bool) {
	var h CryptoHash
	if len(b) != HashLength {
		return h, false
	}
	copy(h[:], b)
	return h, true
}
