package types

import "errors"

// KeyType is the one-byte discriminant NEAR borsh-encodes ahead of key and
// signature payloads. NEAR defines ED25519 and SECP256K1, but only ED25519
// is used by block producer signatures, so it is the only variant this
// client decodes.
type KeyType byte

const (
	// KeyTypeED25519 is the discriminant for Ed25519 keys/signatures.
	KeyTypeED25519 KeyType = 0
)

// ErrUnsupportedKeyType is returned by NewEd25519PublicKey and
// NewEd25519Signature when the raw material is not the Ed25519 width.
var ErrUnsupportedKeyType = errors.New("types: unsupported key type discriminant")

// Ed25519PublicKeyLen is the width of a raw Ed25519 public key.
const Ed25519PublicKeyLen = 32

// Ed25519SignatureLen is the width of a raw Ed25519 signature.
const Ed25519SignatureLen = 64

// PublicKey is NEAR's tagged-enum public key: a one-byte KeyType
// discriminant followed by the fixed-width key material for that type.
type PublicKey struct {
	KeyType KeyType
	Data    [Ed25519PublicKeyLen]byte
}

// NewEd25519PublicKey builds a PublicKey from raw Ed25519 key bytes.
func NewEd25519PublicKey(raw []byte) (PublicKey, error) {
	var pk PublicKey
	if len(raw) != Ed25519PublicKeyLen {
		return pk, ErrUnsupportedKeyType
	}
	pk.KeyType = KeyTypeED25519
	copy(pk.Data[:], raw)
	return pk, nil
}

// Signature is NEAR's tagged-enum signature: a one-byte KeyType
// discriminant followed by the fixed-width signature material.
//
// The original Rust implementation left borsh-deserialization of this type
// as `todo!()` in one source copy; this decodes the discriminant and
// fixed-width payload explicitly.
type Signature struct {
	KeyType KeyType
	Data    [Ed25519SignatureLen]byte
}

// NewEd25519Signature builds a Signature from raw Ed25519 signature bytes.
func NewEd25519Signature(raw []byte) (Signature, error) {
	var sig Signature
	if len(raw) != Ed25519SignatureLen {
		return sig, ErrUnsupportedKeyType
	}
	sig.KeyType = KeyTypeED25519
	copy(sig.Data[:], raw)
	return sig, nil
}
