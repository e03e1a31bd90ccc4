package crypto

import (
	"golang.org/x/crypto/ed25519"

	"github.com/octopus-network/ibc-near-light-client/types"
)

// VerifyEd25519 verifies an Ed25519 signature over message under pubkey. It
// returns false rather than an error for any malformed input — a
// non-ED25519 key type, wrong-length material, or a failed cryptographic
// check are all treated identically as "not a valid signature".
func VerifyEd25519(pubkey types.PublicKey, message []byte, sig types.Signature) bool {
	if pubkey.KeyType != types.KeyTypeED25519 || sig.KeyType != types.KeyTypeED25519 {
		return false
	}
	return ed25519.Verify(pubkey.Data[:], message, sig.Data[:])
}
