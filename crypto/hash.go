// Package crypto implements the cryptographic primitives the light client
// needs: SHA-256 hashing, hash combination, NEAR's in-place pairing Merkle
// reduction, and Ed25519 signature verification.
package crypto

import (
	"crypto/sha256"
	"errors"

	"github.com/octopus-network/ibc-near-light-client/types"
)

// ErrEmptyMerkleInput is returned by Merklize when given no leaves; NEAR
// treats this as an error rather than a defined empty-tree hash.
var ErrEmptyMerkleInput = errors.New("crypto: merklize requires at least one leaf")

// Sha256 hashes data and returns the digest as a CryptoHash.
func Sha256(data ...[]byte) types.CryptoHash {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	var out types.CryptoHash
	h.Sum(out[:0])
	return out
}

// CombineHash computes sha256(h1 || h2), NEAR's building block for
// Merkle-izing and for block-hash reconstruction.
func CombineHash(h1, h2 types.CryptoHash) types.CryptoHash {
	return Sha256(h1[:], h2[:])
}

// Merklize reduces leaves to a single root using NEAR's in-place pairing
// algorithm: at each level, adjacent pairs are combined with CombineHash; an
// odd element at the end of a level is promoted unchanged to the next
// level instead of being paired with itself.
func Merklize(leaves []types.CryptoHash) (types.CryptoHash, error) {
	if len(leaves) == 0 {
		return types.CryptoHash{}, ErrEmptyMerkleInput
	}
	level := make([]types.CryptoHash, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		next := make([]types.CryptoHash, 0, (len(level)+1)/2)
		i := 0
		for ; i+1 < len(level); i += 2 {
			next = append(next, CombineHash(level[i], level[i+1]))
		}
		if i < len(level) {
			next = append(next, level[i])
		}
		level = next
	}
	return level[0], nil
}
