package types

import "github.com/holiman/uint256"

// ValidatorStake identifies a NEAR block producer: its account, its Ed25519
// public key, and its stake weight. Stake is u128 on the wire; uint256.Int
// holds it comfortably and gives overflow-safe arithmetic for stake sums.
type ValidatorStake struct {
	AccountID string
	PublicKey PublicKey
	Stake     *uint256.Int
}

// NewValidatorStake builds a ValidatorStake from a stake value expressed as
// a uint64, the common case in tests and small fixtures.
func NewValidatorStake(accountID string, pk PublicKey, stake uint64) ValidatorStake {
	return ValidatorStake{
		AccountID: accountID,
		PublicKey: pk,
		Stake:     uint256.NewInt(stake),
	}
}

// Equal reports whether two ValidatorStake values are identical, including
// stake amount.
func (v ValidatorStake) Equal(other ValidatorStake) bool {
	if v.AccountID != other.AccountID {
		return false
	}
	if v.PublicKey != other.PublicKey {
		return false
	}
	if (v.Stake == nil) != (other.Stake == nil) {
		return false
	}
	if v.Stake == nil {
		return true
	}
	return v.Stake.Eq(other.Stake)
}
