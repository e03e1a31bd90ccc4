package types

import "testing"

func TestHeightOrdering(t *testing.T) {
	a := NewHeight(10)
	b := NewHeight(20)
	if !a.LT(b) {
		t.Fatalf("expected 10 < 20")
	}
	if !b.GT(a) {
		t.Fatalf("expected 20 > 10")
	}
	if a.Max(b) != b {
		t.Fatalf("Max(10, 20) = %v, want 20", a.Max(b))
	}
}

func TestZeroHeightSentinel(t *testing.T) {
	if !ZeroHeight.IsZero() {
		t.Fatalf("ZeroHeight.IsZero() = false")
	}
	if NewHeight(0) != ZeroHeight {
		t.Fatalf("NewHeight(0) != ZeroHeight")
	}
}

func TestCryptoHashRoundTrip(t *testing.T) {
	var h CryptoHash
	for i := range h {
		h[i] = byte(i)
	}
	b := h.Bytes()
	got, ok := HashFromBytes(b)
	if !ok {
		t.Fatalf("HashFromBytes failed")
	}
	if got != h {
		t.Fatalf("round-tripped hash differs")
	}
}

func TestHashFromBytesWrongLength(t *testing.T) {
	_, ok := HashFromBytes([]byte{1, 2, 3})
	if ok {
		t.Fatalf("expected HashFromBytes to reject a short slice")
	}
}

func TestNewEd25519PublicKeyRejectsWrongLength(t *testing.T) {
	_, err := NewEd25519PublicKey([]byte{1, 2, 3})
	if err != ErrUnsupportedKeyType {
		t.Fatalf("err = %v, want ErrUnsupportedKeyType", err)
	}
}

func TestValidatorStakeEqual(t *testing.T) {
	pk, _ := NewEd25519PublicKey(make([]byte, Ed25519PublicKeyLen))
	a := NewValidatorStake("alice.near", pk, 100)
	b := NewValidatorStake("alice.near", pk, 100)
	c := NewValidatorStake("alice.near", pk, 200)

	if !a.Equal(b) {
		t.Fatalf("expected equal ValidatorStake values to compare equal")
	}
	if a.Equal(c) {
		t.Fatalf("expected differing stake to compare unequal")
	}
}
