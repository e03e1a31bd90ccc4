package crypto

import (
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/octopus-network/ibc-near-light-client/types"
)

func TestSha256Deterministic(t *testing.T) {
	a := Sha256([]byte("near"))
	b := Sha256([]byte("near"))
	if a != b {
		t.Fatalf("Sha256 not deterministic: %x != %x", a, b)
	}
	c := Sha256([]byte("near "))
	if a == c {
		t.Fatalf("Sha256 collided on different input")
	}
}

func TestSha256MultiArgMatchesConcatenation(t *testing.T) {
	multi := Sha256([]byte("foo"), []byte("bar"))
	single := Sha256([]byte("foobar"))
	if multi != single {
		t.Fatalf("Sha256(a, b) != Sha256(a+b): %x != %x", multi, single)
	}
}

func TestCombineHash(t *testing.T) {
	h1 := Sha256([]byte("left"))
	h2 := Sha256([]byte("right"))
	combined := CombineHash(h1, h2)
	want := Sha256(h1[:], h2[:])
	if combined != want {
		t.Fatalf("CombineHash = %x, want %x", combined, want)
	}
}

func TestMerklizeSingleLeaf(t *testing.T) {
	leaf := Sha256([]byte("solo"))
	root, err := Merklize([]types.CryptoHash{leaf})
	if err != nil {
		t.Fatalf("Merklize: %v", err)
	}
	if root != leaf {
		t.Fatalf("single-leaf root = %x, want leaf itself %x", root, leaf)
	}
}

func TestMerklizeEvenPairs(t *testing.T) {
	l0 := Sha256([]byte("a"))
	l1 := Sha256([]byte("b"))
	l2 := Sha256([]byte("c"))
	l3 := Sha256([]byte("d"))

	root, err := Merklize([]types.CryptoHash{l0, l1, l2, l3})
	if err != nil {
		t.Fatalf("Merklize: %v", err)
	}
	want := CombineHash(CombineHash(l0, l1), CombineHash(l2, l3))
	if root != want {
		t.Fatalf("root = %x, want %x", root, want)
	}
}

func TestMerklizeOddPromotion(t *testing.T) {
	l0 := Sha256([]byte("a"))
	l1 := Sha256([]byte("b"))
	l2 := Sha256([]byte("c"))

	root, err := Merklize([]types.CryptoHash{l0, l1, l2})
	if err != nil {
		t.Fatalf("Merklize: %v", err)
	}
	want := CombineHash(CombineHash(l0, l1), l2)
	if root != want {
		t.Fatalf("root = %x, want %x", root, want)
	}
}

func TestMerklizeEmptyInput(t *testing.T) {
	_, err := Merklize(nil)
	if err != ErrEmptyMerkleInput {
		t.Fatalf("err = %v, want ErrEmptyMerkleInput", err)
	}
}

func TestVerifyEd25519(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	pk, err := types.NewEd25519PublicKey(pub)
	if err != nil {
		t.Fatalf("NewEd25519PublicKey: %v", err)
	}
	message := []byte("approve block 42")
	raw := ed25519.Sign(priv, message)
	sig, err := types.NewEd25519Signature(raw)
	if err != nil {
		t.Fatalf("NewEd25519Signature: %v", err)
	}

	if !VerifyEd25519(pk, message, sig) {
		t.Fatalf("expected valid signature to verify")
	}
	if VerifyEd25519(pk, []byte("tampered"), sig) {
		t.Fatalf("expected verification to fail on tampered message")
	}
}

func TestVerifyEd25519RejectsUnsupportedKeyType(t *testing.T) {
	pub, priv, _ := ed25519.GenerateKey(nil)
	pk, _ := types.NewEd25519PublicKey(pub)
	pk.KeyType = 1 // not ED25519
	sig, _ := types.NewEd25519Signature(ed25519.Sign(priv, []byte("msg")))

	if VerifyEd25519(pk, []byte("msg"), sig) {
		t.Fatalf("expected verification to fail for unsupported key type")
	}
}
