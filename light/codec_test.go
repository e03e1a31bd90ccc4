package light

import (
	"bytes"
	"testing"
	"time"

	"github.com/octopus-network/ibc-near-light-client/crypto"
	"github.com/octopus-network/ibc-near-light-client/types"
)

func clientStateEqual(a, b ClientState) bool {
	return a.TrustingPeriod == b.TrustingPeriod &&
		a.FrozenSet == b.FrozenSet &&
		a.FrozenHeight == b.FrozenHeight &&
		a.LatestHeight == b.LatestHeight &&
		a.LatestTimestampNanos == b.LatestTimestampNanos &&
		bytes.Equal(a.UpgradeCommitmentPrefix, b.UpgradeCommitmentPrefix) &&
		bytes.Equal(a.UpgradeKey, b.UpgradeKey)
}

func sampleHeader() Header {
	chunkRoots := []types.CryptoHash{
		crypto.Sha256([]byte("shard-0")),
		crypto.Sha256([]byte("shard-1")),
	}
	root, _ := crypto.Merklize(chunkRoots)
	pk, _ := types.NewEd25519PublicKey(make([]byte, types.Ed25519PublicKeyLen))
	sig, _ := types.NewEd25519Signature(make([]byte, types.Ed25519SignatureLen))

	lcb := LightClientBlock{
		PrevBlockHash:      crypto.Sha256([]byte("prev")),
		NextBlockInnerHash: crypto.Sha256([]byte("next-inner")),
		InnerLite: LightClientBlockInnerLite{
			Height:          42,
			EpochID:         crypto.Sha256([]byte("epoch")),
			NextEpochID:     crypto.Sha256([]byte("next-epoch")),
			PrevStateRoot:   root,
			OutcomeRoot:     crypto.Sha256([]byte("outcome")),
			TimestampNanos:  1234567890,
			NextBPHash:      crypto.Sha256([]byte("bp-hash")),
			BlockMerkleRoot: crypto.Sha256([]byte("merkle")),
		},
		InnerRestHash:      crypto.Sha256([]byte("rest")),
		NextBPs:            []types.ValidatorStake{types.NewValidatorStake("bob.near", pk, 500)},
		ApprovalsAfterNext: []*types.Signature{&sig, nil},
	}
	return Header{LightClientBlock: lcb, PrevStateRootOfChunks: chunkRoots}
}

func TestHeaderEncodeDecodeRoundTrip(t *testing.T) {
	h := sampleHeader()
	encoded := EncodeHeader(&h)
	decoded, err := DecodeHeader(encoded)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if decoded.LightClientBlock.CurrentBlockHash() != h.LightClientBlock.CurrentBlockHash() {
		t.Fatalf("round-tripped header hashes differently")
	}
	if len(decoded.LightClientBlock.NextBPs) != 1 {
		t.Fatalf("NextBPs length = %d, want 1", len(decoded.LightClientBlock.NextBPs))
	}
	if len(decoded.LightClientBlock.ApprovalsAfterNext) != 2 || decoded.LightClientBlock.ApprovalsAfterNext[1] != nil {
		t.Fatalf("approvals did not round-trip the nil entry correctly")
	}
}

func TestConsensusStateEncodeDecodeRoundTrip(t *testing.T) {
	h := sampleHeader()
	pk, _ := types.NewEd25519PublicKey(make([]byte, types.Ed25519PublicKeyLen))
	cs := NewConsensusState([]types.ValidatorStake{types.NewValidatorStake("alice.near", pk, 1000)}, h)

	encoded := EncodeConsensusState(&cs)
	decoded, err := DecodeConsensusState(encoded)
	if err != nil {
		t.Fatalf("DecodeConsensusState: %v", err)
	}
	if len(decoded.CurrentBPs) != 1 || decoded.CurrentBPs[0].AccountID != "alice.near" {
		t.Fatalf("CurrentBPs did not round-trip: %+v", decoded.CurrentBPs)
	}
	if string(decoded.CommitmentRoot) != string(cs.CommitmentRoot) {
		t.Fatalf("CommitmentRoot did not round-trip")
	}
}

func TestClientStateEncodeDecodeRoundTrip(t *testing.T) {
	cs := ClientState{
		TrustingPeriod:          36 * time.Hour,
		FrozenSet:               true,
		FrozenHeight:            types.ZeroHeight,
		LatestHeight:            types.NewHeight(99),
		LatestTimestampNanos:    555,
		UpgradeCommitmentPrefix: []byte("ibc"),
		UpgradeKey:              []byte("upgraded-client-state"),
	}
	encoded := EncodeClientState(&cs)
	decoded, err := DecodeClientState(encoded)
	if err != nil {
		t.Fatalf("DecodeClientState: %v", err)
	}
	if !clientStateEqual(decoded, cs) {
		t.Fatalf("decoded = %+v, want %+v", decoded, cs)
	}
}

func TestClientStateEncodeDecodeNotFrozen(t *testing.T) {
	cs := ClientState{
		TrustingPeriod: time.Hour,
		LatestHeight:   types.NewHeight(5),
	}
	encoded := EncodeClientState(&cs)
	decoded, err := DecodeClientState(encoded)
	if err != nil {
		t.Fatalf("DecodeClientState: %v", err)
	}
	if decoded.FrozenSet {
		t.Fatalf("expected FrozenSet = false")
	}
	if !clientStateEqual(decoded, cs) {
		t.Fatalf("decoded = %+v, want %+v", decoded, cs)
	}
}

func TestMisbehaviourEncodeDecodeRoundTrip(t *testing.T) {
	m := Misbehaviour{
		ClientID: "07-near-0",
		Header1:  sampleHeader(),
		Header2:  sampleHeader(),
	}
	encoded := EncodeMisbehaviour(&m)
	decoded, err := DecodeMisbehaviour(encoded)
	if err != nil {
		t.Fatalf("DecodeMisbehaviour: %v", err)
	}
	if decoded.ClientID != m.ClientID {
		t.Fatalf("ClientID = %q, want %q", decoded.ClientID, m.ClientID)
	}
	if decoded.Header1.LightClientBlock.CurrentBlockHash() != m.Header1.LightClientBlock.CurrentBlockHash() {
		t.Fatalf("Header1 did not round-trip")
	}
}

func TestDecodeMessageDispatch(t *testing.T) {
	h := sampleHeader()
	encoded := EncodeHeader(&h)

	decoded, err := DecodeMessage(TypeURLHeader, encoded)
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	gotHeader, ok := decoded.(*Header)
	if !ok {
		t.Fatalf("decoded type = %T, want *Header", decoded)
	}
	if gotHeader.LightClientBlock.CurrentBlockHash() != h.LightClientBlock.CurrentBlockHash() {
		t.Fatalf("dispatched header does not match source")
	}

	if _, err := DecodeMessage("/unknown.type", nil); err == nil {
		t.Fatalf("expected an error for an unrecognized type URL")
	}
}
