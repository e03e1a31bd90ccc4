package light

import (
	"errors"
	"time"

	"github.com/holiman/uint256"

	"github.com/octopus-network/ibc-near-light-client/borsh"
	"github.com/octopus-network/ibc-near-light-client/types"
)

func timeDurationFromNanos(nanos uint64) time.Duration {
	return time.Duration(int64(nanos))
}

// ErrUnsupportedKeyType mirrors types.ErrUnsupportedKeyType for decode paths
// that read a PublicKey/Signature discriminant directly off a borsh.Reader.
var ErrUnsupportedKeyType = errors.New("light: unsupported key type discriminant in wire data")

// EncodeInnerLite returns the canonical borsh encoding of a
// LightClientBlockInnerLite, the bytes hashed to produce the inner-lite
// commitment used throughout block-hash reconstruction.
func EncodeInnerLite(il *LightClientBlockInnerLite) []byte {
	w := borsh.NewWriter()
	writeInnerLite(w, il)
	return w.Bytes()
}

func writeInnerLite(w *borsh.Writer, il *LightClientBlockInnerLite) {
	w.WriteU64(il.Height)
	w.WriteFixedBytes(il.EpochID[:])
	w.WriteFixedBytes(il.NextEpochID[:])
	w.WriteFixedBytes(il.PrevStateRoot[:])
	w.WriteFixedBytes(il.OutcomeRoot[:])
	w.WriteU64(il.TimestampNanos)
	w.WriteFixedBytes(il.NextBPHash[:])
	w.WriteFixedBytes(il.BlockMerkleRoot[:])
}

func readInnerLite(r *borsh.Reader) LightClientBlockInnerLite {
	var il LightClientBlockInnerLite
	il.Height = r.ReadU64()
	copy(il.EpochID[:], r.ReadFixedBytes(types.HashLength))
	copy(il.NextEpochID[:], r.ReadFixedBytes(types.HashLength))
	copy(il.PrevStateRoot[:], r.ReadFixedBytes(types.HashLength))
	copy(il.OutcomeRoot[:], r.ReadFixedBytes(types.HashLength))
	il.TimestampNanos = r.ReadU64()
	copy(il.NextBPHash[:], r.ReadFixedBytes(types.HashLength))
	copy(il.BlockMerkleRoot[:], r.ReadFixedBytes(types.HashLength))
	return il
}

func writePublicKey(w *borsh.Writer, pk types.PublicKey) {
	w.WriteU8(byte(pk.KeyType))
	w.WriteFixedBytes(pk.Data[:])
}

func readPublicKey(r *borsh.Reader) (types.PublicKey, error) {
	var pk types.PublicKey
	kt := types.KeyType(r.ReadU8())
	if r.Err() != nil {
		return pk, r.Err()
	}
	if kt != types.KeyTypeED25519 {
		return pk, ErrUnsupportedKeyType
	}
	pk.KeyType = kt
	copy(pk.Data[:], r.ReadFixedBytes(types.Ed25519PublicKeyLen))
	return pk, nil
}

func writeSignature(w *borsh.Writer, sig types.Signature) {
	w.WriteU8(byte(sig.KeyType))
	w.WriteFixedBytes(sig.Data[:])
}

func readSignature(r *borsh.Reader) (types.Signature, error) {
	var sig types.Signature
	kt := types.KeyType(r.ReadU8())
	if r.Err() != nil {
		return sig, r.Err()
	}
	if kt != types.KeyTypeED25519 {
		return sig, ErrUnsupportedKeyType
	}
	sig.KeyType = kt
	copy(sig.Data[:], r.ReadFixedBytes(types.Ed25519SignatureLen))
	return sig, nil
}

func writeValidatorStake(w *borsh.Writer, v types.ValidatorStake) {
	w.WriteString(v.AccountID)
	writePublicKey(w, v.PublicKey)
	stake := v.Stake
	if stake == nil {
		stake = uint256.NewInt(0)
	}
	w.WriteU128(stake.Bytes())
}

func readValidatorStake(r *borsh.Reader) (types.ValidatorStake, error) {
	var v types.ValidatorStake
	v.AccountID = r.ReadString()
	pk, err := readPublicKey(r)
	if err != nil {
		return v, err
	}
	v.PublicKey = pk
	be := r.ReadU128LE()
	if r.Err() != nil {
		return v, r.Err()
	}
	v.Stake = new(uint256.Int).SetBytes(be)
	return v, nil
}

func writeValidatorStakeVec(w *borsh.Writer, list []types.ValidatorStake) {
	w.WriteU32(uint32(len(list)))
	for _, v := range list {
		writeValidatorStake(w, v)
	}
}

func readValidatorStakeVec(r *borsh.Reader) ([]types.ValidatorStake, error) {
	n := r.ReadU32()
	if r.Err() != nil {
		return nil, r.Err()
	}
	out := make([]types.ValidatorStake, 0, n)
	for i := uint32(0); i < n; i++ {
		v, err := readValidatorStake(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// EncodeValidatorStakeVec returns the canonical borsh encoding of a
// Vec<ValidatorStake>, the bytes sha256-hashed to check against a header's
// next_bp_hash commitment.
func EncodeValidatorStakeVec(list []types.ValidatorStake) []byte {
	w := borsh.NewWriter()
	writeValidatorStakeVec(w, list)
	return w.Bytes()
}

// EncodeCryptoHashVec returns the canonical borsh encoding of a
// Vec<CryptoHash>. This is also the wire shape of a ConsensusState's
// CommitmentRoot: the list of per-shard chunk state roots.
func EncodeCryptoHashVec(hashes []types.CryptoHash) []byte {
	w := borsh.NewWriter()
	writeCryptoHashVec(w, hashes)
	return w.Bytes()
}

func writeCryptoHashVec(w *borsh.Writer, hashes []types.CryptoHash) {
	w.WriteU32(uint32(len(hashes)))
	for _, h := range hashes {
		w.WriteFixedBytes(h[:])
	}
}

func readCryptoHashVec(r *borsh.Reader) ([]types.CryptoHash, error) {
	n := r.ReadU32()
	if r.Err() != nil {
		return nil, r.Err()
	}
	out := make([]types.CryptoHash, 0, n)
	for i := uint32(0); i < n; i++ {
		var h types.CryptoHash
		copy(h[:], r.ReadFixedBytes(types.HashLength))
		if r.Err() != nil {
			return nil, r.Err()
		}
		out = append(out, h)
	}
	return out, nil
}

// DecodeCommitmentRoot parses a CommitmentRoot's bytes as the borsh-encoded
// Vec<CryptoHash> of chunk state roots it is defined to be.
func DecodeCommitmentRoot(b []byte) ([]types.CryptoHash, error) {
	r := borsh.NewReader(b)
	hashes, err := readCryptoHashVec(r)
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return hashes, nil
}

func writeLightClientBlock(w *borsh.Writer, b *LightClientBlock) {
	w.WriteFixedBytes(b.PrevBlockHash[:])
	w.WriteFixedBytes(b.NextBlockInnerHash[:])
	writeInnerLite(w, &b.InnerLite)
	w.WriteFixedBytes(b.InnerRestHash[:])

	w.WriteOptionPresent(b.NextBPs != nil)
	if b.NextBPs != nil {
		writeValidatorStakeVec(w, b.NextBPs)
	}

	w.WriteU32(uint32(len(b.ApprovalsAfterNext)))
	for _, sig := range b.ApprovalsAfterNext {
		w.WriteOptionPresent(sig != nil)
		if sig != nil {
			writeSignature(w, *sig)
		}
	}
}

func readLightClientBlock(r *borsh.Reader) (LightClientBlock, error) {
	var b LightClientBlock
	copy(b.PrevBlockHash[:], r.ReadFixedBytes(types.HashLength))
	copy(b.NextBlockInnerHash[:], r.ReadFixedBytes(types.HashLength))
	b.InnerLite = readInnerLite(r)
	copy(b.InnerRestHash[:], r.ReadFixedBytes(types.HashLength))
	if r.Err() != nil {
		return b, r.Err()
	}

	if r.ReadOptionPresent() {
		bps, err := readValidatorStakeVec(r)
		if err != nil {
			return b, err
		}
		b.NextBPs = bps
	}
	if r.Err() != nil {
		return b, r.Err()
	}

	n := r.ReadU32()
	if r.Err() != nil {
		return b, r.Err()
	}
	b.ApprovalsAfterNext = make([]*types.Signature, 0, n)
	for i := uint32(0); i < n; i++ {
		if r.ReadOptionPresent() {
			sig, err := readSignature(r)
			if err != nil {
				return b, err
			}
			b.ApprovalsAfterNext = append(b.ApprovalsAfterNext, &sig)
		} else {
			b.ApprovalsAfterNext = append(b.ApprovalsAfterNext, nil)
		}
		if r.Err() != nil {
			return b, r.Err()
		}
	}
	return b, nil
}

// EncodeHeader returns the canonical borsh encoding of a Header.
func EncodeHeader(h *Header) []byte {
	w := borsh.NewWriter()
	writeLightClientBlock(w, &h.LightClientBlock)
	writeCryptoHashVec(w, h.PrevStateRootOfChunks)
	return w.Bytes()
}

// DecodeHeader parses a borsh-encoded Header.
func DecodeHeader(b []byte) (Header, error) {
	var h Header
	r := borsh.NewReader(b)
	lcb, err := readLightClientBlock(r)
	if err != nil {
		return h, err
	}
	h.LightClientBlock = lcb
	chunks, err := readCryptoHashVec(r)
	if err != nil {
		return h, err
	}
	h.PrevStateRootOfChunks = chunks
	if err := r.Finish(); err != nil {
		return h, err
	}
	return h, nil
}

// EncodeConsensusState returns the canonical borsh encoding of a
// ConsensusState.
func EncodeConsensusState(cs *ConsensusState) []byte {
	w := borsh.NewWriter()
	w.WriteOptionPresent(cs.CurrentBPs != nil)
	if cs.CurrentBPs != nil {
		writeValidatorStakeVec(w, cs.CurrentBPs)
	}
	writeLightClientBlock(w, &cs.Header.LightClientBlock)
	writeCryptoHashVec(w, cs.Header.PrevStateRootOfChunks)
	w.WriteBytes(cs.CommitmentRoot)
	return w.Bytes()
}

// DecodeConsensusState parses a borsh-encoded ConsensusState.
func DecodeConsensusState(b []byte) (ConsensusState, error) {
	var cs ConsensusState
	r := borsh.NewReader(b)
	if r.ReadOptionPresent() {
		bps, err := readValidatorStakeVec(r)
		if err != nil {
			return cs, err
		}
		cs.CurrentBPs = bps
	}
	if r.Err() != nil {
		return cs, r.Err()
	}
	lcb, err := readLightClientBlock(r)
	if err != nil {
		return cs, err
	}
	chunks, err := readCryptoHashVec(r)
	if err != nil {
		return cs, err
	}
	cs.Header = Header{LightClientBlock: lcb, PrevStateRootOfChunks: chunks}
	cs.CommitmentRoot = r.ReadBytes()
	if err := r.Finish(); err != nil {
		return cs, err
	}
	return cs, nil
}

// EncodeClientState returns the canonical borsh encoding of a ClientState.
func EncodeClientState(cs *ClientState) []byte {
	w := borsh.NewWriter()
	w.WriteU64(uint64(cs.TrustingPeriod))
	w.WriteOptionPresent(cs.FrozenSet)
	if cs.FrozenSet {
		w.WriteU64(cs.FrozenHeight.RevisionNumber)
		w.WriteU64(cs.FrozenHeight.RevisionHeight)
	}
	w.WriteU64(cs.LatestHeight.RevisionNumber)
	w.WriteU64(cs.LatestHeight.RevisionHeight)
	w.WriteU64(cs.LatestTimestampNanos)
	w.WriteBytes(cs.UpgradeCommitmentPrefix)
	w.WriteBytes(cs.UpgradeKey)
	return w.Bytes()
}

// DecodeClientState parses a borsh-encoded ClientState.
func DecodeClientState(b []byte) (ClientState, error) {
	var cs ClientState
	r := borsh.NewReader(b)
	cs.TrustingPeriod = timeDurationFromNanos(r.ReadU64())
	if r.ReadOptionPresent() {
		cs.FrozenSet = true
		cs.FrozenHeight.RevisionNumber = r.ReadU64()
		cs.FrozenHeight.RevisionHeight = r.ReadU64()
	}
	cs.LatestHeight.RevisionNumber = r.ReadU64()
	cs.LatestHeight.RevisionHeight = r.ReadU64()
	cs.LatestTimestampNanos = r.ReadU64()
	cs.UpgradeCommitmentPrefix = r.ReadBytes()
	cs.UpgradeKey = r.ReadBytes()
	if err := r.Finish(); err != nil {
		return cs, err
	}
	return cs, nil
}

// EncodeMisbehaviour returns the canonical borsh encoding of a
// Misbehaviour.
func EncodeMisbehaviour(m *Misbehaviour) []byte {
	w := borsh.NewWriter()
	w.WriteString(m.ClientID)
	writeLightClientBlock(w, &m.Header1.LightClientBlock)
	writeCryptoHashVec(w, m.Header1.PrevStateRootOfChunks)
	writeLightClientBlock(w, &m.Header2.LightClientBlock)
	writeCryptoHashVec(w, m.Header2.PrevStateRootOfChunks)
	return w.Bytes()
}

// DecodeMisbehaviour parses a borsh-encoded Misbehaviour.
func DecodeMisbehaviour(b []byte) (Misbehaviour, error) {
	var m Misbehaviour
	r := borsh.NewReader(b)
	m.ClientID = r.ReadString()
	lcb1, err := readLightClientBlock(r)
	if err != nil {
		return m, err
	}
	chunks1, err := readCryptoHashVec(r)
	if err != nil {
		return m, err
	}
	m.Header1 = Header{LightClientBlock: lcb1, PrevStateRootOfChunks: chunks1}

	lcb2, err := readLightClientBlock(r)
	if err != nil {
		return m, err
	}
	chunks2, err := readCryptoHashVec(r)
	if err != nil {
		return m, err
	}
	m.Header2 = Header{LightClientBlock: lcb2, PrevStateRootOfChunks: chunks2}

	if err := r.Finish(); err != nil {
		return m, err
	}
	return m, nil
}
