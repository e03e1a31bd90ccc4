// Package light implements NEAR light-client header verification,
// misbehaviour detection, and the client-state machine (Active/Frozen/
// Expired) that drives them, built around NEAR's BFT-stake consensus and
// chunk-sharded state model.
package light

import (
	"time"

	"github.com/holiman/uint256"

	"github.com/octopus-network/ibc-near-light-client/borsh"
	"github.com/octopus-network/ibc-near-light-client/crypto"
	"github.com/octopus-network/ibc-near-light-client/types"
)

// LightClientBlockInnerLite is the compact per-height summary NEAR exports
// to light clients.
type LightClientBlockInnerLite struct {
	Height          uint64
	EpochID         types.CryptoHash
	NextEpochID     types.CryptoHash
	PrevStateRoot   types.CryptoHash
	OutcomeRoot     types.CryptoHash
	TimestampNanos  uint64
	NextBPHash      types.CryptoHash
	BlockMerkleRoot types.CryptoHash
}

// LightClientBlock is the wire structure NEAR hands a light client for one
// height: the inner-lite summary, the hashes needed to reconstruct the
// current and next block hash, the (occasional) next epoch's block
// producers, and the approval signatures collected two blocks ahead.
type LightClientBlock struct {
	PrevBlockHash       types.CryptoHash
	NextBlockInnerHash  types.CryptoHash
	InnerLite           LightClientBlockInnerLite
	InnerRestHash       types.CryptoHash
	NextBPs            []types.ValidatorStake // nil means Option::None
	ApprovalsAfterNext []*types.Signature     // nil entry means Option::None
}

// innerLiteHash hashes the borsh encoding of the inner-lite summary.
func (b *LightClientBlock) innerLiteHash() types.CryptoHash {
	return crypto.Sha256(EncodeInnerLite(&b.InnerLite))
}

// CurrentBlockHash reconstructs the hash of the block this LightClientBlock
// describes, NEAR's nested combine_hash over (inner_lite, inner_rest,
// prev_block_hash).
func (b *LightClientBlock) CurrentBlockHash() types.CryptoHash {
	innerHash := crypto.CombineHash(b.innerLiteHash(), b.InnerRestHash)
	return crypto.CombineHash(innerHash, b.PrevBlockHash)
}

// NextBlockHash reconstructs the hash of the block immediately after this
// one (its inner hash combined with this block's hash as its predecessor),
// the one the approval signatures in ApprovalsAfterNext actually endorse.
func (b *LightClientBlock) NextBlockHash() types.CryptoHash {
	return crypto.CombineHash(b.NextBlockInnerHash, b.CurrentBlockHash())
}

// approvalInnerEndorsement is the discriminant for ApprovalInner::Endorsement;
// NEAR's ApprovalInner enum also has a Skip(height) variant this client
// never needs to produce, since light-client approvals are always
// endorsements.
const approvalInnerEndorsement = 0

// ApprovalMessage computes the deterministic byte message NEAR block
// producers sign to approve this block: a borsh-encoded
// ApprovalInner::Endorsement(next_block_hash) followed by the little-endian
// target height (height + 2, the convention NEAR uses for "approvals after
// next").
func (b *LightClientBlock) ApprovalMessage() []byte {
	w := borsh.NewWriter()
	w.WriteU8(approvalInnerEndorsement)
	nextHash := b.NextBlockHash()
	w.WriteFixedBytes(nextHash[:])
	w.WriteU64(b.InnerLite.Height + 2)
	return w.Bytes()
}

// Header bundles a light-client block with the per-shard chunk state roots
// whose Merkle root it commits to.
type Header struct {
	LightClientBlock      LightClientBlock
	PrevStateRootOfChunks []types.CryptoHash
}

// Height returns the header's height as an IBC Height at revision 0.
func (h *Header) Height() types.Height {
	return types.NewHeight(h.LightClientBlock.InnerLite.Height)
}

// EpochID returns the header's epoch identifier.
func (h *Header) EpochID() types.CryptoHash {
	return h.LightClientBlock.InnerLite.EpochID
}

// NextEpochID returns the header's next-epoch identifier.
func (h *Header) NextEpochID() types.CryptoHash {
	return h.LightClientBlock.InnerLite.NextEpochID
}

// TimestampNanos returns the header's raw NEAR timestamp, nanoseconds since
// the Unix epoch.
func (h *Header) TimestampNanos() uint64 {
	return h.LightClientBlock.InnerLite.TimestampNanos
}

// Timestamp returns the header's timestamp as a time.Time.
func (h *Header) Timestamp() time.Time {
	return time.Unix(0, int64(h.TimestampNanos())).UTC()
}

// ConsensusState is the client's view of a validated NEAR header: the
// epoch's block producers (as of the previous consensus state), the header
// itself, and the commitment root queries are verified against.
type ConsensusState struct {
	CurrentBPs     []types.ValidatorStake // nil means Option::None
	Header         Header
	CommitmentRoot []byte
}

// NewConsensusState builds a ConsensusState, deriving CommitmentRoot as the
// canonical borsh encoding of the header's chunk state roots — clients
// verify membership/non-membership proofs against this list of per-shard
// roots, not against a single combined Merkle root.
func NewConsensusState(currentBPs []types.ValidatorStake, header Header) ConsensusState {
	return ConsensusState{
		CurrentBPs:     currentBPs,
		Header:         header,
		CommitmentRoot: EncodeCryptoHashVec(header.PrevStateRootOfChunks),
	}
}

// GetBlockProducersOf resolves the block producer set for epochID, relative
// to this consensus state's own epoch. Returns (nil, false) if epochID is
// neither the current epoch nor its declared next epoch.
func (cs *ConsensusState) GetBlockProducersOf(epochID types.CryptoHash) ([]types.ValidatorStake, bool) {
	switch epochID {
	case cs.Header.EpochID():
		return cs.CurrentBPs, true
	case cs.Header.NextEpochID():
		return cs.Header.LightClientBlock.NextBPs, true
	default:
		return nil, false
	}
}

// Status is the client-state machine's externally visible status.
type Status int

const (
	StatusActive Status = iota
	StatusFrozen
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusFrozen:
		return "Frozen"
	case StatusExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// ClientState is the client's own persisted configuration and progress
// marker. FrozenHeight uses the zero Height as NEAR's well-known "frozen,
// actual height irrelevant" sentinel (Design Note 3); IsFrozen distinguishes
// that sentinel from "never frozen" via the FrozenSet flag.
type ClientState struct {
	TrustingPeriod          time.Duration
	FrozenSet               bool
	FrozenHeight            types.Height
	LatestHeight            types.Height
	LatestTimestampNanos    uint64
	UpgradeCommitmentPrefix []byte
	UpgradeKey              []byte
}

// IsFrozen reports whether the client has been frozen due to misbehaviour.
func (c *ClientState) IsFrozen() bool {
	return c.FrozenSet
}

// ZeroCustomFields resets trusting period and frozen status to their zero
// values, used when a client state is substituted wholesale.
func (c *ClientState) ZeroCustomFields() {
	c.TrustingPeriod = 0
	c.FrozenSet = false
	c.FrozenHeight = types.Height{}
}

// Misbehaviour is evidence of two headers that cannot both have been
// produced by honest NEAR protocol execution.
type Misbehaviour struct {
	ClientID string
	Header1  Header
	Header2  Header
}

// stakeOrZero returns v.Stake, or a fresh zero if it is nil, so arithmetic
// never dereferences a nil pointer.
func stakeOrZero(v types.ValidatorStake) *uint256.Int {
	if v.Stake == nil {
		return uint256.NewInt(0)
	}
	return v.Stake
}
