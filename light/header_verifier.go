package light

import (
	"errors"

	"github.com/holiman/uint256"

	"github.com/octopus-network/ibc-near-light-client/crypto"
)

// Header-semantic sentinels for the conjunctive checks VerifyHeader runs.
// Each is wrapped in a *Error of KindHeaderSemantic by VerifyHeader so
// callers get both a machine-readable kind and a specific cause.
var (
	ErrHeaderNotNewer         = errors.New("light: header height does not exceed the current latest height")
	ErrInvalidEpoch           = errors.New("light: header epoch_id is neither the current nor the next epoch")
	ErrMissingNextBPs         = errors.New("light: epoch rotation header is missing next block producers")
	ErrMissingEpochProducers  = errors.New("light: no known block producer set for header's epoch")
	ErrInvalidApprovalSig     = errors.New("light: invalid block producer signature over approval message")
	ErrInsufficientStake      = errors.New("light: approved stake does not exceed 2/3 of total stake")
	ErrInvalidNextBPHash      = errors.New("light: next block producers hash does not match next_bp_hash")
	ErrInvalidChunkRootMerkle = errors.New("light: merklized chunk state roots do not match prev_state_root")
)

// VerifyHeader runs the conjunctive checks a candidate header must pass
// against the current latest consensus state: monotonicity, epoch
// continuity, stake-weighted signature aggregation, and commitment
// consistency. It is a pure function: all data needed to resolve epoch
// block producers comes from cur, never from a host lookup.
func VerifyHeader(cur *ConsensusState, h *Header) error {
	// 1. Monotonicity.
	if !h.Height().GT(cur.Header.Height()) {
		return NewError(KindHeaderSemantic, ErrHeaderNotNewer)
	}

	// 2. Epoch continuity.
	epochID := h.EpochID()
	if epochID != cur.Header.EpochID() && epochID != cur.Header.NextEpochID() {
		return NewError(KindHeaderSemantic, ErrInvalidEpoch)
	}

	// 3. Epoch rotation requires next BPs.
	if epochID == cur.Header.NextEpochID() && h.LightClientBlock.NextBPs == nil {
		return NewError(KindHeaderSemantic, ErrMissingNextBPs)
	}

	// 4. BP lookup.
	epochBPs, ok := cur.GetBlockProducersOf(epochID)
	if !ok || epochBPs == nil {
		return NewError(KindHeaderSemantic, ErrMissingEpochProducers)
	}

	// 5. Signature aggregation.
	approvals := h.LightClientBlock.ApprovalsAfterNext
	n := len(approvals)
	if len(epochBPs) < n {
		n = len(epochBPs)
	}
	approvalMessage := h.LightClientBlock.ApprovalMessage()

	totalStake := uint256.NewInt(0)
	approvedStake := uint256.NewInt(0)
	for i := 0; i < n; i++ {
		bp := epochBPs[i]
		stake := stakeOrZero(bp)
		totalStake.Add(totalStake, stake)

		sig := approvals[i]
		if sig == nil {
			continue
		}
		if !crypto.VerifyEd25519(bp.PublicKey, approvalMessage, *sig) {
			return NewError(KindHeaderSemantic, ErrInvalidApprovalSig)
		}
		approvedStake.Add(approvedStake, stake)
	}

	// 6. Supermajority, strict: approved_stake * 3 > total_stake * 2.
	lhs := new(uint256.Int).Mul(approvedStake, uint256.NewInt(3))
	rhs := new(uint256.Int).Mul(totalStake, uint256.NewInt(2))
	if !lhs.Gt(rhs) {
		return NewError(KindHeaderSemantic, ErrInsufficientStake)
	}

	// 7. Next-BP commitment.
	if h.LightClientBlock.NextBPs != nil {
		encoded := EncodeValidatorStakeVec(h.LightClientBlock.NextBPs)
		if crypto.Sha256(encoded) != h.LightClientBlock.InnerLite.NextBPHash {
			return NewError(KindHeaderSemantic, ErrInvalidNextBPHash)
		}
	}

	// 8. Chunk-root Merkle.
	chunkRoot, err := crypto.Merklize(h.PrevStateRootOfChunks)
	if err != nil {
		return NewError(KindHeaderSemantic, err)
	}
	if chunkRoot != h.LightClientBlock.InnerLite.PrevStateRoot {
		return NewError(KindHeaderSemantic, ErrInvalidChunkRootMerkle)
	}

	return nil
}

// VerifyMisbehaviour checks that both headers in a Misbehaviour submission
// would individually have convinced the light client, the precondition for
// treating their conflict as real evidence rather than a malformed report.
func VerifyMisbehaviour(cur *ConsensusState, m *Misbehaviour) error {
	if err := VerifyHeader(cur, &m.Header1); err != nil {
		return err
	}
	return VerifyHeader(cur, &m.Header2)
}

// CheckForMisbehaviourMisbehaviour detects misbehaviour directly within a
// submitted Misbehaviour message: same height with differing block hashes,
// or differing heights with non-monotonic timestamps.
func CheckForMisbehaviourMisbehaviour(m *Misbehaviour) bool {
	h1, h2 := &m.Header1, &m.Header2
	if h1.Height() == h2.Height() {
		return h1.LightClientBlock.CurrentBlockHash() != h2.LightClientBlock.CurrentBlockHash()
	}
	// header1 at greater height than header2 with non-increasing time is a
	// violation of monotonic block time.
	return h1.Height().GT(h2.Height()) && !h1.Timestamp().After(h2.Timestamp())
}

// CheckForMisbehaviourUpdateClient runs fork- and time-ordering checks
// while processing an UpdateClient message, consulting the host store for
// any already-recorded consensus states around the candidate header's
// height.
func CheckForMisbehaviourUpdateClient(ctx ValidationContext, cs *ClientState, clientID string, header *Header) (bool, error) {
	existing, err := ctx.ConsensusStateAt(clientID, header.Height())
	if err == nil && existing != nil {
		// Fork detection: a stored state already exists at this height.
		return existing.Header.LightClientBlock.CurrentBlockHash() != header.LightClientBlock.CurrentBlockHash(), nil
	}

	prevCS, err := ctx.PrevConsensusState(clientID, header.Height())
	if err != nil {
		return false, NewError(KindContext, err)
	}
	if prevCS != nil && !header.Timestamp().After(prevCS.Header.Timestamp()) {
		return true, nil
	}

	if header.Height().LT(cs.LatestHeight) {
		nextCS, err := ctx.NextConsensusState(clientID, header.Height())
		if err != nil {
			return false, NewError(KindContext, err)
		}
		if nextCS != nil && !header.Timestamp().Before(nextCS.Header.Timestamp()) {
			return true, nil
		}
	}

	return false, nil
}
