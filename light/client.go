package light

import (
	"errors"

	"github.com/octopus-network/ibc-near-light-client/log"
	"github.com/octopus-network/ibc-near-light-client/trie"
	"github.com/octopus-network/ibc-near-light-client/types"
)

var clientLog = log.Default().Module("light")

// Client-lifecycle sentinels.
var (
	ErrFrozenHeightNotAllowed = errors.New("light: cannot create a client already frozen")
	ErrEmptyCommitmentRoot    = errors.New("light: initial consensus state has an empty commitment root")
	ErrUpgradeNotSupported    = errors.New("light: client upgrade is not available on NEAR")
	ErrNoConsensusStateAt     = errors.New("light: no consensus state stored at the requested height")
	ErrProofHeightTooHigh     = errors.New("light: proof height exceeds the client's latest trusted height")
	ErrNoMatchingChunkRoot    = errors.New("light: proof root does not match any chunk state root in the commitment")
	ErrMisbehaviourDetected   = errors.New("light: header update conflicts with previously recorded consensus state")
)

// Initialise validates a freshly-submitted (ClientState, ConsensusState)
// pair and persists them as height cs.LatestHeight, the CreateClient
// message's execution. A client created already frozen is rejected since
// there would never be any header to recover it.
func Initialise(ctx ExecutionContext, clientID string, cs *ClientState, consensus *ConsensusState) error {
	if cs.FrozenSet {
		return NewError(KindClientLifecycle, ErrFrozenHeightNotAllowed)
	}
	if len(consensus.CommitmentRoot) == 0 {
		return NewError(KindClientLifecycle, ErrEmptyCommitmentRoot)
	}

	height := cs.LatestHeight
	if err := ctx.StoreUpdateTime(clientID, height, ctx.HostTimestamp()); err != nil {
		return NewError(KindContext, err)
	}
	if err := ctx.StoreUpdateHeight(clientID, height, ctx.HostHeight()); err != nil {
		return NewError(KindContext, err)
	}
	if err := ctx.StoreConsensusState(clientID, height, consensus); err != nil {
		return NewError(KindContext, err)
	}
	if err := ctx.StoreClientState(clientID, cs); err != nil {
		return NewError(KindContext, err)
	}
	return nil
}

// UpdateState verifies header against the client's current latest consensus
// state and, if valid, appends a new consensus state at header's height and
// advances the client's latest height. Before verification it runs
// CheckForMisbehaviourUpdateClient against the host store; a positive
// result freezes the client instead of applying the header, since the
// update itself is the evidence. A header for a height already recorded
// under the same hash is a true duplicate submission and is a no-op.
func UpdateState(ctx ExecutionContext, clientID string, cs *ClientState, header *Header) (*ClientState, error) {
	clog := clientLog.WithClient(clientID).WithHeight(header.Height())

	misbehaving, err := CheckForMisbehaviourUpdateClient(ctx, cs, clientID, header)
	if err != nil {
		return nil, err
	}
	if misbehaving {
		frozen := UpdateStateOnMisbehaviour(cs)
		if err := ctx.StoreClientState(clientID, frozen); err != nil {
			return nil, NewError(KindContext, err)
		}
		clog.ErrorKind("misbehaviour detected while processing header update", KindClientLifecycle)
		return frozen, NewError(KindClientLifecycle, ErrMisbehaviourDetected)
	}

	if existing, err := ctx.ConsensusStateAt(clientID, header.Height()); err != nil {
		return nil, NewError(KindContext, err)
	} else if existing != nil {
		// CheckForMisbehaviourUpdateClient already confirmed this header's
		// hash agrees with the one on record, so this is a true duplicate.
		clog.Debug("duplicate header submission ignored")
		return cs, nil
	}

	curConsensus, err := ctx.ConsensusStateAt(clientID, cs.LatestHeight)
	if err != nil {
		return nil, NewError(KindContext, err)
	}
	if curConsensus == nil {
		return nil, NewError(KindClientLifecycle, ErrNoConsensusStateAt)
	}

	if err := VerifyHeader(curConsensus, header); err != nil {
		if kerr, ok := err.(*Error); ok {
			clog.ErrorKind("header rejected", kerr.Kind(), "err", kerr)
		} else {
			clog.Warn("header rejected", "err", err)
		}
		return nil, err
	}

	nextBPs, _ := curConsensus.GetBlockProducersOf(header.EpochID())
	newConsensus := NewConsensusState(nextBPs, *header)

	newClientState := *cs
	newClientState.LatestHeight = cs.LatestHeight.Max(header.Height())
	if header.Height() == newClientState.LatestHeight {
		newClientState.LatestTimestampNanos = header.TimestampNanos()
	}

	height := header.Height()
	if err := ctx.StoreUpdateTime(clientID, height, ctx.HostTimestamp()); err != nil {
		return nil, NewError(KindContext, err)
	}
	if err := ctx.StoreUpdateHeight(clientID, height, ctx.HostHeight()); err != nil {
		return nil, NewError(KindContext, err)
	}
	if err := ctx.StoreConsensusState(clientID, height, &newConsensus); err != nil {
		return nil, NewError(KindContext, err)
	}
	if err := ctx.StoreClientState(clientID, &newClientState); err != nil {
		return nil, NewError(KindContext, err)
	}

	clog.Info("client updated")
	return &newClientState, nil
}

// UpdateStateOnMisbehaviour returns cs frozen at the sentinel zero height:
// the exact conflicting height is not recorded, only that the client can no
// longer be trusted.
func UpdateStateOnMisbehaviour(cs *ClientState) *ClientState {
	frozen := *cs
	frozen.FrozenSet = true
	frozen.FrozenHeight = types.ZeroHeight
	return &frozen
}

// VerifyUpgradeClient always fails: NEAR light clients have no governance
// upgrade path distinct from ordinary header updates.
func VerifyUpgradeClient(*ClientState, *ClientState, *ConsensusState, []byte, []byte) error {
	return NewError(KindClientLifecycle, ErrUpgradeNotSupported)
}

// UpdateStateOnUpgrade always fails, for the same reason as
// VerifyUpgradeClient.
func UpdateStateOnUpgrade(*ClientState, *ConsensusState) (*ClientState, error) {
	return nil, NewError(KindClientLifecycle, ErrUpgradeNotSupported)
}

// Status reports the client's externally visible state machine status.
// Frozen takes precedence, then Expired (trusting period elapsed since the
// latest consensus state's header timestamp, or that consensus state
// missing entirely), else Active.
func Status(ctx ValidationContext, clientID string, cs *ClientState) (Status, error) {
	if cs.IsFrozen() {
		return StatusFrozen, nil
	}

	latest, err := ctx.ConsensusStateAt(clientID, cs.LatestHeight)
	if err != nil {
		return StatusExpired, NewError(KindContext, err)
	}
	if latest == nil {
		return StatusExpired, nil
	}

	expiry := latest.Header.Timestamp().Add(cs.TrustingPeriod)
	if ctx.HostTimestamp().After(expiry) {
		return StatusExpired, nil
	}
	return StatusActive, nil
}

// VerifyMembership checks that key maps to value in the commitment rooted
// at consensus.CommitmentRoot, given a borsh-encoded trie.EncodeProof proof,
// the commitment being a list of per-shard chunk state roots:
// the proof's own root must match one of them.
func VerifyMembership(consensus *ConsensusState, proofBytes, key, value []byte) error {
	root, nodes, err := resolveProofRoot(consensus, proofBytes)
	if err != nil {
		return err
	}
	if err := trie.VerifyMembership(nodes, root, key, value); err != nil {
		return NewError(KindCommitmentProof, err)
	}
	return nil
}

// VerifyNonMembership checks that key is absent from the commitment rooted
// at consensus.CommitmentRoot, mirroring VerifyMembership.
func VerifyNonMembership(consensus *ConsensusState, proofBytes, key []byte) error {
	root, nodes, err := resolveProofRoot(consensus, proofBytes)
	if err != nil {
		return err
	}
	if err := trie.VerifyNonMembership(nodes, root, key); err != nil {
		return NewError(KindCommitmentProof, err)
	}
	return nil
}

// resolveProofRoot decodes the proof and matches its root node's hash
// against one of the consensus state's chunk state roots.
func resolveProofRoot(consensus *ConsensusState, proofBytes []byte) (types.CryptoHash, []*trie.Node, error) {
	chunkRoots, err := DecodeCommitmentRoot(consensus.CommitmentRoot)
	if err != nil {
		return types.CryptoHash{}, nil, NewError(KindCodec, err)
	}
	nodes, err := trie.DecodeProof(proofBytes)
	if err != nil {
		return types.CryptoHash{}, nil, NewError(KindCodec, err)
	}
	if len(nodes) == 0 {
		return types.CryptoHash{}, nil, NewError(KindCommitmentProof, trie.ErrEmptyProof)
	}
	root := nodes[0].Hash()
	for _, cr := range chunkRoots {
		if cr == root {
			return root, nodes, nil
		}
	}
	return types.CryptoHash{}, nil, NewError(KindCommitmentProof, ErrNoMatchingChunkRoot)
}

// VerifyMembershipAtHeight is the host-facing entry point: it first checks
// the requested height is not beyond the client's trusted frontier, then
// looks up the consensus state recorded there before delegating to
// VerifyMembership.
func VerifyMembershipAtHeight(ctx ValidationContext, clientID string, cs *ClientState, height types.Height, proofBytes, key, value []byte) error {
	consensus, err := consensusStateForProof(ctx, clientID, cs, height)
	if err != nil {
		return err
	}
	return VerifyMembership(consensus, proofBytes, key, value)
}

// VerifyNonMembershipAtHeight is VerifyMembershipAtHeight's non-membership
// counterpart.
func VerifyNonMembershipAtHeight(ctx ValidationContext, clientID string, cs *ClientState, height types.Height, proofBytes, key []byte) error {
	consensus, err := consensusStateForProof(ctx, clientID, cs, height)
	if err != nil {
		return err
	}
	return VerifyNonMembership(consensus, proofBytes, key)
}

func consensusStateForProof(ctx ValidationContext, clientID string, cs *ClientState, height types.Height) (*ConsensusState, error) {
	if height.GT(cs.LatestHeight) {
		return nil, NewError(KindStale, ErrProofHeightTooHigh)
	}
	consensus, err := ctx.ConsensusStateAt(clientID, height)
	if err != nil {
		return nil, NewError(KindContext, err)
	}
	if consensus == nil {
		return nil, NewError(KindClientLifecycle, ErrNoConsensusStateAt)
	}
	return consensus, nil
}
