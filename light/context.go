package light

import (
	"time"

	"github.com/octopus-network/ibc-near-light-client/types"
)

// ValidationContext is the read-only host surface the core needs to verify
// headers, misbehaviour, and commitment proofs. Implementations report "not
// found" as (nil, nil); a non-nil error means the host store itself failed.
type ValidationContext interface {
	// ConsensusStateAt returns the consensus state stored at exactly height,
	// or (nil, nil) if none is stored there.
	ConsensusStateAt(clientID string, height types.Height) (*ConsensusState, error)
	// PrevConsensusState returns the consensus state at the greatest stored
	// height strictly less than height, or (nil, nil) if none exists.
	PrevConsensusState(clientID string, height types.Height) (*ConsensusState, error)
	// NextConsensusState returns the consensus state at the least stored
	// height strictly greater than height, or (nil, nil) if none exists.
	NextConsensusState(clientID string, height types.Height) (*ConsensusState, error)
	// HostTimestamp returns the host chain's current wall-clock time.
	HostTimestamp() time.Time
	// HostHeight returns the host chain's current height.
	HostHeight() types.Height
}

// ExecutionContext extends ValidationContext with the writes the client
// state machine performs while processing CreateClient/UpdateClient/
// UpgradeClient/misbehaviour messages.
type ExecutionContext interface {
	ValidationContext

	StoreClientState(clientID string, cs *ClientState) error
	StoreConsensusState(clientID string, height types.Height, cs *ConsensusState) error
	StoreUpdateTime(clientID string, height types.Height, t time.Time) error
	StoreUpdateHeight(clientID string, height types.Height, hostHeight types.Height) error
}
