package light

import (
	"sort"
	"sync"
	"time"

	"github.com/octopus-network/ibc-near-light-client/types"
)

// clientRecord holds one client's persisted state: its ClientState plus all
// consensus states recorded for it, indexed by height.
type clientRecord struct {
	clientState    *ClientState
	consensusState map[types.Height]*ConsensusState
	updateTime     map[types.Height]time.Time
	updateHeight   map[types.Height]types.Height
}

// Store is an in-memory ValidationContext/ExecutionContext, keyed by
// (ClientId, Height), guarded by a single RWMutex. It exists for tests and
// for hosts happy to keep light-client state off disk; a persistent host
// store implements the same two interfaces against its own backing KV.
type Store struct {
	mu      sync.RWMutex
	clients map[string]*clientRecord
	now     func() time.Time
	height  func() types.Height
}

// NewStore builds an empty Store. now and height supply the host clock and
// host height; pass nil for either to use real wall-clock time and a
// zero-revision height counter that never advances on its own.
func NewStore(now func() time.Time, height func() types.Height) *Store {
	if now == nil {
		now = time.Now
	}
	if height == nil {
		height = func() types.Height { return types.ZeroHeight }
	}
	return &Store{
		clients: make(map[string]*clientRecord),
		now:     now,
		height:  height,
	}
}

func (s *Store) record(clientID string) *clientRecord {
	r, ok := s.clients[clientID]
	if !ok {
		r = &clientRecord{
			consensusState: make(map[types.Height]*ConsensusState),
			updateTime:     make(map[types.Height]time.Time),
			updateHeight:   make(map[types.Height]types.Height),
		}
		s.clients[clientID] = r
	}
	return r
}

// ClientState returns the stored ClientState for clientID, or nil if none.
func (s *Store) ClientState(clientID string) *ClientState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.clients[clientID]
	if !ok {
		return nil
	}
	return r.clientState
}

// ConsensusStateAt implements ValidationContext.
func (s *Store) ConsensusStateAt(clientID string, height types.Height) (*ConsensusState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.clients[clientID]
	if !ok {
		return nil, nil
	}
	return r.consensusState[height], nil
}

// PrevConsensusState implements ValidationContext.
func (s *Store) PrevConsensusState(clientID string, height types.Height) (*ConsensusState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.clients[clientID]
	if !ok {
		return nil, nil
	}
	var best *types.Height
	for h := range r.consensusState {
		if h.LT(height) && (best == nil || best.LT(h)) {
			hCopy := h
			best = &hCopy
		}
	}
	if best == nil {
		return nil, nil
	}
	return r.consensusState[*best], nil
}

// NextConsensusState implements ValidationContext.
func (s *Store) NextConsensusState(clientID string, height types.Height) (*ConsensusState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.clients[clientID]
	if !ok {
		return nil, nil
	}
	var best *types.Height
	for h := range r.consensusState {
		if height.LT(h) && (best == nil || h.LT(*best)) {
			hCopy := h
			best = &hCopy
		}
	}
	if best == nil {
		return nil, nil
	}
	return r.consensusState[*best], nil
}

// HostTimestamp implements ValidationContext.
func (s *Store) HostTimestamp() time.Time {
	return s.now()
}

// HostHeight implements ValidationContext.
func (s *Store) HostHeight() types.Height {
	return s.height()
}

// StoreClientState implements ExecutionContext.
func (s *Store) StoreClientState(clientID string, cs *ClientState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(clientID).clientState = cs
	return nil
}

// StoreConsensusState implements ExecutionContext.
func (s *Store) StoreConsensusState(clientID string, height types.Height, cs *ConsensusState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(clientID).consensusState[height] = cs
	return nil
}

// StoreUpdateTime implements ExecutionContext.
func (s *Store) StoreUpdateTime(clientID string, height types.Height, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(clientID).updateTime[height] = t
	return nil
}

// StoreUpdateHeight implements ExecutionContext.
func (s *Store) StoreUpdateHeight(clientID string, height types.Height, hostHeight types.Height) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(clientID).updateHeight[height] = hostHeight
	return nil
}

// Heights returns every height with a recorded consensus state for
// clientID, in ascending order. Mainly useful for tests and diagnostics.
func (s *Store) Heights(clientID string) []types.Height {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.clients[clientID]
	if !ok {
		return nil
	}
	out := make([]types.Height, 0, len(r.consensusState))
	for h := range r.consensusState {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LT(out[j]) })
	return out
}
