package light

import "errors"

// Type URLs for the four message payloads this client recognizes, the
// external interface this package exposes to a host chain.
const (
	TypeURLClientState    = "/ibc.lightclients.near.v1.ClientState"
	TypeURLConsensusState = "/ibc.lightclients.near.v1.ConsensusState"
	TypeURLHeader         = "/ibc.lightclients.near.v1.Header"
	TypeURLMisbehaviour   = "/ibc.lightclients.near.v1.Misbehaviour"
)

// ErrUnrecognizedTypeURL is returned by DecodeMessage for any type URL other
// than the four declared above.
var ErrUnrecognizedTypeURL = errors.New("light: unrecognized type URL")

// DecodeMessage borsh-decodes value according to typeURL, returning one of
// *ClientState, *ConsensusState, *Header, or *Misbehaviour. It is the single
// entry point a host's message router needs to turn an Any-typed payload
// into a concrete Go value.
func DecodeMessage(typeURL string, value []byte) (any, error) {
	switch typeURL {
	case TypeURLClientState:
		cs, err := DecodeClientState(value)
		if err != nil {
			return nil, NewError(KindCodec, err)
		}
		return &cs, nil
	case TypeURLConsensusState:
		cs, err := DecodeConsensusState(value)
		if err != nil {
			return nil, NewError(KindCodec, err)
		}
		return &cs, nil
	case TypeURLHeader:
		h, err := DecodeHeader(value)
		if err != nil {
			return nil, NewError(KindCodec, err)
		}
		return &h, nil
	case TypeURLMisbehaviour:
		m, err := DecodeMisbehaviour(value)
		if err != nil {
			return nil, NewError(KindCodec, err)
		}
		return &m, nil
	default:
		return nil, NewError(KindCodec, ErrUnrecognizedTypeURL)
	}
}
