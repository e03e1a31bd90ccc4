package trie

import (
	"github.com/octopus-network/ibc-near-light-client/borsh"
)

// EncodeProof returns the canonical borsh encoding of a proof: a
// length-prefixed list of individually length-prefixed node encodings, in
// the walk order VerifyMembership/VerifyNonMembership expect.
func EncodeProof(nodes []*Node) []byte {
	w := borsh.NewWriter()
	w.WriteU32(uint32(len(nodes)))
	for _, n := range nodes {
		w.WriteBytes(n.Encode())
	}
	return w.Bytes()
}

// DecodeProof parses a borsh-encoded proof back into its node list.
func DecodeProof(b []byte) ([]*Node, error) {
	r := borsh.NewReader(b)
	count := r.ReadU32()
	if r.Err() != nil {
		return nil, r.Err()
	}
	nodes := make([]*Node, 0, count)
	for i := uint32(0); i < count; i++ {
		raw := r.ReadBytes()
		if r.Err() != nil {
			return nil, r.Err()
		}
		n, err := DecodeNode(raw)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return nodes, nil
}
