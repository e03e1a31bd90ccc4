package trie

import (
	"bytes"

	"github.com/octopus-network/ibc-near-light-client/crypto"
	"github.com/octopus-network/ibc-near-light-client/types"
)

// VerifyMembership checks that key maps to value in the trie rooted at
// root, given the proof nodes in walk order. It walks the claimed path's
// membership algorithm.
func VerifyMembership(nodes []*Node, root types.CryptoHash, key, value []byte) error {
	membership, valueHash, err := walk(nodes, root, key)
	if err != nil {
		return err
	}
	if !membership {
		return ErrExpectedMembership
	}
	gotHash := crypto.Sha256(value)
	if gotHash != *valueHash {
		return ErrValueMismatch
	}
	return nil
}

// VerifyNonMembership checks that key is absent from the trie rooted at
// root, given the proof nodes in walk order. It walks the claimed path's
// non-membership algorithm: success exactly when the walk proves a
// divergence, not merely when it runs out of proof.
func VerifyNonMembership(nodes []*Node, root types.CryptoHash, key []byte) error {
	membership, _, err := walk(nodes, root, key)
	if err != nil {
		return err
	}
	if membership {
		return ErrExpectedNonMember
	}
	return nil
}

// walk drives the single shared algorithm behind both membership and
// non-membership checks. It returns (true, &valueHash, nil) when the walk
// proves membership of key with the given value hash, (false, nil, nil)
// when the walk proves a divergence (non-membership), or a non-nil error
// for any malformed proof (empty/duplicate/cyclic/unreferenced nodes,
// exhausted walk, hash mismatch).
func walk(nodes []*Node, root types.CryptoHash, key []byte) (bool, *types.CryptoHash, error) {
	if len(nodes) == 0 {
		return false, nil, ErrEmptyProof
	}
	if err := rejectDuplicateHashes(nodes); err != nil {
		return false, nil, err
	}
	if nodes[0].Hash() != root {
		return false, nil, ErrRootMismatch
	}

	visited := make([]bool, len(nodes))
	visited[0] = true
	idx := 0
	remaining := NibblesFromKey(key)

	for {
		node := nodes[idx]
		switch node.Kind {
		case NodeLeaf:
			if bytes.Equal(remaining, node.KeyFragment) {
				vh := node.ValueHash
				return true, &vh, requireAllVisited(visited)
			}
			return false, nil, requireAllVisited(visited)

		case NodeExtension:
			if hasPrefix(remaining, node.KeyFragment) {
				remaining = remaining[len(node.KeyFragment):]
				next, err := advance(nodes, visited, idx, node.ChildHash)
				if err != nil {
					return false, nil, err
				}
				idx = next
				continue
			}
			return false, nil, requireAllVisited(visited)

		case NodeBranch:
			if len(remaining) == 0 {
				if node.Value != nil {
					vh := *node.Value
					return true, &vh, requireAllVisited(visited)
				}
				return false, nil, requireAllVisited(visited)
			}
			nibble := remaining[0]
			child := node.Children[nibble]
			if child == nil {
				return false, nil, requireAllVisited(visited)
			}
			remaining = remaining[1:]
			next, err := advance(nodes, visited, idx, *child)
			if err != nil {
				return false, nil, err
			}
			idx = next
			continue

		default:
			return false, nil, ErrUnknownNodeKind
		}
	}
}

// advance moves the walk cursor to the proof node immediately following
// idx, checking that it exists, has not already been visited, and hashes
// to the expected child reference.
func advance(nodes []*Node, visited []bool, idx int, expectedChild types.CryptoHash) (int, error) {
	next := idx + 1
	if next >= len(nodes) {
		return 0, ErrProofExhausted
	}
	if visited[next] {
		return 0, ErrCycleDetected
	}
	if nodes[next].Hash() != expectedChild {
		return 0, ErrChildHashMismatch
	}
	visited[next] = true
	return next, nil
}

// requireAllVisited rejects a proof that contains nodes the walk never
// stepped onto.
func requireAllVisited(visited []bool) error {
	for _, v := range visited {
		if !v {
			return ErrUnreferencedNode
		}
	}
	return nil
}

// rejectDuplicateHashes rejects a proof where two nodes (consecutive or
// not) hash identically, NEAR trie structure being acyclic by construction.
func rejectDuplicateHashes(nodes []*Node) error {
	seen := make(map[types.CryptoHash]struct{}, len(nodes))
	for _, n := range nodes {
		h := n.Hash()
		if _, ok := seen[h]; ok {
			return ErrCycleDetected
		}
		seen[h] = struct{}{}
	}
	return nil
}

func hasPrefix(remaining, fragment []byte) bool {
	if len(fragment) > len(remaining) {
		return false
	}
	return bytes.Equal(remaining[:len(fragment)], fragment)
}
