package types

import "fmt"

// Height identifies a position in the host chain's (revision, height) space,
// following IBC convention. NEAR never forks revisions, so RevisionNumber is
// always zero in practice, but the field is kept for host-interface parity.
type Height struct {
	RevisionNumber uint64
	RevisionHeight uint64
}

// ZeroHeight is the sentinel value meaning "frozen, actual height unknown".
var ZeroHeight = Height{}

// IsZero reports whether h is the zero/sentinel height.
func (h Height) IsZero() bool {
	return h == ZeroHeight
}

// LT reports whether h is strictly less than other, comparing revision
// number first and then height within the revision.
func (h Height) LT(other Height) bool {
	if h.RevisionNumber != other.RevisionNumber {
		return h.RevisionNumber < other.RevisionNumber
	}
	return h.RevisionHeight < other.RevisionHeight
}

// GT reports whether h is strictly greater than other.
func (h Height) GT(other Height) bool {
	return other.LT(h)
}

// Max returns the greater of h and other.
func (h Height) Max(other Height) Height {
	if h.LT(other) {
		return other
	}
	return h
}

// NewHeight builds a Height at revision 0, the only revision NEAR uses.
func NewHeight(height uint64) Height {
	return Height{RevisionHeight: height}
}

func (h Height) String() string {
	return fmt.Sprintf("%d-%d", h.RevisionNumber, h.RevisionHeight)
}
