package types

import "errors"

var (
	// ErrDecoding is returned when byte input is the wrong length, is not a
	// canonical encoding, or does not encode an element of the prime-order
	// subgroup.
	ErrDecoding = errors.New("malformed or non-canonical encoding")

	// ErrInvalidScalar is returned on inversion of zero or when a scalar
	// encoding is out of range of the group order.
	ErrInvalidScalar = errors.New("invalid scalar")

	// ErrIdentityElement is returned when the group identity appears where a
	// public key or key image is expected.
	ErrIdentityElement = errors.New("group identity element rejected")
)
