package blsag

import (
	"errors"

	"github.com/athanorlabs/go-blsag/types"
)

// Backend-produced error kinds, re-exported for callers of this package.
var (
	ErrDecoding        = types.ErrDecoding
	ErrInvalidScalar   = types.ErrInvalidScalar
	ErrIdentityElement = types.ErrIdentityElement
)

var (
	// ErrRingTooShort is returned when signing or verifying against an
	// empty ring.
	ErrRingTooShort = errors.New("ring must contain at least one public key")

	// ErrIndexOutOfRange is returned when the signer index does not point
	// into the ring.
	ErrIndexOutOfRange = errors.New("signer index exceeds ring length")

	// ErrClosureMismatch is returned when the recomputed challenge chain
	// does not reproduce the transmitted challenge. It marks an invalid
	// signature, as opposed to a malformed one.
	ErrClosureMismatch = errors.New("challenge chain does not close")

	// ErrNotInRing is returned when the secret key does not correspond to
	// the ring member at the signer index.
	ErrNotInRing = errors.New("secret key does not match ring member at signer index")

	errInputBytesTooShort = errors.New("input bytes too short")
)
