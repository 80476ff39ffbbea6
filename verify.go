package blsag

import (
	"fmt"
)

// Verify checks sig against the ring and message. It recomputes the
// challenge chain from the transmitted challenge and accepts iff the chain
// closes on that same value after exactly one pass over the ring.
//
// A closure failure returns ErrClosureMismatch; malformed inputs return the
// corresponding decoding or identity error, so callers can tell an invalid
// signature apart from an unusable one.
func Verify(curve Curve, ring Ring, msg []byte, sig *Signature) error {
	n := len(ring)
	if n == 0 {
		return ErrRingTooShort
	}
	if sig == nil || sig.KeyImage == nil || sig.C0 == nil {
		return fmt.Errorf("%w: incomplete signature", ErrDecoding)
	}
	if len(sig.Responses) != n {
		return fmt.Errorf("%w: %d responses for ring of %d", ErrDecoding, len(sig.Responses), n)
	}
	for i, p := range ring {
		if p == nil || p.IsIdentity() {
			return fmt.Errorf("%w: ring member %d", ErrIdentityElement, i)
		}
	}

	// An identity key image encodes to a value DecodeToPoint rejects on
	// some curves, so classify it before the round trip.
	if sig.KeyImage.IsIdentity() {
		return fmt.Errorf("%w: key image", ErrIdentityElement)
	}

	// Re-decode the key image so in-memory signatures get the same
	// canonical-form and subgroup validation as deserialized ones.
	keyImage, err := curve.DecodeToPoint(sig.KeyImage.Encode())
	if err != nil {
		return err
	}
	if keyImage.IsIdentity() {
		return fmt.Errorf("%w: key image", ErrIdentityElement)
	}

	ringBytes := ring.encode()

	c := sig.C0
	for i := 0; i < n; i++ {
		if sig.Responses[i] == nil {
			return fmt.Errorf("%w: missing response %d", ErrDecoding, i)
		}

		hp, err := hashToPoint(curve, ring[i])
		if err != nil {
			return err
		}

		l := curve.ScalarBaseMul(sig.Responses[i]).Add(ring[i].ScalarMul(c))
		r := curve.ScalarMul(sig.Responses[i], hp).Add(keyImage.ScalarMul(c))

		c, err = challenge(curve, msg, ringBytes, l, r)
		if err != nil {
			return err
		}
	}

	if !c.Eq(sig.C0) {
		return ErrClosureMismatch
	}
	return nil
}

// Linked reports whether two signatures were produced by the same secret
// key, by comparing key images. It is a pure comparison; persisting seen
// images across time is the registry's job.
func Linked(a, b *Signature) bool {
	if a == nil || b == nil || a.KeyImage == nil || b.KeyImage == nil {
		return false
	}
	return a.KeyImage.Equals(b.KeyImage)
}
