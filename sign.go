package blsag

import (
	"fmt"
	"io"
)

// Sign produces a linkable ring signature over msg by the ring member at
// signerIndex, whose secret scalar is secret. rng must be a
// cryptographically secure source; nil selects crypto/rand.
//
// A ring of size one signs successfully but carries no anonymity.
func Sign(curve Curve, ring Ring, signerIndex int, secret Scalar, msg []byte, rng io.Reader) (*Signature, error) {
	n := len(ring)
	if n == 0 {
		return nil, ErrRingTooShort
	}
	if signerIndex < 0 || signerIndex >= n {
		return nil, fmt.Errorf("%w: index %d, ring size %d", ErrIndexOutOfRange, signerIndex, n)
	}
	if secret == nil || secret.IsZero() {
		return nil, fmt.Errorf("%w: secret must be non-zero", ErrInvalidScalar)
	}
	for i, p := range ring {
		if p == nil || p.IsIdentity() {
			return nil, fmt.Errorf("%w: ring member %d", ErrIdentityElement, i)
		}
	}
	if !curve.ScalarBaseMul(secret).Equals(ring[signerIndex]) {
		return nil, ErrNotInRing
	}

	// Key-image base point for the signer, reused for the image itself and
	// the commitment at the signer's position.
	hpSigner, err := hashToPoint(curve, ring[signerIndex])
	if err != nil {
		return nil, err
	}
	keyImage := curve.ScalarMul(secret, hpSigner)

	ringBytes := ring.encode()

	alpha, err := randomScalar(curve, rng)
	if err != nil {
		return nil, err
	}
	defer alpha.Zeroize()

	challenges := make([]Scalar, n)
	responses := make([]Scalar, n)

	// Commit at the signer's position and open the chain just after it.
	l := curve.ScalarBaseMul(alpha)
	r := curve.ScalarMul(alpha, hpSigner)
	c, err := challenge(curve, msg, ringBytes, l, r)
	if err != nil {
		return nil, err
	}
	challenges[(signerIndex+1)%n] = c

	// Walk the decoys forward circularly until the chain returns to the
	// signer.
	for k := 1; k < n; k++ {
		i := (signerIndex + k) % n

		responses[i], err = randomScalar(curve, rng)
		if err != nil {
			return nil, err
		}

		hp, err := hashToPoint(curve, ring[i])
		if err != nil {
			return nil, err
		}

		l := curve.ScalarBaseMul(responses[i]).Add(ring[i].ScalarMul(challenges[i]))
		r := curve.ScalarMul(responses[i], hp).Add(keyImage.ScalarMul(challenges[i]))

		next, err := challenge(curve, msg, ringBytes, l, r)
		if err != nil {
			return nil, err
		}
		challenges[(i+1)%n] = next
	}

	// Close the ring: response[s] = alpha - challenge[s]*secret.
	cx := challenges[signerIndex].Mul(secret)
	responses[signerIndex] = alpha.Sub(cx)
	cx.Zeroize()

	return &Signature{
		KeyImage:  keyImage,
		C0:        challenges[0],
		Responses: responses,
	}, nil
}
