package blsag

import (
	"crypto/rand"
	"fmt"
	"io"
)

// KeyPair is a secret scalar and the public key derived from it. The secret
// never appears in any output structure; it is only consumed by Sign.
type KeyPair struct {
	secret Scalar
	public Point
}

// GenerateKeyPair draws a fresh secret from rng (crypto/rand when nil) and
// derives the matching public key.
func GenerateKeyPair(curve Curve, rng io.Reader) (*KeyPair, error) {
	secret, err := randomScalar(curve, rng)
	if err != nil {
		return nil, err
	}

	return NewKeyPairFromSecret(curve, secret)
}

// NewKeyPairFromSecret builds a key pair around an existing secret scalar.
// A zero secret is rejected: its public key is the identity.
func NewKeyPairFromSecret(curve Curve, secret Scalar) (*KeyPair, error) {
	if secret == nil || secret.IsZero() {
		return nil, fmt.Errorf("%w: secret must be non-zero", ErrInvalidScalar)
	}

	return &KeyPair{
		secret: secret,
		public: curve.ScalarBaseMul(secret),
	}, nil
}

// Public returns the public key.
func (kp *KeyPair) Public() Point {
	return kp.public
}

// Secret returns the secret scalar. Callers own its lifetime; call Zeroize
// when done.
func (kp *KeyPair) Secret() Scalar {
	return kp.secret
}

// Zeroize overwrites the secret scalar in place.
func (kp *KeyPair) Zeroize() {
	kp.secret.Zeroize()
}

// DeriveKeyImage computes the linkability tag secret * hashToPoint(public).
// It is deterministic: the same key pair always yields the same image,
// regardless of ring or message.
func DeriveKeyImage(curve Curve, secret Scalar, public Point) (Point, error) {
	if secret == nil || secret.IsZero() {
		return nil, fmt.Errorf("%w: secret must be non-zero", ErrInvalidScalar)
	}
	if public == nil || public.IsIdentity() {
		return nil, fmt.Errorf("%w: public key is the identity", ErrIdentityElement)
	}

	hp, err := hashToPoint(curve, public)
	if err != nil {
		return nil, err
	}

	return curve.ScalarMul(secret, hp), nil
}

// randomScalar derives a scalar from 64 uniform bytes of rng, so that two
// backends fed the same stream produce the same scalar. The intermediate
// buffer is wiped before returning.
func randomScalar(curve Curve, rng io.Reader) (Scalar, error) {
	if rng == nil {
		rng = rand.Reader
	}

	var buf [64]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return nil, fmt.Errorf("failed to read randomness: %w", err)
	}

	s := curve.ScalarFromUniformBytes(buf)
	for i := range buf {
		buf[i] = 0
	}
	return s, nil
}
