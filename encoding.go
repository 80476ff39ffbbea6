package blsag

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// EncodeBase58 returns the base58 form of the serialized signature, for
// embedding in text formats.
func (s *Signature) EncodeBase58() string {
	return base58.Encode(s.Serialize())
}

// DecodeBase58 decodes a base58-encoded signature for the given curve.
func (s *Signature) DecodeBase58(curve Curve, in string) error {
	b := base58.Decode(in)
	if len(b) == 0 {
		return fmt.Errorf("%w: invalid base58", ErrDecoding)
	}
	return s.Deserialize(curve, b)
}

// EncodePointBase58 returns the base58 form of a point's compressed
// encoding.
func EncodePointBase58(p Point) string {
	return base58.Encode(p.Encode())
}

// DecodePointBase58 decodes a base58 point for the given curve, applying the
// same canonical-form and subgroup validation as DecodeToPoint.
func DecodePointBase58(curve Curve, in string) (Point, error) {
	b := base58.Decode(in)
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: invalid base58", ErrDecoding)
	}
	return curve.DecodeToPoint(b)
}
