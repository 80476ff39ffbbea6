package blsag

import (
	"github.com/athanorlabs/go-blsag/types"
)

type Curve = types.Curve
type Point = types.Point
type Scalar = types.Scalar

// Ring is an ordered sequence of public keys. Order is significant: the
// challenge chain binds each signature to the exact sequence, so a permuted
// ring does not verify. Rings are borrowed read-only for the duration of a
// call and never mutated.
type Ring []Point

// HasDuplicates reports whether any public key appears more than once.
// Duplicate members are accepted by Sign and Verify but shrink the effective
// anonymity set, so callers should treat them as a ring-construction defect.
func (r Ring) HasDuplicates() bool {
	seen := make(map[string]struct{}, len(r))
	for _, p := range r {
		k := string(p.Encode())
		if _, ok := seen[k]; ok {
			return true
		}
		seen[k] = struct{}{}
	}
	return false
}

// encode concatenates the compressed encodings of all ring members, in
// order, for inclusion in the challenge transcript.
func (r Ring) encode() []byte {
	if len(r) == 0 {
		return nil
	}

	out := make([]byte, 0, len(r)*len(r[0].Encode()))
	for _, p := range r {
		out = append(out, p.Encode()...)
	}
	return out
}

// DecodeRing decodes a ring from the concatenation of compressed point
// encodings. Every member must decode canonically into the prime-order
// subgroup and must not be the identity.
func DecodeRing(curve Curve, in []byte) (Ring, error) {
	pointLen := curve.CompressedPointSize()
	if len(in) == 0 || len(in)%pointLen != 0 {
		return nil, errInputBytesTooShort
	}

	ring := make(Ring, 0, len(in)/pointLen)
	for i := 0; i < len(in); i += pointLen {
		p, err := curve.DecodeToPoint(in[i : i+pointLen])
		if err != nil {
			return nil, err
		}
		if p.IsIdentity() {
			return nil, ErrIdentityElement
		}
		ring = append(ring, p)
	}
	return ring, nil
}

// Signature is a linkable ring signature. KeyImage is the linkability tag,
// C0 the single transmitted challenge, and Responses one scalar per ring
// member; all remaining challenges are recomputed during verification.
type Signature struct {
	KeyImage  Point
	C0        Scalar
	Responses []Scalar
}
