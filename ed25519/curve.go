// Package ed25519 implements the curve interface over the edwards25519
// prime-order subgroup using filippo.io/edwards25519. This is the "full"
// backend: field arithmetic is the optimized, constant-time implementation.
package ed25519

import (
	"crypto/rand"
	"fmt"

	"github.com/athanorlabs/go-blsag/types"
	"golang.org/x/crypto/sha3"

	"filippo.io/edwards25519"
)

type Curve = types.Curve
type Point = types.Point
type Scalar = types.Scalar

var _ Curve = &CurveImpl{}
var _ Scalar = &ScalarImpl{}
var _ Point = &PointImpl{}

// maxHashToPointTries bounds the encode-and-reject loop. Each candidate
// decodes with probability ~1/2, so exhaustion is unreachable in practice.
const maxHashToPointTries = 256

var (
	scEight    = mustScalarFromUint32(8)
	scInvEight = new(edwards25519.Scalar).Invert(scEight)
)

func mustScalarFromUint32(in uint32) *edwards25519.Scalar {
	var b [32]byte
	b[0] = byte(in)
	b[1] = byte(in >> 8)
	b[2] = byte(in >> 16)
	b[3] = byte(in >> 24)

	s, err := new(edwards25519.Scalar).SetCanonicalBytes(b[:])
	if err != nil {
		panic(err)
	}
	return s
}

type CurveImpl struct{}

func NewCurve() Curve {
	return &CurveImpl{}
}

func (c *CurveImpl) BasePoint() Point {
	return &PointImpl{
		inner: edwards25519.NewGeneratorPoint(),
	}
}

func (c *CurveImpl) ScalarSize() int {
	return 32
}

func (c *CurveImpl) CompressedPointSize() int {
	return 32
}

func (c *CurveImpl) NewRandomScalar() Scalar {
	var b [64]byte
	_, err := rand.Read(b[:])
	if err != nil {
		panic(err)
	}

	return c.ScalarFromUniformBytes(b)
}

func (c *CurveImpl) ScalarFromUniformBytes(b [64]byte) Scalar {
	s, err := new(edwards25519.Scalar).SetUniformBytes(b[:])
	if err != nil {
		panic(err)
	}

	return &ScalarImpl{
		inner: s,
	}
}

func (c *CurveImpl) ScalarFrom(in uint32) Scalar {
	return &ScalarImpl{
		inner: mustScalarFromUint32(in),
	}
}

// HashToScalar maps arbitrary input to a scalar by hashing with SHA3-512
// and reducing the digest modulo the group order.
func (c *CurveImpl) HashToScalar(in []byte) (Scalar, error) {
	h := sha3.Sum512(in)
	s, err := new(edwards25519.Scalar).SetUniformBytes(h[:])
	if err != nil {
		panic(err)
	}

	return &ScalarImpl{
		inner: s,
	}, nil
}

// HashToPoint deterministically maps the input to a point in the prime-order
// subgroup with no known discrete log relative to the base point. It walks a
// SHA3-256 chain over the input, interpreting each digest as a candidate
// compressed point, and clears the cofactor on the first candidate that
// decodes.
func (c *CurveImpl) HashToPoint(in []byte) (Point, error) {
	candidate := sha3.Sum256(in)

	for i := 0; i < maxHashToPointTries; i++ {
		p, err := new(edwards25519.Point).SetBytes(candidate[:])
		if err == nil {
			p.MultByCofactor(p)
			if p.Equal(edwards25519.NewIdentityPoint()) != 1 {
				return &PointImpl{inner: p}, nil
			}
		}

		candidate = sha3.Sum256(candidate[:])
	}

	return nil, fmt.Errorf("no curve point found after %d candidates", maxHashToPointTries)
}

func (c *CurveImpl) ScalarBaseMul(s Scalar) Point {
	ss, ok := s.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *ed25519.ScalarImpl")
	}

	return &PointImpl{
		inner: new(edwards25519.Point).ScalarBaseMult(ss.inner),
	}
}

func (c *CurveImpl) ScalarMul(s Scalar, p Point) Point {
	ss, ok := s.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *ed25519.ScalarImpl")
	}

	pp, ok := p.(*PointImpl)
	if !ok {
		panic("invalid point; type is not *ed25519.PointImpl")
	}

	return &PointImpl{
		inner: new(edwards25519.Point).ScalarMult(ss.inner, pp.inner),
	}
}

// DecodeToScalar decodes a canonical little-endian scalar. Encodings of
// values not reduced modulo the group order are rejected.
func (c *CurveImpl) DecodeToScalar(in []byte) (Scalar, error) {
	if len(in) != 32 {
		return nil, fmt.Errorf("%w: expected 32 bytes, got %d", types.ErrDecoding, len(in))
	}

	s, err := new(edwards25519.Scalar).SetCanonicalBytes(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidScalar, err)
	}

	return &ScalarImpl{
		inner: s,
	}, nil
}

// DecodeToPoint decodes a compressed point, rejecting non-canonical
// encodings and points outside the prime-order subgroup. The identity
// decodes successfully; callers reject it where a key is expected.
func (c *CurveImpl) DecodeToPoint(in []byte) (Point, error) {
	if len(in) != 32 {
		return nil, fmt.Errorf("%w: expected 32 bytes, got %d", types.ErrDecoding, len(in))
	}

	p, err := new(edwards25519.Point).SetBytes(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrDecoding, err)
	}

	enc := p.Bytes()
	for i := range enc {
		if enc[i] != in[i] {
			return nil, fmt.Errorf("%w: non-canonical point encoding", types.ErrDecoding)
		}
	}

	// p is torsion-free iff multiplying by the cofactor and then by its
	// inverse modulo the group order round-trips.
	q := new(edwards25519.Point).MultByCofactor(p)
	q.ScalarMult(scInvEight, q)
	if q.Equal(p) != 1 {
		return nil, fmt.Errorf("%w: point not in prime-order subgroup", types.ErrDecoding)
	}

	return &PointImpl{
		inner: p,
	}, nil
}

type ScalarImpl struct {
	inner *edwards25519.Scalar
}

func (s *ScalarImpl) Add(b Scalar) Scalar {
	ss, ok := b.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *ed25519.ScalarImpl")
	}

	return &ScalarImpl{
		inner: new(edwards25519.Scalar).Add(s.inner, ss.inner),
	}
}

func (s *ScalarImpl) Sub(b Scalar) Scalar {
	ss, ok := b.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *ed25519.ScalarImpl")
	}

	return &ScalarImpl{
		inner: new(edwards25519.Scalar).Subtract(s.inner, ss.inner),
	}
}

func (s *ScalarImpl) Negate() Scalar {
	return &ScalarImpl{
		inner: new(edwards25519.Scalar).Negate(s.inner),
	}
}

func (s *ScalarImpl) Mul(b Scalar) Scalar {
	ss, ok := b.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *ed25519.ScalarImpl")
	}

	return &ScalarImpl{
		inner: new(edwards25519.Scalar).Multiply(s.inner, ss.inner),
	}
}

func (s *ScalarImpl) Inverse() (Scalar, error) {
	if s.IsZero() {
		return nil, fmt.Errorf("%w: inversion of zero", types.ErrInvalidScalar)
	}

	return &ScalarImpl{
		inner: new(edwards25519.Scalar).Invert(s.inner),
	}, nil
}

func (s *ScalarImpl) Encode() []byte {
	return s.inner.Bytes()
}

func (s *ScalarImpl) Eq(b Scalar) bool {
	ss, ok := b.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *ed25519.ScalarImpl")
	}
	return s.inner.Equal(ss.inner) == 1
}

func (s *ScalarImpl) IsZero() bool {
	return s.inner.Equal(edwards25519.NewScalar()) == 1
}

func (s *ScalarImpl) Zeroize() {
	*s.inner = edwards25519.Scalar{}
}

type PointImpl struct {
	inner *edwards25519.Point
}

func (p *PointImpl) Copy() Point {
	return &PointImpl{
		inner: new(edwards25519.Point).Set(p.inner),
	}
}

func (p *PointImpl) Add(b Point) Point {
	pp, ok := b.(*PointImpl)
	if !ok {
		panic("invalid point; type is not *ed25519.PointImpl")
	}

	return &PointImpl{
		inner: new(edwards25519.Point).Add(p.inner, pp.inner),
	}
}

func (p *PointImpl) Sub(b Point) Point {
	pp, ok := b.(*PointImpl)
	if !ok {
		panic("invalid point; type is not *ed25519.PointImpl")
	}

	return &PointImpl{
		inner: new(edwards25519.Point).Subtract(p.inner, pp.inner),
	}
}

func (p *PointImpl) ScalarMul(s Scalar) Point {
	ss, ok := s.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *ed25519.ScalarImpl")
	}

	return &PointImpl{
		inner: new(edwards25519.Point).ScalarMult(ss.inner, p.inner),
	}
}

func (p *PointImpl) Encode() []byte {
	return p.inner.Bytes()
}

func (p *PointImpl) IsIdentity() bool {
	return p.inner.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (p *PointImpl) Equals(other Point) bool {
	pp, ok := other.(*PointImpl)
	if !ok {
		panic("invalid point; type is not *ed25519.PointImpl")
	}

	return p.inner.Equal(pp.inner) == 1
}
