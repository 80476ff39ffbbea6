// Package kyber25519 implements the curve interface over the edwards25519
// prime-order subgroup using the pure-Go kyber suite. This is the "portable"
// backend: it compiles and runs on restricted execution targets, and it
// produces byte-identical outputs to the ed25519 backend for identical
// inputs.
package kyber25519

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/athanorlabs/go-blsag/types"
	"golang.org/x/crypto/sha3"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/edwards25519"
)

type Curve = types.Curve
type Point = types.Point
type Scalar = types.Scalar

var _ Curve = &CurveImpl{}
var _ Scalar = &ScalarImpl{}
var _ Point = &PointImpl{}

const maxHashToPointTries = 256

var (
	suite = edwards25519.NewBlakeSHA256Ed25519()

	// groupOrder is l = 2^252 + 27742317777372353535851937790883648493.
	groupOrder, _ = new(big.Int).SetString(
		"7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

	scEight    = suite.Scalar().SetInt64(8)
	scInvEight = suite.Scalar().Inv(suite.Scalar().SetInt64(8))
)

// scalarFromCanonicalLE builds a scalar from 32 canonical little-endian
// bytes. The value must already be reduced modulo the group order.
func scalarFromCanonicalLE(b []byte) kyber.Scalar {
	s := suite.Scalar()
	if err := s.UnmarshalBinary(b); err != nil {
		panic(err)
	}
	return s
}

// reduceUniform interprets b as a little-endian integer and reduces it
// modulo the group order, matching the full backend's wide reduction.
func reduceUniform(b []byte) kyber.Scalar {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}

	v := new(big.Int).SetBytes(be)
	v.Mod(v, groupOrder)

	canonical := make([]byte, 32)
	vb := v.Bytes()
	for i := range vb {
		canonical[i] = vb[len(vb)-1-i]
	}

	return scalarFromCanonicalLE(canonical)
}

type CurveImpl struct{}

func NewCurve() Curve {
	return &CurveImpl{}
}

func (c *CurveImpl) BasePoint() Point {
	return &PointImpl{
		inner: suite.Point().Base(),
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
	return &ScalarImpl{
		inner: reduceUniform(b[:]),
	}
}

func (c *CurveImpl) ScalarFrom(in uint32) Scalar {
	return &ScalarImpl{
		inner: suite.Scalar().SetInt64(int64(in)),
	}
}

// HashToScalar maps arbitrary input to a scalar by hashing with SHA3-512
// and reducing the digest modulo the group order.
func (c *CurveImpl) HashToScalar(in []byte) (Scalar, error) {
	h := sha3.Sum512(in)
	return &ScalarImpl{
		inner: reduceUniform(h[:]),
	}, nil
}

// HashToPoint deterministically maps the input to a point in the prime-order
// subgroup. The candidate chain and cofactor clearing mirror the ed25519
// backend exactly so both backends derive the same point.
func (c *CurveImpl) HashToPoint(in []byte) (Point, error) {
	candidate := sha3.Sum256(in)

	for i := 0; i < maxHashToPointTries; i++ {
		p := suite.Point()
		if err := p.UnmarshalBinary(candidate[:]); err == nil {
			p = suite.Point().Mul(scEight, p)
			if !p.Equal(suite.Point().Null()) {
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
		panic("invalid scalar; type is not *kyber25519.ScalarImpl")
	}

	return &PointImpl{
		inner: suite.Point().Mul(ss.inner, nil),
	}
}

func (c *CurveImpl) ScalarMul(s Scalar, p Point) Point {
	ss, ok := s.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *kyber25519.ScalarImpl")
	}

	pp, ok := p.(*PointImpl)
	if !ok {
		panic("invalid point; type is not *kyber25519.PointImpl")
	}

	return &PointImpl{
		inner: suite.Point().Mul(ss.inner, pp.inner),
	}
}

// DecodeToScalar decodes a canonical little-endian scalar. Encodings of
// values not reduced modulo the group order are rejected.
func (c *CurveImpl) DecodeToScalar(in []byte) (Scalar, error) {
	if len(in) != 32 {
		return nil, fmt.Errorf("%w: expected 32 bytes, got %d", types.ErrDecoding, len(in))
	}

	be := make([]byte, 32)
	for i := range in {
		be[31-i] = in[i]
	}
	if new(big.Int).SetBytes(be).Cmp(groupOrder) >= 0 {
		return nil, fmt.Errorf("%w: scalar not reduced", types.ErrInvalidScalar)
	}

	return &ScalarImpl{
		inner: scalarFromCanonicalLE(in),
	}, nil
}

// DecodeToPoint decodes a compressed point, rejecting non-canonical
// encodings and points outside the prime-order subgroup.
func (c *CurveImpl) DecodeToPoint(in []byte) (Point, error) {
	if len(in) != 32 {
		return nil, fmt.Errorf("%w: expected 32 bytes, got %d", types.ErrDecoding, len(in))
	}

	p := suite.Point()
	if err := p.UnmarshalBinary(in); err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrDecoding, err)
	}

	enc, err := p.MarshalBinary()
	if err != nil {
		panic(err)
	}
	for i := range enc {
		if enc[i] != in[i] {
			return nil, fmt.Errorf("%w: non-canonical point encoding", types.ErrDecoding)
		}
	}

	// Torsion-free iff cofactor multiplication followed by its inverse
	// modulo the group order round-trips.
	q := suite.Point().Mul(scEight, p)
	q = suite.Point().Mul(scInvEight, q)
	if !q.Equal(p) {
		return nil, fmt.Errorf("%w: point not in prime-order subgroup", types.ErrDecoding)
	}

	return &PointImpl{
		inner: p,
	}, nil
}

type ScalarImpl struct {
	inner kyber.Scalar
}

func (s *ScalarImpl) Add(b Scalar) Scalar {
	ss, ok := b.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *kyber25519.ScalarImpl")
	}

	return &ScalarImpl{
		inner: suite.Scalar().Add(s.inner, ss.inner),
	}
}

func (s *ScalarImpl) Sub(b Scalar) Scalar {
	ss, ok := b.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *kyber25519.ScalarImpl")
	}

	return &ScalarImpl{
		inner: suite.Scalar().Sub(s.inner, ss.inner),
	}
}

func (s *ScalarImpl) Negate() Scalar {
	return &ScalarImpl{
		inner: suite.Scalar().Neg(s.inner),
	}
}

func (s *ScalarImpl) Mul(b Scalar) Scalar {
	ss, ok := b.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *kyber25519.ScalarImpl")
	}

	return &ScalarImpl{
		inner: suite.Scalar().Mul(s.inner, ss.inner),
	}
}

func (s *ScalarImpl) Inverse() (Scalar, error) {
	if s.IsZero() {
		return nil, fmt.Errorf("%w: inversion of zero", types.ErrInvalidScalar)
	}

	return &ScalarImpl{
		inner: suite.Scalar().Inv(s.inner),
	}, nil
}

func (s *ScalarImpl) Encode() []byte {
	b, err := s.inner.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return b
}

func (s *ScalarImpl) Eq(b Scalar) bool {
	ss, ok := b.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *kyber25519.ScalarImpl")
	}
	return s.inner.Equal(ss.inner)
}

func (s *ScalarImpl) IsZero() bool {
	return s.inner.Equal(suite.Scalar().Zero())
}

func (s *ScalarImpl) Zeroize() {
	s.inner.Zero()
}

type PointImpl struct {
	inner kyber.Point
}

func (p *PointImpl) Copy() Point {
	return &PointImpl{
		inner: p.inner.Clone(),
	}
}

func (p *PointImpl) Add(b Point) Point {
	pp, ok := b.(*PointImpl)
	if !ok {
		panic("invalid point; type is not *kyber25519.PointImpl")
	}

	return &PointImpl{
		inner: suite.Point().Add(p.inner, pp.inner),
	}
}

func (p *PointImpl) Sub(b Point) Point {
	pp, ok := b.(*PointImpl)
	if !ok {
		panic("invalid point; type is not *kyber25519.PointImpl")
	}

	return &PointImpl{
		inner: suite.Point().Sub(p.inner, pp.inner),
	}
}

func (p *PointImpl) ScalarMul(s Scalar) Point {
	ss, ok := s.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *kyber25519.ScalarImpl")
	}

	return &PointImpl{
		inner: suite.Point().Mul(ss.inner, p.inner),
	}
}

func (p *PointImpl) Encode() []byte {
	b, err := p.inner.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return b
}

func (p *PointImpl) IsIdentity() bool {
	return p.inner.Equal(suite.Point().Null())
}

func (p *PointImpl) Equals(other Point) bool {
	pp, ok := other.(*PointImpl)
	if !ok {
		panic("invalid point; type is not *kyber25519.PointImpl")
	}

	return p.inner.Equal(pp.inner)
}
