// Package secp256k1 implements the curve interface over secp256k1 using the
// decred backend. The group has cofactor 1, so every valid point is in the
// prime-order subgroup. Point arithmetic here is variable-time; prefer the
// ed25519 backend when timing side-channels are in scope.
package secp256k1

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/athanorlabs/go-blsag/types"
	"golang.org/x/crypto/sha3"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

type Curve = types.Curve
type Point = types.Point
type Scalar = types.Scalar

var _ Curve = &CurveImpl{}
var _ Scalar = &ScalarImpl{}
var _ Point = &PointImpl{}

const maxHashToPointTries = 256

type CurveImpl struct{}

func NewCurve() Curve {
	return &CurveImpl{}
}

func (c *CurveImpl) BasePoint() Point {
	one := new(secp256k1.ModNScalar).SetInt(1)
	p := &secp256k1.JacobianPoint{}
	secp256k1.ScalarBaseMultNonConst(one, p)
	return &PointImpl{
		inner: p,
	}
}

func (c *CurveImpl) ScalarSize() int {
	return 32
}

func (c *CurveImpl) CompressedPointSize() int {
	return 33
}

func (c *CurveImpl) NewRandomScalar() Scalar {
	var b [64]byte
	_, err := rand.Read(b[:])
	if err != nil {
		panic(err)
	}

	return c.ScalarFromUniformBytes(b)
}

// ScalarFromUniformBytes interprets b as a big-endian integer and reduces it
// modulo the group order.
func (c *CurveImpl) ScalarFromUniformBytes(b [64]byte) Scalar {
	v := new(big.Int).SetBytes(b[:])
	v.Mod(v, secp256k1.S256().N)

	var canonical [32]byte
	v.FillBytes(canonical[:])

	s := &secp256k1.ModNScalar{}
	s.SetBytes(&canonical)
	return &ScalarImpl{
		inner: s,
	}
}

func (c *CurveImpl) ScalarFrom(in uint32) Scalar {
	return &ScalarImpl{
		inner: new(secp256k1.ModNScalar).SetInt(in),
	}
}

// HashToScalar maps arbitrary input to a scalar by hashing with SHA3-512
// and reducing the digest modulo the group order.
func (c *CurveImpl) HashToScalar(in []byte) (Scalar, error) {
	h := sha3.Sum512(in)
	return c.ScalarFromUniformBytes(h), nil
}

// HashToPoint deterministically maps the input to a curve point with no
// known discrete log relative to the base point, by walking a SHA3-256
// chain over the input and interpreting each digest as a candidate
// compressed x coordinate.
func (c *CurveImpl) HashToPoint(in []byte) (Point, error) {
	candidate := sha3.Sum256(in)

	for i := 0; i < maxHashToPointTries; i++ {
		enc := make([]byte, 0, 33)
		enc = append(enc, 0x02)
		enc = append(enc, candidate[:]...)

		pub, err := secp256k1.ParsePubKey(enc)
		if err == nil {
			p := &secp256k1.JacobianPoint{}
			pub.AsJacobian(p)
			return &PointImpl{inner: p}, nil
		}

		candidate = sha3.Sum256(candidate[:])
	}

	return nil, fmt.Errorf("no curve point found after %d candidates", maxHashToPointTries)
}

func (c *CurveImpl) ScalarBaseMul(s Scalar) Point {
	ss, ok := s.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *secp256k1.ScalarImpl")
	}

	p := &secp256k1.JacobianPoint{}
	secp256k1.ScalarBaseMultNonConst(ss.inner, p)
	return &PointImpl{
		inner: p,
	}
}

func (c *CurveImpl) ScalarMul(s Scalar, p Point) Point {
	ss, ok := s.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *secp256k1.ScalarImpl")
	}

	pp, ok := p.(*PointImpl)
	if !ok {
		panic("invalid point; type is not *secp256k1.PointImpl")
	}

	r := &secp256k1.JacobianPoint{}
	secp256k1.ScalarMultNonConst(ss.inner, pp.inner, r)
	return &PointImpl{
		inner: r,
	}
}

// DecodeToScalar decodes a canonical big-endian scalar. Encodings of values
// not reduced modulo the group order are rejected.
func (c *CurveImpl) DecodeToScalar(in []byte) (Scalar, error) {
	if len(in) != 32 {
		return nil, fmt.Errorf("%w: expected 32 bytes, got %d", types.ErrDecoding, len(in))
	}

	s := &secp256k1.ModNScalar{}
	if overflow := s.SetByteSlice(in); overflow {
		return nil, fmt.Errorf("%w: scalar not reduced", types.ErrInvalidScalar)
	}

	return &ScalarImpl{
		inner: s,
	}, nil
}

// DecodeToPoint decodes a 33-byte compressed point. The cofactor is 1, so no
// subgroup check is needed beyond on-curve validation.
func (c *CurveImpl) DecodeToPoint(in []byte) (Point, error) {
	if len(in) != 33 {
		return nil, fmt.Errorf("%w: expected 33 bytes, got %d", types.ErrDecoding, len(in))
	}

	pub, err := secp256k1.ParsePubKey(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrDecoding, err)
	}

	p := &secp256k1.JacobianPoint{}
	pub.AsJacobian(p)
	return &PointImpl{
		inner: p,
	}, nil
}

type ScalarImpl struct {
	inner *secp256k1.ModNScalar
}

func (s *ScalarImpl) Add(b Scalar) Scalar {
	ss, ok := b.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *secp256k1.ScalarImpl")
	}

	r := new(secp256k1.ModNScalar).Set(s.inner)
	r.Add(ss.inner)
	return &ScalarImpl{
		inner: r,
	}
}

func (s *ScalarImpl) Sub(b Scalar) Scalar {
	ss, ok := b.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *secp256k1.ScalarImpl")
	}

	neg := new(secp256k1.ModNScalar).Set(ss.inner)
	neg.Negate()
	r := new(secp256k1.ModNScalar).Set(s.inner)
	r.Add(neg)
	return &ScalarImpl{
		inner: r,
	}
}

func (s *ScalarImpl) Negate() Scalar {
	r := new(secp256k1.ModNScalar).Set(s.inner)
	r.Negate()
	return &ScalarImpl{
		inner: r,
	}
}

func (s *ScalarImpl) Mul(b Scalar) Scalar {
	ss, ok := b.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *secp256k1.ScalarImpl")
	}

	r := new(secp256k1.ModNScalar).Set(s.inner)
	r.Mul(ss.inner)
	return &ScalarImpl{
		inner: r,
	}
}

func (s *ScalarImpl) Inverse() (Scalar, error) {
	if s.IsZero() {
		return nil, fmt.Errorf("%w: inversion of zero", types.ErrInvalidScalar)
	}

	r := new(secp256k1.ModNScalar).InverseValNonConst(s.inner)
	return &ScalarImpl{
		inner: r,
	}, nil
}

func (s *ScalarImpl) Encode() []byte {
	b := s.inner.Bytes()
	return b[:]
}

func (s *ScalarImpl) Eq(b Scalar) bool {
	ss, ok := b.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *secp256k1.ScalarImpl")
	}
	return s.inner.Equals(ss.inner)
}

func (s *ScalarImpl) IsZero() bool {
	return s.inner.IsZero()
}

func (s *ScalarImpl) Zeroize() {
	s.inner.Zero()
}

type PointImpl struct {
	inner *secp256k1.JacobianPoint
}

// affine returns a normalized affine copy of the point.
func (p *PointImpl) affine() *secp256k1.JacobianPoint {
	r := &secp256k1.JacobianPoint{}
	r.Set(p.inner)
	r.ToAffine()
	return r
}

func (p *PointImpl) Copy() Point {
	r := &secp256k1.JacobianPoint{}
	r.Set(p.inner)
	return &PointImpl{
		inner: r,
	}
}

func (p *PointImpl) Add(b Point) Point {
	pp, ok := b.(*PointImpl)
	if !ok {
		panic("invalid point; type is not *secp256k1.PointImpl")
	}

	r := &secp256k1.JacobianPoint{}
	secp256k1.AddNonConst(p.inner, pp.inner, r)
	return &PointImpl{
		inner: r,
	}
}

func (p *PointImpl) Sub(b Point) Point {
	pp, ok := b.(*PointImpl)
	if !ok {
		panic("invalid point; type is not *secp256k1.PointImpl")
	}

	if pp.IsIdentity() {
		return p.Copy()
	}

	// negate on a normalized affine copy so the magnitude precondition of
	// FieldVal.Negate holds
	neg := pp.affine()
	neg.Y.Negate(1)
	neg.Y.Normalize()

	r := &secp256k1.JacobianPoint{}
	secp256k1.AddNonConst(p.inner, neg, r)
	return &PointImpl{
		inner: r,
	}
}

func (p *PointImpl) ScalarMul(s Scalar) Point {
	ss, ok := s.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *secp256k1.ScalarImpl")
	}

	r := &secp256k1.JacobianPoint{}
	secp256k1.ScalarMultNonConst(ss.inner, p.inner, r)
	return &PointImpl{
		inner: r,
	}
}

// Encode returns the 33-byte compressed encoding. The identity has no
// compressed form; it encodes as 33 zero bytes, which no decoder accepts.
func (p *PointImpl) Encode() []byte {
	if p.IsIdentity() {
		return make([]byte, 33)
	}

	a := p.affine()
	return secp256k1.NewPublicKey(&a.X, &a.Y).SerializeCompressed()
}

func (p *PointImpl) IsIdentity() bool {
	return (p.inner.X.IsZero() && p.inner.Y.IsZero()) || p.inner.Z.IsZero()
}

func (p *PointImpl) Equals(other Point) bool {
	pp, ok := other.(*PointImpl)
	if !ok {
		panic("invalid point; type is not *secp256k1.PointImpl")
	}

	if p.IsIdentity() || pp.IsIdentity() {
		return p.IsIdentity() && pp.IsIdentity()
	}

	a, b := p.affine(), pp.affine()
	return a.X.Equals(&b.X) && a.Y.Equals(&b.Y)
}
