package types

// Curve provides the scalar-field and group operations the signature
// protocol is written against. Implementations wrap a single numeric
// backend; the protocol layer never depends on a concrete backend.
//
// All methods are pure and safe for concurrent use.
type Curve interface {
	BasePoint() Point
	ScalarSize() int
	CompressedPointSize() int
	NewRandomScalar() Scalar
	ScalarFromUniformBytes([64]byte) Scalar
	ScalarFrom(uint32) Scalar
	HashToScalar([]byte) (Scalar, error)
	HashToPoint([]byte) (Point, error)
	ScalarBaseMul(Scalar) Point
	ScalarMul(Scalar, Point) Point
	DecodeToScalar([]byte) (Scalar, error)
	DecodeToPoint([]byte) (Point, error)
}

// Scalar is an integer modulo the group order, always held in reduced form.
// Operations return fresh scalars and never mutate their receiver, except
// Zeroize, which overwrites the receiver in place.
type Scalar interface {
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Negate() Scalar
	Mul(Scalar) Scalar
	Inverse() (Scalar, error)
	Encode() []byte
	Eq(Scalar) bool
	IsZero() bool
	Zeroize()
}

// Point is an element of the prime-order subgroup of the curve.
// Equals must run in constant time, since points may be compared against
// secret-derived values.
type Point interface {
	Copy() Point
	Add(Point) Point
	Sub(Point) Point
	ScalarMul(Scalar) Point
	Encode() []byte
	IsIdentity() bool
	Equals(Point) bool
}
