package ed25519

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/athanorlabs/go-blsag/types"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestDecodeToPoint_RoundTrip(t *testing.T) {
	curve := NewCurve()
	p := curve.ScalarBaseMul(curve.NewRandomScalar())

	q, err := curve.DecodeToPoint(p.Encode())
	require.NoError(t, err)
	require.True(t, p.Equals(q))
}

func TestDecodeToPoint_WrongLength(t *testing.T) {
	curve := NewCurve()

	_, err := curve.DecodeToPoint(make([]byte, 31))
	require.ErrorIs(t, err, types.ErrDecoding)
	_, err = curve.DecodeToPoint(make([]byte, 33))
	require.ErrorIs(t, err, types.ErrDecoding)
}

func TestDecodeToPoint_RejectsTorsion(t *testing.T) {
	curve := NewCurve()

	// canonical encodings of small-order points outside the prime-order
	// subgroup: y=0 has order 4, y=-1 has order 2
	torsion := []string{
		"0000000000000000000000000000000000000000000000000000000000000000",
		"ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
		"c7176a703d4dd84fba3c0b760d10670f2a2053fa2c39ccc64ec7fd7792ac037a",
	}

	for _, enc := range torsion {
		_, err := curve.DecodeToPoint(mustHex(t, enc))
		require.ErrorIs(t, err, types.ErrDecoding, "encoding %s", enc)
	}
}

func TestDecodeToPoint_IdentityDecodes(t *testing.T) {
	curve := NewCurve()

	// the identity is in the subgroup and decodes; rejection happens where
	// a key or image is expected
	p, err := curve.DecodeToPoint(mustHex(t,
		"0100000000000000000000000000000000000000000000000000000000000000"))
	require.NoError(t, err)
	require.True(t, p.IsIdentity())
}

func TestDecodeToScalar_NonCanonical(t *testing.T) {
	curve := NewCurve()

	// the group order itself, little-endian: not reduced
	order := mustHex(t, "edd3f55c1a631258d69cf7a2def9de1400000000000000000000000000000010")
	_, err := curve.DecodeToScalar(order)
	require.ErrorIs(t, err, types.ErrInvalidScalar)

	overflow := make([]byte, 32)
	for i := range overflow {
		overflow[i] = 0xff
	}
	_, err = curve.DecodeToScalar(overflow)
	require.ErrorIs(t, err, types.ErrInvalidScalar)

	_, err = curve.DecodeToScalar(make([]byte, 16))
	require.ErrorIs(t, err, types.ErrDecoding)
}

func TestScalarArithmetic(t *testing.T) {
	curve := NewCurve()

	a := curve.NewRandomScalar()
	b := curve.NewRandomScalar()

	require.True(t, a.Add(b).Sub(b).Eq(a))
	require.True(t, a.Add(a.Negate()).IsZero())

	inv, err := b.Inverse()
	require.NoError(t, err)
	require.True(t, b.Mul(inv).Eq(curve.ScalarFrom(1)))

	_, err = curve.ScalarFrom(0).Inverse()
	require.ErrorIs(t, err, types.ErrInvalidScalar)
}

func TestScalar_Zeroize(t *testing.T) {
	curve := NewCurve()

	s := curve.NewRandomScalar()
	require.False(t, s.IsZero())
	s.Zeroize()
	require.True(t, s.IsZero())
}

func TestScalar_EncodeRoundTrip(t *testing.T) {
	curve := NewCurve()

	s := curve.NewRandomScalar()
	decoded, err := curve.DecodeToScalar(s.Encode())
	require.NoError(t, err)
	require.True(t, s.Eq(decoded))
}

func TestHashToPoint_Deterministic(t *testing.T) {
	curve := NewCurve()

	p1, err := curve.HashToPoint([]byte("input"))
	require.NoError(t, err)
	p2, err := curve.HashToPoint([]byte("input"))
	require.NoError(t, err)
	require.True(t, p1.Equals(p2))
	require.False(t, p1.IsIdentity())

	p3, err := curve.HashToPoint([]byte("other input"))
	require.NoError(t, err)
	require.False(t, p1.Equals(p3))
}

func TestPointArithmetic(t *testing.T) {
	curve := NewCurve()

	a := curve.NewRandomScalar()
	b := curve.NewRandomScalar()

	// (a+b)G == aG + bG
	sum := curve.ScalarBaseMul(a.Add(b))
	require.True(t, sum.Equals(curve.ScalarBaseMul(a).Add(curve.ScalarBaseMul(b))))

	// a(bG) == b(aG)
	ab := curve.ScalarMul(a, curve.ScalarBaseMul(b))
	ba := curve.ScalarMul(b, curve.ScalarBaseMul(a))
	require.True(t, ab.Equals(ba))

	// P - P == identity
	p := curve.ScalarBaseMul(a)
	require.True(t, p.Sub(p).IsIdentity())
}
