package blsag

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/athanorlabs/go-blsag/ed25519"
	"github.com/athanorlabs/go-blsag/kyber25519"
	"github.com/athanorlabs/go-blsag/secp256k1"
)

// testRand returns a deterministic randomness stream for reproducible
// signatures in tests. Production signing must use crypto/rand.
func testRand(seed string) io.Reader {
	h := sha3.NewShake256()
	_, _ = h.Write([]byte(seed))
	return h
}

func testCurves() map[string]Curve {
	return map[string]Curve{
		"ed25519":    ed25519.NewCurve(),
		"kyber25519": kyber25519.NewCurve(),
		"secp256k1":  secp256k1.NewCurve(),
	}
}

// testRing builds a ring of n fresh keys with the signer at signerIndex.
func testRing(t *testing.T, curve Curve, n, signerIndex int) (Ring, *KeyPair) {
	t.Helper()

	ring := make(Ring, n)
	var signer *KeyPair
	for i := range ring {
		kp, err := GenerateKeyPair(curve, nil)
		require.NoError(t, err)
		ring[i] = kp.Public()
		if i == signerIndex {
			signer = kp
		}
	}
	return ring, signer
}

func TestSignAndVerify(t *testing.T) {
	msg := []byte("spend output deadbeef")

	for name, curve := range testCurves() {
		t.Run(name, func(t *testing.T) {
			for _, n := range []int{1, 2, 3, 8} {
				signerIndex := n / 2
				ring, signer := testRing(t, curve, n, signerIndex)

				sig, err := Sign(curve, ring, signerIndex, signer.Secret(), msg, nil)
				require.NoError(t, err)
				require.Equal(t, n, len(sig.Responses))

				err = Verify(curve, ring, msg, sig)
				require.NoError(t, err)
			}
		})
	}
}

func TestSignAndVerify_RingOfOne(t *testing.T) {
	// Degenerate but valid: one public key, signer index 0.
	curve := ed25519.NewCurve()
	ring, signer := testRing(t, curve, 1, 0)

	sig, err := Sign(curve, ring, 0, signer.Secret(), []byte("solo"), nil)
	require.NoError(t, err)
	require.NoError(t, Verify(curve, ring, []byte("solo"), sig))
}

func TestSign_EmptyRing(t *testing.T) {
	curve := ed25519.NewCurve()
	kp, err := GenerateKeyPair(curve, nil)
	require.NoError(t, err)

	_, err = Sign(curve, nil, 0, kp.Secret(), []byte("msg"), nil)
	require.ErrorIs(t, err, ErrRingTooShort)
}

func TestSign_IndexOutOfRange(t *testing.T) {
	curve := ed25519.NewCurve()
	ring, signer := testRing(t, curve, 3, 0)

	_, err := Sign(curve, ring, 3, signer.Secret(), []byte("msg"), nil)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = Sign(curve, ring, -1, signer.Secret(), []byte("msg"), nil)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSign_SecretNotInRing(t *testing.T) {
	curve := ed25519.NewCurve()
	ring, _ := testRing(t, curve, 3, 0)

	other, err := GenerateKeyPair(curve, nil)
	require.NoError(t, err)

	_, err = Sign(curve, ring, 0, other.Secret(), []byte("msg"), nil)
	require.ErrorIs(t, err, ErrNotInRing)
}

func TestVerify_EmptyRing(t *testing.T) {
	curve := ed25519.NewCurve()
	ring, signer := testRing(t, curve, 2, 0)

	sig, err := Sign(curve, ring, 0, signer.Secret(), []byte("msg"), nil)
	require.NoError(t, err)

	err = Verify(curve, nil, []byte("msg"), sig)
	require.ErrorIs(t, err, ErrRingTooShort)
}

func TestVerify_MessageTampered(t *testing.T) {
	for name, curve := range testCurves() {
		t.Run(name, func(t *testing.T) {
			ring, signer := testRing(t, curve, 4, 1)
			msg := []byte("original message")

			sig, err := Sign(curve, ring, 1, signer.Secret(), msg, nil)
			require.NoError(t, err)

			tampered := append([]byte{}, msg...)
			tampered[0] ^= 0x01
			err = Verify(curve, ring, tampered, sig)
			require.ErrorIs(t, err, ErrClosureMismatch)
		})
	}
}

func TestVerify_ResponseTampered(t *testing.T) {
	curve := ed25519.NewCurve()
	ring, signer := testRing(t, curve, 4, 2)
	msg := []byte("msg")

	sig, err := Sign(curve, ring, 2, signer.Secret(), msg, nil)
	require.NoError(t, err)

	one := curve.ScalarFrom(1)
	for i := range sig.Responses {
		orig := sig.Responses[i]
		sig.Responses[i] = orig.Add(one)
		require.ErrorIs(t, Verify(curve, ring, msg, sig), ErrClosureMismatch)
		sig.Responses[i] = orig
	}

	// restored signature still verifies
	require.NoError(t, Verify(curve, ring, msg, sig))
}

func TestVerify_ChallengeTampered(t *testing.T) {
	curve := ed25519.NewCurve()
	ring, signer := testRing(t, curve, 3, 0)
	msg := []byte("msg")

	sig, err := Sign(curve, ring, 0, signer.Secret(), msg, nil)
	require.NoError(t, err)

	sig.C0 = sig.C0.Add(curve.ScalarFrom(1))
	require.ErrorIs(t, Verify(curve, ring, msg, sig), ErrClosureMismatch)
}

func TestVerify_KeyImageSubstituted(t *testing.T) {
	curve := ed25519.NewCurve()
	ring, signer := testRing(t, curve, 3, 0)
	msg := []byte("msg")

	sig, err := Sign(curve, ring, 0, signer.Secret(), msg, nil)
	require.NoError(t, err)

	other, err := GenerateKeyPair(curve, nil)
	require.NoError(t, err)
	sig.KeyImage, err = DeriveKeyImage(curve, other.Secret(), other.Public())
	require.NoError(t, err)

	require.ErrorIs(t, Verify(curve, ring, msg, sig), ErrClosureMismatch)
}

func TestVerify_IdentityKeyImage(t *testing.T) {
	for name, curve := range testCurves() {
		t.Run(name, func(t *testing.T) {
			ring, signer := testRing(t, curve, 3, 0)
			msg := []byte("msg")

			sig, err := Sign(curve, ring, 0, signer.Secret(), msg, nil)
			require.NoError(t, err)

			sig.KeyImage = sig.KeyImage.Sub(sig.KeyImage)
			require.True(t, sig.KeyImage.IsIdentity())
			require.ErrorIs(t, Verify(curve, ring, msg, sig), ErrIdentityElement)
		})
	}
}

func TestVerify_ResponseCountMismatch(t *testing.T) {
	curve := ed25519.NewCurve()
	ring, signer := testRing(t, curve, 3, 0)
	msg := []byte("msg")

	sig, err := Sign(curve, ring, 0, signer.Secret(), msg, nil)
	require.NoError(t, err)

	sig.Responses = sig.Responses[:2]
	require.ErrorIs(t, Verify(curve, ring, msg, sig), ErrDecoding)
}

func TestDeriveKeyImage_Deterministic(t *testing.T) {
	for name, curve := range testCurves() {
		t.Run(name, func(t *testing.T) {
			kp, err := GenerateKeyPair(curve, nil)
			require.NoError(t, err)

			img1, err := DeriveKeyImage(curve, kp.Secret(), kp.Public())
			require.NoError(t, err)
			img2, err := DeriveKeyImage(curve, kp.Secret(), kp.Public())
			require.NoError(t, err)

			require.Equal(t, img1.Encode(), img2.Encode())
		})
	}
}

func TestDeriveKeyImage_RejectsZeroSecret(t *testing.T) {
	curve := ed25519.NewCurve()
	kp, err := GenerateKeyPair(curve, nil)
	require.NoError(t, err)

	_, err = DeriveKeyImage(curve, curve.ScalarFrom(0), kp.Public())
	require.ErrorIs(t, err, ErrInvalidScalar)
}

func TestLinked_SameKeyAcrossRingsAndMessages(t *testing.T) {
	curve := ed25519.NewCurve()

	signer, err := GenerateKeyPair(curve, nil)
	require.NoError(t, err)

	makeRing := func(n, at int) Ring {
		ring, _ := testRing(t, curve, n, -1)
		ring[at] = signer.Public()
		return ring
	}

	ringA := makeRing(3, 0)
	ringB := makeRing(5, 4)

	sigA, err := Sign(curve, ringA, 0, signer.Secret(), []byte("first"), nil)
	require.NoError(t, err)
	sigB, err := Sign(curve, ringB, 4, signer.Secret(), []byte("second"), nil)
	require.NoError(t, err)

	require.NoError(t, Verify(curve, ringA, []byte("first"), sigA))
	require.NoError(t, Verify(curve, ringB, []byte("second"), sigB))
	require.True(t, Linked(sigA, sigB))
}

func TestLinked_DistinctKeys(t *testing.T) {
	curve := ed25519.NewCurve()
	ring, signerA := testRing(t, curve, 3, 0)

	kpB, err := NewKeyPairFromSecret(curve, curve.ScalarFrom(0xbeef))
	require.NoError(t, err)
	ring[1] = kpB.Public()

	sigA, err := Sign(curve, ring, 0, signerA.Secret(), []byte("msg"), nil)
	require.NoError(t, err)
	sigB, err := Sign(curve, ring, 1, kpB.Secret(), []byte("msg"), nil)
	require.NoError(t, err)

	require.False(t, Linked(sigA, sigB))
}

func TestRing_HasDuplicates(t *testing.T) {
	curve := ed25519.NewCurve()
	ring, _ := testRing(t, curve, 3, 0)
	require.False(t, ring.HasDuplicates())

	ring = append(ring, ring[0].Copy())
	require.True(t, ring.HasDuplicates())
}

func TestSign_DeterministicWithFixedRand(t *testing.T) {
	curve := ed25519.NewCurve()

	var secretBytes [64]byte
	_, err := io.ReadFull(testRand("secret"), secretBytes[:])
	require.NoError(t, err)
	secret := curve.ScalarFromUniformBytes(secretBytes)

	ring := Ring{curve.ScalarBaseMul(secret), curve.ScalarBaseMul(curve.ScalarFrom(7))}

	sig1, err := Sign(curve, ring, 0, secret, []byte("msg"), testRand("alpha"))
	require.NoError(t, err)
	sig2, err := Sign(curve, ring, 0, secret, []byte("msg"), testRand("alpha"))
	require.NoError(t, err)

	require.Equal(t, sig1.Serialize(), sig2.Serialize())
}
