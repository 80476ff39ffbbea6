package blsag

import "encoding/binary"

// Domain-separation tags. A challenge hash and a key-image base-point hash
// of the same bytes must never collide.
const (
	challengeTag = "go-blsag/challenge/v1"
	keyImageTag  = "go-blsag/keyimage/v1"
)

// hashToScalar length-prefixes each part, concatenates them after the
// domain tag, and reduces the digest to a scalar. The framing keeps
// variable-length parts from shifting bytes across part boundaries. Every
// Fiat-Shamir challenge goes through here.
func hashToScalar(curve Curve, tag string, parts ...[]byte) (Scalar, error) {
	preimage := []byte(tag)
	for _, part := range parts {
		var n [8]byte
		binary.LittleEndian.PutUint64(n[:], uint64(len(part)))
		preimage = append(preimage, n[:]...)
		preimage = append(preimage, part...)
	}

	return curve.HashToScalar(preimage)
}

// hashToPoint maps a public key to the second base point used for key
// images. The result has no known scalar relation to the standard base
// point, which is what prevents forged or correlated key images.
func hashToPoint(curve Curve, pub Point) (Point, error) {
	return curve.HashToPoint(append([]byte(keyImageTag), pub.Encode()...))
}

// challenge computes one link of the challenge chain from the message, the
// ring transcript, and the two per-member points.
func challenge(curve Curve, msg, ringBytes []byte, l, r Point) (Scalar, error) {
	return hashToScalar(curve, challengeTag, msg, ringBytes, l.Encode(), r.Encode())
}
