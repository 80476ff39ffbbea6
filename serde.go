package blsag

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Serialize encodes the signature as
// keyImage || c0 || count(uint32 LE) || responses, using the curve's
// fixed-width canonical layouts.
func (s *Signature) Serialize() []byte {
	b := append([]byte{}, s.KeyImage.Encode()...)
	b = append(b, s.C0.Encode()...)

	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(len(s.Responses)))
	b = append(b, count[:]...)

	for _, r := range s.Responses {
		b = append(b, r.Encode()...)
	}
	return b
}

// Deserialize decodes the signature for the given curve. The curve must
// match the one used to produce the encoding. All scalars and points are
// validated: non-canonical or off-subgroup input fails, as does an identity
// key image.
func (s *Signature) Deserialize(curve Curve, in []byte) error {
	reader := bytes.NewBuffer(in)

	pointLen := curve.CompressedPointSize()
	scalarLen := curve.ScalarSize()

	if len(in) < pointLen+scalarLen+4 {
		return errInputBytesTooShort
	}

	keyImage, err := curve.DecodeToPoint(reader.Next(pointLen))
	if err != nil {
		return err
	}
	if keyImage.IsIdentity() {
		return fmt.Errorf("%w: key image", ErrIdentityElement)
	}

	c0, err := curve.DecodeToScalar(reader.Next(scalarLen))
	if err != nil {
		return err
	}

	count := binary.LittleEndian.Uint32(reader.Next(4))
	if count == 0 {
		return fmt.Errorf("%w: empty response vector", ErrDecoding)
	}
	// compare in uint64 so an oversized count cannot wrap on 32-bit platforms
	if uint64(count)*uint64(scalarLen) > uint64(reader.Len()) {
		return errInputBytesTooShort
	}

	responses := make([]Scalar, count)
	for i := range responses {
		responses[i], err = curve.DecodeToScalar(reader.Next(scalarLen))
		if err != nil {
			return err
		}
	}

	s.KeyImage = keyImage
	s.C0 = c0
	s.Responses = responses
	return nil
}
