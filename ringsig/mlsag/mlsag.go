// Package mlsag implements MLSAG ("Multilayered Linkable Spontaneous
// Anonymous Group") ring signatures, CLSAG's two-layer predecessor.
//
// These signatures are essentially obsolete: CLSAG (see ringsig/clsag)
// is smaller and about as fast. This construction is kept for
// interoperability with systems that still use it.
package mlsag

import (
	"bytes"

	"github.com/concert/ringct"
	"github.com/concert/ringct/group"
	"github.com/concert/ringct/pedersen"
)

func createMessage(encodedRingL, encodedRingC [][]byte, pseudoOut ringct.Commitment, keyImage *group.Point, msg []byte) [32]byte {
	encoded := group.BatchEncodePoints([]*group.Point{pseudoOut.ToPoint(), keyImage})

	var all []byte
	all = append(all, msg...)
	for _, b := range encodedRingL {
		all = append(all, b...)
	}
	for _, b := range encodedRingC {
		all = append(all, b...)
	}
	for _, b := range encoded {
		all = append(all, b...)
	}
	return group.HashToBytes32(all, "")
}

// Signature is an MLSAG ring signature: a key image, a shared starting
// challenge e0, and a linking-layer and commitment-layer response
// scalar per ring slot.
type Signature struct {
	KeyImage *group.Point
	e0       *group.Scalar
	sL       []*group.Scalar
	sC       []*group.Scalar
}

// Sign creates a signature given a sorted ring, the private keys of
// one of its members, a fresh pseudo-output blinding factor, and a
// message. It returns the pseudo-output commitment and the signature.
func Sign(ring *ringct.Ring, enoteKeys ringct.EnoteKeys, pseudoOutBlinding *group.Scalar, msg []byte) (ringct.Commitment, *Signature, error) {
	ownersL, unshiftedC := ringct.SeparateRing(ring)
	encodedL, encodedC := ringct.EncodeRings(ownersL, unshiftedC)

	if !ring.IsSorted() {
		return ringct.Commitment{}, nil, ringct.ErrUnsortedRing
	}
	return signInternal(ring, ownersL, unshiftedC, encodedL, encodedC, enoteKeys, pseudoOutBlinding, msg)
}

// SignUnsorted is Sign without the canonical-ordering check.
func SignUnsorted(ring *ringct.Ring, enoteKeys ringct.EnoteKeys, pseudoOutBlinding *group.Scalar, msg []byte) (ringct.Commitment, *Signature, error) {
	ownersL, unshiftedC := ringct.SeparateRing(ring)
	encodedL, encodedC := ringct.EncodeRings(ownersL, unshiftedC)
	return signInternal(ring, ownersL, unshiftedC, encodedL, encodedC, enoteKeys, pseudoOutBlinding, msg)
}

// SignAndSort sorts ring in place and then signs it, slightly more
// efficient than sorting separately and then calling Sign, since the
// freshly sorted ring is not encoded a second time to re-check its
// order.
func SignAndSort(ring *ringct.Ring, enoteKeys ringct.EnoteKeys, pseudoOutBlinding *group.Scalar, msg []byte) (ringct.Commitment, *Signature, error) {
	ring.Sort()
	ownersL, unshiftedC := ringct.SeparateRing(ring)
	encodedL, encodedC := ringct.EncodeRings(ownersL, unshiftedC)
	return signInternal(ring, ownersL, unshiftedC, encodedL, encodedC, enoteKeys, pseudoOutBlinding, msg)
}

func signInternal(
	ring *ringct.Ring,
	ownersL, unshiftedC []*group.Point,
	encodedL, encodedC [][]byte,
	enoteKeys ringct.EnoteKeys,
	pseudoOutBlinding *group.Scalar,
	msg []byte,
) (ringct.Commitment, *Signature, error) {
	n := len(ring.Enotes)
	commitmentKey := enoteKeys.Blinding.Subtract(pseudoOutBlinding)
	pseudoOut := ringct.Commit(enoteKeys.Value, pseudoOutBlinding)
	ringC := ringct.ShiftCommitments(unshiftedC, pseudoOut)

	j := -1
	target := enoteKeys.ToEnote()
	for idx, e := range ring.Enotes {
		if e.Equal(target) {
			j = idx
			break
		}
	}
	if j < 0 {
		return ringct.Commitment{}, nil, ringct.ErrEnoteNotInRing
	}
	i := j

	keyImagePoints := ringct.KeyImagePoints(encodedL)
	keyImage := keyImagePoints[j].ScalarMult(enoteKeys.Owner)

	m := createMessage(encodedL, encodedC, pseudoOut, keyImage, msg)
	mBytes := m[:]

	seed := make([]byte, 0, 32+32+len(mBytes))
	seed = append(seed, enoteKeys.Owner.Bytes()...)
	seed = append(seed, pseudoOutBlinding.Bytes()...)
	seed = append(seed, mBytes...)

	// Fixed filler value seeding the scalar chain below; it never
	// appears in the signature.
	lastScalar := group.HashToScalar(mBytes, "mlsag_fill")

	sL := make([]*group.Scalar, n)
	for idx := 0; idx < n; idx++ {
		lastScalar = group.HashToScalar(append(lastScalar.Bytes(), seed...), "")
		sL[idx] = lastScalar
	}
	sC := make([]*group.Scalar, n)
	for idx := 0; idx < n; idx++ {
		lastScalar = group.HashToScalar(append(lastScalar.Bytes(), seed...), "")
		sC[idx] = lastScalar
	}

	left := group.ScalarBaseMult(sL[j])
	right := keyImagePoints[j].ScalarMult(sL[j])
	cStart := group.HashToScalar(append(lastScalar.Bytes(), seed...), "")
	ci := pedersen.G().ScalarMult(sC[i]).Subtract(ringC[i].ScalarMult(cStart))

	e := make([]*group.Scalar, n)
	for step := 0; step < n; step++ {
		i = (i + 1) % n

		encoded := group.BatchEncodePoints([]*group.Point{left, right, ci})
		var chainMsg []byte
		chainMsg = append(chainMsg, mBytes...)
		chainMsg = append(chainMsg, encoded[0]...)
		chainMsg = append(chainMsg, encoded[1]...)
		chainMsg = append(chainMsg, encoded[2]...)
		e[i] = group.HashToScalar(chainMsg, "")

		if i == j {
			break
		}

		left = group.ScalarBaseMult(sL[i]).Add(ownersL[i].ScalarMult(e[i]))
		right = group.MultiScalarMult([]*group.Scalar{sL[i], e[i]}, []*group.Point{keyImagePoints[i], keyImage})
		ci = pedersen.G().ScalarMult(sC[i]).Subtract(ringC[i].ScalarMult(e[i]))
	}
	sL[j] = sL[j].Subtract(enoteKeys.Owner.Multiply(e[j]))
	sC[j] = sC[j].Subtract(commitmentKey.Multiply(cStart.Subtract(e[j])))

	for idx := range seed {
		seed[idx] = 0
	}
	commitmentKey.Zero()

	return pseudoOut, &Signature{KeyImage: keyImage, e0: e[0], sL: sL, sC: sC}, nil
}

// Verify checks signature against a sorted ring, the pseudo-output
// commitment, and the signed message.
func Verify(signature *Signature, ring *ringct.Ring, pseudoOut ringct.Commitment, msg []byte) error {
	ownersL, unshiftedC := ringct.SeparateRing(ring)
	encodedL, encodedC := ringct.EncodeRings(ownersL, unshiftedC)

	if !ring.IsSorted() {
		return ringct.ErrUnsortedRing
	}
	return verifyInternal(signature, ring, ownersL, unshiftedC, encodedL, encodedC, pseudoOut, msg)
}

// VerifyUnsorted is Verify without the canonical-ordering check; it
// only succeeds against a ring in the exact order used at signing.
func VerifyUnsorted(signature *Signature, ring *ringct.Ring, pseudoOut ringct.Commitment, msg []byte) error {
	ownersL, unshiftedC := ringct.SeparateRing(ring)
	encodedL, encodedC := ringct.EncodeRings(ownersL, unshiftedC)
	return verifyInternal(signature, ring, ownersL, unshiftedC, encodedL, encodedC, pseudoOut, msg)
}

func verifyInternal(
	signature *Signature,
	ring *ringct.Ring,
	ownersL, unshiftedC []*group.Point,
	encodedL, encodedC [][]byte,
	pseudoOut ringct.Commitment,
	msg []byte,
) error {
	n := len(ring.Enotes)
	if len(signature.sL) != len(signature.sC) || len(signature.sL) != n {
		return ringct.ErrSignatureMalformed
	}

	ringC := ringct.ShiftCommitments(unshiftedC, pseudoOut)
	keyImagePoints := ringct.KeyImagePoints(encodedL)

	m := createMessage(encodedL, encodedC, pseudoOut, signature.KeyImage, msg)
	mBytes := m[:]

	ei := signature.e0
	for i := 0; i < n; i++ {
		left := group.VarTimeDoubleScalarBaseMult(ei, ownersL[i], signature.sL[i])
		right := group.VarTimeMultiScalarMult([]*group.Scalar{signature.sL[i], ei}, []*group.Point{keyImagePoints[i], signature.KeyImage})
		ci := group.VarTimeDoubleScalarBaseMult(ei.Negate(), ringC[i], signature.sC[i])

		encoded := group.BatchEncodePoints([]*group.Point{left, right, ci})
		var chainMsg []byte
		chainMsg = append(chainMsg, mBytes...)
		chainMsg = append(chainMsg, encoded[0]...)
		chainMsg = append(chainMsg, encoded[1]...)
		chainMsg = append(chainMsg, encoded[2]...)
		ei = group.HashToScalar(chainMsg, "")
	}

	if !ei.Equal(signature.e0) {
		return ringct.ErrSignatureInvalid
	}
	return nil
}

// Bytes serializes the signature: key image, e0, then the N linking
// and N commitment response scalars.
func (s *Signature) Bytes() []byte {
	var buf bytes.Buffer
	buf.Write(s.KeyImage.Bytes())
	buf.Write(s.e0.Bytes())
	for _, s := range s.sL {
		buf.Write(s.Bytes())
	}
	for _, s := range s.sC {
		buf.Write(s.Bytes())
	}
	return buf.Bytes()
}

// FromBytes parses a serialized Signature of a ring of size n.
func FromBytes(b []byte, n int) (*Signature, error) {
	expected := 32 + 32 + n*32*2
	if len(b) != expected {
		return nil, ringct.ErrSignatureMalformed
	}
	off := 0
	keyImage, err := group.SetCanonicalBytes(b[off : off+32])
	if err != nil {
		return nil, ringct.ErrDecoding
	}
	off += 32
	e0, err := group.NewScalar().SetCanonicalBytes(b[off : off+32])
	if err != nil {
		return nil, ringct.ErrDecoding
	}
	off += 32
	sL := make([]*group.Scalar, n)
	for i := 0; i < n; i++ {
		s, err := group.NewScalar().SetCanonicalBytes(b[off : off+32])
		if err != nil {
			return nil, ringct.ErrDecoding
		}
		sL[i] = s
		off += 32
	}
	sC := make([]*group.Scalar, n)
	for i := 0; i < n; i++ {
		s, err := group.NewScalar().SetCanonicalBytes(b[off : off+32])
		if err != nil {
			return nil, ringct.ErrDecoding
		}
		sC[i] = s
		off += 32
	}
	return &Signature{KeyImage: keyImage, e0: e0, sL: sL, sC: sC}, nil
}
