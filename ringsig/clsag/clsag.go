// Package clsag implements CLSAG ("Concise Linkable Spontaneous
// Anonymous Group") ring signatures: a single-ring linkable signature
// binding both an owner key and a Pedersen commitment.
package clsag

import (
	"bytes"

	"github.com/concert/ringct"
	"github.com/concert/ringct/group"
)

func createMessage(encodedRingL, encodedRingC [][]byte, pseudoOut ringct.Commitment, keyImage, auxiliaryPoint *group.Point, msg []byte) [32]byte {
	encoded := group.BatchEncodePoints([]*group.Point{pseudoOut.ToPoint(), keyImage, auxiliaryPoint})

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

// Signature is a CLSAG ring signature over a ring of enotes and a
// pseudo-output commitment.
type Signature struct {
	KeyImage  *group.Point
	c0        *group.Scalar
	s         []*group.Scalar
	Auxiliary *group.Point
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

// SignUnsorted is Sign without the canonical-ordering check. Signatures
// produced this way must be checked with VerifyUnsorted against a ring
// in the exact same order.
func SignUnsorted(ring *ringct.Ring, enoteKeys ringct.EnoteKeys, pseudoOutBlinding *group.Scalar, msg []byte) (ringct.Commitment, *Signature, error) {
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
	for i, e := range ring.Enotes {
		if e.Equal(target) {
			j = i
			break
		}
	}
	if j < 0 {
		return ringct.Commitment{}, nil, ringct.ErrEnoteNotInRing
	}

	keyImagePoints := ringct.KeyImagePoints(encodedL)
	keyImage := keyImagePoints[j].ScalarMult(enoteKeys.Owner)
	auxiliaryPoint := keyImagePoints[j].ScalarMult(commitmentKey)

	m := createMessage(encodedL, encodedC, pseudoOut, keyImage, auxiliaryPoint, msg)
	mBytes := m[:]

	seed := make([]byte, 0, 32+32+len(mBytes))
	seed = append(seed, enoteKeys.Owner.Bytes()...)
	seed = append(seed, pseudoOutBlinding.Bytes()...)
	seed = append(seed, mBytes...)

	// Fixed filler value seeding the scalar chain below; it never appears
	// in the signature and has no meaning beyond being a stable starting
	// point distinct from any real response scalar.
	lastScalar := group.HashToScalar(mBytes, "clsag_fill")
	s := make([]*group.Scalar, n)
	for i := 0; i < n; i++ {
		lastScalar = group.HashToScalar(append(lastScalar.Bytes(), seed...), "")
		s[i] = lastScalar
	}

	linkingAC := group.HashToScalar(mBytes, group.DomainCLSAGLinking)
	auxiliaryAC := group.HashToScalar(mBytes, group.DomainCLSAGAuxiliary)

	wLeft := make([]*group.Point, n)
	for x := 0; x < n; x++ {
		wLeft[x] = group.MultiScalarMult([]*group.Scalar{linkingAC, auxiliaryAC}, []*group.Point{ownersL[x], ringC[x]})
	}
	wRight := group.MultiScalarMult([]*group.Scalar{linkingAC, auxiliaryAC}, []*group.Point{keyImage, auxiliaryPoint})
	wSecret := linkingAC.Multiply(enoteKeys.Owner).Add(auxiliaryAC.Multiply(commitmentKey))

	left := group.ScalarBaseMult(s[j])
	right := keyImagePoints[j].ScalarMult(s[j])

	ci := group.ScalarFromUint64(1)
	c0 := ci
	i := j
	for step := 0; step < n; step++ {
		i = (i + 1) % n

		encoded := group.BatchEncodePoints([]*group.Point{left, right})
		chainMsg := append(append([]byte{}, mBytes...), encoded[0]...)
		chainMsg = append(chainMsg, encoded[1]...)
		ci = group.HashToScalar(chainMsg, group.DomainCLSAGCommit)

		if i == 0 {
			c0 = ci
		}
		if i == j {
			break
		}

		left = group.ScalarBaseMult(s[i]).Add(wLeft[i].ScalarMult(ci))
		right = group.MultiScalarMult([]*group.Scalar{s[i], ci}, []*group.Point{keyImagePoints[i], wRight})
	}
	s[j] = s[j].Subtract(ci.Multiply(wSecret))

	for i := range seed {
		seed[i] = 0
	}
	commitmentKey.Zero()

	return pseudoOut, &Signature{KeyImage: keyImage, c0: c0, s: s, Auxiliary: auxiliaryPoint}, nil
}

// Verify checks signature against a sorted ring, the pseudo-output
// commitment it was produced with, and the signed message.
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
	if len(signature.s) != n {
		return ringct.ErrSignatureMalformed
	}

	ringC := ringct.ShiftCommitments(unshiftedC, pseudoOut)
	keyImagePoints := ringct.KeyImagePoints(encodedL)

	m := createMessage(encodedL, encodedC, pseudoOut, signature.KeyImage, signature.Auxiliary, msg)
	mBytes := m[:]

	linkingAC := group.HashToScalar(mBytes, group.DomainCLSAGLinking)
	auxiliaryAC := group.HashToScalar(mBytes, group.DomainCLSAGAuxiliary)

	wLeft := make([]*group.Point, n)
	for x := 0; x < n; x++ {
		wLeft[x] = group.VarTimeMultiScalarMult([]*group.Scalar{linkingAC, auxiliaryAC}, []*group.Point{ownersL[x], ringC[x]})
	}
	wRight := group.VarTimeMultiScalarMult([]*group.Scalar{linkingAC, auxiliaryAC}, []*group.Point{signature.KeyImage, signature.Auxiliary})

	ci := signature.c0
	for i := 0; i < n; i++ {
		left := group.VarTimeDoubleScalarBaseMult(ci, wLeft[i], signature.s[i])
		right := group.VarTimeMultiScalarMult([]*group.Scalar{signature.s[i], ci}, []*group.Point{keyImagePoints[i], wRight})

		encoded := group.BatchEncodePoints([]*group.Point{left, right})
		chainMsg := append(append([]byte{}, mBytes...), encoded[0]...)
		chainMsg = append(chainMsg, encoded[1]...)
		ci = group.HashToScalar(chainMsg, group.DomainCLSAGCommit)
	}

	if !ci.Equal(signature.c0) {
		return ringct.ErrSignatureInvalid
	}
	return nil
}

// Bytes serializes the signature: key image, c0, N response scalars,
// then the auxiliary point.
func (s *Signature) Bytes() []byte {
	var buf bytes.Buffer
	buf.Write(s.KeyImage.Bytes())
	buf.Write(s.c0.Bytes())
	for _, si := range s.s {
		buf.Write(si.Bytes())
	}
	buf.Write(s.Auxiliary.Bytes())
	return buf.Bytes()
}

// FromBytes parses a serialized Signature of a ring of size n.
func FromBytes(b []byte, n int) (*Signature, error) {
	expected := 32 + 32 + n*32 + 32
	if len(b) != expected {
		return nil, ringct.ErrSignatureMalformed
	}
	off := 0
	keyImage, err := group.SetCanonicalBytes(b[off : off+32])
	if err != nil {
		return nil, ringct.ErrDecoding
	}
	off += 32
	c0, err := group.NewScalar().SetCanonicalBytes(b[off : off+32])
	if err != nil {
		return nil, ringct.ErrDecoding
	}
	off += 32
	s := make([]*group.Scalar, n)
	for i := 0; i < n; i++ {
		si, err := group.NewScalar().SetCanonicalBytes(b[off : off+32])
		if err != nil {
			return nil, ringct.ErrDecoding
		}
		s[i] = si
		off += 32
	}
	aux, err := group.SetCanonicalBytes(b[off : off+32])
	if err != nil {
		return nil, ringct.ErrDecoding
	}
	return &Signature{KeyImage: keyImage, c0: c0, s: s, Auxiliary: aux}, nil
}
