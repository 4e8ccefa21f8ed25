// Package borromean implements range proofs built from Borromean ring
// signatures: a base-4 digit decomposition of a 64-bit value, each
// digit proved in a 4-member ring sharing one aggregate challenge.
//
// These proofs are essentially obsolete: Bulletproofs+ (see
// rangeproof/bulletplus) are smaller, faster, and scale better. This
// construction is kept for interoperability with systems that still
// use it.
package borromean

import (
	"bytes"

	"github.com/concert/ringct"
	"github.com/concert/ringct/group"
	"github.com/concert/ringct/pedersen"
)

const numberOfProofDigits = 64 / 2 // 32 base-4 digits cover a 64-bit range.

// htable holds the precomputed per-digit, per-candidate-digit H
// offsets used to build each digit's 4-member ring.
type htable struct {
	positive [numberOfProofDigits][4]*group.Point
	negative [numberOfProofDigits][4]*group.Point
}

var hTable = buildHTable()

func buildHTable() *htable {
	t := &htable{}
	pow := group.ScalarFromUint64(1)
	four := group.ScalarFromUint64(4)
	for i := 0; i < numberOfProofDigits; i++ {
		two := pow.Add(pow)
		three := two.Add(pow)
		t.positive[i] = [4]*group.Point{
			group.Identity(),
			pedersen.H().ScalarMult(pow),
			pedersen.H().ScalarMult(two),
			pedersen.H().ScalarMult(three),
		}
		for j := 0; j < 4; j++ {
			t.negative[i][j] = t.positive[i][j].Negate()
		}
		pow = pow.Multiply(four)
	}
	return t
}

// quaternary returns the base-4 digits of n, least significant first.
func quaternary(n uint64) [numberOfProofDigits]int {
	var digits [numberOfProofDigits]int
	for i := 0; n != 0; i++ {
		digits[i] = int(n % 4)
		n /= 4
	}
	return digits
}

// signature is a Borromean ring signature: a shared seed e0 and a
// 4-scalar response per digit ring.
type signature struct {
	e0 *group.Scalar
	s  [numberOfProofDigits][4]*group.Scalar
}

// chameleonH computes h_scalar(m || encode(s*G + e*p)), a hash that can
// be "tweaked" to a target output if the discrete log of p is known.
func chameleonH(m []byte, e, s *group.Scalar, p *group.Point) *group.Scalar {
	point := group.ScalarBaseMult(s).Add(p.ScalarMult(e))
	return group.HashToScalar(append(append([]byte{}, m...), group.EncodePoint(point)...), "")
}

// vartimeChameleonH is chameleonH using the variable-time combined
// multiply, safe here because every operand is public during
// verification.
func vartimeChameleonH(m []byte, e, s *group.Scalar, p *group.Point) *group.Scalar {
	point := group.VarTimeDoubleScalarBaseMult(e, p, s)
	return group.HashToScalar(append(append([]byte{}, m...), group.EncodePoint(point)...), "")
}

type chameleonGroup struct {
	e, s *group.Scalar
	p    *group.Point
}

func multiChameleonH(m []byte, groups []chameleonGroup) *group.Scalar {
	points := make([]*group.Point, len(groups))
	for i, g := range groups {
		points[i] = group.ScalarBaseMult(g.s).Add(g.p.ScalarMult(g.e))
	}
	return combineChameleon(m, points)
}

func vartimeMultiChameleonH(m []byte, groups []chameleonGroup) *group.Scalar {
	points := make([]*group.Point, len(groups))
	for i, g := range groups {
		points[i] = group.VarTimeDoubleScalarBaseMult(g.e, g.p, g.s)
	}
	return combineChameleon(m, points)
}

func combineChameleon(m []byte, points []*group.Point) *group.Scalar {
	combined := group.BatchEncodePoints(points)
	msg := append([]byte{}, m...)
	for _, b := range combined {
		msg = append(msg, b...)
	}
	return group.HashToScalar(msg, "")
}

// createM builds the message all the digit rings are signed over: a
// digest of every ring's batch-encoded members followed by msg.
func createM(rings [][]*group.Point, msg []byte) [32]byte {
	var all []byte
	for _, ring := range rings {
		for _, b := range group.BatchEncodePoints(ring) {
			all = append(all, b...)
		}
	}
	all = append(all, msg...)
	return group.HashToBytes32(all, "")
}

func borromeanSign(rings [][]*group.Point, sk []*group.Scalar, indices []int, msg []byte) (*signature, error) {
	m := createM(rings, msg)
	mBytes := m[:]

	var s [numberOfProofDigits][4]*group.Scalar
	for i := range s {
		for j := 0; j < 4; j++ {
			rs, err := group.RandomScalar()
			if err != nil {
				return nil, err
			}
			s[i][j] = rs
		}
	}

	eStart := make([]*group.Scalar, len(rings))
	for i := range rings {
		rs, err := group.RandomScalar()
		if err != nil {
			return nil, err
		}
		eStart[i] = rs
	}

	e0Groups := make([]chameleonGroup, len(rings))
	for i := range rings {
		eij := eStart[i]
		n := len(rings[i]) - 1
		for j := indices[i]; j < n; j++ {
			eij = chameleonH(mBytes, eij, s[i][j], rings[i][j])
		}
		e0Groups[i] = chameleonGroup{eij, s[i][n], rings[i][n]}
	}
	e0 := multiChameleonH(mBytes, e0Groups)

	for i := range rings {
		eij := e0
		for j := 0; j < indices[i]; j++ {
			eij = chameleonH(mBytes, eij, s[i][j], rings[i][j])
		}
		s[i][indices[i]] = s[i][indices[i]].Add(sk[i].Multiply(eStart[i].Subtract(eij)))
	}

	return &signature{e0: e0, s: s}, nil
}

func borromeanVerify(rings [][]*group.Point, sig *signature, msg []byte) error {
	m := createM(rings, msg)
	mBytes := m[:]

	e0Groups := make([]chameleonGroup, len(rings))
	for i := range rings {
		eij := sig.e0
		n := len(rings[i]) - 1
		for j := 0; j < n; j++ {
			eij = vartimeChameleonH(mBytes, eij, sig.s[i][j], rings[i][j])
		}
		e0Groups[i] = chameleonGroup{eij, sig.s[i][n], rings[i][n]}
	}
	e0 := vartimeMultiChameleonH(mBytes, e0Groups)

	if !e0.Equal(sig.e0) {
		return ringct.ErrRangeProofInvalid
	}
	return nil
}

// RangeProof is a Borromean range proof that a Pedersen commitment
// commits to a value in [0, 2^64).
type RangeProof struct {
	ci  [numberOfProofDigits]ringct.Commitment
	sig *signature
}

// Prove constructs a Borromean range proof for value under blinding,
// returning the resulting commitment alongside the proof.
func Prove(value uint64, blinding *group.Scalar) (ringct.Commitment, *RangeProof, error) {
	digits := quaternary(value)

	r := make([]*group.Scalar, numberOfProofDigits)
	rSum := group.NewScalar()
	var c [numberOfProofDigits]*group.Point
	rings := make([][]*group.Point, numberOfProofDigits)

	for i := 0; i < numberOfProofDigits; i++ {
		var ri *group.Scalar
		if i == numberOfProofDigits-1 {
			ri = blinding.Subtract(rSum)
		} else {
			var err error
			ri, err = group.RandomScalar()
			if err != nil {
				return ringct.Commitment{}, nil, err
			}
			rSum = rSum.Add(ri)
		}
		r[i] = ri

		c0 := pedersen.G().ScalarMult(ri)
		cx := c0.Add(hTable.positive[i][digits[i]])
		c[i] = cx

		ring := make([]*group.Point, 4)
		ring[0] = cx
		for j := 1; j < 4; j++ {
			if j == digits[i] {
				ring[j] = c0
			} else {
				ring[j] = hTable.negative[i][j].Add(cx)
			}
		}
		rings[i] = ring
	}

	cTotal := group.Sum(c[:])
	var ci [numberOfProofDigits]ringct.Commitment
	for i, p := range c {
		ci[i] = ringct.FromPoint(p)
	}

	sig, err := borromeanSign(rings, r, digitsToIndices(digits), group.EncodePoint(cTotal))
	if err != nil {
		return ringct.Commitment{}, nil, err
	}

	return ringct.FromPoint(cTotal), &RangeProof{ci: ci, sig: sig}, nil
}

func digitsToIndices(digits [numberOfProofDigits]int) []int {
	out := make([]int, numberOfProofDigits)
	copy(out, digits[:])
	return out
}

// Verify checks proof against commitment, returning nil if valid or a
// *ringct.RangeProofError otherwise.
func Verify(commitment ringct.Commitment, proof *RangeProof) error {
	points := make([]*group.Point, numberOfProofDigits)
	for i, c := range proof.ci {
		points[i] = c.ToPoint()
	}
	sum := ringct.FromPoint(group.Sum(points))
	if !sum.Equal(commitment) {
		return ringct.ErrRangeProofInvalid
	}

	rings := make([][]*group.Point, numberOfProofDigits)
	for i, c := range proof.ci {
		p := c.ToPoint()
		rings[i] = []*group.Point{
			p,
			hTable.negative[i][1].Add(p),
			hTable.negative[i][2].Add(p),
			hTable.negative[i][3].Add(p),
		}
	}

	return borromeanVerify(rings, proof.sig, group.EncodePoint(commitment.ToPoint()))
}

// Bytes serializes the proof: 32 commitment points, then e0, then the
// 32x4 response scalars, all as canonical 32-byte encodings.
func (p *RangeProof) Bytes() []byte {
	var buf bytes.Buffer
	for _, c := range p.ci {
		buf.Write(c.Bytes())
	}
	buf.Write(p.sig.e0.Bytes())
	for _, row := range p.sig.s {
		for _, s := range row {
			buf.Write(s.Bytes())
		}
	}
	return buf.Bytes()
}

// FromBytes parses a serialized RangeProof.
func FromBytes(b []byte) (*RangeProof, error) {
	const expected = numberOfProofDigits*32 + 32 + numberOfProofDigits*4*32
	if len(b) != expected {
		return nil, ringct.ErrRangeProofMalformed
	}
	off := 0
	readPoint := func() (*group.Point, error) {
		p, err := group.SetCanonicalBytes(b[off : off+32])
		off += 32
		return p, err
	}
	readScalar := func() (*group.Scalar, error) {
		s, err := group.NewScalar().SetCanonicalBytes(b[off : off+32])
		off += 32
		return s, err
	}

	var ci [numberOfProofDigits]ringct.Commitment
	for i := range ci {
		p, err := readPoint()
		if err != nil {
			return nil, ringct.ErrDecoding
		}
		ci[i] = ringct.FromPoint(p)
	}
	e0, err := readScalar()
	if err != nil {
		return nil, ringct.ErrDecoding
	}
	var s [numberOfProofDigits][4]*group.Scalar
	for i := range s {
		for j := 0; j < 4; j++ {
			sc, err := readScalar()
			if err != nil {
				return nil, ringct.ErrDecoding
			}
			s[i][j] = sc
		}
	}
	return &RangeProof{ci: ci, sig: &signature{e0: e0, s: s}}, nil
}
