package ringct

import (
	"github.com/concert/ringct/group"
	"github.com/concert/ringct/pedersen"
)

// Commitment is a Pedersen commitment to a 64-bit value under a scalar
// blinding factor.
type Commitment struct {
	point *group.Point
}

// Commit returns the commitment r*G + v*H to value with blinding.
func Commit(value uint64, blinding *group.Scalar) Commitment {
	return Commitment{pedersen.Commit(value, blinding)}
}

// FromPoint wraps an already-computed group element as a commitment,
// e.g. after decoding or after combining commitments homomorphically.
func FromPoint(p *group.Point) Commitment {
	return Commitment{p}
}

// ToPoint returns the underlying group element.
func (c Commitment) ToPoint() *group.Point {
	return c.point
}

// Equal reports whether c and d are the same commitment.
func (c Commitment) Equal(d Commitment) bool {
	return c.point.Equal(d.point)
}

// Bytes returns the 32-byte compressed Ristretto encoding.
func (c Commitment) Bytes() []byte {
	return c.point.Bytes()
}

// CommitmentFromBytes decodes a compressed Ristretto point into a
// commitment, returning ErrDecoding on an invalid encoding.
func CommitmentFromBytes(b []byte) (Commitment, error) {
	p, err := group.SetCanonicalBytes(b)
	if err != nil {
		return Commitment{}, ErrDecoding
	}
	return Commitment{p}, nil
}

// SumCommitments adds a slice of commitments.
func SumCommitments(cs []Commitment) Commitment {
	pts := make([]*group.Point, len(cs))
	for i, c := range cs {
		pts[i] = c.point
	}
	return Commitment{group.Sum(pts)}
}

// IsBalanced reports whether the sum of in-commitments equals the sum
// of out-commitments plus extra*H, i.e. that a transaction conserves
// value across a set of confidential inputs and outputs.
func IsBalanced(ins, outs []Commitment, extra uint64) bool {
	inPts := make([]*group.Point, len(ins))
	for i, c := range ins {
		inPts[i] = c.point
	}
	outPts := make([]*group.Point, len(outs))
	for i, c := range outs {
		outPts[i] = c.point
	}
	return pedersen.IsBalanced(inPts, outPts, extra)
}
