// Package pedersen implements the two-generator Pedersen commitment
// scheme this module's range proofs and ring signatures are built on.
package pedersen

import (
	"sync"

	"github.com/concert/ringct/group"
)

var (
	gOnce sync.Once
	hOnce sync.Once
	gPt   *group.Point
	hPt   *group.Point
)

// G returns the blinding-factor generator, the canonical Ristretto255
// basepoint.
func G() *group.Point {
	gOnce.Do(func() {
		gPt = group.BasePoint()
	})
	return gPt
}

// H returns the value generator, derived once by hashing the encoding
// of G into the group. Computed lazily and cached for the remainder of
// the process lifetime.
func H() *group.Point {
	hOnce.Do(func() {
		hPt = group.HashToPoint(group.EncodePoint(G()), "")
	})
	return hPt
}

// Commit returns the Pedersen commitment r*G + v*H to value v with
// blinding factor r.
func Commit(value uint64, blinding *group.Scalar) *group.Point {
	return G().ScalarMult(blinding).Add(H().ScalarMult(group.ScalarFromUint64(value)))
}

// IsBalanced reports whether the sum of in-commitments equals the sum
// of out-commitments plus extra*H, i.e. that a transaction conserves
// value. It returns a boolean only; it never panics on mismatch.
func IsBalanced(ins, outs []*group.Point, extra uint64) bool {
	lhs := group.Sum(ins)
	rhs := group.Sum(outs).Add(H().ScalarMult(group.ScalarFromUint64(extra)))
	return lhs.Equal(rhs)
}
