package bulletplus

import "github.com/concert/ringct/group"

// ipaProve runs the logarithmic inner-product argument proving
// knowledge of l, r such that P = <l,gi> + <r,hi> + <l,r>*U, for the
// top-level P implied by the caller's transcript state. It returns the
// round commitments and the final folded scalar pair.
func ipaProve(tr *transcript, gi, hi []*group.Point, u *group.Point, l, r []*group.Scalar) ([]*group.Point, []*group.Point, *group.Scalar, *group.Scalar) {
	n := len(l)
	if n == 1 {
		return nil, nil, l[0], r[0]
	}
	n2 := n / 2

	cL := innerProduct(l[:n2], r[n2:])
	cR := innerProduct(l[n2:], r[:n2])

	L := weightedPointSum(l[:n2], gi[n2:]).Add(weightedPointSum(r[n2:], hi[:n2])).Add(u.ScalarMult(cL))
	R := weightedPointSum(l[n2:], gi[:n2]).Add(weightedPointSum(r[:n2], hi[n2:])).Add(u.ScalarMult(cR))

	tr.appendPoint("L", L)
	tr.appendPoint("R", R)
	chal := tr.challengeScalar("u")
	chalInv := chal.Invert()

	giFold := make([]*group.Point, n2)
	hiFold := make([]*group.Point, n2)
	lFold := make([]*group.Scalar, n2)
	rFold := make([]*group.Scalar, n2)
	for i := 0; i < n2; i++ {
		giFold[i] = gi[i].ScalarMult(chalInv).Add(gi[n2+i].ScalarMult(chal))
		hiFold[i] = hi[i].ScalarMult(chal).Add(hi[n2+i].ScalarMult(chalInv))
		lFold[i] = l[i].Multiply(chal).Add(l[n2+i].Multiply(chalInv))
		rFold[i] = r[i].Multiply(chalInv).Add(r[n2+i].Multiply(chal))
	}

	restL, restR, a, b := ipaProve(tr, giFold, hiFold, u, lFold, rFold)
	return append([]*group.Point{L}, restL...), append([]*group.Point{R}, restR...), a, b
}

// ipaVerify replays the same folding the prover performed, using only
// public data, and checks the final base-case equation.
func ipaVerify(tr *transcript, gi, hi []*group.Point, u *group.Point, p *group.Point, ls, rs []*group.Point, a, b *group.Scalar) bool {
	n := len(gi)
	if n == 1 {
		check := vartimeWeightedPointSum([]*group.Scalar{a, b, a.Multiply(b)}, []*group.Point{gi[0], hi[0], u})
		return check.Equal(p)
	}
	if len(ls) == 0 || len(rs) == 0 {
		return false
	}
	L, R := ls[0], rs[0]
	tr.appendPoint("L", L)
	tr.appendPoint("R", R)
	chal := tr.challengeScalar("u")
	chalInv := chal.Invert()
	chalSq := chal.Multiply(chal)
	chalInvSq := chalInv.Multiply(chalInv)

	n2 := n / 2
	giFold := make([]*group.Point, n2)
	hiFold := make([]*group.Point, n2)
	for i := 0; i < n2; i++ {
		giFold[i] = gi[i].ScalarMult(chalInv).Add(gi[n2+i].ScalarMult(chal))
		hiFold[i] = hi[i].ScalarMult(chal).Add(hi[n2+i].ScalarMult(chalInv))
	}
	pFold := p.Add(L.ScalarMult(chalSq)).Add(R.ScalarMult(chalInvSq))

	return ipaVerify(tr, giFold, hiFold, u, pFold, ls[1:], rs[1:], a, b)
}
