package bulletplus

import "github.com/concert/ringct/group"

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func scalarPowers(x *group.Scalar, n int) []*group.Scalar {
	out := make([]*group.Scalar, n)
	cur := group.ScalarFromUint64(1)
	for i := 0; i < n; i++ {
		out[i] = cur
		cur = cur.Multiply(x)
	}
	return out
}

func innerProduct(a, b []*group.Scalar) *group.Scalar {
	sum := group.NewScalar()
	for i := range a {
		sum = sum.Add(a[i].Multiply(b[i]))
	}
	return sum
}

func scalarVecAdd(a, b []*group.Scalar) []*group.Scalar {
	out := make([]*group.Scalar, len(a))
	for i := range a {
		out[i] = a[i].Add(b[i])
	}
	return out
}

func scalarVecSub(a, b []*group.Scalar) []*group.Scalar {
	out := make([]*group.Scalar, len(a))
	for i := range a {
		out[i] = a[i].Subtract(b[i])
	}
	return out
}

func scalarVecMulElem(a, b []*group.Scalar) []*group.Scalar {
	out := make([]*group.Scalar, len(a))
	for i := range a {
		out[i] = a[i].Multiply(b[i])
	}
	return out
}

func scalarVecScale(a []*group.Scalar, x *group.Scalar) []*group.Scalar {
	out := make([]*group.Scalar, len(a))
	for i := range a {
		out[i] = a[i].Multiply(x)
	}
	return out
}

func scalarVecAddConst(a []*group.Scalar, x *group.Scalar) []*group.Scalar {
	out := make([]*group.Scalar, len(a))
	for i := range a {
		out[i] = a[i].Add(x)
	}
	return out
}

func scalarVecInvert(a []*group.Scalar) []*group.Scalar {
	out := make([]*group.Scalar, len(a))
	for i := range a {
		out[i] = a[i].Invert()
	}
	return out
}

func pointVecSum(pts []*group.Point) *group.Point {
	return group.Sum(pts)
}

// weightedPointSum returns sum(scalars[i] * points[i]) using the
// constant-time scalar multiplication, suitable when any operand is
// secret (prover-side use only).
func weightedPointSum(scalars []*group.Scalar, points []*group.Point) *group.Point {
	return group.MultiScalarMult(scalars, points)
}

// vartimeWeightedPointSum is weightedPointSum using the variable-time
// multi-scalar multiplication, safe once every operand is public
// (verifier-side use).
func vartimeWeightedPointSum(scalars []*group.Scalar, points []*group.Point) *group.Point {
	return group.VarTimeMultiScalarMult(scalars, points)
}
