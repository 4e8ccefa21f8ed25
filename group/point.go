package group

import "github.com/gtank/ristretto255"

// Point is an element of the Ristretto255 prime-order group.
type Point struct {
	p *ristretto255.Element
}

// Identity returns the group identity element.
func Identity() *Point {
	return &Point{ristretto255.NewIdentityElement()}
}

// BasePoint returns the canonical Ristretto255 basepoint G.
func BasePoint() *Point {
	return &Point{ristretto255.NewGeneratorElement()}
}

// ScalarBaseMult returns s*G.
func ScalarBaseMult(s *Scalar) *Point {
	return &Point{ristretto255.NewIdentityElement().ScalarBaseMult(s.s)}
}

// ScalarMult returns s*P.
func (p *Point) ScalarMult(s *Scalar) *Point {
	return &Point{ristretto255.NewIdentityElement().ScalarMult(s.s, p.p)}
}

// Add returns p + q.
func (p *Point) Add(q *Point) *Point {
	return &Point{ristretto255.NewIdentityElement().Add(p.p, q.p)}
}

// Subtract returns p - q.
func (p *Point) Subtract(q *Point) *Point {
	return &Point{ristretto255.NewIdentityElement().Subtract(p.p, q.p)}
}

// Negate returns -p.
func (p *Point) Negate() *Point {
	return &Point{ristretto255.NewIdentityElement().Negate(p.p)}
}

// Equal reports whether p and q represent the same point.
func (p *Point) Equal(q *Point) bool {
	return p.p.Equal(q.p) == 1
}

// Bytes returns the 32-byte compressed Ristretto encoding of p.
func (p *Point) Bytes() []byte {
	return p.p.Bytes()
}

// SetCanonicalBytes decodes a compressed Ristretto point, rejecting
// invalid encodings.
func SetCanonicalBytes(b []byte) (*Point, error) {
	inner, err := ristretto255.NewIdentityElement().SetCanonicalBytes(b)
	if err != nil {
		return nil, err
	}
	return &Point{inner}, nil
}

// SetUniformBytes maps 64 uniformly random bytes onto the group,
// implementing the hash-to-group construction used by HashToPoint.
func SetUniformBytes(b []byte) (*Point, error) {
	inner, err := ristretto255.NewIdentityElement().SetUniformBytes(b)
	if err != nil {
		return nil, err
	}
	return &Point{inner}, nil
}

// Sum returns the sum of all given points, or the identity if empty.
func Sum(points []*Point) *Point {
	out := Identity()
	for _, p := range points {
		out = out.Add(p)
	}
	return out
}

// MultiScalarMult returns the sum of scalars[i]*points[i] by repeated
// constant-time scalar multiplication and addition. Used on signing
// paths, where operands may be secret and the batched vartime path
// below is not appropriate.
func MultiScalarMult(scalars []*Scalar, points []*Point) *Point {
	out := Identity()
	for i := range scalars {
		out = out.Add(points[i].ScalarMult(scalars[i]))
	}
	return out
}

// VarTimeMultiScalarMult returns the variable-time sum of
// scalars[i]*points[i]. Only safe when every operand is public
// (verification paths).
func VarTimeMultiScalarMult(scalars []*Scalar, points []*Point) *Point {
	ss := make([]*ristretto255.Scalar, len(scalars))
	ps := make([]*ristretto255.Element, len(points))
	for i := range scalars {
		ss[i] = scalars[i].s
		ps[i] = points[i].p
	}
	return &Point{ristretto255.NewIdentityElement().VarTimeMultiScalarMult(ss, ps)}
}

// VarTimeDoubleScalarBaseMult returns a*A + b*G in variable time.
func VarTimeDoubleScalarBaseMult(a *Scalar, A *Point, b *Scalar) *Point {
	return &Point{ristretto255.NewIdentityElement().VarTimeDoubleScalarBaseMult(a.s, A.p, b.s)}
}
