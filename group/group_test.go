package group_test

import (
	"testing"

	"github.com/concert/ringct/group"
)

func TestScalarRoundTrip(t *testing.T) {
	s, err := group.RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	decoded, err := group.NewScalar().SetCanonicalBytes(s.Bytes())
	if err != nil {
		t.Fatalf("SetCanonicalBytes: %v", err)
	}
	if !s.Equal(decoded) {
		t.Fatal("round-tripped scalar changed")
	}
}

func TestScalarFromBytesModOrderMatchesWideReduction(t *testing.T) {
	b := make([]byte, 32)
	for i := range b {
		b[i] = byte(i * 7)
	}
	a := group.ScalarFromBytesModOrder(b)
	wide := make([]byte, 64)
	copy(wide, b)
	c, err := group.ScalarFromUniformBytes(wide)
	if err != nil {
		t.Fatalf("ScalarFromUniformBytes: %v", err)
	}
	if !a.Equal(c) {
		t.Fatal("zero-extended wide reduction diverged from direct reduction")
	}
}

func TestPointRoundTrip(t *testing.T) {
	s, err := group.RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	p := group.ScalarBaseMult(s)
	decoded, err := group.SetCanonicalBytes(p.Bytes())
	if err != nil {
		t.Fatalf("SetCanonicalBytes: %v", err)
	}
	if !p.Equal(decoded) {
		t.Fatal("round-tripped point changed")
	}
}

func TestMultiScalarMultAgreesWithVarTime(t *testing.T) {
	a, _ := group.RandomScalar()
	b, _ := group.RandomScalar()
	P := group.ScalarBaseMult(a)
	Q := group.ScalarBaseMult(b)

	ct := group.MultiScalarMult([]*group.Scalar{a, b}, []*group.Point{P, Q})
	vt := group.VarTimeMultiScalarMult([]*group.Scalar{a, b}, []*group.Point{P, Q})
	if !ct.Equal(vt) {
		t.Fatal("constant-time and variable-time multiscalar mults disagree")
	}
}

func TestHashToPointDeterministic(t *testing.T) {
	p1 := group.HashToPoint([]byte("hello"), group.DomainKeyImage)
	p2 := group.HashToPoint([]byte("hello"), group.DomainKeyImage)
	if !p1.Equal(p2) {
		t.Fatal("HashToPoint not deterministic")
	}
	p3 := group.HashToPoint([]byte("hello"), group.DomainCLSAGLinking)
	if p1.Equal(p3) {
		t.Fatal("different domains produced the same point")
	}
}

func TestScalarZero(t *testing.T) {
	s, _ := group.RandomScalar()
	if s.IsZero() {
		t.Fatal("random scalar was zero")
	}
	s.Zero()
	if !s.IsZero() {
		t.Fatal("Zero did not clear the scalar")
	}
}
