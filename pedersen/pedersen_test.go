package pedersen_test

import (
	"testing"

	"github.com/concert/ringct/group"
	"github.com/concert/ringct/pedersen"
)

func TestIsBalancedSimpleCase(t *testing.T) {
	r1, _ := group.RandomScalar()
	r2, _ := group.RandomScalar()
	r3, _ := group.RandomScalar()
	r4, _ := group.RandomScalar()
	r5 := r1.Add(r2).Add(r3).Subtract(r4)

	ins := []*group.Point{
		pedersen.Commit(100000, r1),
		pedersen.Commit(50000, r2),
		pedersen.Commit(200000, r3),
	}
	outs := []*group.Point{
		pedersen.Commit(175000, r4),
		pedersen.Commit(150000, r5),
	}

	if !pedersen.IsBalanced(ins, outs, 25000) {
		t.Fatal("expected the books to balance")
	}
}

func TestIsBalancedRejectsMismatch(t *testing.T) {
	r1, _ := group.RandomScalar()
	r2, _ := group.RandomScalar()
	ins := []*group.Point{pedersen.Commit(100, r1)}
	outs := []*group.Point{pedersen.Commit(99, r2)}
	if pedersen.IsBalanced(ins, outs, 0) {
		t.Fatal("expected imbalance to be detected")
	}
}

func TestGAndHAreIndependent(t *testing.T) {
	if pedersen.G().Equal(pedersen.H()) {
		t.Fatal("G and H must not coincide")
	}
}
