package ringct_test

import (
	"testing"

	"github.com/concert/ringct"
	"github.com/concert/ringct/group"
	"github.com/concert/ringct/internal/testutil"
)

func TestCommitmentRoundTrip(t *testing.T) {
	drbg := testutil.New("ringct-commitment-round-trip")
	r := drbg.Scalar()
	c := ringct.Commit(42, r)
	decoded, err := ringct.CommitmentFromBytes(c.Bytes())
	if err != nil {
		t.Fatalf("CommitmentFromBytes: %v", err)
	}
	if !c.Equal(decoded) {
		t.Fatal("round-tripped commitment changed")
	}
}

func TestCommitmentIsBalanced(t *testing.T) {
	drbg := testutil.New("ringct-commitment-balance")
	r1, r2, r3, r4 := drbg.Scalar(), drbg.Scalar(), drbg.Scalar(), drbg.Scalar()
	r5 := r1.Add(r2).Add(r3).Subtract(r4)

	ins := []ringct.Commitment{
		ringct.Commit(100000, r1),
		ringct.Commit(50000, r2),
		ringct.Commit(200000, r3),
	}
	outs := []ringct.Commitment{
		ringct.Commit(175000, r4),
		ringct.Commit(150000, r5),
	}
	if !ringct.IsBalanced(ins, outs, 25000) {
		t.Fatal("expected balance")
	}
}

func TestEnoteKeysToEnote(t *testing.T) {
	drbg := testutil.New("ringct-enote-keys")
	keys := drbg.EnoteKeys(777)
	enote := keys.ToEnote()
	if !enote.Owner.Equal(group.ScalarBaseMult(keys.Owner)) {
		t.Fatal("enote owner mismatch")
	}
	if !enote.Commitment.Equal(ringct.Commit(keys.Value, keys.Blinding)) {
		t.Fatal("enote commitment mismatch")
	}
}

func TestEnoteKeysClear(t *testing.T) {
	drbg := testutil.New("ringct-enote-keys-clear")
	keys := drbg.EnoteKeys(1)
	keys.Clear()
	if !keys.Owner.IsZero() || !keys.Blinding.IsZero() || keys.Value != 0 {
		t.Fatal("Clear did not zeroize all secret fields")
	}
}

func TestKeyImageDeterministic(t *testing.T) {
	drbg := testutil.New("ringct-key-image-stable")
	owner := drbg.Scalar()
	i1 := ringct.GetKeyImage(owner)
	i2 := ringct.GetKeyImage(owner)
	if !i1.Equal(i2) {
		t.Fatal("key image not deterministic for a fixed owner key")
	}
}

func buildRing(t *testing.T, drbg *testutil.DRBG, n int) *ringct.Ring {
	t.Helper()
	ring := ringct.NewRing()
	for i := 0; i < n; i++ {
		keys := drbg.EnoteKeys(drbg.Uint64())
		ring.Push(keys.ToEnote())
	}
	return ring
}

func TestRingSortOrdersAndDeduplicates(t *testing.T) {
	drbg := testutil.New("ringct-ring-sort")
	ring := buildRing(t, drbg, 8)
	dup := ring.Enotes[0]
	ring.Push(dup)

	ring.Sort()
	if !ring.IsSorted() {
		t.Fatal("ring claims to be unsorted immediately after Sort")
	}
	if len(ring.Enotes) != 8 {
		t.Fatalf("expected duplicate to be removed, got %d enotes", len(ring.Enotes))
	}
}

func TestUnsortedRingDetected(t *testing.T) {
	drbg := testutil.New("ringct-ring-unsorted")
	ring := buildRing(t, drbg, 4)
	ring.Enotes[0], ring.Enotes[1] = ring.Enotes[1], ring.Enotes[0]
	ring.Sort()
	sorted := append([]ringct.Enote{}, ring.Enotes...)
	sorted[0], sorted[1] = sorted[1], sorted[0]
	ring.Enotes = sorted
	if ring.IsSorted() {
		t.Fatal("expected swapped ring to be detected as unsorted")
	}
}
