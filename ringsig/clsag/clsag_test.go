package clsag_test

import (
	"testing"

	"github.com/concert/ringct"
	"github.com/concert/ringct/internal/testutil"
	"github.com/concert/ringct/ringsig/clsag"
)

func buildSignedRing(t *testing.T, drbg *testutil.DRBG, size int, value uint64) (*ringct.Ring, ringct.EnoteKeys) {
	t.Helper()
	signer := drbg.EnoteKeys(value)
	ring := ringct.NewRing()
	for i := 0; i < size-1; i++ {
		decoy := drbg.EnoteKeys(drbg.Uint64())
		ring.Push(decoy.ToEnote())
	}
	ring.Push(signer.ToEnote())
	ring.Sort()
	return ring, signer
}

func TestSignVerifyRoundTrip(t *testing.T) {
	drbg := testutil.New("clsag-round-trip")
	ring, signer := buildSignedRing(t, drbg, 16, 5_000_000)
	pseudoR := drbg.Scalar()
	msg := []byte("this is a test")

	pseudoOut, sig, err := clsag.Sign(ring, signer, pseudoR, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := clsag.Verify(sig, ring, pseudoOut, msg); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := clsag.Verify(sig, ring, pseudoOut, []byte("wrong")); err == nil {
		t.Fatal("expected verification to fail against a different message")
	}
}

func TestKeyImageStableAcrossRingsAndMessages(t *testing.T) {
	drbg := testutil.New("clsag-key-image-stable")
	signer := drbg.EnoteKeys(10)

	ring1 := ringct.NewRing()
	ring1.Push(drbg.EnoteKeys(drbg.Uint64()).ToEnote())
	ring1.Push(signer.ToEnote())
	ring1.Sort()

	ring2 := ringct.NewRing()
	for i := 0; i < 5; i++ {
		ring2.Push(drbg.EnoteKeys(drbg.Uint64()).ToEnote())
	}
	ring2.Push(signer.ToEnote())
	ring2.Sort()

	_, sig1, err := clsag.Sign(ring1, signer, drbg.Scalar(), []byte("a"))
	if err != nil {
		t.Fatalf("Sign ring1: %v", err)
	}
	_, sig2, err := clsag.Sign(ring2, signer, drbg.Scalar(), []byte("b"))
	if err != nil {
		t.Fatalf("Sign ring2: %v", err)
	}
	if !sig1.KeyImage.Equal(sig2.KeyImage) {
		t.Fatal("key images diverged for the same signing key")
	}
}

func TestSignRejectsUnsortedRing(t *testing.T) {
	drbg := testutil.New("clsag-unsorted")
	ring, signer := buildSignedRing(t, drbg, 4, 1)
	ring.Enotes[0], ring.Enotes[1] = ring.Enotes[1], ring.Enotes[0]

	_, _, err := clsag.Sign(ring, signer, drbg.Scalar(), []byte("msg"))
	if err == nil || !ringct.ErrUnsortedRing.Is(err) {
		t.Fatalf("expected ErrUnsortedRing, got %v", err)
	}
}

func TestSignRejectsEnoteNotInRing(t *testing.T) {
	drbg := testutil.New("clsag-not-in-ring")
	ring := ringct.NewRing()
	for i := 0; i < 4; i++ {
		ring.Push(drbg.EnoteKeys(drbg.Uint64()).ToEnote())
	}
	ring.Sort()
	outsider := drbg.EnoteKeys(5)

	_, _, err := clsag.Sign(ring, outsider, drbg.Scalar(), []byte("msg"))
	if err == nil || !ringct.ErrEnoteNotInRing.Is(err) {
		t.Fatalf("expected ErrEnoteNotInRing, got %v", err)
	}
}

func TestSerializationRoundTrip(t *testing.T) {
	drbg := testutil.New("clsag-serialization")
	ring, signer := buildSignedRing(t, drbg, 8, 1)
	_, sig, err := clsag.Sign(ring, signer, drbg.Scalar(), []byte("msg"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	decoded, err := clsag.FromBytes(sig.Bytes(), len(ring.Enotes))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if string(decoded.Bytes()) != string(sig.Bytes()) {
		t.Fatal("round-tripped signature bytes differ")
	}
}
