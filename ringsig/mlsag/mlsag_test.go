package mlsag_test

import (
	"testing"

	"github.com/concert/ringct"
	"github.com/concert/ringct/internal/testutil"
	"github.com/concert/ringct/ringsig/mlsag"
)

func buildSignedRing(t *testing.T, drbg *testutil.DRBG, size int, value uint64) (*ringct.Ring, ringct.EnoteKeys) {
	t.Helper()
	signer := drbg.EnoteKeys(value)
	ring := ringct.NewRing()
	for i := 0; i < size-1; i++ {
		ring.Push(drbg.EnoteKeys(drbg.Uint64()).ToEnote())
	}
	ring.Push(signer.ToEnote())
	ring.Sort()
	return ring, signer
}

func TestSignVerifyRoundTrip(t *testing.T) {
	drbg := testutil.New("mlsag-round-trip")
	ring, signer := buildSignedRing(t, drbg, 11, 42)
	msg := []byte("this is a test")

	pseudoOut, sig, err := mlsag.Sign(ring, signer, drbg.Scalar(), msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := mlsag.Verify(sig, ring, pseudoOut, msg); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := mlsag.Verify(sig, ring, pseudoOut, []byte("tampered")); err == nil {
		t.Fatal("expected verification to fail against a different message")
	}
}

func TestKeyImageStableAcrossRings(t *testing.T) {
	drbg := testutil.New("mlsag-key-image-stable")
	signer := drbg.EnoteKeys(3)

	ring1, _ := buildSignedRing(t, drbg, 3, 0)
	ring1.Push(signer.ToEnote())
	ring1.Sort()
	ring2, _ := buildSignedRing(t, drbg, 6, 0)
	ring2.Push(signer.ToEnote())
	ring2.Sort()

	_, sig1, err := mlsag.Sign(ring1, signer, drbg.Scalar(), []byte("one"))
	if err != nil {
		t.Fatalf("Sign ring1: %v", err)
	}
	_, sig2, err := mlsag.Sign(ring2, signer, drbg.Scalar(), []byte("two"))
	if err != nil {
		t.Fatalf("Sign ring2: %v", err)
	}
	if !sig1.KeyImage.Equal(sig2.KeyImage) {
		t.Fatal("key images diverged for the same signing key")
	}
}

func TestSignAndSortAcceptsUnsortedRing(t *testing.T) {
	drbg := testutil.New("mlsag-sign-and-sort")
	ring := ringct.NewRing()
	signer := drbg.EnoteKeys(1)
	for i := 0; i < 5; i++ {
		ring.Push(drbg.EnoteKeys(drbg.Uint64()).ToEnote())
	}
	ring.Push(signer.ToEnote())

	pseudoOut, sig, err := mlsag.SignAndSort(ring, signer, drbg.Scalar(), []byte("msg"))
	if err != nil {
		t.Fatalf("SignAndSort: %v", err)
	}
	if err := mlsag.Verify(sig, ring, pseudoOut, []byte("msg")); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestSignRejectsEnoteNotInRing(t *testing.T) {
	drbg := testutil.New("mlsag-not-in-ring")
	ring := ringct.NewRing()
	for i := 0; i < 4; i++ {
		ring.Push(drbg.EnoteKeys(drbg.Uint64()).ToEnote())
	}
	ring.Sort()
	outsider := drbg.EnoteKeys(9)

	_, _, err := mlsag.Sign(ring, outsider, drbg.Scalar(), []byte("msg"))
	if err == nil || !ringct.ErrEnoteNotInRing.Is(err) {
		t.Fatalf("expected ErrEnoteNotInRing, got %v", err)
	}
}

func TestSerializationRoundTrip(t *testing.T) {
	drbg := testutil.New("mlsag-serialization")
	ring, signer := buildSignedRing(t, drbg, 6, 1)
	_, sig, err := mlsag.Sign(ring, signer, drbg.Scalar(), []byte("msg"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	decoded, err := mlsag.FromBytes(sig.Bytes(), len(ring.Enotes))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if string(decoded.Bytes()) != string(sig.Bytes()) {
		t.Fatal("round-tripped signature bytes differ")
	}
}
