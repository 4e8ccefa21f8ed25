package stealth_test

import (
	"testing"

	"github.com/concert/ringct"
	"github.com/concert/ringct/internal/testutil"
	"github.com/concert/ringct/stealth"
)

func TestSharedSecretRoundTrip(t *testing.T) {
	drbg := testutil.New("stealth-shared-secret")
	var s stealth.SharedSecret
	copy(s[:], drbg.Data(32))

	decoded, err := stealth.SharedSecretFromBytes(s.Bytes())
	if err != nil {
		t.Fatalf("SharedSecretFromBytes: %v", err)
	}
	if decoded != s {
		t.Fatal("round-tripped shared secret changed")
	}

	if _, err := stealth.SharedSecretFromBytes(drbg.Data(16)); err == nil {
		t.Fatal("expected short input to be rejected")
	}
}

func TestDeriveViewTagDeterministic(t *testing.T) {
	drbg := testutil.New("stealth-view-tag")
	var s stealth.SharedSecret
	copy(s[:], drbg.Data(32))

	tag1 := stealth.DeriveViewTag(s)
	tag2 := stealth.DeriveViewTag(s)
	if tag1 != tag2 {
		t.Fatal("view tag is not deterministic for a fixed shared secret")
	}
}

func TestEncryptDecryptAmountRoundTrip(t *testing.T) {
	drbg := testutil.New("stealth-amount")
	var s stealth.SharedSecret
	copy(s[:], drbg.Data(32))

	for _, value := range []uint64{0, 1, 42, 1 << 40, ^uint64(0)} {
		encrypted := stealth.EncryptAmount(s, value)
		decrypted := stealth.DecryptAmount(s, encrypted)
		if decrypted != value {
			t.Fatalf("amount round trip failed: want %d, got %d", value, decrypted)
		}
	}
}

func TestDeriveSubaddressMasterKeyRejectsEmptyCoordinate(t *testing.T) {
	if _, err := stealth.DeriveSubaddressMasterKey(nil); err == nil || !ringct.ErrUninitializedCoordinates.Is(err) {
		t.Fatalf("expected ErrUninitializedCoordinates, got %v", err)
	}
}

func TestDeriveSubaddressMasterKeyDeterministic(t *testing.T) {
	drbg := testutil.New("stealth-master-key")
	coordinate := drbg.Data(32)

	k1, err := stealth.DeriveSubaddressMasterKey(coordinate)
	if err != nil {
		t.Fatalf("DeriveSubaddressMasterKey: %v", err)
	}
	k2, err := stealth.DeriveSubaddressMasterKey(coordinate)
	if err != nil {
		t.Fatalf("DeriveSubaddressMasterKey: %v", err)
	}
	if !k1.Equal(k2) {
		t.Fatal("master key derivation is not deterministic")
	}
}

func TestDeriveSubaddressSpendKeyVariesByIndex(t *testing.T) {
	drbg := testutil.New("stealth-spend-key")
	master := drbg.Scalar()

	k1 := stealth.DeriveSubaddressSpendKey(master, 0, 1)
	k2 := stealth.DeriveSubaddressSpendKey(master, 0, 2)
	if k1.Equal(k2) {
		t.Fatal("expected different minor indices to derive different spend keys")
	}
}

func TestMapTableInsertAndLookup(t *testing.T) {
	drbg := testutil.New("stealth-map-table")
	table := stealth.NewMapTable()
	_, key := drbg.KeyPair()

	table.Insert(key, 3, 7)
	major, minor, err := table.Lookup(key)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if major != 3 || minor != 7 {
		t.Fatalf("expected (3, 7), got (%d, %d)", major, minor)
	}

	_, other := drbg.KeyPair()
	if _, _, err := table.Lookup(other); err == nil || !ringct.ErrKeyNotFound.Is(err) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestMapTableUninitialized(t *testing.T) {
	var table stealth.MapTable
	_, pub := testutil.New("stealth-uninitialized-table").KeyPair()
	if _, _, err := table.Lookup(pub); err == nil || !ringct.ErrUninitializedTable.Is(err) {
		t.Fatalf("expected ErrUninitializedTable, got %v", err)
	}
}
