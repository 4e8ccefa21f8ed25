// Package stealth defines the boundary types an external stealth-address
// layer exchanges with this module: shared secrets, view tags, encrypted
// amounts, and subaddress lookup records. The core treats these as opaque
// data; it never derives addresses or manages a lookup table itself.
package stealth

import (
	"encoding/binary"

	"github.com/concert/ringct"
	"github.com/concert/ringct/group"
)

// SharedSecret is an ECDH output used as key material for view tags,
// amount encryption, and stealth address derivation.
type SharedSecret [32]byte

// Bytes returns the raw 32 bytes.
func (s SharedSecret) Bytes() []byte {
	return s[:]
}

// SharedSecretFromBytes wraps an existing 32-byte value.
func SharedSecretFromBytes(b []byte) (SharedSecret, error) {
	var s SharedSecret
	if len(b) != 32 {
		return s, ringct.ErrDecoding
	}
	copy(s[:], b)
	return s, nil
}

// ViewTag is a one-byte public scanning hint: a 1/256 false-positive
// rate and never a false negative, since it is a deterministic function
// of the shared secret a true recipient always recomputes identically.
type ViewTag = byte

// DeriveViewTag returns the scanning hint for a shared secret.
func DeriveViewTag(shared SharedSecret) ViewTag {
	digest := group.HashToBytes32(shared.Bytes(), group.DomainECDHTag)
	return digest[0]
}

// EncryptAmount XORs value with a keystream derived from the shared
// secret, the same construction DecryptAmount reverses.
func EncryptAmount(shared SharedSecret, value uint64) [8]byte {
	keystream := group.HashToBytes32(shared.Bytes(), group.DomainECDHEncrypt)
	var plain, out [8]byte
	binary.LittleEndian.PutUint64(plain[:], value)
	for i := range out {
		out[i] = plain[i] ^ keystream[i]
	}
	return out
}

// DecryptAmount reverses EncryptAmount.
func DecryptAmount(shared SharedSecret, encrypted [8]byte) uint64 {
	keystream := group.HashToBytes32(shared.Bytes(), group.DomainECDHEncrypt)
	var plain [8]byte
	for i := range plain {
		plain[i] = encrypted[i] ^ keystream[i]
	}
	return binary.LittleEndian.Uint64(plain[:])
}

// AsScalar reduces the shared secret bytes to a scalar, the form used
// to derive further key material (e.g. a one-time output key tweak)
// from an ECDH output.
func (s SharedSecret) AsScalar() *group.Scalar {
	return group.HashToScalar(s.Bytes(), "")
}

// ECDHPrivateKey is a one-time private key used only to compute shared
// secrets with a counterparty's public key.
type ECDHPrivateKey struct {
	scalar *group.Scalar
}

// NewECDHPrivateKey derives a private key deterministically from seed
// bytes (e.g. a master secret plus an output index).
func NewECDHPrivateKey(seed []byte) ECDHPrivateKey {
	return ECDHPrivateKey{scalar: group.HashToScalar(seed, group.DomainECDHPriv)}
}

// ECDHPrivateKeyFromScalar wraps an existing scalar.
func ECDHPrivateKeyFromScalar(s *group.Scalar) ECDHPrivateKey {
	return ECDHPrivateKey{scalar: s}
}

// Public returns the corresponding public key, scalar·G.
func (k ECDHPrivateKey) Public() ECDHPublicKey {
	return ECDHPublicKey{point: group.ScalarBaseMult(k.scalar)}
}

// SharedSecretWith computes the ECDH shared secret with other's public
// key: scalar(k)·point(other).
func (k ECDHPrivateKey) SharedSecretWith(other ECDHPublicKey) SharedSecret {
	return sharedSecretFromPoint(other.point.ScalarMult(k.scalar))
}

// ECDHPublicKey is the public half of an ECDH keypair.
type ECDHPublicKey struct {
	point *group.Point
}

// ECDHPublicKeyFromPoint wraps an existing point.
func ECDHPublicKeyFromPoint(p *group.Point) ECDHPublicKey {
	return ECDHPublicKey{point: p}
}

// Point returns the underlying point.
func (k ECDHPublicKey) Point() *group.Point {
	return k.point
}

func sharedSecretFromPoint(p *group.Point) SharedSecret {
	var s SharedSecret
	copy(s[:], p.Bytes())
	return s
}

// Recipient is the opaque record an external "receive" flow hands to
// the core: a one-time public key, an optional transaction public key,
// a scanning hint, and an encrypted amount. The core never inspects
// these fields beyond passing them through.
type Recipient struct {
	PublicKey       *group.Point
	TransactionKey  *group.Point // nil when not applicable to the sending scheme
	ViewTag         ViewTag
	EncryptedAmount [8]byte
}

// DeriveSubaddressMasterKey derives the master view/spend tweak used to
// walk a subaddress lookup table, given the encoded coordinate bytes of
// the account's public key.
//
// The upstream construction this is ported from concatenates the same
// coordinate bytes twice, rather than an x- and y-coordinate pair, when
// building the hash input below. That looks like a bug, but fixing it
// would change every derived subaddress key and break compatibility
// with anything that already used the upstream derivation, so it is
// preserved here exactly rather than silently corrected. Flag this to
// upstream before relying on it in a new deployment.
func DeriveSubaddressMasterKey(coordinate []byte) (*group.Scalar, error) {
	if len(coordinate) == 0 {
		return nil, ringct.ErrUninitializedCoordinates
	}
	msg := make([]byte, 0, 2*len(coordinate))
	msg = append(msg, coordinate...)
	msg = append(msg, coordinate...)
	return group.HashToScalar(msg, group.DomainSubaddressMV), nil
}

// DeriveSubaddressSpendKey derives a subaddress's spend-key tweak for
// account index (major, minor).
func DeriveSubaddressSpendKey(masterKey *group.Scalar, major, minor uint32) *group.Scalar {
	var idx [8]byte
	binary.LittleEndian.PutUint32(idx[:4], major)
	binary.LittleEndian.PutUint32(idx[4:], minor)
	msg := append(append([]byte{}, masterKey.Bytes()...), idx[:]...)
	return group.HashToScalar(msg, group.DomainSubaddressSS)
}

// SubaddressTable maps a one-time public key back to the (major, minor)
// account index that produced it. Populating and persisting this table
// is entirely an external collaborator's responsibility; the core only
// defines the error taxonomy (ringct.ErrUninitializedTable,
// ringct.ErrUninitializedCoordinates, ringct.ErrKeyNotFound) a table
// implementation is expected to return.
type SubaddressTable interface {
	Lookup(key *group.Point) (major, minor uint32, err error)
}

// MapTable is a minimal in-memory SubaddressTable keyed by compressed
// point encoding, suitable for tests and small deployments.
type MapTable struct {
	entries map[[32]byte][2]uint32
}

// NewMapTable returns an empty table.
func NewMapTable() *MapTable {
	return &MapTable{entries: make(map[[32]byte][2]uint32)}
}

// Insert records that key was derived at account index (major, minor).
func (t *MapTable) Insert(key *group.Point, major, minor uint32) {
	var k [32]byte
	copy(k[:], key.Bytes())
	t.entries[k] = [2]uint32{major, minor}
}

// Lookup implements SubaddressTable.
func (t *MapTable) Lookup(key *group.Point) (uint32, uint32, error) {
	if t.entries == nil {
		return 0, 0, ringct.ErrUninitializedTable
	}
	var k [32]byte
	copy(k[:], key.Bytes())
	idx, ok := t.entries[k]
	if !ok {
		return 0, 0, ringct.ErrKeyNotFound
	}
	return idx[0], idx[1], nil
}
