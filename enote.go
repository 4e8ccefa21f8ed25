package ringct

import "github.com/concert/ringct/group"

// Enote is a spendable output in public form: an owner public key and
// the commitment to its value.
type Enote struct {
	Owner      *group.Point
	Commitment Commitment
}

// NewEnote returns an Enote wrapping owner and commitment.
func NewEnote(owner *group.Point, commitment Commitment) Enote {
	return Enote{Owner: owner, Commitment: commitment}
}

// Equal reports whether e and f describe the same enote.
func (e Enote) Equal(f Enote) bool {
	return e.Owner.Equal(f.Owner) && e.Commitment.Equal(f.Commitment)
}

// Bytes returns the 64-byte owner||commitment encoding.
func (e Enote) Bytes() []byte {
	out := make([]byte, 0, 64)
	out = append(out, e.Owner.Bytes()...)
	out = append(out, e.Commitment.Bytes()...)
	return out
}

// EnoteKeys is the private counterpart to an Enote: the owning scalar,
// the value it commits to, and the commitment's blinding factor.
//
// EnoteKeys holds secret scalars. Go has no destructor equivalent to
// the zeroize-on-drop pattern the private key types in this module's
// reference are built from, so callers MUST call Clear explicitly
// (typically via defer) once the keys are no longer needed.
type EnoteKeys struct {
	Owner    *group.Scalar
	Value    uint64
	Blinding *group.Scalar
}

// NewEnoteKeys returns an EnoteKeys instance given an owning private
// key, a value, and a blinding factor.
func NewEnoteKeys(owner *group.Scalar, value uint64, blinding *group.Scalar) EnoteKeys {
	return EnoteKeys{Owner: owner, Value: value, Blinding: blinding}
}

// ToEnote turns these private keys into the corresponding public Enote.
func (k EnoteKeys) ToEnote() Enote {
	return Enote{
		Owner:      group.ScalarBaseMult(k.Owner),
		Commitment: Commit(k.Value, k.Blinding),
	}
}

// KeyImage returns the key image of this enote's owning key.
func (k EnoteKeys) KeyImage() *group.Point {
	return GetKeyImage(k.Owner)
}

// Clear zeroizes the secret scalars in place. Call this when the keys
// are no longer needed.
func (k *EnoteKeys) Clear() {
	k.Owner.Zero()
	k.Blinding.Zero()
	k.Value = 0
}
