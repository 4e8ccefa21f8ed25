package ringct

import (
	"bytes"
	"sort"

	"github.com/concert/ringct/group"
)

// Ring is an ordered sequence of enotes, the anonymity set a ring
// signature hides its true signer within.
type Ring struct {
	Enotes []Enote
}

// NewRing returns an empty ring.
func NewRing() *Ring {
	return &Ring{}
}

// Push appends an enote to the ring.
func (r *Ring) Push(e Enote) {
	r.Enotes = append(r.Enotes, e)
}

// Insert inserts an enote at position index, shifting later enotes
// right.
func (r *Ring) Insert(index int, e Enote) {
	r.Enotes = append(r.Enotes, Enote{})
	copy(r.Enotes[index+1:], r.Enotes[index:])
	r.Enotes[index] = e
}

func ringSortKeys(ring *Ring) [][]byte {
	ownersL, commitmentsC := SeparateRing(ring)
	encodedL, encodedC := EncodeRings(ownersL, commitmentsC)
	keys := make([][]byte, len(ring.Enotes))
	for i := range keys {
		key := make([]byte, 0, 64)
		key = append(key, encodedL[i]...)
		key = append(key, encodedC[i]...)
		keys[i] = key
	}
	return keys
}

// Sort canonicalizes the ring: sorts enotes ascending by the 64-byte
// concatenation of their encoded (owner, commitment), removing
// duplicates.
func (r *Ring) Sort() {
	keys := ringSortKeys(r)
	type indexedKey struct {
		key  []byte
		enot Enote
	}
	rows := make([]indexedKey, len(r.Enotes))
	for i, e := range r.Enotes {
		rows[i] = indexedKey{keys[i], e}
	}
	sort.Slice(rows, func(i, j int) bool {
		return bytes.Compare(rows[i].key, rows[j].key) < 0
	})
	out := make([]Enote, 0, len(rows))
	for i, row := range rows {
		if i > 0 && bytes.Equal(row.key, rows[i-1].key) {
			continue
		}
		out = append(out, row.enot)
	}
	r.Enotes = out
}

// IsSorted reports whether the ring is already in canonical (strictly
// ascending, duplicate-free) order.
func (r *Ring) IsSorted() bool {
	keys := ringSortKeys(r)
	for i := 1; i < len(keys); i++ {
		if bytes.Compare(keys[i-1], keys[i]) >= 0 {
			return false
		}
	}
	return true
}

// SeparateRing splits a ring into parallel owner-key and
// (unshifted) commitment point sequences.
func SeparateRing(r *Ring) (ownersL, commitmentsC []*group.Point) {
	ownersL = make([]*group.Point, len(r.Enotes))
	commitmentsC = make([]*group.Point, len(r.Enotes))
	for i, e := range r.Enotes {
		ownersL[i] = e.Owner
		commitmentsC[i] = e.Commitment.ToPoint()
	}
	return
}

// EncodeRings encodes owner and commitment point sequences using a
// single batched compression call over their concatenation, then
// splits the result back into two parallel byte-slice sequences.
func EncodeRings(ownersL, commitmentsC []*group.Point) (encodedL, encodedC [][]byte) {
	n := len(ownersL)
	combined := make([]*group.Point, 0, n+len(commitmentsC))
	combined = append(combined, ownersL...)
	combined = append(combined, commitmentsC...)
	encoded := group.BatchEncodePoints(combined)
	return encoded[:n], encoded[n:]
}

// ShiftCommitments subtracts the pseudo-output commitment from every
// member of unshiftedC, the transform CLSAG/MLSAG apply to a ring's
// commitments before signing or verifying.
func ShiftCommitments(unshiftedC []*group.Point, pseudoOut Commitment) []*group.Point {
	out := make([]*group.Point, len(unshiftedC))
	for i, c := range unshiftedC {
		out[i] = c.Subtract(pseudoOut.ToPoint())
	}
	return out
}

// KeyImagePoints computes HashToPoint(b, "key_img") for each encoded
// owner-key byte string.
func KeyImagePoints(encodedL [][]byte) []*group.Point {
	out := make([]*group.Point, len(encodedL))
	for i, b := range encodedL {
		out[i] = group.HashToPoint(b, group.DomainKeyImage)
	}
	return out
}

// GetKeyImage returns the key image I = owner * HashToPoint(encode(owner*G), "key_img")
// for a private owning key. For a fixed owner scalar the result is
// stable across any ring, blinding, or message, which is what gives a
// ring signature its double-spend linkage.
func GetKeyImage(owner *group.Scalar) *group.Point {
	ownerPub := group.ScalarBaseMult(owner)
	h := group.HashToPoint(group.EncodePoint(ownerPub), group.DomainKeyImage)
	return h.ScalarMult(owner)
}
