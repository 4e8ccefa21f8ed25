// Package group wraps the Ristretto255 prime-order group (scalars and
// points) and the domain-separated digest functions every other package
// in this module builds on.
package group

import (
	"crypto/rand"
	"fmt"

	"github.com/gtank/ristretto255"
)

// Scalar is an element of the Ristretto255 scalar field.
type Scalar struct {
	s *ristretto255.Scalar
}

// NewScalar returns the zero scalar.
func NewScalar() *Scalar {
	return &Scalar{ristretto255.NewScalar()}
}

// ScalarFromUint64 returns the scalar representing the given value.
func ScalarFromUint64(v uint64) *Scalar {
	var b [8]byte
	for i := range b {
		b[i] = byte(v >> (8 * i))
	}
	var wide [64]byte
	copy(wide[:8], b[:])
	s, _ := ristretto255.NewScalar().SetUniformBytes(wide[:])
	return &Scalar{s}
}

// ScalarFromUniformBytes reduces 64 bytes of uniform input mod the
// group order, the same map RandomScalar and test DRBGs use to turn
// arbitrary entropy into a scalar.
func ScalarFromUniformBytes(b []byte) (*Scalar, error) {
	s, err := ristretto255.NewScalar().SetUniformBytes(b)
	if err != nil {
		return nil, fmt.Errorf("group: reducing scalar: %w", err)
	}
	return &Scalar{s}, nil
}

// RandomScalar draws a uniform scalar from 64 bytes of system randomness
// reduced mod the group order.
func RandomScalar() (*Scalar, error) {
	var b [64]byte
	if _, err := rand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("group: reading random bytes: %w", err)
	}
	s, err := ristretto255.NewScalar().SetUniformBytes(b[:])
	if err != nil {
		return nil, fmt.Errorf("group: reducing random scalar: %w", err)
	}
	return &Scalar{s}, nil
}

// ScalarFromBytesModOrder reduces a little-endian 32-byte integer mod the
// group order. It is exact (not an approximation): zero-extending to 64
// bytes before a wide reduction is mathematically identical to reducing
// the 32-byte integer directly.
func ScalarFromBytesModOrder(b []byte) *Scalar {
	var wide [64]byte
	copy(wide[:32], b)
	s, _ := ristretto255.NewScalar().SetUniformBytes(wide[:])
	return &Scalar{s}
}

// SetCanonicalBytes decodes a canonical 32-byte little-endian scalar
// encoding, rejecting non-canonical representatives.
func (s *Scalar) SetCanonicalBytes(b []byte) (*Scalar, error) {
	inner, err := ristretto255.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, err
	}
	return &Scalar{inner}, nil
}

// Bytes returns the canonical little-endian 32-byte encoding.
func (s *Scalar) Bytes() []byte {
	return s.s.Bytes()
}

// Equal reports whether s and t represent the same scalar.
func (s *Scalar) Equal(t *Scalar) bool {
	return s.s.Equal(t.s) == 1
}

// Add returns s + t.
func (s *Scalar) Add(t *Scalar) *Scalar {
	return &Scalar{ristretto255.NewScalar().Add(s.s, t.s)}
}

// Subtract returns s - t.
func (s *Scalar) Subtract(t *Scalar) *Scalar {
	return &Scalar{ristretto255.NewScalar().Subtract(s.s, t.s)}
}

// Multiply returns s * t.
func (s *Scalar) Multiply(t *Scalar) *Scalar {
	return &Scalar{ristretto255.NewScalar().Multiply(s.s, t.s)}
}

// Negate returns -s.
func (s *Scalar) Negate() *Scalar {
	return &Scalar{ristretto255.NewScalar().Negate(s.s)}
}

// Invert returns the multiplicative inverse of s.
func (s *Scalar) Invert() *Scalar {
	return &Scalar{ristretto255.NewScalar().Invert(s.s)}
}

// IsZero reports whether s is the additive identity.
func (s *Scalar) IsZero() bool {
	return s.Equal(NewScalar())
}

// Zero clears the scalar's backing bytes in place. Call this on secret
// scalars when their owning structure is dropped.
func (s *Scalar) Zero() {
	s.s.Subtract(s.s, s.s)
}
