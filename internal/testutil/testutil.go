// Package testutil provides a deterministic random bit generator for
// tests that need reproducible scalars, points, and enote keys without
// touching the system CSPRNG.
package testutil

import (
	"crypto/sha3"
	"io"

	"github.com/concert/ringct"
	"github.com/concert/ringct/group"
)

// DRBG is a deterministic random bit generator based on SHAKE128.
type DRBG struct {
	h *sha3.SHAKE
}

// New returns a new DRBG instance seeded with the given customization
// string. Two DRBGs created with the same string produce identical
// output, which is what lets tests assert against fixed scenarios.
func New(customization string) *DRBG {
	h := sha3.NewSHAKE128()
	_, _ = h.Write([]byte(customization))
	return &DRBG{h}
}

// Data returns n bytes of deterministic output from the DRBG.
func (d *DRBG) Data(n int) []byte {
	b := make([]byte, n)
	_, _ = d.h.Read(b)
	return b
}

// Scalar returns a deterministic scalar.
func (d *DRBG) Scalar() *group.Scalar {
	s, err := group.ScalarFromUniformBytes(d.Data(64))
	if err != nil {
		panic("testutil: scalar reduction failed: " + err.Error())
	}
	return s
}

// Uint64 returns a deterministic 64-bit value, handy for range-proof
// witnesses where any bit pattern is a valid input.
func (d *DRBG) Uint64() uint64 {
	b := d.Data(8)
	var v uint64
	for i, c := range b {
		v |= uint64(c) << (8 * i)
	}
	return v
}

// KeyPair returns a deterministic (private scalar, public point) pair.
func (d *DRBG) KeyPair() (*group.Scalar, *group.Point) {
	x := d.Scalar()
	return x, group.ScalarBaseMult(x)
}

// EnoteKeys returns a deterministic EnoteKeys with the given value.
func (d *DRBG) EnoteKeys(value uint64) ringct.EnoteKeys {
	owner := d.Scalar()
	blinding := d.Scalar()
	return ringct.NewEnoteKeys(owner, value, blinding)
}

// Reader returns a pseudorandom io.Reader seeded from this DRBG,
// independent of the DRBG's own stream.
func (d *DRBG) Reader() io.Reader {
	h := sha3.NewSHAKE128()
	_, _ = h.Write(d.Data(32))
	return h
}
