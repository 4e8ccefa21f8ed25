package group

// EncodePoint returns the 32-byte compressed Ristretto encoding of p.
func EncodePoint(p *Point) []byte {
	return p.Bytes()
}

// BatchEncodePoints returns the compressed encoding of every point in
// ps. The reference construction this library is modeled on performs a
// batched field inversion here (so batch-encoded bytes may differ from
// encode_point applied to the same point individually); the Ristretto
// implementation this module depends on does not expose the raw field
// coordinates a batched inversion needs, so this is a per-point
// encoding loop. Within any single protocol step only one of
// EncodePoint/BatchEncodePoints is ever used consistently, so this
// simplification does not affect correctness, only that our batch and
// single encodings happen to coincide.
func BatchEncodePoints(ps []*Point) [][]byte {
	out := make([][]byte, len(ps))
	for i, p := range ps {
		out[i] = p.Bytes()
	}
	return out
}
