package group

import "golang.org/x/crypto/blake2b"

// Domain separation tags. These must match bit-exactly across
// implementations that interoperate over the same wire format.
const (
	DomainKeyImage      = "key_img"
	DomainCLSAGLinking  = "clsag_link"
	DomainCLSAGAuxiliary = "clsag_aux"
	DomainCLSAGCommit   = "clsag_com"
	DomainECDHTag       = "ecdh_tag"
	DomainECDHEncrypt   = "ecdh_enc"
	DomainECDHPriv      = "ecdh_priv"
	DomainCNView        = "cn_view"
	DomainCNSpend       = "cn_spend"
	DomainSubaddressMV  = "subaddr_mv"
	DomainSubaddressMS  = "subaddr_ms"
	DomainSubaddressSS  = "subaddr_ss"
)

func concatDomain(msg []byte, domain string) []byte {
	if domain == "" {
		return msg
	}
	out := make([]byte, 0, len(msg)+len(domain))
	out = append(out, msg...)
	out = append(out, domain...)
	return out
}

// HashToBytes32 returns the 32-byte Blake2b-256 digest of msg with an
// optional domain separator appended before hashing.
func HashToBytes32(msg []byte, domain string) [32]byte {
	return blake2b.Sum256(concatDomain(msg, domain))
}

// HashToPoint hashes msg (plus optional domain) into the group via a
// Blake2b-512 digest mapped onto Ristretto255 with a uniform-bytes map.
func HashToPoint(msg []byte, domain string) *Point {
	digest := blake2b.Sum512(concatDomain(msg, domain))
	p, err := SetUniformBytes(digest[:])
	if err != nil {
		// SetUniformBytes on a 64-byte Blake2b-512 digest cannot fail;
		// a failure here means the group library changed its contract.
		panic("group: hash-to-point mapping failed: " + err.Error())
	}
	return p
}

// HashToScalar returns the 32-byte Blake2b-256 digest of msg (plus
// optional domain) reduced modulo the scalar group order.
func HashToScalar(msg []byte, domain string) *Scalar {
	digest := HashToBytes32(msg, domain)
	return ScalarFromBytesModOrder(digest[:])
}
