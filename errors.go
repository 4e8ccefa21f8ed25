package ringct

import "fmt"

// Serialization errors. ErrDecoding is returned by the commitment,
// range-proof, signature and shared-secret decoders when their input
// does not decode; the group package's decoders return the group
// library's own error instead. No function in this module returns
// ErrEncoding.
var (
	ErrEncoding = fmt.Errorf("ringct: encoding error")
	ErrDecoding = fmt.Errorf("ringct: decoding error")
)

// RangeProofError is the error taxonomy for Borromean and Bulletproofs+
// range proofs.
type RangeProofError struct {
	kind string
	msg  string
}

func (e *RangeProofError) Error() string {
	if e.msg != "" {
		return "ringct: rangeproof: " + e.kind + ": " + e.msg
	}
	return "ringct: rangeproof: " + e.kind
}

func (e *RangeProofError) Is(target error) bool {
	other, ok := target.(*RangeProofError)
	return ok && other.kind == e.kind
}

var (
	// ErrRangeProofInvalid means the proof equation failed to verify.
	ErrRangeProofInvalid = &RangeProofError{kind: "invalid"}
	// ErrRangeProofMalformed means the proof's size or shape was inconsistent.
	ErrRangeProofMalformed = &RangeProofError{kind: "malformed"}
	// ErrTooLargeAggregationSize means more than MaxAggregationSize values were aggregated.
	ErrTooLargeAggregationSize = &RangeProofError{kind: "too_large_aggregation_size"}
	// ErrOutOfRange means a value was >= 2^64. Proved values are uint64,
	// so no function in this module returns it.
	ErrOutOfRange = &RangeProofError{kind: "out_of_range"}
)

// ErrRangeProofUnspecified wraps an unclassified range-proof failure.
func ErrRangeProofUnspecified(msg string) error {
	return &RangeProofError{kind: "unspecified", msg: msg}
}

// SignatureError is the error taxonomy for CLSAG and MLSAG ring
// signatures.
type SignatureError struct {
	kind string
	msg  string
}

func (e *SignatureError) Error() string {
	if e.msg != "" {
		return "ringct: signature: " + e.kind + ": " + e.msg
	}
	return "ringct: signature: " + e.kind
}

func (e *SignatureError) Is(target error) bool {
	other, ok := target.(*SignatureError)
	return ok && other.kind == e.kind
}

var (
	// ErrSignatureInvalid means the ring-signature walk did not close.
	ErrSignatureInvalid = &SignatureError{kind: "invalid"}
	// ErrSignatureMalformed means the signature's shape didn't match the ring.
	ErrSignatureMalformed = &SignatureError{kind: "malformed"}
	// ErrEnoteNotInRing means the signer's enote was absent from the ring.
	ErrEnoteNotInRing = &SignatureError{kind: "enote_not_in_ring"}
	// ErrUnsortedRing means a sorted signing/verification variant was given an unsorted ring.
	ErrUnsortedRing = &SignatureError{kind: "unsorted_ring"}
)

// ErrSignatureUnspecified wraps an unclassified signature failure.
func ErrSignatureUnspecified(msg string) error {
	return &SignatureError{kind: "unspecified", msg: msg}
}

// SubaddressError is the error taxonomy for the external subaddress
// lookup-table boundary. The core only defines the taxonomy; the
// lookup table itself is an external collaborator's responsibility.
type SubaddressError struct {
	kind string
	msg  string
}

func (e *SubaddressError) Error() string {
	if e.msg != "" {
		return "ringct: subaddress: " + e.kind + ": " + e.msg
	}
	return "ringct: subaddress: " + e.kind
}

func (e *SubaddressError) Is(target error) bool {
	other, ok := target.(*SubaddressError)
	return ok && other.kind == e.kind
}

var (
	ErrUninitializedTable       = &SubaddressError{kind: "uninitialized_table"}
	ErrUninitializedCoordinates = &SubaddressError{kind: "uninitialized_coordinates"}
	ErrKeyNotFound              = &SubaddressError{kind: "key_not_found"}
)

// ErrSubaddressUnspecified wraps an unclassified subaddress failure.
func ErrSubaddressUnspecified(msg string) error {
	return &SubaddressError{kind: "unspecified", msg: msg}
}
