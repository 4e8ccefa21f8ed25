package bulletplus

import "github.com/concert/ringct/group"

// transcriptLabel is the Fiat-Shamir domain every proof transcript is
// seeded with.
const transcriptLabel = "Bulletproofs+ Rangeproofs"

// transcript accumulates the public values of a proof in order and
// derives challenge scalars from the running state, giving prover and
// verifier an identical, replayable challenge schedule.
type transcript struct {
	state []byte
}

func newTranscript(label string) *transcript {
	return &transcript{state: []byte(label)}
}

func (t *transcript) appendPoint(label string, p *group.Point) {
	t.state = append(t.state, []byte(label)...)
	t.state = append(t.state, group.EncodePoint(p)...)
}

func (t *transcript) appendUint64(label string, v uint64) {
	t.state = append(t.state, []byte(label)...)
	s := group.ScalarFromUint64(v)
	t.state = append(t.state, s.Bytes()...)
}

func (t *transcript) challengeScalar(label string) *group.Scalar {
	c := group.HashToScalar(t.state, label)
	t.state = append(t.state, []byte(label)...)
	t.state = append(t.state, c.Bytes()...)
	return c
}
