// Package bulletplus implements Bulletproofs+ aggregated range proofs:
// a logarithmic-size proof that a batch of Pedersen commitments each
// open to a value in [0, 2^64), built from a bit-decomposition
// polynomial identity and an inner-product argument.
//
// The proof has the structure of the original Bulletproofs protocol:
// commitments T1 and T2 to the polynomial coefficients, the tau_x, mu
// and t_hat openings, and an unweighted inner-product argument. It does
// not use the weighted inner-product argument of Bulletproofs+, and its
// proofs are not interchangeable with Bulletproofs+ proofs.
package bulletplus

import (
	"bytes"

	"github.com/concert/ringct"
	"github.com/concert/ringct/group"
	"github.com/concert/ringct/pedersen"
)

const (
	// BitRange is the number of bits every aggregated value is proved
	// to fit within.
	BitRange = 64
	// MaxValue is the largest value a range proof can cover; for a
	// uint64 witness this is never exceeded by construction, so the
	// corresponding out-of-range check can never trigger here.
	MaxValue = ^uint64(0)
	// MaxAggregationSize bounds how many values a single proof may
	// cover, and how many proofs a single BatchVerify shard processes.
	MaxAggregationSize = 256
)

func log2PowerOfTwo(n int) int {
	r := 0
	for n > 1 {
		n >>= 1
		r++
	}
	return r
}

// RangeProof is an aggregated Bulletproofs+ range proof over a padded
// power-of-two batch of commitments.
type RangeProof struct {
	A, S, T1, T2   *group.Point
	TauX, Mu, THat *group.Scalar
	Ls, Rs         []*group.Point
	FinalA, FinalB *group.Scalar
}

func padCommitments(real []ringct.Commitment, pad int) []ringct.Commitment {
	out := make([]ringct.Commitment, pad+len(real))
	identity := ringct.FromPoint(group.Identity())
	for i := 0; i < pad; i++ {
		out[i] = identity
	}
	copy(out[pad:], real)
	return out
}

func bitsOf(values []uint64, m int) ([]*group.Scalar, []*group.Scalar) {
	n := m * BitRange
	aL := make([]*group.Scalar, n)
	aR := make([]*group.Scalar, n)
	one := group.ScalarFromUint64(1)
	minusOne := one.Negate()
	zero := group.NewScalar()
	for j := 0; j < m; j++ {
		for k := 0; k < BitRange; k++ {
			idx := j*BitRange + k
			if (values[j]>>uint(k))&1 == 1 {
				aL[idx], aR[idx] = one, zero
			} else {
				aL[idx], aR[idx] = zero, minusOne
			}
		}
	}
	return aL, aR
}

// Prove constructs an aggregated range proof for values under
// blindings, returning the per-value commitments alongside the proof.
func Prove(values []uint64, blindings []*group.Scalar) ([]ringct.Commitment, *RangeProof, error) {
	m := len(values)
	if m == 0 || len(blindings) != m {
		return nil, nil, ringct.ErrRangeProofUnspecified("values and blindings must be equal in number and non-empty")
	}
	if m > MaxAggregationSize {
		return nil, nil, ringct.ErrTooLargeAggregationSize
	}

	M := nextPowerOfTwo(m)
	pad := M - m
	N := M * BitRange

	paddedValues := make([]uint64, M)
	copy(paddedValues[pad:], values)
	paddedBlindings := make([]*group.Scalar, M)
	for i := 0; i < pad; i++ {
		paddedBlindings[i] = group.NewScalar()
	}
	copy(paddedBlindings[pad:], blindings)

	commitments := make([]ringct.Commitment, m)
	for i, v := range values {
		commitments[i] = ringct.Commit(v, blindings[i])
	}
	paddedCommitments := padCommitments(commitments, pad)

	gi, hi := gens.vectors(N)
	u := ipaBase()

	aL, aR := bitsOf(paddedValues, M)

	alpha, err := group.RandomScalar()
	if err != nil {
		return nil, nil, err
	}
	A := pedersen.G().ScalarMult(alpha).Add(weightedPointSum(aL, gi)).Add(weightedPointSum(aR, hi))

	sL := make([]*group.Scalar, N)
	sR := make([]*group.Scalar, N)
	for i := 0; i < N; i++ {
		if sL[i], err = group.RandomScalar(); err != nil {
			return nil, nil, err
		}
		if sR[i], err = group.RandomScalar(); err != nil {
			return nil, nil, err
		}
	}
	rho, err := group.RandomScalar()
	if err != nil {
		return nil, nil, err
	}
	S := pedersen.G().ScalarMult(rho).Add(weightedPointSum(sL, gi)).Add(weightedPointSum(sR, hi))

	tr := newTranscript(transcriptLabel)
	for _, c := range paddedCommitments {
		tr.appendPoint("C", c.ToPoint())
	}
	tr.appendPoint("A", A)
	tr.appendPoint("S", S)
	y := tr.challengeScalar("y")
	z := tr.challengeScalar("z")

	yPow := scalarPowers(y, N)
	zPow := scalarPowers(z, M+2)[2:]
	twoPow := scalarPowers(group.ScalarFromUint64(2), BitRange)

	l0 := make([]*group.Scalar, N)
	r0 := make([]*group.Scalar, N)
	for j := 0; j < M; j++ {
		for k := 0; k < BitRange; k++ {
			idx := j*BitRange + k
			l0[idx] = aL[idx].Subtract(z)
			r0[idx] = yPow[idx].Multiply(aR[idx].Add(z)).Add(zPow[j].Multiply(twoPow[k]))
		}
	}
	l1 := sL
	r1 := scalarVecMulElem(yPow, sR)

	t0 := innerProduct(l0, r0)
	t1 := innerProduct(l0, r1).Add(innerProduct(l1, r0))
	t2 := innerProduct(l1, r1)

	tau1, err := group.RandomScalar()
	if err != nil {
		return nil, nil, err
	}
	tau2, err := group.RandomScalar()
	if err != nil {
		return nil, nil, err
	}
	T1 := pedersen.G().ScalarMult(tau1).Add(pedersen.H().ScalarMult(t1))
	T2 := pedersen.G().ScalarMult(tau2).Add(pedersen.H().ScalarMult(t2))

	tr.appendPoint("T1", T1)
	tr.appendPoint("T2", T2)
	x := tr.challengeScalar("x")
	xSq := x.Multiply(x)

	l := scalarVecAdd(l0, scalarVecScale(l1, x))
	r := scalarVecAdd(r0, scalarVecScale(r1, x))
	tHat := t0.Add(t1.Multiply(x)).Add(t2.Multiply(xSq))

	tauX := tau1.Multiply(x).Add(tau2.Multiply(xSq))
	for j := 0; j < M; j++ {
		tauX = tauX.Add(zPow[j].Multiply(paddedBlindings[j]))
	}
	mu := alpha.Add(rho.Multiply(x))

	yInvPow := scalarVecInvert(yPow)
	hiPrime := make([]*group.Point, N)
	for i := 0; i < N; i++ {
		hiPrime[i] = hi[i].ScalarMult(yInvPow[i])
	}

	ls, rs, a, b := ipaProve(tr, gi, hiPrime, u, l, r)

	for i := range aL {
		aL[i].Zero()
		aR[i].Zero()
		sL[i].Zero()
		sR[i].Zero()
	}
	alpha.Zero()
	rho.Zero()
	tau1.Zero()
	tau2.Zero()

	return commitments, &RangeProof{
		A: A, S: S, T1: T1, T2: T2,
		TauX: tauX, Mu: mu, THat: tHat,
		Ls: ls, Rs: rs, FinalA: a, FinalB: b,
	}, nil
}

// Verify checks proof against an ordered batch of commitments.
func Verify(commitments []ringct.Commitment, proof *RangeProof) error {
	m := len(commitments)
	if m == 0 {
		return ringct.ErrRangeProofUnspecified("no commitments to verify")
	}
	if m > MaxAggregationSize {
		return ringct.ErrTooLargeAggregationSize
	}

	M := nextPowerOfTwo(m)
	pad := M - m
	N := M * BitRange
	rounds := log2PowerOfTwo(N)
	if len(proof.Ls) != rounds || len(proof.Rs) != rounds {
		return ringct.ErrRangeProofMalformed
	}

	paddedCommitments := padCommitments(commitments, pad)
	gi, hi := gens.vectors(N)
	u := ipaBase()

	tr := newTranscript(transcriptLabel)
	for _, c := range paddedCommitments {
		tr.appendPoint("C", c.ToPoint())
	}
	tr.appendPoint("A", proof.A)
	tr.appendPoint("S", proof.S)
	y := tr.challengeScalar("y")
	z := tr.challengeScalar("z")

	tr.appendPoint("T1", proof.T1)
	tr.appendPoint("T2", proof.T2)
	x := tr.challengeScalar("x")
	xSq := x.Multiply(x)

	yPow := scalarPowers(y, N)
	zPow := scalarPowers(z, M+2)[2:]
	twoPow := scalarPowers(group.ScalarFromUint64(2), BitRange)

	ySum := group.NewScalar()
	for _, yi := range yPow {
		ySum = ySum.Add(yi)
	}
	twoSum := group.NewScalar()
	for _, tp := range twoPow {
		twoSum = twoSum.Add(tp)
	}
	zSum := group.NewScalar()
	for _, zp := range zPow {
		zSum = zSum.Add(zp)
	}
	zSq := z.Multiply(z)
	delta := z.Subtract(zSq).Multiply(ySum).Subtract(z.Multiply(twoSum).Multiply(zSum))

	lhs := pedersen.H().ScalarMult(proof.THat).Add(pedersen.G().ScalarMult(proof.TauX))
	rhs := pedersen.H().ScalarMult(delta)
	for j := 0; j < M; j++ {
		rhs = rhs.Add(paddedCommitments[j].ToPoint().ScalarMult(zPow[j]))
	}
	rhs = rhs.Add(proof.T1.ScalarMult(x)).Add(proof.T2.ScalarMult(xSq))
	if !lhs.Equal(rhs) {
		return ringct.ErrRangeProofInvalid
	}

	yInvPow := scalarVecInvert(yPow)
	hiPrime := make([]*group.Point, N)
	for i := 0; i < N; i++ {
		hiPrime[i] = hi[i].ScalarMult(yInvPow[i])
	}

	sumGi := pointVecSum(gi)
	sumHi := pointVecSum(hi)
	weight := make([]*group.Scalar, N)
	for j := 0; j < M; j++ {
		for k := 0; k < BitRange; k++ {
			weight[j*BitRange+k] = zPow[j].Multiply(twoPow[k])
		}
	}
	weightedDeltaHiPrime := vartimeWeightedPointSum(weight, hiPrime)

	p := proof.A.Add(proof.S.ScalarMult(x)).
		Subtract(pedersen.G().ScalarMult(proof.Mu)).
		Add(sumHi.Subtract(sumGi).ScalarMult(z)).
		Add(weightedDeltaHiPrime).
		Add(u.ScalarMult(proof.THat))

	if !ipaVerify(tr, gi, hiPrime, u, p, proof.Ls, proof.Rs, proof.FinalA, proof.FinalB) {
		return ringct.ErrRangeProofInvalid
	}
	return nil
}

// BatchVerify checks many proofs, each against its own commitment
// batch, walking them in shards of at most MaxAggregationSize proofs.
// Every proof in a shard is verified on its own with Verify; proofs are
// not combined into a single randomized check, so this costs the same
// work as verifying each proof in sequence.
func BatchVerify(commitmentSets [][]ringct.Commitment, proofs []*RangeProof) error {
	if len(commitmentSets) != len(proofs) {
		return ringct.ErrRangeProofUnspecified("mismatched commitment and proof counts")
	}
	for start := 0; start < len(proofs); start += MaxAggregationSize {
		end := start + MaxAggregationSize
		if end > len(proofs) {
			end = len(proofs)
		}
		for i := start; i < end; i++ {
			if err := Verify(commitmentSets[i], proofs[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Bytes serializes the proof: A, S, T1, T2, tau_x, mu, t_hat, then the
// L, R pair for each inner-product round, then the final a, b scalars.
func (p *RangeProof) Bytes() []byte {
	var buf bytes.Buffer
	buf.Write(p.A.Bytes())
	buf.Write(p.S.Bytes())
	buf.Write(p.T1.Bytes())
	buf.Write(p.T2.Bytes())
	buf.Write(p.TauX.Bytes())
	buf.Write(p.Mu.Bytes())
	buf.Write(p.THat.Bytes())
	for i := range p.Ls {
		buf.Write(p.Ls[i].Bytes())
		buf.Write(p.Rs[i].Bytes())
	}
	buf.Write(p.FinalA.Bytes())
	buf.Write(p.FinalB.Bytes())
	return buf.Bytes()
}

// FromBytes parses a serialized RangeProof with the given number of
// inner-product rounds (log2 of the padded bit-vector length).
func FromBytes(b []byte, rounds int) (*RangeProof, error) {
	expected := 7*32 + rounds*2*32 + 2*32
	if len(b) != expected {
		return nil, ringct.ErrRangeProofMalformed
	}
	off := 0
	readPoint := func() (*group.Point, error) {
		p, err := group.SetCanonicalBytes(b[off : off+32])
		off += 32
		return p, err
	}
	readScalar := func() (*group.Scalar, error) {
		s, err := group.NewScalar().SetCanonicalBytes(b[off : off+32])
		off += 32
		return s, err
	}

	A, err := readPoint()
	if err != nil {
		return nil, ringct.ErrDecoding
	}
	S, err := readPoint()
	if err != nil {
		return nil, ringct.ErrDecoding
	}
	T1, err := readPoint()
	if err != nil {
		return nil, ringct.ErrDecoding
	}
	T2, err := readPoint()
	if err != nil {
		return nil, ringct.ErrDecoding
	}
	tauX, err := readScalar()
	if err != nil {
		return nil, ringct.ErrDecoding
	}
	mu, err := readScalar()
	if err != nil {
		return nil, ringct.ErrDecoding
	}
	tHat, err := readScalar()
	if err != nil {
		return nil, ringct.ErrDecoding
	}
	ls := make([]*group.Point, rounds)
	rs := make([]*group.Point, rounds)
	for i := 0; i < rounds; i++ {
		if ls[i], err = readPoint(); err != nil {
			return nil, ringct.ErrDecoding
		}
		if rs[i], err = readPoint(); err != nil {
			return nil, ringct.ErrDecoding
		}
	}
	finalA, err := readScalar()
	if err != nil {
		return nil, ringct.ErrDecoding
	}
	finalB, err := readScalar()
	if err != nil {
		return nil, ringct.ErrDecoding
	}
	return &RangeProof{
		A: A, S: S, T1: T1, T2: T2,
		TauX: tauX, Mu: mu, THat: tHat,
		Ls: ls, Rs: rs, FinalA: finalA, FinalB: finalB,
	}, nil
}
