package ringct_test

import (
	"testing"

	"github.com/concert/ringct"
	"github.com/concert/ringct/group"
	"github.com/concert/ringct/internal/testutil"
	"github.com/concert/ringct/rangeproof/borromean"
	"github.com/concert/ringct/stealth"
	fuzz "github.com/trailofbits/go-fuzz-utils"
)

// FuzzDecoders feeds arbitrary byte strings into the scalar, point,
// commitment, Borromean proof and shared-secret decoders, checking that
// none of them panics. The decoded values and errors are discarded.
func FuzzDecoders(f *testing.F) {
	drbg := testutil.New("fuzz decoders")
	for range 10 {
		f.Add(drbg.Data(128))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		tp, err := fuzz.NewTypeProvider(data)
		if err != nil {
			t.Skip(err)
		}

		opCount, err := tp.GetByte()
		if err != nil {
			t.Skip(err)
		}

		const opTypeCount = 5 // Scalar, Point, Commitment, BorromeanProof, SharedSecret
		for range opCount % 20 {
			opType, err := tp.GetByte()
			if err != nil {
				t.Skip(err)
			}

			payload, err := tp.GetBytes()
			if err != nil {
				t.Skip(err)
			}

			switch opType % opTypeCount {
			case 0:
				_, _ = group.NewScalar().SetCanonicalBytes(payload)
			case 1:
				_, _ = group.SetCanonicalBytes(payload)
			case 2:
				_, _ = ringct.CommitmentFromBytes(payload)
			case 3:
				_, _ = borromean.FromBytes(payload)
			case 4:
				_, _ = stealth.SharedSecretFromBytes(payload)
			}
		}
	})
}
