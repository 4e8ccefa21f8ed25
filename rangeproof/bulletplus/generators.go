package bulletplus

import (
	"encoding/binary"
	"sync"

	"github.com/concert/ringct/group"
	"github.com/concert/ringct/pedersen"
)

// generatorSet lazily derives the per-bit generator vectors the inner
// product argument runs over, growing and caching them as larger
// aggregation sizes are requested. Once derived, a generator is never
// recomputed: this mirrors the "compute-once, read-only thereafter"
// discipline applied to the basepoint tables in package pedersen.
type generatorSet struct {
	mu sync.Mutex
	gi []*group.Point
	hi []*group.Point
}

var gens generatorSet

func genLabel(tag byte, index int) []byte {
	b := make([]byte, 0, 1+8+len(transcriptLabel))
	b = append(b, group.EncodePoint(pedersen.H())...)
	b = append(b, tag)
	var idx [8]byte
	binary.LittleEndian.PutUint64(idx[:], uint64(index))
	b = append(b, idx[:]...)
	return b
}

func (g *generatorSet) ensure(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for k := len(g.gi); k < n; k++ {
		g.gi = append(g.gi, group.HashToPoint(genLabel('G', k), transcriptLabel))
		g.hi = append(g.hi, group.HashToPoint(genLabel('H', k), transcriptLabel))
	}
}

// vectors returns the first n entries of the Gi, Hi generator vectors.
func (g *generatorSet) vectors(n int) (gi, hi []*group.Point) {
	g.ensure(n)
	g.mu.Lock()
	defer g.mu.Unlock()
	gi = append([]*group.Point(nil), g.gi[:n]...)
	hi = append([]*group.Point(nil), g.hi[:n]...)
	return
}

var (
	uOnce sync.Once
	uPt   *group.Point
)

// ipaBase returns the independent generator U the inner-product
// argument binds its cross term to.
func ipaBase() *group.Point {
	uOnce.Do(func() {
		uPt = group.HashToPoint(group.EncodePoint(pedersen.H()), transcriptLabel+" U")
	})
	return uPt
}
