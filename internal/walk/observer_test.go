package walk

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/ruinwalk/internal/chain"
)

type recordingObserver struct {
	steps []int
	dists []chain.Distribution
}

func (r *recordingObserver) OnState(step int, dist chain.Distribution) {
	r.steps = append(r.steps, step)
	r.dists = append(r.dists, dist)
}

func TestObserver_Lifecycle(t *testing.T) {
	g := NewWithT(t)

	s := NewSession()
	rec := &recordingObserver{}
	s.AddObserver(rec)

	s.Reset(5, 3, 0.5)
	g.Expect(rec.steps).To(Equal([]int{0}))
	g.Expect(rec.dists[0][3]).To(Equal(1.0))

	g.Expect(s.Advance(2)).To(Succeed())
	g.Expect(s.Advance(3)).To(Succeed())
	g.Expect(rec.steps).To(Equal([]int{0, 2, 5}))

	// a second reset starts the counter over
	s.Reset(5, 3, 0.5)
	g.Expect(rec.steps).To(Equal([]int{0, 2, 5, 0}))
}

func TestObserver_ReceivesSnapshot(t *testing.T) {
	g := NewWithT(t)

	s := NewSession()
	rec := &recordingObserver{}
	s.AddObserver(rec)
	s.Reset(3, 1, 0.5)

	// mutating the delivered distribution must not touch the session
	rec.dists[0][1] = 42
	g.Expect(s.Distribution()[1]).To(Equal(1.0))
}
