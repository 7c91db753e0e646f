package chain_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ruinwalk/internal/chain"
)

var _ = Describe("TransitionMatrix", func() {
	DescribeTable("rows sum to 1",
		func(goal int, p float64) {
			m := chain.TransitionMatrix(goal, p)
			Expect(m.Rows).To(Equal(goal + 1))
			Expect(m.Cols).To(Equal(goal + 1))
			for i := 0; i < m.Rows; i++ {
				sum := 0.0
				for _, v := range m.Row(i) {
					sum += v
				}
				Expect(sum).To(BeNumerically("~", 1.0, 1e-9), "row %d", i)
			}
		},
		Entry("fair coin, small goal", 5, 0.5),
		Entry("house edge", 10, 0.47),
		Entry("certain win", 4, 1.0),
		Entry("certain loss", 4, 0.0),
		Entry("smallest chain", 1, 0.3),
	)

	It("makes the boundary rows absorbing", func() {
		m := chain.TransitionMatrix(6, 0.4)
		Expect(m.At(0, 0)).To(Equal(1.0))
		Expect(m.At(6, 6)).To(Equal(1.0))
		for j := 1; j <= 6; j++ {
			Expect(m.At(0, j)).To(BeZero())
		}
		for j := 0; j < 6; j++ {
			Expect(m.At(6, j)).To(BeZero())
		}
	})

	It("places q below and p above the diagonal on interior rows", func() {
		m := chain.TransitionMatrix(4, 0.7)
		for i := 1; i < 4; i++ {
			Expect(m.At(i, i-1)).To(BeNumerically("~", 0.3, 1e-12))
			Expect(m.At(i, i+1)).To(BeNumerically("~", 0.7, 1e-12))
			Expect(m.At(i, i)).To(BeZero())
		}
	})

	It("degenerates to the identity for goal=1", func() {
		m := chain.TransitionMatrix(1, 0.5)
		Expect(m.Data).To(Equal([]float64{1, 0, 0, 1}))
	})

	It("builds the documented goal=2 fair chain", func() {
		m := chain.TransitionMatrix(2, 0.5)
		Expect(m.Row(0)).To(Equal([]float64{1, 0, 0}))
		Expect(m.Row(1)).To(Equal([]float64{0.5, 0, 0.5}))
		Expect(m.Row(2)).To(Equal([]float64{0, 0, 1}))
	})
})

var _ = Describe("InitialDistribution", func() {
	It("is one-hot at the starting state", func() {
		d := chain.InitialDistribution(5, 3)
		Expect(d).To(HaveLen(6))
		Expect(d.Sum()).To(Equal(1.0))
		Expect(d[3]).To(Equal(1.0))
	})

	It("returns the all-zero vector for an out-of-range start", func() {
		for _, start := range []int{-1, 6, 99} {
			d := chain.InitialDistribution(5, start)
			Expect(d).To(HaveLen(6))
			Expect(d.Sum()).To(BeZero())
		}
	})

	It("accepts both boundary states", func() {
		Expect(chain.InitialDistribution(5, 0)[0]).To(Equal(1.0))
		Expect(chain.InitialDistribution(5, 5)[5]).To(Equal(1.0))
	})
})

var _ = Describe("Distribution", func() {
	It("clones without aliasing", func() {
		d := chain.Distribution{0.5, 0.5}
		c := d.Clone()
		c[0] = 0
		Expect(d[0]).To(Equal(0.5))
	})

	It("rejects negative and non-finite entries", func() {
		Expect(chain.Distribution{0.5, 0.5}.IsValid()).To(BeTrue())
		Expect(chain.Distribution{0.5, -0.5}.IsValid()).To(BeFalse())
	})
})
