// Package walk owns the simulation session: the current chain
// parameters, step counter and distribution, with reset and advance as
// the only mutations.
//
// A Session is NOT safe for concurrent use; confine it to a single
// goroutine or synchronize externally.
package walk

import (
	"errors"
	"math"

	"github.com/san-kum/ruinwalk/internal/chain"
	"github.com/san-kum/ruinwalk/internal/matrix"
)

// DefaultGoal replaces a goal below 1 on Reset. The goal is defaulted
// rather than clamped, unlike start and p; the asymmetry is
// deliberate and matches the historical front-end behavior.
const DefaultGoal = 1

// ErrNotReady indicates Advance was called before the first Reset.
var ErrNotReady = errors.New("walk: session not reset")

// Observer is notified after every state change with a snapshot of the
// step counter and distribution. Rendering layers hang off this
// interface; the engine has no idea what they do with it.
type Observer interface {
	OnState(step int, dist chain.Distribution)
}

// Session is the single mutable piece of the engine. It exclusively
// owns its matrix and distribution; accessors hand out copies only.
type Session struct {
	goal    int
	start   int
	winProb float64
	steps   int

	trans matrix.Matrix
	dist  chain.Distribution

	observers []Observer
	ready     bool
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Reset rebuilds the session from raw parameters, discarding all
// previous state. Out-of-range start is clamped into [0, goal] and p
// into [0, 1]; a goal below 1 falls back to DefaultGoal. The step
// counter returns to zero.
func (s *Session) Reset(goal, start int, p float64) {
	if goal < 1 {
		goal = DefaultGoal
	}
	start = clampInt(start, 0, goal)
	p = clampFloat(p, 0, 1)

	s.goal = goal
	s.start = start
	s.winProb = p
	s.steps = 0
	s.trans = chain.TransitionMatrix(goal, p)
	s.dist = chain.InitialDistribution(goal, start)
	s.ready = true

	s.notify()
}

// Advance moves the distribution forward k steps in one multiplication
// via the k-th matrix power. Non-positive k is coerced to 1 rather
// than rejected; that tolerance is part of the session's contract.
func (s *Session) Advance(k int) error {
	if !s.ready {
		return ErrNotReady
	}
	if k < 1 {
		k = 1
	}

	next, err := chain.Propagate(s.dist, s.trans, k)
	if err != nil {
		return err
	}
	s.dist = next
	s.steps += k

	s.notify()
	return nil
}

func (s *Session) notify() {
	for _, o := range s.observers {
		o.OnState(s.steps, s.dist.Clone())
	}
}

// Steps coerces a raw step request into a usable count: NaN, infinite
// and sub-1 values all become a single step, anything else truncates
// to an integer.
func Steps(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 1 {
		return 1
	}
	return int(v)
}

func (s *Session) Ready() bool             { return s.ready }
func (s *Session) Goal() int               { return s.goal }
func (s *Session) Start() int              { return s.start }
func (s *Session) WinProbability() float64 { return s.winProb }
func (s *Session) StepCount() int          { return s.steps }

// Distribution returns a snapshot of the current distribution.
func (s *Session) Distribution() chain.Distribution { return s.dist.Clone() }

// Matrix returns a snapshot of the transition matrix.
func (s *Session) Matrix() matrix.Matrix { return s.trans.Clone() }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
