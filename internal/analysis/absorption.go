// Package analysis provides the closed-form gambler's ruin identities
// used to cross-check the simulated distribution.
package analysis

import "math"

// GoalProbability returns the probability of hitting goal before 0,
// starting from start with per-step win probability p.
//
// For p != 1/2 with r = q/p this is (1 - r^start) / (1 - r^goal);
// the fair case degenerates to start/goal.
func GoalProbability(goal, start int, p float64) float64 {
	switch {
	case start <= 0:
		return 0
	case start >= goal:
		return 1
	case p <= 0:
		return 0
	case p >= 1:
		return 1
	case p == 0.5:
		return float64(start) / float64(goal)
	}
	r := (1 - p) / p
	return (1 - math.Pow(r, float64(start))) / (1 - math.Pow(r, float64(goal)))
}

// RuinProbability returns the probability of absorption at 0. Both
// boundaries absorb, so this is the complement of GoalProbability.
func RuinProbability(goal, start int, p float64) float64 {
	return 1 - GoalProbability(goal, start, p)
}

// ExpectedDuration returns the expected number of steps until
// absorption at either boundary.
//
// Fair case: start*(goal-start). Biased case with r = q/p:
//
//	E[T] = start/(q-p) - goal/(q-p) * (1 - r^start)/(1 - r^goal)
//
// The deterministic edges (p=0, p=1) walk straight to a boundary.
func ExpectedDuration(goal, start int, p float64) float64 {
	switch {
	case start <= 0 || start >= goal:
		return 0
	case p <= 0:
		return float64(start)
	case p >= 1:
		return float64(goal - start)
	case p == 0.5:
		return float64(start) * float64(goal-start)
	}
	q := 1 - p
	r := q / p
	hit := (1 - math.Pow(r, float64(start))) / (1 - math.Pow(r, float64(goal)))
	return float64(start)/(q-p) - float64(goal)/(q-p)*hit
}
