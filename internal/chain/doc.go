// Package chain builds the gambler's ruin Markov chain and propagates
// probability distributions through it.
//
// The chain lives on states 0..goal with absorbing boundaries at both
// ends: state 0 is ruin, state goal is the target bankroll. Every
// interior state i moves to i+1 with probability p and to i-1 with
// probability q = 1-p.
//
//   - [TransitionMatrix]: one-step transition probabilities
//   - [InitialDistribution]: one-hot starting distribution
//   - [Step], [Propagate]: advance a distribution by one or k steps
//
// Propagation by k steps uses matrix.Pow, so the cost grows with log k
// rather than k.
package chain
