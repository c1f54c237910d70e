// Package twostate is a fixed two-state, two-action POMDP with known
// answers, for testing code that consumes mdp.POMDP.
package twostate

import "github.com/CodeStranger-Fred/pomdp/mdp"

type State string

const (
	Zero State = "ZERO"
	One  State = "ONE"
)

type Action string

const (
	// Go usually flips the state.
	Go Action = "GO"
	// Stay usually keeps it.
	Stay Action = "STAY"
)

func (a Action) IsNoOp() bool {
	return false
}

const (
	likely   mdp.Probability = 0.9
	unlikely mdp.Probability = 0.1
)

// Model is immutable and safe for concurrent use. Build it with New.
type Model struct {
	gamma   float64
	initial State
}

var _ mdp.POMDP[State, Action] = Model{}

func New() Model {
	return Model{
		gamma:   1.0,
		initial: Zero,
	}
}

func (m Model) Discount() float64 {
	return m.gamma
}

func (m Model) States() []State {
	return []State{Zero, One}
}

func (m Model) InitialState() State {
	return m.initial
}

func (m Model) AllActions() []Action {
	return []Action{Go, Stay}
}

// Actions ignores s: every action is legal everywhere.
func (m Model) Actions(s State) []Action {
	return m.AllActions()
}

// TransitionProbability is 0 for any action other than Go and Stay.
func (m Model) TransitionProbability(next, prev State, a Action) mdp.Probability {
	switch a {
	case Go:
		if next == prev {
			return unlikely
		}
		return likely
	case Stay:
		if next == prev {
			return likely
		}
		return unlikely
	}
	return 0
}

func (m Model) SensorModel(observed, actual State) mdp.Probability {
	if observed == actual {
		return likely
	}
	return unlikely
}

func (m Model) Reward(s State) mdp.Reward {
	if s == Zero {
		return 0
	}
	return 1
}
