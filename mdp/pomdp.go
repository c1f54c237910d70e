package mdp

// Action is the constraint every POMDP action type satisfies.
// IsNoOp lets consumers spot idle actions.
type Action interface {
	comparable
	IsNoOp() bool
}

type Probability float64

type Reward float64

// POMDP is a read-only description of a partially observable decision
// process. Observations are drawn from the state type S.
//
// Every method is a pure query: the same arguments always give the same
// answer, nothing is mutated, and nothing fails. Inputs the model does not
// recognize get probability 0 rather than an error.
type POMDP[S comparable, A Action] interface {
	Discount() float64

	// States and AllActions return a fresh slice on every call.
	States() []S
	InitialState() S
	AllActions() []A
	Actions(s S) []A

	// TransitionProbability is P(next | prev, a).
	TransitionProbability(next, prev S, a A) Probability
	// SensorModel is P(observed | actual).
	SensorModel(observed, actual S) Probability
	Reward(s S) Reward
}
