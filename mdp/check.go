package mdp

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Violation is one broken rule found by Check.
type Violation struct {
	Rule   string
	Detail string
}

func (v *Violation) Error() string {
	return v.Rule + ": " + v.Detail
}

type CheckOption func(*checkOptions)

type checkOptions struct {
	tolerance float64
}

// WithTolerance sets how far a distribution's sum may drift from 1.
// Check rejects a negative or NaN tolerance.
func WithTolerance(eps float64) CheckOption {
	return func(o *checkOptions) {
		o.tolerance = eps
	}
}

// Check verifies the parts of the POMDP contract a consumer relies on and
// returns every violation joined into one error, or nil.
// Transition distributions are checked for the legal actions of each state.
func Check[S comparable, A Action](m POMDP[S, A], opts ...CheckOption) error {
	o := checkOptions{tolerance: defaultTolerance}
	for _, opt := range opts {
		opt(&o)
	}
	if math.IsNaN(o.tolerance) || o.tolerance < 0 {
		return &Violation{Rule: "tolerance", Detail: fmt.Sprintf("%v must be a non-negative number", o.tolerance)}
	}

	var errs []error
	violate := func(rule, format string, args ...any) {
		errs = append(errs, &Violation{Rule: rule, Detail: fmt.Sprintf(format, args...)})
	}

	if gamma := m.Discount(); math.IsNaN(gamma) || gamma < 0 || gamma > 1 {
		violate("discount", "%v outside [0,1]", gamma)
	}

	states := m.States()
	if len(states) == 0 {
		violate("states", "state set is empty")
	}
	if dup, ok := firstDuplicate(states); ok {
		violate("states", "duplicate state %v", dup)
	}

	all := m.AllActions()
	if len(all) == 0 {
		violate("actions", "action set is empty")
	}
	if dup, ok := firstDuplicate(all); ok {
		violate("actions", "duplicate action %v", dup)
	}

	if s0 := m.InitialState(); !slices.Contains(states, s0) {
		violate("initial-state", "%v is not a member of the state set", s0)
	}

	for _, prev := range states {
		for _, a := range m.Actions(prev) {
			if !slices.Contains(all, a) {
				violate("actions", "%v is legal in %v but missing from the action set", a, prev)
			}
			if err := TransitionPdf(m, prev, a).Check(o.tolerance); err != nil {
				violate("transition", "from %v under %v: %v", prev, a, err)
			}
		}
		if err := SensorPdf(m, prev).Check(o.tolerance); err != nil {
			violate("sensor", "for actual state %v: %v", prev, err)
		}
	}

	return errors.Join(errs...)
}

func firstDuplicate[T comparable](xs []T) (T, bool) {
	seen := make(map[T]bool, len(xs))
	for _, x := range xs {
		if seen[x] {
			return x, true
		}
		seen[x] = true
	}
	var zero T
	return zero, false
}
