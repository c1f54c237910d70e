package mdp

import "fmt"

// Policy picks an action from the latest observation. It never sees the
// true state.
type Policy[S comparable, A Action] interface {
	Name() string

	Act(m POMDP[S, A], obs S) DiscretePdf[A]
}

type FixedPolicy[S comparable, A Action] struct {
	Action A
}

func (p FixedPolicy[S, A]) Name() string {
	return fmt.Sprintf("fixed-%v", p.Action)
}

func (p FixedPolicy[S, A]) Act(m POMDP[S, A], obs S) DiscretePdf[A] {
	var pdf DiscretePdf[A]
	pdf.Add(p.Action, 1)
	return pdf
}

// UniformPolicy spreads mass evenly over the actions legal for obs.
type UniformPolicy[S comparable, A Action] struct{}

func (p UniformPolicy[S, A]) Name() string {
	return "uniform"
}

func (p UniformPolicy[S, A]) Act(m POMDP[S, A], obs S) DiscretePdf[A] {
	var pdf DiscretePdf[A]
	actions := m.Actions(obs)
	for _, a := range actions {
		pdf.Add(a, Probability(1.0/float64(len(actions))))
	}
	return pdf
}
