package mdp

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	ErrNotNormalized = errors.New("probabilities do not sum to 1")
	ErrOutOfRange    = errors.New("probability outside [0,1]")
)

const defaultTolerance = 1e-9

type ProbabilityDistribution[T comparable] interface {
	Choose(rng *rand.Rand) T
	Check(eps float64) error
}

var _ ProbabilityDistribution[int] = DiscretePdf[int]{}

type Outcome[T comparable] struct {
	Value T
	P     Probability
}

// DiscretePdf keeps outcomes in insertion order so that sampling with a
// seeded rng is reproducible.
type DiscretePdf[T comparable] struct {
	outcomes []Outcome[T]
}

// Add accumulates p onto outcome.
func (pdf *DiscretePdf[T]) Add(outcome T, p Probability) {
	for i := range pdf.outcomes {
		if pdf.outcomes[i].Value == outcome {
			pdf.outcomes[i].P += p
			return
		}
	}
	pdf.outcomes = append(pdf.outcomes, Outcome[T]{Value: outcome, P: p})
}

func (pdf DiscretePdf[T]) P(outcome T) Probability {
	for _, o := range pdf.outcomes {
		if o.Value == outcome {
			return o.P
		}
	}
	return 0
}

func (pdf DiscretePdf[T]) Len() int {
	return len(pdf.outcomes)
}

func (pdf DiscretePdf[T]) Outcomes() []Outcome[T] {
	out := make([]Outcome[T], len(pdf.outcomes))
	copy(out, pdf.outcomes)
	return out
}

func (pdf DiscretePdf[T]) Sum() float64 {
	sum := 0.0
	for _, o := range pdf.outcomes {
		sum += float64(o.P)
	}
	return sum
}

func (pdf DiscretePdf[T]) Check(eps float64) error {
	for _, o := range pdf.outcomes {
		if !validProbability(o.P) {
			return fmt.Errorf("%w: P(%v) = %v", ErrOutOfRange, o.Value, o.P)
		}
	}
	if sum := pdf.Sum(); math.Abs(sum-1) > eps {
		return fmt.Errorf("%w: sum is %v", ErrNotNormalized, sum)
	}
	return nil
}

// Choose never returns an outcome with zero probability. With no mass at
// all it returns the zero value of T; use Sample to get an error instead.
func (pdf DiscretePdf[T]) Choose(rng *rand.Rand) T {
	v := rng.Float64()
	cumulative := 0.0
	var last T
	for _, o := range pdf.outcomes {
		if o.P <= 0 {
			continue
		}
		cumulative += float64(o.P)
		if cumulative > v {
			return o.Value
		}
		last = o.Value
	}
	return last
}

// Sample checks d against defaultTolerance before drawing from it.
func Sample[T comparable](d ProbabilityDistribution[T], rng *rand.Rand) (T, error) {
	if err := d.Check(defaultTolerance); err != nil {
		var zero T
		return zero, err
	}
	return d.Choose(rng), nil
}

// TransitionPdf is P(· | prev, a) over m.States().
func TransitionPdf[S comparable, A Action](m POMDP[S, A], prev S, a A) DiscretePdf[S] {
	var pdf DiscretePdf[S]
	for _, next := range m.States() {
		pdf.Add(next, m.TransitionProbability(next, prev, a))
	}
	return pdf
}

// SensorPdf is P(· | actual) over m.States().
func SensorPdf[S comparable, A Action](m POMDP[S, A], actual S) DiscretePdf[S] {
	var pdf DiscretePdf[S]
	for _, obs := range m.States() {
		pdf.Add(obs, m.SensorModel(obs, actual))
	}
	return pdf
}

func validProbability(p Probability) bool {
	return !math.IsNaN(float64(p)) && p >= 0 && p <= 1
}
