package mdp_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeStranger-Fred/pomdp/mdp"
	"github.com/CodeStranger-Fred/pomdp/mdp/twostate"
)

type (
	State  = twostate.State
	Action = twostate.Action
)

// leakyModel breaks the fixture in configurable ways.
type leakyModel struct {
	twostate.Model
	gamma   float64
	extra   []Action
	states  []State
	initial State
	sensor  mdp.Probability
}

func newLeaky() leakyModel {
	m := twostate.New()
	return leakyModel{
		Model:   m,
		gamma:   m.Discount(),
		states:  m.States(),
		initial: m.InitialState(),
	}
}

func (m leakyModel) Discount() float64 { return m.gamma }

func (m leakyModel) States() []State { return append([]State(nil), m.states...) }

func (m leakyModel) InitialState() State { return m.initial }

func (m leakyModel) Actions(s State) []Action {
	return append(m.Model.Actions(s), m.extra...)
}

func (m leakyModel) SensorModel(observed, actual State) mdp.Probability {
	if m.sensor != 0 && observed == actual {
		return m.sensor
	}
	return m.Model.SensorModel(observed, actual)
}

func rules(t *testing.T, err error) []string {
	t.Helper()
	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok, "expected a joined error, got %T", err)

	var out []string
	for _, e := range joined.Unwrap() {
		var v *mdp.Violation
		require.True(t, errors.As(e, &v), "unexpected error %v", e)
		out = append(out, v.Rule)
	}
	return out
}

func TestCheckFixture(t *testing.T) {
	assert.NoError(t, mdp.Check[State, Action](twostate.New()))
	assert.NoError(t, mdp.Check[State, Action](newLeaky()))
}

func TestCheckViolations(t *testing.T) {
	tests := []struct {
		name  string
		model func() leakyModel
		want  []string
	}{
		{
			name: "discount above one",
			model: func() leakyModel {
				m := newLeaky()
				m.gamma = 1.5
				return m
			},
			want: []string{"discount"},
		},
		{
			name: "initial state outside state set",
			model: func() leakyModel {
				m := newLeaky()
				m.initial = State("TWO")
				return m
			},
			want: []string{"initial-state"},
		},
		{
			name: "empty state set",
			model: func() leakyModel {
				m := newLeaky()
				m.states = nil
				return m
			},
			want: []string{"states", "initial-state"},
		},
		{
			name: "legal action unknown to the model",
			model: func() leakyModel {
				m := newLeaky()
				m.extra = []Action{"JUMP"}
				return m
			},
			// one actions and one transition violation per state
			want: []string{"actions", "transition", "actions", "transition"},
		},
		{
			name: "sensor mass leaks",
			model: func() leakyModel {
				m := newLeaky()
				m.sensor = 0.5
				return m
			},
			want: []string{"sensor", "sensor"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mdp.Check[State, Action](tt.model())
			require.Error(t, err)
			assert.Equal(t, tt.want, rules(t, err))
		})
	}
}

func TestCheckTolerance(t *testing.T) {
	m := newLeaky()
	m.sensor = 0.91

	require.Error(t, mdp.Check[State, Action](m))
	assert.NoError(t, mdp.Check[State, Action](m, mdp.WithTolerance(0.05)))
}

func TestCheckWrapsPdfErrors(t *testing.T) {
	m := newLeaky()
	m.sensor = 1.2

	err := mdp.Check[State, Action](m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probability outside [0,1]")
}

func TestCheckRejectsBadTolerance(t *testing.T) {
	for _, eps := range []float64{-1e-9, math.NaN()} {
		err := mdp.Check[State, Action](twostate.New(), mdp.WithTolerance(eps))
		require.Error(t, err)

		var v *mdp.Violation
		require.True(t, errors.As(err, &v))
		assert.Equal(t, "tolerance", v.Rule)
	}
	assert.NoError(t, mdp.Check[State, Action](twostate.New(), mdp.WithTolerance(1e-12)))
}
