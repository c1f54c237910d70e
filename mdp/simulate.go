package mdp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrNoActions = errors.New("policy has no action to take")

type Step[S comparable, A Action] struct {
	State       S
	Action      A
	Next        S
	Observation S
	Reward      Reward
}

type Trajectory[S comparable, A Action] struct {
	// First is the observation the policy acts on at t=0.
	First  S
	Steps  []Step[S, A]
	Return float64
}

type SimConfig struct {
	Steps int
	Seed  int64
}

// Simulate rolls one trajectory from m.InitialState(). The policy only sees
// sampled observations. Each step earns Reward(next), discounted by gamma^t.
func Simulate[S comparable, A Action](ctx context.Context, m POMDP[S, A], policy Policy[S, A], cfg SimConfig) (Trajectory[S, A], error) {
	if cfg.Steps < 0 {
		return Trajectory[S, A]{}, fmt.Errorf("steps must not be negative, got %d", cfg.Steps)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	state := m.InitialState()
	obs, err := Sample[S](SensorPdf(m, state), rng)
	if err != nil {
		return Trajectory[S, A]{}, fmt.Errorf("sensor at %v: %w", state, err)
	}

	traj := Trajectory[S, A]{First: obs, Steps: make([]Step[S, A], 0, cfg.Steps)}
	gamma := m.Discount()
	weight := 1.0

	for t := 0; t < cfg.Steps; t++ {
		if err := ctx.Err(); err != nil {
			return traj, err
		}

		aPdf := policy.Act(m, obs)
		if aPdf.Len() == 0 {
			return traj, fmt.Errorf("%s at step %d: %w", policy.Name(), t, ErrNoActions)
		}
		a, err := Sample[A](aPdf, rng)
		if err != nil {
			return traj, fmt.Errorf("%s at step %d: %w", policy.Name(), t, err)
		}

		next, err := Sample[S](TransitionPdf(m, state, a), rng)
		if err != nil {
			return traj, fmt.Errorf("transition from %v under %v: %w", state, a, err)
		}
		obs, err = Sample[S](SensorPdf(m, next), rng)
		if err != nil {
			return traj, fmt.Errorf("sensor at %v: %w", next, err)
		}

		r := m.Reward(next)
		traj.Return += weight * float64(r)
		weight *= gamma

		traj.Steps = append(traj.Steps, Step[S, A]{
			State:       state,
			Action:      a,
			Next:        next,
			Observation: obs,
			Reward:      r,
		})
		state = next
	}
	return traj, nil
}

type Report struct {
	RunID          string
	Policy         string
	Runs           int
	AverageRewards []Reward
	AverageReturn  float64
}

type SimOption func(*simOptions)

type simOptions struct {
	logger *logrus.Logger
}

func WithLogger(l *logrus.Logger) SimOption {
	return func(o *simOptions) {
		o.logger = l
	}
}

// SimulateMany repeats Simulate runs times with a fresh policy per run and
// seeds cfg.Seed, cfg.Seed+1, ... so that a report is reproducible.
func SimulateMany[S comparable, A Action](
	ctx context.Context,
	m POMDP[S, A],
	newPolicy func() Policy[S, A],
	runs int,
	cfg SimConfig,
	opts ...SimOption,
) (Report, error) {
	o := simOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logrus.New()
		o.logger.Out = io.Discard
	}

	if runs <= 0 {
		return Report{}, fmt.Errorf("runs must be positive, got %d", runs)
	}
	if cfg.Steps < 0 {
		return Report{}, fmt.Errorf("steps must not be negative, got %d", cfg.Steps)
	}

	// one instance only for labeling the report
	report := Report{
		RunID:  uuid.NewString(),
		Policy: newPolicy().Name(),
		Runs:   runs,
	}
	log := o.logger.WithFields(logrus.Fields{
		"run_id": report.RunID,
		"policy": report.Policy,
	})

	sums := make([]float64, cfg.Steps)
	totalReturn := 0.0
	for i := 0; i < runs; i++ {
		runCfg := cfg
		runCfg.Seed = cfg.Seed + int64(i)
		traj, err := Simulate(ctx, m, newPolicy(), runCfg)
		if err != nil {
			return Report{}, fmt.Errorf("run %d: %w", i, err)
		}
		for t, step := range traj.Steps {
			sums[t] += float64(step.Reward)
		}
		totalReturn += traj.Return
		log.WithFields(logrus.Fields{
			"run":    i,
			"seed":   runCfg.Seed,
			"return": traj.Return,
		}).Debug("rollout finished")
	}

	report.AverageRewards = make([]Reward, cfg.Steps)
	for t, sum := range sums {
		report.AverageRewards[t] = Reward(sum / float64(runs))
	}
	report.AverageReturn = totalReturn / float64(runs)

	log.WithFields(logrus.Fields{
		"runs":           runs,
		"steps":          cfg.Steps,
		"average_return": report.AverageReturn,
	}).Info("simulation finished")
	return report, nil
}
