package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/CodeStranger-Fred/pomdp/mdp"
	"github.com/CodeStranger-Fred/pomdp/mdp/twostate"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	ConfigPath string
	Plot       string

	config SimulateConfig
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts, config: DefaultSimulateConfig()}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Roll trajectories of the fixture under simple policies",
		Long: `Simulate rolls the fixture forward from its initial state. The policy sees
only sensor readings, never the true state. For each policy it reports the
average return and, with --plot, writes an HTML chart of the average reward
per step.

Policies: uniform, or the name of an action (GO, STAY) to always take it.

Example:
  pomdp simulate --runs 500 --steps 20
  pomdp simulate --config sim.yaml --plot rewards.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveSimulateConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runSimulate(cmd, opts, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "YAML file with steps, runs, seed and policies")
	cmd.Flags().StringVar(&opts.Plot, "plot", "", "write an HTML reward chart to this file")
	cmd.Flags().IntVar(&opts.config.Steps, "steps", opts.config.Steps, "steps per trajectory")
	cmd.Flags().IntVar(&opts.config.Runs, "runs", opts.config.Runs, "trajectories per policy")
	cmd.Flags().Int64Var(&opts.config.Seed, "seed", opts.config.Seed, "seed of the first run")
	cmd.Flags().StringSliceVar(&opts.config.Policies, "policy", opts.config.Policies, "policies to simulate")

	return cmd
}

// resolveSimulateConfig layers explicitly set flags over the config file.
func resolveSimulateConfig(cmd *cobra.Command, opts *SimulateOptions) (SimulateConfig, error) {
	if opts.ConfigPath == "" {
		return opts.config, opts.config.Validate()
	}

	cfg, err := LoadSimulateConfig(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("steps") {
		cfg.Steps = opts.config.Steps
	}
	if flags.Changed("runs") {
		cfg.Runs = opts.config.Runs
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.config.Seed
	}
	if flags.Changed("policy") {
		cfg.Policies = opts.config.Policies
	}
	return cfg, cfg.Validate()
}

func runSimulate(cmd *cobra.Command, opts *SimulateOptions, cfg SimulateConfig) error {
	m := twostate.New()

	reports := make([]mdp.Report, 0, len(cfg.Policies))
	for _, name := range cfg.Policies {
		newPolicy, err := policyFactory(m, name)
		if err != nil {
			return err
		}
		report, err := mdp.SimulateMany(cmd.Context(), mdp.POMDP[twostate.State, twostate.Action](m), newPolicy, cfg.Runs,
			mdp.SimConfig{Steps: cfg.Steps, Seed: cfg.Seed}, mdp.WithLogger(opts.Logger))
		if err != nil {
			return fmt.Errorf("simulate %s: %w", name, err)
		}
		reports = append(reports, report)

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-10s average return %.3f over %d runs of %d steps\n",
			report.Policy, report.AverageReturn, report.Runs, cfg.Steps); err != nil {
			return err
		}
	}

	if opts.Plot == "" {
		return nil
	}
	f, err := os.Create(opts.Plot)
	if err != nil {
		return fmt.Errorf("create plot: %w", err)
	}
	if err := mdp.Plot(f, reports...); err != nil {
		f.Close()
		return fmt.Errorf("render plot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close plot: %w", err)
	}
	opts.Logger.WithFields(logrus.Fields{"path": opts.Plot, "series": len(reports)}).Info("plot written")
	return nil
}

// policyFactory maps "uniform" or an action name to a policy constructor.
func policyFactory(m twostate.Model, name string) (func() mdp.Policy[twostate.State, twostate.Action], error) {
	if name == "uniform" {
		return func() mdp.Policy[twostate.State, twostate.Action] {
			return mdp.UniformPolicy[twostate.State, twostate.Action]{}
		}, nil
	}
	for _, a := range m.AllActions() {
		if string(a) == name {
			return func() mdp.Policy[twostate.State, twostate.Action] {
				return mdp.FixedPolicy[twostate.State, twostate.Action]{Action: a}
			}, nil
		}
	}
	return nil, fmt.Errorf("unknown policy %q", name)
}
