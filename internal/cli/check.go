package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CodeStranger-Fred/pomdp/mdp"
	"github.com/CodeStranger-Fred/pomdp/mdp/twostate"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Tolerance float64
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the fixture against the POMDP contract",
		Long: `Check verifies that the discount lies in [0,1], that the initial state
belongs to the state set, and that every transition and sensor distribution
sums to 1. Every violation is reported, and the command fails if there are any.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := twostate.New()
			err := mdp.Check[twostate.State, twostate.Action](m, mdp.WithTolerance(opts.Tolerance))
			if err != nil {
				opts.Logger.WithError(err).Error("model check failed")
				return fmt.Errorf("check: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d states, %d actions\n",
				len(m.States()), len(m.AllActions()))
			return err
		},
	}

	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", 1e-9, "allowed drift of a distribution's sum from 1")

	return cmd
}
