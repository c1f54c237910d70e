package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	NoColor bool

	Logger *logrus.Logger
}

// NewRootCommand creates the root command for the pomdp CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Logger: logrus.New()}

	cmd := &cobra.Command{
		Use:   "pomdp",
		Short: "Inspect and exercise the two-state POMDP fixture",
		Long: `pomdp works with a fixed two-state, two-action POMDP.

It prints the model's tables, checks the model against the POMDP contract,
and rolls simulated trajectories under simple policies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.Logger.Out = cmd.ErrOrStderr()
			if opts.Verbose {
				opts.Logger.SetLevel(logrus.DebugLevel)
			} else {
				opts.Logger.SetLevel(logrus.InfoLevel)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable coloured output")

	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewSimulateCommand(opts))

	return cmd
}
