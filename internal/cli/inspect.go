package cli

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/CodeStranger-Fred/pomdp/mdp"
	"github.com/CodeStranger-Fred/pomdp/mdp/twostate"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the fixture's states, actions, dynamics and rewards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			au := aurora.NewAurora(!rootOpts.NoColor)
			return Describe[twostate.State, twostate.Action](cmd.OutOrStdout(), twostate.New(), au)
		},
	}
}

// Describe writes every table of m to w.
func Describe[S comparable, A mdp.Action](w io.Writer, m mdp.POMDP[S, A], au aurora.Aurora) error {
	states := m.States()
	actions := m.AllActions()

	pw := &printer{w: w}
	pw.printf("%s\n", au.Bold("POMDP"))
	pw.printf("  %s %.2f\n", au.Cyan(fmt.Sprintf("%-14s", "discount")), m.Discount())
	pw.printf("  %s %v\n", au.Cyan(fmt.Sprintf("%-14s", "initial state")), m.InitialState())
	pw.printf("  %s", au.Cyan(fmt.Sprintf("%-14s", "states")))
	for _, s := range states {
		pw.printf(" %v", s)
	}
	pw.printf("\n")
	pw.printf("  %s", au.Cyan(fmt.Sprintf("%-14s", "actions")))
	for _, a := range actions {
		pw.printf(" %v", a)
		if a.IsNoOp() {
			pw.printf("(no-op)")
		}
	}
	pw.printf("\n\n")

	pw.printf("%s\n", au.Bold("transition P(next | prev, action)"))
	pw.printf("  %s\n", au.Cyan(fmt.Sprintf("%-8s %-8s %-8s %s", "action", "prev", "next", "p")))
	for _, a := range actions {
		for _, prev := range states {
			for _, next := range states {
				p := m.TransitionProbability(next, prev, a)
				pw.printf("  %-8v %-8v %-8v %s\n", a, prev, next, colorProbability(au, p))
			}
		}
	}
	pw.printf("\n")

	pw.printf("%s\n", au.Bold("sensor P(observed | actual)"))
	pw.printf("  %s\n", au.Cyan(fmt.Sprintf("%-8s %-8s %s", "actual", "observed", "p")))
	for _, actual := range states {
		for _, obs := range states {
			pw.printf("  %-8v %-8v %s\n", actual, obs, colorProbability(au, m.SensorModel(obs, actual)))
		}
	}
	pw.printf("\n")

	pw.printf("%s\n", au.Bold("reward"))
	for _, s := range states {
		pw.printf("  %-8v %.2f\n", s, m.Reward(s))
	}
	return pw.err
}

func colorProbability(au aurora.Aurora, p mdp.Probability) aurora.Value {
	s := fmt.Sprintf("%.2f", p)
	if p >= 0.5 {
		return au.Green(s)
	}
	return au.Blue(s)
}

// printer keeps the first write error so callers can check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
