package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewUpgradeCmd creates the upgrade command.
func NewUpgradeCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "upgrade [CANDIDATE]",
		Short: "Install the recommended version of installed candidates",
		Long: `Compare the current version of each installed candidate with the version the
SDKMAN broker recommends. With --yes missing recommended versions are
installed and made the default.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpgrade(cmd.Context(), cmd.OutOrStdout(), candidateArg(args), yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Install without asking")

	return cmd
}

func runUpgrade(ctx context.Context, out io.Writer, name string, yes bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp()
	if err != nil {
		return err
	}

	names := []string{name}
	if name == "" {
		if names, err = a.sdkman.Candidates(); err != nil {
			return err
		}
	}

	orch := a.orchestrator()
	pending := 0
	for _, n := range names {
		if !yes {
			latest, err := a.broker.DefaultVersion(ctx, n)
			if err != nil {
				return err
			}
			if a.sdkman.Exists(candidate(n, latest)) {
				continue
			}
			current, _, _ := a.sdkman.Current(n)
			fmt.Fprintf(out, "%s\t%s -> %s\n", render(titleStyle, n), current, render(currentStyle, latest))
			pending++
			continue
		}

		result, err := orch.Upgrade(ctx, n, true)
		if err != nil {
			return err
		}
		if result.Installed {
			fmt.Fprintln(out, render(successStyle, fmt.Sprintf("Upgraded %s to %s", n, result.Version)))
			pending++
		}
	}

	switch {
	case pending == 0:
		fmt.Fprintln(out, "All candidates are up to date")
	case !yes:
		fmt.Fprintln(out, "Run 'wukong upgrade --yes' to install these versions")
	}
	return nil
}
