package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewDefaultCmd creates the default command.
func NewDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default CANDIDATE VERSION",
		Short: "Make an installed version the current one",
		Long: `Point the current link of a candidate at an installed version.
A version prefix such as "21" selects the highest matching installed version.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDefault(cmd.Context(), cmd.OutOrStdout(), candidateArg(args), args[1])
		},
	}
}

func runDefault(ctx context.Context, out io.Writer, name, query string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	c, err := resolveInstalled(a.sdkman, name, query)
	if err != nil {
		return err
	}
	if err := a.orchestrator().Default(ctx, c); err != nil {
		return err
	}
	fmt.Fprintf(out, "Default %s version set to %s\n", c.Name, render(currentStyle, c.Version))
	return nil
}
