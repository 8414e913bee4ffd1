package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/linux-china/wukong/pkg/store"
)

// NewUninstallCmd creates the uninstall command.
func NewUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall CANDIDATE VERSION",
		Aliases: []string{"rm"},
		Short:   "Remove an installed candidate version",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUninstall(cmd.Context(), cmd.OutOrStdout(), candidateArg(args), args[1])
		},
	}
}

func runUninstall(ctx context.Context, out io.Writer, name, version string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	c := store.Candidate{Name: name, Version: version}
	if err := a.orchestrator().Uninstall(ctx, c); err != nil {
		return err
	}
	fmt.Fprintf(out, "Uninstalled %s\n", c)
	return nil
}
