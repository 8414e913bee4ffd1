package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewHomeCmd creates the home command.
func NewHomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "home CANDIDATE VERSION",
		Short: "Print the install directory of a candidate version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHome(cmd.OutOrStdout(), candidateArg(args), args[1])
		},
	}
}

func runHome(out io.Writer, name, query string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	c, err := resolveInstalled(a.sdkman, name, query)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, a.sdkman.Home(c))
	return nil
}
