package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/linux-china/wukong/pkg/shellenv"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Print the shell setup for all current versions",
		Long: `Print <NAME>_HOME and PATH exports for every candidate with a current version.
Add 'eval $(wukong init)' to your shell profile.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.OutOrStdout())
		},
	}
}

func runInit(out io.Writer) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	script, err := shellenv.Init(a.sdkman)
	if err != nil {
		return err
	}
	fmt.Fprint(out, script.String())
	return nil
}
