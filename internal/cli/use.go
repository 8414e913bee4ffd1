package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/linux-china/wukong/pkg/shellenv"
)

// NewUseCmd creates the use command.
func NewUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use CANDIDATE VERSION",
		Short: "Print the environment for a version in the current shell",
		Long: `Print shell exports selecting a version for the current shell only.
Evaluate the output, for example: eval $(wukong use java 21)`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUse(cmd.OutOrStdout(), candidateArg(args), args[1])
		},
	}
}

func runUse(out io.Writer, name, query string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	c, err := resolveInstalled(a.sdkman, name, query)
	if err != nil {
		return err
	}
	script, err := shellenv.Use(a.sdkman, c, fmt.Sprintf("wukong use %s %s", name, query))
	if err != nil {
		return err
	}
	fmt.Fprint(out, script.String())
	return nil
}
