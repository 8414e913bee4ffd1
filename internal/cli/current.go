package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewCurrentCmd creates the current command.
func NewCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current [CANDIDATE]",
		Short: "Show the current version of one or all candidates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCurrent(cmd.OutOrStdout(), candidateArg(args))
		},
	}
}

func runCurrent(out io.Writer, name string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if name != "" {
		version, ok, err := a.sdkman.Current(name)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(out, "No current version of %s\n", name)
			return nil
		}
		fmt.Fprintf(out, "Using %s version %s\n", render(labelStyle, name), render(currentStyle, version))
		return nil
	}

	names, err := a.sdkman.Candidates()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, TabWidth, 2, ' ', 0)
	found := false
	for _, n := range names {
		version, ok, err := a.sdkman.Current(n)
		if err != nil || !ok {
			continue
		}
		found = true
		fmt.Fprintf(w, "%s\t%s\n", n, render(currentStyle, version))
	}
	if !found {
		fmt.Fprintln(out, "No candidates are in use")
		return nil
	}
	return w.Flush()
}
