package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:     "list [CANDIDATE]",
		Aliases: []string{"ls"},
		Short:   "List installed candidate versions",
		Long: `List installed versions, marking the current one with '>'.

With --remote the listing comes from the SDKMAN broker: without a candidate
it shows every available candidate, with one it shows its versions for the
current platform.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if remote {
				return runListRemote(cmd.Context(), cmd.OutOrStdout(), candidateArg(args))
			}
			return runList(cmd.OutOrStdout(), candidateArg(args))
		},
	}

	cmd.Flags().BoolVarP(&remote, "remote", "r", false, "List what the broker offers instead of what is installed")

	return cmd
}

func runList(out io.Writer, name string) error {
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

	w := tabwriter.NewWriter(out, 0, TabWidth, 2, ' ', 0)
	count := 0
	for _, n := range names {
		versions, err := a.sdkman.Versions(n)
		if err != nil {
			return err
		}
		if len(versions) == 0 {
			continue
		}
		current, _, _ := a.sdkman.Current(n)
		fmt.Fprintln(w, render(titleStyle, n))
		for _, v := range versions {
			marker := " "
			text := v
			if v == current {
				marker = ">"
				text = render(currentStyle, v)
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\n", marker, text, render(faintStyle, a.sdkman.Home(candidate(n, v))))
			count++
		}
	}
	if count == 0 {
		fmt.Fprintln(out, "No candidates installed")
		return nil
	}
	return w.Flush()
}

func runListRemote(ctx context.Context, out io.Writer, name string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp()
	if err != nil {
		return err
	}

	var text string
	if name == "" {
		text, err = a.broker.ListCandidates(ctx)
	} else {
		var installed []string
		if installed, err = a.sdkman.Versions(name); err != nil {
			return err
		}
		text, err = a.broker.ListVersions(ctx, name, a.platform, installed)
	}
	if err != nil {
		return err
	}
	fmt.Fprint(out, text)
	return nil
}
