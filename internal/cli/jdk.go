package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/linux-china/wukong/pkg/orchestrator"
	"github.com/linux-china/wukong/pkg/shellenv"
	"github.com/linux-china/wukong/pkg/store"
)

// NewJDKCmd creates the jdk command group operating on the JBang JDK cache.
func NewJDKCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jdk",
		Short: "Manage JDKs in the JBang cache",
		Long: `Manage JDKs below $JBANG_DIR/cache/jdks. JDKs are named by their major
version and downloaded through the Foojay Disco API.`,
	}

	var makeDefault bool
	install := &cobra.Command{
		Use:   "install VERSION",
		Short: "Install a JDK",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJDKInstall(cmd.Context(), cmd.OutOrStdout(), args[0], makeDefault)
		},
	}
	install.Flags().BoolVarP(&makeDefault, "default", "d", false, "Make the JDK the default one")

	var format string
	list := &cobra.Command{
		Use:   "list",
		Short: "List installed JDKs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJDKList(cmd.OutOrStdout(), format)
		},
	}
	list.Flags().StringVar(&format, "format", "text", "Output format (text|json)")

	cmd.AddCommand(
		install,
		&cobra.Command{
			Use:   "uninstall VERSION",
			Short: "Remove an installed JDK",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runJDKUninstall(cmd.Context(), cmd.OutOrStdout(), args[0])
			},
		},
		&cobra.Command{
			Use:   "default VERSION",
			Short: "Make an installed JDK the default one",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runJDKDefault(cmd.Context(), cmd.OutOrStdout(), args[0])
			},
		},
		&cobra.Command{
			Use:   "home [VERSION]",
			Short: "Print the home of a JDK, the default one without VERSION",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version := ""
				if len(args) == 1 {
					version = args[0]
				}
				return runJDKHome(cmd.OutOrStdout(), version)
			},
		},
		list,
		&cobra.Command{
			Use:   "java-env VERSION",
			Short: "Print exports selecting a JDK in the current shell",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runJDKJavaEnv(cmd.OutOrStdout(), args[0])
			},
		},
	)

	return cmd
}

func jdk(version string) store.Candidate {
	return candidate("java", version)
}

func runJDKInstall(ctx context.Context, out io.Writer, version string, makeDefault bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	result, err := a.jdkOrchestrator().Install(ctx, orchestrator.InstallRequest{
		Candidate:   "java",
		Version:     version,
		MakeDefault: makeDefault,
	})
	if err != nil {
		return err
	}
	printInstallResult(out, jdk(version), result)
	return nil
}

func runJDKUninstall(ctx context.Context, out io.Writer, version string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.jdkOrchestrator().Uninstall(ctx, jdk(version)); err != nil {
		return err
	}
	fmt.Fprintf(out, "Uninstalled JDK %s\n", version)
	return nil
}

func runJDKDefault(ctx context.Context, out io.Writer, version string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	c, err := resolveInstalled(a.jbang, "java", version)
	if err != nil {
		return err
	}
	if err := a.jdkOrchestrator().Default(ctx, c); err != nil {
		return err
	}
	fmt.Fprintf(out, "Default JDK set to %s\n", render(currentStyle, c.Version))
	return nil
}

func runJDKHome(out io.Writer, version string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if version == "" {
		home, ok, err := a.jbang.CurrentHome("java")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no default JDK: %w", errNotInstalled)
		}
		fmt.Fprintln(out, home)
		return nil
	}
	c, err := resolveInstalled(a.jbang, "java", version)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, a.jbang.Home(c))
	return nil
}

func runJDKList(out io.Writer, format string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	jdks, err := store.FindJDKs(a.jbang)
	if err != nil {
		return err
	}

	if format == "json" {
		if jdks == nil {
			jdks = []store.JDK{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(jdks)
	}

	if len(jdks) == 0 {
		fmt.Fprintln(out, "No JDKs installed")
		return nil
	}
	fmt.Fprintln(out, render(titleStyle, "Installed JDKs (> default):"))
	w := tabwriter.NewWriter(out, 0, TabWidth, 2, ' ', 0)
	for _, j := range jdks {
		marker := " "
		if j.Current {
			marker = ">"
		}
		fmt.Fprintf(w, "  %s\t%d\t%s\t%s\n", marker, j.Major, j.Version, render(faintStyle, j.Home))
	}
	return w.Flush()
}

func runJDKJavaEnv(out io.Writer, version string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	c, err := resolveInstalled(a.jbang, "java", version)
	if err != nil {
		return err
	}
	script, err := shellenv.Use(a.jbang, c, "wukong jdk java-env "+version)
	if err != nil {
		return err
	}
	fmt.Fprint(out, script.String())
	return nil
}
