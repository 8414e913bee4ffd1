package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/linux-china/wukong/internal/logger"
	"github.com/linux-china/wukong/pkg/orchestrator"
	"github.com/linux-china/wukong/pkg/shellenv"
)

// NewDirenvCmd creates the direnv command.
func NewDirenvCmd() *cobra.Command {
	var noInstall bool

	cmd := &cobra.Command{
		Use:   "direnv",
		Short: "Print the environment of the working directory for direnv",
		Long: `Print exports for the versions named by .sdkmanrc and .java-version.
Versions that are not installed yet are installed first unless --no-install is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDirenv(cmd.Context(), cmd.OutOrStdout(), !noInstall)
		},
	}
	cmd.Flags().BoolVar(&noInstall, "no-install", false, "Skip versions that are not installed")

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Add the wukong hook to .envrc",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDirenvInit(cmd.OutOrStdout())
		},
	})

	return cmd
}

func runDirenv(ctx context.Context, out io.Writer, install bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	script, err := shellenv.Direnv(a.sdkman, a.jbang, dir)
	if err != nil {
		return err
	}
	if len(script.Missing) > 0 && install {
		orch := a.orchestrator()
		for _, c := range script.Missing {
			if _, err := orch.Install(ctx, orchestrator.InstallRequest{Candidate: c.Name, Version: c.Version}); err != nil {
				return err
			}
		}
		if script, err = shellenv.Direnv(a.sdkman, a.jbang, dir); err != nil {
			return err
		}
	}
	for _, c := range script.Missing {
		logger.Warn("Not installed", logger.Fields{"candidate": c.Name, "version": c.Version})
	}
	fmt.Fprint(out, script.String())
	return nil
}

func runDirenvInit(out io.Writer) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	changed, err := shellenv.InitEnvrc(dir, direnvHook)
	if err != nil {
		return err
	}
	if changed {
		fmt.Fprintf(out, "Added '%s' to %s\n", direnvHook, shellenv.EnvrcFile)
	} else {
		fmt.Fprintf(out, "%s already loads wukong\n", shellenv.EnvrcFile)
	}
	return nil
}
