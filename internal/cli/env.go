package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/linux-china/wukong/pkg/orchestrator"
	"github.com/linux-china/wukong/pkg/shellenv"
)

// NewEnvCmd creates the env command and its subcommands.
func NewEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage the per-project .sdkmanrc",
		Long:  "Control SDK versions on a project level through the .sdkmanrc file of the working directory.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Create an .sdkmanrc pinning the current java version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runEnvInit(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "install",
			Short: "Install the versions listed in .sdkmanrc",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runEnvInstall(cmd.Context(), cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "update",
			Short: "Set the java entry of .sdkmanrc to the current java version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runEnvUpdate(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Print exports restoring the default versions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runEnvClear(cmd.OutOrStdout())
			},
		},
	)

	return cmd
}

func currentJava(a *app) (string, error) {
	version, ok, err := a.sdkman.Current("java")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no default java version, run 'wukong default java VERSION' first: %w", errNotInstalled)
	}
	return version, nil
}

func runEnvInit(out io.Writer) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	version, err := currentJava(a)
	if err != nil {
		return err
	}
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	if err := shellenv.InitRC(dir, version); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %s with java=%s\n", shellenv.RCFile, version)
	return nil
}

func runEnvUpdate(out io.Writer) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	version, err := currentJava(a)
	if err != nil {
		return err
	}
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	if err := shellenv.UpdateRC(dir, "java", version); err != nil {
		return err
	}
	fmt.Fprintf(out, "Updated java to %s\n", version)
	return nil
}

func runEnvInstall(ctx context.Context, out io.Writer) error {
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
	entries, err := shellenv.ReadRC(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s not found in %s", shellenv.RCFile, dir)
	}
	if err != nil {
		return err
	}

	orch := a.orchestrator()
	for _, e := range entries {
		result, err := orch.Install(ctx, orchestrator.InstallRequest{Candidate: e.Candidate, Version: e.Version})
		if err != nil {
			return err
		}
		printInstallResult(out, candidate(e.Candidate, e.Version), result)
	}
	return nil
}

func runEnvClear(out io.Writer) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	entries, err := shellenv.ReadRC(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s not found in %s", shellenv.RCFile, dir)
	}
	if err != nil {
		return err
	}
	script, err := shellenv.Clear(a.sdkman, entries)
	if err != nil {
		return err
	}
	fmt.Fprint(out, script.String())
	return nil
}
