package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/linux-china/wukong/internal/logger"
	"github.com/linux-china/wukong/pkg/orchestrator"
	"github.com/linux-china/wukong/pkg/store"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var (
		makeDefault bool
		dryRun      bool
		localPath   string
		copyLocal   bool
	)

	cmd := &cobra.Command{
		Use:   "install CANDIDATE VERSION",
		Short: "Install a candidate version",
		Long: `Install a candidate version into the SDKMAN directory.

The download URL is resolved for the current platform: java versions without
a vendor suffix are resolved through the Foojay Disco API, everything else
through the SDKMAN broker. Use --local to register an SDK that is already on disk.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.Context(), cmd.OutOrStdout(), candidateArg(args), args[1], makeDefault, dryRun, localPath, copyLocal)
		},
	}

	cmd.Flags().BoolVarP(&makeDefault, "default", "d", false, "Make the installed version the current one")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve the download URL without installing")
	cmd.Flags().StringVar(&localPath, "local", "", "Register an SDK directory already present on disk")
	cmd.Flags().BoolVar(&copyLocal, "copy", false, "Copy the --local directory instead of linking it")

	return cmd
}

func runInstall(ctx context.Context, out io.Writer, name, version string, makeDefault, dryRun bool, localPath string, copyLocal bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	orch := a.orchestrator()
	c := store.Candidate{Name: name, Version: version}

	if localPath != "" {
		mode := store.Symlink
		if copyLocal {
			mode = store.Copy
		}
		result, err := a.sdkman.InstallFromLocalPath(c, localPath, mode)
		if err != nil {
			return err
		}
		if makeDefault {
			if err := orch.Default(ctx, c); err != nil {
				return err
			}
		}
		printInstallResult(out, c, result)
		return nil
	}

	result, err := orch.Install(ctx, orchestrator.InstallRequest{
		Candidate:   name,
		Version:     version,
		MakeDefault: makeDefault,
		DryRun:      dryRun,
	})
	if err != nil {
		return err
	}
	if dryRun {
		fmt.Fprintf(out, "Would install %s into %s\n", c, result.Home)
		return nil
	}
	printInstallResult(out, c, result)
	return nil
}

func printInstallResult(out io.Writer, c store.Candidate, result *store.InstallResult) {
	if result.AlreadyInstalled {
		fmt.Fprintf(out, "%s is already installed at %s\n", c, result.Home)
		return
	}
	msg := fmt.Sprintf("Installed %s at %s", c, result.Home)
	if result.Size > 0 {
		msg += fmt.Sprintf(" (%s downloaded)", humanize.Bytes(uint64(result.Size)))
	}
	fmt.Fprintln(out, render(successStyle, msg))
	logger.Debug("Install finished", logger.Fields{"candidate": c.Name, "version": c.Version})
}
