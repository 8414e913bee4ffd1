package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/linux-china/wukong/internal/cli"
)

var (
	configPath   string
	verbose      bool
	noColor      bool
	outputFormat string
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(fmt.Sprintf("%s (%s, %s)", cli.Version, cli.GitCommit, cli.BuildDate)),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wukong",
		Short: "SDK and JDK version manager",
		Long: `wukong installs and switches SDK versions:
- SDKMAN candidates below $SDKMAN_DIR/candidates
- JDKs in the JBang cache below $JBANG_DIR/cache/jdks
- Maven toolchains in ~/.m2/toolchains.xml`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "log format (text, json, pretty)")

	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.NoColor = &noColor
	cli.OutputFormat = &outputFormat

	cmd.AddCommand(
		cli.NewInstallCmd(),
		cli.NewUninstallCmd(),
		cli.NewDefaultCmd(),
		cli.NewCurrentCmd(),
		cli.NewHomeCmd(),
		cli.NewListCmd(),
		cli.NewUseCmd(),
		cli.NewInitCmd(),
		cli.NewEnvCmd(),
		cli.NewDirenvCmd(),
		cli.NewUpgradeCmd(),
		cli.NewJDKCmd(),
		cli.NewToolchainsCmd(),
		cli.NewHooksCmd(),
		cli.NewCacheCmd(),
		cli.NewConfigCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
