package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/linux-china/wukong/pkg/cache"
)

// NewCacheCmd creates the cache command with subcommands.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage staged downloads",
		Long:  "Show and reclaim the space used by staged archives and interrupted installs",
	}

	cmd.AddCommand(
		newCacheCleanCmd(),
		newCacheInfoCmd(),
		newCacheDirCmd(),
	)

	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	var (
		all      bool
		archives bool
		partials bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove staged archives and partial installs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCacheClean(cmd.OutOrStdout(), all, archives, partials)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Clean everything")
	cmd.Flags().BoolVar(&archives, "archives", false, "Clean only staged archives")
	cmd.Flags().BoolVar(&partials, "partials", false, "Clean only interrupted installs")

	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCacheInfo(cmd.OutOrStdout())
		},
	}
}

func newCacheDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Show the staging directories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCacheDir(cmd.OutOrStdout())
		},
	}
}

func cacheOperation() (*cache.Operation, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}
	return cache.NewOperation(cache.NewManager(a.sdkman, a.jbang)), nil
}

func runCacheClean(out io.Writer, all, archives, partials bool) error {
	op, err := cacheOperation()
	if err != nil {
		return err
	}
	msg, err := op.Clean(all, archives, partials)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, msg)
	return nil
}

func runCacheInfo(out io.Writer) error {
	op, err := cacheOperation()
	if err != nil {
		return err
	}
	info, err := op.GetInfo()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, info)
	return nil
}

func runCacheDir(out io.Writer) error {
	op, err := cacheOperation()
	if err != nil {
		return err
	}
	for _, dir := range op.Directories() {
		fmt.Fprintln(out, dir)
	}
	return nil
}
