package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/linux-china/wukong/pkg/fsutil"
	"github.com/linux-china/wukong/pkg/hooks"
)

// NewHooksCmd creates the hooks command for managing Tengo hook scripts.
func NewHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage install and uninstall hook scripts",
		Long: `Hook scripts are Tengo programs stored as <type>.tengo in the hooks directory.
They run with the candidate, version and candidateHome variables set.`,
	}

	var force bool
	create := &cobra.Command{
		Use:       "init TYPE",
		Short:     "Create a starter script for a hook type",
		Args:      cobra.ExactArgs(1),
		ValidArgs: hookTypeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHooksInit(cmd.OutOrStdout(), hooks.HookType(args[0]), force)
		},
	}
	create.Flags().BoolVar(&force, "force", false, "Overwrite an existing script")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the hook scripts in the hooks directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksList(cmd.OutOrStdout())
		},
	}, create)

	return cmd
}

func hookTypeNames() []string {
	types := hooks.Types()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return names
}

func runHooksList(out io.Writer) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	for _, t := range hooks.Types() {
		path := hooks.HookPath(a.cfg.Settings.HooksDir, t)
		state := render(faintStyle, "not set")
		if a.scripts.HasHook(t) {
			state = render(successStyle, path)
		}
		fmt.Fprintf(out, "%-15s %s\n", t, state)
	}
	return nil
}

func runHooksInit(out io.Writer, hookType hooks.HookType, force bool) error {
	if !hookType.Valid() {
		return fmt.Errorf("unknown hook type %q, expected one of %v", hookType, hookTypeNames())
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := hooks.HookPath(cfg.Settings.HooksDir, hookType)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := fsutil.EnsureFileDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(hooks.HookTemplate(hookType)+"\n"), fsutil.FileModeDefault); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %s\n", path)
	return nil
}
