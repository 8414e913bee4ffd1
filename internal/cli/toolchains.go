package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/linux-china/wukong/pkg/errors"
	"github.com/linux-china/wukong/pkg/fsutil"
	"github.com/linux-china/wukong/pkg/resolver"
	"github.com/linux-china/wukong/pkg/toolchain"
)

// NewToolchainsCmd creates the toolchains command group.
func NewToolchainsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toolchains",
		Short: "Manage JDKs registered in ~/.m2/toolchains.xml",
	}

	var format string
	list := &cobra.Command{
		Use:   "list",
		Short: "List registered jdk toolchains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runToolchainsList(cmd.OutOrStdout(), format)
		},
	}
	list.Flags().StringVar(&format, "format", "text", "Output format (text|json)")

	var addVendor, addPath string
	add := &cobra.Command{
		Use:   "add VERSION",
		Short: "Register a JDK home as a toolchain",
		Long: `Register a JDK home for VERSION. Without --path the home is taken from the
JBang cache for a plain major version and from the SDKMAN java directory otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToolchainsAdd(cmd.OutOrStdout(), args[0], optional(cmd, "vendor", addVendor), addPath)
		},
	}
	add.Flags().StringVar(&addVendor, "vendor", "", "Vendor of the JDK")
	add.Flags().StringVar(&addPath, "path", "", "JDK home directory")

	var removeVendor string
	remove := &cobra.Command{
		Use:   "remove VERSION",
		Short: "Remove a registered toolchain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToolchainsRemove(cmd.OutOrStdout(), args[0], optional(cmd, "vendor", removeVendor))
		},
	}
	remove.Flags().StringVar(&removeVendor, "vendor", "", "Vendor of the toolchain to remove")

	cmd.AddCommand(list, add, remove, &cobra.Command{
		Use:   "jdks",
		Short: "List JDK homes found on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runToolchainsJDKs(cmd.OutOrStdout())
		},
	})

	return cmd
}

// optional returns a pointer to value when the flag was given, nil otherwise.
func optional(cmd *cobra.Command, flag, value string) *string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &value
}

func runToolchainsList(out io.Writer, format string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	entries, err := toolchain.NewRegistrar(a.cfg.Settings.M2Dir).List()
	if err != nil {
		return err
	}

	if format == "json" {
		if entries == nil {
			entries = []toolchain.Entry{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No toolchains registered")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, TabWidth, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tVENDOR\tJDK HOME")
	for _, e := range entries {
		home := e.JDKHome
		if !fsutil.IsDir(home) {
			home = render(faintStyle, home+" (missing)")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Version, e.VendorString(), home)
	}
	return w.Flush()
}

func runToolchainsAdd(out io.Writer, version string, vendor *string, path string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	home := path
	if home == "" {
		if resolver.IsPlainVersion(version) {
			home = a.jbang.Home(jdk(version))
		} else {
			home = a.sdkman.Home(jdk(version))
		}
	} else if home, err = filepath.Abs(fsutil.ExpandHome(home)); err != nil {
		return fmt.Errorf("%s: %v: %w", path, err, errors.ErrInvalidPath)
	}
	if !fsutil.IsDir(home) {
		return fmt.Errorf("JDK home %s does not exist: %w", home, errors.ErrInvalidPath)
	}

	added, err := toolchain.NewRegistrar(a.cfg.Settings.M2Dir).Add(version, vendor, home)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(out, "Added toolchain %s: %s\n", version, home)
	} else {
		fmt.Fprintf(out, "Updated toolchain %s: %s\n", version, home)
	}
	return nil
}

func runToolchainsRemove(out io.Writer, version string, vendor *string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	removed, err := toolchain.NewRegistrar(a.cfg.Settings.M2Dir).Remove(version, vendor)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintf(out, "No toolchain %s registered\n", version)
		return nil
	}
	fmt.Fprintf(out, "Removed toolchain %s\n", version)
	return nil
}

func runToolchainsJDKs(out io.Writer) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	home := fsutil.HomeDir()
	sources := []toolchain.Source{
		{Name: "sdkman", Dir: a.sdkman.CandidateDir("java")},
		{Name: "jbang", Dir: a.jbang.CandidateDir("java")},
		toolchain.GradleSource(home),
	}
	sources = append(sources, toolchain.SystemSources(runtime.GOOS, home)...)

	jdks := toolchain.Discover(sources)
	if len(jdks) == 0 {
		fmt.Fprintln(out, "No JDKs found")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, TabWidth, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tVERSION\tVENDOR\tHOME")
	for _, j := range jdks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", j.Source, j.Version, j.Vendor, j.Home)
	}
	return w.Flush()
}
