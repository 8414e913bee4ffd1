package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	wkhttp "github.com/linux-china/wukong/pkg/http"
	"github.com/linux-china/wukong/pkg/platform"
)

const (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version information for wukong",
		Run: func(cmd *cobra.Command, _ []string) {
			runVersion(cmd.OutOrStdout())
		},
	}
}

func runVersion(out io.Writer) {
	fmt.Fprintf(out, "wukong version %s\n", Version)
	fmt.Fprintf(out, "Build date: %s\n", BuildDate)
	fmt.Fprintf(out, "Git commit: %s\n", GitCommit)
	fmt.Fprintf(out, "Platform:   %s\n", platform.Detect())
	fmt.Fprintf(out, "User agent: %s\n", wkhttp.DefaultUserAgent)
}
