package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/build"
	"go.trai.ch/forge/internal/core/domain"
)

func versionLine() string {
	return fmt.Sprintf("forge version %s (commit: %s, date: %s)", build.Version, build.Commit, build.Date)
}

// writeHostInfo prints what forge compiles for when no platform is given.
func writeHostInfo(w io.Writer, goos, goarch string) {
	_, _ = fmt.Fprintf(w, "go: %s\nhost: %s/%s\n", runtime.Version(), goos, goarch)
	if p, ok := domain.HostPlatform(goos); ok {
		_, _ = fmt.Fprintf(w, "default platform: %s\n", p)
	} else {
		_, _ = fmt.Fprintln(w, "default platform: none")
	}
}

func (c *CLI) newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, versionLine())
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				writeHostInfo(out, runtime.GOOS, runtime.GOARCH)
			}
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Also print the Go version and the host platform")
	return cmd
}
