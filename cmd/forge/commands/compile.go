package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/app"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [modules...]",
		Short: "Compile and link modules for one platform",
		Long: "Compile and link the given modules and their dependencies. " +
			"Without modules every module available on the platform is built.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			platform, _ := flags.GetString("platform")
			configuration, _ := flags.GetString("configuration")
			modules, _ := flags.GetStringSlice("modules")
			recompile, _ := flags.GetBool("recompile")
			printCompile, _ := flags.GetBool("print-compile-commands")
			printLink, _ := flags.GetBool("print-link-commands")
			watch, _ := flags.GetBool("watch")
			metricsFile, _ := flags.GetString("metrics-file")
			outputMode, _ := flags.GetString("output-mode")
			ci, _ := flags.GetBool("ci")
			dir, _ := flags.GetString("dir")
			jobs, _ := flags.GetInt("jobs")
			singleThreaded, _ := flags.GetBool("single-threaded")

			if ci {
				outputMode = "plain"
			}

			return c.app.Compile(cmd.Context(), app.CompileOptions{
				Dir:                  dir,
				Platform:             platform,
				Configuration:        configuration,
				Modules:              append(modules, args...),
				Recompile:            recompile,
				PrintCompileCommands: printCompile,
				PrintLinkCommands:    printLink,
				Watch:                watch,
				MetricsFile:          metricsFile,
				OutputMode:           outputMode,
				Jobs:                 jobs,
				SingleThreaded:       singleThreaded,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringP("platform", "p", "", "Target platform (default: the host's desktop platform)")
	flags.StringP("configuration", "c", "Debug", "Build configuration: Debug or Release")
	flags.StringSliceP("modules", "m", nil, "Modules to build, comma separated")
	flags.BoolP("recompile", "r", false, "Clean intermediate files before building")
	flags.Bool("print-compile-commands", false, "Print every compiler command line")
	flags.Bool("print-link-commands", false, "Print every linker command line")
	flags.BoolP("watch", "w", false, "Rebuild whenever sources change")
	flags.String("metrics-file", "", "Write build metrics in the Prometheus text format to this file")
	flags.StringP("output-mode", "o", "auto", "Output mode: auto, interactive, or plain")
	flags.Bool("ci", false, "Plain output (shorthand for --output-mode=plain)")
	flags.IntP("jobs", "j", 0, "Number of compile workers (default: number of CPUs)")
	flags.Bool("single-threaded", false, "Compile and link one action at a time, in dependency order")
	return cmd
}
