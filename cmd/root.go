// Package cmd provides the root command and CLI setup for rmds.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"rmds.dev/pkg/rmds/internal/adapter"
	"rmds.dev/pkg/rmds/internal/controller"
	"rmds.dev/pkg/rmds/internal/domain"
	m "rmds.dev/pkg/rmds/internal/model"
)

var cleanAllFlag bool
var dryRunFlag bool
var quietFlag bool
var verboseFlag bool
var interactiveFlag bool
var maxDepthFlag int
var oneFileSystemFlag bool
var excludeFlag []string
var nameFlag string
var noColorFlag bool
var logFileFlag string

const rootLongDescription = `rmds recursively scans one or more directory trees and deletes files
matching a target name (default ".DS_Store"). These files are created by
macOS to store folder metadata and tend to clutter shared or
version-controlled trees.

With no paths, the scan starts at $HOME. Deleted files cannot be
recovered; use --dry-run to preview a scan first.`

// rootCmd represents the base command.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "rmds [paths...]",
		Short:        "Recursively remove .DS_Store files",
		Long:         rootLongDescription,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogger(viper.GetString(logFileFlagName))

			roots, err := resolveRoots(args)
			if err != nil {
				return err
			}

			opts := optionsFromConfig()

			color := !viper.GetBool(noColorFlagName) && controller.IsTTY(os.Stdout)
			ui := controller.NewConsoleUI(cmd.OutOrStdout(), cmd.ErrOrStderr(), color)
			confirmer := adapter.NewLineConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())

			traverser := domain.NewTraverser(adapter.NewLocalDirFS(), confirmer, ui, opts)
			stats := traverser.Run(roots)

			if !opts.Quiet {
				ui.Summary(stats)
			}

			return nil
		},
	}

	configureRootFlags(cmd)

	return cmd
}

// configureRootFlags registers the scan flags. Defaults here are
// literals: rootCmd is built during package variable initialization,
// before any init() has seeded viper, and BindPFlag makes env values win
// over flag defaults at read time anyway.
func configureRootFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&cleanAllFlag, cleanAllFlagName, "A", false, `also delete AppleDouble "._*" files`)
	bindFlagToConfig(cmd.Flags().Lookup(cleanAllFlagName), cleanAllFlagName)

	cmd.Flags().BoolVarP(&dryRunFlag, dryRunFlagName, "n", false, "report intended deletions without touching the filesystem")
	bindFlagToConfig(cmd.Flags().Lookup(dryRunFlagName), dryRunFlagName)

	cmd.Flags().BoolVarP(&quietFlag, quietFlagName, "q", false, "suppress all output except deletion failures")
	bindFlagToConfig(cmd.Flags().Lookup(quietFlagName), quietFlagName)

	cmd.Flags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log scanned directories and skip decisions")
	bindFlagToConfig(cmd.Flags().Lookup(verboseFlagName), verboseFlagName)

	cmd.Flags().BoolVarP(&interactiveFlag, interactiveFlagName, "i", false, "ask before each deletion")
	bindFlagToConfig(cmd.Flags().Lookup(interactiveFlagName), interactiveFlagName)

	cmd.Flags().IntVarP(&maxDepthFlag, maxDepthFlagName, "d", m.UnlimitedDepth, "limit recursion depth below each root (-1 = unlimited)")
	bindFlagToConfig(cmd.Flags().Lookup(maxDepthFlagName), maxDepthFlagName)

	cmd.Flags().BoolVarP(&oneFileSystemFlag, oneFileSystemFlagName, "x", false, "stay on the file system of each scan root")
	bindFlagToConfig(cmd.Flags().Lookup(oneFileSystemFlagName), oneFileSystemFlagName)

	cmd.Flags().StringArrayVarP(&excludeFlag, excludeFlagName, "e", nil, "directory name to skip (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(excludeFlagName), excludeFlagName)

	cmd.Flags().StringVarP(&nameFlag, nameFlagName, "m", m.DefaultTargetName, "file name to delete")
	bindFlagToConfig(cmd.Flags().Lookup(nameFlagName), nameFlagName)

	cmd.Flags().BoolVar(&noColorFlag, noColorFlagName, false, "disable colored output")
	bindFlagToConfig(cmd.Flags().Lookup(noColorFlagName), noColorFlagName)

	cmd.Flags().StringVar(&logFileFlag, logFileFlagName, "", "write a rotated debug log to this file")
	bindFlagToConfig(cmd.Flags().Lookup(logFileFlagName), logFileFlagName)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// optionsFromConfig snapshots the effective configuration (flags over env
// over defaults) into the immutable scan options.
func optionsFromConfig() m.Options {
	excluded := make(map[string]struct{})
	for _, name := range viper.GetStringSlice(excludeFlagName) {
		excluded[name] = struct{}{}
	}

	return m.Options{
		DryRun:        viper.GetBool(dryRunFlagName),
		Quiet:         viper.GetBool(quietFlagName),
		Verbose:       viper.GetBool(verboseFlagName),
		Interactive:   viper.GetBool(interactiveFlagName),
		MaxDepth:      viper.GetInt(maxDepthFlagName),
		OneFileSystem: viper.GetBool(oneFileSystemFlagName),
		Excluded:      excluded,
		TargetName:    viper.GetString(nameFlagName),
		CleanAll:      viper.GetBool(cleanAllFlagName),
	}
}

// resolveRoots turns positional arguments into scan roots, defaulting to
// $HOME. A missing $HOME with no explicit paths is the one fatal startup
// condition.
func resolveRoots(args []string) ([]m.Path, error) {
	if len(args) > 0 {
		return parsePaths(args), nil
	}

	home := os.Getenv("HOME")
	if home == "" {
		return nil, fmt.Errorf("could not determine starting path: $HOME is not set")
	}

	return []m.Path{m.Path(home)}, nil
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
