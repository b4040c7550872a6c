// Package main is the entry point for the Quill editor shell.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	configPath  string
	logLevel    string
	pluginDir   string
	settingsDir string
	platform    string
}

func newRootCommand() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "quill",
		Short:         "Quill - a plugin-driven editor shell",
		Long:          `Quill opens editor windows in the terminal. Menus, keymaps and sensitivities come from plugins described by YAML manifests.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f)
		},
	}

	cmd.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "Path to configuration file")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&f.pluginDir, "plugins", "", "Directory of plugin manifests")
	cmd.PersistentFlags().StringVar(&f.settingsDir, "settings", "", "Directory of settings namespaces")
	cmd.PersistentFlags().StringVar(&f.platform, "platform", "", "Platform override (linux, windows, macos)")

	cmd.AddCommand(newVersionCommand(), newPluginsCommand(&f))
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Quill %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
		},
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
