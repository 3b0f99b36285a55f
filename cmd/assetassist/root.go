package main

import (
	"github.com/spf13/cobra"
)

const appVersion = "1.0.0"

func newRootCommand() *cobra.Command {
	var configFlag string
	var debugFlag bool
	var dryRunFlag bool

	ctx := newCommandContext(&configFlag, &debugFlag)

	rootCmd := &cobra.Command{
		Use:     "assetassist",
		Version: appVersion,
		Short:   "Organize and rename media artwork",
		Long: "Asset Assistant scans a process directory for poster and background art,\n" +
			"copies each image into the matching media library folder, and renames it\n" +
			"following the Plex, Kometa, or Kodi convention.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, ctx, dryRunFlag)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Classify assets and report without copying")

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newNotifyCommand(ctx))

	return rootCmd
}
