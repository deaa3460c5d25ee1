package main

import (
	"github.com/spf13/cobra"

	"phorg/internal/config"
)

func newRootCommand() *cobra.Command {
	var flags config.Flags

	rootCmd := &cobra.Command{
		Use:   "phorg [flags] <library-dir>",
		Short: "File photos and videos into year and month folders by capture date",
		Long: `phorg moves every photo and video at the top level of a library directory
into <library>/YYYY/YYYY-MM and renames it to "YYYY-MM-DD HH-MM.ext",
using the capture date stored in the file. Files without a usable date are
reported and left where they are.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(args, flags)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
		},
	}

	rootCmd.Flags().BoolVarP(&flags.DryRun, "dry-run", "d", false, "Show where files would go without moving anything")
	rootCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print every move and progress step")
	rootCmd.Flags().BoolVarP(&flags.Plain, "plain", "p", false, "Print plain lines instead of the interactive view")
	rootCmd.Flags().StringVarP(&flags.ConfigFile, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVar(&flags.Exiftool, "exiftool", "", "exiftool binary used for video metadata")
	rootCmd.Flags().StringVar(&flags.LogFile, "log-file", "", "Append structured logs to this file")

	return rootCmd
}
