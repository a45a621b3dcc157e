// SPDX-License-Identifier: MIT

package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	xglog "github.com/senvora/epg/internal/log"
)

func newRootCommand() *cobra.Command {
	var (
		outputDirFlag string
		logLevelFlag  string
		logFormatFlag string
	)

	ctx := newCommandContext(&outputDirFlag)

	rootCmd := &cobra.Command{
		Use:           "epg",
		Short:         "Build cleaned and merged XMLTV guides",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			xglog.Configure(xglog.Config{Level: logLevelFlag, Format: logFormatFlag})
			cmd.SetContext(xglog.ContextWithRunID(cmd.Context(), uuid.NewString()))
			if shouldSkipSettings(cmd) {
				return nil
			}
			_, err := ctx.ensureSettings()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&outputDirFlag, "output-dir", "", "Directory for written guides (overrides EPG_OUTPUT_DIR)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format: json or console (overrides LOG_FORMAT)")

	rootCmd.AddCommand(newDownloadCommand(ctx))
	rootCmd.AddCommand(newMergeCommand(ctx))
	rootCmd.AddCommand(newTempestCommand(ctx))
	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func shouldSkipSettings(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	}
	return false
}
