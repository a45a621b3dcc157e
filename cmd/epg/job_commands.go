// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/senvora/epg/internal/config"
	"github.com/senvora/epg/internal/epg"
	"github.com/senvora/epg/internal/jobs"
)

type jobFlags struct {
	source string
	output string
	days   int
	sort   string
}

func (f *jobFlags) register(cmd *cobra.Command, sourceHelp string) {
	cmd.Flags().StringVar(&f.source, "source", "", sourceHelp)
	cmd.Flags().StringVar(&f.output, "output", "", "Output path (defaults to the job's file in the output dir)")
	cmd.Flags().IntVar(&f.days, "days", 0, "Retention window in days (0 keeps the job default)")
	cmd.Flags().StringVar(&f.sort, "sort", "", "Channel order: numeric or alphanumeric")
}

func (f *jobFlags) apply(j *jobs.Job) error {
	if f.source != "" {
		j.Source = f.source
	}
	if f.output != "" {
		j.Output = f.output
	}
	if f.days > 0 {
		j.Days = f.days
	}
	if f.sort != "" {
		mode, err := epg.ParseSortMode(f.sort)
		if err != nil {
			return fmt.Errorf("%w: %v", config.ErrInvalidJob, err)
		}
		j.Sort = mode
	}
	return nil
}

func (c *commandContext) defaultJob(kind jobs.Kind, flags *jobFlags) (jobs.Job, error) {
	s, err := c.ensureSettings()
	if err != nil {
		return jobs.Job{}, err
	}
	j, err := jobs.Default(kind, s.OutputDir)
	if err != nil {
		return jobs.Job{}, err
	}
	if err := flags.apply(&j); err != nil {
		return jobs.Job{}, err
	}
	return j, nil
}

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var flags jobFlags
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download, clean and write the JioTV guide",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := ctx.defaultJob(jobs.KindDownload, &flags)
			if err != nil {
				return err
			}
			return ctx.runJobs(cmd, []jobs.Job{j})
		},
	}
	flags.register(cmd, "Guide URL or path (defaults to $"+config.EnvSourceURL+")")
	return cmd
}

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var (
		flags     jobFlags
		manifest  string
		sourceDir string
	)
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge the grabbed guides listed in the sites manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := ctx.defaultJob(jobs.KindMerge, &flags)
			if err != nil {
				return err
			}
			if manifest != "" {
				j.Manifest = manifest
			}
			if sourceDir != "" {
				j.SourceDir = sourceDir
			}
			return ctx.runJobs(cmd, []jobs.Job{j})
		},
	}
	flags.register(cmd, "Unused for merge jobs")
	_ = cmd.Flags().MarkHidden("source")
	cmd.Flags().StringVar(&manifest, "manifest", "", "Manifest listing the grabbed files (default "+jobs.DefaultManifest+")")
	cmd.Flags().StringVar(&sourceDir, "source-dir", "", "Directory holding the grabbed files (default "+jobs.DefaultSourceDir+")")
	return cmd
}

func newTempestCommand(ctx *commandContext) *cobra.Command {
	var flags jobFlags
	cmd := &cobra.Command{
		Use:   "tempest",
		Short: "Clean and write the locally grabbed tempest guide",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := ctx.defaultJob(jobs.KindTempest, &flags)
			if err != nil {
				return err
			}
			return ctx.runJobs(cmd, []jobs.Job{j})
		},
	}
	flags.register(cmd, "Guide path (default "+jobs.DefaultTempestSource+")")
	return cmd
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var configFlag string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every job listed in a YAML or TOML job file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			file, err := config.LoadJobFile(configFlag)
			if err != nil {
				return err
			}
			list, err := jobs.FromSpecs(file.Jobs, s.OutputDir)
			if err != nil {
				return err
			}
			return ctx.runJobs(cmd, list)
		},
	}
	cmd.Flags().StringVarP(&configFlag, "config", "c", "", "Job file path (.yaml, .yml or .toml)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}
