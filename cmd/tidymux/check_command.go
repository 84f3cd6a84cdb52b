package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tidymux/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report ffmpeg, ffprobe, and output directory status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			results := preflight.RunAll(cfg, false)
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Config file", statusInfo, ctx.configPath, colorize))
			outputDir := cfg.Paths.OutputDir
			if strings.TrimSpace(outputDir) == "" {
				outputDir = "next to each input"
			}
			fmt.Fprintln(out, renderStatusLine("Output directory", statusInfo, outputDir, colorize))
			fmt.Fprintln(out, renderStatusLine("Clean metadata", statusInfo, yesNo(cfg.Cleaning.CleanMetadata), colorize))
			fmt.Fprintln(out, renderStatusLine("Overwrite", statusInfo, yesNo(cfg.Cleaning.Overwrite), colorize))

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d of %d checks failed", len(failed), len(results))
			}
			return nil
		},
	}
}
