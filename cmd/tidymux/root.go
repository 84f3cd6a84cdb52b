package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags cleanFlags

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "tidymux [flags] <file-or-directory>...",
		Short: "Remove unwanted audio and subtitle streams without re-encoding",
		Long: `tidymux drops audio and subtitle streams from media containers by language
or by zero-based track number, stream-copying everything it keeps with ffmpeg.

Selection values are comma-separated language codes (ru, rus, russian) or
track numbers counted separately for audio and subtitles. Video and other
streams are always kept.`,
		Example: `  tidymux --remove ru movie.mkv
  tidymux --keep-audio da,en --remove-subtitles 3 -o cleaned/ series/
  tidymux --dry-run --json --keep da movie.mkv`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runClean(cmd, ctx, &flags, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	f := rootCmd.Flags()
	f.StringVarP(&flags.selection.Keep, "keep", "k", "", "Keep only matching audio and subtitle streams")
	f.StringVarP(&flags.selection.Remove, "remove", "r", "", "Remove matching audio and subtitle streams")
	f.StringVar(&flags.selection.KeepAudio, "keep-audio", "", "Keep only matching audio streams")
	f.StringVar(&flags.selection.RemoveAudio, "remove-audio", "", "Remove matching audio streams")
	f.StringVar(&flags.selection.KeepSubtitles, "keep-subtitles", "", "Keep only matching subtitle streams")
	f.StringVar(&flags.selection.RemoveSubtitles, "remove-subtitles", "", "Remove matching subtitle streams")
	f.StringVar(&flags.keepSubtitleAlias, "keep-subtitle", "", "Alias for --keep-subtitles")
	f.StringVar(&flags.removeSubtitleAlias, "remove-subtitle", "", "Alias for --remove-subtitles")
	_ = f.MarkHidden("keep-subtitle")
	_ = f.MarkHidden("remove-subtitle")

	f.StringVarP(&flags.outputDir, "output-dir", "o", "", "Directory for cleaned files (default: next to each input)")
	f.StringVarP(&flags.outputDirAlias, "output", "O", "", "Alias for --output-dir")
	_ = f.MarkHidden("output")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Print the ffmpeg commands without running them")
	f.BoolVar(&flags.json, "json", false, "Print the cleaning plans as JSON")
	f.BoolVar(&flags.overwrite, "overwrite", false, "Replace each input with its cleaned file")
	f.BoolVar(&flags.noCleanMetadata, "no-clean-metadata", false, "Keep title and comment metadata")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&flags.logFormat, "log-format", "", "Log format: console or json")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))

	return rootCmd
}
