package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tidymux/internal/cleaner"
	"tidymux/internal/config"
	"tidymux/internal/ffmpeg"
	"tidymux/internal/logging"
	"tidymux/internal/preflight"
	"tidymux/internal/rules"
)

type cleanFlags struct {
	selection       rules.Options
	outputDir       string
	dryRun          bool
	json            bool
	overwrite       bool
	noCleanMetadata bool
	logLevel        string
	logFormat       string

	// Hidden aliases. The primary flag wins whenever both are given.
	keepSubtitleAlias   string
	removeSubtitleAlias string
	outputDirAlias      string
}

// selectionOptions returns the selection flags with the subtitle aliases
// folded in.
func (f *cleanFlags) selectionOptions() rules.Options {
	opts := f.selection
	if strings.TrimSpace(opts.KeepSubtitles) == "" {
		opts.KeepSubtitles = f.keepSubtitleAlias
	}
	if strings.TrimSpace(opts.RemoveSubtitles) == "" {
		opts.RemoveSubtitles = f.removeSubtitleAlias
	}
	return opts
}

func (f *cleanFlags) outputDirectory() string {
	if dir := strings.TrimSpace(f.outputDir); dir != "" {
		return dir
	}
	return strings.TrimSpace(f.outputDirAlias)
}

func runClean(cmd *cobra.Command, ctx *commandContext, flags *cleanFlags, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := applyCleanFlags(cfg, flags); err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	runID := uuid.NewString()
	runCtx := logging.WithRunID(cmd.Context(), runID)
	logger = logging.WithContext(runCtx, logger)

	selection := flags.selectionOptions()
	if selection.IsZero() {
		selection = cfg.Selection
	}
	rs, warnings, err := rules.Build(selection)
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		logging.WarnWithContext(logger, "selection value is neither a track number nor a known language", "invalid_token",
			logging.String("option", warning.Option),
			logging.String("value", warning.Token),
			logging.String(logging.FieldErrorHint, "check the spelling; the value is still matched literally"),
		)
	}

	if failed := preflight.Failed(preflight.RunAll(cfg, flags.dryRun)); len(failed) > 0 {
		details := make([]string, 0, len(failed))
		for _, result := range failed {
			details = append(details, fmt.Sprintf("%s: %s", result.Name, result.Detail))
		}
		return fmt.Errorf("preflight failed: %s", strings.Join(details, "; "))
	}

	discovery, err := cleaner.Discover(args, cfg.IsMediaFile)
	for _, ignored := range discovery.Ignored {
		logging.WarnWithContext(logger, "ignoring file with unsupported extension", "file_ignored",
			logging.String(logging.FieldFile, ignored),
			logging.String(logging.FieldErrorHint, "add the extension to cleaning.extensions to process it"),
		)
	}
	if err != nil {
		return err
	}

	logger.Info("starting batch",
		logging.String("rules", rs.String()),
		logging.Int("file_count", len(discovery.Files)),
		logging.Bool("dry_run", flags.dryRun),
	)

	stdout := cmd.OutOrStdout()
	var progress io.Writer
	if !flags.dryRun && shouldColorize(cmd.ErrOrStderr()) {
		progress = cmd.ErrOrStderr()
	}
	runner := ffmpeg.NewRunner(cfg.FFmpegBinary(), logger, progress)

	out := stdout
	if flags.json {
		out = io.Discard
	}
	c := cleaner.New(rs, cleaner.Options{
		OutputDir:     cfg.Paths.OutputDir,
		OutputSuffix:  cfg.Cleaning.OutputSuffix,
		CleanMetadata: cfg.Cleaning.CleanMetadata,
		Overwrite:     cfg.Cleaning.Overwrite,
		DryRun:        flags.dryRun,
	}, cleaner.NewFFprobe(cfg.FFprobeBinary()), runner, logger, out)

	summary := c.Run(runCtx, discovery.Files)

	switch {
	case flags.json:
		if err := writeReport(stdout, newPlanReport(runID, rs, flags.dryRun, summary)); err != nil {
			return err
		}
	case flags.dryRun && shouldColorize(stdout):
		renderPlans(stdout, summary.Plans(), true)
	}
	return summary.Err()
}

// applyCleanFlags layers command-line overrides onto the loaded config and
// revalidates it.
func applyCleanFlags(cfg *config.Config, flags *cleanFlags) error {
	if dir := flags.outputDirectory(); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return fmt.Errorf("resolve output directory: %w", err)
		}
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return fmt.Errorf("resolve output directory: %w", err)
		}
		cfg.Paths.OutputDir = abs
	}
	if flags.overwrite {
		cfg.Cleaning.Overwrite = true
	}
	if flags.noCleanMetadata {
		cfg.Cleaning.CleanMetadata = false
	}
	if level := strings.TrimSpace(flags.logLevel); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
	}
	if format := strings.TrimSpace(flags.logFormat); format != "" {
		cfg.Logging.Format = strings.ToLower(format)
	}
	return cfg.Validate()
}
