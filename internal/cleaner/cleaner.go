package cleaner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"tidymux/internal/directive"
	"tidymux/internal/ffmpeg"
	"tidymux/internal/fileutil"
	"tidymux/internal/logging"
	"tidymux/internal/media/ffprobe"
	"tidymux/internal/media/stream"
	"tidymux/internal/rules"
	"tidymux/internal/selection"
)

// Prober inspects a media file.
type Prober interface {
	Inspect(ctx context.Context, path string) (ffprobe.Result, error)
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context, path string) (ffprobe.Result, error)

// Inspect calls f.
func (f ProberFunc) Inspect(ctx context.Context, path string) (ffprobe.Result, error) {
	return f(ctx, path)
}

// NewFFprobe returns a Prober backed by the ffprobe binary.
func NewFFprobe(binary string) Prober {
	return ProberFunc(func(ctx context.Context, path string) (ffprobe.Result, error) {
		return ffprobe.Inspect(ctx, binary, path)
	})
}

// Transcoder renders and executes ffmpeg jobs.
type Transcoder interface {
	Command(job ffmpeg.Job) (string, []string)
	Run(ctx context.Context, job ffmpeg.Job) (ffmpeg.Stats, error)
}

// Options controls how files are written.
type Options struct {
	OutputDir     string
	OutputSuffix  string
	CleanMetadata bool
	Overwrite     bool
	DryRun        bool
}

// FileResult records the outcome for one file.
type FileResult struct {
	Plan  Plan         `json:"plan"`
	Stats ffmpeg.Stats `json:"-"`
	Err   error        `json:"-"`
}

// Summary aggregates a batch.
type Summary struct {
	Results   []FileResult
	Succeeded int
	Failed    int
	Elapsed   time.Duration
	// Interrupted is set when cancellation stopped the batch early.
	Interrupted error
}

// Err returns a non-nil error when the batch did not fully succeed.
func (s Summary) Err() error {
	if s.Interrupted != nil {
		return s.Interrupted
	}
	if s.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", s.Failed, s.Failed+s.Succeeded)
	}
	return nil
}

// Plans returns the plans of the files that were planned successfully.
func (s Summary) Plans() []Plan {
	plans := make([]Plan, 0, len(s.Results))
	for _, r := range s.Results {
		if r.Err == nil {
			plans = append(plans, r.Plan)
		}
	}
	return plans
}

// Cleaner processes files against a fixed rule set.
type Cleaner struct {
	rules      rules.RuleSet
	opts       Options
	prober     Prober
	transcoder Transcoder
	logger     *slog.Logger
	out        io.Writer
}

// New constructs a Cleaner. out receives dry-run commands and the paths of
// cleaned files; nil discards them.
func New(rs rules.RuleSet, opts Options, prober Prober, transcoder Transcoder, logger *slog.Logger, out io.Writer) *Cleaner {
	if out == nil {
		out = io.Discard
	}
	return &Cleaner{
		rules:      rs,
		opts:       opts,
		prober:     prober,
		transcoder: transcoder,
		logger:     logging.NewComponentLogger(logger, "cleaner"),
		out:        out,
	}
}

// Plan probes the input and decides its directives without writing anything.
func (c *Cleaner) Plan(ctx context.Context, input string) (Plan, error) {
	probe, err := c.prober.Inspect(ctx, input)
	if err != nil {
		return Plan{}, fmt.Errorf("probe %s: %w", input, err)
	}
	streams, err := stream.FromProbe(probe.Streams)
	if err != nil {
		return Plan{}, fmt.Errorf("probe %s: %w", input, err)
	}
	result := selection.Select(streams, c.rules)
	directives := directive.Emit(result, directive.Options{CleanMetadata: c.opts.CleanMetadata})

	output := OutputPath(input, c.opts.OutputDir, c.opts.OutputSuffix)
	target := output
	if c.opts.Overwrite {
		target = input
		if output == input {
			output = stagingPath(input)
		}
	} else if output == input {
		return Plan{}, ErrOutputIsInput
	}

	plan := Plan{
		Input:      input,
		Output:     output,
		Container:  containerFromProbe(probe),
		Streams:    streams,
		Selection:  result,
		Directives: directives,
		Target:     target,
	}
	plan.Binary, plan.Args = c.transcoder.Command(plan.Job())
	return plan, nil
}

// ProcessFile cleans one file, or prints its command in a dry run.
func (c *Cleaner) ProcessFile(ctx context.Context, input string) (FileResult, error) {
	ctx = logging.WithFile(ctx, input)
	logger := logging.WithContext(ctx, c.logger)

	plan, err := c.Plan(ctx, input)
	if err != nil {
		return FileResult{}, err
	}
	c.logDecision(logger, plan)

	if c.opts.DryRun {
		if _, err := fmt.Fprintln(c.out, plan.CommandLine()); err != nil {
			return FileResult{Plan: plan}, fmt.Errorf("write dry-run command: %w", err)
		}
		return FileResult{Plan: plan}, nil
	}

	if removed := c.removedSummary(plan.Selection); len(removed) > 0 {
		logger.Info("removing streams", logging.Args(removed...)...)
	}

	if c.opts.OutputDir != "" {
		if err := os.MkdirAll(c.opts.OutputDir, 0o755); err != nil {
			return FileResult{Plan: plan}, fmt.Errorf("create output directory: %w", err)
		}
	}

	stats, err := c.transcoder.Run(ctx, plan.Job())
	if err != nil {
		var exitErr *ffmpeg.ExitError
		if errors.As(err, &exitErr) {
			logging.ErrorWithContext(logger, "ffmpeg failed", "ffmpeg_failed",
				logging.Int("exit_code", exitErr.Code),
				logging.String("command", exitErr.Command),
				logging.String("stderr", exitErr.Stderr),
				logging.String(logging.FieldErrorHint, "rerun the command above to inspect the failure"),
			)
		}
		return FileResult{Plan: plan, Stats: stats}, fmt.Errorf("clean %s: %w", input, err)
	}

	if plan.Target != plan.Output {
		if err := fileutil.ReplaceFile(plan.Output, plan.Target); err != nil {
			return FileResult{Plan: plan, Stats: stats}, fmt.Errorf("replace %s: %w", input, err)
		}
	}

	logger.Info("cleaned file", c.completionAttrs(plan, stats)...)
	if _, err := fmt.Fprintln(c.out, plan.Target); err != nil {
		return FileResult{Plan: plan, Stats: stats}, fmt.Errorf("write output path: %w", err)
	}
	return FileResult{Plan: plan, Stats: stats}, nil
}

// Run processes the files in order. Per-file failures are logged and the
// batch continues; cancellation stops it.
func (c *Cleaner) Run(ctx context.Context, files []string) Summary {
	logger := logging.WithContext(ctx, c.logger)
	start := time.Now()
	var summary Summary
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			summary.Interrupted = err
			break
		}
		logger.Info("processing file",
			logging.String(logging.FieldFile, file),
			logging.Int("file_index", i+1),
			logging.Int("file_count", len(files)),
		)
		result, err := c.ProcessFile(ctx, file)
		result.Err = err
		if result.Plan.Input == "" {
			result.Plan.Input = file
		}
		summary.Results = append(summary.Results, result)
		if err == nil {
			summary.Succeeded++
			continue
		}
		summary.Failed++
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			summary.Interrupted = err
			break
		}
		c.logFailure(logger, file, err)
	}
	summary.Elapsed = time.Since(start)

	logger.Info("batch complete",
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Elapsed.Round(time.Millisecond)),
	)
	return summary
}

func (c *Cleaner) logFailure(logger *slog.Logger, file string, err error) {
	var parseErr *stream.ProbeParseError
	var lockErr *ffmpeg.LockedError
	hint := "check the file and rerun"
	switch {
	case errors.As(err, &parseErr):
		hint = "ffprobe reported a stream tidymux cannot classify"
	case errors.As(err, &lockErr):
		hint = "another tidymux process is writing this output"
	case errors.Is(err, ErrOutputIsInput):
		hint = "pass --output-dir, --overwrite, or set cleaning.output_suffix"
	}
	logging.WarnWithContext(logger, "skipping file", "file_skipped",
		logging.String(logging.FieldFile, file),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, hint),
		logging.String(logging.FieldImpact, "file left unchanged"),
	)
}

func (c *Cleaner) logDecision(logger *slog.Logger, plan Plan) {
	result := "unchanged"
	if plan.Selection.Changed() {
		result = "changed"
	}
	attrs := logging.DecisionAttrs("stream_selection", result, c.rules.String())
	attrs = append(attrs,
		logging.Int("video_total", plan.Container.VideoStreams),
		logging.Int("audio_kept", len(plan.Selection.Retained(stream.KindAudio))),
		logging.Int("audio_total", plan.Container.AudioStreams),
		logging.Int("subtitle_kept", len(plan.Selection.Retained(stream.KindSubtitle))),
		logging.Int("subtitle_total", plan.Container.SubtitleStreams),
		logging.Float64("duration_seconds", plan.Container.DurationSeconds),
	)
	logger.Debug("stream selection decision", logging.Args(attrs...)...)
}

func (c *Cleaner) removedSummary(result selection.Result) []logging.Attr {
	var attrs []logging.Attr
	if removed := result.Removed(stream.KindAudio); len(removed) > 0 {
		attrs = append(attrs, logging.String("audio", languageSet(removed)))
	}
	if removed := result.Removed(stream.KindSubtitle); len(removed) > 0 {
		attrs = append(attrs, logging.String("subtitles", languageSet(removed)))
	}
	return attrs
}

func (c *Cleaner) completionAttrs(plan Plan, stats ffmpeg.Stats) []any {
	attrs := []logging.Attr{
		logging.String("remaining_audio", languageList(plan.Selection.Retained(stream.KindAudio))),
		logging.String("remaining_subtitles", languageList(plan.Selection.Retained(stream.KindSubtitle))),
		logging.Duration("elapsed", stats.Elapsed.Round(time.Millisecond)),
		logging.String("input_size", humanize.IBytes(uint64(max(stats.InputSize, 0)))),
		logging.String("output_size", humanize.IBytes(uint64(max(stats.OutputSize, 0)))),
		logging.Int64("saved_bytes", stats.InputSize-stats.OutputSize),
	}
	if seconds := stats.Elapsed.Seconds(); seconds > 0 && stats.InputSize > 0 {
		rate := float64(stats.InputSize) / seconds
		attrs = append(attrs, logging.String("throughput", humanize.IBytes(uint64(rate))+"/s"))
	}
	return logging.Args(attrs...)
}
