package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"tidymux/internal/directive"
	"tidymux/internal/fileutil"
	"tidymux/internal/logging"
)

const (
	defaultBinary       = "ffmpeg"
	defaultPollInterval = 500 * time.Millisecond
	stderrTailBytes     = 4096
)

// Job describes one stream-copy invocation.
type Job struct {
	Input      string
	Output     string
	Directives []directive.Directive
	// SizeHint is the container size ffprobe reported, used as the progress
	// total when the input cannot be stat'ed.
	SizeHint int64
}

// Stats summarizes a finished job.
type Stats struct {
	Elapsed    time.Duration
	InputSize  int64
	OutputSize int64
}

// ExitError reports a non-zero ffmpeg exit.
type ExitError struct {
	Code    int
	Stderr  string
	Command string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("ffmpeg exited with code %d", e.Code)
	if tail := strings.TrimSpace(e.Stderr); tail != "" {
		msg += ": " + lastLine(tail)
	}
	return msg
}

// LockedError reports an output that another process is writing.
type LockedError struct {
	Output string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("output %s is locked by another tidymux process", e.Output)
}

// Runner executes ffmpeg jobs.
type Runner struct {
	Binary string
	Logger *slog.Logger
	// Progress receives a progress bar while a job runs. Nil disables it.
	Progress     io.Writer
	PollInterval time.Duration
}

// NewRunner constructs a runner for the given binary.
func NewRunner(binary string, logger *slog.Logger, progress io.Writer) *Runner {
	return &Runner{
		Binary:   binary,
		Logger:   logging.NewComponentLogger(logger, "ffmpeg"),
		Progress: progress,
	}
}

// Command returns the binary and arguments the job would execute.
func (r *Runner) Command(job Job) (string, []string) {
	return r.binary(), BuildArgs(job.Input, job.Output, job.Directives)
}

// Run executes the job and blocks until ffmpeg exits. The partial output is
// removed on any failure, including context cancellation.
func (r *Runner) Run(ctx context.Context, job Job) (Stats, error) {
	if strings.TrimSpace(job.Input) == "" || strings.TrimSpace(job.Output) == "" {
		return Stats{}, errors.New("ffmpeg run: input and output are required")
	}
	logger := logging.WithContext(ctx, r.logger())

	lock := flock.New(job.Output + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return Stats{}, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return Stats{}, &LockedError{Output: job.Output}
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Debug("release output lock failed", logging.Error(err))
		}
		_ = os.Remove(lock.Path())
	}()

	binary, args := r.Command(job)
	command := CommandLine(binary, args)
	logger.Debug("running ffmpeg", logging.String("command", command))

	inputSize := fileutil.SizeOf(job.Input)
	if inputSize == 0 {
		inputSize = max(job.SizeHint, 0)
	}
	stderr := &tailBuffer{limit: stderrTailBytes}
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stderr = stderr
	cmd.WaitDelay = 2 * time.Second

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return Stats{}, fmt.Errorf("start ffmpeg: %w", err)
	}

	tracker := newProgressTracker(r.Progress, job.Output, inputSize, r.pollInterval())
	tracker.start()
	waitErr := cmd.Wait()
	tracker.stop(waitErr == nil)

	stats := Stats{Elapsed: time.Since(start), InputSize: inputSize}
	if waitErr != nil {
		r.removePartial(logger, job.Output)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stats, fmt.Errorf("ffmpeg interrupted: %w", ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return stats, &ExitError{Code: exitErr.ExitCode(), Stderr: stderr.String(), Command: command}
		}
		return stats, fmt.Errorf("wait for ffmpeg: %w", waitErr)
	}
	stats.OutputSize = fileutil.SizeOf(job.Output)
	return stats, nil
}

func (r *Runner) removePartial(logger *slog.Logger, output string) {
	if err := os.Remove(output); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.WarnWithContext(logger, "failed to remove partial output", "partial_output_cleanup",
			logging.String("output", output),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the file manually"),
			logging.String(logging.FieldImpact, "an incomplete file remains on disk"),
		)
	}
}

func (r *Runner) binary() string {
	if r == nil || strings.TrimSpace(r.Binary) == "" {
		return defaultBinary
	}
	return r.Binary
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return logging.NewNop()
	}
	return r.Logger
}

func (r *Runner) pollInterval() time.Duration {
	if r.PollInterval <= 0 {
		return defaultPollInterval
	}
	return r.PollInterval
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	limit int
	buf   []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.limit; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	return string(t.buf)
}

func lastLine(s string) string {
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[idx+1:])
	}
	return s
}
