package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"tidymux/internal/directive"
	"tidymux/internal/logging"
	"tidymux/internal/media/stream"
	"tidymux/internal/testsupport"
)

func sampleDirectives() []directive.Directive {
	return []directive.Directive{
		{Op: directive.OpMap, Kind: stream.KindOther, KindIndex: -1, SourceIndex: 0},
		{Op: directive.OpMap, Kind: stream.KindAudio, KindIndex: 1, SourceIndex: 2},
		{Op: directive.OpMap, Kind: stream.KindSubtitle, KindIndex: 0, SourceIndex: 4},
		{Op: directive.OpStripMetadata, Scope: directive.ScopeContainer, Keys: []string{"title", "comment"}},
		{Op: directive.OpStripMetadata, Scope: directive.ScopeStream, OutputIndex: 0, Keys: []string{"title", "comment"}},
	}
}

func TestBuildArgs(t *testing.T) {
	got := BuildArgs("in.mkv", "out.mkv", sampleDirectives())
	want := []string{
		"-y", "-hide_banner", "-nostdin", "-loglevel", "error", "-i", "in.mkv",
		"-map", "0:0", "-map", "0:a:1", "-map", "0:s:0",
		"-c", "copy",
		"-metadata", "title=", "-metadata", "comment=",
		"-metadata:s:0", "title=", "-metadata:s:0", "comment=",
		"out.mkv",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected args:\n got %q\nwant %q", got, want)
	}
}

func TestBuildArgsWithoutMetadataStripping(t *testing.T) {
	got := BuildArgs("in.mkv", "out.mkv", directive.Maps(sampleDirectives()))
	if strings.Contains(strings.Join(got, " "), "-metadata") {
		t.Fatalf("unexpected metadata flags: %q", got)
	}
}

func TestCommandLineQuotes(t *testing.T) {
	got := CommandLine("ffmpeg", []string{"-i", "/movies/My Film (2001).mkv", "-metadata", "title=", "it's.mkv"})
	want := `ffmpeg -i '/movies/My Film (2001).mkv' -metadata title= 'it'\''s.mkv'`
	if got != want {
		t.Fatalf("CommandLine = %s\nwant %s", got, want)
	}
	if CommandLine("ffmpeg", []string{""}) != "ffmpeg ''" {
		t.Fatal("empty arguments must be quoted")
	}
}

func writeStub(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	return testsupport.StubBinary(t, t.TempDir(), "ffmpeg", body)
}

func newJob(t *testing.T) Job {
	t.Helper()
	dir := t.TempDir()
	input := testsupport.WriteFile(t, filepath.Join(dir, "movie.mkv"), 1024)
	return Job{Input: input, Output: filepath.Join(dir, "movie.cleaned.mkv"), Directives: sampleDirectives()}
}

func TestRunnerRunSuccess(t *testing.T) {
	stub := writeStub(t, testsupport.FFmpegCopyStub)
	job := newJob(t)
	var progress bytes.Buffer
	runner := &Runner{Binary: stub, Logger: logging.NewNop(), Progress: &progress, PollInterval: 10 * time.Millisecond}

	stats, err := runner.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if stats.InputSize != 1024 || stats.OutputSize != int64(len("cleaned")) {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if _, err := os.Stat(job.Output + ".lock"); !os.IsNotExist(err) {
		t.Fatalf("expected lock file to be removed, stat err %v", err)
	}
}

func TestRunnerRunFallsBackToSizeHint(t *testing.T) {
	stub := writeStub(t, testsupport.FFmpegCopyStub)
	dir := t.TempDir()
	job := Job{
		Input:      filepath.Join(dir, "unreadable.mkv"),
		Output:     filepath.Join(dir, "unreadable.cleaned.mkv"),
		Directives: sampleDirectives(),
		SizeHint:   4096,
	}
	runner := &Runner{Binary: stub, Logger: logging.NewNop()}

	stats, err := runner.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if stats.InputSize != 4096 {
		t.Fatalf("expected size hint as input size, got %+v", stats)
	}

	job = newJob(t)
	job.SizeHint = 1
	stats, err = runner.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if stats.InputSize != 1024 {
		t.Fatalf("expected stat size to win over hint, got %+v", stats)
	}
}

func TestRunnerRunFailureRemovesPartialOutput(t *testing.T) {
	stub := writeStub(t, `for last; do :; done
printf 'partial' > "$last"
echo "first line" >&2
echo "Invalid data found when processing input" >&2
exit 3
`)
	job := newJob(t)
	runner := &Runner{Binary: stub}

	_, err := runner.Run(context.Background(), job)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.Code != 3 {
		t.Fatalf("expected exit code 3, got %d", exitErr.Code)
	}
	if !strings.Contains(exitErr.Stderr, "Invalid data") {
		t.Fatalf("expected stderr tail, got %q", exitErr.Stderr)
	}
	if !strings.HasSuffix(exitErr.Error(), "Invalid data found when processing input") {
		t.Fatalf("expected last stderr line in message, got %q", exitErr.Error())
	}
	if _, statErr := os.Stat(job.Output); !os.IsNotExist(statErr) {
		t.Fatalf("expected partial output removed, stat err %v", statErr)
	}
}

func TestRunnerRunHonoursCancellation(t *testing.T) {
	stub := writeStub(t, "exec sleep 5\n")
	job := newJob(t)
	runner := &Runner{Binary: stub}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := runner.Run(ctx, job)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if time.Since(start) > 4*time.Second {
		t.Fatal("cancellation did not stop ffmpeg")
	}
}

func TestRunnerRunRejectsLockedOutput(t *testing.T) {
	stub := writeStub(t, "exit 0\n")
	job := newJob(t)
	held := flock.New(job.Output + ".lock")
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("pre-lock failed: %v %v", ok, err)
	}
	defer held.Unlock()

	runner := &Runner{Binary: stub}
	_, err = runner.Run(context.Background(), job)
	var locked *LockedError
	if !errors.As(err, &locked) {
		t.Fatalf("expected LockedError, got %v", err)
	}
}

func TestRunnerRunMissingBinary(t *testing.T) {
	job := newJob(t)
	runner := &Runner{Binary: filepath.Join(t.TempDir(), "missing-ffmpeg")}
	if _, err := runner.Run(context.Background(), job); err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestTailBufferKeepsLastBytes(t *testing.T) {
	buf := &tailBuffer{limit: 5}
	_, _ = buf.Write([]byte("abc"))
	_, _ = buf.Write([]byte("defg"))
	if buf.String() != "cdefg" {
		t.Fatalf("unexpected tail %q", buf.String())
	}
}
