package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"

	"tidymux/internal/cleaner"
	"tidymux/internal/media/stream"
	"tidymux/internal/selection"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusError, "not found", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "FFmpeg:", "[MISSING] not found")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusOK, "/usr/bin/ffmpeg", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestRenderPlanTable(t *testing.T) {
	result := selection.Result{Decisions: []selection.Decision{
		{Stream: stream.Descriptor{Index: 0, Kind: stream.KindOther, CodecType: "video", CodecName: "h264"}, KindIndex: -1, Retain: true},
		{Stream: stream.Descriptor{Index: 1, Kind: stream.KindAudio, CodecType: "audio", CodecName: "ac3", Language: "rus"}, KindIndex: 0},
	}}
	table := renderPlanTable(result, false)
	for _, want := range []string{"Stream", "Keep", "video", "Russian (rus)", "ac3"} {
		requireContains(t, table, want)
	}
	lines := strings.Split(table, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected header, separator, two rows and borders, got %d lines:\n%s", len(lines), table)
	}
	requireNotContains(t, table, "\x1b[")

	text.EnableColors()
	colored := renderPlanTable(result, true)
	faint := text.Colors{text.Faint}.EscapeSeq()
	rows := strings.Split(colored, "\n")
	if !strings.Contains(rows[4], faint) {
		t.Fatalf("expected dropped row to be faint, got %q", rows[4])
	}
	if strings.Contains(rows[3], faint) {
		t.Fatalf("expected kept row without color, got %q", rows[3])
	}
}

func TestContainerAndRetainedSummaries(t *testing.T) {
	got := containerSummary(cleaner.Container{
		Format:          "matroska,webm",
		DurationSeconds: 125.4,
		SizeBytes:       2048,
		VideoStreams:    1,
		AudioStreams:    2,
		SubtitleStreams: 1,
	})
	want := "matroska,webm, 2m5s, 2.0 KiB, 1 video / 2 audio / 1 subtitle"
	if got != want {
		t.Fatalf("containerSummary = %q, want %q", got, want)
	}
	if got := containerSummary(cleaner.Container{}); got != "unknown, 0s, 0 B, 0 video / 0 audio / 0 subtitle" {
		t.Fatalf("unexpected empty summary %q", got)
	}

	result := selection.Result{Decisions: []selection.Decision{
		{Stream: stream.Descriptor{Index: 0, Kind: stream.KindAudio}, KindIndex: 0, Retain: true},
		{Stream: stream.Descriptor{Index: 1, Kind: stream.KindAudio}, KindIndex: 1},
		{Stream: stream.Descriptor{Index: 2, Kind: stream.KindSubtitle}, KindIndex: 0, Retain: true},
	}}
	if got := retainedSummary(result); got != "audio 1 of 2, subtitles 1 of 1" {
		t.Fatalf("retainedSummary = %q", got)
	}
}
