package ffprobe

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video"},
			{CodecType: "audio"},
			{CodecType: "audio"},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
			BitRate:  "32000",
		},
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
	if result.BitRate() != 32000 {
		t.Fatalf("unexpected bitrate: %d", result.BitRate())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
			BitRate:  "nope",
		},
	}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected duration 0, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if result.BitRate() != 0 {
		t.Fatalf("expected bitrate 0, got %d", result.BitRate())
	}
}

func TestParseDecodesTagsAndDisposition(t *testing.T) {
	payload := []byte(`{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video"},
    {"index": 1, "codec_name": "ac3", "codec_type": "audio", "channels": 6, "channel_layout": "5.1(side)",
     "tags": {"language": "dan", "title": "Surround"}, "disposition": {"default": 1}},
    {"index": 2, "codec_name": "subrip", "codec_type": "subtitle", "tags": {"language": "eng"}}
  ],
  "format": {"filename": "movie.mkv", "nb_streams": 3, "size": "2048"}
}`)
	result, err := Parse(payload)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Streams) != 3 {
		t.Fatalf("expected 3 streams, got %d", len(result.Streams))
	}
	audio := result.Streams[1]
	if audio.Tags["language"] != "dan" || audio.ChannelLayout != "5.1(side)" || audio.Disposition["default"] != 1 {
		t.Fatalf("unexpected audio stream: %+v", audio)
	}
	if result.SubtitleStreamCount() != 1 {
		t.Fatalf("expected 1 subtitle stream, got %d", result.SubtitleStreamCount())
	}
	if result.SizeBytes() != 2048 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestInspectRunsBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a POSIX shell")
	}
	dir := t.TempDir()
	stub := filepath.Join(dir, "ffprobe")
	script := "#!/bin/sh\ncat <<'JSON'\n{\"streams\":[{\"index\":0,\"codec_type\":\"audio\",\"tags\":{\"language\":\"rus\"}}],\"format\":{}}\nJSON\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	result, err := Inspect(context.Background(), stub, filepath.Join(dir, "movie.mkv"))
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if result.AudioStreamCount() != 1 || result.Streams[0].Tags["language"] != "rus" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestInspectReportsFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a POSIX shell")
	}
	dir := t.TempDir()
	stub := filepath.Join(dir, "ffprobe")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\necho 'Invalid data found' >&2\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	_, err := Inspect(context.Background(), stub, filepath.Join(dir, "broken.mkv"))
	if err == nil {
		t.Fatal("expected error from failing ffprobe")
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
