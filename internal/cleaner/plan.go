package cleaner

import (
	"errors"
	"path/filepath"
	"strings"

	"tidymux/internal/directive"
	"tidymux/internal/ffmpeg"
	"tidymux/internal/media/ffprobe"
	"tidymux/internal/media/stream"
	"tidymux/internal/selection"
)

// ErrOutputIsInput reports an output path that would clobber its input.
var ErrOutputIsInput = errors.New("output path equals input path; set an output suffix, an output directory, or --overwrite")

// Plan is everything decided for one file before ffmpeg runs.
type Plan struct {
	Input      string                `json:"input"`
	Output     string                `json:"output"`
	Container  Container             `json:"container"`
	Streams    []stream.Descriptor   `json:"streams"`
	Selection  selection.Result      `json:"selection"`
	Directives []directive.Directive `json:"directives"`
	Binary     string                `json:"binary"`
	Args       []string              `json:"args"`
	// Target is where the cleaned file ends up: Output, or Input when the
	// cleaned file replaces it.
	Target string `json:"target"`
}

// CommandLine renders the planned ffmpeg invocation.
func (p Plan) CommandLine() string {
	return ffmpeg.CommandLine(p.Binary, p.Args)
}

// Job returns the ffmpeg job for the plan.
func (p Plan) Job() ffmpeg.Job {
	return ffmpeg.Job{Input: p.Input, Output: p.Output, Directives: p.Directives, SizeHint: p.Container.SizeBytes}
}

// Container holds the container-level facts ffprobe reported for an input.
type Container struct {
	Format          string  `json:"format"`
	DurationSeconds float64 `json:"duration_seconds"`
	SizeBytes       int64   `json:"size_bytes"`
	BitRate         int64   `json:"bit_rate"`
	VideoStreams    int     `json:"video_streams"`
	AudioStreams    int     `json:"audio_streams"`
	SubtitleStreams int     `json:"subtitle_streams"`
}

func containerFromProbe(probe ffprobe.Result) Container {
	return Container{
		Format:          probe.Format.FormatName,
		DurationSeconds: probe.DurationSeconds(),
		SizeBytes:       probe.SizeBytes(),
		BitRate:         probe.BitRate(),
		VideoStreams:    probe.VideoStreamCount(),
		AudioStreams:    probe.AudioStreamCount(),
		SubtitleStreams: probe.SubtitleStreamCount(),
	}
}

// OutputPath returns <dir>/<name><suffix><ext> for the input, where dir is
// outputDir or, when empty, the input's directory.
func OutputPath(input, outputDir, suffix string) string {
	dir := strings.TrimSpace(outputDir)
	if dir == "" {
		dir = filepath.Dir(input)
	}
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, name+suffix+ext)
}

// stagingPath names the intermediate file used when the cleaned output
// replaces an input that shares its path.
func stagingPath(input string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(filepath.Dir(input), "."+name+".tidymux"+ext)
}
