package testsupport

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"tidymux/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a default config rooted in a per-test temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	builder := &configBuilder{
		t:       t,
		baseDir: t.TempDir(),
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithOutputDir points cleaned output at <base>/<name>.
func WithOutputDir(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.OutputDir = filepath.Join(b.baseDir, name)
	}
}

// WithStubbedTools writes ffprobe and ffmpeg shell stubs under <base>/bin and
// points the config at them. The ffprobe stub prints probeJSON; the ffmpeg
// stub runs ffmpegBody, or writes "cleaned" to its last argument when empty.
func WithStubbedTools(probeJSON, ffmpegBody string) ConfigOption {
	return func(b *configBuilder) {
		if runtime.GOOS == "windows" {
			b.t.Skip("shell stubs require a POSIX shell")
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if ffmpegBody == "" {
			ffmpegBody = FFmpegCopyStub
		}
		b.cfg.Tools.FFprobe = StubBinary(b.t, binDir, "ffprobe", "cat <<'EOF'\n"+probeJSON+"\nEOF\n")
		b.cfg.Tools.FFmpeg = StubBinary(b.t, binDir, "ffmpeg", ffmpegBody)
	}
}

// FFmpegCopyStub is a stub body that writes "cleaned" to the output path.
const FFmpegCopyStub = "for last; do :; done\nprintf 'cleaned' > \"$last\"\n"

// StubBinary writes an executable POSIX shell script and returns its path.
func StubBinary(t testing.TB, dir, name, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

// WriteConfig encodes cfg as TOML at path, followed by any raw extra text.
func WriteConfig(t testing.TB, cfg *config.Config, path string, extra ...string) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	for _, e := range extra {
		data = append(data, '\n')
		data = append(data, e...)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}
