package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tidymux/internal/config"
	"tidymux/internal/testsupport"
)

const probeJSON = `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264"},
    {"index": 1, "codec_type": "audio", "codec_name": "ac3", "channels": 6, "tags": {"language": "rus"}},
    {"index": 2, "codec_type": "audio", "codec_name": "aac", "channels": 2, "tags": {"language": "dan"}},
    {"index": 3, "codec_type": "subtitle", "codec_name": "subrip", "tags": {"language": "rus"}},
    {"index": 4, "codec_type": "subtitle", "codec_name": "subrip", "tags": {"language": "eng"}}
  ],
  "format": {"filename": "movie.mkv", "nb_streams": 5, "format_name": "matroska,webm"}
}`

type cliTestEnv struct {
	cfg        *config.Config
	baseDir    string
	mediaDir   string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	env := &cliTestEnv{
		cfg:        testsupport.NewConfig(t, testsupport.WithStubbedTools(probeJSON, "")),
		baseDir:    base,
		mediaDir:   filepath.Join(base, "media"),
		configPath: filepath.Join(base, "config.toml"),
	}
	if err := os.MkdirAll(env.mediaDir, 0o755); err != nil {
		t.Fatalf("mkdir media: %v", err)
	}
	env.writeConfig(t)
	return env
}

func (env *cliTestEnv) writeConfig(t *testing.T, extra ...string) {
	t.Helper()
	testsupport.WriteConfig(t, env.cfg, env.configPath, extra...)
}

func (env *cliTestEnv) media(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(env.mediaDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("original media"), 0o644); err != nil {
		t.Fatalf("write media: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
