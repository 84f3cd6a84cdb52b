package ffmpeg

import (
	"strconv"
	"strings"

	"tidymux/internal/directive"
)

// BuildArgs renders the ffmpeg arguments that stream-copy input to output
// according to the directives.
func BuildArgs(input, output string, directives []directive.Directive) []string {
	args := []string{"-y", "-hide_banner", "-nostdin", "-loglevel", "error", "-i", input}
	for _, d := range directive.Maps(directives) {
		args = append(args, "-map", d.Selector())
	}
	args = append(args, "-c", "copy")
	for _, d := range directives {
		if d.Op != directive.OpStripMetadata {
			continue
		}
		flag := "-metadata"
		if d.Scope == directive.ScopeStream {
			flag = "-metadata:s:" + strconv.Itoa(d.OutputIndex)
		}
		for _, key := range d.Keys {
			args = append(args, flag, key+"=")
		}
	}
	return append(args, output)
}

// CommandLine renders binary and args as a copy-pasteable shell command.
func CommandLine(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, shellQuote(binary))
	for _, arg := range args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

func shellQuote(value string) string {
	if value == "" {
		return "''"
	}
	safe := true
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_./:=,+@%", r):
		default:
			safe = false
		}
		if !safe {
			break
		}
	}
	if safe {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
