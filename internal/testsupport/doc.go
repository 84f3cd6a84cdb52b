// Package testsupport builds configs, stub ffmpeg/ffprobe binaries, and
// filler media files for tests.
package testsupport
