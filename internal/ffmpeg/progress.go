package ffmpeg

import (
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"tidymux/internal/fileutil"
)

// progressTracker drives a byte progress bar from the growth of the output
// file. Stream copies write roughly the retained share of the input, so the
// input size is only an upper bound.
type progressTracker struct {
	bar      *progressbar.ProgressBar
	output   string
	total    int64
	interval time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
}

func newProgressTracker(w io.Writer, output string, total int64, interval time.Duration) *progressTracker {
	if w == nil || total <= 0 {
		return nil
	}
	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(filepath.Base(output)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(interval),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(w, "\n") }),
	)
	return &progressTracker{bar: bar, output: output, total: total, interval: interval, done: make(chan struct{})}
}

func (p *progressTracker) start() {
	if p == nil {
		return
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.done:
				return
			case <-ticker.C:
				_ = p.bar.Set64(min(fileutil.SizeOf(p.output), p.total))
			}
		}
	}()
}

func (p *progressTracker) stop(success bool) {
	if p == nil {
		return
	}
	close(p.done)
	p.wg.Wait()
	if success {
		_ = p.bar.Finish()
		return
	}
	_ = p.bar.Exit()
}
