package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/text"

	"tidymux/internal/cleaner"
	"tidymux/internal/language"
	"tidymux/internal/media/stream"
	"tidymux/internal/selection"
)

// renderPlans prints one stream table per planned file.
func renderPlans(w io.Writer, plans []cleaner.Plan, colorize bool) {
	for i, plan := range plans {
		if i > 0 {
			fmt.Fprintln(w)
		}
		for _, line := range renderSectionHeader(plan.Input, colorize) {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w, renderPlanTable(plan.Selection, colorize))
		fmt.Fprintln(w, renderStatusLine("Container", statusInfo, containerSummary(plan.Container), colorize))
		fmt.Fprintln(w, renderStatusLine("Retained", statusInfo, retainedSummary(plan.Selection), colorize))
		fmt.Fprintln(w, renderStatusLine("Output", statusInfo, plan.Target, colorize))
	}
}

var planColumns = []tableColumn{
	{"Stream", text.AlignRight},
	{"Kind", text.AlignLeft},
	{"Track", text.AlignRight},
	{"Language", text.AlignLeft},
	{"Details", text.AlignLeft},
	{"Keep", text.AlignLeft},
}

// renderPlanTable lists every probed stream and whether it survives. Dropped
// streams are drawn faint when colorize is set.
func renderPlanTable(result selection.Result, colorize bool) string {
	rows := make([][]string, 0, len(result.Decisions))
	for _, d := range result.Decisions {
		track := "-"
		if d.KindIndex >= 0 {
			track = strconv.Itoa(d.KindIndex)
		}
		rows = append(rows, []string{
			strconv.Itoa(d.Stream.Index),
			d.Stream.CodecType,
			track,
			languageCell(d.Stream),
			d.Stream.Summary(),
			yesNo(d.Retain),
		})
	}
	var faint func([]string) bool
	if colorize {
		faint = func(cells []string) bool { return cells[len(cells)-1] == yesNo(false) }
	}
	return renderTable(planColumns, rows, faint)
}

func languageCell(desc stream.Descriptor) string {
	if !desc.HasLanguage() {
		return desc.LanguageName()
	}
	return fmt.Sprintf("%s (%s)", desc.LanguageName(), language.ToISO3(desc.Language))
}

func containerSummary(c cleaner.Container) string {
	format := c.Format
	if format == "" {
		format = "unknown"
	}
	duration := time.Duration(c.DurationSeconds * float64(time.Second)).Round(time.Second)
	return fmt.Sprintf("%s, %s, %s, %d video / %d audio / %d subtitle",
		format, duration, humanize.IBytes(uint64(max(c.SizeBytes, 0))),
		c.VideoStreams, c.AudioStreams, c.SubtitleStreams)
}

func retainedSummary(result selection.Result) string {
	return fmt.Sprintf("audio %d of %d, subtitles %d of %d",
		len(result.Retained(stream.KindAudio)), result.Total(stream.KindAudio),
		len(result.Retained(stream.KindSubtitle)), result.Total(stream.KindSubtitle))
}
