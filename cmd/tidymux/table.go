package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type tableColumn struct {
	header string
	align  text.Align
}

// renderTable draws rows under columns with the rounded style. Short rows are
// padded with empty cells. When faint is set, rows it reports are drawn faint.
func renderTable(columns []tableColumn, rows [][]string, faint func(cells []string) bool) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.header
		configs[i] = table.ColumnConfig{Number: i + 1, Align: col.align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, cells := range rows {
		row := make(table.Row, len(columns))
		for i := range row {
			row[i] = ""
			if i < len(cells) {
				row[i] = cells[i]
			}
		}
		tw.AppendRow(row)
	}

	if faint != nil {
		tw.SetRowPainter(table.RowPainter(func(row table.Row) text.Colors {
			cells := make([]string, len(row))
			for i, cell := range row {
				cells[i] = fmt.Sprint(cell)
			}
			if faint(cells) {
				return text.Colors{text.Faint}
			}
			return nil
		}))
	}
	return tw.Render()
}
