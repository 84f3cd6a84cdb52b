package main

import (
	"encoding/json"
	"fmt"
	"io"

	"tidymux/internal/cleaner"
	"tidymux/internal/rules"
)

// planReport is the --json document.
type planReport struct {
	RunID  string         `json:"run_id"`
	Rules  string         `json:"rules"`
	DryRun bool           `json:"dry_run"`
	Plans  []cleaner.Plan `json:"plans"`
	Failed []failedFile   `json:"failed,omitempty"`
}

type failedFile struct {
	Input string `json:"input"`
	Error string `json:"error"`
}

func newPlanReport(runID string, rs rules.RuleSet, dryRun bool, summary cleaner.Summary) planReport {
	report := planReport{
		RunID:  runID,
		Rules:  rs.String(),
		DryRun: dryRun,
		Plans:  summary.Plans(),
	}
	for _, result := range summary.Results {
		if result.Err != nil {
			report.Failed = append(report.Failed, failedFile{Input: result.Plan.Input, Error: result.Err.Error()})
		}
	}
	return report
}

// writeReport writes the report as indented JSON. File names keep &, < and >
// as written so paths can be copied straight from the output.
func writeReport(w io.Writer, report planReport) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}
