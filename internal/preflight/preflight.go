package preflight

import (
	"strings"

	"tidymux/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks that must pass before any file is cleaned.
// The output directory is only checked when one is configured; dry runs
// skip it because nothing is written.
func RunAll(cfg *config.Config, dryRun bool) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, status := range CheckSystemDeps(cfg) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Path}
		if !status.Available {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}

	if !dryRun && strings.TrimSpace(cfg.Paths.OutputDir) != "" {
		results = append(results, CheckCreatableDirectory("Output directory", cfg.Paths.OutputDir))
	}
	return results
}

// Failed returns the checks that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
