package cleaner

import (
	"sort"
	"strings"

	"tidymux/internal/language"
	"tidymux/internal/selection"
)

// languageSet returns the display names of the decisions' languages, one per
// language however it is spelled, sorted. Streams without a language report as
// Undetermined.
func languageSet(decisions []selection.Decision) string {
	codes := make([]string, 0, len(decisions))
	undetermined := false
	for _, d := range decisions {
		if d.Stream.HasLanguage() {
			codes = append(codes, d.Stream.Language)
		} else {
			undetermined = true
		}
	}
	seen := make(map[string]struct{}, len(codes)+1)
	names := make([]string, 0, len(codes)+1)
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for _, code := range language.NormalizeList(codes) {
		add(language.DisplayName(code))
	}
	if undetermined {
		add(language.DisplayName(""))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// languageList returns the display names of the decisions' languages in
// container order, repeating duplicates.
func languageList(decisions []selection.Decision) string {
	names := make([]string, 0, len(decisions))
	for _, d := range decisions {
		names = append(names, language.DisplayName(d.Stream.Language))
	}
	return strings.Join(names, ", ")
}
