package rules

import (
	"errors"
	"fmt"
	"strings"

	"tidymux/internal/language"
	"tidymux/internal/media/stream"
)

// Option names as they appear on the command line.
const (
	OptKeep            = "keep"
	OptRemove          = "remove"
	OptKeepAudio       = "keep-audio"
	OptRemoveAudio     = "remove-audio"
	OptKeepSubtitles   = "keep-subtitles"
	OptRemoveSubtitles = "remove-subtitles"
)

// Mode says whether a selector lists the streams to keep or to remove.
type Mode int

const (
	ModeKeep Mode = iota
	ModeRemove
)

func (m Mode) String() string {
	if m == ModeRemove {
		return "remove"
	}
	return "keep"
}

// MarshalText renders the mode for JSON output.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a mode written by MarshalText.
func (m *Mode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "keep":
		*m = ModeKeep
	case "remove":
		*m = ModeRemove
	default:
		return fmt.Errorf("unknown selector mode %q", text)
	}
	return nil
}

// Selector is a validated keep or remove rule for one stream kind.
type Selector struct {
	Kind   stream.Kind `json:"kind"`
	Mode   Mode        `json:"mode"`
	Tokens []Token     `json:"tokens"`
}

// Matches reports whether the stream is named by any token. kindIndex is the
// stream's zero-based position among streams of its kind.
func (s Selector) Matches(d stream.Descriptor, kindIndex int) bool {
	for _, tok := range s.Tokens {
		if n, ok := tok.Track(); ok {
			if n == kindIndex {
				return true
			}
			continue
		}
		if code, ok := tok.Language(); ok && d.HasLanguage() && language.Equal(code, d.Language) {
			return true
		}
	}
	return false
}

// Retains applies the selector mode to a match result.
func (s Selector) Retains(d stream.Descriptor, kindIndex int) bool {
	matched := s.Matches(d, kindIndex)
	if s.Mode == ModeRemove {
		return !matched
	}
	return matched
}

func (s Selector) String() string {
	values := make([]string, 0, len(s.Tokens))
	for _, tok := range s.Tokens {
		values = append(values, tok.String())
	}
	return s.Mode.String() + " " + strings.Join(values, ",")
}

// Options holds the raw comma-separated selection values.
type Options struct {
	Keep            string `toml:"keep"`
	Remove          string `toml:"remove"`
	KeepAudio       string `toml:"keep_audio"`
	RemoveAudio     string `toml:"remove_audio"`
	KeepSubtitles   string `toml:"keep_subtitles"`
	RemoveSubtitles string `toml:"remove_subtitles"`
}

// IsZero reports whether no option carries a value.
func (o Options) IsZero() bool {
	for _, v := range []string{o.Keep, o.Remove, o.KeepAudio, o.RemoveAudio, o.KeepSubtitles, o.RemoveSubtitles} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ConflictError reports two options that cannot be combined.
type ConflictError struct {
	First  string
	Second string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("--%s cannot be combined with --%s: %s", e.First, e.Second, e.Reason)
}

// RuleSet holds at most one selector per selectable kind. It is read-only
// once built.
type RuleSet struct {
	audio    *Selector
	subtitle *Selector
}

// Selector returns the selector for the kind, if any.
func (r RuleSet) Selector(kind stream.Kind) (Selector, bool) {
	var sel *Selector
	switch kind {
	case stream.KindAudio:
		sel = r.audio
	case stream.KindSubtitle:
		sel = r.subtitle
	}
	if sel == nil {
		return Selector{}, false
	}
	return *sel, true
}

// Selectors returns the configured selectors, audio first.
func (r RuleSet) Selectors() []Selector {
	out := make([]Selector, 0, 2)
	if r.audio != nil {
		out = append(out, *r.audio)
	}
	if r.subtitle != nil {
		out = append(out, *r.subtitle)
	}
	return out
}

// Empty reports whether the rule set keeps every stream.
func (r RuleSet) Empty() bool {
	return r.audio == nil && r.subtitle == nil
}

func (r RuleSet) String() string {
	if r.Empty() {
		return "keep all"
	}
	selectors := r.Selectors()
	parts := make([]string, 0, len(selectors))
	for _, sel := range selectors {
		label := "audio"
		if sel.Kind == stream.KindSubtitle {
			label = "subtitles"
		}
		parts = append(parts, label+": "+sel.String())
	}
	return strings.Join(parts, "; ")
}

type parsedOption struct {
	name   string
	tokens []Token
}

func (p parsedOption) set() bool {
	return len(p.tokens) > 0
}

// Build validates the raw options and merges them into a RuleSet.
//
// Per-kind options take precedence over the combined --keep/--remove, which
// only fill kinds left unspecified. Combining an option with a per-kind option
// of the same mode, or a keep with a remove for the same kind, is a
// *ConflictError. Implausible language tokens are returned as warnings.
func Build(opts Options) (RuleSet, []*InvalidTokenError, error) {
	var warnings []*InvalidTokenError
	parse := func(name, raw string) parsedOption {
		tokens, warns := parseList(name, raw)
		warnings = append(warnings, warns...)
		return parsedOption{name: name, tokens: tokens}
	}

	keep := parse(OptKeep, opts.Keep)
	remove := parse(OptRemove, opts.Remove)
	keepAudio := parse(OptKeepAudio, opts.KeepAudio)
	removeAudio := parse(OptRemoveAudio, opts.RemoveAudio)
	keepSubs := parse(OptKeepSubtitles, opts.KeepSubtitles)
	removeSubs := parse(OptRemoveSubtitles, opts.RemoveSubtitles)

	checks := []struct {
		a, b   parsedOption
		reason string
	}{
		{keep, remove, "keep and remove would both apply to audio and subtitles"},
		{keep, keepAudio, "ambiguous precedence for audio"},
		{keep, keepSubs, "ambiguous precedence for subtitles"},
		{remove, removeAudio, "ambiguous precedence for audio"},
		{remove, removeSubs, "ambiguous precedence for subtitles"},
		{keepAudio, removeAudio, "audio cannot be both kept and removed"},
		{keepSubs, removeSubs, "subtitles cannot be both kept and removed"},
	}
	for _, c := range checks {
		if c.a.set() && c.b.set() {
			return RuleSet{}, warnings, &ConflictError{First: c.a.name, Second: c.b.name, Reason: c.reason}
		}
	}

	// Decision point: a combined option and a per-kind option of the opposite
	// mode (--keep da --remove-audio ru) are not a conflict. The per-kind
	// option decides its kind and the combined one covers the other kind.
	return RuleSet{
		audio:    pick(stream.KindAudio, keepAudio, removeAudio, keep, remove),
		subtitle: pick(stream.KindSubtitle, keepSubs, removeSubs, keep, remove),
	}, warnings, nil
}

func pick(kind stream.Kind, keepKind, removeKind, keepAll, removeAll parsedOption) *Selector {
	switch {
	case keepKind.set():
		return &Selector{Kind: kind, Mode: ModeKeep, Tokens: keepKind.tokens}
	case removeKind.set():
		return &Selector{Kind: kind, Mode: ModeRemove, Tokens: removeKind.tokens}
	case keepAll.set():
		return &Selector{Kind: kind, Mode: ModeKeep, Tokens: keepAll.tokens}
	case removeAll.set():
		return &Selector{Kind: kind, Mode: ModeRemove, Tokens: removeAll.tokens}
	default:
		return nil
	}
}

func parseList(option, raw string) ([]Token, []*InvalidTokenError) {
	var tokens []Token
	var warnings []*InvalidTokenError
	seen := make(map[string]struct{})
	for _, item := range strings.Split(raw, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		tok, err := Classify(option, item)
		var invalid *InvalidTokenError
		if errors.As(err, &invalid) {
			warnings = append(warnings, invalid)
		}
		key := tok.key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tokens = append(tokens, tok)
	}
	return tokens, warnings
}
