package selection

import (
	"tidymux/internal/media/stream"
	"tidymux/internal/rules"
)

// Decision records whether one stream survives.
type Decision struct {
	Stream stream.Descriptor `json:"stream"`
	// KindIndex is the zero-based position among streams of the same kind, or
	// -1 for other-kind streams, which are not numbered.
	KindIndex int  `json:"kind_index"`
	Retain    bool `json:"retain"`
}

// Result holds one decision per probed stream in container order.
type Result struct {
	Decisions []Decision `json:"decisions"`
}

// Select applies the rule set to the streams of one file. Audio and subtitle
// streams are evaluated independently; other streams are always retained.
func Select(streams []stream.Descriptor, rs rules.RuleSet) Result {
	decisions := make([]Decision, 0, len(streams))
	counters := map[stream.Kind]int{}
	for _, d := range streams {
		if d.Kind == stream.KindOther {
			decisions = append(decisions, Decision{Stream: d, KindIndex: -1, Retain: true})
			continue
		}
		kindIndex := counters[d.Kind]
		counters[d.Kind]++

		retain := true
		if sel, ok := rs.Selector(d.Kind); ok {
			retain = sel.Retains(d, kindIndex)
		}
		decisions = append(decisions, Decision{Stream: d, KindIndex: kindIndex, Retain: retain})
	}
	return Result{Decisions: decisions}
}

// Retained returns the surviving decisions of a kind in container order.
func (r Result) Retained(kind stream.Kind) []Decision {
	return r.filter(kind, true)
}

// Removed returns the dropped decisions of a kind in container order.
func (r Result) Removed(kind stream.Kind) []Decision {
	return r.filter(kind, false)
}

// Total returns the number of probed streams of a kind.
func (r Result) Total(kind stream.Kind) int {
	n := 0
	for _, d := range r.Decisions {
		if d.Stream.Kind == kind {
			n++
		}
	}
	return n
}

// Changed reports whether any stream is dropped.
func (r Result) Changed() bool {
	for _, d := range r.Decisions {
		if !d.Retain {
			return true
		}
	}
	return false
}

func (r Result) filter(kind stream.Kind, retain bool) []Decision {
	var out []Decision
	for _, d := range r.Decisions {
		if d.Stream.Kind == kind && d.Retain == retain {
			out = append(out, d)
		}
	}
	return out
}
