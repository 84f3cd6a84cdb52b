package directive

import (
	"encoding/json"
	"fmt"
	"strings"

	"tidymux/internal/media/stream"
	"tidymux/internal/selection"
)

// Op names the directive operation.
type Op string

const (
	OpMap           Op = "map"
	OpStripMetadata Op = "strip-metadata"
)

// Scope says where a strip-metadata directive applies.
type Scope string

const (
	ScopeContainer Scope = "container"
	ScopeStream    Scope = "stream"
)

// MetadataKeys lists the tags cleared when metadata stripping is enabled.
var MetadataKeys = []string{"title", "comment"}

// Directive is one transcoder instruction. Its JSON form only carries the
// fields of its Op; zero indexes are always written.
type Directive struct {
	Op Op

	// Map fields. KindIndex is -1 for other-kind streams, which are mapped by
	// their absolute SourceIndex.
	Kind        stream.Kind
	KindIndex   int
	SourceIndex int

	// Strip-metadata fields. OutputIndex is only meaningful for ScopeStream.
	Scope       Scope
	OutputIndex int
	Keys        []string
}

type directiveJSON struct {
	Op          Op           `json:"op"`
	Selector    string       `json:"selector,omitempty"`
	Kind        *stream.Kind `json:"kind,omitempty"`
	KindIndex   *int         `json:"kind_index,omitempty"`
	SourceIndex *int         `json:"source_index,omitempty"`
	Scope       Scope        `json:"scope,omitempty"`
	OutputIndex *int         `json:"output_index,omitempty"`
	Keys        []string     `json:"keys,omitempty"`
}

// MarshalJSON writes the fields that belong to the directive's Op.
func (d Directive) MarshalJSON() ([]byte, error) {
	out := directiveJSON{Op: d.Op}
	switch d.Op {
	case OpMap:
		out.Selector = d.Selector()
		out.Kind = &d.Kind
		out.KindIndex = &d.KindIndex
		out.SourceIndex = &d.SourceIndex
	case OpStripMetadata:
		out.Scope = d.Scope
		out.Keys = d.Keys
		if d.Scope == ScopeStream {
			out.OutputIndex = &d.OutputIndex
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the form written by MarshalJSON.
func (d *Directive) UnmarshalJSON(data []byte) error {
	var in directiveJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*d = Directive{Op: in.Op, Scope: in.Scope, Keys: in.Keys}
	if in.Kind != nil {
		d.Kind = *in.Kind
	}
	if in.KindIndex != nil {
		d.KindIndex = *in.KindIndex
	}
	if in.SourceIndex != nil {
		d.SourceIndex = *in.SourceIndex
	}
	if in.OutputIndex != nil {
		d.OutputIndex = *in.OutputIndex
	}
	if d.Op == OpMap && (in.Kind == nil || in.KindIndex == nil || in.SourceIndex == nil) {
		return fmt.Errorf("map directive %s: kind, kind_index, and source_index are required", data)
	}
	return nil
}

// Selector renders the ffmpeg stream specifier for a map directive.
func (d Directive) Selector() string {
	switch d.Kind {
	case stream.KindAudio:
		return fmt.Sprintf("0:a:%d", d.KindIndex)
	case stream.KindSubtitle:
		return fmt.Sprintf("0:s:%d", d.KindIndex)
	default:
		return fmt.Sprintf("0:%d", d.SourceIndex)
	}
}

func (d Directive) String() string {
	switch d.Op {
	case OpMap:
		return "map " + d.Selector()
	case OpStripMetadata:
		target := string(d.Scope)
		if d.Scope == ScopeStream {
			target = fmt.Sprintf("stream %d", d.OutputIndex)
		}
		return fmt.Sprintf("strip-metadata %s (%s)", target, strings.Join(d.Keys, ","))
	default:
		return string(d.Op)
	}
}

// Options controls emission.
type Options struct {
	CleanMetadata bool
}

// Emit builds the directive sequence for one file.
func Emit(result selection.Result, opts Options) []Directive {
	var out []Directive
	for _, kind := range []stream.Kind{stream.KindOther, stream.KindAudio, stream.KindSubtitle} {
		for _, d := range result.Retained(kind) {
			out = append(out, Directive{
				Op:          OpMap,
				Kind:        kind,
				KindIndex:   d.KindIndex,
				SourceIndex: d.Stream.Index,
			})
		}
	}
	mapped := len(out)
	if !opts.CleanMetadata {
		return out
	}
	out = append(out, Directive{Op: OpStripMetadata, Scope: ScopeContainer, Keys: cloneKeys()})
	if mapped > 0 {
		out = append(out, Directive{Op: OpStripMetadata, Scope: ScopeStream, OutputIndex: 0, Keys: cloneKeys()})
	}
	return out
}

// Maps returns only the map directives.
func Maps(directives []Directive) []Directive {
	var out []Directive
	for _, d := range directives {
		if d.Op == OpMap {
			out = append(out, d)
		}
	}
	return out
}

func cloneKeys() []string {
	return append([]string(nil), MetadataKeys...)
}
