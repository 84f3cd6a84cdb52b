package stream

import (
	"fmt"
	"strconv"
	"strings"

	"tidymux/internal/language"
	"tidymux/internal/media/ffprobe"
)

// Kind groups streams the way selectors address them.
type Kind int

const (
	// KindOther covers video, data, and attachment streams. They are never
	// selectable and always survive.
	KindOther Kind = iota
	KindAudio
	KindSubtitle
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindSubtitle:
		return "subtitle"
	default:
		return "other"
	}
}

// MarshalText renders the kind name for JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name written by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "audio":
		*k = KindAudio
	case "subtitle":
		*k = KindSubtitle
	case "other":
		*k = KindOther
	default:
		return fmt.Errorf("unknown stream kind %q", text)
	}
	return nil
}

// Descriptor is the typed view of one probed stream.
type Descriptor struct {
	Index         int    `json:"index"`
	Kind          Kind   `json:"kind"`
	Language      string `json:"language,omitempty"`
	CodecType     string `json:"codec_type"`
	CodecName     string `json:"codec_name,omitempty"`
	Channels      int    `json:"channels,omitempty"`
	ChannelLayout string `json:"channel_layout,omitempty"`
	Title         string `json:"title,omitempty"`
}

// HasLanguage reports whether the prober supplied a language tag.
func (d Descriptor) HasLanguage() bool {
	return d.Language != ""
}

// LanguageName returns the display name of the stream language.
func (d Descriptor) LanguageName() string {
	return language.DisplayName(d.Language)
}

// Summary returns a short human-readable description such as
// "dan | ac3 | 6ch | Surround".
func (d Descriptor) Summary() string {
	parts := make([]string, 0, 4)
	if d.Language != "" {
		parts = append(parts, d.Language)
	}
	if d.CodecName != "" {
		parts = append(parts, d.CodecName)
	}
	if d.Channels > 0 {
		parts = append(parts, strconv.Itoa(d.Channels)+"ch")
	} else if d.ChannelLayout != "" {
		parts = append(parts, d.ChannelLayout)
	}
	if d.Title != "" {
		parts = append(parts, d.Title)
	}
	if len(parts) == 0 {
		return d.CodecType
	}
	return strings.Join(parts, " | ")
}

// ProbeParseError reports prober output that cannot be turned into descriptors.
type ProbeParseError struct {
	Position  int
	Index     int
	CodecType string
	Reason    string
}

func (e *ProbeParseError) Error() string {
	return fmt.Sprintf("probe stream %d (index %d, codec_type %q): %s", e.Position, e.Index, e.CodecType, e.Reason)
}

// Classify maps an ffprobe codec_type onto a Kind. The boolean is false for
// empty or unrecognized codec types.
func Classify(codecType string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(codecType)) {
	case "audio":
		return KindAudio, true
	case "subtitle":
		return KindSubtitle, true
	case "video", "data", "attachment":
		return KindOther, true
	default:
		return KindOther, false
	}
}

// FromProbe converts ffprobe streams into descriptors, preserving container
// order. Indexes must be non-negative and strictly increasing.
func FromProbe(streams []ffprobe.Stream) ([]Descriptor, error) {
	descriptors := make([]Descriptor, 0, len(streams))
	last := -1
	for pos, s := range streams {
		kind, ok := Classify(s.CodecType)
		if !ok {
			return nil, &ProbeParseError{Position: pos, Index: s.Index, CodecType: s.CodecType, Reason: "unrecognized codec type"}
		}
		if s.Index < 0 {
			return nil, &ProbeParseError{Position: pos, Index: s.Index, CodecType: s.CodecType, Reason: "negative stream index"}
		}
		if s.Index <= last {
			return nil, &ProbeParseError{
				Position:  pos,
				Index:     s.Index,
				CodecType: s.CodecType,
				Reason:    fmt.Sprintf("index not increasing (previous %d)", last),
			}
		}
		last = s.Index
		descriptors = append(descriptors, Descriptor{
			Index:         s.Index,
			Kind:          kind,
			Language:      language.ExtractFromTags(s.Tags),
			CodecType:     strings.ToLower(strings.TrimSpace(s.CodecType)),
			CodecName:     strings.TrimSpace(s.CodecName),
			Channels:      s.Channels,
			ChannelLayout: strings.TrimSpace(s.ChannelLayout),
			Title:         titleFromTags(s.Tags),
		})
	}
	return descriptors, nil
}

func titleFromTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	for _, key := range []string{"title", "TITLE", "handler_name", "HANDLER_NAME"} {
		if value, ok := tags[key]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
