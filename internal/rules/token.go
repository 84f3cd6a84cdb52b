package rules

import (
	"fmt"
	"strconv"
	"strings"

	"tidymux/internal/language"
)

type tokenKind int

const (
	tokenLanguage tokenKind = iota
	tokenTrack
)

// Token is one selector entry: either a language code or a kind-relative
// track index. The variant is fixed when the token is classified.
type Token struct {
	kind  tokenKind
	track int
	lang  string
}

// TrackIndex builds a track token. Indexes are zero-based within a kind.
func TrackIndex(n int) Token {
	return Token{kind: tokenTrack, track: n}
}

// LanguageCode builds a language token. Codes are stored lowercased.
func LanguageCode(code string) Token {
	return Token{kind: tokenLanguage, lang: strings.ToLower(strings.TrimSpace(code))}
}

// Track returns the track index when the token is a TrackIndex.
func (t Token) Track() (int, bool) {
	return t.track, t.kind == tokenTrack
}

// Language returns the language code when the token is a LanguageCode.
func (t Token) Language() (string, bool) {
	return t.lang, t.kind == tokenLanguage
}

// String renders the token as the user would type it.
func (t Token) String() string {
	if t.kind == tokenTrack {
		return strconv.Itoa(t.track)
	}
	return t.lang
}

// MarshalText renders the token for JSON output.
func (t Token) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText classifies text the way Classify does. Implausible languages
// are accepted, matching how Build keeps them.
func (t *Token) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		return fmt.Errorf("empty selector token")
	}
	tok, _ := Classify("", string(text))
	*t = tok
	return nil
}

// key identifies tokens that select the same streams.
func (t Token) key() string {
	if t.kind == tokenTrack {
		return "track:" + strconv.Itoa(t.track)
	}
	return "lang:" + language.Canonical(t.lang)
}

// InvalidTokenError flags a language token that does not look like a language.
// It is a warning: the token is still used for matching.
type InvalidTokenError struct {
	Option string
	Token  string
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("--%s: %q is neither a track number nor a recognizable language code", e.Option, e.Token)
}

// Classify turns one raw value into a Token. Non-negative integers become
// track indexes; everything else is a language code. The returned error is
// non-nil (an *InvalidTokenError) only when the language code is implausible,
// and the token is valid either way.
func Classify(option, raw string) (Token, error) {
	value := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(value); err == nil && n >= 0 {
		return TrackIndex(n), nil
	}
	tok := LanguageCode(value)
	if !plausibleLanguage(tok.lang) {
		return tok, &InvalidTokenError{Option: option, Token: value}
	}
	return tok, nil
}

func plausibleLanguage(code string) bool {
	if len(code) >= 2 && len(code) <= 3 {
		letters := true
		for _, r := range code {
			if r < 'a' || r > 'z' {
				letters = false
				break
			}
		}
		if letters {
			return true
		}
	}
	return language.IsKnown(code)
}
