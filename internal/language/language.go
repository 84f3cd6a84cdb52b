package language

import (
	"strings"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"
)

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2/T primary (3-letter)
	alt3    []string // ISO 639-2/B and other 3-letter spellings (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"af", "afr", nil, "Afrikaans", []string{"afrikaans"}},
	{"am", "amh", nil, "Amharic", []string{"amharic"}},
	{"ar", "ara", nil, "Arabic", []string{"arabic"}},
	{"az", "aze", nil, "Azerbaijani", []string{"azerbaijani"}},
	{"be", "bel", nil, "Belarusian", []string{"belarusian"}},
	{"bg", "bul", nil, "Bulgarian", []string{"bulgarian"}},
	{"bn", "ben", nil, "Bengali", []string{"bengali"}},
	{"bs", "bos", nil, "Bosnian", []string{"bosnian"}},
	{"co", "cos", nil, "Corsican", []string{"corsican"}},
	{"cs", "ces", []string{"cze"}, "Czech", []string{"czech"}},
	{"da", "dan", nil, "Danish", []string{"danish"}},
	{"de", "deu", []string{"ger"}, "German", []string{"german", "deutsch"}},
	{"el", "ell", []string{"gre"}, "Greek", []string{"greek"}},
	{"en", "eng", nil, "English", []string{"english"}},
	{"es", "spa", nil, "Spanish", []string{"spanish"}},
	{"et", "est", nil, "Estonian", []string{"estonian"}},
	{"eu", "eus", []string{"baq"}, "Basque", []string{"basque"}},
	{"fa", "fas", []string{"per"}, "Persian", []string{"persian"}},
	{"fi", "fin", nil, "Finnish", []string{"finnish"}},
	{"", "fil", nil, "Filipino", []string{"filipino"}},
	{"fr", "fra", []string{"fre"}, "French", []string{"french"}},
	{"he", "heb", nil, "Hebrew", []string{"hebrew"}},
	{"hi", "hin", nil, "Hindi", []string{"hindi"}},
	{"hr", "hrv", nil, "Croatian", []string{"croatian"}},
	{"hu", "hun", nil, "Hungarian", []string{"hungarian"}},
	{"hy", "hye", []string{"arm"}, "Armenian", []string{"armenian"}},
	{"id", "ind", nil, "Indonesian", []string{"indonesian"}},
	{"it", "ita", nil, "Italian", []string{"italian"}},
	{"ja", "jpn", nil, "Japanese", []string{"japanese"}},
	{"ko", "kor", nil, "Korean", []string{"korean"}},
	{"lt", "lit", nil, "Lithuanian", []string{"lithuanian"}},
	{"lv", "lav", nil, "Latvian", []string{"latvian"}},
	{"ms", "msa", []string{"may"}, "Malay", []string{"malay"}},
	{"nl", "nld", []string{"dut"}, "Dutch", []string{"dutch"}},
	{"no", "nor", nil, "Norwegian", []string{"norwegian"}},
	{"ny", "nya", nil, "Chichewa", []string{"chichewa"}},
	{"pl", "pol", nil, "Polish", []string{"polish"}},
	{"pt", "por", nil, "Portuguese", []string{"portuguese"}},
	{"ro", "ron", []string{"rum"}, "Romanian", []string{"romanian"}},
	{"ru", "rus", nil, "Russian", []string{"russian"}},
	{"sk", "slk", []string{"slo"}, "Slovak", []string{"slovak"}},
	{"sl", "slv", nil, "Slovenian", []string{"slovenian"}},
	{"sq", "sqi", []string{"alb"}, "Albanian", []string{"albanian"}},
	{"sr", "srp", []string{"srb", "scc"}, "Serbian", []string{"serbian"}},
	{"sv", "swe", nil, "Swedish", []string{"swedish"}},
	{"ta", "tam", nil, "Tamil", []string{"tamil"}},
	{"th", "tha", nil, "Thai", []string{"thai"}},
	{"tr", "tur", nil, "Turkish", []string{"turkish"}},
	{"uk", "ukr", nil, "Ukrainian", []string{"ukrainian"}},
	{"ur", "urd", nil, "Urdu", []string{"urdu"}},
	{"vi", "vie", nil, "Vietnamese", []string{"vietnamese"}},
	{"zh", "zho", []string{"chi"}, "Chinese", []string{"chinese"}},
}

// Regional variants the table cannot express through ISO 639 alone.
var variants = map[string]string{
	"zh-cn": "Chinese (Simplified)",
	"zh-tw": "Chinese (Traditional)",
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		if e.code2 != "" {
			byCode2[e.code2] = e
		}
		byCode3[e.code3] = e
		for _, alt := range e.alt3 {
			byCode3[alt] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// key returns the identity a table entry is compared by.
func (e *entry) key() string {
	if e.code2 != "" {
		return e.code2
	}
	return e.code3
}

// Canonical reduces any spelling of a language (ISO 639-1, ISO 639-2/T or /B,
// English name) to a single comparison key. Codes missing from the table are
// resolved through the CLDR registry; anything else is returned lowercased.
func Canonical(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.key()
	}
	if _, ok := variants[code]; ok {
		return code
	}
	if len(code) == 2 || len(code) == 3 {
		if base, err := xlang.ParseBase(code); err == nil {
			return base.String()
		}
	}
	return code
}

// Equal reports whether two language spellings name the same language.
// Empty values never match.
func Equal(a, b string) bool {
	ca, cb := Canonical(a), Canonical(b)
	if ca == "" || cb == "" {
		return false
	}
	return ca == cb
}

// IsKnown reports whether the value names a language in the table, a regional
// variant, or a code the CLDR registry recognizes.
func IsKnown(code string) bool {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return false
	}
	if lookup(code) != nil {
		return true
	}
	if _, ok := variants[code]; ok {
		return true
	}
	if len(code) == 2 || len(code) == 3 {
		_, err := xlang.ParseBase(code)
		return err == nil
	}
	return false
}

// ToISO3 converts any recognized language code to ISO 639-2 (3-letter).
// Returns "und" for unrecognized 2-letter codes, passes through 3-letter codes.
func ToISO3(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "und"
	}
	if e := lookup(code); e != nil {
		return e.code3
	}
	if len(code) == 3 {
		return code
	}
	return "und"
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Undetermined" for empty input, or the title-cased code for
// unrecognized input.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" || strings.EqualFold(trimmed, "und") {
		return "Undetermined"
	}
	if e := lookup(trimmed); e != nil {
		return e.display
	}
	if name, ok := variants[strings.ToLower(trimmed)]; ok {
		return name
	}
	return cases.Title(xlang.Und).String(strings.ToLower(trimmed))
}

// ExtractFromTags extracts and normalizes the language from stream metadata tags.
// Checks common tag keys: language, LANGUAGE, Language, language_ietf, lang, LANG.
func ExtractFromTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	keys := []string{"language", "LANGUAGE", "Language", "language_ietf", "lang", "LANG"}
	for _, key := range keys {
		if value, ok := tags[key]; ok {
			value = strings.TrimSpace(strings.ReplaceAll(value, "\u0000", ""))
			if value != "" {
				return strings.ToLower(value)
			}
		}
	}
	return ""
}

// NormalizeList deduplicates a list of language spellings by canonical key,
// keeping the first spelling seen for each language.
func NormalizeList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.ToLower(strings.TrimSpace(value))
		if trimmed == "" {
			continue
		}
		key := Canonical(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, trimmed)
	}
	if len(normalized) == 0 {
		return nil
	}
	return normalized
}
