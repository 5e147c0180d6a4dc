// Package classify decides whether a prompt should be enriched with live
// weather or web-search context before generation. The rules are keyword
// heuristics: a miss only costs a skipped enrichment, a false hit only costs
// one extra provider call.
package classify

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Intent int

const (
	IntentNone Intent = iota
	IntentWeather
	IntentSearch
)

func (i Intent) String() string {
	switch i {
	case IntentWeather:
		return "weather"
	case IntentSearch:
		return "search"
	default:
		return "none"
	}
}

var weatherKeywords = []string{
	"hava durumu",
	"hava nasıl",
	"hava",
	"sıcaklık",
	"derece",
	"yağmur",
	"yağış",
	"kar yağ",
	"güneşli",
	"bulutlu",
	"rüzgar",
	"fırtına",
	"nem",
}

var searchKeywords = []string{
	// interrogatives
	"kimdir", "kim ", "nedir", "ne zaman", "nerede", "nereden", "nasıl",
	"hangi", "kaç",
	// research verbs
	"araştır", "bilgi ver", "anlat", "açıkla", "özetle",
	// recency markers
	"bugün", "dün", "şu an", "güncel", "yeni", "son durum", "son dakika",
	"haber",
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// turkishLower lowercases with Turkish casing rules so that dotted and
// dotless I fold the way the keyword lists expect.
var turkishLower = cases.Lower(language.Turkish)

// Classify is a pure function from prompt text to enrichment intent.
// Weather wins over search when both match.
func Classify(prompt string) Intent {
	lowered := turkishLower.String(strings.TrimSpace(prompt))
	if lowered == "" {
		return IntentNone
	}

	for _, keyword := range weatherKeywords {
		if strings.Contains(lowered, keyword) {
			return IntentWeather
		}
	}

	for _, keyword := range searchKeywords {
		if strings.Contains(lowered, keyword) {
			return IntentSearch
		}
	}
	if yearPattern.MatchString(lowered) {
		return IntentSearch
	}
	if hasProperNoun(prompt) {
		return IntentSearch
	}
	return IntentNone
}

// hasProperNoun reports whether any token past the sentence start is
// capitalized, a cheap signal for brand and person names worth looking up.
func hasProperNoun(prompt string) bool {
	tokens := strings.Fields(prompt)
	for i, token := range tokens {
		if i == 0 {
			continue
		}
		runes := []rune(strings.Trim(token, `"'.,!?()`))
		if len(runes) < 3 {
			continue
		}
		if unicode.IsUpper(runes[0]) && unicode.IsLower(runes[1]) {
			return true
		}
	}
	return false
}
