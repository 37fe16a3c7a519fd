// Package keywords ranks the most frequent significant tokens of a text.
package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bbalet/stopwords"
)

const (
	// DefaultTopN is attached to sentiment analyses.
	DefaultTopN = 10
	// KeywordsTopN is used by the keyword-only feature.
	KeywordsTopN = 20

	minTokenLen = 3
)

// Status tells callers apart the three outcomes of extraction without
// forcing them to inspect marker strings.
type Status int

const (
	StatusOK Status = iota
	StatusNoKeywords
	StatusUnavailable
)

// Result is the outcome of a single extraction.
type Result struct {
	Status Status
	Words  []string
}

// punctuation strip keeps letters, digits, internal hyphens and whitespace.
// \w would only cover ASCII here; accented letters must survive intact.
var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)

// Extractor removes stopwords for a fixed language and counts what survives.
// A nil Extractor reports StatusUnavailable, so a failed startup degrades
// the feature instead of panicking mid-request.
type Extractor struct {
	lang string
}

func NewExtractor(lang string) *Extractor {
	return &Extractor{lang: lang}
}

// Top returns up to n tokens ranked by descending frequency, ties broken by
// first appearance. Empty text yields an empty OK result, not an error.
func (e *Extractor) Top(text string, n int) Result {
	if e == nil || e.lang == "" {
		return Result{Status: StatusUnavailable}
	}
	if strings.TrimSpace(text) == "" {
		return Result{Status: StatusOK}
	}
	if n <= 0 {
		n = DefaultTopN
	}

	stripped := nonWordPattern.ReplaceAllString(strings.ToLower(text), "")
	kept := stopwords.CleanString(stripped, e.lang, false)

	counts := make(map[string]int)
	var order []string
	for _, tok := range strings.Fields(kept) {
		if !isAlpha(tok) || utf8.RuneCountInString(tok) < minTokenLen {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	if len(order) == 0 {
		return Result{Status: StatusNoKeywords}
	}

	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return Result{Status: StatusOK, Words: order}
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
