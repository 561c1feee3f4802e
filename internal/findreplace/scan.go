package findreplace

import (
	"regexp"
	"unicode/utf8"
)

// Match is a half-open rune range [From, To) over a flat-text projection.
type Match struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Len returns the number of runes covered by the match.
func (m Match) Len() int {
	return m.To - m.From
}

// Query is the search text together with its case-sensitivity flag.
type Query struct {
	Text      string `json:"text"`
	MatchCase bool   `json:"matchCase"`
}

// Empty reports whether the query has no search text.
func (q Query) Empty() bool {
	return q.Text == ""
}

// Pattern compiles the query into a literal pattern. The search text is
// escaped so every character matches itself.
func (q Query) Pattern() *regexp.Regexp {
	escaped := regexp.QuoteMeta(q.Text)
	if q.MatchCase {
		return regexp.MustCompile(escaped)
	}
	return regexp.MustCompile("(?i)" + escaped)
}

// Scan returns every non-overlapping occurrence of q in text, left to right,
// as rune ranges. An empty query yields nil.
func Scan(text string, q Query) []Match {
	if q.Empty() {
		return nil
	}
	return ScanPattern(text, q.Pattern())
}

// ScanPattern is Scan for an already compiled pattern.
func ScanPattern(text string, re *regexp.Regexp) []Match {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(locs))
	// Convert byte offsets to rune offsets incrementally; locs are ascending.
	bytePos, runePos := 0, 0
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		runePos += utf8.RuneCountInString(text[bytePos:loc[0]])
		from := runePos
		runePos += utf8.RuneCountInString(text[loc[0]:loc[1]])
		bytePos = loc[1]
		matches = append(matches, Match{From: from, To: runePos})
	}
	return matches
}
