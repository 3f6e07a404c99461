// Package analysis provides the cryptanalysis helpers built on the cipher engine:
// letter frequency counts, an English-likeness score, brute-force shift search and
// simple pattern detectors.
package analysis

import (
	"math"
	"slices"

	"github.com/bytedance/sonic"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxFrequencyEntries is the number of entries Analyze keeps.
const MaxFrequencyEntries = 10

// FrequencyEntry is the count of one Latin letter within a text.
type FrequencyEntry struct {
	Char       rune    `json:"char"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MarshalJSON encodes the character as a one letter string.
func (e FrequencyEntry) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(struct {
		Char       string  `json:"char"`
		Count      int     `json:"count"`
		Percentage float64 `json:"percentage"`
	}{
		Char:       string(e.Char),
		Count:      e.Count,
		Percentage: e.Percentage,
	})
}

// Frequency counts the Latin letters of text after full upper-case mapping,
// so ß counts as two S.
// Entries are ordered by count, most frequent first; letters with equal counts
// keep the order in which they first appeared. Percentages are relative to the
// number of counted letters and rounded to two decimals.
func Frequency(text string) []FrequencyEntry {
	counts := make(map[rune]int)
	order := make([]rune, 0, 26)
	total := 0

	for _, r := range cases.Upper(language.Und).String(text) {
		if r < 'A' || r > 'Z' {
			continue
		}
		if counts[r] == 0 {
			order = append(order, r)
		}
		counts[r]++
		total++
	}

	entries := make([]FrequencyEntry, 0, len(order))
	for _, r := range order {
		entries = append(entries, FrequencyEntry{
			Char:       r,
			Count:      counts[r],
			Percentage: roundPercent(float64(counts[r]) / float64(total) * 100),
		})
	}

	slices.SortStableFunc(entries, func(a, b FrequencyEntry) int {
		return b.Count - a.Count
	})

	return entries
}

// Analyze returns the ten most frequent Latin letters of text.
func Analyze(text string) []FrequencyEntry {
	return TopN(Frequency(text), MaxFrequencyEntries)
}

// TopN returns at most n entries from the front of entries.
func TopN(entries []FrequencyEntry, n int) []FrequencyEntry {
	if n < 0 {
		n = 0
	}
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}

func roundPercent(v float64) float64 {
	return math.Round(v*100) / 100
}
