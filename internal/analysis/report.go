package analysis

import (
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/blake2b"
)

// Report gathers the analysis results for one text.
type Report struct {
	Source      string           `json:"source"`
	Digest      string           `json:"digest"`
	Characters  int              `json:"characters"`
	Letters     int              `json:"letters"`
	Score       float64          `json:"score"`
	Frequencies []FrequencyEntry `json:"frequencies"`
	Patterns    Patterns         `json:"patterns"`
	Candidates  []Candidate      `json:"candidates,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// BuildReport analyzes text. Patterns are counted on the upper-cased text so
// they match the case-folded frequency counts. When d is not nil the report also
// carries the best topCandidates brute-force results, or all of them if
// topCandidates is not positive.
func BuildReport(text string, d Decrypter, topCandidates int) *Report {
	frequencies := Frequency(text)

	letters := 0
	for _, entry := range frequencies {
		letters += entry.Count
	}

	report := &Report{
		Source:      Preview(text, PreviewLength),
		Digest:      Digest(text),
		Characters:  utf8.RuneCountInString(text),
		Letters:     letters,
		Score:       scoreEntries(TopN(frequencies, scoredEntries)),
		Frequencies: TopN(frequencies, MaxFrequencyEntries),
		Patterns:    DetectPatterns(strings.ToUpper(text)),
		CreatedAt:   time.Now(),
	}

	if d != nil {
		candidates := BruteForce(d, text)
		if topCandidates > 0 {
			candidates = candidates[:min(topCandidates, len(candidates))]
		}
		report.Candidates = candidates
	}

	return report
}

// Digest identifies a text in exported reports, which only carry its preview.
func Digest(text string) string {
	sum := blake2b.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
