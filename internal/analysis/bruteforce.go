package analysis

import (
	"slices"
	"unicode/utf8"

	"github.com/robalyx/cipherlab/internal/cipher"
)

const (
	// PreviewLength is the number of characters kept in a candidate preview.
	PreviewLength = 50
	// TopCharsLength is the number of frequency entries attached to a candidate.
	TopCharsLength = 3

	previewEllipsis = "..."
)

// Decrypter transforms text with an explicit alphabet modulus.
type Decrypter interface {
	TransformWith(text string, shift int, mode cipher.Mode, alphabet cipher.AlphabetID) string
}

// Candidate is one brute-force decryption attempt.
type Candidate struct {
	Shift    int              `json:"shift"`
	Text     string           `json:"-"`
	Preview  string           `json:"preview"`
	Score    float64          `json:"score"`
	TopChars []FrequencyEntry `json:"topChars"`
}

// BruteForce decrypts ciphertext with every Latin shift and ranks the results
// by English score, best first. Equal scores keep ascending shift order.
func BruteForce(d Decrypter, ciphertext string) []Candidate {
	latinSize := cipher.Latin.Size()
	candidates := make([]Candidate, 0, latinSize-1)

	for shift := 1; shift < latinSize; shift++ {
		text := d.TransformWith(ciphertext, shift, cipher.ModeDecrypt, cipher.AlphabetLatin)
		frequencies := Frequency(text)

		candidates = append(candidates, Candidate{
			Shift:    shift,
			Text:     text,
			Preview:  Preview(text, PreviewLength),
			Score:    scoreEntries(TopN(frequencies, scoredEntries)),
			TopChars: slices.Clone(TopN(frequencies, TopCharsLength)),
		})
	}

	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	return candidates
}

// BestCandidate returns the highest ranked candidate.
func BestCandidate(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	return candidates[0], true
}

// Preview truncates text to limit characters, marking truncation with an ellipsis.
func Preview(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + previewEllipsis
}
