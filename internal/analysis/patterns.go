package analysis

import "regexp"

var commonWordPattern = regexp.MustCompile(`\b(THE|AND|FOR|ARE|BUT|NOT|YOU|ALL|CAN|HER|WAS|ONE|OUR|HAD|BY)\b`)

// Patterns counts weak-encryption hints found in a text.
type Patterns struct {
	RepeatedChars int `json:"repeatedChars"`
	CommonWords   int `json:"commonWords"`
	DoubleLetters int `json:"doubleLetters"`
}

// DetectPatterns counts runs of three or more identical letters, common short
// English words and doubled letters. Matching is on upper-case A-Z only.
func DetectPatterns(text string) Patterns {
	var p Patterns

	// Runs are scanned by hand since RE2 has no backreferences.
	var prev rune
	run := 0
	flush := func() {
		if run >= 3 {
			p.RepeatedChars++
		}
		p.DoubleLetters += run / 2
	}

	for _, r := range text {
		if r >= 'A' && r <= 'Z' && r == prev {
			run++
			continue
		}
		flush()
		if r >= 'A' && r <= 'Z' {
			prev, run = r, 1
		} else {
			prev, run = 0, 0
		}
	}
	flush()

	p.CommonWords = len(commonWordPattern.FindAllStringIndex(text, -1))

	return p
}
