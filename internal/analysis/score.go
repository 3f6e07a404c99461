package analysis

// scoredEntries is the number of frequency entries compared against English.
const scoredEntries = 6

// EnglishFrequencies holds the expected percentage of the most common English letters.
var EnglishFrequencies = map[rune]float64{
	'E': 12.7,
	'T': 9.1,
	'A': 8.2,
	'O': 7.5,
	'I': 7.0,
	'N': 6.7,
}

// EnglishScore rates how English-like the letter distribution of text is.
// It subtracts from 100 the distance between observed and expected percentages
// of the six most frequent letters. Letters without an expected value are skipped.
func EnglishScore(text string) float64 {
	return scoreEntries(TopN(Frequency(text), scoredEntries))
}

func scoreEntries(entries []FrequencyEntry) float64 {
	var distance float64
	for _, entry := range entries {
		expected, ok := EnglishFrequencies[entry.Char]
		if !ok {
			continue
		}
		diff := expected - entry.Percentage
		if diff < 0 {
			diff = -diff
		}
		distance += diff
	}
	return 100 - distance
}
