package cipher

// Detect classifies text as primarily Latin or Persian.
// Persian wins only with a strictly higher letter count; digits are ignored.
func Detect(text string) AlphabetID {
	var latin, persian int

	for _, r := range text {
		switch {
		case Latin.Contains(r):
			latin++
		case Persian.Contains(r):
			persian++
		}
	}

	if persian > latin {
		return AlphabetPersian
	}
	return AlphabetLatin
}
