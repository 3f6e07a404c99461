package cipher

import "unicode"

// AlphabetID identifies one of the fixed alphabets known to the engine.
//
//go:generate go tool enumer -type=AlphabetID -trimprefix=Alphabet
type AlphabetID int

const (
	AlphabetLatin AlphabetID = iota
	AlphabetPersian
	AlphabetDigits
)

// Alphabet is an immutable ordered set of unique characters.
// Its size is the modulus used for shift arithmetic.
type Alphabet struct {
	ID      AlphabetID
	Letters []rune
	// Cased alphabets are stored in upper case and shifted in both cases.
	Cased bool
	index map[rune]int
}

var (
	// Latin is the 26 letter English alphabet.
	Latin = newAlphabet(AlphabetLatin, "ABCDEFGHIJKLMNOPQRSTUVWXYZ", true)
	// Persian is the 32 letter Persian alphabet. It has no case.
	Persian = newAlphabet(AlphabetPersian, "ابپتثجچحخدذرزژسشصضطظعغفقکگلمنوهی", false)
	// Digits are the ASCII decimal digits.
	Digits = newAlphabet(AlphabetDigits, "0123456789", false)
)

var registry = []*Alphabet{Latin, Persian, Digits}

// newAlphabet builds the rune index for the given letters.
func newAlphabet(id AlphabetID, letters string, cased bool) *Alphabet {
	runes := []rune(letters)

	index := make(map[rune]int, len(runes))
	for i, r := range runes {
		index[r] = i
	}

	return &Alphabet{
		ID:      id,
		Letters: runes,
		Cased:   cased,
		index:   index,
	}
}

// Alphabets returns every registered alphabet in registration order.
func Alphabets() []*Alphabet {
	out := make([]*Alphabet, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the alphabet for the given identifier, falling back to Latin.
func Lookup(id AlphabetID) *Alphabet {
	for _, a := range registry {
		if a.ID == id {
			return a
		}
	}
	return Latin
}

// Size returns the modulus of the alphabet.
func (a *Alphabet) Size() int {
	return len(a.Letters)
}

// Contains reports whether r is a letter of the alphabet.
// Cased alphabets fold r to upper case first.
func (a *Alphabet) Contains(r rune) bool {
	if a.Cased {
		r = unicode.ToUpper(r)
	}
	_, ok := a.index[r]
	return ok
}

// IndexOf returns the position of r in the alphabet or -1.
func (a *Alphabet) IndexOf(r rune) int {
	if a.Cased {
		r = unicode.ToUpper(r)
	}
	if i, ok := a.index[r]; ok {
		return i
	}
	return -1
}
