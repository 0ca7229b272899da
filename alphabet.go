package turkmorph

import "strings"

// Letter is the phonetic classification of a single Turkish letter.
type Letter struct {
	Char          rune
	Vowel         bool
	Frontal       bool
	Rounded       bool
	Voiceless     bool
	StopConsonant bool
}

const (
	turkishLetters  = "abcçdefgğhıijklmnoöprsştuüvyzâîûqwx"
	turkishVowels   = "aeıioöuüâîû"
	frontalVowels   = "eiöüî"
	roundedVowels   = "oöuüû"
	voicelessLetter = "çfhkpsşt"
	stopConsonants  = "bcçdgkpt"
)

// letters maps every known lowercase letter to its classification.
var letters = func() map[rune]Letter {
	m := make(map[rune]Letter, len(turkishLetters))
	for _, r := range turkishLetters {
		m[r] = Letter{
			Char:          r,
			Vowel:         strings.ContainsRune(turkishVowels, r),
			Frontal:       strings.ContainsRune(frontalVowels, r),
			Rounded:       strings.ContainsRune(roundedVowels, r),
			Voiceless:     strings.ContainsRune(voicelessLetter, r),
			StopConsonant: strings.ContainsRune(stopConsonants, r),
		}
	}
	return m
}()

// voicing maps a voiceless stop to the letter it becomes before a vowel
// (kitap → kitabı). g → ğ covers loanwords such as psikolog.
var voicing = map[rune]rune{
	'k': 'ğ',
	'p': 'b',
	't': 'd',
	'ç': 'c',
	'g': 'ğ',
}

// devoicing maps a voiced consonant to its voiceless pair, used for
// suffix-initial assimilation (kitap + dA → kitapta).
var devoicing = map[rune]rune{
	'd': 't',
	'c': 'ç',
	'g': 'k',
	'b': 'p',
}

// Classify returns the phonetic class of r. Unknown runes (digits,
// punctuation, foreign letters) report ok == false.
func Classify(r rune) (Letter, bool) {
	l, ok := letters[r]
	return l, ok
}

// IsVowel reports whether r is a Turkish vowel.
func IsVowel(r rune) bool {
	return letters[r].Vowel
}

// IsStopConsonant reports whether r is a stop consonant.
func IsStopConsonant(r rune) bool {
	return letters[r].StopConsonant
}

// Voice returns the voiced counterpart of r, or r itself when it has none.
func Voice(r rune) (rune, bool) {
	v, ok := voicing[r]
	if !ok {
		return r, false
	}
	return v, true
}

// Devoice returns the voiceless counterpart of r, or r itself.
func Devoice(r rune) rune {
	if v, ok := devoicing[r]; ok {
		return v
	}
	return r
}

// HasVowel reports whether s contains at least one vowel.
func HasVowel(s string) bool {
	return strings.ContainsAny(s, turkishVowels)
}

// VowelCount returns the number of vowels in s.
func VowelCount(s string) int {
	n := 0
	for _, r := range s {
		if IsVowel(r) {
			n++
		}
	}
	return n
}

// lastVowel returns the last vowel of seq.
func lastVowel(seq []rune) (Letter, bool) {
	for i := len(seq) - 1; i >= 0; i-- {
		if l := letters[seq[i]]; l.Vowel {
			return l, true
		}
	}
	return Letter{}, false
}

func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
