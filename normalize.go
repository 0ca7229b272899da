package turkmorph

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// circumflexReplacer removes the circumflex used in loanwords
// (kâğıt, hâlâ, askerî) so that roots share one spelling.
var circumflexReplacer = strings.NewReplacer(
	"â", "a", // â → a
	"î", "i", // î → i
	"û", "u", // û → u
	"Â", "A", // Â → A
	"Î", "İ", // Î → İ
	"Û", "U", // Û → U
)

// apostropheReplacer removes the apostrophe variants found in text.
var apostropheReplacer = strings.NewReplacer(
	"'", "",
	"’", "", // ’
	"‘", "", // ‘
)

// RemoveCircumflex replaces â, î and û by their plain vowels.
func RemoveCircumflex(s string) string {
	return circumflexReplacer.Replace(s)
}

// ToLower lowercases s with Turkish casing rules (I → ı, İ → i).
// A Caser is stateful so one is built per call.
func ToLower(s string) string {
	return cases.Lower(language.Turkish).String(s)
}

// ToUpper uppercases s with Turkish casing rules (i → İ, ı → I).
func ToUpper(s string) string {
	return cases.Upper(language.Turkish).String(s)
}

// Capitalize uppercases the first letter of s and lowercases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, n := utf8.DecodeRuneInString(s)
	return ToUpper(s[:n]) + ToLower(s[n:])
}

// StartsUpper reports whether the first rune of s is an uppercase letter.
func StartsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// NormalizeRoot returns the form of a dictionary word used to build stems:
// Turkish lowercase, no circumflex, no dashes or apostrophes.
func NormalizeRoot(word string) string {
	s := RemoveCircumflex(ToLower(word))
	s = strings.ReplaceAll(s, "-", "")
	return apostropheReplacer.Replace(s)
}

// NormalizeInput prepares a user-supplied token for analysis.
func NormalizeInput(word string) string {
	return apostropheReplacer.Replace(RemoveCircumflex(ToLower(strings.TrimSpace(word))))
}

// letterNames spells each letter the way it is read in abbreviations.
var letterNames = map[rune]string{
	'a': "a", 'b': "be", 'c': "ce", 'ç': "çe", 'd': "de", 'e': "e",
	'f': "fe", 'g': "ge", 'ğ': "ge", 'h': "he", 'ı': "ı", 'i': "i",
	'j': "je", 'k': "ke", 'l': "le", 'm': "me", 'n': "ne", 'o': "o",
	'ö': "ö", 'p': "pe", 'r': "re", 's': "se", 'ş': "şe", 't': "te",
	'u': "u", 'ü': "ü", 'v': "ve", 'y': "ye", 'z': "ze",
	'q': "kü", 'w': "ve", 'x': "iks",
}

// InferPronunciation guesses how a vowelless word (usually an abbreviation
// such as "tbmm" or "thy") is read, by spelling its letters. A trailing k
// is read "ka" (pkk → pekeka).
func InferPronunciation(word string) string {
	runes := []rune(ToLower(word))
	var sb strings.Builder
	for i, r := range runes {
		if i == len(runes)-1 && r == 'k' {
			sb.WriteString("ka")
			continue
		}
		if name, ok := letterNames[r]; ok {
			sb.WriteString(name)
		}
	}
	if sb.Len() == 0 {
		return word
	}
	return sb.String()
}
