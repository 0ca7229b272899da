package turkmorph

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	singleDigits = []string{"", "bir", "iki", "üç", "dört", "beş", "altı", "yedi", "sekiz", "dokuz"}
	tens         = []string{"", "on", "yirmi", "otuz", "kırk", "elli", "altmış", "yetmiş", "seksen", "doksan"}
	thousands    = []string{"", "bin", "milyon", "milyar", "trilyon", "katrilyon", "kentilyon"}
)

// wordValues maps single number words to their value.
var wordValues = map[string]int64{
	"sıfır": 0,
	"yüz":   100,
	"atmış": 60,
}

var (
	cardinals = strings.Split("sıfır,bir,iki,üç,dört,beş,altı,yedi,sekiz,dokuz,on,yirmi,otuz,kırk,elli,"+
		"altmış,yetmiş,seksen,doksan,yüz,bin,milyon,milyar,trilyon,katrilyon,kentilyon", ",")
	ordinals = strings.Split("sıfırıncı,birinci,ikinci,üçüncü,dördüncü,beşinci,altıncı,yedinci,sekizinci,dokuzuncu,"+
		"onuncu,yirminci,otuzuncu,kırkıncı,ellinci,altmışıncı,yetmişinci,sekseninci,doksanıncı,yüzüncü,"+
		"bininci,milyonuncu,milyarıncı,trilyonuncu,katrilyonuncu,kentilyonuncu", ",")
	ordinalOf  = make(map[string]string, len(cardinals))
	cardinalOf = make(map[string]string, len(cardinals))
)

func init() {
	for i := 1; i < 10; i++ {
		wordValues[singleDigits[i]] = int64(i)
		wordValues[tens[i]] = int64(i) * 10
	}
	m := int64(1)
	for i := 1; i < len(thousands); i++ {
		m *= 1000
		wordValues[thousands[i]] = m
	}
	for i, c := range cardinals {
		ordinalOf[c] = ordinals[i]
		cardinalOf[ordinals[i]] = c
	}
}

func threeDigits(n int) []string {
	var out []string
	h, t, s := n/100, n/10%10, n%10
	if h > 1 {
		out = append(out, singleDigits[h])
	}
	if h > 0 {
		out = append(out, "yüz")
	}
	if t > 0 {
		out = append(out, tens[t])
	}
	if s > 0 {
		out = append(out, singleDigits[s])
	}
	return out
}

// NumberToWords spells n in Turkish: 1250 → "bin iki yüz elli". Negative
// numbers start with "eksi".
func NumberToWords(n int64) string {
	if n == 0 {
		return "sıfır"
	}
	u := uint64(n)
	if n < 0 {
		u = uint64(-(n + 1)) + 1
	}
	var groups [][]string
	for i := 0; u > 0; i++ {
		g := int(u % 1000)
		u /= 1000
		switch {
		case g == 0:
		case g == 1 && i == 1:
			// "bin", never "bir bin"
			groups = append(groups, []string{thousands[i]})
		default:
			words := threeDigits(g)
			if i > 0 {
				words = append(words, thousands[i])
			}
			groups = append(groups, words)
		}
	}
	var parts []string
	if n < 0 {
		parts = append(parts, "eksi")
	}
	for i := len(groups) - 1; i >= 0; i-- {
		parts = append(parts, groups[i]...)
	}
	return strings.Join(parts, " ")
}

// WordsToNumber parses a spelled number such as "iki yüz otuz beş".
// It reports false for anything that is not a well formed number.
func WordsToNumber(s string) (int64, bool) {
	words := strings.Fields(ToLower(s))
	if len(words) == 0 {
		return 0, false
	}
	neg := false
	if words[0] == "eksi" {
		neg = true
		words = words[1:]
		if len(words) == 0 {
			return 0, false
		}
	}
	if len(words) == 1 && words[0] == "sıfır" {
		return 0, true
	}
	// Within a group of three digits each place is written at most once,
	// in hundreds, tens, ones order.
	var total, hundreds, tensV, ones int64
	lastMagnitude := int64(0)
	for _, w := range words {
		v, ok := wordValues[w]
		if !ok || v == 0 {
			return 0, false
		}
		switch {
		case v < 10:
			if ones != 0 {
				return 0, false
			}
			ones = v
		case v < 100:
			if tensV != 0 || ones != 0 {
				return 0, false
			}
			tensV = v
		case v == 100:
			// "yüz", never "bir yüz"
			if hundreds != 0 || tensV != 0 || ones == 1 {
				return 0, false
			}
			hundreds = max(ones, 1) * 100
			ones = 0
		default:
			if lastMagnitude != 0 && v >= lastMagnitude {
				return 0, false
			}
			group := hundreds + tensV + ones
			// "bin", never "bir bin"
			if v == 1000 && group == 1 {
				return 0, false
			}
			if group == 0 {
				group = 1
			}
			total += group * v
			hundreds, tensV, ones = 0, 0, 0
			lastMagnitude = v
		}
	}
	total += hundreds + tensV + ones
	if neg {
		total = -total
	}
	return total, true
}

// OrdinalOf returns the ordinal of a cardinal number word: "dört" → "dördüncü".
func OrdinalOf(cardinal string) (string, bool) {
	o, ok := ordinalOf[cardinal]
	return o, ok
}

// CardinalOf returns the cardinal of an ordinal number word.
func CardinalOf(ordinal string) (string, bool) {
	c, ok := cardinalOf[ordinal]
	return c, ok
}

// numeralState is a state of the backward numeral-ending machine.
type numeralState struct {
	lemma string
	zero  bool
	next  [10]*numeralState
}

var numeralRoot, numeralZero = buildNumeralMachine()

func buildNumeralMachine() (root, zero *numeralState) {
	root = &numeralState{}
	zero = &numeralState{lemma: "sıfır", zero: true}
	for i := 1; i < 10; i++ {
		root.next[i] = &numeralState{lemma: singleDigits[i]}
		zero.next[i] = &numeralState{lemma: tens[i]}
	}
	root.next[0] = zero
	// Each further trailing zero moves up one magnitude.
	chain := []string{"yüz", "bin", "bin", "bin", "milyon", "milyon", "milyon", "milyar", "milyar", "milyar"}
	prev := zero
	for _, l := range chain {
		s := &numeralState{lemma: l, zero: true}
		prev.next[0] = s
		prev = s
	}
	return root, zero
}

// NumeralEnding returns the word read last when s is pronounced:
// "123" → "üç", "12300" → "yüz", "a20" → "yirmi". It returns "" when s does
// not end in a digit or the number is too large.
func NumeralEnding(s string) string {
	cur := numeralRoot
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		k := int(c - '0')
		if k > 0 && cur.zero {
			if cur == numeralZero {
				return cur.next[k].lemma
			}
			break
		}
		cur = cur.next[k]
		if cur == nil {
			return ""
		}
		if !cur.zero {
			break
		}
	}
	return cur.lemma
}

// digitShapes selects the secondary part of speech of a numeral from the
// way it is written.
var digitShapes = []struct {
	sec     SecondaryPos
	pattern *regexp.Regexp
}{
	{SecCardinal, regexp.MustCompile(`^[+\-]?\d+$`)},
	{SecOrdinal, regexp.MustCompile(`^[+\-]?\d+[.]$`)},
	{SecRange, regexp.MustCompile(`^[+\-]?\d+-\d+$`)},
	{SecReal, regexp.MustCompile(`^[+\-]?\d+[,.]\d+$`)},
	{SecDistribution, regexp.MustCompile(`^\d+[^0-9.]+$`)},
	{SecPercentage, regexp.MustCompile(`^%\d+([,.]\d*)?$`)},
	{SecClock, regexp.MustCompile(`^\d{2}:\d{2}$`)},
	{SecDate, regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)},
}

// DigitShapes returns every numeral kind the written form s matches.
func DigitShapes(s string) []SecondaryPos {
	var out []SecondaryPos
	for _, d := range digitShapes {
		if d.pattern.MatchString(s) {
			out = append(out, d.sec)
		}
	}
	return out
}

// splitNumeral separates a numeral token into the written number and its
// ending: "3.14'ten" → ("3.14", "ten"), "5inci" → ("5", "inci"),
// "3." → ("3.", "").
func splitNumeral(s string) (stem, ending string) {
	if i := strings.IndexAny(s, "'’"); i >= 0 {
		_, size := utf8.DecodeRuneInString(s[i:])
		return s[:i], s[i+size:]
	}
	cut := len(s)
	for cut > 0 {
		c := s[cut-1]
		if c == '.' || c >= '0' && c <= '9' {
			break
		}
		cut--
	}
	return s[:cut], s[cut:]
}

// numeralLemma returns the word form an unidentified numeral is analysed
// as: the last word read, or its ordinal when the stem ends with a dot.
func numeralLemma(stem string) string {
	if strings.HasSuffix(stem, ".") {
		l := NumeralEnding(strings.TrimSuffix(stem, "."))
		if o, ok := OrdinalOf(l); ok {
			return o
		}
		return l
	}
	return NumeralEnding(stem)
}
