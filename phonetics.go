package turkmorph

import "strings"

// PhoneticAttrs is a set of phonetic attributes summarising how a letter
// sequence ends (and, for suffix surfaces, how it starts). A single
// attribute is a set with one bit.
type PhoneticAttrs uint16

const (
	LastLetterVowel PhoneticAttrs = 1 << iota
	LastLetterConsonant
	LastVowelFrontal
	LastVowelBack
	LastVowelRounded
	LastVowelUnrounded
	LastLetterVoiceless
	LastLetterNotVoiceless
	LastLetterVoicelessStop
	FirstLetterVowel
	FirstLetterConsonant
	HasNoVowel
)

var phoneticNames = []struct {
	attr PhoneticAttrs
	name string
}{
	{LastLetterVowel, "LLV"},
	{LastLetterConsonant, "LLC"},
	{LastVowelFrontal, "LVF"},
	{LastVowelBack, "LVB"},
	{LastVowelRounded, "LVR"},
	{LastVowelUnrounded, "LVuR"},
	{LastLetterVoiceless, "LLVless"},
	{LastLetterNotVoiceless, "LLNotVless"},
	{LastLetterVoicelessStop, "LLVlessStop"},
	{FirstLetterVowel, "FLV"},
	{FirstLetterConsonant, "FLC"},
	{HasNoVowel, "NoVow"},
}

// Has reports whether every attribute of a is in p.
func (p PhoneticAttrs) Has(a PhoneticAttrs) bool { return p&a == a }

// With returns p with a added.
func (p PhoneticAttrs) With(a PhoneticAttrs) PhoneticAttrs { return p | a }

// Without returns p with a removed.
func (p PhoneticAttrs) Without(a PhoneticAttrs) PhoneticAttrs { return p &^ a }

func (p PhoneticAttrs) String() string {
	var parts []string
	for _, n := range phoneticNames {
		if p.Has(n.attr) {
			parts = append(parts, n.name)
		}
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Expectations constrains how the next suffix surface must start.
type Expectations uint8

const (
	ConsonantStart Expectations = 1 << iota
	VowelStart
)

func (e Expectations) Has(x Expectations) bool { return e&x == x }

func (e Expectations) String() string {
	switch e {
	case 0:
		return "[]"
	case ConsonantStart:
		return "[ConsonantStart]"
	case VowelStart:
		return "[VowelStart]"
	}
	return "[ConsonantStart,VowelStart]"
}

// AttributesAfter computes the attributes of the sequence formed by
// appending seq to a sequence whose attributes are pred. An empty seq
// leaves pred unchanged.
func AttributesAfter(seq string, pred PhoneticAttrs) PhoneticAttrs {
	return attributesAfterRunes([]rune(seq), pred)
}

func attributesAfterRunes(seq []rune, pred PhoneticAttrs) PhoneticAttrs {
	if len(seq) == 0 {
		return pred
	}
	var attrs PhoneticAttrs
	if v, ok := lastVowel(seq); ok {
		attrs = vowelAttrs(v)
		if IsVowel(seq[len(seq)-1]) {
			attrs |= LastLetterVowel
		} else {
			attrs |= LastLetterConsonant
		}
		if IsVowel(seq[0]) {
			attrs |= FirstLetterVowel
		} else {
			attrs |= FirstLetterConsonant
		}
	} else {
		// Harmony keeps coming from the predecessor's last vowel.
		attrs = pred.Without(LastLetterVowel | FirstLetterVowel |
			LastLetterVoiceless | LastLetterNotVoiceless | LastLetterVoicelessStop)
		attrs |= LastLetterConsonant | FirstLetterConsonant | HasNoVowel
	}
	return attrs | voicingAttrs(seq[len(seq)-1])
}

// stemAttributes computes the attributes of a root from its pronunciation.
// Roots carry no FirstLetter attributes.
func stemAttributes(seq []rune) PhoneticAttrs {
	if len(seq) == 0 {
		return 0
	}
	var attrs PhoneticAttrs
	if v, ok := lastVowel(seq); ok {
		attrs = vowelAttrs(v)
	} else {
		attrs = HasNoVowel
	}
	if IsVowel(seq[len(seq)-1]) {
		attrs |= LastLetterVowel
	} else {
		attrs |= LastLetterConsonant
	}
	return attrs | voicingAttrs(seq[len(seq)-1])
}

func vowelAttrs(v Letter) PhoneticAttrs {
	var attrs PhoneticAttrs
	if v.Frontal {
		attrs |= LastVowelFrontal
	} else {
		attrs |= LastVowelBack
	}
	if v.Rounded {
		attrs |= LastVowelRounded
	} else {
		attrs |= LastVowelUnrounded
	}
	return attrs
}

func voicingAttrs(last rune) PhoneticAttrs {
	l := letters[last]
	if !l.Voiceless {
		return LastLetterNotVoiceless
	}
	if l.StopConsonant {
		return LastLetterVoiceless | LastLetterVoicelessStop
	}
	return LastLetterVoiceless
}
