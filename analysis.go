package turkmorph

import (
	"encoding/json"
	"strings"
)

// PrimaryPos is the main part of speech of a dictionary item.
type PrimaryPos uint8

const (
	PosNoun PrimaryPos = iota
	PosAdjective
	PosAdverb
	PosConjunction
	PosInterjection
	PosVerb
	PosPronoun
	PosNumeral
	PosDeterminer
	PosPostPositive
	PosQuestion
	PosDuplicator
	PosPunctuation
	PosUnknown
)

var primaryPosNames = [...]struct{ short, long string }{
	PosNoun:         {"Noun", "Noun"},
	PosAdjective:    {"Adj", "Adjective"},
	PosAdverb:       {"Adv", "Adverb"},
	PosConjunction:  {"Conj", "Conjunction"},
	PosInterjection: {"Interj", "Interjection"},
	PosVerb:         {"Verb", "Verb"},
	PosPronoun:      {"Pron", "Pronoun"},
	PosNumeral:      {"Num", "Numeral"},
	PosDeterminer:   {"Det", "Determiner"},
	PosPostPositive: {"Postp", "PostPositive"},
	PosQuestion:     {"Ques", "Question"},
	PosDuplicator:   {"Dup", "Duplicator"},
	PosPunctuation:  {"Punc", "Punctuation"},
	PosUnknown:      {"Unk", "Unknown"},
}

func (p PrimaryPos) String() string {
	if int(p) < len(primaryPosNames) {
		return primaryPosNames[p].short
	}
	return "Unk"
}

// ParsePrimaryPos accepts both the short (Adj) and long (Adjective) names.
func ParsePrimaryPos(s string) (PrimaryPos, bool) {
	for i, n := range primaryPosNames {
		if strings.EqualFold(s, n.short) || strings.EqualFold(s, n.long) {
			return PrimaryPos(i), true
		}
	}
	return PosUnknown, false
}

// SecondaryPos refines a PrimaryPos.
type SecondaryPos uint8

const (
	SecNone SecondaryPos = iota
	SecProperNoun
	SecAbbreviation
	SecDemonstrative
	SecPersonal
	SecReflexive
	SecQuantitive
	SecQuestion
	SecTime
	SecCardinal
	SecOrdinal
	SecRange
	SecReal
	SecPercentage
	SecClock
	SecDate
	SecDistribution
)

var secondaryPosNames = [...]struct{ short, long string }{
	SecNone:          {"None", "None"},
	SecProperNoun:    {"Prop", "ProperNoun"},
	SecAbbreviation:  {"Abbrv", "Abbreviation"},
	SecDemonstrative: {"Demons", "Demonstrative"},
	SecPersonal:      {"Pers", "Personal"},
	SecReflexive:     {"Reflex", "Reflexive"},
	SecQuantitive:    {"Quant", "Quantitive"},
	SecQuestion:      {"Ques", "Question"},
	SecTime:          {"Time", "Time"},
	SecCardinal:      {"Card", "Cardinal"},
	SecOrdinal:       {"Ord", "Ordinal"},
	SecRange:         {"Range", "Range"},
	SecReal:          {"Real", "Real"},
	SecPercentage:    {"Percent", "Percentage"},
	SecClock:         {"Clock", "Clock"},
	SecDate:          {"Date", "Date"},
	SecDistribution:  {"Dist", "Distribution"},
}

func (p SecondaryPos) String() string {
	if int(p) < len(secondaryPosNames) {
		return secondaryPosNames[p].short
	}
	return "None"
}

// ParseSecondaryPos accepts both the short and long names.
func ParseSecondaryPos(s string) (SecondaryPos, bool) {
	for i, n := range secondaryPosNames {
		if strings.EqualFold(s, n.short) || strings.EqualFold(s, n.long) {
			return SecondaryPos(i), true
		}
	}
	return SecNone, false
}

// Morpheme is one suffix of an analysis with the text it consumed.
type Morpheme struct {
	// Suffix is the morpheme tag, e.g. "A3pl" or "Dat".
	Suffix string `json:"suffix"`
	// Form is the id of the suffix form that produced it, e.g. "Dat_yA".
	Form string `json:"form"`
	// Surface is the realized text; empty for zero morphemes.
	Surface string `json:"surface,omitempty"`
	// Derivation is set when the morpheme starts a new part of speech.
	Derivation bool `json:"derivation,omitempty"`
}

func (m Morpheme) String() string {
	if m.Surface == "" {
		return m.Suffix
	}
	return m.Suffix + ":" + m.Surface
}

// WordAnalysis is a single decomposition of a word into a dictionary item
// and an ordered chain of suffixes.
type WordAnalysis struct {
	Item      *DictionaryItem
	Stem      string
	Morphemes []Morpheme
	Unknown   bool
}

// Ending returns the concatenated surfaces of all morphemes.
func (a WordAnalysis) Ending() string {
	var sb strings.Builder
	for _, m := range a.Morphemes {
		sb.WriteString(m.Surface)
	}
	return sb.String()
}

// Surface reproduces the analysed input.
func (a WordAnalysis) Surface() string {
	return a.Stem + a.Ending()
}

// Lemma returns the lemma of the analysed item.
func (a WordAnalysis) Lemma() string {
	if a.Item == nil {
		return a.Stem
	}
	return a.Item.Lemma
}

// Pos is the part of speech of the whole word: the target of the last
// derivation, or the item's own.
func (a WordAnalysis) Pos() PrimaryPos {
	for i := len(a.Morphemes) - 1; i >= 0; i-- {
		if a.Morphemes[i].Derivation {
			if p, ok := ParsePrimaryPos(a.Morphemes[i].Suffix); ok {
				return p
			}
		}
	}
	if a.Item == nil {
		return PosUnknown
	}
	return a.Item.Pos
}

// String renders the analysis as "[kitap:Noun] kitap + A3pl:lar + Pnon + Dat:a".
func (a WordAnalysis) String() string {
	if a.Unknown {
		return "[" + a.Stem + ":Unk] " + a.Stem
	}
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(a.Lemma())
	sb.WriteString(":")
	sb.WriteString(a.Item.posTag())
	sb.WriteString("] ")
	sb.WriteString(a.Stem)
	for _, m := range a.Morphemes {
		if m.Derivation {
			sb.WriteString(" | ")
		} else {
			sb.WriteString(" + ")
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}

// FormatLexical renders the analysis without surfaces, marking derivation
// boundaries with ^DB: "kitap+Noun+A3sg+Pnon+Nom^DB+Adj+With".
func (a WordAnalysis) FormatLexical() string {
	var sb strings.Builder
	sb.WriteString(a.Lemma())
	if a.Unknown {
		sb.WriteString("+Unk")
		return sb.String()
	}
	sb.WriteString("+")
	sb.WriteString(a.Item.posTag())
	for _, m := range a.Morphemes {
		if m.Derivation {
			sb.WriteString("^DB")
		}
		sb.WriteString("+")
		sb.WriteString(m.Suffix)
	}
	return sb.String()
}

type analysisJSON struct {
	Input     string     `json:"input"`
	Lemma     string     `json:"lemma"`
	ItemID    string     `json:"item_id,omitempty"`
	Pos       string     `json:"pos"`
	Stem      string     `json:"stem"`
	Morphemes []Morpheme `json:"morphemes"`
	Lexical   string     `json:"lexical"`
	Unknown   bool       `json:"unknown,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (a WordAnalysis) MarshalJSON() ([]byte, error) {
	out := analysisJSON{
		Input:     a.Surface(),
		Lemma:     a.Lemma(),
		Pos:       a.Pos().String(),
		Stem:      a.Stem,
		Morphemes: a.Morphemes,
		Lexical:   a.FormatLexical(),
		Unknown:   a.Unknown,
	}
	if out.Morphemes == nil {
		out.Morphemes = []Morpheme{}
	}
	if a.Item != nil {
		out.ItemID = a.Item.ID
	}
	return json.Marshal(out)
}

// InflectionTable holds the nominal paradigm of an item.
type InflectionTable struct {
	// Item is the item for which this table was computed.
	Item *DictionaryItem
	// Cells maps "A3sg+Dat"-style keys to the generated surfaces.
	Cells map[string][]string
}
