package turkmorph

import (
	"strconv"
	"strings"
)

// StemNode is one written shape of a dictionary root. An item has one stem
// unless its root changes shape before some suffixes (kitap/kitab,
// ağız/ağz, hak/hakk).
type StemNode struct {
	Surface      string
	Item         *DictionaryItem
	Attrs        PhoneticAttrs
	Expectations Expectations
	// Exclusive restricts the suffix forms allowed right after the stem.
	Exclusive   FormSet
	Termination Termination
	// RootForm replaces the catalog's root form for special stems.
	RootForm *SuffixForm

	root int
}

func (s *StemNode) key() string {
	var sb strings.Builder
	sb.WriteString(s.Item.ID)
	sb.WriteByte('|')
	sb.WriteString(s.Surface)
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(int(s.Attrs)))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(int(s.Expectations)))
	sb.WriteByte('|')
	sb.WriteString(s.Exclusive.Key())
	sb.WriteByte('|')
	sb.WriteString(s.Termination.String())
	if s.RootForm != nil {
		sb.WriteByte('|')
		sb.WriteString(s.RootForm.ID)
	}
	return sb.String()
}

func (s *StemNode) String() string {
	return s.Surface + " " + s.Item.ID + " " + s.Attrs.String() + s.Expectations.String() + " " + s.Termination.String()
}

// generateStems returns the stems of item. Stems are not connected to the
// suffix graph yet.
func generateStems(item *DictionaryItem, p SuffixProvider) []*StemNode {
	if item.HasAttr(Special) {
		if stems := specialStems(item, p); stems != nil {
			return stems
		}
	}
	stems := attributeStems(item, p)
	// Unknown ids are reported by Catalog.CheckItem before items are added.
	if f, ok := p.FormByID(item.RootSuffix); ok && item.RootSuffix != "" {
		for _, s := range stems {
			s.RootForm = f
		}
	}
	return stems
}

// attributeStems derives the stems of item from its root attributes.
func attributeStems(item *DictionaryItem, p SuffixProvider) []*StemNode {
	original, modified := p.SuccessorConstraints(item)
	pron := []rune(item.Pronunciation)
	if item.Attrs&modifierAttrs == 0 {
		return []*StemNode{{
			Surface:     item.Root,
			Item:        item,
			Attrs:       stemAttributes(pron),
			Exclusive:   original,
			Termination: Terminal,
			root:        -1,
		}}
	}

	origAttrs := stemAttributes(pron)
	modAttrs := origAttrs
	var origExp, modExp Expectations
	mod := []rune(item.Root)

	if item.HasAttr(Voicing) && len(mod) > 0 {
		if v, ok := voiceLast(mod); ok {
			mod[len(mod)-1] = v
			modAttrs = modAttrs.Without(LastLetterVoicelessStop | LastLetterVoiceless).
				With(LastLetterNotVoiceless)
			origExp |= ConsonantStart
			modExp |= VowelStart
		}
	}
	if item.HasAttr(Doubling) && len(mod) > 0 {
		mod = append(mod, mod[len(mod)-1])
		origExp |= ConsonantStart
		modExp |= VowelStart
	}
	if item.HasAttr(LastVowelDrop) && len(mod) > 1 {
		if IsVowel(mod[len(mod)-1]) {
			mod = mod[:len(mod)-1]
			modExp |= ConsonantStart
		} else {
			mod = append(mod[:len(mod)-2], mod[len(mod)-1])
			if item.Pos != PosVerb {
				origExp |= ConsonantStart
			}
			modExp |= VowelStart
		}
		if HasVowel(string(mod)) {
			modAttrs = stemAttributes(mod)
		}
	}
	if item.HasAttr(ProgressiveVowelDrop) && len(mod) > 1 {
		mod = mod[:len(mod)-1]
		if HasVowel(string(mod)) {
			modAttrs = stemAttributes(mod)
		}
	}
	if item.HasAttr(InverseHarmony) {
		origAttrs = origAttrs.Without(LastVowelBack).With(LastVowelFrontal)
		modAttrs = modAttrs.Without(LastVowelBack).With(LastVowelFrontal)
	}

	orig := &StemNode{
		Surface:      item.Root,
		Item:         item,
		Attrs:        origAttrs,
		Expectations: origExp,
		Exclusive:    original,
		Termination:  Terminal,
		root:         -1,
	}
	modStem := &StemNode{
		Surface:      string(mod),
		Item:         item,
		Attrs:        modAttrs,
		Expectations: modExp,
		Exclusive:    modified,
		Termination:  NonTerminal,
		root:         -1,
	}
	// Compound heads only appear with the possessive they lost.
	if item.HasAttr(CompoundP3sgRoot) {
		orig.Termination = NonTerminal
	}
	if orig.Surface == modStem.Surface && orig.Attrs == modAttrs && orig.Expectations == modExp &&
		orig.Exclusive.Equal(modStem.Exclusive) {
		return []*StemNode{orig}
	}
	return []*StemNode{orig, modStem}
}

// voiceLast returns the voiced form of the last letter of a root with the
// Voicing attribute. After n, k becomes g rather than ğ: renk/rengi.
func voiceLast(root []rune) (rune, bool) {
	n := len(root)
	if n >= 2 && root[n-2] == 'n' && root[n-1] == 'k' {
		return 'g', true
	}
	return Voice(root[n-1])
}

// specialStems builds the irregular stems declared for item: ben/bana,
// sen/sana, demek/diyecek, yemek/yiyecek.
func specialStems(item *DictionaryItem, p SuffixProvider) []*StemNode {
	decl := p.SpecialStems(item)
	if len(decl) == 0 {
		return nil
	}
	const vowelBits = LastVowelFrontal | LastVowelBack | LastVowelRounded | LastVowelUnrounded
	full := stemAttributes([]rune(item.Root))
	out := make([]*StemNode, 0, len(decl))
	for _, d := range decl {
		f, ok := p.FormByID(d.RootSuffix)
		if !ok {
			continue
		}
		attrs := stemAttributes([]rune(d.Surface))
		if !HasVowel(d.Surface) {
			// A vowelless stem keeps the vowel of the full root: d-iyor.
			attrs = attrs.Without(HasNoVowel) | full&vowelBits
		}
		out = append(out, &StemNode{
			Surface:     d.Surface,
			Item:        item,
			Attrs:       attrs,
			Termination: d.Termination,
			RootForm:    f,
			root:        -1,
		})
	}
	return out
}
