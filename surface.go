package turkmorph

type tokenKind uint8

const (
	tokLetter tokenKind = iota
	tokVowelI
	tokVowelA
	tokAppend       // +y: written only after a vowel
	tokDevoiceFirst // >d: becomes t after a voiceless letter
	tokVoiceLast    // ~k: k, or ğ when a vowel follows
)

type genToken struct {
	kind   tokenKind
	letter rune
}

// tokenize splits a generation pattern such as "+yAcA~k" into tokens.
func tokenize(gen string) []genToken {
	runes := []rune(gen)
	tokens := make([]genToken, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '+', '>', '~':
			if i+1 >= len(runes) {
				continue
			}
			i++
			next := runes[i]
			switch {
			case r == '+' && next == 'I':
				tokens = append(tokens, genToken{kind: tokVowelI})
			case r == '+' && next == 'A':
				tokens = append(tokens, genToken{kind: tokVowelA})
			case r == '+':
				tokens = append(tokens, genToken{kind: tokAppend, letter: next})
			case r == '>':
				tokens = append(tokens, genToken{kind: tokDevoiceFirst, letter: next})
			default:
				tokens = append(tokens, genToken{kind: tokVoiceLast, letter: next})
			}
		case 'I':
			tokens = append(tokens, genToken{kind: tokVowelI})
		case 'A':
			tokens = append(tokens, genToken{kind: tokVowelA})
		default:
			tokens = append(tokens, genToken{kind: tokLetter, letter: r})
		}
	}
	return tokens
}

// harmonyI resolves the four-way high vowel.
func harmonyI(attrs PhoneticAttrs) (rune, bool) {
	switch {
	case attrs.Has(LastVowelBack | LastVowelRounded):
		return 'u', true
	case attrs.Has(LastVowelBack | LastVowelUnrounded):
		return 'ı', true
	case attrs.Has(LastVowelFrontal | LastVowelRounded):
		return 'ü', true
	case attrs.Has(LastVowelFrontal | LastVowelUnrounded):
		return 'i', true
	}
	return 0, false
}

// harmonyA resolves the two-way low vowel.
func harmonyA(attrs PhoneticAttrs) (rune, bool) {
	switch {
	case attrs.Has(LastVowelBack):
		return 'a', true
	case attrs.Has(LastVowelFrontal):
		return 'e', true
	}
	return 0, false
}

// surfaceCandidate is a generated realization of a suffix form, not yet
// registered in a graph.
type surfaceCandidate struct {
	form         *SuffixForm
	surface      string
	attrs        PhoneticAttrs
	expectations Expectations
	exclusive    FormSet
	termination  Termination
}

// generateSurfaces realizes form after a sequence whose state is attrs.
// Zero-length forms yield one candidate carrying the incoming state.
// A pattern ending in a voice-last token yields two candidates: the
// voiceless one expects a consonant next, the voiced one a vowel.
// Unresolvable vowels panic with *PhoneticStateError.
func generateSurfaces(attrs PhoneticAttrs, exp Expectations, exclusive FormSet, form *SuffixForm) []surfaceCandidate {
	tokens := tokenize(form.Generation)
	if form.Kind != Concrete || len(tokens) == 0 {
		return []surfaceCandidate{{
			form:         form,
			attrs:        attrs,
			expectations: exp,
			exclusive:    exclusive.Clone(),
			termination:  form.Termination,
		}}
	}

	var seq []rune
	for i, tok := range tokens {
		formAttrs := attributesAfterRunes(seq, attrs)
		last := i == len(tokens)-1
		switch tok.kind {
		case tokLetter:
			seq = append(seq, tok.letter)
		case tokVowelI, tokVowelA:
			if i == 0 && attrs.Has(LastLetterVowel) {
				continue
			}
			resolve := harmonyI
			if tok.kind == tokVowelA {
				resolve = harmonyA
			}
			v, ok := resolve(formAttrs)
			if !ok {
				panic(&PhoneticStateError{Form: form.ID, Attrs: formAttrs})
			}
			seq = append(seq, v)
		case tokAppend:
			if formAttrs.Has(LastLetterVowel) {
				seq = append(seq, tok.letter)
			}
		case tokDevoiceFirst:
			if formAttrs.Has(LastLetterVoiceless) {
				seq = append(seq, Devoice(tok.letter))
			} else {
				seq = append(seq, tok.letter)
			}
		case tokVoiceLast:
			if last {
				hard := append(append([]rune(nil), seq...), tok.letter)
				soft, _ := Voice(tok.letter)
				voiced := append(append([]rune(nil), seq...), soft)
				return []surfaceCandidate{
					{
						form:         form,
						surface:      string(hard),
						attrs:        attributesAfterRunes(hard, attrs),
						expectations: ConsonantStart,
						exclusive:    exclusive.Clone(),
						termination:  form.Termination,
					},
					{
						form:         form,
						surface:      string(voiced),
						attrs:        attributesAfterRunes(voiced, attrs),
						expectations: VowelStart,
						exclusive:    exclusive.Clone(),
						termination:  NonTerminal,
					},
				}
			}
			seq = append(seq, tok.letter)
		}
		if last {
			return []surfaceCandidate{{
				form:        form,
				surface:     string(seq),
				attrs:       attributesAfterRunes(seq, attrs),
				termination: form.Termination,
			}}
		}
	}
	// The last token was a vowel dropped after a vowel: the form cannot be
	// realized in this state.
	return nil
}
