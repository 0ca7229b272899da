package turkmorph

import (
	"strings"
	"unicode/utf8"
)

// UnidentifiedTokenAnalyzer handles tokens the dictionary cannot: numerals
// written with digits, proper nouns split by an apostrophe and other
// capitalized words. It compiles a runtime item for the token, analyzes
// the token against it and removes the item again.
type UnidentifiedTokenAnalyzer struct {
	graph    *LexiconGraph
	analyzer *WordAnalyzer
}

// NewUnidentifiedTokenAnalyzer returns an analyzer working on g.
func NewUnidentifiedTokenAnalyzer(g *LexiconGraph, a *WordAnalyzer) *UnidentifiedTokenAnalyzer {
	return &UnidentifiedTokenAnalyzer{graph: g, analyzer: a}
}

// Analyze analyzes a raw token. Case and apostrophes are significant.
func (u *UnidentifiedTokenAnalyzer) Analyze(token string) []WordAnalysis {
	token = strings.TrimSpace(token)
	switch {
	case token == "", strings.Contains(token, "?"):
		return nil
	case containsDigit(token):
		return u.numeral(token)
	}
	if i := strings.IndexAny(token, "'’"); i >= 0 {
		_, size := utf8.DecodeRuneInString(token[i:])
		if i == 0 || i+size == len(token) {
			return nil
		}
		stem := NormalizeInput(token[:i])
		ending := NormalizeInput(token[i+size:])
		return u.properNoun(stem, stem+ending)
	}
	if StartsUpper(token) {
		stem := NormalizeInput(token)
		return u.properNoun(stem, stem)
	}
	return nil
}

func guessPronunciation(stem string) string {
	if HasVowel(stem) {
		return stem
	}
	return InferPronunciation(stem)
}

func (u *UnidentifiedTokenAnalyzer) properNoun(stem, input string) []WordAnalysis {
	if stem == "" {
		return nil
	}
	item := NewItem(Capitalize(stem), stem, guessPronunciation(stem), PosNoun, SecProperNoun, Runtime)
	return u.withItems(input, item)
}

func (u *UnidentifiedTokenAnalyzer) numeral(token string) []WordAnalysis {
	stem, ending := splitNumeral(token)
	lemma := numeralLemma(stem)
	if lemma == "" {
		return nil
	}
	var items []*DictionaryItem
	for _, sec := range DigitShapes(stem) {
		it := NewItem(lemma, stem, lemma, PosNumeral, sec, Runtime)
		it.Literal = stem
		items = append(items, it)
	}
	if len(items) == 0 {
		return nil
	}
	return u.withItems(stem+NormalizeInput(ending), items...)
}

// withItems analyzes input while items are compiled into the graph. The
// items are removed before the write lock is released, even if analysis
// panics. Only analyses of the runtime items are returned.
func (u *UnidentifiedTokenAnalyzer) withItems(input string, items ...*DictionaryItem) []WordAnalysis {
	g := u.graph
	g.mu.Lock()
	defer g.mu.Unlock()
	defer func() {
		for _, it := range items {
			g.removeItem(it)
		}
		// A panic while compiling can leave nodes no stem points at.
		if r := recover(); r != nil {
			g.sweep()
			panic(r)
		}
	}()
	for _, it := range items {
		g.addItem(it)
	}

	var out []WordAnalysis
	for _, a := range u.analyzer.analyze(input, nil) {
		for _, it := range items {
			if a.Item == it {
				out = append(out, a)
				break
			}
		}
	}
	return out
}
