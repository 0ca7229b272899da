package turkmorph

import (
	"fmt"
	"sort"
)

// maxGenerateDepth bounds the zero-length nodes crossed between two
// requested morphemes.
const maxGenerateDepth = 8

// Generate returns the words built from the item with the given id and the
// given morphemes, in order. Morphemes are named by suffix ("Dat") or by
// form id ("Dat_yA"); zero morphemes that are not named are crossed
// silently.
func (g *LexiconGraph) Generate(itemID string, suffixes ...string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	seen := make(map[string]bool)
	for _, s := range g.stems {
		if s.Item.ID != itemID && s.Item.Reported().ID != itemID {
			continue
		}
		g.generate(s.root, suffixes, s.Surface, s.Termination == Terminal, 0, seen)
	}
	out := make([]string, 0, len(seen))
	for w := range seen {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func (g *LexiconGraph) generate(i int, suffixes []string, surface string, terminal bool, free int, seen map[string]bool) {
	n := g.nodes[i]
	if len(suffixes) == 0 {
		if terminal && !n.Expectations.Has(VowelStart) {
			seen[surface] = true
		}
		return
	}
	for _, si := range n.successors {
		s := g.nodes[si]
		term := terminal
		switch s.Termination {
		case Terminal:
			term = true
		case NonTerminal:
			term = false
		}
		switch {
		case s.Form.Suffix == suffixes[0] || s.Form.ID == suffixes[0]:
			g.generate(si, suffixes[1:], surface+s.Surface, term, 0, seen)
		case s.Surface == "" && free < maxGenerateDepth:
			g.generate(si, suffixes, surface, term, free+1, seen)
		}
	}
}

var (
	nominalNumbers = []string{"A3sg", "A3pl"}
	nominalCases   = []string{"Nom", "Acc", "Dat", "Loc", "Abl", "Gen", "Inst", "Equ"}
	verbTenses     = []string{"Prog", "Fut", "Past", "Narr", "Aor"}
	verbPersons    = []string{"A1sg", "A2sg", "A3sg", "A1pl", "A2pl", "A3pl"}
)

// InflectionTable builds the paradigm of an item: number × case for
// nominals, tense × person for verbs.
func (g *LexiconGraph) InflectionTable(item *DictionaryItem) (*InflectionTable, error) {
	if item == nil {
		return nil, ErrUnknownItem
	}
	t := &InflectionTable{Item: item, Cells: make(map[string][]string)}
	switch item.Pos {
	case PosVerb:
		for _, tense := range verbTenses {
			for _, p := range verbPersons {
				if forms := g.Generate(item.ID, "Pos", tense, p); len(forms) > 0 {
					t.Cells[tense+"+"+p] = forms
				}
			}
		}
	case PosNoun, PosAdjective, PosNumeral, PosPronoun:
		for _, num := range nominalNumbers {
			for _, c := range nominalCases {
				suffixes := []string{num, "Pnon", c}
				if item.Pos == PosAdjective {
					suffixes = append([]string{"Noun"}, suffixes...)
				}
				if forms := g.Generate(item.ID, suffixes...); len(forms) > 0 {
					t.Cells[num+"+"+c] = forms
				}
			}
		}
	default:
		return nil, fmt.Errorf("no paradigm for %s", item.ID)
	}
	return t, nil
}
