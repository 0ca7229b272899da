package turkmorph

import (
	"fmt"
	"io"
	"strings"
)

// maxRepeatingForm bounds how often one suffix form may occur on a path.
const maxRepeatingForm = 3

// WordAnalyzer finds every decomposition of a word the graph accepts.
// It is safe for concurrent use; each call holds the graph's read lock.
type WordAnalyzer struct {
	graph *LexiconGraph
}

// NewWordAnalyzer returns an analyzer over g.
func NewWordAnalyzer(g *LexiconGraph) *WordAnalyzer {
	return &WordAnalyzer{graph: g}
}

// Analyze returns all analyses of word. The word must already be
// normalized. An empty result is not an error.
func (a *WordAnalyzer) Analyze(word string) []WordAnalysis {
	a.graph.mu.RLock()
	defer a.graph.mu.RUnlock()
	return a.analyze(word, nil)
}

// DebugTrace writes the candidate stems of word and every path tried,
// marking the ones that failed.
func (a *WordAnalyzer) DebugTrace(w io.Writer, word string) []WordAnalysis {
	a.graph.mu.RLock()
	defer a.graph.mu.RUnlock()
	fmt.Fprintf(w, "  Input: %s\n", word)
	fmt.Fprintln(w, "  Stems:")
	for _, s := range a.candidates(word) {
		fmt.Fprintf(w, "    %s\n", s)
	}
	fmt.Fprintln(w, "  Paths:")
	return a.analyze(word, w)
}

// analyze is Analyze without locking. Callers hold the graph lock.
func (a *WordAnalyzer) analyze(word string, trace io.Writer) []WordAnalysis {
	var out []WordAnalysis
	for _, s := range a.candidates(word) {
		t := pathToken{
			stem:     s,
			node:     s.root,
			rest:     word[len(s.Surface):],
			terminal: s.Termination == Terminal,
		}
		a.walk(t, &out, trace)
	}
	return out
}

// candidates returns the stems whose surface is a prefix of word, shortest
// first.
func (a *WordAnalyzer) candidates(word string) []*StemNode {
	var out []*StemNode
	for i := range word {
		if i == 0 {
			continue
		}
		out = append(out, a.graph.matchingStems(word[:i])...)
	}
	return append(out, a.graph.matchingStems(word)...)
}

type pathToken struct {
	stem     *StemNode
	node     int
	history  []int
	rest     string
	terminal bool
}

func (t pathToken) advance(i int, n *SurfaceNode) pathToken {
	term := t.terminal
	switch n.Termination {
	case Terminal:
		term = true
	case NonTerminal:
		term = false
	}
	return pathToken{
		stem:     t.stem,
		node:     i,
		history:  append(t.history[:len(t.history):len(t.history)], i),
		rest:     t.rest[len(n.Surface):],
		terminal: term,
	}
}

func (a *WordAnalyzer) repeats(t pathToken, form *SuffixForm) bool {
	count := 1
	for _, i := range t.history {
		if a.graph.node(i).Form == form {
			count++
		}
	}
	return count > maxRepeatingForm
}

func (a *WordAnalyzer) walk(t pathToken, out *[]WordAnalysis, trace io.Writer) {
	n := a.graph.node(t.node)
	matched := false
	for _, si := range n.successors {
		s := a.graph.node(si)
		if !strings.HasPrefix(t.rest, s.Surface) {
			continue
		}
		// Only nodes that may end a word are worth entering at the end.
		if t.rest == "" && s.Termination == NonTerminal {
			continue
		}
		if a.repeats(t, s.Form) {
			continue
		}
		matched = true
		a.walk(t.advance(si, s), out, trace)
	}
	if matched {
		return
	}
	// A node still waiting for a vowel-initial suffix cannot end the word.
	if t.rest == "" && t.terminal && !n.Expectations.Has(VowelStart) {
		res := a.result(t)
		if trace != nil {
			fmt.Fprintf(trace, "    ok     %s\n", res)
		}
		*out = append(*out, res)
		return
	}
	if trace != nil {
		fmt.Fprintf(trace, "    failed %s (rest %q)\n", a.result(t), t.rest)
	}
}

func (a *WordAnalyzer) result(t pathToken) WordAnalysis {
	res := WordAnalysis{
		Item:      t.stem.Item.Reported(),
		Stem:      t.stem.Surface,
		Morphemes: make([]Morpheme, 0, len(t.history)),
	}
	for _, i := range t.history {
		n := a.graph.node(i)
		res.Morphemes = append(res.Morphemes, Morpheme{
			Suffix:     n.Form.Suffix,
			Form:       n.Form.ID,
			Surface:    n.Surface,
			Derivation: n.Form.Derivation,
		})
	}
	return res
}
