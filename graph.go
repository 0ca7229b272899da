package turkmorph

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
)

// SuffixProvider supplies the morphotactic grammar the graph is compiled
// from. *Catalog implements it.
type SuffixProvider interface {
	// RootForm returns the form a stem of item enters the graph with,
	// restricted to constraint when it is not empty.
	RootForm(item *DictionaryItem, constraint FormSet) *SuffixForm
	// SuccessorConstraints returns the suffix sets allowed after the
	// original and the modified stem of item. Empty sets mean no
	// restriction.
	SuccessorConstraints(item *DictionaryItem) (original, modified FormSet)
	// SpecialStems returns the irregular stems of a Special item, or nil.
	SpecialStems(item *DictionaryItem) []SpecialStem
	FormByID(id string) (*SuffixForm, bool)
	AllForms() []*SuffixForm
	Form(i int) *SuffixForm
}

// SurfaceNode is a realized suffix form in a given phonetic state. Nodes are
// shared by every stem reaching the same state.
type SurfaceNode struct {
	Form         *SuffixForm
	Surface      string
	Attrs        PhoneticAttrs
	Expectations Expectations
	Exclusive    FormSet
	Termination  Termination

	key        string
	successors []int
}

func nodeKey(form *SuffixForm, surface string, attrs PhoneticAttrs, exp Expectations, excl FormSet, term Termination) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(form.Index))
	sb.WriteByte('|')
	sb.WriteString(surface)
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(int(attrs)))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(int(exp)))
	sb.WriteByte('|')
	sb.WriteString(excl.Key())
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(int(term)))
	return sb.String()
}

func (n *SurfaceNode) String() string {
	return n.Form.ID + ":" + n.Surface + " " + n.Attrs.String() + n.Expectations.String() + " " + n.Termination.String()
}

// GraphStats summarizes the size of a LexiconGraph.
type GraphStats struct {
	Stems        int `json:"stems"`
	RootNodes    int `json:"root_nodes"`
	SurfaceNodes int `json:"surface_nodes"`
	SuffixForms  int `json:"suffix_forms"`
}

// LexiconGraph is the compiled automaton: stems of dictionary items, an
// index from stem surface to stems, and the shared suffix surface nodes.
//
// Mutation takes the write lock; readers take the read lock.
type LexiconGraph struct {
	mu       sync.RWMutex
	provider SuffixProvider
	logger   *slog.Logger

	nodes []*SurfaceNode // arena, nil slots are free
	free  []int
	index map[string]int

	stems       map[string]*StemNode
	singleStems map[string]*StemNode
	multiStems  map[string][]*StemNode
	rootRefs    map[int]int
}

// NewLexiconGraph returns an empty graph compiled against p.
func NewLexiconGraph(p SuffixProvider, logger *slog.Logger) *LexiconGraph {
	if logger == nil {
		logger = slog.Default()
	}
	return &LexiconGraph{
		provider:    p,
		logger:      logger,
		index:       make(map[string]int),
		stems:       make(map[string]*StemNode),
		singleStems: make(map[string]*StemNode),
		multiStems:  make(map[string][]*StemNode),
		rootRefs:    make(map[int]int),
	}
}

// Provider returns the suffix provider the graph was built with.
func (g *LexiconGraph) Provider() SuffixProvider { return g.provider }

// AddItem compiles item into the graph. Adding an item twice is a no-op.
func (g *LexiconGraph) AddItem(item *DictionaryItem) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addItem(item)
}

// AddItems compiles every item in order.
func (g *LexiconGraph) AddItems(items ...*DictionaryItem) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, it := range items {
		g.addItem(it)
	}
}

// RemoveItem removes the stems of item. Surface nodes no other stem can
// reach are released.
func (g *LexiconGraph) RemoveItem(item *DictionaryItem) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeItem(item)
}

func (g *LexiconGraph) addItem(item *DictionaryItem) {
	for _, s := range generateStems(item, g.provider) {
		k := s.key()
		if _, ok := g.stems[k]; ok {
			g.logger.Warn("stem already exists", "stem", s.Surface, "item", item.ID)
			continue
		}
		s.root = g.connect(s)
		g.rootRefs[s.root]++
		g.stems[k] = s
		g.indexStem(s)
	}
}

func (g *LexiconGraph) removeItem(item *DictionaryItem) {
	sweep := false
	for _, s := range generateStems(item, g.provider) {
		live, ok := g.stems[s.key()]
		if !ok {
			continue
		}
		delete(g.stems, s.key())
		g.unindexStem(live)
		g.rootRefs[live.root]--
		if g.rootRefs[live.root] <= 0 {
			delete(g.rootRefs, live.root)
			sweep = true
		}
	}
	if sweep {
		g.sweep()
	}
}

func (g *LexiconGraph) indexStem(s *StemNode) {
	if stems, ok := g.multiStems[s.Surface]; ok {
		g.multiStems[s.Surface] = append(stems, s)
		return
	}
	if other, ok := g.singleStems[s.Surface]; ok {
		delete(g.singleStems, s.Surface)
		g.multiStems[s.Surface] = []*StemNode{other, s}
		return
	}
	g.singleStems[s.Surface] = s
}

func (g *LexiconGraph) unindexStem(s *StemNode) {
	if stems, ok := g.multiStems[s.Surface]; ok {
		out := stems[:0]
		for _, o := range stems {
			if o != s {
				out = append(out, o)
			}
		}
		switch len(out) {
		case 0:
			delete(g.multiStems, s.Surface)
		case 1:
			delete(g.multiStems, s.Surface)
			g.singleStems[s.Surface] = out[0]
		default:
			g.multiStems[s.Surface] = out
		}
		return
	}
	if o, ok := g.singleStems[s.Surface]; ok && o == s {
		delete(g.singleStems, s.Surface)
	}
}

// matchingStems returns the stems written exactly as surface.
func (g *LexiconGraph) matchingStems(surface string) []*StemNode {
	if s, ok := g.singleStems[surface]; ok {
		return []*StemNode{s}
	}
	return g.multiStems[surface]
}

// connect registers the root surface node of s, expanding the automaton
// below it when the node is new, and returns its index.
func (g *LexiconGraph) connect(s *StemNode) int {
	form := s.RootForm
	if form == nil {
		form = g.provider.RootForm(s.Item, s.Exclusive)
	}
	root := &SurfaceNode{
		Form:         form,
		Attrs:        s.Attrs,
		Expectations: s.Expectations,
		Exclusive:    s.Exclusive.Clone(),
		Termination:  s.Termination,
	}
	i, created := g.intern(root)
	if created {
		g.expand(i)
	}
	return i
}

// intern returns the index of the node structurally equal to n, adding n
// when there is none.
func (g *LexiconGraph) intern(n *SurfaceNode) (int, bool) {
	n.key = nodeKey(n.Form, n.Surface, n.Attrs, n.Expectations, n.Exclusive, n.Termination)
	if i, ok := g.index[n.key]; ok {
		return i, false
	}
	var i int
	if len(g.free) > 0 {
		i = g.free[len(g.free)-1]
		g.free = g.free[:len(g.free)-1]
		g.nodes[i] = n
	} else {
		i = len(g.nodes)
		g.nodes = append(g.nodes, n)
	}
	g.index[n.key] = i
	return i, true
}

// expand generates the successors of start and of every node first seen
// while doing so, breadth first.
func (g *LexiconGraph) expand(start int) {
	queue := []int{start}
	for len(queue) > 0 {
		n := g.nodes[queue[0]]
		queue = queue[1:]
		for _, fi := range n.Form.Connections().Indexes() {
			form := g.provider.Form(fi)
			for _, c := range generateSurfaces(n.Attrs, n.Expectations, n.Exclusive, form) {
				succ := &SurfaceNode{
					Form:         c.form,
					Surface:      c.surface,
					Attrs:        c.attrs,
					Expectations: c.expectations,
					Exclusive:    c.exclusive,
					Termination:  c.termination,
				}
				if !expectationsMatch(n.Expectations, succ) {
					continue
				}
				j, created := g.intern(succ)
				n.successors = append(n.successors, j)
				if created {
					queue = append(queue, j)
				}
			}
		}
	}
}

// expectationsMatch reports whether succ may follow a node expecting exp.
// Zero-length successors pass the expectation on instead.
func expectationsMatch(exp Expectations, succ *SurfaceNode) bool {
	if exp == 0 || succ.Surface == "" {
		return true
	}
	return exp.Has(ConsonantStart) && succ.Attrs.Has(FirstLetterConsonant) ||
		exp.Has(VowelStart) && succ.Attrs.Has(FirstLetterVowel)
}

// sweep releases every node no live stem can reach.
func (g *LexiconGraph) sweep() {
	marked := make([]bool, len(g.nodes))
	var stack []int
	for root := range g.rootRefs {
		stack = append(stack, root)
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if marked[i] {
			continue
		}
		marked[i] = true
		stack = append(stack, g.nodes[i].successors...)
	}
	for i, n := range g.nodes {
		if n == nil || marked[i] {
			continue
		}
		delete(g.index, n.key)
		g.nodes[i] = nil
		g.free = append(g.free, i)
	}
}

func (g *LexiconGraph) node(i int) *SurfaceNode { return g.nodes[i] }

// Stats returns the current graph size.
func (g *LexiconGraph) Stats() GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return GraphStats{
		Stems:        len(g.stems),
		RootNodes:    len(g.rootRefs),
		SurfaceNodes: len(g.index),
		SuffixForms:  len(g.provider.AllForms()),
	}
}

// StemsOf returns the live stems of the item with the given id.
func (g *LexiconGraph) StemsOf(id string) []*StemNode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []*StemNode
	for _, s := range g.stems {
		if s.Item.ID == id {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Surface < out[j].Surface })
	return out
}

type dumpStem struct {
	Surface string
	Item    string
	Attrs   string
	Root    int
}

type dumpNode struct {
	Index      int
	Form       string
	Surface    string
	Attrs      string
	Term       string
	Successors []int
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump writes every stem and every surface node to w.
func (g *LexiconGraph) Dump(w io.Writer) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	stems := make([]dumpStem, 0, len(g.stems))
	for _, s := range g.stems {
		stems = append(stems, dumpStem{
			Surface: s.Surface,
			Item:    s.Item.ID,
			Attrs:   s.Attrs.String() + s.Expectations.String(),
			Root:    s.root,
		})
	}
	sort.Slice(stems, func(i, j int) bool {
		if stems[i].Surface != stems[j].Surface {
			return stems[i].Surface < stems[j].Surface
		}
		return stems[i].Item < stems[j].Item
	})
	var nodes []dumpNode
	for i, n := range g.nodes {
		if n == nil {
			continue
		}
		nodes = append(nodes, dumpNode{
			Index:      i,
			Form:       n.Form.ID,
			Surface:    n.Surface,
			Attrs:      n.Attrs.String() + n.Expectations.String(),
			Term:       n.Termination.String(),
			Successors: n.successors,
		})
	}
	fmt.Fprintf(w, "stems: %d, nodes: %d\n", len(stems), len(nodes))
	dumpConfig.Fdump(w, stems)
	dumpConfig.Fdump(w, nodes)
}
