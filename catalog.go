package turkmorph

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Catalog owns every suffix form of the language and the rules that turn
// templates into concrete graph material. It is safe for concurrent use.
type Catalog struct {
	mu         sync.Mutex
	forms      []*SuffixForm
	byID       map[string]*SuffixForm
	registered map[int]bool
	nulls      map[string]*SuffixForm
	nullCounts map[string]int
	special    map[string][]SpecialStem
}

// SpecialStem is one irregular stem of a Special item: its surface,
// whether it may end a word and the id of the form it enters the graph
// with.
type SpecialStem struct {
	Surface     string
	Termination Termination
	RootSuffix  string
}

func newCatalog() *Catalog {
	return &Catalog{
		byID:       make(map[string]*SuffixForm),
		registered: make(map[int]bool),
		nulls:      make(map[string]*SuffixForm),
		nullCounts: make(map[string]int),
		special:    make(map[string][]SpecialStem),
	}
}

// DeclareSpecial sets the stems of the Special item with the given id.
func (c *Catalog) DeclareSpecial(itemID string, stems ...SpecialStem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.special[itemID] = stems
}

// SpecialStems returns the stems declared for item, or nil.
func (c *Catalog) SpecialStems(item *DictionaryItem) []SpecialStem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.special[item.ID]
}

// CheckItem reports an error when item names suffix forms the catalog
// does not have.
func (c *Catalog) CheckItem(item *DictionaryItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if item.RootSuffix != "" {
		f, ok := c.byID[item.RootSuffix]
		if !ok || f.Kind == Template {
			return fmt.Errorf("%w: root suffix %s of %s", ErrUnknownSuffixForm, item.RootSuffix, item.ID)
		}
	}
	if e := item.Exclusive; e != nil {
		for _, ids := range [][]string{e.Accept, e.Reject, e.OnlyAccept} {
			for _, id := range ids {
				if _, ok := c.byID[id]; !ok {
					return fmt.Errorf("%w: %s in suffix data of %s", ErrUnknownSuffixForm, id, item.ID)
				}
			}
		}
	}
	for _, s := range c.special[item.ID] {
		if _, ok := c.byID[s.RootSuffix]; !ok {
			return fmt.Errorf("%w: root suffix %s of %s", ErrUnknownSuffixForm, s.RootSuffix, item.ID)
		}
	}
	return nil
}

// applyExclusive restricts base with the suffix data of an item. Unknown
// ids are ignored. The caller holds c.mu.
func (c *Catalog) applyExclusive(e *ExclusiveSuffixData, base FormSet) FormSet {
	lookup := func(ids []string) []*SuffixForm {
		var out []*SuffixForm
		for _, id := range ids {
			if f, ok := c.byID[id]; ok {
				out = append(out, f)
			}
		}
		return out
	}
	if len(e.OnlyAccept) > 0 {
		return NewFormSet(lookup(e.OnlyAccept)...)
	}
	return base.Clone().Add(lookup(e.Accept)...).Remove(lookup(e.Reject)...)
}

func (c *Catalog) newForm(id, suffix string, kind FormKind, gen string, term Termination) *SuffixForm {
	if _, ok := c.byID[id]; ok {
		panic("turkmorph: duplicate suffix form id " + id)
	}
	f := &SuffixForm{
		Index:       len(c.forms),
		ID:          id,
		Suffix:      suffix,
		Kind:        kind,
		Generation:  gen,
		Termination: term,
	}
	c.forms = append(c.forms, f)
	c.byID[id] = f
	return f
}

// concrete declares a form with a generation pattern. Concrete forms end
// a word unless told otherwise.
func (c *Catalog) concrete(id, suffix, gen string, term ...Termination) *SuffixForm {
	t := Terminal
	if len(term) > 0 {
		t = term[0]
	}
	return c.newForm(id, suffix, Concrete, gen, t)
}

func (c *Catalog) template(id, suffix string, term ...Termination) *SuffixForm {
	t := Transfer
	if len(term) > 0 {
		t = term[0]
	}
	return c.newForm(id, suffix, Template, "", t)
}

// derivation declares a template that moves the word to another part of
// speech.
func (c *Catalog) derivation(id string, target PrimaryPos) *SuffixForm {
	f := c.newForm(id, target.String(), Template, "", NonTerminal)
	f.Derivation = true
	return f
}

// null declares a hand-written zero-length form of tmpl. Its connections
// are set by the caller.
func (c *Catalog) null(id string, tmpl *SuffixForm, term ...Termination) *SuffixForm {
	t := tmpl.Termination
	if len(term) > 0 {
		t = term[0]
	}
	f := c.newForm(id, tmpl.Suffix, Null, "", t)
	f.Template = tmpl
	f.Derivation = tmpl.Derivation
	return f
}

func (f *SuffixForm) connect(forms ...*SuffixForm) *SuffixForm {
	f.conns = f.conns.Add(forms...)
	return f
}

func (f *SuffixForm) connectIndirect(forms ...*SuffixForm) *SuffixForm {
	f.indirect = f.indirect.Add(forms...)
	return f
}

func (f *SuffixForm) connectSet(s FormSet) *SuffixForm {
	f.conns = f.conns.Union(s)
	return f
}

func (f *SuffixForm) indirectSet(s FormSet) *SuffixForm {
	f.indirect = f.indirect.Union(s)
	return f
}

// copyConnections makes f follow the same morphotactics as o.
func (f *SuffixForm) copyConnections(o *SuffixForm) *SuffixForm {
	f.conns = o.conns.Clone()
	f.indirect = o.indirect.Clone()
	return f
}

// generateNull returns the null form of tmpl restricted to constraint.
// Null forms with the same template and the same restricted connections
// are shared.
func (c *Catalog) generateNull(tmpl *SuffixForm, constraint FormSet) *SuffixForm {
	conns := tmpl.conns.Intersect(constraint)
	indirect := tmpl.indirect.Intersect(constraint)
	key := strconv.Itoa(tmpl.Index) + "|" + conns.Key() + "|" + indirect.Key()
	if f, ok := c.nulls[key]; ok {
		return f
	}
	base := strings.TrimSuffix(tmpl.ID, "_TEMPLATE")
	c.nullCounts[base]++
	f := c.newForm(fmt.Sprintf("%s_%d", base, c.nullCounts[base]), tmpl.Suffix, Null, "", tmpl.Termination)
	f.Template = tmpl
	f.Derivation = tmpl.Derivation
	f.conns = conns
	f.indirect = indirect
	c.nulls[key] = f
	return f
}

// register prepares f for the graph: every template among its connections
// is replaced by a null form restricted to f's direct and indirect
// connections. Indirect connections are not needed afterwards.
func (c *Catalog) register(f *SuffixForm) {
	if f.Kind == Template || c.registered[f.Index] {
		return
	}
	c.registered[f.Index] = true
	all := f.AllConnections()
	var created []*SuffixForm
	for _, i := range f.conns.Indexes() {
		t := c.forms[i]
		if t.Kind != Template {
			continue
		}
		n := c.generateNull(t, all)
		f.conns = f.conns.Remove(t).Add(n)
		created = append(created, n)
	}
	f.indirect = nil
	for _, n := range created {
		c.register(n)
	}
}

func (c *Catalog) registerAll() {
	for _, f := range append([]*SuffixForm(nil), c.forms...) {
		c.register(f)
	}
}

// FormByID looks up a form by id.
func (c *Catalog) FormByID(id string) (*SuffixForm, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.byID[id]
	return f, ok
}

func (c *Catalog) mustForm(id string) *SuffixForm {
	f, ok := c.byID[id]
	if !ok {
		panic(fmt.Sprintf("%v: %s", ErrUnknownSuffixForm, id))
	}
	return f
}

// Form returns the form with the given index.
func (c *Catalog) Form(i int) *SuffixForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forms[i]
}

// AllForms returns the forms usable in the graph (everything except
// templates), ordered by index.
func (c *Catalog) AllForms() []*SuffixForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*SuffixForm, 0, len(c.forms))
	for _, f := range c.forms {
		if c.registered[f.Index] {
			out = append(out, f)
		}
	}
	return out
}

// Len returns the number of declared forms, templates included.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.forms)
}

// set builds a FormSet from the given form ids.
func (c *Catalog) set(ids ...string) FormSet {
	var s FormSet
	for _, id := range ids {
		s = s.Add(c.mustForm(id))
	}
	return s
}
