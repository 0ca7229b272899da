package turkmorph

import (
	"fmt"
	"sort"
)

// RootLexicon is an ordered collection of dictionary items indexed by id
// and lemma.
type RootLexicon struct {
	items   []*DictionaryItem
	byID    map[string]*DictionaryItem
	byLemma map[string][]*DictionaryItem
}

// NewRootLexicon returns an empty lexicon.
func NewRootLexicon() *RootLexicon {
	return &RootLexicon{
		byID:    make(map[string]*DictionaryItem),
		byLemma: make(map[string][]*DictionaryItem),
	}
}

// Add appends item. Adding an id twice returns ErrDuplicateItem.
func (l *RootLexicon) Add(item *DictionaryItem) error {
	if _, ok := l.byID[item.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateItem, item.ID)
	}
	l.items = append(l.items, item)
	l.byID[item.ID] = item
	l.byLemma[item.Lemma] = append(l.byLemma[item.Lemma], item)
	return nil
}

// Remove deletes the item with the given id and returns it.
func (l *RootLexicon) Remove(id string) (*DictionaryItem, error) {
	item, ok := l.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	delete(l.byID, id)
	l.items = removeItem(l.items, item)
	if rest := removeItem(l.byLemma[item.Lemma], item); len(rest) > 0 {
		l.byLemma[item.Lemma] = rest
	} else {
		delete(l.byLemma, item.Lemma)
	}
	return item, nil
}

func removeItem(items []*DictionaryItem, item *DictionaryItem) []*DictionaryItem {
	out := items[:0]
	for _, it := range items {
		if it != item {
			out = append(out, it)
		}
	}
	return out
}

// ItemByID returns the item with the given id, or nil.
func (l *RootLexicon) ItemByID(id string) *DictionaryItem {
	return l.byID[id]
}

// ItemsByLemma returns all items sharing lemma.
func (l *RootLexicon) ItemsByLemma(lemma string) []*DictionaryItem {
	return l.byLemma[lemma]
}

// Items returns the items in insertion order.
func (l *RootLexicon) Items() []*DictionaryItem {
	return l.items
}

// Len returns the number of items.
func (l *RootLexicon) Len() int {
	return len(l.items)
}

// Lemmas returns the distinct lemmas in sorted order.
func (l *RootLexicon) Lemmas() []string {
	out := make([]string, 0, len(l.byLemma))
	for k := range l.byLemma {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
