package turkmorph

import (
	"fmt"
	"strings"
)

// RootAttrs is a set of static attributes attached to a dictionary root.
type RootAttrs uint32

const (
	Voicing RootAttrs = 1 << iota
	NoVoicing
	InverseHarmony
	Doubling
	LastVowelDrop
	ProgressiveVowelDrop
	AoristA
	AoristI
	CompoundP3sg
	CompoundP3sgRoot
	Special
	Runtime
	Dummy
	NoSuffix
)

var rootAttrNames = []struct {
	attr RootAttrs
	name string
}{
	{Voicing, "Voicing"},
	{NoVoicing, "NoVoicing"},
	{InverseHarmony, "InverseHarmony"},
	{Doubling, "Doubling"},
	{LastVowelDrop, "LastVowelDrop"},
	{ProgressiveVowelDrop, "ProgressiveVowelDrop"},
	{AoristA, "Aorist_A"},
	{AoristI, "Aorist_I"},
	{CompoundP3sg, "CompoundP3sg"},
	{CompoundP3sgRoot, "CompoundP3sgRoot"},
	{Special, "Special"},
	{Runtime, "Runtime"},
	{Dummy, "Dummy"},
	{NoSuffix, "NoSuffix"},
}

// modifierAttrs are the attributes that make a root surface in more than
// one phonetic shape.
const modifierAttrs = Voicing | Doubling | LastVowelDrop | InverseHarmony |
	ProgressiveVowelDrop | CompoundP3sgRoot

func (r RootAttrs) Has(a RootAttrs) bool { return r&a == a }

func (r RootAttrs) String() string {
	var parts []string
	for _, n := range rootAttrNames {
		if r.Has(n.attr) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, ",")
}

// ParseRootAttr resolves a single attribute name as written in dictionaries.
func ParseRootAttr(s string) (RootAttrs, bool) {
	for _, n := range rootAttrNames {
		if strings.EqualFold(s, n.name) {
			return n.attr, true
		}
	}
	return 0, false
}

// runtimeMarker is appended to the id of synthesized items so they never
// collide with dictionary ids.
const runtimeMarker = "_rt"

// ExclusiveSuffixData overrides the suffixes allowed after an item's
// stems. Values are suffix form ids. When OnlyAccept is set it replaces
// the default successors; otherwise Accept is added to them and Reject
// removed.
type ExclusiveSuffixData struct {
	Accept     []string
	Reject     []string
	OnlyAccept []string
}

// IsEmpty reports whether e changes nothing.
func (e *ExclusiveSuffixData) IsEmpty() bool {
	return e == nil || len(e.Accept) == 0 && len(e.Reject) == 0 && len(e.OnlyAccept) == 0
}

// String renders e in dictionary notation: "+Dim_cIk,-Dat_yA".
func (e *ExclusiveSuffixData) String() string {
	if e == nil {
		return ""
	}
	var parts []string
	for _, id := range e.OnlyAccept {
		parts = append(parts, "="+id)
	}
	for _, id := range e.Accept {
		parts = append(parts, "+"+id)
	}
	for _, id := range e.Reject {
		parts = append(parts, "-"+id)
	}
	return strings.Join(parts, ",")
}

// DictionaryItem is a vocabulary entry. Items are immutable once added to
// a lexicon; identity is the ID.
type DictionaryItem struct {
	ID            string
	Lemma         string
	Root          string
	Pronunciation string
	Pos           PrimaryPos
	SecondaryPos  SecondaryPos
	Attrs         RootAttrs
	Index         int
	// Ref points at the item a dummy or derived item stands for.
	Ref *DictionaryItem
	// Literal keeps the token text of runtime numeral items ("3.14").
	Literal string
	// Exclusive overrides the default morphotactics of the item.
	Exclusive *ExclusiveSuffixData
	// RootSuffix is the id of the form every stem of the item enters the
	// suffix graph with, replacing the catalog's default root form.
	RootSuffix string
}

// NewItem builds an item and assigns its id.
func NewItem(lemma, root, pronunciation string, pos PrimaryPos, sec SecondaryPos, attrs RootAttrs) *DictionaryItem {
	it := &DictionaryItem{
		Lemma:         lemma,
		Root:          root,
		Pronunciation: pronunciation,
		Pos:           pos,
		SecondaryPos:  sec,
		Attrs:         attrs,
	}
	it.ID = it.generateID()
	return it
}

func (it *DictionaryItem) generateID() string {
	var sb strings.Builder
	sb.WriteString(it.Lemma)
	sb.WriteString("_")
	sb.WriteString(it.Pos.String())
	if it.SecondaryPos != SecNone {
		sb.WriteString("_")
		sb.WriteString(it.SecondaryPos.String())
	}
	if it.Index > 0 {
		fmt.Fprintf(&sb, "_%d", it.Index)
	}
	if it.Attrs.Has(Dummy) {
		sb.WriteString("_Dummy")
	}
	if it.Attrs.Has(Runtime) {
		sb.WriteString(runtimeMarker)
	}
	return sb.String()
}

// HasAttr reports whether every attribute of a is set on the item.
func (it *DictionaryItem) HasAttr(a RootAttrs) bool { return it.Attrs.Has(a) }

// Reported returns the item analyses should name: the referenced item for
// dummies, the item itself otherwise.
func (it *DictionaryItem) Reported() *DictionaryItem {
	if it.HasAttr(Dummy) && it.Ref != nil {
		return it.Ref
	}
	return it
}

func (it *DictionaryItem) posTag() string {
	if it == nil {
		return PosUnknown.String()
	}
	if it.SecondaryPos == SecNone {
		return it.Pos.String()
	}
	return it.Pos.String() + "," + it.SecondaryPos.String()
}

func (it *DictionaryItem) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [P:%s", it.Lemma, it.posTag())
	if it.Attrs != 0 {
		fmt.Fprintf(&sb, "; A:%s", it.Attrs)
	}
	if it.Pronunciation != it.Root {
		fmt.Fprintf(&sb, "; Pr:%s", it.Pronunciation)
	}
	if it.Ref != nil {
		fmt.Fprintf(&sb, "; Ref:%s", it.Ref.ID)
	}
	if !it.Exclusive.IsEmpty() {
		fmt.Fprintf(&sb, "; S:%s", it.Exclusive)
	}
	if it.RootSuffix != "" {
		fmt.Fprintf(&sb, "; RootSuffix:%s", it.RootSuffix)
	}
	if it.Index > 0 {
		fmt.Fprintf(&sb, "; Index:%d", it.Index)
	}
	sb.WriteString("]")
	return sb.String()
}
