package turkmorph

import (
	"math/bits"
	"strconv"
	"strings"
)

// Termination tells whether a node may end a word.
type Termination uint8

const (
	// Terminal nodes may end a word.
	Terminal Termination = iota
	// NonTerminal nodes must be followed by another morpheme.
	NonTerminal
	// Transfer nodes keep whatever state the path had before them.
	Transfer
)

func (t Termination) String() string {
	switch t {
	case Terminal:
		return "TERMINAL"
	case NonTerminal:
		return "NON_TERMINAL"
	default:
		return "TRANSFER"
	}
}

// FormKind tags the variant of a SuffixForm.
type FormKind uint8

const (
	// Concrete forms carry a generation pattern such as "+yA".
	Concrete FormKind = iota
	// Template forms only declare morphotactics; they never reach the graph.
	Template
	// Null forms are zero-length realizations of a template, restricted to
	// a set of successors.
	Null
)

func (k FormKind) String() string {
	switch k {
	case Concrete:
		return "Concrete"
	case Template:
		return "Template"
	default:
		return "Null"
	}
}

// SuffixForm is one way a suffix may be written, plus the forms allowed to
// follow it.
type SuffixForm struct {
	Index       int
	ID          string
	Suffix      string
	Kind        FormKind
	Generation  string
	Template    *SuffixForm
	Termination Termination
	// Derivation is set on templates that change the part of speech.
	Derivation bool

	conns    FormSet
	indirect FormSet
}

// Connections returns the forms that may directly follow f.
func (f *SuffixForm) Connections() FormSet { return f.conns }

// AllConnections returns direct and indirect connections.
func (f *SuffixForm) AllConnections() FormSet { return f.conns.Union(f.indirect) }

// IsNull reports whether f never consumes input.
func (f *SuffixForm) IsNull() bool {
	return f.Kind != Concrete || f.Generation == ""
}

func (f *SuffixForm) String() string {
	if f.Kind == Concrete {
		return f.ID + "[" + f.Generation + "]"
	}
	return f.ID
}

// FormSet is a bit set of suffix form indexes.
type FormSet []uint64

// NewFormSet returns a set holding the given forms.
func NewFormSet(forms ...*SuffixForm) FormSet {
	var s FormSet
	return s.Add(forms...)
}

func (s FormSet) grow(i int) FormSet {
	w := i / 64
	if w < len(s) {
		return s
	}
	out := make(FormSet, w+1)
	copy(out, s)
	return out
}

// Add returns s with forms added. s may be modified in place.
func (s FormSet) Add(forms ...*SuffixForm) FormSet {
	for _, f := range forms {
		s = s.grow(f.Index)
		s[f.Index/64] |= 1 << (uint(f.Index) % 64)
	}
	return s
}

// Remove returns s with forms removed. s may be modified in place.
func (s FormSet) Remove(forms ...*SuffixForm) FormSet {
	for _, f := range forms {
		if w := f.Index / 64; w < len(s) {
			s[w] &^= 1 << (uint(f.Index) % 64)
		}
	}
	return s
}

// Contains reports whether form index i is in s.
func (s FormSet) Contains(i int) bool {
	w := i / 64
	return w < len(s) && s[w]&(1<<(uint(i)%64)) != 0
}

// Has reports whether f is in s.
func (s FormSet) Has(f *SuffixForm) bool { return s.Contains(f.Index) }

// Clone returns an independent copy.
func (s FormSet) Clone() FormSet {
	if s == nil {
		return nil
	}
	return append(FormSet(nil), s...)
}

// Union returns a new set with the members of s and o.
func (s FormSet) Union(o FormSet) FormSet {
	n := max(len(s), len(o))
	out := make(FormSet, n)
	copy(out, s)
	for i, w := range o {
		out[i] |= w
	}
	return out
}

// Intersect returns a new set with the members common to s and o.
func (s FormSet) Intersect(o FormSet) FormSet {
	n := min(len(s), len(o))
	out := make(FormSet, n)
	for i := 0; i < n; i++ {
		out[i] = s[i] & o[i]
	}
	return out
}

// Len returns the number of members.
func (s FormSet) Len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether s has no members.
func (s FormSet) IsEmpty() bool {
	for _, w := range s {
		if w != 0 {
			return false
		}
	}
	return true
}

// Equal compares membership, ignoring trailing zero words.
func (s FormSet) Equal(o FormSet) bool {
	return s.Key() == o.Key()
}

// Indexes returns the member indexes in ascending order.
func (s FormSet) Indexes() []int {
	var out []int
	for wi, w := range s {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, wi*64+b)
			w &^= 1 << uint(b)
		}
	}
	return out
}

// Key returns a canonical string usable as a map key.
func (s FormSet) Key() string {
	n := len(s)
	for n > 0 && s[n-1] == 0 {
		n--
	}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatUint(s[i], 36))
	}
	return sb.String()
}
