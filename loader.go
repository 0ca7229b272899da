package turkmorph

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// Metadata keys of a dictionary line.
const (
	metaPos           = "P"
	metaAttrs         = "A"
	metaPronunciation = "Pr"
	metaRef           = "Ref"
	metaRoots         = "Roots"
	metaIndex         = "Index"
	metaSuffixes      = "S"
	metaRootSuffix    = "RootSuffix"
)

// lineData is one parsed dictionary line before it becomes an item.
// Format: word [P:Noun,Prop; A:Voicing; Pr:pron; Ref:id; Roots:a-b; Index:2;
// S:+Dim_cIk,-Dat_yA; RootSuffix:PersPron_Ben]
type lineData struct {
	word string
	meta map[string]string
	file string
	line int
	text string
}

func (d lineData) errorf(format string, args ...any) error {
	return &LineError{
		File: d.file,
		Line: d.line,
		Text: d.text,
		Err:  fmt.Errorf("%w: "+format, append([]any{ErrMalformedLine}, args...)...),
	}
}

func (d lineData) late() bool {
	_, ref := d.meta[metaRef]
	_, roots := d.meta[metaRoots]
	return ref || roots
}

// parseLine splits a dictionary line into word and metadata.
func parseLine(text, file string, line int) (lineData, error) {
	d := lineData{meta: make(map[string]string), file: file, line: line, text: text}
	s := strings.TrimSpace(text)
	open := strings.Index(s, "[")
	if open < 0 {
		d.word = s
		return d, nil
	}
	if !strings.HasSuffix(s, "]") {
		return d, d.errorf("unterminated metadata")
	}
	d.word = strings.TrimSpace(s[:open])
	if d.word == "" {
		return d, d.errorf("empty word")
	}
	for _, chunk := range strings.Split(s[open+1:len(s)-1], ";") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		idx := strings.Index(chunk, ":")
		if idx <= 0 {
			return d, d.errorf("metadata chunk %q has no key", chunk)
		}
		key := strings.TrimSpace(chunk[:idx])
		switch key {
		case metaPos, metaAttrs, metaPronunciation, metaRef, metaRoots, metaIndex,
			metaSuffixes, metaRootSuffix:
		default:
			return d, d.errorf("unknown metadata key %q", key)
		}
		d.meta[key] = strings.TrimSpace(chunk[idx+1:])
	}
	return d, nil
}

// posInfo resolves the part of speech of a line, inferring it when the
// P: chunk is missing.
func (d lineData) posInfo() (PrimaryPos, SecondaryPos, error) {
	pos, sec := PosUnknown, SecNone
	if p, ok := d.meta[metaPos]; ok {
		for _, tok := range strings.Split(p, ",") {
			tok = strings.TrimSpace(tok)
			if pp, ok := ParsePrimaryPos(tok); ok && pos == PosUnknown {
				pos = pp
				continue
			}
			if sp, ok := ParseSecondaryPos(tok); ok {
				sec = sp
				continue
			}
			return pos, sec, d.errorf("unknown part of speech %q", tok)
		}
	}
	if pos == PosUnknown {
		if isVerbLemma(d.word) {
			pos = PosVerb
		} else {
			pos = PosNoun
		}
	}
	if sec == SecNone && pos == PosNoun && StartsUpper(d.word) {
		sec = SecProperNoun
	}
	return pos, sec, nil
}

func isVerbLemma(word string) bool {
	lower := ToLower(word)
	return !StartsUpper(word) && utf8.RuneCountInString(lower) > 3 &&
		(strings.HasSuffix(lower, "mek") || strings.HasSuffix(lower, "mak"))
}

// generateRoot strips the infinitive ending of verbs and normalizes the
// spelling.
func generateRoot(word string, pos PrimaryPos) string {
	root := NormalizeRoot(word)
	if pos == PosVerb && isVerbLemma(word) {
		r := []rune(root)
		root = string(r[:len(r)-3])
	}
	return root
}

// item builds the dictionary item described by the line.
func (d lineData) item() (*DictionaryItem, error) {
	pos, sec, err := d.posInfo()
	if err != nil {
		return nil, err
	}
	root := generateRoot(d.word, pos)
	if root == "" {
		return nil, d.errorf("empty root")
	}
	pron := root
	if p, ok := d.meta[metaPronunciation]; ok {
		pron = ToLower(p)
	} else if !HasVowel(root) {
		pron = InferPronunciation(root)
	}
	attrs, err := d.rootAttrs(pron, pos, sec)
	if err != nil {
		return nil, err
	}
	item := &DictionaryItem{
		Lemma:         d.word,
		Root:          root,
		Pronunciation: pron,
		Pos:           pos,
		SecondaryPos:  sec,
		Attrs:         attrs,
	}
	if !StartsUpper(d.word) {
		item.Lemma = RemoveCircumflex(d.word)
	}
	if s, ok := d.meta[metaIndex]; ok {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, d.errorf("bad index %q", s)
		}
		item.Index = n
	}
	if s, ok := d.meta[metaSuffixes]; ok {
		excl, err := d.exclusive(s)
		if err != nil {
			return nil, err
		}
		item.Exclusive = excl
	}
	item.RootSuffix = d.meta[metaRootSuffix]
	item.ID = item.generateID()
	return item, nil
}

// exclusive parses an S: chunk. Each form id is prefixed with + (accept),
// - (reject) or = (only accept).
func (d lineData) exclusive(s string) (*ExclusiveSuffixData, error) {
	excl := &ExclusiveSuffixData{}
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if len(tok) < 2 {
			return nil, d.errorf("bad suffix constraint %q", tok)
		}
		id := strings.TrimSpace(tok[1:])
		switch tok[0] {
		case '+':
			excl.Accept = append(excl.Accept, id)
		case '-':
			excl.Reject = append(excl.Reject, id)
		case '=':
			excl.OnlyAccept = append(excl.OnlyAccept, id)
		default:
			return nil, d.errorf("bad suffix constraint %q", tok)
		}
	}
	if excl.IsEmpty() {
		return nil, nil
	}
	return excl, nil
}

func (d lineData) rootAttrs(pron string, pos PrimaryPos, sec SecondaryPos) (RootAttrs, error) {
	var attrs RootAttrs
	if s, ok := d.meta[metaAttrs]; ok {
		for _, tok := range strings.Split(s, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			a, ok := ParseRootAttr(tok)
			if !ok {
				return 0, d.errorf("unknown attribute %q", tok)
			}
			attrs |= a
		}
	}
	return inferRootAttrs(pron, pos, sec, attrs), nil
}

// inferRootAttrs adds the attributes that follow from the shape of a root.
func inferRootAttrs(pron string, pos PrimaryPos, sec SecondaryPos, attrs RootAttrs) RootAttrs {
	runes := []rune(pron)
	if len(runes) == 0 {
		return attrs
	}
	last := runes[len(runes)-1]
	vowels := VowelCount(pron)
	switch pos {
	case PosVerb:
		if IsVowel(last) {
			attrs |= ProgressiveVowelDrop
		}
		if vowels > 1 && !attrs.Has(AoristA) {
			attrs |= AoristI
		}
		if vowels == 1 && !attrs.Has(AoristI) {
			attrs |= AoristA
		}
	case PosNoun, PosAdjective:
		if vowels > 1 && IsStopConsonant(last) && sec != SecProperNoun &&
			!attrs.Has(NoVoicing) && !attrs.Has(InverseHarmony) {
			attrs |= Voicing
		}
		if strings.HasSuffix(pron, "nk") || strings.HasSuffix(pron, "og") {
			if !attrs.Has(NoVoicing) && sec != SecProperNoun {
				attrs |= Voicing
			}
		} else if vowels < 2 && !attrs.Has(Voicing) {
			attrs |= NoVoicing
		}
	}
	return attrs
}

// dictionaryLoader collects lines, adding plain entries right away and
// resolving Ref and Roots entries once everything else is known.
type dictionaryLoader struct {
	lexicon *RootLexicon
	late    []lineData
	logger  *slog.Logger
}

func newDictionaryLoader(lex *RootLexicon, logger *slog.Logger) *dictionaryLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &dictionaryLoader{lexicon: lex, logger: logger}
}

func (dl *dictionaryLoader) add(d lineData) error {
	if d.late() {
		dl.late = append(dl.late, d)
		return nil
	}
	item, err := d.item()
	if err != nil {
		return err
	}
	if err := dl.lexicon.Add(item); err != nil {
		dl.logger.Warn("duplicate dictionary item", "item", item.ID, "line", d.line, "file", d.file)
	}
	return nil
}

func (dl *dictionaryLoader) result() (*RootLexicon, error) {
	for _, d := range dl.late {
		if ref, ok := d.meta[metaRef]; ok {
			if err := dl.addReference(d, ref); err != nil {
				return nil, err
			}
		}
		if roots, ok := d.meta[metaRoots]; ok {
			if err := dl.addCompound(d, roots); err != nil {
				return nil, err
			}
		}
	}
	dl.late = nil
	return dl.lexicon, nil
}

func (dl *dictionaryLoader) addReference(d lineData, refID string) error {
	if !strings.Contains(refID, "_") {
		refID += "_Noun"
	}
	item, err := d.item()
	if err != nil {
		return err
	}
	item.Ref = dl.lexicon.ItemByID(refID)
	if item.Ref == nil {
		dl.logger.Warn("cannot find reference item", "item", item.ID, "ref", refID)
	}
	if err := dl.lexicon.Add(item); err != nil {
		dl.logger.Warn("duplicate dictionary item", "item", item.ID)
	}
	return nil
}

// addCompound handles compounds carrying a P3sg suffix (zeytinyağı with
// Roots:zeytin-yağ). The compound itself is added, plus a dummy root
// (zeytinyağ) that borrows the head word's attributes and points back at
// the compound.
func (dl *dictionaryLoader) addCompound(d lineData, roots string) error {
	item, err := d.item()
	if err != nil {
		return err
	}
	if existing := dl.lexicon.ItemByID(item.ID); existing != nil {
		item = existing
	} else if err := dl.lexicon.Add(item); err != nil {
		return err
	}

	root := NormalizeRoot(strings.ReplaceAll(roots, "-", ""))
	head := roots
	if i := strings.LastIndex(roots, "-"); i >= 0 {
		head = roots[i+1:]
	}
	var attrs RootAttrs
	if heads := dl.lexicon.ItemsByLemma(head); len(heads) > 0 {
		sorted := append([]*DictionaryItem(nil), heads...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })
		attrs = sorted[0].Attrs
	} else {
		attrs = inferRootAttrs(root, item.Pos, item.SecondaryPos, 0)
	}
	attrs = (attrs | CompoundP3sgRoot | Dummy) &^ Voicing

	dummy := &DictionaryItem{
		Lemma:         root,
		Root:          root,
		Pronunciation: root,
		Pos:           item.Pos,
		SecondaryPos:  item.SecondaryPos,
		Attrs:         attrs,
		Ref:           item,
	}
	dummy.ID = dummy.generateID()
	if err := dl.lexicon.Add(dummy); err != nil {
		dl.logger.Warn("duplicate dictionary item", "item", dummy.ID)
	}
	return nil
}

// readLines parses every non-comment line of r.
func readLines(r io.Reader, name string) ([]lineData, error) {
	var out []lineData
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "##") {
			continue
		}
		d, err := parseLine(text, name, n)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return out, nil
}

// ParseDictionary reads a dictionary from r.
func ParseDictionary(r io.Reader, name string) (*RootLexicon, error) {
	lines, err := readLines(r, name)
	if err != nil {
		return nil, err
	}
	dl := newDictionaryLoader(NewRootLexicon(), nil)
	for _, d := range lines {
		if err := dl.add(d); err != nil {
			return nil, err
		}
	}
	return dl.result()
}

// ParseLines builds a lexicon from dictionary lines.
func ParseLines(lines ...string) (*RootLexicon, error) {
	return ParseDictionary(strings.NewReader(strings.Join(lines, "\n")), "")
}

// ParseItem parses a single line into an item. Ref and Roots metadata are
// resolved against lex when it is not nil.
func ParseItem(line string, lex *RootLexicon) ([]*DictionaryItem, error) {
	d, err := parseLine(line, "", 1)
	if err != nil {
		return nil, err
	}
	if !d.late() || lex == nil {
		item, err := d.item()
		if err != nil {
			return nil, err
		}
		return []*DictionaryItem{item}, nil
	}
	// Resolve against a scratch copy so the caller's lexicon stays untouched.
	scratch := NewRootLexicon()
	for _, it := range lex.Items() {
		_ = scratch.Add(it)
	}
	before := scratch.Len()
	dl := newDictionaryLoader(scratch, nil)
	if err := dl.add(d); err != nil {
		return nil, err
	}
	if _, err := dl.result(); err != nil {
		return nil, err
	}
	return scratch.Items()[before:], nil
}

// LoadDictionary reads and merges the given dictionary files. Files are
// read and parsed concurrently; items are added in argument order.
func LoadDictionary(logger *slog.Logger, paths ...string) (*RootLexicon, error) {
	parsed := make([][]lineData, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()
			lines, err := readLines(f, filepath.Base(path))
			if err != nil {
				return err
			}
			parsed[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dl := newDictionaryLoader(NewRootLexicon(), logger)
	for _, lines := range parsed {
		for _, d := range lines {
			if err := dl.add(d); err != nil {
				return nil, err
			}
		}
	}
	return dl.result()
}

// DictionaryFiles lists the *.dict files of dir in name order.
func DictionaryFiles(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.dict"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no dictionary files in %s", dir)
	}
	sort.Strings(paths)
	return paths, nil
}
