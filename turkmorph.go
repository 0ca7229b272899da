// Package turkmorph provides morphological analysis of Turkish words. A
// dictionary of roots is compiled against a suffix catalog into a graph of
// stems and suffix surface nodes; analysis walks that graph against the
// input and returns every decomposition it accepts.
package turkmorph

import (
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Morphology holds a lexicon, its compiled graph and the analyzers built
// on it, and provides the public API. It is safe for concurrent use.
type Morphology struct {
	// mu guards lexicon. The graph has its own lock.
	mu      sync.RWMutex
	lexicon *RootLexicon

	catalog      *Catalog
	graph        *LexiconGraph
	analyzer     *WordAnalyzer
	unidentified *UnidentifiedTokenAnalyzer

	// cache is nil when caching is disabled.
	cache     *AnalysisCache
	cacheSize int
	noCache   bool
	workers   int
	logger    *slog.Logger
}

// Option configures a Morphology.
type Option func(*Morphology)

// WithLogger sets the logger used for warnings (duplicate items, missing
// references). The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Morphology) { m.logger = l }
}

// WithCacheSize sets the number of words the analysis cache keeps.
func WithCacheSize(n int) Option {
	return func(m *Morphology) { m.cacheSize = n }
}

// WithoutCache disables the analysis cache.
func WithoutCache() Option {
	return func(m *Morphology) { m.noCache = true }
}

// WithWorkers sets the number of workers AnalyzeList uses. The default is
// runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(m *Morphology) { m.workers = n }
}

// New compiles lex against the Turkish suffix catalog.
func New(lex *RootLexicon, opts ...Option) (*Morphology, error) {
	m := &Morphology{
		lexicon:   lex,
		catalog:   NewTurkishCatalog(),
		cacheSize: DefaultCacheSize,
		logger:    slog.Default(),
	}
	for _, o := range opts {
		o(m)
	}
	if !m.noCache {
		c, err := NewAnalysisCache(m.cacheSize)
		if err != nil {
			return nil, err
		}
		m.cache = c
	}
	m.graph = NewLexiconGraph(m.catalog, m.logger)
	m.analyzer = NewWordAnalyzer(m.graph)
	m.unidentified = NewUnidentifiedTokenAnalyzer(m.graph, m.analyzer)
	items := lex.Items()
	valid := items[:0:0]
	for _, it := range items {
		if err := m.catalog.CheckItem(it); err != nil {
			m.logger.Warn("item not compiled", "item", it.ID, "err", err)
			continue
		}
		valid = append(valid, it)
	}
	m.graph.AddItems(valid...)
	return m, nil
}

// LoadDir loads every dictionary file of dataDir and compiles it.
func LoadDir(dataDir string, opts ...Option) (*Morphology, error) {
	paths, err := DictionaryFiles(dataDir)
	if err != nil {
		return nil, err
	}
	m := &Morphology{logger: slog.Default()}
	for _, o := range opts {
		o(m)
	}
	lex, err := LoadDictionary(m.logger, paths...)
	if err != nil {
		return nil, err
	}
	return New(lex, opts...)
}

// Load builds a Morphology from a configuration: from the snapshot when one
// is configured, from the dictionary files otherwise.
func Load(cfg Config, opts ...Option) (*Morphology, error) {
	opts = append(cfg.Options(), opts...)
	var lex *RootLexicon
	if cfg.Snapshot != "" {
		l, err := LoadSnapshot(cfg.Snapshot)
		if err != nil {
			return nil, err
		}
		lex = l
	} else {
		paths, err := cfg.DictionaryPaths()
		if err != nil {
			return nil, err
		}
		m := &Morphology{logger: slog.Default()}
		for _, o := range opts {
			o(m)
		}
		l, err := LoadDictionary(m.logger, paths...)
		if err != nil {
			return nil, err
		}
		lex = l
	}
	return New(lex, opts...)
}

// cacheKey normalizes what does not change an analysis: surrounding space,
// circumflexes and the apostrophe variant. Case stays, since capitalized
// unknown words are analysed as proper nouns.
func cacheKey(word string) string {
	return strings.ReplaceAll(RemoveCircumflex(strings.TrimSpace(word)), "’", "'")
}

// Analyze returns every analysis of word. A non-empty word always gets at
// least one analysis: when neither the dictionary nor the unidentified
// token rules account for it, a single analysis flagged Unknown.
func (m *Morphology) Analyze(word string) []WordAnalysis {
	if strings.TrimSpace(word) == "" {
		return nil
	}
	if m.cache == nil {
		return m.analyze(word)
	}
	key := cacheKey(word)
	return m.cache.Get(key, func() []WordAnalysis { return m.analyze(key) })
}

func (m *Morphology) analyze(word string) []WordAnalysis {
	normalized := NormalizeInput(word)
	if res := m.analyzer.Analyze(normalized); len(res) > 0 {
		return res
	}
	if res := m.unidentified.Analyze(word); len(res) > 0 {
		return res
	}
	return []WordAnalysis{{Stem: normalized, Unknown: true}}
}

// AddItem adds item to the lexicon and the graph. An item whose id is
// already known, or that names unknown suffix forms, is logged and
// ignored.
func (m *Morphology) AddItem(item *DictionaryItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addItem(item)
}

func (m *Morphology) addItem(item *DictionaryItem) bool {
	if err := m.catalog.CheckItem(item); err != nil {
		m.logger.Warn("item not added", "item", item.ID, "err", err)
		return false
	}
	if err := m.lexicon.Add(item); err != nil {
		m.logger.Warn("item not added", "item", item.ID, "err", err)
		return false
	}
	m.graph.AddItem(item)
	m.invalidate()
	return true
}

// AddLine parses a dictionary line and adds the resulting items. It returns
// the items actually added.
func (m *Morphology) AddLine(line string) ([]*DictionaryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, err := ParseItem(line, m.lexicon)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if err := m.catalog.CheckItem(it); err != nil {
			return nil, err
		}
	}
	var added []*DictionaryItem
	for _, it := range items {
		if m.addItem(it) {
			added = append(added, it)
		}
	}
	return added, nil
}

// RemoveItem removes the item with the given id from the lexicon and the
// graph.
func (m *Morphology) RemoveItem(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, err := m.lexicon.Remove(id)
	if err != nil {
		return err
	}
	m.graph.RemoveItem(item)
	m.invalidate()
	return nil
}

func (m *Morphology) invalidate() {
	if m.cache != nil {
		m.cache.InvalidateAll()
	}
}

// Item returns the dictionary item with the given id, or nil.
func (m *Morphology) Item(id string) *DictionaryItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lexicon.ItemByID(id)
}

// ItemsByLemma returns the dictionary items with the given lemma.
func (m *Morphology) ItemsByLemma(lemma string) []*DictionaryItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*DictionaryItem(nil), m.lexicon.ItemsByLemma(lemma)...)
}

// Generate returns the words formed by the item with the given id and the
// given morphemes.
func (m *Morphology) Generate(itemID string, suffixes ...string) ([]string, error) {
	if m.Item(itemID) == nil {
		return nil, ErrUnknownItem
	}
	return m.graph.Generate(itemID, suffixes...), nil
}

// InflectionTable returns the paradigm of the item with the given id.
func (m *Morphology) InflectionTable(itemID string) (*InflectionTable, error) {
	item := m.Item(itemID)
	if item == nil {
		return nil, ErrUnknownItem
	}
	return m.graph.InflectionTable(item)
}

// Stats describes the compiled graph and the cache.
type Stats struct {
	Items int        `json:"items"`
	Graph GraphStats `json:"graph"`
	Cache CacheStats `json:"cache"`
}

// Stats returns the current sizes.
func (m *Morphology) Stats() Stats {
	m.mu.RLock()
	items := m.lexicon.Len()
	m.mu.RUnlock()
	s := Stats{Items: items, Graph: m.graph.Stats()}
	if m.cache != nil {
		s.Cache = m.cache.Stats()
	}
	return s
}

// DebugTrace writes the stems and paths tried for word to w.
func (m *Morphology) DebugTrace(w io.Writer, word string) []WordAnalysis {
	return m.analyzer.DebugTrace(w, NormalizeInput(word))
}

// Dump writes the compiled graph to w.
func (m *Morphology) Dump(w io.Writer) { m.graph.Dump(w) }

// WriteSnapshot writes the lexicon in the binary snapshot format.
func (m *Morphology) WriteSnapshot(w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return WriteSnapshot(w, m.lexicon)
}

// Graph returns the compiled graph.
func (m *Morphology) Graph() *LexiconGraph { return m.graph }

// Catalog returns the suffix catalog.
func (m *Morphology) Catalog() *Catalog { return m.catalog }
