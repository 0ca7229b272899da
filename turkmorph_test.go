package turkmorph

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataDir = "data"

var (
	sharedOnce sync.Once
	shared     *Morphology
	sharedErr  error
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// loadShared returns a Morphology over dataDir shared by read-only tests.
func loadShared(t *testing.T) *Morphology {
	t.Helper()
	sharedOnce.Do(func() {
		shared, sharedErr = LoadDir(dataDir, WithLogger(quietLogger()))
	})
	require.NoError(t, sharedErr)
	return shared
}

// loadFresh returns a private Morphology for tests that mutate the lexicon.
func loadFresh(t *testing.T, opts ...Option) *Morphology {
	t.Helper()
	m, err := LoadDir(dataDir, append([]Option{WithLogger(quietLogger())}, opts...)...)
	require.NoError(t, err)
	return m
}

// lexicals returns the lexical form of every analysis of word.
func lexicals(m *Morphology, word string) []string {
	var out []string
	for _, a := range m.Analyze(word) {
		out = append(out, a.FormatLexical())
	}
	return out
}

func TestLoadDir(t *testing.T) {
	m := loadShared(t)
	st := m.Stats()
	if st.Items == 0 {
		t.Fatal("LoadDir loaded no items")
	}
	assert.NotZero(t, st.Graph.Stems)
	assert.NotZero(t, st.Graph.SurfaceNodes)
	t.Logf("Loaded %d items, %d stems, %d root nodes, %d surface nodes, %d suffix forms",
		st.Items, st.Graph.Stems, st.Graph.RootNodes, st.Graph.SurfaceNodes, st.Graph.SuffixForms)
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir("no-such-dir")
	assert.Error(t, err)
}

func TestAnalyzeWords(t *testing.T) {
	m := loadShared(t)
	tests := []struct {
		word string
		want string
	}{
		{"kitaplara", "kitap+Noun+A3pl+Pnon+Dat"},
		{"kitaba", "kitap+Noun+A3sg+Pnon+Dat"},
		{"kitapta", "kitap+Noun+A3sg+Pnon+Loc"},
		{"armuda", "armut+Noun+A3sg+Pnon+Dat"},
		{"kaleye", "kale+Noun+A3sg+Pnon+Dat"},
		{"kalemler", "kalem+Noun+A3pl+Pnon+Nom"},
		{"ağzı", "ağız+Noun+A3sg+P3sg+Nom"},
		{"burnu", "burun+Noun+A3sg+Pnon+Acc"},
		{"hakkı", "hak+Noun+A3sg+Pnon+Acc"},
		{"saate", "saat+Noun+A3sg+Pnon+Dat"},
		{"rengi", "renk+Noun+A3sg+Pnon+Acc"},
		{"geliyor", "gelmek+Verb+Pos+Prog+A3sg"},
		{"gelir", "gelmek+Verb+Pos+Aor+A3sg"},
		{"gidiyor", "gitmek+Verb+Pos+Prog+A3sg"},
		{"gitti", "gitmek+Verb+Pos+Past+A3sg"},
		{"başlıyor", "başlamak+Verb+Pos+Prog+A3sg"},
		{"diyor", "demek+Verb+Pos+Prog+A3sg"},
		{"bana", "ben+Pron,Pers+A1sg+Pnon+Dat"},
		{"beni", "ben+Pron,Pers+A1sg+Pnon+Acc"},
		{"buna", "bu+Pron,Demons+A3sg+Pnon+Dat"},
	}
	for _, tt := range tests {
		got := lexicals(m, tt.word)
		if !contains(got, tt.want) {
			t.Errorf("Analyze(%q) = %q, want it to contain %q", tt.word, got, tt.want)
		}
	}
}

func TestAnalyzeRejects(t *testing.T) {
	m := loadShared(t)
	for _, word := range []string{"armuta", "armud", "kitapa", "kitab", "ağızı", "hakı", "saata", "gitiyor", "geler", "deyor", "bene", "zeytinyağ",
		"zeytinyağlar", "zeytinyağlara", "zeytinyağlarda"} {
		res := m.Analyze(word)
		require.Len(t, res, 1, "Analyze(%q)", word)
		assert.True(t, res[0].Unknown, "Analyze(%q) = %v, want unknown", word, res)
	}
}

func TestAnalyzeAmbiguous(t *testing.T) {
	m := loadShared(t)
	got := lexicals(m, "kalemi")
	for _, want := range []string{
		"kalem+Noun+A3sg+Pnon+Acc",
		"kalem+Noun+A3sg+P3sg+Nom",
		"kale+Noun+A3sg+P1sg+Acc",
	} {
		assert.Contains(t, got, want)
	}
	lemmas := make(map[string]bool)
	for _, a := range m.Analyze("kalem") {
		lemmas[a.Lemma()] = true
	}
	assert.True(t, lemmas["kalem"] && lemmas["kale"], "kalem lemmas = %v", lemmas)
}

func TestAnalyzeSurfaceRoundTrip(t *testing.T) {
	m := loadShared(t)
	for _, word := range []string{"kitaplara", "kalemi", "ağzı", "zeytinyağına", "geliyorum", "diyecek", "bunlar"} {
		res := m.Analyze(word)
		require.NotEmpty(t, res)
		for _, a := range res {
			if a.Unknown {
				t.Errorf("Analyze(%q) returned an unknown analysis", word)
				continue
			}
			if got := a.Surface(); got != word {
				t.Errorf("%s: Surface() = %q, want %q", a, got, word)
			}
		}
	}
}

func TestAnalyzeCompound(t *testing.T) {
	m := loadShared(t)
	got := lexicals(m, "zeytinyağına")
	assert.Contains(t, got, "zeytinyağı+Noun+A3sg+Pnon+Dat")

	res := m.Analyze("zeytinyağım")
	require.NotEmpty(t, res)
	for _, a := range res {
		require.NotNil(t, a.Item)
		assert.Equal(t, "zeytinyağı_Noun", a.Item.ID, "dummy roots report the compound")
	}
}

func TestAnalyzeCompoundPlural(t *testing.T) {
	m := loadShared(t)
	tests := []struct {
		word    string
		want    []string
		wantNot []string
	}{
		{
			"zeytinyağları",
			[]string{"zeytinyağı+Noun+A3pl+Pnon+Nom", "zeytinyağı+Noun+A3pl+P3sg+Nom", "zeytinyağı+Noun+A3pl+P3pl+Nom"},
			[]string{"zeytinyağı+Noun+A3pl+Pnon+Acc"},
		},
		{"zeytinyağlarım", []string{"zeytinyağı+Noun+A3pl+P1sg+Nom"}, nil},
		{"zeytinyağlarına", []string{"zeytinyağı+Noun+A3pl+P3sg+Dat"}, []string{"zeytinyağı+Noun+A3pl+Pnon+Dat"}},
	}
	for _, tt := range tests {
		got := lexicals(m, tt.word)
		for _, w := range tt.want {
			if !contains(got, w) {
				t.Errorf("Analyze(%q) = %q, want it to contain %q", tt.word, got, w)
			}
		}
		for _, w := range tt.wantNot {
			if contains(got, w) {
				t.Errorf("Analyze(%q) = %q, want no %q", tt.word, got, w)
			}
		}
	}
}

func TestAnalyzeNormalizesInput(t *testing.T) {
	m := loadShared(t)
	assert.Equal(t, lexicals(m, "kitaba"), lexicals(m, "  KİTABA "))
	assert.Contains(t, lexicals(m, "kâğıda"), "kağıt+Noun+A3sg+Pnon+Dat")
}

func TestAnalyzeUnknownFallback(t *testing.T) {
	m := loadShared(t)
	res := m.Analyze("xqwvz")
	require.Len(t, res, 1)
	assert.True(t, res[0].Unknown)
	assert.Equal(t, "xqwvz", res[0].Stem)
	assert.Equal(t, PosUnknown, res[0].Pos())
	assert.Equal(t, "xqwvz+Unk", res[0].FormatLexical())

	assert.Nil(t, m.Analyze(""))
	assert.Nil(t, m.Analyze("   "))
}

func TestAnalyzeUnidentified(t *testing.T) {
	m := loadShared(t)
	res := m.Analyze("3.14'ten")
	require.NotEmpty(t, res)
	assert.Equal(t, "dört", res[0].Lemma())
	assert.Equal(t, "3.14", res[0].Stem)

	res = m.Analyze("Zonguldak'a")
	require.NotEmpty(t, res)
	assert.Equal(t, "Zonguldak", res[0].Lemma())
	assert.Equal(t, SecProperNoun, res[0].Item.SecondaryPos)

	// Runtime items never stay in the lexicon or the graph.
	assert.Nil(t, m.Item(res[0].Item.ID))
	assert.Empty(t, m.Graph().StemsOf(res[0].Item.ID))
}

func TestAnalyzeCache(t *testing.T) {
	m := loadFresh(t, WithCacheSize(16))
	first := m.Analyze("kitaba")
	again := m.Analyze("kitaba")
	assert.Equal(t, first, again)
	st := m.Stats().Cache
	assert.Equal(t, uint64(1), st.Hits)
	assert.Equal(t, uint64(1), st.Misses)

	// Keys ignore surrounding space and circumflexes.
	m.Analyze(" kitaba ")
	assert.Equal(t, uint64(2), m.Stats().Cache.Hits)
}

func TestWithoutCache(t *testing.T) {
	m := loadFresh(t, WithoutCache())
	m.Analyze("kitaba")
	assert.Equal(t, CacheStats{}, m.Stats().Cache)
}

func TestAddLineInvalidatesCache(t *testing.T) {
	m := loadFresh(t)
	res := m.Analyze("masaya")
	require.Len(t, res, 1)
	require.True(t, res[0].Unknown)

	added, err := m.AddLine("masa")
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "masa_Noun", added[0].ID)
	assert.Contains(t, lexicals(m, "masaya"), "masa+Noun+A3sg+Pnon+Dat")

	require.NoError(t, m.RemoveItem("masa_Noun"))
	res = m.Analyze("masaya")
	require.Len(t, res, 1)
	assert.True(t, res[0].Unknown)
}

func TestAddLineDuplicate(t *testing.T) {
	m := loadFresh(t)
	before := m.Stats()
	added, err := m.AddLine("kalem")
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.Equal(t, before.Items, m.Stats().Items)
	assert.Equal(t, before.Graph, m.Stats().Graph)
}

func TestAddLineMalformed(t *testing.T) {
	m := loadFresh(t)
	_, err := m.AddLine("masa [P:Noun")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestAddLineSuffixData(t *testing.T) {
	m := loadFresh(t)
	before := m.Stats()
	_, err := m.AddLine("masa [S:-Nope_X]")
	assert.ErrorIs(t, err, ErrUnknownSuffixForm)
	assert.Nil(t, m.Item("masa_Noun"))
	assert.Equal(t, before.Graph, m.Stats().Graph)

	_, err = m.AddLine("masa [S:-Dat_yA]")
	require.NoError(t, err)
	res := m.Analyze("masaya")
	require.Len(t, res, 1)
	assert.True(t, res[0].Unknown, "masaya = %v", res)
	assert.Contains(t, lexicals(m, "masada"), "masa+Noun+A3sg+Pnon+Loc")
}

func TestRemoveUnknownItem(t *testing.T) {
	m := loadFresh(t)
	assert.ErrorIs(t, m.RemoveItem("masa_Noun"), ErrUnknownItem)
}

func TestAddItemDuplicateLogs(t *testing.T) {
	var buf bytes.Buffer
	m := loadFresh(t, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	m.AddItem(m.Item("kalem_Noun"))
	assert.Contains(t, buf.String(), "kalem_Noun")
}

func TestDebugTrace(t *testing.T) {
	m := loadShared(t)
	var buf bytes.Buffer
	res := m.DebugTrace(&buf, "kitaba")
	require.NotEmpty(t, res)
	out := buf.String()
	assert.Contains(t, out, "Stems:")
	assert.Contains(t, out, "kitab ")
	assert.Contains(t, out, "ok ")
	assert.Contains(t, out, "failed")
}

func TestDump(t *testing.T) {
	m := loadShared(t)
	var buf bytes.Buffer
	m.Dump(&buf)
	out := buf.String()
	assert.Contains(t, out, "kitap_Noun")
	assert.Contains(t, out, "Dat_yA")
}

func TestLoadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dictionaries = []string{"nouns.dict"}
	m, err := Load(cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.NotNil(t, m.Item("kitap_Noun"))
	assert.Nil(t, m.Item("gelmek_Verb"))
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if strings.EqualFold(l, s) {
			return true
		}
	}
	return false
}
