package turkmorph

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordAnalyzer(t *testing.T) {
	g, _ := testGraph(t, graphLines...)
	a := NewWordAnalyzer(g)

	tests := []struct {
		word string
		want []string
	}{
		{"kalemler", []string{"kalem+Noun+A3pl+Pnon+Nom"}},
		{"hakkı", []string{"hak+Noun+A3sg+Pnon+Acc", "hak+Noun+A3sg+P3sg+Nom"}},
		{"saatler", []string{"saat+Noun+A3pl+Pnon+Nom"}},
		{"gelmiyor", []string{"gelmek+Verb+Neg+Prog+A3sg"}},
		{"gelmez", []string{"gelmek+Verb+Neg+Aor+A3sg"}},
		{"başlar", []string{"başlamak+Verb+Pos+Aor+A3sg"}},
		{"benim", []string{"ben+Pron,Pers+A1sg+Pnon+Gen"}},
	}
	for _, tt := range tests {
		got := lexicalsOf(a.Analyze(tt.word))
		for _, w := range tt.want {
			if !contains(got, w) {
				t.Errorf("Analyze(%q) = %q, want it to contain %q", tt.word, got, w)
			}
		}
	}
}

func TestWordAnalyzerRejects(t *testing.T) {
	g, _ := testGraph(t, graphLines...)
	a := NewWordAnalyzer(g)
	for _, w := range []string{"", "saatlar", "başlayor", "hakı", "ağz", "ban", "kalemlar"} {
		assert.Empty(t, a.Analyze(w), "Analyze(%q)", w)
	}
}

func TestWordAnalyzerKeepsStemSurface(t *testing.T) {
	g, _ := testGraph(t, "kitap")
	a := NewWordAnalyzer(g)
	res := a.Analyze("kitabı")
	require.NotEmpty(t, res)
	for _, r := range res {
		assert.Equal(t, "kitab", r.Stem)
		assert.Equal(t, "kitap", r.Lemma())
		assert.Equal(t, "kitabı", r.Surface())
	}
}

func TestRepeatsPrunesCycles(t *testing.T) {
	g, _ := testGraph(t, "kalem")
	a := NewWordAnalyzer(g)
	s := g.StemsOf("kalem_Noun")[0]
	root := g.node(s.root)
	require.NotEmpty(t, root.successors)
	i := root.successors[0]
	form := g.node(i).Form

	assert.False(t, a.repeats(pathToken{history: []int{i, i}}, form))
	assert.True(t, a.repeats(pathToken{history: []int{i, i, i}}, form))
}

func TestAnalysisFormatting(t *testing.T) {
	g, _ := testGraph(t, "kitap")
	res := NewWordAnalyzer(g).Analyze("kitaplara")
	require.Len(t, res, 1)
	a := res[0]
	assert.Equal(t, "[kitap:Noun] kitap + A3pl:lar + Pnon + Dat:a", a.String())
	assert.Equal(t, "kitap+Noun+A3pl+Pnon+Dat", a.FormatLexical())
	assert.Equal(t, "lara", a.Ending())
	assert.Equal(t, PosNoun, a.Pos())

	data, err := json.Marshal(a)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "kitaplara", got["input"])
	assert.Equal(t, "kitap", got["lemma"])
	assert.Equal(t, "kitap_Noun", got["item_id"])
	assert.Equal(t, "Noun", got["pos"])
	assert.Equal(t, "kitap+Noun+A3pl+Pnon+Dat", got["lexical"])
	assert.Len(t, got["morphemes"], 3)
}

func TestDerivedPos(t *testing.T) {
	g, _ := testGraph(t, "kitap")
	res := NewWordAnalyzer(g).Analyze("kitapçık")
	require.NotEmpty(t, res)
	found := false
	for _, a := range res {
		if a.FormatLexical() == "kitap+Noun+A3sg+Pnon+Nom^DB+Noun+Dim+A3sg+Pnon+Nom" {
			found = true
			assert.Equal(t, PosNoun, a.Pos())
		}
	}
	assert.True(t, found, "analyses: %v", lexicalsOf(res))

	res = NewWordAnalyzer(g).Analyze("kitapsız")
	require.NotEmpty(t, res)
	assert.Equal(t, PosAdjective, res[0].Pos())
}

func TestDebugTraceReportsPaths(t *testing.T) {
	g, _ := testGraph(t, "kitap")
	var buf bytes.Buffer
	res := NewWordAnalyzer(g).DebugTrace(&buf, "kitapa")
	assert.Empty(t, res)
	assert.Contains(t, buf.String(), "Input: kitapa")
	assert.Contains(t, buf.String(), "failed")
	assert.NotContains(t, buf.String(), "ok ")
}
