package turkmorph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	m := loadShared(t)
	tests := []struct {
		item     string
		suffixes []string
		want     []string
	}{
		{"kitap_Noun", []string{"A3pl", "Dat"}, []string{"kitaplara"}},
		{"kitap_Noun", []string{"A3sg", "Pnon", "Dat"}, []string{"kitaba"}},
		{"kitap_Noun", []string{"Dat"}, []string{"kitaba"}},
		{"kitap_Noun", []string{"Loc"}, []string{"kitapta"}},
		{"kalem_Noun", []string{"A3sg", "Pnon", "Nom"}, []string{"kalem"}},
		{"kale_Noun", []string{"Dat_yA"}, []string{"kaleye"}},
		{"gelmek_Verb", []string{"Pos", "Prog", "A1sg"}, []string{"geliyorum"}},
		{"gitmek_Verb", []string{"Pos", "Fut", "A3sg"}, []string{"gidecek"}},
	}
	for _, tt := range tests {
		got, err := m.Generate(tt.item, tt.suffixes...)
		require.NoError(t, err)
		if !assert.Equal(t, tt.want, got) {
			t.Errorf("Generate(%q, %q) = %q, want %q", tt.item, tt.suffixes, got, tt.want)
		}
	}
}

func TestGenerateAnalyzeInverse(t *testing.T) {
	m := loadShared(t)
	words, err := m.Generate("armut_Noun", "A3pl", "P1sg", "Abl")
	require.NoError(t, err)
	require.NotEmpty(t, words)
	for _, w := range words {
		assert.Contains(t, lexicals(m, w), "armut+Noun+A3pl+P1sg+Abl")
	}
}

func TestGenerateUnrealizable(t *testing.T) {
	m := loadShared(t)
	got, err := m.Generate("kitap_Noun", "Prog")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGenerateUnknownItem(t *testing.T) {
	m := loadShared(t)
	_, err := m.Generate("masa_Noun", "Dat")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestInflectionTableNoun(t *testing.T) {
	m := loadShared(t)
	table, err := m.InflectionTable("kalem_Noun")
	require.NoError(t, err)
	assert.Equal(t, "kalem_Noun", table.Item.ID)
	assert.Equal(t, []string{"kalem"}, table.Cells["A3sg+Nom"])
	assert.Equal(t, []string{"kaleme"}, table.Cells["A3sg+Dat"])
	assert.Equal(t, []string{"kalemler"}, table.Cells["A3pl+Nom"])
	assert.Equal(t, []string{"kalemlerde"}, table.Cells["A3pl+Loc"])
}

func TestInflectionTableAdjective(t *testing.T) {
	m := loadShared(t)
	table, err := m.InflectionTable("güzel_Adj")
	require.NoError(t, err)
	assert.Equal(t, []string{"güzele"}, table.Cells["A3sg+Dat"])
}

func TestInflectionTableVerb(t *testing.T) {
	m := loadShared(t)
	table, err := m.InflectionTable("gelmek_Verb")
	require.NoError(t, err)
	assert.Equal(t, []string{"geliyorum"}, table.Cells["Prog+A1sg"])
	assert.Equal(t, []string{"gelirim"}, table.Cells["Aor+A1sg"])
	assert.Equal(t, []string{"geldim"}, table.Cells["Past+A1sg"])
}

func TestInflectionTableErrors(t *testing.T) {
	m := loadShared(t)
	_, err := m.InflectionTable("masa_Noun")
	assert.ErrorIs(t, err, ErrUnknownItem)

	_, err = m.InflectionTable("ve_Conj")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownItem)
}
