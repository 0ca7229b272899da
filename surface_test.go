package turkmorph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustForm(t *testing.T, c *Catalog, id string) *SuffixForm {
	t.Helper()
	f, ok := c.FormByID(id)
	require.True(t, ok, "form %s", id)
	return f
}

func attrsOf(s string) PhoneticAttrs {
	return stemAttributes([]rune(s))
}

func TestStemAttributes(t *testing.T) {
	a := attrsOf("kitap")
	assert.True(t, a.Has(LastVowelBack|LastVowelUnrounded|LastLetterConsonant))
	assert.True(t, a.Has(LastLetterVoiceless|LastLetterVoicelessStop))
	assert.False(t, a.Has(FirstLetterConsonant))

	a = attrsOf("göz")
	assert.True(t, a.Has(LastVowelFrontal|LastVowelRounded|LastLetterNotVoiceless))

	a = attrsOf("kale")
	assert.True(t, a.Has(LastLetterVowel|LastVowelFrontal))

	assert.Equal(t, HasNoVowel|LastLetterConsonant|LastLetterNotVoiceless, attrsOf("tbm"))
	assert.Equal(t, PhoneticAttrs(0), attrsOf(""))
}

func TestAttributesAfter(t *testing.T) {
	kitap := attrsOf("kitap")
	assert.Equal(t, kitap, AttributesAfter("", kitap))

	a := AttributesAfter("ler", attrsOf("kalem"))
	assert.True(t, a.Has(FirstLetterConsonant|LastLetterConsonant|LastVowelFrontal))

	// A vowelless suffix keeps the predecessor's harmony.
	a = AttributesAfter("m", attrsOf("kapı"))
	assert.True(t, a.Has(LastVowelBack|LastVowelUnrounded|HasNoVowel))
	assert.False(t, a.Has(LastLetterVowel))
}

func TestGenerateSurfaces(t *testing.T) {
	c := NewTurkishCatalog()
	tests := []struct {
		stem string
		form string
		want string
	}{
		{"kalem", "A3pl_lAr", "ler"},
		{"kitap", "A3pl_lAr", "lar"},
		{"kitap", "Equ_cA", "ça"},
		{"kitap", "Loc_dA", "ta"},
		{"kalem", "Loc_dA", "de"},
		{"kale", "Dat_yA", "ye"},
		{"kalem", "Dat_yA", "e"},
		{"göz", "Acc_yI", "ü"},
		{"kol", "Gen_nIn", "un"},
		{"başla", "Aor_Ir", "r"},
		{"gel", "Prog_Iyor", "iyor"},
		{"kale", "P3sg_sI", "si"},
		{"kalem", "P3sg_sI", "i"},
	}
	for _, tt := range tests {
		got := generateSurfaces(attrsOf(tt.stem), 0, nil, mustForm(t, c, tt.form))
		if assert.Len(t, got, 1, "%s + %s", tt.stem, tt.form) {
			assert.Equal(t, tt.want, got[0].surface, "%s + %s", tt.stem, tt.form)
		}
	}
}

func TestGenerateSurfacesVoiceLast(t *testing.T) {
	c := NewTurkishCatalog()
	got := generateSurfaces(attrsOf("kitap"), 0, nil, mustForm(t, c, "Dim_cIk"))
	require.Len(t, got, 2)
	assert.Equal(t, "çık", got[0].surface)
	assert.Equal(t, ConsonantStart, got[0].expectations)
	assert.Equal(t, Terminal, got[0].termination)
	assert.Equal(t, "çığ", got[1].surface)
	assert.Equal(t, VowelStart, got[1].expectations)
	assert.Equal(t, NonTerminal, got[1].termination)
}

func TestGenerateSurfacesZeroLength(t *testing.T) {
	c := NewTurkishCatalog()
	kitap := attrsOf("kitap")
	got := generateSurfaces(kitap, VowelStart, nil, mustForm(t, c, "Noun_Default"))
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].surface)
	assert.Equal(t, kitap, got[0].attrs)
	assert.Equal(t, VowelStart, got[0].expectations)
}

func TestGenerateSurfacesUnrealizable(t *testing.T) {
	c := NewTurkishCatalog()
	assert.Nil(t, generateSurfaces(attrsOf("kale"), 0, nil, mustForm(t, c, "P3pl_I")))
}

func TestGenerateSurfacesPanicsWithoutHarmony(t *testing.T) {
	c := NewTurkishCatalog()
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(*PhoneticStateError)
		require.True(t, ok, "panic value %T", r)
		assert.Equal(t, "Dat_yA", err.Form)
	}()
	generateSurfaces(0, 0, nil, mustForm(t, c, "Dat_yA"))
}
