package turkmorph

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	paths, err := DictionaryFiles(dataDir)
	require.NoError(t, err)
	lex, err := LoadDictionary(quietLogger(), paths...)
	require.NoError(t, err)

	// Runtime items are never written.
	require.NoError(t, lex.Add(NewItem("Zonguldak", "zonguldak", "zonguldak", PosNoun, SecProperNoun, Runtime)))

	path := filepath.Join(t.TempDir(), "lexicon.snap")
	require.NoError(t, SaveSnapshot(path, lex))
	got, err := LoadSnapshot(path)
	require.NoError(t, err)

	assert.Equal(t, lex.Len()-1, got.Len())
	assert.Nil(t, got.ItemByID("Zonguldak_Noun_Prop_rt"))
	for _, it := range got.Items() {
		want := lex.ItemByID(it.ID)
		require.NotNil(t, want, it.ID)
		assert.Equal(t, want.String(), it.String())
		assert.Equal(t, want.Root, it.Root)
	}

	dummy := got.ItemByID("zeytinyağ_Noun_Dummy")
	require.NotNil(t, dummy)
	assert.Same(t, got.ItemByID("zeytinyağı_Noun"), dummy.Ref)
}

func TestSnapshotLoadsMorphology(t *testing.T) {
	m := loadShared(t)
	path := filepath.Join(t.TempDir(), "lexicon.snap")
	var buf bytes.Buffer
	require.NoError(t, m.WriteSnapshot(&buf))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	cfg := DefaultConfig()
	cfg.Snapshot = path
	fromSnap, err := Load(cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, m.Stats().Items, fromSnap.Stats().Items)
	assert.Equal(t, m.Stats().Graph, fromSnap.Stats().Graph)
	for _, w := range []string{"kitaplara", "zeytinyağına", "diyor", "bana"} {
		assert.Equal(t, lexicals(m, w), lexicals(fromSnap, w), w)
	}
}

func TestSnapshotRejectsBadInput(t *testing.T) {
	lex, err := ParseLines("kalem", "kitap")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, lex))
	good := buf.Bytes()

	_, err = decodeSnapshot(good)
	require.NoError(t, err)

	badMagic := append([]byte(nil), good...)
	copy(badMagic, "XXXX")

	badVersion := append([]byte(nil), good...)
	binary.LittleEndian.PutUint32(badVersion[4:], snapshotVersion+1)

	badCount := append([]byte(nil), good...)
	binary.LittleEndian.PutUint32(badCount[8:], 7)

	tests := map[string][]byte{
		"empty":     nil,
		"header":    good[:10],
		"truncated": good[:len(good)-5],
		"magic":     badMagic,
		"version":   badVersion,
		"count":     badCount,
	}
	for name, data := range tests {
		_, err := decodeSnapshot(data)
		assert.ErrorIs(t, err, ErrBadSnapshot, name)
	}
}

func TestSnapshotKeepsSuffixData(t *testing.T) {
	lex, err := ParseLines("masa [S:-Dat_yA,+Dim_cIk]", "kendi [RootSuffix:Noun_Comp_P3sg]")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, lex))
	got, err := decodeSnapshot(buf.Bytes())
	require.NoError(t, err)

	masa := got.ItemByID("masa_Noun")
	require.NotNil(t, masa)
	assert.Equal(t, lex.ItemByID("masa_Noun").Exclusive, masa.Exclusive)
	assert.Equal(t, "Noun_Comp_P3sg", got.ItemByID("kendi_Noun").RootSuffix)
}

func TestLoadSnapshotMissing(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.snap"))
	assert.Error(t, err)
}
