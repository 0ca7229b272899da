package turkmorph

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

const (
	snapshotMagic   = "TMLX"
	snapshotVersion = 2
)

// snapshotHeader starts every snapshot file, little endian.
type snapshotHeader struct {
	Magic         [4]byte
	Version       uint32
	Items         uint32
	PayloadLength int64
}

// itemRecord is the stored form of a DictionaryItem. Ref holds the id of
// the referenced item.
type itemRecord struct {
	ID            string
	Lemma         string
	Root          string
	Pronunciation string
	Pos           uint8
	SecondaryPos  uint8
	Attrs         uint32
	Index         int
	Ref           string
	Exclusive     *ExclusiveSuffixData
	RootSuffix    string
}

// WriteSnapshot writes the items of lex in the binary snapshot format: a
// fixed header followed by a gzip compressed gob payload.
func WriteSnapshot(w io.Writer, lex *RootLexicon) error {
	items := lex.Items()
	records := make([]itemRecord, 0, len(items))
	for _, it := range items {
		if it.HasAttr(Runtime) {
			continue
		}
		rec := itemRecord{
			ID:            it.ID,
			Lemma:         it.Lemma,
			Root:          it.Root,
			Pronunciation: it.Pronunciation,
			Pos:           uint8(it.Pos),
			SecondaryPos:  uint8(it.SecondaryPos),
			Attrs:         uint32(it.Attrs),
			Index:         it.Index,
			Exclusive:     it.Exclusive,
			RootSuffix:    it.RootSuffix,
		}
		if it.Ref != nil {
			rec.Ref = it.Ref.ID
		}
		records = append(records, rec)
	}

	var payload bytes.Buffer
	zw := gzip.NewWriter(&payload)
	if err := gob.NewEncoder(zw).Encode(records); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}

	h := snapshotHeader{
		Version:       snapshotVersion,
		Items:         uint32(len(records)),
		PayloadLength: int64(payload.Len()),
	}
	copy(h.Magic[:], snapshotMagic)
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}
	if _, err := w.Write(payload.Bytes()); err != nil {
		return fmt.Errorf("write snapshot payload: %w", err)
	}
	return nil
}

// SaveSnapshot writes a snapshot of lex to path.
func SaveSnapshot(path string, lex *RootLexicon) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSnapshot(f, lex); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadSnapshot maps the snapshot file at path and rebuilds its lexicon.
func LoadSnapshot(path string) (*RootLexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	// Decoding copies everything out of the mapping.
	defer m.Unmap()
	return decodeSnapshot(m)
}

func decodeSnapshot(data []byte) (*RootLexicon, error) {
	var h snapshotHeader
	size := binary.Size(h)
	if len(data) < size {
		return nil, fmt.Errorf("%w: file too small for header", ErrBadSnapshot)
	}
	if err := binary.Read(bytes.NewReader(data[:size]), binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if string(h.Magic[:]) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadSnapshot, h.Magic[:])
	}
	if h.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, h.Version)
	}
	if h.PayloadLength < 0 || int64(len(data)-size) < h.PayloadLength {
		return nil, fmt.Errorf("%w: truncated payload", ErrBadSnapshot)
	}

	zr, err := gzip.NewReader(bytes.NewReader(data[size : int64(size)+h.PayloadLength]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	defer zr.Close()
	var records []itemRecord
	if err := gob.NewDecoder(zr).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if len(records) != int(h.Items) {
		return nil, fmt.Errorf("%w: header says %d items, payload has %d", ErrBadSnapshot, h.Items, len(records))
	}

	lex := NewRootLexicon()
	items := make([]*DictionaryItem, len(records))
	for i, r := range records {
		items[i] = &DictionaryItem{
			ID:            r.ID,
			Lemma:         r.Lemma,
			Root:          r.Root,
			Pronunciation: r.Pronunciation,
			Pos:           PrimaryPos(r.Pos),
			SecondaryPos:  SecondaryPos(r.SecondaryPos),
			Attrs:         RootAttrs(r.Attrs),
			Index:         r.Index,
			Exclusive:     r.Exclusive,
			RootSuffix:    r.RootSuffix,
		}
		if err := lex.Add(items[i]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
		}
	}
	for i, r := range records {
		if r.Ref == "" {
			continue
		}
		ref := lex.ItemByID(r.Ref)
		if ref == nil {
			return nil, fmt.Errorf("%w: %s refers to unknown item %s", ErrBadSnapshot, r.ID, r.Ref)
		}
		items[i].Ref = ref
	}
	return lex, nil
}
