package turkmorph

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateItem is returned when an item with the same id is already
	// part of the lexicon.
	ErrDuplicateItem = errors.New("turkmorph: duplicate dictionary item")
	// ErrUnknownItem is returned when an item id cannot be resolved.
	ErrUnknownItem = errors.New("turkmorph: unknown dictionary item")
	// ErrMalformedLine is returned for dictionary lines that cannot be parsed.
	ErrMalformedLine = errors.New("turkmorph: malformed dictionary line")
	// ErrBadSnapshot is returned when a lexicon snapshot fails validation.
	ErrBadSnapshot = errors.New("turkmorph: bad lexicon snapshot")
	// ErrUnknownSuffixForm is returned when a suffix form id is not in the catalog.
	ErrUnknownSuffixForm = errors.New("turkmorph: unknown suffix form")
)

// LineError reports a dictionary parse failure at a given line.
type LineError struct {
	File string
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("%s:%d %q: %v", e.File, e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// PhoneticStateError is raised (as a panic value) when a suffix pattern
// needs a harmony decision the incoming phonetic state cannot make. It
// always points at a broken catalog entry, never at user input.
type PhoneticStateError struct {
	Form  string
	Attrs PhoneticAttrs
}

func (e *PhoneticStateError) Error() string {
	return fmt.Sprintf("turkmorph: cannot resolve vowel of %s from state %s", e.Form, e.Attrs)
}
