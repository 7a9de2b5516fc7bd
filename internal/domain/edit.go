package domain

import (
	"fmt"
	"strings"
)

// LineEdit overwrites the line at a 0-based Index with Text.
type LineEdit struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// LineNumber is the 1-based position humans use.
func (e LineEdit) LineNumber() int { return e.Index + 1 }

// EditAtLine builds an edit from a 1-based line number.
func EditAtLine(line int, text string) LineEdit {
	return LineEdit{Index: line - 1, Text: text}
}

// Validate checks a single edit in isolation.
func (e LineEdit) Validate() error {
	if e.Index < 0 {
		return fmt.Errorf("line %d: line numbers start at 1: %w", e.LineNumber(), ErrInvalidEdit)
	}
	if strings.ContainsRune(TrimTerminator(e.Text), '\n') {
		return fmt.Errorf("line %d: replacement text spans more than one line: %w", e.LineNumber(), ErrInvalidEdit)
	}
	return nil
}

// ValidateEdits checks a batch: non-empty, each edit valid, no index twice.
func ValidateEdits(edits []LineEdit) error {
	if len(edits) == 0 {
		return &OpError{
			Op:   "domain.validate_edits",
			Kind: KindInvalidEdit,
			Err:  fmt.Errorf("no edits given: %w", ErrInvalidEdit),
		}
	}

	seen := make(map[int]bool, len(edits))
	for _, e := range edits {
		if err := e.Validate(); err != nil {
			return &OpError{Op: "domain.validate_edits", Kind: KindInvalidEdit, Err: err}
		}
		if seen[e.Index] {
			return &OpError{
				Op:   "domain.validate_edits",
				Kind: KindInvalidEdit,
				Err:  fmt.Errorf("line %d edited more than once: %w", e.LineNumber(), ErrInvalidEdit),
			}
		}
		seen[e.Index] = true
	}
	return nil
}

// MaxIndex returns the largest index in edits, or -1.
func MaxIndex(edits []LineEdit) int {
	m := -1
	for _, e := range edits {
		if e.Index > m {
			m = e.Index
		}
	}
	return m
}

// CheckRange fails with KindIndexOutOfRange when seq is too short for edits.
func CheckRange(seq LineSequence, edits []LineEdit) error {
	need := MaxIndex(edits) + 1
	if seq.Len() < need {
		return &OpError{
			Op:   "domain.check_range",
			Kind: KindIndexOutOfRange,
			Err:  fmt.Errorf("file has %d line(s), line %d requested: %w", seq.Len(), need, ErrIndexOutOfRange),
		}
	}
	return nil
}

// ReplacementFor returns the exact text stored for e over the existing line.
// Text already ending in a terminator is kept verbatim; otherwise the replaced
// line's terminator is appended so the line count never changes.
func ReplacementFor(existing string, e LineEdit) string {
	if Terminator(e.Text) != "" {
		return e.Text
	}
	return e.Text + Terminator(existing)
}

// ApplyEdits returns a patched copy of seq. seq itself is left untouched, and
// nothing is applied unless every edit is in range.
func ApplyEdits(seq LineSequence, edits []LineEdit) (LineSequence, []AppliedLine, error) {
	if err := ValidateEdits(edits); err != nil {
		return seq, nil, err
	}
	if err := CheckRange(seq, edits); err != nil {
		return seq, nil, err
	}

	out := seq.Clone()
	applied := make([]AppliedLine, 0, len(edits))
	for _, e := range edits {
		prev, _ := out.Line(e.Index)
		text := ReplacementFor(prev, e)
		out.Set(e.Index, text)
		applied = append(applied, AppliedLine{Index: e.Index, Previous: prev, Text: text})
	}
	return out, applied, nil
}
