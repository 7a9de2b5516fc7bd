package domain

import (
	"bytes"
	"strings"
)

// LineSequence is the ordered list of lines of a text file. Every line keeps
// its trailing terminator ("\n" or "\r\n") when the source had one, so
// Bytes() reproduces the input exactly.
type LineSequence struct {
	lines []string
}

// SplitLines splits b after every "\n". A final line without terminator is
// kept as-is; empty input yields an empty sequence.
func SplitLines(b []byte) LineSequence {
	if len(b) == 0 {
		return LineSequence{lines: []string{}}
	}

	out := make([]string, 0, bytes.Count(b, []byte{'\n'})+1)
	rest := b
	for len(rest) > 0 {
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			out = append(out, string(rest))
			break
		}
		out = append(out, string(rest[:i+1]))
		rest = rest[i+1:]
	}
	return LineSequence{lines: out}
}

// NewLineSequence builds a sequence from already-terminated lines.
func NewLineSequence(lines ...string) LineSequence {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return LineSequence{lines: cp}
}

func (s LineSequence) Len() int { return len(s.lines) }

// Line returns the line at a 0-based index, terminator included.
func (s LineSequence) Line(i int) (string, bool) {
	if i < 0 || i >= len(s.lines) {
		return "", false
	}
	return s.lines[i], true
}

// Lines returns a copy of the underlying lines.
func (s LineSequence) Lines() []string {
	cp := make([]string, len(s.lines))
	copy(cp, s.lines)
	return cp
}

// Set overwrites the line at a 0-based index. It reports false when the index
// is outside the sequence.
func (s LineSequence) Set(i int, text string) bool {
	if i < 0 || i >= len(s.lines) {
		return false
	}
	s.lines[i] = text
	return true
}

// Clone returns an independent copy.
func (s LineSequence) Clone() LineSequence {
	return NewLineSequence(s.lines...)
}

func (s LineSequence) Bytes() []byte {
	var buf bytes.Buffer
	for _, l := range s.lines {
		buf.WriteString(l)
	}
	return buf.Bytes()
}

// Terminator returns the line terminator at the end of line, or "".
func Terminator(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	default:
		return ""
	}
}

// TrimTerminator strips a single trailing terminator.
func TrimTerminator(line string) string {
	return strings.TrimSuffix(line, Terminator(line))
}
