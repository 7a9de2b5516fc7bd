package ports

import "github.com/r-leyton/linepatch/internal/domain"

// LineStore reads and writes whole files as line sequences.
type LineStore interface {
	ReadLines(path string) (domain.LineSequence, error)
	WriteLines(path string, seq domain.LineSequence) error
}
