package fsfile

import (
	"errors"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/r-leyton/linepatch/internal/domain"
	"github.com/r-leyton/linepatch/internal/ports"
)

const defaultMode fs.FileMode = 0o644

// Store reads and rewrites text files on the local filesystem. Writes
// truncate the target in place; there is no temp file and no backup.
type Store struct {
	allowNonUTF8 bool
}

type Option func(*Store)

// WithAllowNonUTF8 disables the UTF-8 check on read.
func WithAllowNonUTF8(enabled bool) Option {
	return func(s *Store) { s.allowNonUTF8 = enabled }
}

func NewStore(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.LineStore = (*Store)(nil)

func (s *Store) ReadLines(path string) (domain.LineSequence, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.LineSequence{}, classify("fsfile.read", path, err)
	}
	if info.IsDir() {
		return domain.LineSequence{}, &domain.OpError{
			Op:   "fsfile.read",
			Kind: domain.KindIOFailure,
			Path: path,
			Err:  errors.New("is a directory"),
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return domain.LineSequence{}, classify("fsfile.read", path, err)
	}

	if !s.allowNonUTF8 && !utf8.Valid(b) {
		return domain.LineSequence{}, &domain.OpError{
			Op:   "fsfile.decode",
			Kind: domain.KindInvalidEncoding,
			Path: path,
			Err:  domain.ErrInvalidEncoding,
		}
	}

	return domain.SplitLines(b), nil
}

// WriteLines replaces the content of path with seq, keeping the existing
// permission bits.
func (s *Store) WriteLines(path string, seq domain.LineSequence) error {
	mode := defaultMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(path, seq.Bytes(), mode); err != nil {
		return classify("fsfile.write", path, err)
	}
	return nil
}

func classify(op, path string, err error) error {
	kind := domain.KindIOFailure
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = domain.KindNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = domain.KindPermissionDenied
	}
	return &domain.OpError{Op: op, Kind: kind, Path: path, Err: err}
}
