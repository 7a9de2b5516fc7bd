package historystore

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/r-leyton/linepatch/internal/domain"
	"github.com/r-leyton/linepatch/internal/ports"
)

const defaultRunsDir = "runs"

// JSONStore writes one JSON file per applied plan under <root>/<runs dir>.
type JSONStore struct {
	rootDir     string
	runsDirName string
	writeIndex  bool
	now         func() time.Time
	log         *slog.Logger
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: runs/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithLogger reports index failures, which do not fail SaveRecord.
func WithLogger(l *slog.Logger) Option {
	return func(s *JSONStore) {
		if l != nil {
			s.log = l
		}
	}
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	runsDir := cfg.Paths.RunsDir
	if strings.TrimSpace(runsDir) == "" {
		runsDir = defaultRunsDir
	}

	s := &JSONStore{
		rootDir:     root,
		runsDirName: runsDir,
		now:         time.Now,
		log:         slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.HistoryStore = (*JSONStore)(nil)

func (s *JSONStore) SaveRecord(rec domain.PatchRecord) (string, error) {
	dir := filepath.Join(s.rootDir, s.runsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "historystore.mkdir",
			Kind: domain.KindIOFailure,
			Path: dir,
			Err:  err,
		}
	}

	ts := rec.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := rec
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}

	namePart := rec.PlanName
	if strings.TrimSpace(namePart) == "" {
		namePart = filepath.Base(rec.Path)
	}
	slug := slugify(namePart)
	if slug == "" {
		slug = "patch"
	}

	id := uniqueID(dir, ts.Format("20060102T150405Z")+"_"+slug)
	filename := id + ".json"
	path := filepath.Join(dir, filename)

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "historystore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// History files are written tmp-then-rename; patched targets are not.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "historystore.write",
			Kind: domain.KindIOFailure,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "historystore.rename",
			Kind: domain.KindIOFailure,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		if err := s.appendIndex(dir, id, filename, toSave); err != nil {
			s.log.Warn("history.index_failed", "id", id, "dir", dir, "err", err)
		}
	}

	return id, nil
}

func (s *JSONStore) appendIndex(dir, id, filename string, rec domain.PatchRecord) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		Plan      string    `json:"plan"`
		Target    string    `json:"target"`
		Changed   bool      `json:"changed"`
		StartedAt time.Time `json:"started_at"`
	}
	line, err := json.Marshal(idx{
		ID:        id,
		File:      filename,
		Plan:      rec.PlanName,
		Target:    rec.Path,
		Changed:   rec.Changed,
		StartedAt: rec.StartedAt,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// uniqueID appends _2, _3, ... when a record with base already exists, so
// saves within the same second do not overwrite each other.
func uniqueID(dir, base string) string {
	id := base
	for n := 2; ; n++ {
		if _, err := os.Lstat(filepath.Join(dir, id+".json")); os.IsNotExist(err) {
			return id
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
