package usecase

import (
	"errors"

	"github.com/r-leyton/linepatch/internal/domain"
)

type memStore struct {
	files    map[string][]byte
	reads    int
	writes   int
	writeErr error
}

func newMemStore(files map[string]string) *memStore {
	m := &memStore{files: map[string][]byte{}}
	for k, v := range files {
		m.files[k] = []byte(v)
	}
	return m
}

func (m *memStore) ReadLines(path string) (domain.LineSequence, error) {
	m.reads++
	b, ok := m.files[path]
	if !ok {
		return domain.LineSequence{}, &domain.OpError{Op: "mem.read", Kind: domain.KindNotFound, Path: path, Err: domain.ErrNotFound}
	}
	return domain.SplitLines(b), nil
}

func (m *memStore) WriteLines(path string, seq domain.LineSequence) error {
	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[path] = seq.Bytes()
	return nil
}

type fakePlanLoader struct {
	plan domain.PatchPlan
	err  error
}

func (f fakePlanLoader) LoadPlan(string) (domain.PatchPlan, error) {
	if f.err != nil {
		return domain.PatchPlan{}, f.err
	}
	return f.plan, nil
}

func (f fakePlanLoader) ListPlans(string) ([]domain.PlanRef, error) {
	return nil, errors.New("not implemented")
}

type fakeHistory struct {
	saved []domain.PatchRecord
	err   error
}

func (f *fakeHistory) SaveRecord(rec domain.PatchRecord) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, rec)
	return "rec-1", nil
}

type fakeInitializer struct {
	got   domain.WorkspaceSpec
	force bool
	err   error
}

func (f *fakeInitializer) Init(spec domain.WorkspaceSpec, force bool) error {
	f.got = spec
	f.force = force
	return f.err
}
