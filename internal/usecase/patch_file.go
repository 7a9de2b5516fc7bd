package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/r-leyton/linepatch/internal/domain"
	"github.com/r-leyton/linepatch/internal/ports"
)

// PatchFile overwrites fixed line positions of one file and writes the
// whole file back.
type PatchFile struct {
	store  ports.LineStore
	dryRun bool
	log    *slog.Logger
}

type PatchOption func(*PatchFile)

// WithDryRun computes the result without writing the file.
func WithDryRun(enabled bool) PatchOption {
	return func(uc *PatchFile) { uc.dryRun = enabled }
}

func WithLogger(l *slog.Logger) PatchOption {
	return func(uc *PatchFile) {
		if l != nil {
			uc.log = l
		}
	}
}

func NewPatchFile(store ports.LineStore, opts ...PatchOption) *PatchFile {
	uc := &PatchFile{
		store: store,
		log:   discardLogger(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute reads path, applies edits and writes the file back. Nothing is
// written unless every edit is valid and in range.
func (uc *PatchFile) Execute(ctx context.Context, path string, edits []domain.LineEdit) (domain.PatchResult, error) {
	if err := domain.ValidateEdits(edits); err != nil {
		return domain.PatchResult{}, err
	}

	seq, err := uc.store.ReadLines(path)
	if err != nil {
		return domain.PatchResult{}, err
	}
	uc.log.Debug("patch.read", "path", path, "lines", seq.Len())

	patched, applied, err := domain.ApplyEdits(seq, edits)
	if err != nil {
		var oe *domain.OpError
		if errors.As(err, &oe) && oe.Path == "" {
			oe.Path = path
		}
		uc.log.Warn("patch.rejected", "path", path, "lines", seq.Len(), "err", err)
		return domain.PatchResult{}, err
	}

	res := domain.PatchResult{
		Path:      path,
		LineCount: patched.Len(),
		Applied:   applied,
		DryRun:    uc.dryRun,
		Changed:   domain.AnyChanged(applied),
	}

	if uc.dryRun {
		uc.log.Info("patch.dry_run", "path", path, "edits", len(edits), "changed", res.Changed)
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return domain.PatchResult{}, err
	}

	if err := uc.store.WriteLines(path, patched); err != nil {
		uc.log.Error("patch.write_failed", "path", path, "err", err)
		return domain.PatchResult{}, err
	}

	uc.log.Info("patch.applied", "path", path, "edits", len(edits), "changed", res.Changed)
	return res, nil
}

// PatchPair is the two-line form: indexA/indexB are 0-based.
func (uc *PatchFile) PatchPair(ctx context.Context, path string, indexA, indexB int, textA, textB string) (domain.PatchResult, error) {
	return uc.Execute(ctx, path, []domain.LineEdit{
		{Index: indexA, Text: textA},
		{Index: indexB, Text: textB},
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
