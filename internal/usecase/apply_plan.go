package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/r-leyton/linepatch/internal/domain"
	"github.com/r-leyton/linepatch/internal/ports"
)

// ApplyPlan loads a plan, patches its target and records the outcome.
type ApplyPlan struct {
	plans   ports.PlanLoader
	store   ports.LineStore
	history ports.HistoryStore // nil disables history
	dryRun  bool
	log     *slog.Logger
	now     func() time.Time
}

type ApplyOption func(*ApplyPlan)

func WithPlanDryRun(enabled bool) ApplyOption {
	return func(uc *ApplyPlan) { uc.dryRun = enabled }
}

func WithPlanLogger(l *slog.Logger) ApplyOption {
	return func(uc *ApplyPlan) {
		if l != nil {
			uc.log = l
		}
	}
}

func WithClock(now func() time.Time) ApplyOption {
	return func(uc *ApplyPlan) { uc.now = now }
}

func NewApplyPlan(pl ports.PlanLoader, ls ports.LineStore, hs ports.HistoryStore, opts ...ApplyOption) *ApplyPlan {
	uc := &ApplyPlan{
		plans:   pl,
		store:   ls,
		history: hs,
		log:     discardLogger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute applies the plan at planPath. Relative target paths resolve
// against root. The record id is empty when nothing was saved. A history
// failure is returned together with the (already written) result.
func (uc *ApplyPlan) Execute(ctx context.Context, planPath string, root string) (domain.PatchResult, string, error) {
	plan, err := uc.plans.LoadPlan(planPath)
	if err != nil {
		return domain.PatchResult{}, "", err
	}

	target := ResolveTarget(root, plan.File)
	started := uc.now()

	patcher := NewPatchFile(uc.store, WithDryRun(uc.dryRun), WithLogger(uc.log))
	res, err := patcher.Execute(ctx, target, plan.Edits)
	if err != nil {
		return domain.PatchResult{}, "", fmt.Errorf("plan %q: %w", plan.Name, err)
	}

	if uc.dryRun || uc.history == nil {
		return res, "", nil
	}

	id, err := uc.history.SaveRecord(domain.PatchRecord{
		PlanName:  plan.Name,
		PlanPath:  planPath,
		Path:      target,
		LineCount: res.LineCount,
		Edits:     plan.Edits,
		Changed:   res.Changed,
		StartedAt: started,
		EndedAt:   uc.now(),
	})
	if err != nil {
		uc.log.Error("history.save_failed", "plan", plan.Name, "err", err)
		return res, "", err
	}

	uc.log.Info("history.saved", "plan", plan.Name, "id", id)
	return res, id, nil
}

// ResolveTarget joins a relative plan target onto root.
func ResolveTarget(root, file string) string {
	if filepath.IsAbs(file) || root == "" {
		return filepath.Clean(file)
	}
	return filepath.Join(root, file)
}
