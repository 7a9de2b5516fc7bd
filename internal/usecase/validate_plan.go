package usecase

import (
	"context"
	"fmt"

	"github.com/r-leyton/linepatch/internal/domain"
	"github.com/r-leyton/linepatch/internal/ports"
)

type ValidatePlan struct {
	plans ports.PlanLoader
	store ports.LineStore
}

func NewValidatePlan(pl ports.PlanLoader, ls ports.LineStore) *ValidatePlan {
	return &ValidatePlan{plans: pl, store: ls}
}

// Execute checks that the plan parses and that its target exists and is long
// enough for every edit. It never writes.
func (uc *ValidatePlan) Execute(ctx context.Context, planPath string, root string) (domain.PatchPlan, error) {
	plan, err := uc.plans.LoadPlan(planPath)
	if err != nil {
		return domain.PatchPlan{}, err
	}
	if err := domain.ValidateEdits(plan.Edits); err != nil {
		return plan, fmt.Errorf("plan %q: %w", plan.Name, err)
	}

	if err := ctx.Err(); err != nil {
		return plan, err
	}

	target := ResolveTarget(root, plan.File)
	seq, err := uc.store.ReadLines(target)
	if err != nil {
		return plan, fmt.Errorf("plan %q: %w", plan.Name, err)
	}
	if err := domain.CheckRange(seq, plan.Edits); err != nil {
		return plan, fmt.Errorf("plan %q: %s: %w", plan.Name, target, err)
	}
	return plan, nil
}
