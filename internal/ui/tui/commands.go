package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/r-leyton/linepatch/internal/domain"
	"github.com/r-leyton/linepatch/internal/usecase"
)

func cmdLoadPlans(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if deps.Plans == nil {
			return plansLoadedMsg{err: errors.New("PlanLoader is nil")}
		}
		refs, err := deps.Plans.ListPlans(deps.Root)
		return plansLoadedMsg{refs: refs, err: err}
	}
}

func cmdPreviewPlan(deps Deps, ref domain.PlanRef) tea.Cmd {
	return func() tea.Msg {
		uc := usecase.NewApplyPlan(deps.Plans, deps.Store, nil,
			usecase.WithPlanDryRun(true),
			usecase.WithPlanLogger(deps.Logger),
		)
		res, _, err := uc.Execute(context.Background(), ref.Path, deps.Root)
		if err != nil {
			return previewReadyMsg{ref: ref, err: err}
		}
		return previewReadyMsg{ref: ref, preview: PreviewFromResult(ref.Name, res)}
	}
}

func cmdApplyPlan(deps Deps, ref domain.PlanRef) tea.Cmd {
	return func() tea.Msg {
		uc := usecase.NewApplyPlan(deps.Plans, deps.Store, deps.History,
			usecase.WithPlanLogger(deps.Logger),
		)
		res, id, err := uc.Execute(context.Background(), ref.Path, deps.Root)
		return applyDoneMsg{ref: ref, res: res, id: id, err: err}
	}
}
