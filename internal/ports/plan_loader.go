package ports

import "github.com/r-leyton/linepatch/internal/domain"

// PlanLoader loads patch plans from a source (e.g., filesystem).
type PlanLoader interface {
	LoadPlan(path string) (domain.PatchPlan, error)
	ListPlans(root string) ([]domain.PlanRef, error)
}
