package ports

import "github.com/r-leyton/linepatch/internal/domain"

// HistoryStore persists a record of every applied plan.
type HistoryStore interface {
	SaveRecord(rec domain.PatchRecord) (id string, err error)
}
