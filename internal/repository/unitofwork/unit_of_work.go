package unitofwork

import (
	"context"

	"formflow-be/internal/repository/contract"
)

// UnitOfWork owns the manual transaction boundary for record processing.
// Repositories obtained from it run inside the active transaction once Begin
// has been called, and directly against the pool otherwise.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	FormSessionRepository() contract.FormSessionRepository
	MenuSessionRepository() contract.MenuSessionRepository
	CaseRepository() contract.CaseRepository
}
