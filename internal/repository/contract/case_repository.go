package contract

import (
	"context"

	"formflow-be/internal/entity"
)

type CaseRepository interface {
	// Get returns (nil, nil) when the case does not exist.
	Get(ctx context.Context, caseId string) (*entity.CaseRecord, error)
	Save(ctx context.Context, c *entity.CaseRecord) error
	Delete(ctx context.Context, caseId string) error
	ListByDomain(ctx context.Context, domain string) ([]*entity.CaseRecord, error)
	ListIndexesByDomain(ctx context.Context, domain string) ([]*entity.CaseIndex, error)
	// ReplaceIndexes swaps the outgoing indexes of a case atomically within the
	// surrounding transaction.
	ReplaceIndexes(ctx context.Context, caseId string, indexes []*entity.CaseIndex) error
	DeleteIndexesFor(ctx context.Context, caseId string) error
}
