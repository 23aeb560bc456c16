// Package casegraph applies the structured-record mutation extracted from a
// submitted instance: case creates, updates, closes and index rewrites, plus
// the acyclicity check over the resulting index graph.
package casegraph

import (
	"context"
	"fmt"
	"strings"
	"time"

	"formflow-be/internal/entity"
	"formflow-be/internal/pkg/logger"
	"formflow-be/internal/repository/unitofwork"
)

// CycleError rejects a mutation that would create a cyclic case relationship.
// Permanent for this payload; retrying the identical submission cannot succeed.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("case index graph contains a cycle: %s", strings.Join(e.Path, " -> "))
}

// Result reports what the mutation did beyond succeeding.
type Result struct {
	// DisruptedIndexes is set when the mutation closed cases or rewrote index
	// edges, which may have orphaned derived records.
	DisruptedIndexes bool
}

type IProcessor interface {
	// ProcessInstance applies every case transaction in the instance through
	// the unit of work's repositories. The caller owns the transaction: Begin
	// before, Commit/Rollback after.
	ProcessInstance(ctx context.Context, uow unitofwork.UnitOfWork, domain, instanceXml string) (*Result, error)
	// PurgeOrphans removes closed cases no longer referenced by any open
	// case's index and returns the number removed.
	PurgeOrphans(ctx context.Context, uow unitofwork.UnitOfWork, domain string) (int, error)
}

type Processor struct {
	logger logger.ILogger
}

func NewProcessor(logger logger.ILogger) IProcessor {
	return &Processor{logger: logger}
}

func (p *Processor) ProcessInstance(ctx context.Context, uow unitofwork.UnitOfWork, domain, instanceXml string) (*Result, error) {
	transactions, err := ParseTransactions(instanceXml)
	if err != nil {
		return nil, err
	}

	caseRepo := uow.CaseRepository()
	result := &Result{}

	for _, tx := range transactions {
		record, err := caseRepo.Get(ctx, tx.CaseId)
		if err != nil {
			return nil, err
		}

		if tx.Create != nil {
			record = &entity.CaseRecord{
				CaseId:     tx.CaseId,
				Domain:     domain,
				CaseType:   tx.Create.CaseType,
				Name:       tx.Create.CaseName,
				OwnerId:    tx.Create.OwnerId,
				Properties: make(map[string]interface{}),
			}
		} else if record == nil {
			return nil, fmt.Errorf("transaction references unknown case %s", tx.CaseId)
		}

		for field, value := range tx.Update {
			record.Properties[field] = value
		}
		if tx.Close {
			record.Closed = true
			result.DisruptedIndexes = true
		}
		record.ServerModified = time.Now()

		if err := caseRepo.Save(ctx, record); err != nil {
			return nil, err
		}

		if tx.HasIndexBlock {
			indexes := make([]*entity.CaseIndex, 0, len(tx.Indexes))
			for _, spec := range tx.Indexes {
				indexes = append(indexes, &entity.CaseIndex{
					CaseId:       tx.CaseId,
					Domain:       domain,
					Identifier:   spec.Identifier,
					TargetId:     spec.TargetId,
					Relationship: spec.Relationship,
				})
			}
			if err := caseRepo.ReplaceIndexes(ctx, tx.CaseId, indexes); err != nil {
				return nil, err
			}
			// Rewriting edges on a pre-existing case may strand records that
			// were only reachable through the old edges.
			if tx.Create == nil {
				result.DisruptedIndexes = true
			}
		}
	}

	indexes, err := caseRepo.ListIndexesByDomain(ctx, domain)
	if err != nil {
		return nil, err
	}
	edges := make(map[string][]string)
	for _, idx := range indexes {
		edges[idx.CaseId] = append(edges[idx.CaseId], idx.TargetId)
	}
	if cycle := FindCycle(edges); cycle != nil {
		return nil, &CycleError{Path: cycle}
	}

	return result, nil
}

func (p *Processor) PurgeOrphans(ctx context.Context, uow unitofwork.UnitOfWork, domain string) (int, error) {
	caseRepo := uow.CaseRepository()

	cases, err := caseRepo.ListByDomain(ctx, domain)
	if err != nil {
		return 0, err
	}
	indexes, err := caseRepo.ListIndexesByDomain(ctx, domain)
	if err != nil {
		return 0, err
	}

	open := make(map[string]bool)
	for _, c := range cases {
		if !c.Closed {
			open[c.CaseId] = true
		}
	}

	// A closed case survives only while an open case still indexes it,
	// directly or through other referenced closed cases.
	referenced := make(map[string]bool)
	edges := make(map[string][]string)
	for _, idx := range indexes {
		edges[idx.CaseId] = append(edges[idx.CaseId], idx.TargetId)
	}
	var mark func(caseId string)
	mark = func(caseId string) {
		for _, target := range edges[caseId] {
			if !referenced[target] {
				referenced[target] = true
				mark(target)
			}
		}
	}
	for caseId := range open {
		mark(caseId)
	}

	purged := 0
	for _, c := range cases {
		if c.Closed && !referenced[c.CaseId] {
			if err := caseRepo.Delete(ctx, c.CaseId); err != nil {
				return purged, err
			}
			purged++
		}
	}

	if purged > 0 {
		p.logger.Info("casegraph", "purged orphaned cases", map[string]interface{}{
			"domain": domain,
			"count":  purged,
		})
	}
	return purged, nil
}
