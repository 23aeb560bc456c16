package casegraph

import (
	"context"
	"testing"

	"formflow-be/internal/entity"
	"formflow-be/internal/repository/contract"
	"formflow-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fakeCaseRepo struct {
	cases   map[string]*entity.CaseRecord
	indexes map[string][]*entity.CaseIndex
	deleted []string
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{
		cases:   make(map[string]*entity.CaseRecord),
		indexes: make(map[string][]*entity.CaseIndex),
	}
}

func (r *fakeCaseRepo) Get(ctx context.Context, caseId string) (*entity.CaseRecord, error) {
	return r.cases[caseId], nil
}

func (r *fakeCaseRepo) Save(ctx context.Context, c *entity.CaseRecord) error {
	r.cases[c.CaseId] = c
	return nil
}

func (r *fakeCaseRepo) Delete(ctx context.Context, caseId string) error {
	delete(r.cases, caseId)
	delete(r.indexes, caseId)
	r.deleted = append(r.deleted, caseId)
	return nil
}

func (r *fakeCaseRepo) ListByDomain(ctx context.Context, domain string) ([]*entity.CaseRecord, error) {
	out := make([]*entity.CaseRecord, 0, len(r.cases))
	for _, c := range r.cases {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCaseRepo) ListIndexesByDomain(ctx context.Context, domain string) ([]*entity.CaseIndex, error) {
	var out []*entity.CaseIndex
	for _, idxs := range r.indexes {
		out = append(out, idxs...)
	}
	return out, nil
}

func (r *fakeCaseRepo) ReplaceIndexes(ctx context.Context, caseId string, indexes []*entity.CaseIndex) error {
	r.indexes[caseId] = indexes
	return nil
}

func (r *fakeCaseRepo) DeleteIndexesFor(ctx context.Context, caseId string) error {
	delete(r.indexes, caseId)
	return nil
}

type caseOnlyUow struct {
	repo *fakeCaseRepo
}

func (u *caseOnlyUow) Begin(ctx context.Context) error                           { return nil }
func (u *caseOnlyUow) Commit() error                                             { return nil }
func (u *caseOnlyUow) Rollback() error                                           { return nil }
func (u *caseOnlyUow) FormSessionRepository() contract.FormSessionRepository     { return nil }
func (u *caseOnlyUow) MenuSessionRepository() contract.MenuSessionRepository     { return nil }
func (u *caseOnlyUow) CaseRepository() contract.CaseRepository                   { return u.repo }

var _ unitofwork.UnitOfWork = (*caseOnlyUow)(nil)

func TestProcessInstanceCreateUpdateClose(t *testing.T) {
	repo := newFakeCaseRepo()
	repo.cases["existing"] = &entity.CaseRecord{
		CaseId:     "existing",
		Domain:     "clinic",
		Properties: map[string]interface{}{"status": "open"},
	}
	uow := &caseOnlyUow{repo: repo}
	processor := NewProcessor(noopLogger{})

	instance := `
<data>
	<case case_id="new-case">
		<create>
			<case_type>patient</case_type>
			<case_name>Ada</case_name>
			<owner_id>owner-1</owner_id>
		</create>
		<update>
			<age>31</age>
		</update>
	</case>
	<case case_id="existing">
		<update>
			<status>followup</status>
		</update>
	</case>
</data>`

	result, err := processor.ProcessInstance(context.Background(), uow, "clinic", instance)

	assert.NoError(t, err)
	assert.False(t, result.DisruptedIndexes)

	created := repo.cases["new-case"]
	assert.NotNil(t, created)
	assert.Equal(t, "patient", created.CaseType)
	assert.Equal(t, "clinic", created.Domain)
	assert.Equal(t, "31", created.Properties["age"])
	assert.False(t, created.ServerModified.IsZero())

	assert.Equal(t, "followup", repo.cases["existing"].Properties["status"])
}

func TestProcessInstanceUnknownCase(t *testing.T) {
	uow := &caseOnlyUow{repo: newFakeCaseRepo()}
	processor := NewProcessor(noopLogger{})

	_, err := processor.ProcessInstance(context.Background(), uow, "clinic",
		`<data><case case_id="ghost"><update><status>x</status></update></case></data>`)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestProcessInstanceCloseDisruptsIndexes(t *testing.T) {
	repo := newFakeCaseRepo()
	repo.cases["c1"] = &entity.CaseRecord{CaseId: "c1", Domain: "clinic", Properties: map[string]interface{}{}}
	uow := &caseOnlyUow{repo: repo}
	processor := NewProcessor(noopLogger{})

	result, err := processor.ProcessInstance(context.Background(), uow, "clinic",
		`<data><case case_id="c1"><close/></case></data>`)

	assert.NoError(t, err)
	assert.True(t, result.DisruptedIndexes)
	assert.True(t, repo.cases["c1"].Closed)
}

func TestProcessInstanceIndexRewriteDisrupts(t *testing.T) {
	repo := newFakeCaseRepo()
	repo.cases["child"] = &entity.CaseRecord{CaseId: "child", Domain: "clinic", Properties: map[string]interface{}{}}
	repo.cases["parent"] = &entity.CaseRecord{CaseId: "parent", Domain: "clinic", Properties: map[string]interface{}{}}
	uow := &caseOnlyUow{repo: repo}
	processor := NewProcessor(noopLogger{})

	result, err := processor.ProcessInstance(context.Background(), uow, "clinic",
		`<data><case case_id="child"><index><parent>parent</parent></index></case></data>`)

	assert.NoError(t, err)
	assert.True(t, result.DisruptedIndexes)
	assert.Len(t, repo.indexes["child"], 1)
	assert.Equal(t, "parent", repo.indexes["child"][0].TargetId)
}

func TestProcessInstanceIndexOnFreshCreateDoesNotDisrupt(t *testing.T) {
	repo := newFakeCaseRepo()
	repo.cases["parent"] = &entity.CaseRecord{CaseId: "parent", Domain: "clinic", Properties: map[string]interface{}{}}
	uow := &caseOnlyUow{repo: repo}
	processor := NewProcessor(noopLogger{})

	instance := `
<data>
	<case case_id="child">
		<create>
			<case_type>visit</case_type>
			<case_name>v1</case_name>
			<owner_id>o1</owner_id>
		</create>
		<index>
			<parent>parent</parent>
		</index>
	</case>
</data>`

	result, err := processor.ProcessInstance(context.Background(), uow, "clinic", instance)

	assert.NoError(t, err)
	assert.False(t, result.DisruptedIndexes)
}

func TestProcessInstanceRejectsCycle(t *testing.T) {
	repo := newFakeCaseRepo()
	repo.cases["a"] = &entity.CaseRecord{CaseId: "a", Domain: "clinic", Properties: map[string]interface{}{}}
	repo.cases["b"] = &entity.CaseRecord{CaseId: "b", Domain: "clinic", Properties: map[string]interface{}{}}
	repo.indexes["b"] = []*entity.CaseIndex{{CaseId: "b", TargetId: "a", Identifier: "parent"}}
	uow := &caseOnlyUow{repo: repo}
	processor := NewProcessor(noopLogger{})

	_, err := processor.ProcessInstance(context.Background(), uow, "clinic",
		`<data><case case_id="a"><index><parent>b</parent></index></case></data>`)

	var cycleErr *CycleError
	assert.ErrorAs(t, err, &cycleErr)
	assert.ElementsMatch(t, []string{"a", "b"}, cycleErr.Path)
}

func TestPurgeOrphans(t *testing.T) {
	repo := newFakeCaseRepo()
	// open -> closedParent -> closedGrandparent chain stays; strandedClosed goes.
	repo.cases["open"] = &entity.CaseRecord{CaseId: "open", Domain: "clinic", Properties: map[string]interface{}{}}
	repo.cases["closedParent"] = &entity.CaseRecord{CaseId: "closedParent", Domain: "clinic", Closed: true, Properties: map[string]interface{}{}}
	repo.cases["closedGrandparent"] = &entity.CaseRecord{CaseId: "closedGrandparent", Domain: "clinic", Closed: true, Properties: map[string]interface{}{}}
	repo.cases["strandedClosed"] = &entity.CaseRecord{CaseId: "strandedClosed", Domain: "clinic", Closed: true, Properties: map[string]interface{}{}}
	repo.indexes["open"] = []*entity.CaseIndex{{CaseId: "open", TargetId: "closedParent", Identifier: "parent"}}
	repo.indexes["closedParent"] = []*entity.CaseIndex{{CaseId: "closedParent", TargetId: "closedGrandparent", Identifier: "parent"}}
	uow := &caseOnlyUow{repo: repo}
	processor := NewProcessor(noopLogger{})

	purged, err := processor.PurgeOrphans(context.Background(), uow, "clinic")

	assert.NoError(t, err)
	assert.Equal(t, 1, purged)
	assert.Equal(t, []string{"strandedClosed"}, repo.deleted)
	assert.Contains(t, repo.cases, "closedParent")
	assert.Contains(t, repo.cases, "closedGrandparent")
}

func TestPurgeOrphansNothingToDo(t *testing.T) {
	repo := newFakeCaseRepo()
	repo.cases["open"] = &entity.CaseRecord{CaseId: "open", Domain: "clinic", Properties: map[string]interface{}{}}
	uow := &caseOnlyUow{repo: repo}
	processor := NewProcessor(noopLogger{})

	purged, err := processor.PurgeOrphans(context.Background(), uow, "clinic")

	assert.NoError(t, err)
	assert.Equal(t, 0, purged)
}
