package unitofwork

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// newClosedDB hands out a GORM handle over an already-closed connection pool,
// so transaction begins fail deterministically without a database.
func newClosedDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("pgx", "postgres://127.0.0.1:1/unreachable")
	assert.NoError(t, err)
	assert.NoError(t, sqlDB.Close())

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
	assert.NoError(t, err)
	return gormDB
}

func TestBeginFailureHoldsNoTransaction(t *testing.T) {
	uow := NewUnitOfWork(newClosedDB(t))

	err := uow.Begin(context.Background())
	assert.Error(t, err)

	// The failed begin must not leave a dead handle behind: rollback reports
	// no transaction and a fresh begin is not refused as already started.
	rbErr := uow.Rollback()
	assert.Error(t, rbErr)
	assert.Contains(t, rbErr.Error(), "no transaction")

	err = uow.Begin(context.Background())
	assert.Error(t, err)
	assert.NotContains(t, err.Error(), "already started")
}

func TestCommitWithoutBegin(t *testing.T) {
	uow := NewUnitOfWork(newClosedDB(t))

	assert.Error(t, uow.Commit())
}
