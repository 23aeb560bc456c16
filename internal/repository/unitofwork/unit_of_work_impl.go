package unitofwork

import (
	"context"
	"fmt"

	"formflow-be/internal/repository/contract"
	"formflow-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // The active transaction, nil outside Begin/Commit|Rollback
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	if err := u.tx.Error; err != nil {
		u.tx = nil
		return err
	}
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) FormSessionRepository() contract.FormSessionRepository {
	return implementation.NewFormSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MenuSessionRepository() contract.MenuSessionRepository {
	return implementation.NewMenuSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CaseRepository() contract.CaseRepository {
	return implementation.NewCaseRepository(u.getDB())
}
