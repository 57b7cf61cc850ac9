package persistence

import (
	"context"

	appreceiving "github.com/erp/backoffice/internal/application/receiving"
	"github.com/erp/backoffice/internal/domain/purchase"
	"github.com/erp/backoffice/internal/domain/receiving"
	"gorm.io/gorm"
)

// GormReceivingTransactionScope implements the receiving transaction scope
// using GORM transactions
type GormReceivingTransactionScope struct {
	db *gorm.DB
}

// NewGormReceivingTransactionScope creates a new GormReceivingTransactionScope
func NewGormReceivingTransactionScope(db *gorm.DB) *GormReceivingTransactionScope {
	return &GormReceivingTransactionScope{db: db}
}

// Execute runs the function within a database transaction. All repositories
// passed to fn share that transaction; FOR UPDATE locks taken through them
// are held until it ends.
func (s *GormReceivingTransactionScope) Execute(ctx context.Context, fn func(repos appreceiving.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&receivingTransactionalRepositories{tx: tx})
	})
}

// receivingTransactionalRepositories provides repositories bound to a single transaction
type receivingTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *receivingTransactionalRepositories) NoteRepo() receiving.NoteRepository {
	return NewGormNoteRepository(r.tx)
}

func (r *receivingTransactionalRepositories) MovementRepo() receiving.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

func (r *receivingTransactionalRepositories) OrderRepo() purchase.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *receivingTransactionalRepositories) OrderLineRepo() purchase.LineRepository {
	return NewGormLineRepository(r.tx)
}

var _ appreceiving.TransactionScope = (*GormReceivingTransactionScope)(nil)
var _ appreceiving.TransactionalRepositories = (*receivingTransactionalRepositories)(nil)
