package persistence

import (
	"context"

	apppurchase "github.com/erp/backoffice/internal/application/purchase"
	"github.com/erp/backoffice/internal/domain/purchase"
	"gorm.io/gorm"
)

// GormPurchaseTransactionScope implements the purchase transaction scope
// using GORM transactions
type GormPurchaseTransactionScope struct {
	db *gorm.DB
}

// NewGormPurchaseTransactionScope creates a new GormPurchaseTransactionScope
func NewGormPurchaseTransactionScope(db *gorm.DB) *GormPurchaseTransactionScope {
	return &GormPurchaseTransactionScope{db: db}
}

// Execute runs the function within a database transaction. All repositories
// passed to fn share that transaction.
func (s *GormPurchaseTransactionScope) Execute(ctx context.Context, fn func(repos apppurchase.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&purchaseTransactionalRepositories{tx: tx})
	})
}

// purchaseTransactionalRepositories provides repositories bound to a single transaction
type purchaseTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *purchaseTransactionalRepositories) OrderRepo() purchase.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *purchaseTransactionalRepositories) LineRepo() purchase.LineRepository {
	return NewGormLineRepository(r.tx)
}

func (r *purchaseTransactionalRepositories) RequisitionLineRepo() purchase.RequisitionLineRepository {
	return NewGormRequisitionLineRepository(r.tx)
}

var _ apppurchase.TransactionScope = (*GormPurchaseTransactionScope)(nil)
var _ apppurchase.TransactionalRepositories = (*purchaseTransactionalRepositories)(nil)
