package purchase

import (
	"context"

	"github.com/erp/backoffice/internal/domain/purchase"
)

// TransactionScope provides transactional access to the purchase repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. The line cascade relies on this: a line change and every
// derived recomputation it triggers (line taxes, header totals, requisition
// aggregates) land in one transaction or not at all.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the purchase repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the purchase order repository scoped to the current transaction
	OrderRepo() purchase.OrderRepository
	// LineRepo returns the purchase order line repository scoped to the current transaction
	LineRepo() purchase.LineRepository
	// RequisitionLineRepo returns the requisition line repository scoped to the current transaction
	RequisitionLineRepo() purchase.RequisitionLineRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing with mock repositories.
type NoOpTransactionScope struct {
	orderRepo           purchase.OrderRepository
	lineRepo            purchase.LineRepository
	requisitionLineRepo purchase.RequisitionLineRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo purchase.OrderRepository,
	lineRepo purchase.LineRepository,
	requisitionLineRepo purchase.RequisitionLineRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:           orderRepo,
		lineRepo:            lineRepo,
		requisitionLineRepo: requisitionLineRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the purchase order repository.
func (s *NoOpTransactionScope) OrderRepo() purchase.OrderRepository {
	return s.orderRepo
}

// LineRepo returns the purchase order line repository.
func (s *NoOpTransactionScope) LineRepo() purchase.LineRepository {
	return s.lineRepo
}

// RequisitionLineRepo returns the requisition line repository.
func (s *NoOpTransactionScope) RequisitionLineRepo() purchase.RequisitionLineRepository {
	return s.requisitionLineRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
