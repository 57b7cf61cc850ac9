package receiving

import (
	"context"

	"github.com/erp/backoffice/internal/domain/purchase"
	"github.com/erp/backoffice/internal/domain/receiving"
)

// TransactionScope provides transactional access to the receiving
// repositories. Completion spans two aggregates (the note and the purchase
// order it draws down) plus the movement ledger; everything commits or rolls
// back as one unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories the receiving
// workflow touches, all sharing one underlying database transaction.
type TransactionalRepositories interface {
	// NoteRepo returns the receiving note repository scoped to the current transaction
	NoteRepo() receiving.NoteRepository
	// MovementRepo returns the stock movement repository scoped to the current transaction
	MovementRepo() receiving.StockMovementRepository
	// OrderRepo returns the purchase order repository scoped to the current transaction
	OrderRepo() purchase.OrderRepository
	// OrderLineRepo returns the purchase order line repository scoped to the current transaction
	OrderLineRepo() purchase.LineRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing with mock repositories.
type NoOpTransactionScope struct {
	noteRepo      receiving.NoteRepository
	movementRepo  receiving.StockMovementRepository
	orderRepo     purchase.OrderRepository
	orderLineRepo purchase.LineRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	noteRepo receiving.NoteRepository,
	movementRepo receiving.StockMovementRepository,
	orderRepo purchase.OrderRepository,
	orderLineRepo purchase.LineRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		noteRepo:      noteRepo,
		movementRepo:  movementRepo,
		orderRepo:     orderRepo,
		orderLineRepo: orderLineRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// NoteRepo returns the receiving note repository.
func (s *NoOpTransactionScope) NoteRepo() receiving.NoteRepository {
	return s.noteRepo
}

// MovementRepo returns the stock movement repository.
func (s *NoOpTransactionScope) MovementRepo() receiving.StockMovementRepository {
	return s.movementRepo
}

// OrderRepo returns the purchase order repository.
func (s *NoOpTransactionScope) OrderRepo() purchase.OrderRepository {
	return s.orderRepo
}

// OrderLineRepo returns the purchase order line repository.
func (s *NoOpTransactionScope) OrderLineRepo() purchase.LineRepository {
	return s.orderLineRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
