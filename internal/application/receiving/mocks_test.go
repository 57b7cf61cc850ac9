package receiving

import (
	"context"

	"github.com/erp/backoffice/internal/domain/numbering"
	"github.com/erp/backoffice/internal/domain/purchase"
	"github.com/erp/backoffice/internal/domain/receiving"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockNoteRepository is a mock implementation of receiving.NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*receiving.ReceivingNote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receiving.ReceivingNote), args.Error(1)
}

func (m *MockNoteRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*receiving.ReceivingNote, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receiving.ReceivingNote), args.Error(1)
}

func (m *MockNoteRepository) Save(ctx context.Context, note *receiving.ReceivingNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) CurrentMaxNumber(ctx context.Context, scope shared.DocumentScope) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}

// MockStockMovementRepository is a mock implementation of receiving.StockMovementRepository
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Append(ctx context.Context, movements []receiving.StockMovement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockStockMovementRepository) FindByDocument(ctx context.Context, documentType string, documentID uuid.UUID) ([]receiving.StockMovement, error) {
	args := m.Called(ctx, documentType, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]receiving.StockMovement), args.Error(1)
}

// MockOrderRepository is a mock implementation of purchase.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.PurchaseOrder), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*purchase.PurchaseOrder, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.PurchaseOrder), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *purchase.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CurrentMaxNumber(ctx context.Context, scope shared.DocumentScope) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}

// MockLineRepository is a mock implementation of purchase.LineRepository
type MockLineRepository struct {
	mock.Mock
}

func (m *MockLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.PurchaseOrderLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.PurchaseOrderLine), args.Error(1)
}

func (m *MockLineRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]purchase.PurchaseOrderLine, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]purchase.PurchaseOrderLine), args.Error(1)
}

func (m *MockLineRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]purchase.PurchaseOrderLine, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]purchase.PurchaseOrderLine), args.Error(1)
}

func (m *MockLineRepository) Save(ctx context.Context, line *purchase.PurchaseOrderLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLineRepository) SumSubTotals(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLineRepository) SumTaxAmounts(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLineRepository) SumQuantityByRequisitionLine(ctx context.Context, requisitionLineID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, requisitionLineID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLineRepository) ReplaceTaxes(ctx context.Context, lineID uuid.UUID, taxes []purchase.PurchaseOrderLineTax) error {
	args := m.Called(ctx, lineID, taxes)
	return args.Error(0)
}

// MockSettingsResolver is a mock implementation of numbering.SettingsResolver
type MockSettingsResolver struct {
	mock.Mock
}

func (m *MockSettingsResolver) Resolve(ctx context.Context, scope numbering.Scope) (numbering.Settings, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(numbering.Settings), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
