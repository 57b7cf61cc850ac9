package purchase

import (
	"context"

	"github.com/erp/backoffice/internal/domain/numbering"
	"github.com/erp/backoffice/internal/domain/purchase"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

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

// MockRequisitionLineRepository is a mock implementation of purchase.RequisitionLineRepository
type MockRequisitionLineRepository struct {
	mock.Mock
}

func (m *MockRequisitionLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.RequisitionLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.RequisitionLine), args.Error(1)
}

func (m *MockRequisitionLineRepository) Save(ctx context.Context, line *purchase.RequisitionLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

// MockCostPriceResolver is a mock implementation of purchase.CostPriceResolver
type MockCostPriceResolver struct {
	mock.Mock
}

func (m *MockCostPriceResolver) AssignedCostPrice(ctx context.Context, productID, supplierID uuid.UUID) (*decimal.Decimal, error) {
	args := m.Called(ctx, productID, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*decimal.Decimal), args.Error(1)
}

// MockTaxRateSource is a mock implementation of purchase.TaxRateSource
type MockTaxRateSource struct {
	mock.Mock
}

func (m *MockTaxRateSource) RatesForProduct(ctx context.Context, productID uuid.UUID) ([]purchase.TaxRate, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]purchase.TaxRate), args.Error(1)
}

// MockSettingsResolver is a mock implementation of numbering.SettingsResolver
type MockSettingsResolver struct {
	mock.Mock
}

func (m *MockSettingsResolver) Resolve(ctx context.Context, scope numbering.Scope) (numbering.Settings, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(numbering.Settings), args.Error(1)
}
