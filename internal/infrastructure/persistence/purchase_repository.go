package persistence

import (
	"context"
	"errors"

	"github.com/erp/backoffice/internal/domain/purchase"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements purchase.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds a purchase order by its ID with lines and taxes preloaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.PurchaseOrder, error) {
	var order purchase.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines.Taxes").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForOrganization finds a purchase order by ID within an organization
func (r *GormOrderRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*purchase.PurchaseOrder, error) {
	var order purchase.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines.Taxes").
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Save creates or updates a purchase order header. Lines are persisted through
// their own repository; a number collision surfaces as a concurrency conflict
// so the sequencer can retry.
func (r *GormOrderRepository) Save(ctx context.Context, order *purchase.PurchaseOrder) error {
	if err := r.db.WithContext(ctx).Omit("Lines").Save(order).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrConcurrencyConflict
		}
		return err
	}
	return nil
}

// CurrentMaxNumber returns the highest document number in the scope, counting
// soft-deleted orders. Deleted documents keep their numbers reserved so a
// number is never reissued.
func (r *GormOrderRepository) CurrentMaxNumber(ctx context.Context, scope shared.DocumentScope) (int64, error) {
	query := r.db.WithContext(ctx).Unscoped().
		Model(&purchase.PurchaseOrder{}).
		Where("organization_id = ?", scope.OrganizationID)
	if scope.CompanyID != nil {
		query = query.Where("company_id = ?", *scope.CompanyID)
	} else {
		query = query.Where("company_id IS NULL")
	}

	var max int64
	if err := query.Select("COALESCE(MAX(number), 0)").Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

// GormLineRepository implements purchase.LineRepository using GORM
type GormLineRepository struct {
	db *gorm.DB
}

// NewGormLineRepository creates a new GormLineRepository
func NewGormLineRepository(db *gorm.DB) *GormLineRepository {
	return &GormLineRepository{db: db}
}

// FindByID finds a line by its ID with taxes preloaded
func (r *GormLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.PurchaseOrderLine, error) {
	var line purchase.PurchaseOrderLine
	if err := r.db.WithContext(ctx).
		Preload("Taxes").
		First(&line, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// FindByOrder returns the committed lines of an order
func (r *GormLineRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]purchase.PurchaseOrderLine, error) {
	var lines []purchase.PurchaseOrderLine
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// FindByIDsForUpdate loads lines by ID with FOR UPDATE row locks. Must run
// inside a transaction; the locks are held until it ends.
func (r *GormLineRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]purchase.PurchaseOrderLine, error) {
	var lines []purchase.PurchaseOrderLine
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// Save creates or updates a line. Tax rows are managed by ReplaceTaxes, not
// through association saves.
func (r *GormLineRepository) Save(ctx context.Context, line *purchase.PurchaseOrderLine) error {
	return r.db.WithContext(ctx).Omit("Taxes").Save(line).Error
}

// Delete soft-deletes a line
func (r *GormLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&purchase.PurchaseOrderLine{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumSubTotals aggregates the sub-totals of an order's committed lines
func (r *GormLineRepository) SumSubTotals(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	return r.sumColumn(ctx, "sub_total", "order_id = ?", orderID)
}

// SumTaxAmounts aggregates the tax amounts of an order's committed lines
func (r *GormLineRepository) SumTaxAmounts(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	return r.sumColumn(ctx, "tax_amount", "order_id = ?", orderID)
}

// SumQuantityByRequisitionLine aggregates the ordered quantity of the
// committed lines referencing a requisition line
func (r *GormLineRepository) SumQuantityByRequisitionLine(ctx context.Context, requisitionLineID uuid.UUID) (decimal.Decimal, error) {
	return r.sumColumn(ctx, "quantity", "requisition_line_id = ?", requisitionLineID)
}

func (r *GormLineRepository) sumColumn(ctx context.Context, column string, condition string, arg interface{}) (decimal.Decimal, error) {
	var raw decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&purchase.PurchaseOrderLine{}).
		Where(condition, arg).
		Select("SUM(" + column + ")").
		Scan(&raw).Error; err != nil {
		return decimal.Zero, err
	}
	if !raw.Valid {
		return decimal.Zero, nil
	}
	return raw.Decimal, nil
}

// ReplaceTaxes deletes a line's tax breakdown rows and inserts the new set.
// The breakdown is always recreated wholesale, never patched.
func (r *GormLineRepository) ReplaceTaxes(ctx context.Context, lineID uuid.UUID, taxes []purchase.PurchaseOrderLineTax) error {
	if err := r.db.WithContext(ctx).
		Where("line_id = ?", lineID).
		Delete(&purchase.PurchaseOrderLineTax{}).Error; err != nil {
		return err
	}
	if len(taxes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&taxes).Error
}

// GormRequisitionLineRepository implements purchase.RequisitionLineRepository using GORM
type GormRequisitionLineRepository struct {
	db *gorm.DB
}

// NewGormRequisitionLineRepository creates a new GormRequisitionLineRepository
func NewGormRequisitionLineRepository(db *gorm.DB) *GormRequisitionLineRepository {
	return &GormRequisitionLineRepository{db: db}
}

// FindByID finds a requisition line by its ID
func (r *GormRequisitionLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.RequisitionLine, error) {
	var line purchase.RequisitionLine
	if err := r.db.WithContext(ctx).First(&line, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// Save creates or updates a requisition line
func (r *GormRequisitionLineRepository) Save(ctx context.Context, line *purchase.RequisitionLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

// Interface compliance checks
var _ purchase.OrderRepository = (*GormOrderRepository)(nil)
var _ purchase.LineRepository = (*GormLineRepository)(nil)
var _ purchase.RequisitionLineRepository = (*GormRequisitionLineRepository)(nil)
