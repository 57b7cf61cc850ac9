package purchase

import (
	"context"

	appnumbering "github.com/erp/backoffice/internal/application/numbering"
	"github.com/erp/backoffice/internal/domain/numbering"
	"github.com/erp/backoffice/internal/domain/purchase"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService handles purchase order business operations. Every line
// mutation runs the consistency cascade inside the same transaction as the
// triggering write: the line's derived fields, its tax breakdown, the header
// aggregates and any referenced requisition line are never durably out of
// sync with each other.
type OrderService struct {
	txScope                     TransactionScope
	orderRepo                   purchase.OrderRepository
	sequencer                   *appnumbering.Sequencer
	costResolver                purchase.CostPriceResolver
	taxSource                   purchase.TaxRateSource
	restrictToAssignedSuppliers bool
	eventPublisher              shared.EventPublisher
	logger                      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	txScope TransactionScope,
	orderRepo purchase.OrderRepository,
	sequencer *appnumbering.Sequencer,
	costResolver purchase.CostPriceResolver,
	taxSource purchase.TaxRateSource,
	restrictToAssignedSuppliers bool,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		txScope:                     txScope,
		orderRepo:                   orderRepo,
		sequencer:                   sequencer,
		costResolver:                costResolver,
		taxSource:                   taxSource,
		restrictToAssignedSuppliers: restrictToAssignedSuppliers,
		logger:                      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateOrder creates a purchase order with its lines. The document number is
// allocated inside the same transaction that persists the order; when two
// creations in the same scope race for a number, the losing transaction is
// retried wholesale with a fresh maximum.
func (s *OrderService) CreateOrder(ctx context.Context, organizationID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	docScope := shared.NewDocumentScope(organizationID)
	if req.CompanyID != nil {
		docScope = shared.NewCompanyScope(organizationID, *req.CompanyID)
	}

	order, err := purchase.NewPurchaseOrder(docScope, req.SupplierID, req.Date)
	if err != nil {
		return nil, err
	}
	if err := order.SetDiscount(req.DiscountMethod, req.DiscountRate); err != nil {
		return nil, err
	}
	if err := order.SetCharge(req.ChargeMethod, req.ChargeRate); err != nil {
		return nil, err
	}

	numScope, err := numbering.NewScope(numbering.DocumentTypePurchaseOrder, docScope)
	if err != nil {
		return nil, err
	}

	_, err = s.sequencer.Allocate(ctx, numScope,
		func(ctx context.Context) (int64, error) {
			return s.orderRepo.CurrentMaxNumber(ctx, docScope)
		},
		func(allocation appnumbering.Allocation) error {
			order.AssignNumber(allocation.Number, allocation.Prefix)
			order.Lines = nil
			return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
				if err := repos.OrderRepo().Save(ctx, order); err != nil {
					return err
				}
				for _, lineReq := range req.Lines {
					if _, err := s.createLine(ctx, repos, order, lineReq); err != nil {
						return err
					}
				}
				return s.syncOrder(ctx, repos, order, nil)
			})
		},
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase order created",
		zap.String("order_id", order.ID.String()),
		zap.String("document_number", order.DocumentNumber()),
		zap.Int("lines", len(order.Lines)))

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, purchase.NewPurchaseOrderCreatedEvent(order))
	}

	return ToOrderResponse(order), nil
}

// GetOrder retrieves a purchase order with its lines
func (s *OrderService) GetOrder(ctx context.Context, organizationID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForOrganization(ctx, organizationID, orderID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// UpdateAdjustments changes the header-level discount and additional charge
// and re-derives the header's financial fields
func (s *OrderService) UpdateAdjustments(ctx context.Context, organizationID, orderID uuid.UUID, req UpdateAdjustmentsRequest) (*OrderResponse, error) {
	var order *purchase.PurchaseOrder
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDForOrganization(ctx, organizationID, orderID)
		if err != nil {
			return err
		}
		if err := order.SetDiscount(req.DiscountMethod, req.DiscountRate); err != nil {
			return err
		}
		if err := order.SetCharge(req.ChargeMethod, req.ChargeRate); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// AddLine adds a line to an existing order and runs the cascade
func (s *OrderService) AddLine(ctx context.Context, organizationID, orderID uuid.UUID, req CreateLineRequest) (*LineResponse, error) {
	var line *purchase.PurchaseOrderLine
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByIDForOrganization(ctx, organizationID, orderID)
		if err != nil {
			return err
		}
		line, err = s.createLine(ctx, repos, order, req)
		if err != nil {
			return err
		}
		return s.syncOrder(ctx, repos, order, line.RequisitionLineID)
	})
	if err != nil {
		return nil, err
	}
	return ToLineResponse(line), nil
}

// UpdateLine updates a line's stored inputs and runs the cascade. The tax
// breakdown is recreated only when an input that feeds it actually changed.
func (s *OrderService) UpdateLine(ctx context.Context, organizationID, orderID, lineID uuid.UUID, req UpdateLineRequest) (*LineResponse, error) {
	var line *purchase.PurchaseOrderLine
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByIDForOrganization(ctx, organizationID, orderID)
		if err != nil {
			return err
		}
		line, err = repos.LineRepo().FindByID(ctx, lineID)
		if err != nil {
			return err
		}
		if line.OrderID != order.ID {
			return shared.ErrNotFound
		}

		before := *line
		if req.Quantity != nil {
			if !req.Quantity.IsPositive() {
				return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
			}
			line.Quantity = *req.Quantity
		}
		if req.Cost != nil {
			cost, err := s.resolveCost(ctx, line.ProductID, order.SupplierID, *req.Cost)
			if err != nil {
				return err
			}
			if cost.IsNegative() {
				return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
			}
			line.Cost = cost
		}
		if req.DiscountMethod != nil || req.DiscountRate != nil {
			method := line.DiscountMethod
			if req.DiscountMethod != nil {
				method = req.DiscountMethod
			}
			rate := line.DiscountRate
			if req.DiscountRate != nil {
				rate = req.DiscountRate
			}
			if err := line.SetDiscount(method, rate); err != nil {
				return err
			}
		}
		line.Recalculate()

		if !line.SameFinancialInputs(&before) {
			if err := s.rebuildLineTaxes(ctx, repos, line); err != nil {
				return err
			}
		}
		if err := repos.LineRepo().Save(ctx, line); err != nil {
			return err
		}
		return s.syncOrder(ctx, repos, order, line.RequisitionLineID)
	})
	if err != nil {
		return nil, err
	}
	return ToLineResponse(line), nil
}

// RemoveLine soft-deletes a line and runs the cascade over the survivors
func (s *OrderService) RemoveLine(ctx context.Context, organizationID, orderID, lineID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByIDForOrganization(ctx, organizationID, orderID)
		if err != nil {
			return err
		}
		line, err := repos.LineRepo().FindByID(ctx, lineID)
		if err != nil {
			return err
		}
		if line.OrderID != order.ID {
			return shared.ErrNotFound
		}
		if err := repos.LineRepo().Delete(ctx, lineID); err != nil {
			return err
		}
		return s.syncOrder(ctx, repos, order, line.RequisitionLineID)
	})
}

// createLine builds a line from the request, normalizing the cost against the
// supplier's assigned price when the catalog is restricted, builds its tax
// breakdown and persists both.
func (s *OrderService) createLine(ctx context.Context, repos TransactionalRepositories, order *purchase.PurchaseOrder, req CreateLineRequest) (*purchase.PurchaseOrderLine, error) {
	cost, err := s.resolveCost(ctx, req.ProductID, order.SupplierID, req.Cost)
	if err != nil {
		return nil, err
	}

	line, err := purchase.NewPurchaseOrderLine(order.ID, req.ProductID, req.ProductName, req.Quantity, cost)
	if err != nil {
		return nil, err
	}
	if err := line.SetDiscount(req.DiscountMethod, req.DiscountRate); err != nil {
		return nil, err
	}
	line.RequisitionLineID = req.RequisitionLineID

	// The line row has to exist before its tax rows reference it.
	if err := repos.LineRepo().Save(ctx, line); err != nil {
		return nil, err
	}
	if err := s.rebuildLineTaxes(ctx, repos, line); err != nil {
		return nil, err
	}
	if err := repos.LineRepo().Save(ctx, line); err != nil {
		return nil, err
	}
	order.Lines = append(order.Lines, *line)
	return line, nil
}

// resolveCost normalizes a line cost. When purchasing is restricted to
// assigned suppliers and the supplier has an assigned price for the product,
// that price wins over whatever the caller sent.
func (s *OrderService) resolveCost(ctx context.Context, productID, supplierID uuid.UUID, requested decimal.Decimal) (decimal.Decimal, error) {
	if !s.restrictToAssignedSuppliers || s.costResolver == nil {
		return requested, nil
	}
	assigned, err := s.costResolver.AssignedCostPrice(ctx, productID, supplierID)
	if err != nil {
		return decimal.Zero, err
	}
	if assigned == nil {
		return requested, nil
	}
	return *assigned, nil
}

// rebuildLineTaxes recreates the line's tax breakdown from the catalog rates
// and replaces the persisted rows wholesale.
func (s *OrderService) rebuildLineTaxes(ctx context.Context, repos TransactionalRepositories, line *purchase.PurchaseOrderLine) error {
	if s.taxSource == nil {
		return nil
	}
	rates, err := s.taxSource.RatesForProduct(ctx, line.ProductID)
	if err != nil {
		return err
	}
	taxes := line.RebuildTaxes(rates)
	return repos.LineRepo().ReplaceTaxes(ctx, line.ID, taxes)
}

// syncOrder re-derives the header aggregates from the committed lines and,
// when a requisition line is involved, its purchased-quantity aggregate.
// Runs inside the same transaction as the triggering line write.
func (s *OrderService) syncOrder(ctx context.Context, repos TransactionalRepositories, order *purchase.PurchaseOrder, requisitionLineID *uuid.UUID) error {
	subTotal, err := repos.LineRepo().SumSubTotals(ctx, order.ID)
	if err != nil {
		return err
	}
	taxTotal, err := repos.LineRepo().SumTaxAmounts(ctx, order.ID)
	if err != nil {
		return err
	}
	order.ApplyFinancials(subTotal)
	order.SetTaxTotal(taxTotal)
	if err := repos.OrderRepo().Save(ctx, order); err != nil {
		return err
	}

	if requisitionLineID == nil {
		return nil
	}
	purchased, err := repos.LineRepo().SumQuantityByRequisitionLine(ctx, *requisitionLineID)
	if err != nil {
		return err
	}
	reqLine, err := repos.RequisitionLineRepo().FindByID(ctx, *requisitionLineID)
	if err != nil {
		return err
	}
	reqLine.SetPurchasedQuantity(purchased)
	return repos.RequisitionLineRepo().Save(ctx, reqLine)
}
