package purchase

import (
	"time"

	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/purchase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents a request to create a purchase order
type CreateOrderRequest struct {
	CompanyID      *uuid.UUID                 `json:"company_id"`
	SupplierID     uuid.UUID                  `json:"supplier_id" binding:"required"`
	Date           time.Time                  `json:"date" binding:"required"`
	DiscountMethod *finance.CalculationMethod `json:"discount_method"`
	DiscountRate   *decimal.Decimal           `json:"discount_rate"`
	ChargeMethod   *finance.CalculationMethod `json:"charge_method"`
	ChargeRate     *decimal.Decimal           `json:"charge_rate"`
	Lines          []CreateLineRequest        `json:"lines"`
}

// CreateLineRequest represents a line item in a create or add-line request
type CreateLineRequest struct {
	ProductID         uuid.UUID                  `json:"product_id" binding:"required"`
	ProductName       string                     `json:"product_name" binding:"required,min=1,max=200"`
	Quantity          decimal.Decimal            `json:"quantity" binding:"required"`
	Cost              decimal.Decimal            `json:"cost"`
	DiscountMethod    *finance.CalculationMethod `json:"discount_method"`
	DiscountRate      *decimal.Decimal           `json:"discount_rate"`
	RequisitionLineID *uuid.UUID                 `json:"requisition_line_id"`
}

// UpdateLineRequest represents a request to update a line's inputs.
// Nil fields are left unchanged.
type UpdateLineRequest struct {
	Quantity       *decimal.Decimal           `json:"quantity"`
	Cost           *decimal.Decimal           `json:"cost"`
	DiscountMethod *finance.CalculationMethod `json:"discount_method"`
	DiscountRate   *decimal.Decimal           `json:"discount_rate"`
}

// UpdateAdjustmentsRequest represents a request to change the header-level
// discount and additional charge
type UpdateAdjustmentsRequest struct {
	DiscountMethod *finance.CalculationMethod `json:"discount_method"`
	DiscountRate   *decimal.Decimal           `json:"discount_rate"`
	ChargeMethod   *finance.CalculationMethod `json:"charge_method"`
	ChargeRate     *decimal.Decimal           `json:"charge_rate"`
}

// OrderResponse represents a purchase order in API responses
type OrderResponse struct {
	ID             uuid.UUID       `json:"id"`
	OrganizationID uuid.UUID       `json:"organization_id"`
	CompanyID      *uuid.UUID      `json:"company_id"`
	DocumentNumber string          `json:"document_number"`
	SupplierID     uuid.UUID       `json:"supplier_id"`
	Date           time.Time       `json:"date"`
	SubTotal       decimal.Decimal `json:"sub_total"`
	Discount       decimal.Decimal `json:"discount"`
	Charge         decimal.Decimal `json:"charge"`
	Total          decimal.Decimal `json:"total"`
	TaxTotal       decimal.Decimal `json:"tax_total"`
	ReceivedStatus string          `json:"received_status"`
	Lines          []LineResponse  `json:"lines,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// LineResponse represents a purchase order line in API responses
type LineResponse struct {
	ID                uuid.UUID         `json:"id"`
	ProductID         uuid.UUID         `json:"product_id"`
	ProductName       string            `json:"product_name"`
	Quantity          decimal.Decimal   `json:"quantity"`
	Cost              decimal.Decimal   `json:"cost"`
	SubTotal          decimal.Decimal   `json:"sub_total"`
	Discount          decimal.Decimal   `json:"discount"`
	TaxAmount         decimal.Decimal   `json:"tax_amount"`
	Total             decimal.Decimal   `json:"total"`
	ReceivedQuantity  decimal.Decimal   `json:"received_quantity"`
	PendingQuantity   decimal.Decimal   `json:"pending_quantity"`
	RequisitionLineID *uuid.UUID        `json:"requisition_line_id,omitempty"`
	Taxes             []LineTaxResponse `json:"taxes,omitempty"`
}

// LineTaxResponse represents one row of a line's tax breakdown
type LineTaxResponse struct {
	TaxRateID uuid.UUID       `json:"tax_rate_id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	Amount    decimal.Decimal `json:"amount"`
}

// ToOrderResponse converts a domain purchase order to its API representation
func ToOrderResponse(order *purchase.PurchaseOrder) *OrderResponse {
	resp := &OrderResponse{
		ID:             order.ID,
		OrganizationID: order.OrganizationID,
		CompanyID:      order.CompanyID,
		DocumentNumber: order.DocumentNumber(),
		SupplierID:     order.SupplierID,
		Date:           order.Date,
		SubTotal:       order.SubTotal,
		Discount:       order.Discount,
		Charge:         order.Charge,
		Total:          order.Total,
		TaxTotal:       order.TaxTotal,
		ReceivedStatus: order.ReceivedStatus.String(),
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
	for i := range order.Lines {
		resp.Lines = append(resp.Lines, *ToLineResponse(&order.Lines[i]))
	}
	return resp
}

// ToLineResponse converts a domain line to its API representation
func ToLineResponse(line *purchase.PurchaseOrderLine) *LineResponse {
	resp := &LineResponse{
		ID:                line.ID,
		ProductID:         line.ProductID,
		ProductName:       line.ProductName,
		Quantity:          line.Quantity,
		Cost:              line.Cost,
		SubTotal:          line.SubTotal,
		Discount:          line.Discount,
		TaxAmount:         line.TaxAmount,
		Total:             line.Total,
		ReceivedQuantity:  line.ReceivedQuantity,
		PendingQuantity:   line.PendingQuantity(),
		RequisitionLineID: line.RequisitionLineID,
	}
	for _, tax := range line.Taxes {
		resp.Taxes = append(resp.Taxes, LineTaxResponse{
			TaxRateID: tax.TaxRateID,
			Name:      tax.Name,
			Rate:      tax.Rate,
			Amount:    tax.Amount,
		})
	}
	return resp
}
