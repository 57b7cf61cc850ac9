package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	numberingapp "github.com/erp/backoffice/internal/application/numbering"
	purchaseapp "github.com/erp/backoffice/internal/application/purchase"
	receivingapp "github.com/erp/backoffice/internal/application/receiving"
	"github.com/erp/backoffice/internal/domain/numbering"
	"github.com/erp/backoffice/internal/domain/purchase"
	"github.com/erp/backoffice/internal/domain/receiving"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
	"github.com/erp/backoffice/internal/interfaces/http/handler"
	"github.com/erp/backoffice/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestServer wires the full stack over an in-memory database
func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&numbering.SettingsRecord{},
		&purchase.PurchaseOrder{},
		&purchase.PurchaseOrderLine{},
		&purchase.PurchaseOrderLineTax{},
		&purchase.RequisitionLine{},
		&receiving.ReceivingNote{},
		&receiving.ReceivingLine{},
		&receiving.StockMovement{},
	))

	settingsRepo := persistence.NewGormSettingsRepository(db)
	resolver := persistence.NewSettingsResolver(settingsRepo)
	sequencer := numberingapp.NewSequencer(resolver, nil)

	orderService := purchaseapp.NewOrderService(
		persistence.NewGormPurchaseTransactionScope(db),
		persistence.NewGormOrderRepository(db),
		sequencer,
		nil,
		nil,
		false,
		nil,
	)
	noteService := receivingapp.NewNoteService(
		persistence.NewGormReceivingTransactionScope(db),
		persistence.NewGormNoteRepository(db),
		sequencer,
		nil,
	)
	settingsService := numberingapp.NewSettingsService(settingsRepo, resolver, nil)

	engine := gin.New()
	engine.Use(middleware.RequestID())

	NewRouter(engine).
		Register(handler.NewPurchaseOrderHandler(orderService)).
		Register(handler.NewReceivingNoteHandler(noteService)).
		Register(handler.NewNumberingSettingsHandler(settingsService)).
		Setup()

	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, orgID uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Organization-ID", orgID.String())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.True(t, envelope.Success, w.Body.String())
	return envelope.Data
}

func TestRouter_PurchaseOrderLifecycle(t *testing.T) {
	engine := setupTestServer(t)
	orgID := uuid.New()

	// configure numbering for the organization
	w := doJSON(t, engine, http.MethodPut, "/api/v1/numbering-settings", orgID, map[string]any{
		"document_type":   "PURCHASE_ORDER",
		"starting_number": 100,
		"prefix":          "PO-",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, engine, http.MethodGet, "/api/v1/numbering-settings/PURCHASE_ORDER/effective", orgID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	effective := dataOf(t, w)
	assert.Equal(t, float64(100), effective["starting_number"])
	assert.Equal(t, "PO-", effective["prefix"])

	// create an order with one line
	w = doJSON(t, engine, http.MethodPost, "/api/v1/purchase-orders", orgID, map[string]any{
		"supplier_id": uuid.New().String(),
		"date":        "2026-04-01T00:00:00Z",
		"lines": []map[string]any{
			{
				"product_id":   uuid.New().String(),
				"product_name": "Steel Bolt",
				"quantity":     "10",
				"cost":         "25",
			},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := dataOf(t, w)
	assert.Equal(t, "PO-00100", order["document_number"])
	orderID := order["id"].(string)

	// read it back
	w = doJSON(t, engine, http.MethodGet, "/api/v1/purchase-orders/"+orderID, orgID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetched := dataOf(t, w)
	lines := fetched["lines"].([]any)
	require.Len(t, lines, 1)

	// header adjustments recompute derived fields
	w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/purchase-orders/%s/adjustments", orderID), orgID, map[string]any{
		"discount_method": "PERCENTAGE",
		"discount_rate":   "10",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	adjusted := dataOf(t, w)
	assert.Equal(t, "25", fmt.Sprint(adjusted["discount"]))
	assert.Equal(t, "225", fmt.Sprint(adjusted["total"]))

	// a second order continues the sequence
	w = doJSON(t, engine, http.MethodPost, "/api/v1/purchase-orders", orgID, map[string]any{
		"supplier_id": uuid.New().String(),
		"date":        "2026-04-02T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	second := dataOf(t, w)
	assert.Equal(t, "PO-00101", second["document_number"])
}

func TestRouter_LineMutations(t *testing.T) {
	engine := setupTestServer(t)
	orgID := uuid.New()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/purchase-orders", orgID, map[string]any{
		"supplier_id": uuid.New().String(),
		"date":        "2026-04-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := dataOf(t, w)["id"].(string)

	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/purchase-orders/%s/lines", orderID), orgID, map[string]any{
		"product_id":   uuid.New().String(),
		"product_name": "Copper Wire",
		"quantity":     "4",
		"cost":         "50",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	line := dataOf(t, w)
	lineID := line["id"].(string)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/purchase-orders/"+orderID, orgID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "200", fmt.Sprint(dataOf(t, w)["sub_total"]))

	w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/purchase-orders/%s/lines/%s", orderID, lineID), orgID, map[string]any{
		"quantity": "6",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, engine, http.MethodGet, "/api/v1/purchase-orders/"+orderID, orgID, nil)
	assert.Equal(t, "300", fmt.Sprint(dataOf(t, w)["sub_total"]))

	w = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/v1/purchase-orders/%s/lines/%s", orderID, lineID), orgID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/purchase-orders/"+orderID, orgID, nil)
	assert.Equal(t, "0", fmt.Sprint(dataOf(t, w)["sub_total"]))
}

func TestRouter_ReceivingNoteCreation(t *testing.T) {
	engine := setupTestServer(t)
	orgID := uuid.New()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/purchase-orders", orgID, map[string]any{
		"supplier_id": uuid.New().String(),
		"date":        "2026-05-01T00:00:00Z",
		"lines": []map[string]any{
			{
				"product_id":   uuid.New().String(),
				"product_name": "Steel Bolt",
				"quantity":     "10",
				"cost":         "25",
			},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := dataOf(t, w)
	orderLine := order["lines"].([]any)[0].(map[string]any)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/receiving-notes", orgID, map[string]any{
		"purchase_order_id": order["id"],
		"location_id":       uuid.New().String(),
		"date":              "2026-05-20T00:00:00Z",
		"lines": []map[string]any{
			{
				"order_line_id": orderLine["id"],
				"product_id":    orderLine["product_id"],
				"quantity":      "4",
			},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	note := dataOf(t, w)
	assert.Equal(t, "00001", note["document_number"])
	assert.Equal(t, "DRAFT", note["status"])

	w = doJSON(t, engine, http.MethodGet, "/api/v1/receiving-notes/"+note["id"].(string), orgID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// a line for a different order is rejected
	w = doJSON(t, engine, http.MethodPost, "/api/v1/receiving-notes", orgID, map[string]any{
		"purchase_order_id": order["id"],
		"location_id":       uuid.New().String(),
		"date":              "2026-05-20T00:00:00Z",
		"lines": []map[string]any{
			{
				"order_line_id": uuid.New().String(),
				"product_id":    orderLine["product_id"],
				"quantity":      "1",
			},
		},
	})
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}

func TestRouter_MissingOrganizationHeader(t *testing.T) {
	engine := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/purchase-orders/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_UnknownOrderIs404(t *testing.T) {
	engine := setupTestServer(t)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/purchase-orders/"+uuid.New().String(), uuid.New(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
