package http_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/inventario-engine/internal/application/dto"
	"github.com/jhoicas/inventario-engine/internal/application/usecase"
	"github.com/jhoicas/inventario-engine/internal/domain/entity"
	"github.com/jhoicas/inventario-engine/internal/infrastructure/export"
	"github.com/jhoicas/inventario-engine/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/inventario-engine/internal/interfaces/http"
	"github.com/jhoicas/inventario-engine/pkg/logger"
)

// newAPI aplicación completa sobre el almacén en memoria, con reloj fijo en 2026-03-20.
func newAPI(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	reportUC := usecase.NewProfitReportUseCase(store, usecase.ReportOptions{}, log).
		WithClock(func() time.Time { return time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC) }).
		WithExporters(export.NewCSVExporter(), export.NewXLSXExporter())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ReportUC:       reportUC,
		RelationshipUC: usecase.NewRelationshipUseCase(store, store, log),
		MeasurementUC:  usecase.NewMeasurementUseCase(),
		JWTSecret:      testJWTSecret,
		Log:            log,
	})
	return app, store
}

func seedCatalog(store *memory.Store) {
	store.PutItem(entity.Item{
		ID: "I1", CompanyID: testCompanyID, SKU: "M-1", Name: "Martillo", Category: "Herramientas",
		TrackingType: entity.TrackingQuantity, Price: decimal.NewFromInt(50), PriceType: entity.PriceTypeEach,
	})
	store.PutTransaction(entity.Transaction{
		ID: "S1", CompanyID: testCompanyID, Kind: entity.TransactionSale,
		Date: time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
	})
}

// call petición autenticada con el rol indicado; body nil = sin cuerpo.
func call(t *testing.T, app *fiber.App, method, path, role string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func saleLines() map[string]any {
	return map[string]any{
		"lines": []map[string]any{{
			"secondary_id":   "I1",
			"measurement":    map[string]any{"dimension": "quantity", "magnitude": 2},
			"purchased_by":   "quantity",
			"cost_per_unit":  30,
			"price_per_unit": 50,
		}},
	}
}

// ── Reporte ───────────────────────────────────────────────────────────────────

func TestReportHandler_LineasYReporte(t *testing.T) {
	app, store := newAPI(t)
	seedCatalog(store)

	resp := call(t, app, http.MethodPut, "/api/transactions/sale/S1/lines", "bodeguero", saleLines())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	replaced := decode[dto.ReplaceLinesResponse](t, resp)
	assert.Len(t, replaced.Created, 1)

	resp = call(t, app, http.MethodGet, "/api/reports/profit?start_date=2026-01-01&end_date=2026-03-31&period=month", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rep := decode[dto.ProfitReportDTO](t, resp)

	assert.True(t, rep.Summary.TotalRevenue.Equal(decimal.NewFromInt(100)))
	assert.True(t, rep.Summary.TotalProfit.Equal(decimal.NewFromInt(40)))
	require.Len(t, rep.Items, 1)
	assert.Equal(t, "Martillo", rep.Items[0].ItemName)
	assert.Equal(t, []string{"Herramientas"}, rep.Categories)
	require.Len(t, rep.ProfitByTime, 1)
	assert.Equal(t, "2026-02", rep.ProfitByTime[0].Period)
}

func TestReportHandler_RangoInvalido(t *testing.T) {
	app, _ := newAPI(t)
	resp := call(t, app, http.MethodGet, "/api/reports/profit?start_date=2026-03-31&end_date=2026-01-01", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INVALID_RANGE", body.Code)
}

func TestReportHandler_ParametrosInvalidos(t *testing.T) {
	app, _ := newAPI(t)
	resp := call(t, app, http.MethodGet, "/api/reports/profit?period=quarter", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/reports/profit?top_n=abc", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReportHandler_ExportCSV(t *testing.T) {
	app, store := newAPI(t)
	seedCatalog(store)
	resp := call(t, app, http.MethodPut, "/api/transactions/sale/S1/lines", "admin", saleLines())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/reports/profit/export?format=csv&start_date=2026-01-01&end_date=2026-03-31", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "rentabilidad_2026-01-01_2026-03-31.csv")

	sc := bufio.NewScanner(resp.Body)
	require.True(t, sc.Scan())
	assert.Equal(t, "Item,SKU,Category,Units Sold,Revenue,Cost,Profit,Margin (%)", sc.Text())
	require.True(t, sc.Scan())
	assert.Equal(t, "Martillo,M-1,Herramientas,2,100.00,60.00,40.00,40.00", sc.Text())
}

func TestReportHandler_ExportFormatoDesconocido(t *testing.T) {
	app, _ := newAPI(t)
	resp := call(t, app, http.MethodGet, "/api/reports/profit/export?format=docx", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ── Relaciones ────────────────────────────────────────────────────────────────

func TestRelationshipHandler_CRUD(t *testing.T) {
	app, _ := newAPI(t)

	create := dto.CreateRelationshipRequest{
		Type: "PURCHASE_ITEM", PrimaryID: "P1", PrimaryType: "purchase",
		SecondaryID: "I1", SecondaryType: "item",
		Measurement: dto.MeasurementDTO{Dimension: "weight", Magnitude: decimal.NewFromInt(2), Unit: "kg"},
		PurchasedBy: "weight", CostPerUnit: decimal.NewFromInt(13),
	}
	resp := call(t, app, http.MethodPost, "/api/relationships", "admin", create)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.RelationshipResponse](t, resp)
	assert.Equal(t, testUserID, created.PerformedBy)

	resp = call(t, app, http.MethodPost, "/api/relationships", "admin", create)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "duplicado")

	resp = call(t, app, http.MethodPatch, "/api/relationships/"+created.ID, "bodeguero", map[string]any{"cost_per_unit": 14})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.RelationshipResponse](t, resp)
	assert.True(t, updated.CostPerUnit.Equal(decimal.NewFromInt(14)))

	resp = call(t, app, http.MethodGet, "/api/relationships?secondary_id=I1", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.RelationshipResponse](t, resp)
	assert.Len(t, list, 1)

	resp = call(t, app, http.MethodDelete, "/api/relationships/"+created.ID, "admin", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = call(t, app, http.MethodDelete, "/api/relationships/"+created.ID, "admin", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode, "idempotente")

	resp = call(t, app, http.MethodGet, "/api/relationships/"+created.ID, "admin", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRelationshipHandler_Validacion(t *testing.T) {
	app, _ := newAPI(t)
	bad := dto.CreateRelationshipRequest{
		Type: "SALE_ITEM", PrimaryID: "S1", PrimaryType: "sale",
		SecondaryID: "I1", SecondaryType: "item",
		Measurement: dto.MeasurementDTO{Dimension: "quantity", Magnitude: decimal.NewFromInt(1)},
		PurchasedBy: "weight",
	}
	resp := call(t, app, http.MethodPost, "/api/relationships", "admin", bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)

	resp = call(t, app, http.MethodGet, "/api/relationships", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "sin primary_id ni secondary_id")
}

func TestRelationshipHandler_VendedorNoEscribe(t *testing.T) {
	app, _ := newAPI(t)
	resp := call(t, app, http.MethodPut, "/api/transactions/sale/S1/lines", "vendedor", saleLines())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ── Medidas ───────────────────────────────────────────────────────────────────

func TestMeasurementHandler_Convert(t *testing.T) {
	app, _ := newAPI(t)
	resp := call(t, app, http.MethodPost, "/api/measurements/convert", "vendedor", map[string]any{
		"measurement": map[string]any{"dimension": "weight", "magnitude": 16, "unit": "oz"},
		"target_unit": "lb",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ConvertMeasurementResponse](t, resp)
	assert.True(t, out.Result.Magnitude.Equal(decimal.NewFromInt(1)), "got %s", out.Result.Magnitude)

	resp = call(t, app, http.MethodPost, "/api/measurements/convert", "vendedor", map[string]any{
		"measurement": map[string]any{"dimension": "weight", "magnitude": 1, "unit": "kg"},
		"target_unit": "gal",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMeasurementHandler_Units(t *testing.T) {
	app, _ := newAPI(t)
	resp := call(t, app, http.MethodGet, "/api/measurements/units", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	units := decode[map[string][]string](t, resp)
	assert.Contains(t, units["volume"], "gal")
}

func TestRouter_SinTokenRetorna401(t *testing.T) {
	app, _ := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/reports/profit", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
