package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizwimohdaltamash/InventorySync/internal/application/dto"
	"github.com/rizwimohdaltamash/InventorySync/internal/application/stock"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/entity"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/repository"
	apphttp "github.com/rizwimohdaltamash/InventorySync/internal/interfaces/http"
	pkgjwt "github.com/rizwimohdaltamash/InventorySync/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "inventory-sync-test"
	testExpMin    = 60
)

// stubEngine implementa MovementEngine con respuestas fijas y captura el input.
type stubEngine struct {
	gotInput stock.MovementInput
	product  *entity.Product
	movement *entity.StockMovement
	err      error
}

func (s *stubEngine) ApplyMovement(_ context.Context, input stock.MovementInput) (*entity.Product, *entity.StockMovement, error) {
	s.gotInput = input
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.product, s.movement, nil
}

// stubMovementRepo devuelve registros fijos y captura el filtro.
type stubMovementRepo struct {
	gotFilter repository.MovementFilter
	records   []repository.MovementRecord
}

func (s *stubMovementRepo) Create(context.Context, *entity.StockMovement) error {
	panic("no usado")
}

func (s *stubMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]repository.MovementRecord, error) {
	s.gotFilter = f
	return s.records, nil
}

// buildStockApp construye una app Fiber con las rutas de stock detrás del
// middleware de auth, igual que en el router real.
func buildStockApp(engine *stubEngine, movRepo *stubMovementRepo) *fiber.App {
	app := fiber.New()
	handler := apphttp.NewStockHandler(engine, stock.NewMovementQueryUseCase(movRepo))

	protected := app.Group("/api", apphttp.AuthMiddleware(testJWTSecret))
	protected.Post("/stock/in", handler.StockIn)
	protected.Post("/stock/out", handler.StockOut)
	protected.Post("/stock/damage", handler.StockDamage)
	protected.Get("/stock-movements", handler.ListMovements)
	protected.Get("/stock-movements/product/:id", handler.ListProductMovements)
	return app
}

func testToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "Tester", testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", testToken(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func getPath(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", testToken(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func sampleMovement(typ string) (*entity.Product, *entity.StockMovement) {
	now := time.Now()
	product := &entity.Product{
		ID:             "prod-1",
		SKU:            "SKU-001",
		Name:           "Tornillo 3mm",
		Quantity:       15,
		ReorderLevel:   5,
		Status:         entity.ProductStatusActive,
		LastMovementAt: &now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	movement := &entity.StockMovement{
		ID:            "mov-1",
		ProductID:     "prod-1",
		Type:          typ,
		Quantity:      5,
		Reason:        "Compra",
		PreviousStock: 10,
		NewStock:      15,
		PerformedBy:   testUserID,
		OccurredAt:    now,
		CreatedAt:     now,
	}
	return product, movement
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests POST /api/stock/{in,out,damage}
// ──────────────────────────────────────────────────────────────────────────────

func TestStockIn_Retorna201ConProductoYMovimiento(t *testing.T) {
	engine := &stubEngine{}
	engine.product, engine.movement = sampleMovement(entity.MovementTypeIn)
	app := buildStockApp(engine, &stubMovementRepo{})

	resp := postJSON(t, app, "/api/stock/in", dto.StockMovementRequest{
		ProductID: "prod-1", Quantity: 5, Reason: "Compra",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body dto.ApplyMovementResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 15, body.UpdatedProduct.Quantity, "la respuesta debe traer el producto ya actualizado")
	assert.Equal(t, entity.MovementTypeIn, body.Movement.Type)
	assert.Equal(t, 10, body.Movement.PreviousStock)
	assert.Equal(t, 15, body.Movement.NewStock)
}

func TestStockIn_ElEndpointFijaElTipoYElActor(t *testing.T) {
	engine := &stubEngine{}
	engine.product, engine.movement = sampleMovement(entity.MovementTypeIn)
	app := buildStockApp(engine, &stubMovementRepo{})

	resp := postJSON(t, app, "/api/stock/in", dto.StockMovementRequest{
		ProductID: "prod-1", Quantity: 5, Reason: "Compra",
	})
	resp.Body.Close()

	assert.Equal(t, entity.MovementTypeIn, engine.gotInput.Type, "el tipo lo fija el endpoint, no el body")
	assert.Equal(t, testUserID, engine.gotInput.PerformedBy, "el actor sale del token")
}

func TestStockOut_StockInsuficienteRetorna409ConDetalle(t *testing.T) {
	engine := &stubEngine{err: &domain.InsufficientStockError{Available: 3, Requested: 5}}
	app := buildStockApp(engine, &stubMovementRepo{})

	resp := postJSON(t, app, "/api/stock/out", dto.StockMovementRequest{
		ProductID: "prod-1", Quantity: 5, Reason: "Venta",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	require.NotNil(t, body.Available)
	require.NotNil(t, body.Requested)
	assert.Equal(t, 3, *body.Available)
	assert.Equal(t, 5, *body.Requested)
}

func TestStockOut_CantidadInvalidaRetorna400(t *testing.T) {
	engine := &stubEngine{err: domain.ErrInvalidQuantity}
	app := buildStockApp(engine, &stubMovementRepo{})

	resp := postJSON(t, app, "/api/stock/out", dto.StockMovementRequest{
		ProductID: "prod-1", Quantity: 0, Reason: "Venta",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INVALID_QUANTITY", body.Code)
}

func TestStockDamage_SinNotasRetorna400(t *testing.T) {
	engine := &stubEngine{err: domain.ErrMissingDetail}
	app := buildStockApp(engine, &stubMovementRepo{})

	resp := postJSON(t, app, "/api/stock/damage", dto.StockMovementRequest{
		ProductID: "prod-1", Quantity: 2, Reason: "Daño físico",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MISSING_DETAIL", body.Code)
}

func TestStock_ProductoInexistenteRetorna404(t *testing.T) {
	engine := &stubEngine{err: domain.ErrProductNotFound}
	app := buildStockApp(engine, &stubMovementRepo{})

	resp := postJSON(t, app, "/api/stock/in", dto.StockMovementRequest{
		ProductID: "no-existe", Quantity: 5, Reason: "Compra",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStock_FalloTransitorioRetorna503(t *testing.T) {
	engine := &stubEngine{err: domain.ErrTransient}
	app := buildStockApp(engine, &stubMovementRepo{})

	resp := postJSON(t, app, "/api/stock/in", dto.StockMovementRequest{
		ProductID: "prod-1", Quantity: 5, Reason: "Compra",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestStock_SinTokenRetorna401(t *testing.T) {
	app := buildStockApp(&stubEngine{}, &stubMovementRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/stock/in", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GET /api/stock-movements
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovements_FiltrosLleganAlRepositorio(t *testing.T) {
	repo := &stubMovementRepo{}
	app := buildStockApp(&stubEngine{}, repo)

	resp := getPath(t, app, "/api/stock-movements?type=out&product_id=prod-1&start_date=2026-08-01&end_date=2026-08-28")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.MovementTypeOut, repo.gotFilter.Type)
	assert.Equal(t, "prod-1", repo.gotFilter.ProductID)
	require.NotNil(t, repo.gotFilter.From)
	require.NotNil(t, repo.gotFilter.To)
	assert.True(t, repo.gotFilter.To.After(*repo.gotFilter.From))
	assert.Equal(t, 50, repo.gotFilter.Limit, "paginación por defecto")
}

func TestListMovements_TipoInvalidoRetorna400(t *testing.T) {
	app := buildStockApp(&stubEngine{}, &stubMovementRepo{})

	resp := getPath(t, app, "/api/stock-movements?type=transfer")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListProductMovements_FiltraPorProducto(t *testing.T) {
	now := time.Now()
	repo := &stubMovementRepo{records: []repository.MovementRecord{
		{
			StockMovement: entity.StockMovement{
				ID: "mov-1", ProductID: "prod-1", Type: entity.MovementTypeOut,
				Quantity: 2, Reason: "Venta", PreviousStock: 10, NewStock: 8,
				OccurredAt: now, CreatedAt: now,
			},
			SKU:         "SKU-001",
			ProductName: "Tornillo 3mm",
		},
	}}
	app := buildStockApp(&stubEngine{}, repo)

	resp := getPath(t, app, "/api/stock-movements/product/prod-1")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "prod-1", repo.gotFilter.ProductID)

	var body dto.MovementListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Movements, 1)
	assert.Equal(t, "SKU-001", body.Movements[0].SKU, "el listado trae el SKU del producto")
	assert.Equal(t, 1, body.Total)
}
