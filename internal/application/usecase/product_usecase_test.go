package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizwimohdaltamash/InventorySync/internal/application/dto"
	"github.com/rizwimohdaltamash/InventorySync/internal/application/usecase"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/entity"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicateSKU
		}
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) ApplyStock(_ context.Context, id string, newQuantity int, movedAt time.Time) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Quantity = newQuantity
	p.LastMovementAt = &movedAt
	return nil
}

var _ repository.ProductRepository = (*memProductRepo)(nil)

type memAnalyticsRepo struct {
	lowStock  []*entity.Product
	deadStock []*entity.Product
}

func (r *memAnalyticsRepo) GetProductStats(context.Context) (*repository.ProductStatsResult, error) {
	panic("no usado")
}

func (r *memAnalyticsRepo) CountMovementsByType(context.Context, *time.Time, *time.Time) (map[string]int, error) {
	panic("no usado")
}

func (r *memAnalyticsRepo) GetTopSKUs(context.Context, int) ([]repository.SKUSalesResult, error) {
	panic("no usado")
}

func (r *memAnalyticsRepo) GetDailyTrends(context.Context, int) ([]repository.DailyTrendResult, error) {
	panic("no usado")
}

func (r *memAnalyticsRepo) ListLowStock(context.Context) ([]*entity.Product, error) {
	return r.lowStock, nil
}

func (r *memAnalyticsRepo) ListDeadStock(context.Context) ([]*entity.Product, error) {
	return r.deadStock, nil
}

var _ repository.AnalyticsRepository = (*memAnalyticsRepo)(nil)

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ProductoQuedaActivoConStockInicial(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo(), &memAnalyticsRepo{})

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU:          "  SKU-001  ",
		Name:         "Tornillo 3mm",
		Quantity:     20,
		ReorderLevel: 5,
		UnitPrice:    decimal.NewFromFloat(1.50),
	})
	require.NoError(t, err)

	assert.Equal(t, "SKU-001", out.SKU, "el SKU se guarda sin espacios")
	assert.Equal(t, entity.ProductStatusActive, out.Status)
	assert.Equal(t, 20, out.Quantity)
	assert.Equal(t, "normal", out.StockStatus)
	assert.Nil(t, out.LastMovementAt, "sin movimientos todavía")
}

func TestCreate_SKUDuplicadoRechazado(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo(), &memAnalyticsRepo{})
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "SKU-001", Name: "A"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "SKU-001", Name: "B"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
}

func TestCreate_DatosInvalidosRechazados(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo(), &memAnalyticsRepo{})
	ctx := context.Background()

	cases := []dto.CreateProductRequest{
		{SKU: "", Name: "Sin SKU"},
		{SKU: "SKU-002", Name: "   "},
		{SKU: "SKU-003", Name: "Negativo", Quantity: -1},
		{SKU: "SKU-004", Name: "Reorden negativo", ReorderLevel: -1},
		{SKU: "SKU-005", Name: "Precio negativo", UnitPrice: decimal.NewFromInt(-1)},
	}
	for _, in := range cases {
		_, err := uc.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "sku=%q name=%q", in.SKU, in.Name)
	}
}

func TestUpdate_ParcheParcialNoTocaStock(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo(), &memAnalyticsRepo{})
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		SKU: "SKU-001", Name: "Tornillo", Quantity: 10, ReorderLevel: 3,
	})
	require.NoError(t, err)

	newName := "Tornillo 3mm galvanizado"
	newReorder := 8
	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{
		Name:         &newName,
		ReorderLevel: &newReorder,
	})
	require.NoError(t, err)

	assert.Equal(t, newName, out.Name)
	assert.Equal(t, 8, out.ReorderLevel)
	assert.Equal(t, 10, out.Quantity, "quantity solo se muta vía movimientos")
	assert.Equal(t, "SKU-001", out.SKU, "el SKU no cambia en update")
}

func TestUpdate_EstadoInvalidoRechazado(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo(), &memAnalyticsRepo{})
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "SKU-001", Name: "A"})
	require.NoError(t, err)

	bad := "archived"
	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_ProductoInexistenteDevuelveNil(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo(), &memAnalyticsRepo{})

	out, err := uc.Update(context.Background(), "no-existe", dto.UpdateProductRequest{})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestLowStock_ClasificaCadaProducto(t *testing.T) {
	analytics := &memAnalyticsRepo{lowStock: []*entity.Product{
		{ID: "p1", SKU: "A1", Quantity: 0, ReorderLevel: 5, Status: entity.ProductStatusActive},
		{ID: "p2", SKU: "B2", Quantity: 3, ReorderLevel: 5, Status: entity.ProductStatusActive},
	}}
	uc := usecase.NewProductUseCase(newMemProductRepo(), analytics)

	out, err := uc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "dead", out[0].StockStatus, "agotado dentro del conjunto de stock bajo")
	assert.Equal(t, "low", out[1].StockStatus)
}
