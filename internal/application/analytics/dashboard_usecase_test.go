package analytics_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizwimohdaltamash/InventorySync/internal/application/analytics"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/entity"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/repository"
	"github.com/rizwimohdaltamash/InventorySync/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeAnalyticsRepo struct {
	stats     *repository.ProductStatsResult
	counts    map[string]int
	topSKUs   []repository.SKUSalesResult
	trends    []repository.DailyTrendResult
	statsCall int
	topCalls  []int // limits con los que se llamó GetTopSKUs
}

func (f *fakeAnalyticsRepo) GetProductStats(context.Context) (*repository.ProductStatsResult, error) {
	f.statsCall++
	return f.stats, nil
}

func (f *fakeAnalyticsRepo) CountMovementsByType(context.Context, *time.Time, *time.Time) (map[string]int, error) {
	return f.counts, nil
}

func (f *fakeAnalyticsRepo) GetTopSKUs(_ context.Context, limit int) ([]repository.SKUSalesResult, error) {
	f.topCalls = append(f.topCalls, limit)
	if limit > 0 && limit < len(f.topSKUs) {
		return f.topSKUs[:limit], nil
	}
	return f.topSKUs, nil
}

func (f *fakeAnalyticsRepo) GetDailyTrends(_ context.Context, _ int) ([]repository.DailyTrendResult, error) {
	return f.trends, nil
}

func (f *fakeAnalyticsRepo) ListLowStock(context.Context) ([]*entity.Product, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepo) ListDeadStock(context.Context) ([]*entity.Product, error) {
	return nil, nil
}

// fakeCache cache en memoria vía JSON (mismo contrato que el de Redis).
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string][]byte)} }

func (c *fakeCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStats_ArmaElObjeto(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		stats: &repository.ProductStatsResult{
			TotalProducts:  12,
			ActiveProducts: 10,
			TotalValue:     decimal.NewFromFloat(1234.567),
		},
		counts: map[string]int{"in": 7, "out": 4, "damage": 1},
	}
	uc := analytics.NewDashboardUseCase(repo, nil, 0, testLogger())

	stats, err := uc.GetStats(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 12, stats.TotalProducts)
	assert.Equal(t, 10, stats.ActiveProducts)
	assert.True(t, decimal.NewFromFloat(1234.57).Equal(stats.TotalValue), "totalValue redondeado a 2 decimales")
	assert.Equal(t, 7, stats.MovementTypes.In)
	assert.Equal(t, 4, stats.MovementTypes.Out)
	assert.Equal(t, 1, stats.MovementTypes.Damage)
}

// Leer dos veces sin movimientos intermedios devuelve lo mismo.
func TestGetStats_LecturaIdempotente(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		stats:  &repository.ProductStatsResult{TotalProducts: 3, ActiveProducts: 3, TotalValue: decimal.NewFromInt(50)},
		counts: map[string]int{"in": 2},
	}
	uc := analytics.NewDashboardUseCase(repo, nil, 0, testLogger())

	first, err := uc.GetStats(context.Background(), nil, nil)
	require.NoError(t, err)
	second, err := uc.GetStats(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetStats_UsaCache(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		stats:  &repository.ProductStatsResult{TotalProducts: 5, ActiveProducts: 5, TotalValue: decimal.NewFromInt(100)},
		counts: map[string]int{"in": 1},
	}
	cache := newFakeCache()
	uc := analytics.NewDashboardUseCase(repo, cache, time.Minute, testLogger())

	_, err := uc.GetStats(context.Background(), nil, nil)
	require.NoError(t, err)
	_, err = uc.GetStats(context.Background(), nil, nil)
	require.NoError(t, err)

	// La segunda lectura vino del cache, no de la BD
	assert.Equal(t, 1, repo.statsCall)
}

func TestTopSKUs_RankingYExclusiones(t *testing.T) {
	// El repo ya entrega ordenado (SQL); el caso de uso respeta el orden y
	// no rellena productos sin salidas.
	repo := &fakeAnalyticsRepo{
		topSKUs: []repository.SKUSalesResult{
			{ProductID: "p-1", SKU: "A1", ProductName: "Uno", TotalQuantity: 20, Movements: 3},
			{ProductID: "p-2", SKU: "B2", ProductName: "Dos", TotalQuantity: 15, Movements: 5},
		},
	}
	uc := analytics.NewDashboardUseCase(repo, nil, 0, testLogger())

	ranking, err := uc.TopSKUs(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, ranking, 2)
	assert.Equal(t, "A1", ranking[0].SKU)
	assert.Equal(t, 20, ranking[0].TotalQuantity)
	assert.Equal(t, "B2", ranking[1].SKU)

	// limit <= 0 pasa directo al repo (lista completa para reportes)
	_, err = uc.TopSKUs(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 0}, repo.topCalls)
}

func TestTrends_DefaultDias(t *testing.T) {
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeAnalyticsRepo{
		trends: []repository.DailyTrendResult{{Date: day, In: 5, Out: 3, Damage: 1}},
	}
	uc := analytics.NewDashboardUseCase(repo, nil, 0, testLogger())

	points, err := uc.Trends(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 5, points[0].In)
	assert.Equal(t, 3, points[0].Out)
	assert.Equal(t, 1, points[0].Damage)
}
