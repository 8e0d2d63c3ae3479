// Package analytics contiene los casos de uso read-only de agregación:
// stats del dashboard, ranking de SKUs, tendencias y conjuntos de stock
// bajo/muerto. Nunca muta estado; siempre lee snapshots consistentes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rizwimohdaltamash/InventorySync/internal/application/dto"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/entity"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/repository"
	"github.com/rizwimohdaltamash/InventorySync/pkg/logger"
)

const (
	defaultTopSKUs   = 10 // ranking del dashboard
	defaultTrendDays = 30
	statsCacheKey    = "dashboard:stats"
	topSKUsCacheKey  = "dashboard:top-skus"
	defaultStatsTTL  = 30 * time.Second
)

// Cache cache opcional de agregados (best-effort). Un fallo del cache nunca
// es un fallo de la consulta; se loguea y se sigue contra la BD.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// DashboardUseCase agrega catálogo + libro de movimientos para las vistas de
// reporte. Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         Cache // nil = sin cache
	cacheTTL      time.Duration
	log           *logger.Logger
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, cache Cache, cacheTTL time.Duration, log *logger.Logger) *DashboardUseCase {
	if cacheTTL <= 0 {
		cacheTTL = defaultStatsTTL
	}
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		cache:         cache,
		cacheTTL:      cacheTTL,
		log:           log,
	}
}

// GetStats construye el objeto de stats del dashboard: totales del catálogo,
// valor de inventario y conteo de movimientos por tipo (histórico completo,
// o acotado por from/to).
//
// Dos consultas en paralelo, mismo patrón que el resto de la app:
//  1. GetProductStats        → totalProducts, activeProducts, totalValue
//  2. CountMovementsByType   → movementTypes
func (uc *DashboardUseCase) GetStats(ctx context.Context, from, to *time.Time) (*dto.DashboardStatsDTO, error) {
	// Solo el histórico completo se cachea; las ventanas son ad-hoc.
	cacheable := from == nil && to == nil
	if cacheable && uc.cache != nil {
		var cached dto.DashboardStatsDTO
		if ok, err := uc.cache.Get(ctx, statsCacheKey, &cached); err != nil {
			uc.log.Warn().Err(err).Msg("cache de stats no disponible")
		} else if ok {
			return &cached, nil
		}
	}

	type statsResult struct {
		stats *repository.ProductStatsResult
		err   error
	}
	type countsResult struct {
		counts map[string]int
		err    error
	}

	statsCh := make(chan statsResult, 1)
	countsCh := make(chan countsResult, 1)

	go func() {
		s, err := uc.analyticsRepo.GetProductStats(ctx)
		statsCh <- statsResult{s, err}
	}()
	go func() {
		c, err := uc.analyticsRepo.CountMovementsByType(ctx, from, to)
		countsCh <- countsResult{c, err}
	}()

	stats := <-statsCh
	counts := <-countsCh

	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: stats de productos: %w", stats.err)
	}
	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de movimientos: %w", counts.err)
	}

	result := &dto.DashboardStatsDTO{
		TotalProducts:  stats.stats.TotalProducts,
		ActiveProducts: stats.stats.ActiveProducts,
		TotalValue:     stats.stats.TotalValue.Round(2),
		MovementTypes: dto.MovementTypes{
			In:     counts.counts[entity.MovementTypeIn],
			Out:    counts.counts[entity.MovementTypeOut],
			Damage: counts.counts[entity.MovementTypeDamage],
		},
	}

	if cacheable && uc.cache != nil {
		if err := uc.cache.Set(ctx, statsCacheKey, result, uc.cacheTTL); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo cachear stats")
		}
	}
	return result, nil
}

// TopSKUs ranking de SKUs por unidades salidas (todo el histórico).
// limit <= 0 devuelve la lista completa sin recortar (vista de reportes);
// el dashboard usa el top 10.
func (uc *DashboardUseCase) TopSKUs(ctx context.Context, limit int) ([]dto.TopSKUDTO, error) {
	useCache := limit == defaultTopSKUs && uc.cache != nil
	if useCache {
		var cached []dto.TopSKUDTO
		if ok, err := uc.cache.Get(ctx, topSKUsCacheKey, &cached); err != nil {
			uc.log.Warn().Err(err).Msg("cache de top SKUs no disponible")
		} else if ok {
			return cached, nil
		}
	}

	rows, err := uc.analyticsRepo.GetTopSKUs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: top SKUs: %w", err)
	}

	out := make([]dto.TopSKUDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopSKUDTO{
			ProductID:     r.ProductID,
			SKU:           r.SKU,
			ProductName:   r.ProductName,
			TotalQuantity: r.TotalQuantity,
			Movements:     r.Movements,
		})
	}

	if useCache {
		if err := uc.cache.Set(ctx, topSKUsCacheKey, out, uc.cacheTTL); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo cachear top SKUs")
		}
	}
	return out, nil
}

// Trends totales diarios por tipo para los últimos N días (default 30).
func (uc *DashboardUseCase) Trends(ctx context.Context, days int) ([]dto.TrendPointDTO, error) {
	if days <= 0 {
		days = defaultTrendDays
	}
	rows, err := uc.analyticsRepo.GetDailyTrends(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("dashboard: tendencias: %w", err)
	}
	out := make([]dto.TrendPointDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TrendPointDTO{Date: r.Date, In: r.In, Out: r.Out, Damage: r.Damage})
	}
	return out, nil
}
