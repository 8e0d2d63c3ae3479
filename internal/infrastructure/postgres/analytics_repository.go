package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rizwimohdaltamash/InventorySync/internal/domain/entity"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard.
// Lee fuera de transacción: MVCC garantiza snapshots consistentes sin
// bloquear a los escritores de movimientos.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de agregados.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetProductStats conteos de catálogo y valor total del inventario activo.
func (r *AnalyticsRepo) GetProductStats(ctx context.Context) (*repository.ProductStatsResult, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COALESCE(SUM(quantity * unit_price) FILTER (WHERE status = 'active'), 0)
		FROM products`
	var res repository.ProductStatsResult
	err := r.q.QueryRow(ctx, query).Scan(&res.TotalProducts, &res.ActiveProducts, &res.TotalValue)
	if err != nil {
		return nil, wrapTransient(fmt.Errorf("product stats: %w", err))
	}
	return &res, nil
}

// CountMovementsByType conteo de movimientos agrupado por tipo, con rango
// de fechas opcional. Tipos sin movimientos no aparecen en el mapa.
func (r *AnalyticsRepo) CountMovementsByType(ctx context.Context, from, to *time.Time) (map[string]int, error) {
	query := `SELECT type, COUNT(*) FROM stock_movements WHERE 1=1`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND occurred_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND occurred_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " GROUP BY type"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapTransient(fmt.Errorf("count movements: %w", err))
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, fmt.Errorf("scan movement count: %w", err)
		}
		counts[typ] = n
	}
	return counts, rows.Err()
}

// GetTopSKUs ranking de SKUs por unidades salidas (type = 'out'), de mayor a
// menor, con SKU ascendente como desempate. limit <= 0 devuelve la lista completa.
func (r *AnalyticsRepo) GetTopSKUs(ctx context.Context, limit int) ([]repository.SKUSalesResult, error) {
	query := `
		SELECT m.product_id, COALESCE(p.sku, ''), COALESCE(p.name, ''),
			SUM(m.quantity)::int, COUNT(*)::int
		FROM stock_movements m
		LEFT JOIN products p ON p.id = m.product_id
		WHERE m.type = 'out'
		GROUP BY m.product_id, p.sku, p.name
		ORDER BY SUM(m.quantity) DESC, COALESCE(p.sku, '') ASC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapTransient(fmt.Errorf("top skus: %w", err))
	}
	defer rows.Close()

	var list []repository.SKUSalesResult
	for rows.Next() {
		var res repository.SKUSalesResult
		if err := rows.Scan(&res.ProductID, &res.SKU, &res.ProductName, &res.TotalQuantity, &res.Movements); err != nil {
			return nil, fmt.Errorf("scan top sku: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

// GetDailyTrends volumen diario por tipo para los últimos days días,
// incluyendo días sin movimientos (serie generada en SQL).
func (r *AnalyticsRepo) GetDailyTrends(ctx context.Context, days int) ([]repository.DailyTrendResult, error) {
	query := `
		SELECT d.day::date,
			COALESCE(SUM(m.quantity) FILTER (WHERE m.type = 'in'), 0)::int,
			COALESCE(SUM(m.quantity) FILTER (WHERE m.type = 'out'), 0)::int,
			COALESCE(SUM(m.quantity) FILTER (WHERE m.type = 'damage'), 0)::int
		FROM generate_series(
			date_trunc('day', now()) - ($1::int - 1) * interval '1 day',
			date_trunc('day', now()),
			interval '1 day') AS d(day)
		LEFT JOIN stock_movements m ON date_trunc('day', m.occurred_at) = d.day
		GROUP BY d.day
		ORDER BY d.day`
	rows, err := r.q.Query(ctx, query, days)
	if err != nil {
		return nil, wrapTransient(fmt.Errorf("daily trends: %w", err))
	}
	defer rows.Close()

	var list []repository.DailyTrendResult
	for rows.Next() {
		var res repository.DailyTrendResult
		if err := rows.Scan(&res.Date, &res.In, &res.Out, &res.Damage); err != nil {
			return nil, fmt.Errorf("scan trend: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

// ListLowStock productos activos con cantidad en o bajo su nivel de reorden
// (incluye los agotados), ordenados por SKU.
func (r *AnalyticsRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE status = 'active' AND quantity <= reorder_level
		ORDER BY sku`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapTransient(fmt.Errorf("list low stock: %w", err))
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListDeadStock productos activos con cantidad cero, ordenados por SKU.
func (r *AnalyticsRepo) ListDeadStock(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE status = 'active' AND quantity = 0
		ORDER BY sku`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapTransient(fmt.Errorf("list dead stock: %w", err))
	}
	defer rows.Close()
	return scanProducts(rows)
}
