package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rizwimohdaltamash/InventorySync/internal/domain/entity"
)

// ProductStatsResult totales del catálogo para el dashboard.
type ProductStatsResult struct {
	TotalProducts  int
	ActiveProducts int
	TotalValue     decimal.Decimal // Σ quantity * unit_price sobre activos
}

// SKUSalesResult agregado de salidas ("out") de un producto.
type SKUSalesResult struct {
	ProductID     string
	SKU           string
	ProductName   string
	TotalQuantity int // Σ quantity de movimientos out
	Movements     int // número de movimientos out
}

// DailyTrendResult totales de un día por tipo de movimiento.
type DailyTrendResult struct {
	Date   time.Time
	In     int
	Out    int
	Damage int
}

// AnalyticsRepository consultas read-only de agregación. Nunca muta estado;
// cada consulta ve un snapshot consistente (MVCC) y no bloquea escritores.
type AnalyticsRepository interface {
	GetProductStats(ctx context.Context) (*ProductStatsResult, error)

	// CountMovementsByType cuenta entradas del libro por tipo, opcionalmente
	// acotado por rango de fechas (from/to nil = histórico completo).
	CountMovementsByType(ctx context.Context, from, to *time.Time) (map[string]int, error)

	// GetTopSKUs ranking de SKUs por unidades salidas, descendente por total
	// y empates por SKU ascendente. limit <= 0 devuelve la lista completa.
	// Productos sin salidas no aparecen.
	GetTopSKUs(ctx context.Context, limit int) ([]SKUSalesResult, error)

	GetDailyTrends(ctx context.Context, days int) ([]DailyTrendResult, error)

	// ListLowStock productos activos con cantidad <= punto de reorden,
	// orden estable por SKU. Incluye el stock muerto.
	ListLowStock(ctx context.Context) ([]*entity.Product, error)

	// ListDeadStock productos activos con cantidad 0, orden por SKU.
	ListDeadStock(ctx context.Context) ([]*entity.Product, error)
}
