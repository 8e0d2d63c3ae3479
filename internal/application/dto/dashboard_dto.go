package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalProducts  int             `json:"totalProducts"`
	ActiveProducts int             `json:"activeProducts"`
	TotalValue     decimal.Decimal `json:"totalValue"` // Σ quantity * unit_price (activos)
	MovementTypes  MovementTypes   `json:"movementTypes"`
}

// MovementTypes conteo de entradas del libro por tipo.
type MovementTypes struct {
	In     int `json:"in"`
	Out    int `json:"out"`
	Damage int `json:"damage"`
}

// TopSKUDTO una fila del ranking de SKUs por unidades salidas.
type TopSKUDTO struct {
	ProductID     string `json:"product_id"`
	SKU           string `json:"sku"`
	ProductName   string `json:"product_name"`
	TotalQuantity int    `json:"totalQuantity"`
	Movements     int    `json:"movements"`
}

// TrendPointDTO totales diarios para GET /api/dashboard/trends.
type TrendPointDTO struct {
	Date   time.Time `json:"date"`
	In     int       `json:"in"`
	Out    int       `json:"out"`
	Damage int       `json:"damage"`
}
