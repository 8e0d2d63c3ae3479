// Package inventory contiene las reglas puras de clasificación de stock.
// Única fuente de verdad: las vistas (dashboard, catálogo, reportes) solo
// consumen estas funciones, nunca re-derivan la aritmética.
package inventory

import "github.com/rizwimohdaltamash/InventorySync/internal/domain/entity"

// StockStatus clasificación de salud de stock de un producto.
type StockStatus string

const (
	StockStatusNormal StockStatus = "normal"
	StockStatusLow    StockStatus = "low"  // 0 < cantidad <= punto de reorden
	StockStatusDead   StockStatus = "dead" // activo con cantidad 0
)

// Classify clasifica un producto según cantidad y punto de reorden.
// Función pura sobre el registro del producto; no consulta el libro.
func Classify(p *entity.Product) StockStatus {
	if p.Quantity == 0 && p.IsActive() {
		return StockStatusDead
	}
	if p.Quantity > 0 && p.Quantity <= p.ReorderLevel {
		return StockStatusLow
	}
	return StockStatusNormal
}

// IsLowStock indica si el producto pertenece al conjunto de stock bajo.
// El stock muerto (cantidad 0) es el caso extremo de stock bajo, así que
// también cuenta.
func IsLowStock(p *entity.Product) bool {
	return p.IsActive() && p.Quantity <= p.ReorderLevel
}

// IsDeadStock indica si el producto es stock muerto (activo y agotado).
func IsDeadStock(p *entity.Product) bool {
	return p.IsActive() && p.Quantity == 0
}
