package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product representa un SKU del inventario.
// Quantity y LastMovementAt se mutan ÚNICAMENTE vía el motor de movimientos
// (ApplyMovementUseCase); el CRUD del catálogo nunca los toca.
type Product struct {
	ID             string
	SKU            string // código único
	Name           string
	Description    string
	Category       string
	Quantity       int // invariante: nunca negativo
	ReorderLevel   int
	UnitPrice      decimal.Decimal
	WeightValue    *decimal.Decimal // opcional
	WeightUnit     string           // kg, g, lb, etc.
	Supplier       string
	Location       string
	Status         string // active | inactive
	LastMovementAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive indica si el producto admite movimientos.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
