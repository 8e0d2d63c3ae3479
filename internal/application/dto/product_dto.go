package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// La cantidad inicial entra por aquí una sola vez; después solo se mueve
// vía los endpoints de stock.
type CreateProductRequest struct {
	SKU          string           `json:"sku"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	Quantity     int              `json:"quantity"`
	ReorderLevel int              `json:"reorder_level"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
	WeightValue  *decimal.Decimal `json:"weight_value,omitempty"`
	WeightUnit   string           `json:"weight_unit,omitempty"`
	Supplier     string           `json:"supplier,omitempty"`
	Location     string           `json:"location,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no cambian.
// Quantity no aparece: el stock solo se muta vía movimientos.
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Category     *string          `json:"category,omitempty"`
	ReorderLevel *int             `json:"reorder_level,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	WeightValue  *decimal.Decimal `json:"weight_value,omitempty"`
	WeightUnit   *string          `json:"weight_unit,omitempty"`
	Supplier     *string          `json:"supplier,omitempty"`
	Location     *string          `json:"location,omitempty"`
	Status       *string          `json:"status,omitempty"`
}

// ProductResponse representación pública de un producto.
// StockStatus viene de la clasificación central (normal | low | dead).
type ProductResponse struct {
	ID             string           `json:"id"`
	SKU            string           `json:"sku"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Category       string           `json:"category,omitempty"`
	Quantity       int              `json:"quantity"`
	ReorderLevel   int              `json:"reorder_level"`
	UnitPrice      decimal.Decimal  `json:"unit_price"`
	WeightValue    *decimal.Decimal `json:"weight_value,omitempty"`
	WeightUnit     string           `json:"weight_unit,omitempty"`
	Supplier       string           `json:"supplier,omitempty"`
	Location       string           `json:"location,omitempty"`
	Status         string           `json:"status"`
	StockStatus    string           `json:"stock_status"`
	LastMovementAt *time.Time       `json:"last_movement_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Page     PageResponse      `json:"page"`
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
