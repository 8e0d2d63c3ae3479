package dto

import "time"

// StockMovementRequest body para POST /api/stock/in, /api/stock/out y
// /api/stock/damage. El tipo lo fija el endpoint, no el body.
type StockMovementRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
	Reference string `json:"reference,omitempty"`
	Notes     string `json:"notes,omitempty"` // obligatorio en damage
}

// MovementResponse entrada del libro para respuestas HTTP.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	SKU           string    `json:"sku,omitempty"`
	ProductName   string    `json:"product_name,omitempty"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	Reason        string    `json:"reason"`
	Reference     string    `json:"reference,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	PerformedBy   string    `json:"performed_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ApplyMovementResponse respuesta de los endpoints de movimiento:
// el producto ya actualizado más la entrada recién apendada.
type ApplyMovementResponse struct {
	UpdatedProduct ProductResponse  `json:"updated_product"`
	Movement       MovementResponse `json:"movement"`
}

// MovementListRequest filtros de GET /api/stock-movements.
type MovementListRequest struct {
	Type      string `query:"type"`
	ProductID string `query:"product_id"`
	StartDate string `query:"start_date"` // YYYY-MM-DD
	EndDate   string `query:"end_date"`   // YYYY-MM-DD
	PageRequest
}

// MovementListResponse listado de movimientos, más reciente primero.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Total     int                `json:"total"`
}
