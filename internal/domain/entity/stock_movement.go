package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn     = "in"     // entrada (compra, devolución de cliente, producción)
	MovementTypeOut    = "out"    // salida (venta, muestra, uso interno)
	MovementTypeDamage = "damage" // pérdida (daño, vencimiento, robo, ajuste a la baja)
)

// StockMovement es una entrada del libro de movimientos. El libro es
// append-only: una vez escrita, la entrada nunca se actualiza ni se borra.
// PreviousStock/NewStock son la foto del stock antes y después de aplicar.
//
// Invariante: NewStock == PreviousStock + Quantity para "in";
// NewStock == PreviousStock - Quantity para "out" y "damage"; NewStock >= 0.
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string // in | out | damage
	Quantity      int    // siempre positivo; el tipo define la dirección
	Reason        string // obligatorio; lista sugerida en UI, no cerrada
	Reference     string // doc externo: factura, orden, etc.
	Notes         string // obligatorio para damage
	PreviousStock int
	NewStock      int
	PerformedBy   string // actor, registrado tal cual lo pasa el caller
	OccurredAt    time.Time
	CreatedAt     time.Time
}
