package repository

import (
	"context"
	"time"

	"github.com/rizwimohdaltamash/InventorySync/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos. Campos vacíos no filtran.
type MovementFilter struct {
	Type      string // in | out | damage
	ProductID string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MovementRecord movimiento enriquecido con SKU y nombre del producto
// (las vistas de reporte los muestran sin segunda consulta).
type MovementRecord struct {
	entity.StockMovement
	SKU         string
	ProductName string
}

// StockMovementRepository puerto del libro de movimientos. Append-only:
// no existe Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error

	// List devuelve movimientos ordenados del más reciente al más antiguo
	// (occurred_at DESC). Refleja todo lo confirmado antes de iniciar la
	// lectura; nunca entradas parciales.
	List(ctx context.Context, filter MovementFilter) ([]MovementRecord, error)
}
