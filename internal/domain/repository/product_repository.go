package repository

import (
	"context"
	"time"

	"github.com/rizwimohdaltamash/InventorySync/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// Create devuelve domain.ErrDuplicateSKU si el SKU ya existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error

	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
	// Serializa los movimientos por producto; solo tiene sentido dentro de
	// una transacción (TxRunner).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)

	// ApplyStock fija la cantidad autoritativa y la fecha del último
	// movimiento. Único camino de escritura de esos dos campos.
	ApplyStock(ctx context.Context, id string, newQuantity int, movedAt time.Time) error
}
