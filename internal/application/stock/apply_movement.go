package stock

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rizwimohdaltamash/InventorySync/internal/domain"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/entity"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/repository"
	"github.com/rizwimohdaltamash/InventorySync/pkg/logger"
)

// ApplyMovementUseCase aplica movimientos de stock (in/out/damage) de forma
// transaccional con bloqueo de fila (SELECT FOR UPDATE) sobre el producto.
// El bloqueo serializa los movimientos por producto; movimientos sobre
// productos distintos avanzan en paralelo.
type ApplyMovementUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	applied  *prometheus.CounterVec // movimientos confirmados, por tipo
	rejected prometheus.Counter     // rechazos de validación
}

// NewApplyMovementUseCase construye el motor de movimientos.
func NewApplyMovementUseCase(
	txRunner TxRunner,
	log *logger.Logger,
	applied *prometheus.CounterVec,
	rejected prometheus.Counter,
) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{
		txRunner: txRunner,
		log:      log,
		applied:  applied,
		rejected: rejected,
	}
}

// MovementInput entrada para aplicar un movimiento.
// PerformedBy es el actor que pasa el caller; se registra tal cual,
// aquí no se toman decisiones de autorización.
type MovementInput struct {
	ProductID   string
	Type        string // in | out | damage
	Quantity    int
	Reason      string
	Reference   string
	Notes       string
	PerformedBy string
}

// ApplyMovement valida y aplica un movimiento como unidad atómica por
// producto: bloquea la fila, valida contra el stock actual, fija la nueva
// cantidad, apenda la entrada al libro y confirma. Devuelve el producto ya
// actualizado y la entrada creada.
//
// Orden de validación (gana el primer fallo):
//  1. cantidad positiva            → ErrInvalidQuantity
//  2. producto existente y activo  → ErrProductNotFound
//  3. motivo no vacío              → ErrMissingReason
//  4. notas en damage              → ErrMissingDetail
//  5. stock suficiente (out/damage)→ InsufficientStockError
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*entity.Product, *entity.StockMovement, error) {
	if input.Quantity <= 0 {
		uc.rejected.Inc()
		return nil, nil, domain.ErrInvalidQuantity
	}
	switch input.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut, entity.MovementTypeDamage:
	default:
		uc.rejected.Inc()
		return nil, nil, domain.ErrInvalidInput
	}

	var (
		updated  *entity.Product
		movement *entity.StockMovement
	)

	// Validación y efecto dentro de la misma transacción: la fila queda
	// bloqueada desde GetForUpdate hasta el Commit, así que el stock leído
	// es el autoritativo durante toda la operación.
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil || !product.IsActive() {
			return domain.ErrProductNotFound
		}
		if strings.TrimSpace(input.Reason) == "" {
			return domain.ErrMissingReason
		}
		if input.Type == entity.MovementTypeDamage && strings.TrimSpace(input.Notes) == "" {
			return domain.ErrMissingDetail
		}

		previous := product.Quantity
		var newStock int
		switch input.Type {
		case entity.MovementTypeIn:
			newStock = previous + input.Quantity
		case entity.MovementTypeOut, entity.MovementTypeDamage:
			if input.Quantity > previous {
				return &domain.InsufficientStockError{Available: previous, Requested: input.Quantity}
			}
			newStock = previous - input.Quantity
		}

		now := time.Now()
		if err := productRepo.ApplyStock(ctx, product.ID, newStock, now); err != nil {
			return err
		}

		entry := &entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			Type:          input.Type,
			Quantity:      input.Quantity,
			Reason:        strings.TrimSpace(input.Reason),
			Reference:     input.Reference,
			Notes:         input.Notes,
			PreviousStock: previous,
			NewStock:      newStock,
			PerformedBy:   input.PerformedBy,
			OccurredAt:    now,
			CreatedAt:     now,
		}
		if err := movementRepo.Create(ctx, entry); err != nil {
			return err
		}

		product.Quantity = newStock
		product.LastMovementAt = &now
		product.UpdatedAt = now
		updated = product
		movement = entry
		return nil
	})
	if err != nil {
		if isValidationError(err) {
			uc.rejected.Inc()
		}
		return nil, nil, err
	}

	uc.applied.WithLabelValues(movement.Type).Inc()
	uc.log.Debug().
		Str("product_id", movement.ProductID).
		Str("type", movement.Type).
		Int("quantity", movement.Quantity).
		Int("new_stock", movement.NewStock).
		Msg("movimiento aplicado")

	return updated, movement, nil
}

func isValidationError(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidQuantity,
		domain.ErrProductNotFound,
		domain.ErrMissingReason,
		domain.ErrMissingDetail,
		domain.ErrInsufficientStock,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
