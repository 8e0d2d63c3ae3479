package stock

import (
	"context"
	"time"

	"github.com/rizwimohdaltamash/InventorySync/internal/application/dto"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/entity"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/repository"
)

// MovementQueryUseCase camino de lectura del libro de movimientos.
// Solo lee; nunca bloquea a los escritores.
type MovementQueryUseCase struct {
	movementRepo repository.StockMovementRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(movementRepo repository.StockMovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movementRepo: movementRepo}
}

// List lista movimientos filtrados por tipo, producto y rango de fechas,
// del más reciente al más antiguo. Filtros vacíos devuelven el histórico.
func (uc *MovementQueryUseCase) List(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	if in.Type != "" {
		switch in.Type {
		case entity.MovementTypeIn, entity.MovementTypeOut, entity.MovementTypeDamage:
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	in.DefaultPage()

	filter := repository.MovementFilter{
		Type:      in.Type,
		ProductID: in.ProductID,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}

	if in.StartDate != "" {
		from, err := time.Parse("2006-01-02", in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.From = &from
	}
	if in.EndDate != "" {
		to, err := time.Parse("2006-01-02", in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		// Inclusivo: hasta el fin del día indicado.
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &to
	}

	records, err := uc.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MovementResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toMovementResponseFromRecord(r))
	}
	return &dto.MovementListResponse{Movements: out, Total: len(out)}, nil
}

// ListByProduct histórico de un producto.
func (uc *MovementQueryUseCase) ListByProduct(ctx context.Context, productID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	return uc.List(ctx, dto.MovementListRequest{ProductID: productID, PageRequest: page})
}

func toMovementResponseFromRecord(r repository.MovementRecord) dto.MovementResponse {
	resp := ToMovementResponse(&r.StockMovement)
	resp.SKU = r.SKU
	resp.ProductName = r.ProductName
	return resp
}

// ToMovementResponse convierte la entidad a su representación pública.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		Reason:        m.Reason,
		Reference:     m.Reference,
		Notes:         m.Notes,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		PerformedBy:   m.PerformedBy,
		OccurredAt:    m.OccurredAt,
	}
}
