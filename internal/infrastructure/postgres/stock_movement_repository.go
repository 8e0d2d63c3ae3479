package postgres

import (
	"context"
	"fmt"

	"github.com/rizwimohdaltamash/InventorySync/internal/domain/entity"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Append-only: solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create apenda una entrada al libro.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, reason, reference, notes,
			previous_stock, new_stock, performed_by, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.Reason, m.Reference, m.Notes,
		m.PreviousStock, m.NewStock, m.PerformedBy, m.OccurredAt, m.CreatedAt,
	)
	if err != nil {
		return wrapTransient(fmt.Errorf("create stock movement: %w", err))
	}
	return nil
}

// List lista movimientos con filtros opcionales, del más reciente al más
// antiguo. El JOIN trae SKU y nombre para las vistas de reporte; LEFT JOIN
// porque el producto pudo haberse borrado del catálogo después.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]repository.MovementRecord, error) {
	query := `
		SELECT m.id, m.product_id, m.type, m.quantity, m.reason, m.reference, m.notes,
			m.previous_stock, m.new_stock, m.performed_by, m.occurred_at, m.created_at,
			COALESCE(p.sku, ''), COALESCE(p.name, '')
		FROM stock_movements m
		LEFT JOIN products p ON p.id = m.product_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if f.Type != "" {
		query += fmt.Sprintf(" AND m.type = $%d", pos)
		args = append(args, f.Type)
		pos++
	}
	if f.ProductID != "" {
		query += fmt.Sprintf(" AND m.product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND m.occurred_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND m.occurred_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY m.occurred_at DESC, m.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapTransient(fmt.Errorf("list movements: %w", err))
	}
	defer rows.Close()

	var list []repository.MovementRecord
	for rows.Next() {
		var rec repository.MovementRecord
		if err := rows.Scan(
			&rec.ID, &rec.ProductID, &rec.Type, &rec.Quantity, &rec.Reason, &rec.Reference, &rec.Notes,
			&rec.PreviousStock, &rec.NewStock, &rec.PerformedBy, &rec.OccurredAt, &rec.CreatedAt,
			&rec.SKU, &rec.ProductName,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}
