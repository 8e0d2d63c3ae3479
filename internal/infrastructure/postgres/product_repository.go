package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rizwimohdaltamash/InventorySync/internal/domain"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/entity"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, description, category, quantity, reorder_level, unit_price,
		weight_value, weight_unit, supplier, location, status, last_movement_at, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. ErrDuplicateSKU si el SKU ya existe.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, category, quantity, reorder_level, unit_price,
			weight_value, weight_unit, supplier, location, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.Description, p.Category, p.Quantity, p.ReorderLevel, p.UnitPrice,
		p.WeightValue, p.WeightUnit, p.Supplier, p.Location, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSKU
		}
		return wrapTransient(fmt.Errorf("insert product: %w", err))
	}
	return nil
}

// GetByID obtiene un producto por ID. nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get product")
}

// GetBySKU obtiene un producto por SKU. nil si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, sku), "get product by sku")
}

// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
// Serializa los movimientos por producto dentro de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get product for update")
}

// ApplyStock fija la cantidad autoritativa y la fecha del último movimiento.
func (r *ProductRepo) ApplyStock(ctx context.Context, id string, newQuantity int, movedAt time.Time) error {
	query := `
		UPDATE products SET quantity = $2, last_movement_at = $3, updated_at = $3
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, newQuantity, movedAt)
	if err != nil {
		return wrapTransient(fmt.Errorf("apply stock: %w", err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List lista productos ordenados por SKU con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY sku LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, wrapTransient(fmt.Errorf("list products: %w", err))
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Update actualiza los campos del catálogo. No toca quantity ni last_movement_at
// (se manejan vía movimientos, ver ApplyStock).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, category = $4, reorder_level = $5,
			unit_price = $6, weight_value = $7, weight_unit = $8, supplier = $9, location = $10,
			status = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Category, p.ReorderLevel,
		p.UnitPrice, p.WeightValue, p.WeightUnit, p.Supplier, p.Location,
		p.Status, p.UpdatedAt,
	)
	if err != nil {
		return wrapTransient(fmt.Errorf("update product: %w", err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete elimina el producto. Los movimientos históricos del libro quedan.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return wrapTransient(fmt.Errorf("delete product: %w", err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.Quantity, &p.ReorderLevel, &p.UnitPrice,
		&p.WeightValue, &p.WeightUnit, &p.Supplier, &p.Location, &p.Status, &p.LastMovementAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapTransient(fmt.Errorf("%s: %w", op, err))
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.Quantity, &p.ReorderLevel, &p.UnitPrice,
			&p.WeightValue, &p.WeightUnit, &p.Supplier, &p.Location, &p.Status, &p.LastMovementAt,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
