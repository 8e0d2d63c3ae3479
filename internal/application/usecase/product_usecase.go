package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rizwimohdaltamash/InventorySync/internal/application/dto"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/entity"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/inventory"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/repository"
)

// ProductUseCase CRUD del catálogo más los conjuntos de stock bajo/muerto.
// La cantidad solo se fija al crear; después se muta vía movimientos.
type ProductUseCase struct {
	repo          repository.ProductRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, analyticsRepo repository.AnalyticsRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, analyticsRepo: analyticsRepo}
}

// Create crea un producto. Devuelve ErrDuplicateSKU si el SKU ya existe.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	if sku == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.ReorderLevel < 0 || in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.repo.GetBySKU(ctx, sku); existing != nil {
		return nil, domain.ErrDuplicateSKU
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          sku,
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		Quantity:     in.Quantity,
		ReorderLevel: in.ReorderLevel,
		UnitPrice:    in.UnitPrice,
		WeightValue:  in.WeightValue,
		WeightUnit:   in.WeightUnit,
		Supplier:     in.Supplier,
		Location:     in.Location,
		Status:       entity.ProductStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. Quantity y LastMovementAt no se tocan aquí.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.ReorderLevel = *in.ReorderLevel
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.WeightValue != nil {
		product.WeightValue = in.WeightValue
	}
	if in.WeightUnit != nil {
		product.WeightUnit = *in.WeightUnit
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	if in.Location != nil {
		product.Location = *in.Location
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.ProductStatusActive, entity.ProductStatusInactive:
			product.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto del catálogo. El motor de movimientos rechaza
// cualquier movimiento posterior con ProductNotFound.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Products: out,
		Page:     dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// LowStock productos activos con cantidad <= punto de reorden (incluye el
// stock muerto), orden estable por SKU.
func (uc *ProductUseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.analyticsRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// DeadStock productos activos agotados, con LastMovementAt para la vista.
func (uc *ProductUseCase) DeadStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.analyticsRepo.ListDeadStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		Quantity:       p.Quantity,
		ReorderLevel:   p.ReorderLevel,
		UnitPrice:      p.UnitPrice,
		WeightValue:    p.WeightValue,
		WeightUnit:     p.WeightUnit,
		Supplier:       p.Supplier,
		Location:       p.Location,
		Status:         p.Status,
		StockStatus:    string(inventory.Classify(p)),
		LastMovementAt: p.LastMovementAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProductResponse expone la conversión para otros paquetes de aplicación
// (el handler de movimientos devuelve el producto actualizado).
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return *toProductResponse(p)
}
