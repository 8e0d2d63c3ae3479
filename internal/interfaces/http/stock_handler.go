package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/rizwimohdaltamash/InventorySync/internal/application/dto"
	"github.com/rizwimohdaltamash/InventorySync/internal/application/stock"
	"github.com/rizwimohdaltamash/InventorySync/internal/application/usecase"
	"github.com/rizwimohdaltamash/InventorySync/internal/domain/entity"
)

// MovementEngine lo que el handler necesita del motor de movimientos.
type MovementEngine interface {
	ApplyMovement(ctx context.Context, input stock.MovementInput) (*entity.Product, *entity.StockMovement, error)
}

// StockHandler maneja los endpoints de movimientos de stock (protegido).
type StockHandler struct {
	engine MovementEngine
	query  *stock.MovementQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(engine MovementEngine, query *stock.MovementQueryUseCase) *StockHandler {
	return &StockHandler{engine: engine, query: query}
}

// StockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "product_id, quantity, reason, reference?, notes?"
// @Success      201   {object}  dto.ApplyMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/in [post]
func (h *StockHandler) StockIn(c *fiber.Ctx) error {
	return h.apply(c, entity.MovementTypeIn)
}

// StockOut godoc
// @Summary      Registrar salida de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "product_id, quantity, reason, reference?, notes?"
// @Success      201   {object}  dto.ApplyMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente (available, requested)"
// @Router       /api/stock/out [post]
func (h *StockHandler) StockOut(c *fiber.Ctx) error {
	return h.apply(c, entity.MovementTypeOut)
}

// StockDamage godoc
// @Summary      Registrar daño de stock
// @Description  Descuenta stock como una salida; las notas son obligatorias.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "product_id, quantity, reason, notes"
// @Success      201   {object}  dto.ApplyMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/damage [post]
func (h *StockHandler) StockDamage(c *fiber.Ctx) error {
	return h.apply(c, entity.MovementTypeDamage)
}

// apply es el camino común: el endpoint fija el tipo, el body lo demás.
func (h *StockHandler) apply(c *fiber.Ctx, movementType string) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	product, movement, err := h.engine.ApplyMovement(c.Context(), stock.MovementInput{
		ProductID:   in.ProductID,
		Type:        movementType,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Reference:   in.Reference,
		Notes:       in.Notes,
		PerformedBy: GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ApplyMovementResponse{
		UpdatedProduct: usecase.ToProductResponse(product),
		Movement:       stock.ToMovementResponse(movement),
	})
}

// ListMovements godoc
// @Summary      Listar movimientos del libro
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "in | out | damage"
// @Param        product_id  query  string  false  "Filtrar por producto (UUID)"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusivo)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.query.List(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListProductMovements godoc
// @Summary      Histórico de movimientos de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/stock-movements/product/{id} [get]
func (h *StockHandler) ListProductMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.query.ListByProduct(c.Context(), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
