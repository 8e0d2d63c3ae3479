package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rizwimohdaltamash/InventorySync/internal/application/analytics"
	"github.com/rizwimohdaltamash/InventorySync/internal/application/dto"
)

// DashboardHandler agregados de solo lectura para las vistas de reporte (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Stats del dashboard
// @Description  Totales del catálogo, valor de inventario activo y conteo de
//
//	movimientos por tipo. start_date/end_date acotan solo el conteo.
//
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusivo)"
// @Success      200  {object}  dto.DashboardStatsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	var from, to *time.Time
	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválido"})
		}
		from = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválido"})
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		to = &t
	}

	out, err := h.uc.GetStats(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopSKUs godoc
// @Summary      Ranking de SKUs por unidades salidas
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        n  query  int  false  "tamaño del ranking, default 10; 0 = lista completa"
// @Success      200  {array}  dto.TopSKUDTO
// @Router       /api/dashboard/top-skus [get]
func (h *DashboardHandler) TopSKUs(c *fiber.Ctx) error {
	limit := c.QueryInt("n", 10)
	out, err := h.uc.TopSKUs(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "skus": out})
}

// Trends godoc
// @Summary      Volumen diario de movimientos por tipo
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "ventana en días, default 30"
// @Success      200  {array}  dto.TrendPointDTO
// @Router       /api/dashboard/trends [get]
func (h *DashboardHandler) Trends(c *fiber.Ctx) error {
	days := c.QueryInt("days", 0)
	out, err := h.uc.Trends(c.Context(), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"days": len(out), "trends": out})
}
