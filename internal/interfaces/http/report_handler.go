package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MarcelaGodoy93/inventario-pro/internal/application/dto"
	"github.com/MarcelaGodoy93/inventario-pro/internal/application/reports"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/repository"
)

// ReportHandler dashboard y reportes de solo lectura (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Resumen general, top de ventas y estadísticas por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Inventory godoc
// @Summary      Reporte de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        category   query  string  false  "ID de categoría"
// @Param        status     query  string  false  "active | inactive | discontinued"
// @Param        low_stock  query  bool    false  "Solo productos con stock bajo"
// @Success      200        {object}  dto.InventoryReportResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		CategoryID: c.Query("category"),
		Status:     c.Query("status"),
		LowStock:   c.QueryBool("low_stock", false),
	}
	out, err := h.uc.Inventory(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Reporte de movimientos con producto y usuario resueltos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        product     query  string  false  "ID del producto"
// @Param        type        query  string  false  "entrada | salida | ajuste | transferencia"
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD o RFC3339)"
// @Param        limit       query  int     false  "Límite"   default(50)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200         {object}  dto.MovementReportResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 50), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	filter := repository.MovementFilter{
		ProductID: c.Query("product"),
		Type:      c.Query("type"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	var err error
	if filter.StartDate, err = parseDateQuery(c.Query("start_date"), false); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválida"})
	}
	if filter.EndDate, err = parseDateQuery(c.Query("end_date"), true); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválida"})
	}
	out, err := h.uc.Movements(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
