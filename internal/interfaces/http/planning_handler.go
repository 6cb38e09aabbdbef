package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/dto"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/planning"
)

// PurchasePlanPDFGenerator genera el PDF del plan de compras.
type PurchasePlanPDFGenerator interface {
	Generate(ctx context.Context, start, end time.Time, plan *dto.PurchaseSuggestionsResponse) ([]byte, error)
}

// PlanningHandler maneja las peticiones HTTP de planificación: sugerencias de
// compra y reporte quebrado (protegido).
type PlanningHandler struct {
	suggestions *planning.SuggestionUseCase
	quebrado    *planning.QuebradoUseCase
	pdf         PurchasePlanPDFGenerator
}

// NewPlanningHandler construye el handler.
func NewPlanningHandler(suggestions *planning.SuggestionUseCase, quebrado *planning.QuebradoUseCase, pdf PurchasePlanPDFGenerator) *PlanningHandler {
	return &PlanningHandler{suggestions: suggestions, quebrado: quebrado, pdf: pdf}
}

// GetPurchaseSuggestions godoc
// @Summary      Sugerencias de compra del período
// @Description  Combina la demanda agregada de los menús con el stock vivo y
//
//	los mínimos configurados. El filtro por razón se aplica después
//	del cálculo y el total estimado corresponde a las filas mostradas.
//
// @Tags         planning
// @Security     Bearer
// @Produce      json
// @Param        start        query  string  true   "Fecha inicio YYYY-MM-DD"
// @Param        end          query  string  true   "Fecha fin YYYY-MM-DD (inclusive)"
// @Param        reason       query  string  false  "Filtrar por razón (both, menu_demand, min_stock_level, zero_stock_alert)"
// @Param        diner_count  query  int     false  "Comensales para escalar cantidades"
// @Success      200  {object}  dto.PurchaseSuggestionsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/planning/purchase-suggestions [get]
func (h *PlanningHandler) GetPurchaseSuggestions(c *fiber.Ctx) error {
	start, end, ok := parseDateRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start y end requeridos en formato YYYY-MM-DD"})
	}
	opts := planning.AggregateOptions{DinerCount: c.QueryInt("diner_count")}
	resp, err := h.suggestions.GeneratePurchaseSuggestions(c.Context(), start, end, c.Query("reason"), opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// GetPurchaseSuggestionsPDF godoc
// @Summary      Plan de compras en PDF
// @Tags         planning
// @Security     Bearer
// @Produce      application/pdf
// @Param        start        query  string  true   "Fecha inicio YYYY-MM-DD"
// @Param        end          query  string  true   "Fecha fin YYYY-MM-DD (inclusive)"
// @Param        reason       query  string  false  "Filtrar por razón"
// @Param        diner_count  query  int     false  "Comensales para escalar cantidades"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/planning/purchase-suggestions/pdf [get]
func (h *PlanningHandler) GetPurchaseSuggestionsPDF(c *fiber.Ctx) error {
	start, end, ok := parseDateRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start y end requeridos en formato YYYY-MM-DD"})
	}
	opts := planning.AggregateOptions{DinerCount: c.QueryInt("diner_count")}
	resp, err := h.suggestions.GeneratePurchaseSuggestions(c.Context(), start, end, c.Query("reason"), opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	pdfBytes, err := h.pdf.Generate(c.Context(), start, end, resp)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="plan-de-compras.pdf"`)
	return c.Send(pdfBytes)
}

// GetQuebrado godoc
// @Summary      Reporte quebrado del período
// @Description  Desglose de necesidades de insumos por día, servicio y receta,
//
//	más la vista consolidada por insumo. Solo lectura.
//
// @Tags         planning
// @Security     Bearer
// @Produce      json
// @Param        start        query  string  true   "Fecha inicio YYYY-MM-DD"
// @Param        end          query  string  true   "Fecha fin YYYY-MM-DD (inclusive)"
// @Param        diner_count  query  int     false  "Comensales para escalar cantidades"
// @Success      200  {object}  dto.QuebradoReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/planning/quebrado [get]
func (h *PlanningHandler) GetQuebrado(c *fiber.Ctx) error {
	start, end, ok := parseDateRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start y end requeridos en formato YYYY-MM-DD"})
	}
	report, err := h.quebrado.Report(c.Context(), start, end, c.QueryInt("diner_count"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(report)
}

// parseDateRange lee start/end (YYYY-MM-DD, inclusive) del query string.
func parseDateRange(c *fiber.Ctx) (start, end time.Time, ok bool) {
	var err error
	start, err = time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = time.Parse("2006-01-02", c.Query("end"))
	if err != nil || end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
