package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/dto"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/stock"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del libro de stock y el descuento
// diario (protegido).
type StockHandler struct {
	ledger    *stock.LedgerUseCase
	deduction *stock.DeductionUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.LedgerUseCase, deduction *stock.DeductionUseCase) *StockHandler {
	return &StockHandler{ledger: ledger, deduction: deduction}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Inserta un asiento en el libro y actualiza el saldo del insumo
//
//	en la misma transacción. La cantidad va firmada según el tipo.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "insumo_id, movement_type, quantity (firmada), reference, notes, menu_id"
// @Success      201   {object}  dto.StockMovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.ledger.RegisterMovement(c.Context(), stock.MovementInput{
		InsumoID:     in.InsumoID,
		MovementType: in.MovementType,
		Quantity:     in.Quantity,
		Reference:    in.Reference,
		Notes:        in.Notes,
		MenuID:       in.MenuID,
		RegisteredBy: actorName(c, in.RegisteredBy),
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementDTO(movement))
}

// GetHistory godoc
// @Summary      Historial de movimientos de un insumo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        insumoID  path   string  true   "ID del insumo"
// @Param        from      query  string  false  "Desde YYYY-MM-DD"
// @Param        to        query  string  false  "Hasta YYYY-MM-DD"
// @Param        limit     query  int     false  "Máximo de asientos (default 50)"
// @Param        offset    query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.StockMovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{insumoID} [get]
func (h *StockHandler) GetHistory(c *fiber.Ctx) error {
	insumoID := c.Params("insumoID")
	from, err := parseOptionalDate(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from en formato YYYY-MM-DD"})
	}
	to, err := parseOptionalDate(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to en formato YYYY-MM-DD"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	movements, err := h.ledger.History(c.Context(), insumoID, from, to, limit, offset)
	if err != nil {
		return stockError(c, err)
	}
	out := make([]dto.StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementDTO(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// ProcessDailyDeduction godoc
// @Summary      Descuento diario de preparación
// @Description  Agrega la demanda de los menús de la fecha y descuenta stock
//
//	insumo por insumo. Éxito parcial: los insumos sin stock se
//	reportan con su faltante sin bloquear a los demás.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DailyDeductionRequest  true  "date, deducted_by, diner_count, overrides"
// @Success      200   {object}  dto.DailyDeductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/daily-deduction [post]
func (h *StockHandler) ProcessDailyDeduction(c *fiber.Ctx) error {
	var in dto.DailyDeductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date requerida en formato YYYY-MM-DD"})
	}

	results, err := h.deduction.ProcessDailyDeduction(c.Context(), stock.DeductionInput{
		Date:       date,
		DeductedBy: actorName(c, in.DeductedBy),
		DinerCount: in.DinerCount,
		Overrides:  in.Overrides,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	resp := dto.DailyDeductionResponse{
		Date:      in.Date,
		Succeeded: []dto.DeductionItemResultDTO{},
		Failed:    []dto.DeductionItemResultDTO{},
	}
	for _, r := range results {
		item := dto.DeductionItemResultDTO{
			InsumoID:   r.InsumoID,
			InsumoName: r.InsumoName,
			Required:   r.Required,
			Deducted:   r.Deducted,
			NewBalance: r.NewBalance,
		}
		if r.Err != nil {
			item.Failed = true
			item.Message = r.Err.Error()
			var insufficient *stock.InsufficientStockError
			if errors.As(r.Err, &insufficient) {
				item.Shortfall = insufficient.Shortfall()
			}
			resp.Failed = append(resp.Failed, item)
			continue
		}
		resp.Succeeded = append(resp.Succeeded, item)
	}
	return c.JSON(resp)
}

// stockError mapea errores de dominio a códigos HTTP.
func stockError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrSignMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SIGN_MISMATCH", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "insumo no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toMovementDTO(m *entity.StockMovement) dto.StockMovementDTO {
	return dto.StockMovementDTO{
		ID:               m.ID,
		InsumoID:         m.InsumoID,
		MovementType:     m.MovementType,
		QuantityChange:   m.QuantityChange,
		ResultingBalance: m.ResultingBalance,
		Reference:        m.Reference,
		Notes:            m.Notes,
		MenuID:           m.MenuID,
		CreatedAt:        m.CreatedAt,
		CreatedBy:        m.CreatedBy,
	}
}

// parseOptionalDate devuelve nil si el parámetro está ausente; si vino y no
// parsea, es error del caller, no un filtro ignorado en silencio.
func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
