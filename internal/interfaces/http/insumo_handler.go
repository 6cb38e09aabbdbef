package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/dto"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/repository"
)

// InsumoHandler expone la lectura del catálogo de insumos para los selectores
// del dashboard (protegido). El ABM completo vive en el frontend contra la
// capa de formularios, fuera de este núcleo.
type InsumoHandler struct {
	insumoRepo repository.InsumoRepository
}

// NewInsumoHandler construye el handler.
func NewInsumoHandler(insumoRepo repository.InsumoRepository) *InsumoHandler {
	return &InsumoHandler{insumoRepo: insumoRepo}
}

// List godoc
// @Summary      Listar insumos
// @Tags         insumos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas (0 = todas)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.InsumoDTO
// @Router       /api/insumos [get]
func (h *InsumoHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)
	insumos, err := h.insumoRepo.List(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.InsumoDTO, 0, len(insumos))
	for _, i := range insumos {
		out = append(out, dto.InsumoDTO{
			ID:                       i.ID,
			Name:                     i.Name,
			BaseUnit:                 i.BaseUnit,
			PurchaseUnit:             i.PurchaseUnit,
			ConversionFactor:         i.ConversionFactor,
			UnitCost:                 i.UnitCost,
			StockQuantity:            i.StockQuantity,
			MinStockLevel:            i.MinStockLevel,
			PendingReceptionQuantity: i.PendingReceptionQuantity,
			PendingDeliveryQuantity:  i.PendingDeliveryQuantity,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "insumos": out})
}
