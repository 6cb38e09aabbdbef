package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/stock/movements.
// La cantidad va firmada: positiva para tipos de entrada, negativa para salida.
type RegisterMovementRequest struct {
	InsumoID     string          `json:"insumo_id"`
	MovementType string          `json:"movement_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reference    string          `json:"reference,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	MenuID       string          `json:"menu_id,omitempty"`       // menú origen, cuando el movimiento sale de uno
	RegisteredBy string          `json:"registered_by,omitempty"` // si falta, se usa la identidad del token
}

// StockMovementDTO asiento del libro de stock para pantalla.
type StockMovementDTO struct {
	ID               string          `json:"id"`
	InsumoID         string          `json:"insumo_id"`
	MovementType     string          `json:"movement_type"`
	QuantityChange   decimal.Decimal `json:"quantity_change"`
	ResultingBalance decimal.Decimal `json:"resulting_balance"`
	Reference        string          `json:"reference,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	MenuID           string          `json:"menu_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	CreatedBy        string          `json:"created_by"`
}

// DailyDeductionRequest body para POST /api/stock/daily-deduction.
// Overrides permite al operador ajustar hacia abajo la cantidad calculada por
// insumo antes de confirmar; se revalida contra el stock al momento del commit.
type DailyDeductionRequest struct {
	Date       string                     `json:"date"` // YYYY-MM-DD
	DeductedBy string                     `json:"deducted_by,omitempty"`
	DinerCount int                        `json:"diner_count,omitempty"`
	Overrides  map[string]decimal.Decimal `json:"overrides,omitempty"` // insumo_id → cantidad a descontar
}

// DeductionItemResultDTO resultado por insumo del descuento diario.
// Failed=true lleva Shortfall (cuánto faltó) y Message; si no, Deducted y NewBalance.
type DeductionItemResultDTO struct {
	InsumoID   string          `json:"insumo_id"`
	InsumoName string          `json:"insumo_name"`
	Required   decimal.Decimal `json:"required"`
	Deducted   decimal.Decimal `json:"deducted"`
	NewBalance decimal.Decimal `json:"new_balance"`
	Failed     bool            `json:"failed"`
	Shortfall  decimal.Decimal `json:"shortfall,omitempty"`
	Message    string          `json:"message,omitempty"`
}

// DailyDeductionResponse lote completo: éxitos y fallas juntos (semántica de
// éxito parcial, un insumo sin stock no bloquea a los demás).
type DailyDeductionResponse struct {
	Date      string                   `json:"date"`
	Succeeded []DeductionItemResultDTO `json:"succeeded"`
	Failed    []DeductionItemResultDTO `json:"failed"`
}
