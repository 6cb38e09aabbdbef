package stock

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain"
)

// InsufficientStockError detalla un rechazo por stock insuficiente: el insumo,
// la cantidad que se intentó descontar y el saldo vigente al momento del
// rechazo. Envuelve domain.ErrInsufficientStock para errors.Is.
type InsufficientStockError struct {
	InsumoID   string
	InsumoName string
	Requested  decimal.Decimal // cantidad a descontar (positiva)
	Available  decimal.Decimal // saldo al momento del rechazo
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (%s): se requieren %s y hay %s",
		e.InsumoName, e.InsumoID, e.Requested.String(), e.Available.String())
}

func (e *InsufficientStockError) Unwrap() error { return domain.ErrInsufficientStock }

// Shortfall cuánto faltó para cubrir lo solicitado.
func (e *InsufficientStockError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}
