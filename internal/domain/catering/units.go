// Package catering contiene servicios de dominio puros para la operación de
// cocina: conversión de unidades entre receta (unidad base) y compra/stock
// (unidad de compra).
package catering

import (
	"github.com/shopspring/decimal"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain"
)

// ToPurchaseUnits convierte una cantidad en unidades base a unidades de compra.
// factor = unidades base por una unidad de compra (ej. 1000 para kg↔g).
// Asume factor > 0 (validar antes con ValidateConversionFactor). No redondea:
// el redondeo es política del consumidor, no de esta conversión.
func ToPurchaseUnits(quantityBase, factor decimal.Decimal) decimal.Decimal {
	return quantityBase.Div(factor)
}

// ToBaseUnits convierte una cantidad en unidades de compra a unidades base.
func ToBaseUnits(quantityPurchase, factor decimal.Decimal) decimal.Decimal {
	return quantityPurchase.Mul(factor)
}

// ValidateConversionFactor rechaza factores cero o negativos como error de
// integridad de datos, antes de cualquier conversión o escritura.
func ValidateConversionFactor(factor decimal.Decimal) error {
	if factor.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidConversionFactor
	}
	return nil
}
