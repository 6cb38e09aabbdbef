package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock. Los tipos *In suman al saldo, los *Out restan.
const (
	MovementPurchaseIn     = "purchase-in"     // ingreso por compra directa
	MovementReceptionIn    = "reception-in"    // ingreso por recepción de pedido
	MovementAdjustmentIn   = "adjustment-in"   // ajuste positivo (inventario físico)
	MovementAdjustmentOut  = "adjustment-out"  // ajuste negativo (merma, corrección)
	MovementConsumptionOut = "consumption-out" // salida por consumo directo
	MovementDailyPrepOut   = "daily-prep-out"  // descuento por preparación diaria
)

// MovementDirection devuelve +1 para tipos de entrada, -1 para tipos de salida
// y 0 si el tipo es desconocido.
func MovementDirection(movementType string) int {
	switch movementType {
	case MovementPurchaseIn, MovementReceptionIn, MovementAdjustmentIn:
		return 1
	case MovementAdjustmentOut, MovementConsumptionOut, MovementDailyPrepOut:
		return -1
	default:
		return 0
	}
}

// StockMovement es un asiento inmutable del libro de stock de un insumo.
// QuantityChange va firmada (positiva entrada, negativa salida) y
// ResultingBalance es el saldo del insumo inmediatamente después del asiento.
// Los asientos nunca se editan ni se borran; las correcciones son asientos nuevos.
type StockMovement struct {
	ID               string
	InsumoID         string
	MovementType     string
	QuantityChange   decimal.Decimal // en unidades de compra, firmada
	ResultingBalance decimal.Decimal // saldo anterior + QuantityChange
	Reference        string          // factura, orden de compra, nota
	Notes            string
	MenuID           string // menú origen cuando aplica (descuento diario)
	CreatedAt        time.Time
	CreatedBy        string // nombre o ID de quien registró el movimiento
}
