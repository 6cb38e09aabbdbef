package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Insumo representa un ingrediente de cocina con doble unidad de medida:
// BaseUnit es la unidad usada en las recetas (gramos, mililitros) y
// PurchaseUnit la usada para comprar y controlar stock (kilos, litros).
// ConversionFactor = unidades base por una unidad de compra.
//
// StockQuantity solo se modifica vía el libro de movimientos (stock.LedgerUseCase);
// nunca se escribe directamente fuera de esa ruta.
type Insumo struct {
	ID                       string
	Name                     string
	BaseUnit                 string
	PurchaseUnit             string
	ConversionFactor         decimal.Decimal // unidades base por unidad de compra, > 0
	UnitCost                 decimal.Decimal // costo por unidad de compra
	StockQuantity            decimal.Decimal // saldo actual en unidades de compra
	MinStockLevel            decimal.Decimal // punto de reorden en unidades de compra
	PendingReceptionQuantity decimal.Decimal // compras en tránsito, aún no ingresadas
	PendingDeliveryQuantity  decimal.Decimal // entregas comprometidas, aún no descontadas
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
