package entity

import "github.com/shopspring/decimal"

// RecetaInsumo es una línea de receta: cuánta cantidad (en unidades base
// del insumo) necesita la receta por porción servida.
type RecetaInsumo struct {
	InsumoID     string
	QuantityBase decimal.Decimal // > 0, en unidades base del insumo
}

// Receta representa una preparación de cocina con su lista ordenada de insumos.
type Receta struct {
	ID       string
	Name     string
	Category string
	Lines    []RecetaInsumo
}
