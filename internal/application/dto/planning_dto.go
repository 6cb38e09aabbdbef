package dto

import "github.com/shopspring/decimal"

// Razones por las que se sugiere comprar un insumo, en orden de prioridad.
const (
	ReasonBoth           = "both"             // demanda de menús y punto de reorden a la vez
	ReasonMenuDemand     = "menu_demand"      // la demanda del período supera el stock
	ReasonMinStockLevel  = "min_stock_level"  // el stock está bajo el mínimo configurado
	ReasonZeroStockAlert = "zero_stock_alert" // stock en cero sin demanda ni mínimo: alerta permanente
)

// PurchaseSuggestionDTO es una sugerencia de compra calculada para un insumo
// y un período. Se calcula bajo demanda y nunca se persiste.
type PurchaseSuggestionDTO struct {
	InsumoID               string          `json:"insumo_id"`
	InsumoName             string          `json:"insumo_name"`
	PurchaseUnit           string          `json:"purchase_unit"`
	NeededForPeriodRaw     decimal.Decimal `json:"needed_for_period_raw"`
	NeededForPeriodRounded decimal.Decimal `json:"needed_for_period_rounded"`
	CurrentStock           decimal.Decimal `json:"current_stock"`
	PendingReception       decimal.Decimal `json:"pending_reception"`
	SuggestionRaw          decimal.Decimal `json:"suggestion_raw"`
	SuggestionRounded      decimal.Decimal `json:"suggestion_rounded"`
	Reason                 string          `json:"reason"`
	EstimatedCost          decimal.Decimal `json:"estimated_cost"` // SuggestionRounded × costo unitario
}

// PurchaseSuggestionsResponse respuesta del listado de sugerencias. El total
// estimado se calcula sobre las filas efectivamente mostradas (post-filtro).
type PurchaseSuggestionsResponse struct {
	Total              int                     `json:"total"`
	TotalEstimatedCost decimal.Decimal         `json:"total_estimated_cost"`
	Suggestions        []PurchaseSuggestionDTO `json:"suggestions"`
}

// QuebradoIngredientDTO necesidad de un insumo dentro de una receta del quebrado.
type QuebradoIngredientDTO struct {
	InsumoID         string          `json:"insumo_id"`
	InsumoName       string          `json:"insumo_name"`
	BaseUnit         string          `json:"base_unit"`
	PurchaseUnit     string          `json:"purchase_unit"`
	QuantityBase     decimal.Decimal `json:"quantity_base"`
	QuantityPurchase decimal.Decimal `json:"quantity_purchase"`
}

// QuebradoRecipeDTO una receta asignada dentro de un servicio, con sus insumos.
type QuebradoRecipeDTO struct {
	RecetaID     string                  `json:"receta_id"`
	RecetaName   string                  `json:"receta_name"`
	DishCategory string                  `json:"dish_category"`
	Servings     decimal.Decimal         `json:"servings"`
	Ingredients  []QuebradoIngredientDTO `json:"ingredients"`
}

// QuebradoServiceDTO un servicio (desayuno, almuerzo, cena) de un día del quebrado.
type QuebradoServiceDTO struct {
	Service string              `json:"service"`
	Recipes []QuebradoRecipeDTO `json:"recipes"`
}

// QuebradoDayDTO un día del quebrado con sus servicios.
type QuebradoDayDTO struct {
	Date     string               `json:"date"` // YYYY-MM-DD
	Services []QuebradoServiceDTO `json:"services"`
}

// ConsolidatedInsumoDTO total consolidado de un insumo en todo el rango
// (la vista colapsada, idéntica a la salida del agregador de demanda).
type ConsolidatedInsumoDTO struct {
	InsumoID         string          `json:"insumo_id"`
	InsumoName       string          `json:"insumo_name"`
	PurchaseUnit     string          `json:"purchase_unit"`
	QuantityPurchase decimal.Decimal `json:"quantity_purchase"`
}

// QuebradoReportDTO reporte quebrado completo: desglose por día/servicio/receta
// más la vista consolidada por insumo. Solo lectura, no muta stock.
type QuebradoReportDTO struct {
	Message      string                  `json:"message"`
	Days         []QuebradoDayDTO        `json:"days"`
	Consolidated []ConsolidatedInsumoDTO `json:"consolidated"`
}

// InsumoDTO vista de lectura de un insumo para los selectores del dashboard.
type InsumoDTO struct {
	ID                       string          `json:"id"`
	Name                     string          `json:"name"`
	BaseUnit                 string          `json:"base_unit"`
	PurchaseUnit             string          `json:"purchase_unit"`
	ConversionFactor         decimal.Decimal `json:"conversion_factor"`
	UnitCost                 decimal.Decimal `json:"unit_cost"`
	StockQuantity            decimal.Decimal `json:"stock_quantity"`
	MinStockLevel            decimal.Decimal `json:"min_stock_level"`
	PendingReceptionQuantity decimal.Decimal `json:"pending_reception_quantity"`
	PendingDeliveryQuantity  decimal.Decimal `json:"pending_delivery_quantity"`
}
