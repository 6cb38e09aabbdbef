package planning

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/dto"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/repository"
)

// SuggestionUseCase combina la demanda agregada del período con el stock vivo
// y los mínimos configurados para producir la lista de compras sugeridas.
type SuggestionUseCase struct {
	aggregator *DemandAggregator
	insumoRepo repository.InsumoRepository
}

// NewSuggestionUseCase construye el caso de uso.
func NewSuggestionUseCase(aggregator *DemandAggregator, insumoRepo repository.InsumoRepository) *SuggestionUseCase {
	return &SuggestionUseCase{aggregator: aggregator, insumoRepo: insumoRepo}
}

// GeneratePurchaseSuggestions calcula las sugerencias para [start, end].
// Candidatos: insumos con demanda en el período, con mínimo configurado o con
// stock en cero o negativo. Los insumos cuya sugerencia redondeada es cero se
// excluyen (no hay nada que comprar). reasonFilter se aplica después del
// cálculo, nunca antes, y el costo total se computa sobre las filas filtradas
// para que el total mostrado coincida con las filas mostradas.
func (uc *SuggestionUseCase) GeneratePurchaseSuggestions(
	ctx context.Context,
	start, end time.Time,
	reasonFilter string,
	opts AggregateOptions,
) (*dto.PurchaseSuggestionsResponse, error) {
	agg, err := uc.aggregator.Aggregate(ctx, start, end, opts)
	if err != nil {
		return nil, err
	}

	// Los candidatos sin demanda (mínimo configurado o stock en cero) no
	// aparecen en el snapshot del agregador: traer el catálogo completo.
	insumos, err := uc.insumoRepo.List(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("listar insumos: %w", err)
	}

	suggestions := make([]dto.PurchaseSuggestionDTO, 0, len(agg.Demands))
	for _, insumo := range insumos {
		demandRaw := decimal.Zero
		if d, ok := agg.Demands[insumo.ID]; ok {
			demandRaw = d.QuantityPurchase
		}
		s, ok := Classify(insumo, demandRaw)
		if !ok {
			continue
		}
		suggestions = append(suggestions, s)
	}

	// Mayor cantidad sugerida primero; desempate por nombre para que el
	// orden sea determinista.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.SuggestionRounded.Equal(b.SuggestionRounded) {
			return a.SuggestionRounded.GreaterThan(b.SuggestionRounded)
		}
		return a.InsumoName < b.InsumoName
	})

	filtered := FilterByReason(suggestions, reasonFilter)
	return &dto.PurchaseSuggestionsResponse{
		Total:              len(filtered),
		TotalEstimatedCost: TotalEstimatedCost(filtered),
		Suggestions:        filtered,
	}, nil
}

// Classify produce la sugerencia de un insumo dada su demanda del período en
// unidades de compra. ok=false cuando no hay nada que comprar (sugerencia
// redondeada cero) y el insumo queda fuera del resultado.
//
// Prioridad de razones:
//  1. demanda > stock y mínimo > stock          → both
//  2. solo demanda > stock                      → menu_demand
//  3. solo mínimo > stock                       → min_stock_level
//  4. stock ≤ 0 sin demanda ni mínimo           → zero_stock_alert (sugerencia forzada a 1)
func Classify(insumo *entity.Insumo, demandRaw decimal.Decimal) (dto.PurchaseSuggestionDTO, bool) {
	stock := insumo.StockQuantity

	neededToCoverMenus := decimal.Max(decimal.Zero, demandRaw.Sub(stock))
	neededToReachMin := decimal.Max(decimal.Zero, insumo.MinStockLevel.Sub(stock))
	suggestionRaw := decimal.Max(neededToCoverMenus, neededToReachMin)

	demandExceeds := demandRaw.GreaterThan(stock)
	minExceeds := insumo.MinStockLevel.GreaterThan(stock)

	var reason string
	switch {
	case demandExceeds && minExceeds:
		reason = dto.ReasonBoth
	case demandExceeds:
		reason = dto.ReasonMenuDemand
	case minExceeds:
		reason = dto.ReasonMinStockLevel
	case stock.LessThanOrEqual(decimal.Zero) && suggestionRaw.IsZero():
		// Alerta permanente: un insumo en cero nunca se omite en silencio,
		// aunque no tenga demanda ni mínimo configurado.
		suggestionRaw = decimal.NewFromInt(1)
		reason = dto.ReasonZeroStockAlert
	default:
		return dto.PurchaseSuggestionDTO{}, false
	}

	// Nunca redondear hacia abajo una cantidad de compra: comprar de menos es
	// el modo de falla a evitar.
	suggestionRounded := roundUpWhole(suggestionRaw)
	if suggestionRounded.IsZero() {
		return dto.PurchaseSuggestionDTO{}, false
	}

	return dto.PurchaseSuggestionDTO{
		InsumoID:               insumo.ID,
		InsumoName:             insumo.Name,
		PurchaseUnit:           insumo.PurchaseUnit,
		NeededForPeriodRaw:     demandRaw,
		NeededForPeriodRounded: roundUpWhole(demandRaw),
		CurrentStock:           stock,
		PendingReception:       insumo.PendingReceptionQuantity,
		SuggestionRaw:          suggestionRaw,
		SuggestionRounded:      suggestionRounded,
		Reason:                 reason,
		EstimatedCost:          suggestionRounded.Mul(insumo.UnitCost),
	}, true
}

// FilterByReason devuelve las sugerencias con la razón pedida; cadena vacía =
// sin filtro. Siempre post-cálculo: filtrar antes alteraría la clasificación.
func FilterByReason(suggestions []dto.PurchaseSuggestionDTO, reason string) []dto.PurchaseSuggestionDTO {
	if reason == "" {
		return suggestions
	}
	out := make([]dto.PurchaseSuggestionDTO, 0, len(suggestions))
	for _, s := range suggestions {
		if s.Reason == reason {
			out = append(out, s)
		}
	}
	return out
}

// TotalEstimatedCost suma el costo estimado del conjunto mostrado.
func TotalEstimatedCost(suggestions []dto.PurchaseSuggestionDTO) decimal.Decimal {
	total := decimal.Zero
	for _, s := range suggestions {
		total = total.Add(s.EstimatedCost)
	}
	return total
}

// roundUpWhole redondea hacia arriba a la unidad de compra entera siguiente
// cuando hay parte fraccionaria; las cantidades exactas quedan como están.
func roundUpWhole(q decimal.Decimal) decimal.Decimal {
	return q.Ceil()
}
