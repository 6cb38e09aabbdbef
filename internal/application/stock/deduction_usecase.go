package stock

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/planning"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/repository"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/pkg/logger"
)

// DeductionInput entrada del descuento diario de preparación.
type DeductionInput struct {
	Date       time.Time
	DeductedBy string
	DinerCount int
	// Overrides permite al operador ajustar hacia abajo la cantidad calculada
	// por insumo. Un override por encima de lo calculado se rechaza para ese
	// ítem; el tope de stock se revalida dentro de la transacción, no solo en
	// pantalla, porque el saldo puede haber cambiado entre ambas.
	Overrides map[string]decimal.Decimal
}

// DeductionItemResult resultado por insumo del lote de descuento.
type DeductionItemResult struct {
	InsumoID   string
	InsumoName string
	Required   decimal.Decimal
	Deducted   decimal.Decimal
	NewBalance decimal.Decimal
	Err        error // nil = descontado; InsufficientStockError u otro
}

// DeductionUseCase descuenta del stock los insumos requeridos por los menús
// de una fecha. Cada insumo se procesa en su propia transacción: que a uno le
// falte stock no bloquea el descuento de los demás (éxito parcial), y el
// caller recibe la lista completa de resultados.
type DeductionUseCase struct {
	aggregator *planning.DemandAggregator
	txRunner   TxRunner
	log        *logger.Logger
}

// NewDeductionUseCase construye el caso de uso.
func NewDeductionUseCase(aggregator *planning.DemandAggregator, txRunner TxRunner, log *logger.Logger) *DeductionUseCase {
	return &DeductionUseCase{aggregator: aggregator, txRunner: txRunner, log: log}
}

// ProcessDailyDeduction agrega la demanda del día y registra un asiento
// daily-prep-out por insumo. Devuelve un resultado por insumo, exitoso o no.
func (uc *DeductionUseCase) ProcessDailyDeduction(ctx context.Context, input DeductionInput) ([]DeductionItemResult, error) {
	day := input.Date
	agg, err := uc.aggregator.Aggregate(ctx, day, day, planning.AggregateOptions{DinerCount: input.DinerCount})
	if err != nil {
		return nil, err
	}

	// Orden determinista por nombre para que el lote y su reporte sean estables.
	demands := make([]*planning.InsumoDemand, 0, len(agg.Demands))
	for _, d := range agg.Demands {
		demands = append(demands, d)
	}
	sort.SliceStable(demands, func(i, j int) bool {
		return demands[i].Insumo.Name < demands[j].Insumo.Name
	})

	reference := fmt.Sprintf("preparación diaria %s", day.Format("2006-01-02"))
	results := make([]DeductionItemResult, 0, len(demands))
	for _, demand := range demands {
		result := DeductionItemResult{
			InsumoID:   demand.Insumo.ID,
			InsumoName: demand.Insumo.Name,
			Required:   demand.QuantityPurchase,
		}

		toDeduct := demand.QuantityPurchase
		if override, ok := input.Overrides[demand.Insumo.ID]; ok {
			if override.LessThanOrEqual(decimal.Zero) || override.GreaterThan(demand.QuantityPurchase) {
				result.Err = fmt.Errorf("override %s fuera de rango para %s: %w",
					override.String(), demand.Insumo.Name, domain.ErrInvalidInput)
				results = append(results, result)
				continue
			}
			toDeduct = override
		}

		movInput := MovementInput{
			InsumoID:     demand.Insumo.ID,
			MovementType: entity.MovementDailyPrepOut,
			Quantity:     toDeduct.Neg(),
			Reference:    reference,
			RegisteredBy: input.DeductedBy,
		}
		// Transacción propia por ítem: el rechazo de uno no revierte a los demás.
		err := uc.txRunner.Run(ctx, func(
			movRepo repository.StockMovementRepository,
			insumoRepo repository.InsumoRepository,
		) error {
			movement, err := appendEntry(ctx, movRepo, insumoRepo, movInput, time.Now())
			if err != nil {
				return err
			}
			result.Deducted = toDeduct
			result.NewBalance = movement.ResultingBalance
			return nil
		})
		if err != nil {
			result.Err = err
			uc.log.Warn().
				Str("insumo_id", demand.Insumo.ID).
				Str("requerido", toDeduct.String()).
				Err(err).
				Msg("insumo no descontado en la preparación diaria")
		}
		results = append(results, result)
	}
	return results, nil
}
