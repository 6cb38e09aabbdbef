// Package planning implementa el núcleo analítico del dashboard: agregación
// de demanda de insumos a partir de los menús planificados, sugerencias de
// compra y el reporte quebrado. Todo es cómputo puro de solo lectura sobre un
// snapshot del estado; ninguna ruta de este paquete escribe stock.
package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/catering"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/repository"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/pkg/logger"
)

// AggregateOptions opciones de la agregación de demanda.
type AggregateOptions struct {
	// DinerCount escala linealmente las cantidades respecto de
	// Menu.BaselineServings. Cero = sin escala (factor 1).
	DinerCount int
}

// InsumoDemand demanda total de un insumo en el rango agregado.
type InsumoDemand struct {
	Insumo           *entity.Insumo
	QuantityBase     decimal.Decimal // total en unidades base
	QuantityPurchase decimal.Decimal // total convertido a unidades de compra
}

// AggregationResult salida del agregador: demanda por insumo más el snapshot
// de insumos leído, para que el clasificador reutilice la misma lectura.
type AggregationResult struct {
	Start, End        time.Time
	Demands           map[string]*InsumoDemand // insumo ID → demanda
	Insumos           map[string]*entity.Insumo
	SkippedReferences int // recetas o insumos colgantes omitidos
}

// DemandAggregator suma la demanda de insumos de todos los menús de un rango
// de fechas, expresada en unidades de compra. Las referencias colgantes
// (receta o insumo borrado bajo el menú) se omiten y se registran en el log:
// los datos referenciales pueden editarse por fuera y la agregación no debe
// fallar por ello.
type DemandAggregator struct {
	menuRepo   repository.MenuRepository
	recetaRepo repository.RecetaRepository
	insumoRepo repository.InsumoRepository
	log        *logger.Logger
}

// NewDemandAggregator construye el agregador.
func NewDemandAggregator(
	menuRepo repository.MenuRepository,
	recetaRepo repository.RecetaRepository,
	insumoRepo repository.InsumoRepository,
	log *logger.Logger,
) *DemandAggregator {
	return &DemandAggregator{
		menuRepo:   menuRepo,
		recetaRepo: recetaRepo,
		insumoRepo: insumoRepo,
		log:        log,
	}
}

// Aggregate recorre menú → servicio → asignación → línea de receta y acumula
// servings × cantidad_base por insumo, convirtiendo al final a unidades de
// compra. El desglose por menú/día no se conserva aquí (eso es el quebrado).
func (a *DemandAggregator) Aggregate(ctx context.Context, start, end time.Time, opts AggregateOptions) (*AggregationResult, error) {
	menus, err := a.menuRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("listar menús del rango: %w", err)
	}

	result := &AggregationResult{
		Start:   start,
		End:     end,
		Demands: make(map[string]*InsumoDemand),
		Insumos: make(map[string]*entity.Insumo),
	}
	if len(menus) == 0 {
		return result, nil
	}

	recetas, err := a.loadRecetas(ctx, menus)
	if err != nil {
		return nil, err
	}

	// Acumular en unidades base por insumo.
	totalsBase := make(map[string]decimal.Decimal)
	for _, menu := range menus {
		scale := dinerScale(opts.DinerCount, menu.BaselineServings)
		for _, service := range menu.Services {
			for _, assignment := range service.Recipes {
				receta, found := lookupReceta(recetas, assignment.RecetaID)
				if !found {
					result.SkippedReferences++
					a.log.Warn().
						Str("menu_id", menu.ID).
						Str("receta_id", assignment.RecetaID).
						Msg("receta inexistente referenciada por menú, se omite")
					continue
				}
				servings := assignment.Servings.Mul(scale)
				for _, line := range receta.Lines {
					prev := totalsBase[line.InsumoID]
					totalsBase[line.InsumoID] = prev.Add(line.QuantityBase.Mul(servings))
				}
			}
		}
	}

	insumos, err := a.loadInsumos(ctx, totalsBase)
	if err != nil {
		return nil, err
	}
	result.Insumos = insumos

	// Convertir a unidades de compra. Sin redondeo: la política de redondeo
	// es del clasificador de sugerencias, no del agregador.
	for insumoID, qtyBase := range totalsBase {
		insumo, ok := insumos[insumoID]
		if !ok {
			result.SkippedReferences++
			a.log.Warn().
				Str("insumo_id", insumoID).
				Msg("insumo inexistente referenciado por receta, se omite")
			continue
		}
		if err := catering.ValidateConversionFactor(insumo.ConversionFactor); err != nil {
			result.SkippedReferences++
			a.log.Error().
				Str("insumo_id", insumoID).
				Str("factor", insumo.ConversionFactor.String()).
				Msg("factor de conversión inválido, insumo omitido de la agregación")
			continue
		}
		result.Demands[insumoID] = &InsumoDemand{
			Insumo:           insumo,
			QuantityBase:     qtyBase,
			QuantityPurchase: catering.ToPurchaseUnits(qtyBase, insumo.ConversionFactor),
		}
	}
	return result, nil
}

// loadRecetas junta los IDs de receta referenciados y los trae en una sola lectura.
func (a *DemandAggregator) loadRecetas(ctx context.Context, menus []*entity.Menu) (map[string]*entity.Receta, error) {
	seen := make(map[string]struct{})
	var ids []string
	for _, menu := range menus {
		for _, service := range menu.Services {
			for _, assignment := range service.Recipes {
				if _, ok := seen[assignment.RecetaID]; ok {
					continue
				}
				seen[assignment.RecetaID] = struct{}{}
				ids = append(ids, assignment.RecetaID)
			}
		}
	}
	if len(ids) == 0 {
		return map[string]*entity.Receta{}, nil
	}
	recetas, err := a.recetaRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("cargar recetas: %w", err)
	}
	return recetas, nil
}

func (a *DemandAggregator) loadInsumos(ctx context.Context, totalsBase map[string]decimal.Decimal) (map[string]*entity.Insumo, error) {
	if len(totalsBase) == 0 {
		return map[string]*entity.Insumo{}, nil
	}
	ids := make([]string, 0, len(totalsBase))
	for id := range totalsBase {
		ids = append(ids, id)
	}
	insumos, err := a.insumoRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("cargar insumos: %w", err)
	}
	return insumos, nil
}

// lookupReceta hace explícito el resultado Found/MissingReference de la
// búsqueda, en lugar de propagar nils por el recorrido.
func lookupReceta(recetas map[string]*entity.Receta, id string) (*entity.Receta, bool) {
	receta, ok := recetas[id]
	if !ok || receta == nil {
		return nil, false
	}
	return receta, true
}

// dinerScale factor lineal comensales/porciones de referencia. Identidad
// cuando cualquiera de los dos no está configurado.
func dinerScale(dinerCount, baselineServings int) decimal.Decimal {
	if dinerCount <= 0 || baselineServings <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(int64(dinerCount)).Div(decimal.NewFromInt(int64(baselineServings)))
}
