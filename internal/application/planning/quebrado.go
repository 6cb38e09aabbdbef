package planning

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/dto"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/catering"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/repository"
)

// QuebradoUseCase produce el reporte quebrado: la misma recorrida del
// agregador pero conservando la estructura por fecha, servicio y receta, más
// la vista consolidada por insumo (que sí es la forma colapsada y reutiliza
// el agregador tal cual). Solo lectura: dos llamadas con el mismo estado
// producen el mismo reporte.
type QuebradoUseCase struct {
	aggregator *DemandAggregator
	menuRepo   repository.MenuRepository
	recetaRepo repository.RecetaRepository
	insumoRepo repository.InsumoRepository
}

// NewQuebradoUseCase construye el caso de uso.
func NewQuebradoUseCase(
	aggregator *DemandAggregator,
	menuRepo repository.MenuRepository,
	recetaRepo repository.RecetaRepository,
	insumoRepo repository.InsumoRepository,
) *QuebradoUseCase {
	return &QuebradoUseCase{
		aggregator: aggregator,
		menuRepo:   menuRepo,
		recetaRepo: recetaRepo,
		insumoRepo: insumoRepo,
	}
}

// Report genera el quebrado de [start, end] escalado por dinerCount.
func (uc *QuebradoUseCase) Report(ctx context.Context, start, end time.Time, dinerCount int) (*dto.QuebradoReportDTO, error) {
	opts := AggregateOptions{DinerCount: dinerCount}

	// Vista consolidada: exactamente la salida del agregador.
	agg, err := uc.aggregator.Aggregate(ctx, start, end, opts)
	if err != nil {
		return nil, err
	}

	menus, err := uc.menuRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("listar menús del rango: %w", err)
	}

	report := &dto.QuebradoReportDTO{
		Days:         make([]dto.QuebradoDayDTO, 0, len(menus)),
		Consolidated: consolidatedFrom(agg),
	}

	recetaIDs := make(map[string]struct{})
	insumoIDs := make(map[string]struct{})
	for _, menu := range menus {
		for _, svc := range menu.Services {
			for _, a := range svc.Recipes {
				recetaIDs[a.RecetaID] = struct{}{}
			}
		}
	}
	recetas, err := uc.recetaRepo.GetByIDs(ctx, keys(recetaIDs))
	if err != nil {
		return nil, fmt.Errorf("cargar recetas: %w", err)
	}
	for _, receta := range recetas {
		for _, line := range receta.Lines {
			insumoIDs[line.InsumoID] = struct{}{}
		}
	}
	insumos, err := uc.insumoRepo.GetByIDs(ctx, keys(insumoIDs))
	if err != nil {
		return nil, fmt.Errorf("cargar insumos: %w", err)
	}

	for _, menu := range menus {
		scale := dinerScale(dinerCount, menu.BaselineServings)
		day := dto.QuebradoDayDTO{Date: menu.MenuDate.Format("2006-01-02")}
		for _, svc := range menu.Services {
			serviceDTO := dto.QuebradoServiceDTO{Service: svc.Service}
			for _, assignment := range svc.Recipes {
				receta, found := lookupReceta(recetas, assignment.RecetaID)
				if !found {
					continue // misma lenidad que el agregador
				}
				servings := assignment.Servings.Mul(scale)
				recipeDTO := dto.QuebradoRecipeDTO{
					RecetaID:     receta.ID,
					RecetaName:   receta.Name,
					DishCategory: assignment.DishCategory,
					Servings:     servings,
				}
				for _, line := range receta.Lines {
					insumo, ok := insumos[line.InsumoID]
					if !ok || insumo == nil {
						continue
					}
					if catering.ValidateConversionFactor(insumo.ConversionFactor) != nil {
						continue
					}
					qtyBase := line.QuantityBase.Mul(servings)
					recipeDTO.Ingredients = append(recipeDTO.Ingredients, dto.QuebradoIngredientDTO{
						InsumoID:         insumo.ID,
						InsumoName:       insumo.Name,
						BaseUnit:         insumo.BaseUnit,
						PurchaseUnit:     insumo.PurchaseUnit,
						QuantityBase:     qtyBase,
						QuantityPurchase: catering.ToPurchaseUnits(qtyBase, insumo.ConversionFactor),
					})
				}
				serviceDTO.Recipes = append(serviceDTO.Recipes, recipeDTO)
			}
			day.Services = append(day.Services, serviceDTO)
		}
		report.Days = append(report.Days, day)
	}

	sort.SliceStable(report.Days, func(i, j int) bool {
		return report.Days[i].Date < report.Days[j].Date
	})

	report.Message = fmt.Sprintf(
		"Quebrado del %s al %s: %d día(s) de menú, %d insumo(s) consolidado(s).",
		start.Format("2006-01-02"), end.Format("2006-01-02"),
		len(report.Days), len(report.Consolidated),
	)
	return report, nil
}

// consolidatedFrom aplana la salida del agregador, ordenada por nombre.
func consolidatedFrom(agg *AggregationResult) []dto.ConsolidatedInsumoDTO {
	out := make([]dto.ConsolidatedInsumoDTO, 0, len(agg.Demands))
	for _, d := range agg.Demands {
		out = append(out, dto.ConsolidatedInsumoDTO{
			InsumoID:         d.Insumo.ID,
			InsumoName:       d.Insumo.Name,
			PurchaseUnit:     d.Insumo.PurchaseUnit,
			QuantityPurchase: d.QuantityPurchase,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].InsumoName < out[j].InsumoName
	})
	return out
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
