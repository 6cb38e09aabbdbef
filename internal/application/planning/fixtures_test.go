package planning_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/planning"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/infrastructure/memory"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/pkg/logger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("fecha inválida %q: %v", s, err)
	}
	return parsed
}

func newAggregator(store *memory.Store) *planning.DemandAggregator {
	return planning.NewDemandAggregator(
		memory.NewMenuRepository(store),
		memory.NewRecetaRepository(store),
		memory.NewInsumoRepository(store),
		logger.Nop(),
	)
}

func seedInsumo(store *memory.Store, id, name, factor, stock, min, cost string) *entity.Insumo {
	insumo := &entity.Insumo{
		ID:               id,
		Name:             name,
		BaseUnit:         "g",
		PurchaseUnit:     "kg",
		ConversionFactor: dec(factor),
		StockQuantity:    dec(stock),
		MinStockLevel:    dec(min),
		UnitCost:         dec(cost),
	}
	store.Insumos[id] = insumo
	return insumo
}

func seedReceta(store *memory.Store, id, name string, lines ...entity.RecetaInsumo) *entity.Receta {
	receta := &entity.Receta{ID: id, Name: name, Category: "plato-fondo", Lines: lines}
	store.Recetas[id] = receta
	return receta
}

func seedMenu(store *memory.Store, t *testing.T, id, date string, baseline int, recipes ...entity.MenuServiceRecipe) *entity.Menu {
	menu := &entity.Menu{
		ID:               id,
		MenuDate:         day(t, date),
		EventType:        "servicio-regular",
		BaselineServings: baseline,
		Services: []entity.MenuService{
			{ID: id + "-almuerzo", Service: entity.ServiceAlmuerzo, Recipes: recipes},
		},
	}
	store.Menus = append(store.Menus, menu)
	return menu
}
