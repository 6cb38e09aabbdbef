package stock_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/planning"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/stock"
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

func newLedger(store *memory.Store) *stock.LedgerUseCase {
	return stock.NewLedgerUseCase(
		memory.NewTxRunner(store),
		memory.NewStockMovementRepository(store),
		memory.NewInsumoRepository(store),
	)
}

func newDeduction(store *memory.Store) *stock.DeductionUseCase {
	aggregator := planning.NewDemandAggregator(
		memory.NewMenuRepository(store),
		memory.NewRecetaRepository(store),
		memory.NewInsumoRepository(store),
		logger.Nop(),
	)
	return stock.NewDeductionUseCase(aggregator, memory.NewTxRunner(store), logger.Nop())
}

func seedInsumo(store *memory.Store, id, name, factor, stock string) *entity.Insumo {
	insumo := &entity.Insumo{
		ID:               id,
		Name:             name,
		BaseUnit:         "g",
		PurchaseUnit:     "kg",
		ConversionFactor: dec(factor),
		StockQuantity:    dec(stock),
	}
	store.Insumos[id] = insumo
	return insumo
}

func seedMenuWithReceta(store *memory.Store, t *testing.T, date, recetaID string, servings string, lines ...entity.RecetaInsumo) {
	t.Helper()
	store.Recetas[recetaID] = &entity.Receta{ID: recetaID, Name: recetaID, Lines: lines}
	store.Menus = append(store.Menus, &entity.Menu{
		ID:       "menu-" + recetaID,
		MenuDate: day(t, date),
		Services: []entity.MenuService{{
			ID:      "svc-" + recetaID,
			Service: entity.ServiceAlmuerzo,
			Recipes: []entity.MenuServiceRecipe{{RecetaID: recetaID, Servings: dec(servings)}},
		}},
	})
}
