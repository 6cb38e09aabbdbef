package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/stock"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/infrastructure/memory"
)

// deductionStore arma el día 2026-03-02 con dos insumos: arroz requiere 3 kg
// con 5 en stock, pollo requiere 10 kg con solo 4 en stock.
func deductionStore(t *testing.T) *memory.Store {
	store := memory.NewStore()
	seedInsumo(store, "arroz", "Arroz", "1000", "5")
	seedInsumo(store, "pollo", "Pollo", "1000", "4")
	seedMenuWithReceta(store, t, "2026-03-02", "guarnicion", "10",
		entity.RecetaInsumo{InsumoID: "arroz", QuantityBase: dec("300")},
	)
	seedMenuWithReceta(store, t, "2026-03-02", "pollo-horno", "10",
		entity.RecetaInsumo{InsumoID: "pollo", QuantityBase: dec("1000")},
	)
	return store
}

func TestProcessDailyDeduction_ExitoParcial(t *testing.T) {
	store := deductionStore(t)

	results, err := newDeduction(store).ProcessDailyDeduction(context.Background(), stock.DeductionInput{
		Date:       day(t, "2026-03-02"),
		DeductedBy: "turno-mañana",
	})

	require.NoError(t, err, "el éxito parcial no es un error del lote")
	require.Len(t, results, 2)

	arroz := results[0]
	assert.Equal(t, "arroz", arroz.InsumoID)
	require.NoError(t, arroz.Err)
	assert.True(t, arroz.Required.Equal(dec("3")))
	assert.True(t, arroz.Deducted.Equal(dec("3")))
	assert.True(t, arroz.NewBalance.Equal(dec("2")))

	pollo := results[1]
	assert.Equal(t, "pollo", pollo.InsumoID)
	require.Error(t, pollo.Err)
	var insufficient *stock.InsufficientStockError
	require.ErrorAs(t, pollo.Err, &insufficient)
	assert.True(t, insufficient.Shortfall().Equal(dec("6")),
		"se requieren 10 y hay 4, faltan 6")

	// El rechazo de pollo no revierte el descuento de arroz.
	assert.True(t, store.Insumos["arroz"].StockQuantity.Equal(dec("2")))
	assert.True(t, store.Insumos["pollo"].StockQuantity.Equal(dec("4")))
	require.Len(t, store.Movements, 1)
	assert.Equal(t, entity.MovementDailyPrepOut, store.Movements[0].MovementType)
	assert.True(t, store.Movements[0].QuantityChange.Equal(dec("-3")))
	assert.Equal(t, "preparación diaria 2026-03-02", store.Movements[0].Reference)
	assert.Equal(t, "turno-mañana", store.Movements[0].CreatedBy)
}

func TestProcessDailyDeduction_OverrideReduceLaCantidad(t *testing.T) {
	store := deductionStore(t)

	results, err := newDeduction(store).ProcessDailyDeduction(context.Background(), stock.DeductionInput{
		Date:      day(t, "2026-03-02"),
		Overrides: map[string]decimal.Decimal{"arroz": dec("2")},
	})

	require.NoError(t, err)
	arroz := results[0]
	require.NoError(t, arroz.Err)
	assert.True(t, arroz.Required.Equal(dec("3")), "lo requerido no cambia con el override")
	assert.True(t, arroz.Deducted.Equal(dec("2")))
	assert.True(t, store.Insumos["arroz"].StockQuantity.Equal(dec("3")))
}

func TestProcessDailyDeduction_OverrideFueraDeRango(t *testing.T) {
	store := deductionStore(t)

	results, err := newDeduction(store).ProcessDailyDeduction(context.Background(), stock.DeductionInput{
		Date: day(t, "2026-03-02"),
		Overrides: map[string]decimal.Decimal{
			"arroz": dec("9"), // por encima de lo calculado
		},
	})

	require.NoError(t, err)
	arroz := results[0]
	require.Error(t, arroz.Err)
	assert.ErrorIs(t, arroz.Err, domain.ErrInvalidInput)
	assert.True(t, store.Insumos["arroz"].StockQuantity.Equal(dec("5")),
		"un override inválido no descuenta nada")
}

func TestProcessDailyDeduction_OverrideNoPositivo(t *testing.T) {
	store := deductionStore(t)

	results, err := newDeduction(store).ProcessDailyDeduction(context.Background(), stock.DeductionInput{
		Date:      day(t, "2026-03-02"),
		Overrides: map[string]decimal.Decimal{"arroz": dec("0")},
	})

	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Err, domain.ErrInvalidInput)
}

func TestProcessDailyDeduction_DiaSinMenus(t *testing.T) {
	store := deductionStore(t)

	results, err := newDeduction(store).ProcessDailyDeduction(context.Background(), stock.DeductionInput{
		Date: day(t, "2026-04-15"),
	})

	require.NoError(t, err)
	assert.Empty(t, results, "un día sin menús es un lote vacío, no un error")
	assert.Empty(t, store.Movements)
}

func TestProcessDailyDeduction_EscalaPorComensales(t *testing.T) {
	store := memory.NewStore()
	seedInsumo(store, "arroz", "Arroz", "1000", "10")
	store.Menus = append(store.Menus, &entity.Menu{
		ID:               "menu-escalado",
		MenuDate:         day(t, "2026-03-02"),
		BaselineServings: 100,
		Services: []entity.MenuService{{
			Service: entity.ServiceAlmuerzo,
			Recipes: []entity.MenuServiceRecipe{{RecetaID: "guarnicion", Servings: dec("10")}},
		}},
	})
	store.Recetas["guarnicion"] = &entity.Receta{
		ID:    "guarnicion",
		Name:  "Guarnición",
		Lines: []entity.RecetaInsumo{{InsumoID: "arroz", QuantityBase: dec("200")}},
	}

	results, err := newDeduction(store).ProcessDailyDeduction(context.Background(), stock.DeductionInput{
		Date:       day(t, "2026-03-02"),
		DinerCount: 200,
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	// 10 porciones × 200 g × factor 2 de comensales = 4 kg.
	assert.True(t, results[0].Deducted.Equal(dec("4")))
	assert.True(t, store.Insumos["arroz"].StockQuantity.Equal(dec("6")))
}
