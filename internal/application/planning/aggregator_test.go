package planning_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/planning"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/infrastructure/memory"
)

func TestAggregate_SumaDemandaPorInsumo(t *testing.T) {
	store := memory.NewStore()
	seedInsumo(store, "arroz", "Arroz", "1000", "5", "10", "4.50")
	seedInsumo(store, "aceite", "Aceite", "1000", "2", "0", "12")
	seedReceta(store, "arroz-pollo", "Arroz con pollo",
		entity.RecetaInsumo{InsumoID: "arroz", QuantityBase: dec("250")},
		entity.RecetaInsumo{InsumoID: "aceite", QuantityBase: dec("30")},
	)
	seedMenu(store, t, "menu-1", "2026-03-02", 0,
		entity.MenuServiceRecipe{RecetaID: "arroz-pollo", DishCategory: "fondo", Servings: dec("4")},
	)

	agg, err := newAggregator(store).Aggregate(context.Background(),
		day(t, "2026-03-01"), day(t, "2026-03-07"), planning.AggregateOptions{})

	require.NoError(t, err)
	require.Len(t, agg.Demands, 2)
	assert.Zero(t, agg.SkippedReferences)

	arroz := agg.Demands["arroz"]
	require.NotNil(t, arroz)
	assert.True(t, arroz.QuantityBase.Equal(dec("1000")),
		"4 porciones de 250 g deben sumar 1000 g, se obtuvo %s", arroz.QuantityBase.String())
	assert.True(t, arroz.QuantityPurchase.Equal(dec("1")),
		"1000 g con factor 1000 deben ser 1 kg")

	aceite := agg.Demands["aceite"]
	require.NotNil(t, aceite)
	assert.True(t, aceite.QuantityPurchase.Equal(dec("0.12")))
}

func TestAggregate_AcumulaEntreMenus(t *testing.T) {
	store := memory.NewStore()
	seedInsumo(store, "arroz", "Arroz", "1000", "0", "0", "4.50")
	seedReceta(store, "guarnicion", "Guarnición de arroz",
		entity.RecetaInsumo{InsumoID: "arroz", QuantityBase: dec("100")},
	)
	seedMenu(store, t, "menu-lunes", "2026-03-02", 0,
		entity.MenuServiceRecipe{RecetaID: "guarnicion", Servings: dec("10")},
	)
	seedMenu(store, t, "menu-martes", "2026-03-03", 0,
		entity.MenuServiceRecipe{RecetaID: "guarnicion", Servings: dec("15")},
	)

	agg, err := newAggregator(store).Aggregate(context.Background(),
		day(t, "2026-03-02"), day(t, "2026-03-03"), planning.AggregateOptions{})

	require.NoError(t, err)
	require.NotNil(t, agg.Demands["arroz"])
	assert.True(t, agg.Demands["arroz"].QuantityBase.Equal(dec("2500")),
		"la demanda de ambos menús debe acumularse")
}

func TestAggregate_RangoSinMenus(t *testing.T) {
	store := memory.NewStore()
	seedInsumo(store, "arroz", "Arroz", "1000", "5", "10", "4.50")
	seedReceta(store, "guarnicion", "Guarnición",
		entity.RecetaInsumo{InsumoID: "arroz", QuantityBase: dec("100")},
	)
	seedMenu(store, t, "menu-1", "2026-03-02", 0,
		entity.MenuServiceRecipe{RecetaID: "guarnicion", Servings: dec("10")},
	)

	agg, err := newAggregator(store).Aggregate(context.Background(),
		day(t, "2026-04-01"), day(t, "2026-04-30"), planning.AggregateOptions{})

	require.NoError(t, err)
	assert.Empty(t, agg.Demands, "un rango sin menús produce demanda vacía, no error")
}

func TestAggregate_RecetaInexistenteSeOmite(t *testing.T) {
	store := memory.NewStore()
	seedInsumo(store, "arroz", "Arroz", "1000", "0", "0", "4.50")
	seedReceta(store, "guarnicion", "Guarnición",
		entity.RecetaInsumo{InsumoID: "arroz", QuantityBase: dec("100")},
	)
	seedMenu(store, t, "menu-1", "2026-03-02", 0,
		entity.MenuServiceRecipe{RecetaID: "guarnicion", Servings: dec("10")},
		entity.MenuServiceRecipe{RecetaID: "receta-borrada", Servings: dec("5")},
	)

	agg, err := newAggregator(store).Aggregate(context.Background(),
		day(t, "2026-03-02"), day(t, "2026-03-02"), planning.AggregateOptions{})

	require.NoError(t, err, "una referencia colgante no debe abortar la agregación")
	assert.Equal(t, 1, agg.SkippedReferences)
	require.NotNil(t, agg.Demands["arroz"])
	assert.True(t, agg.Demands["arroz"].QuantityBase.Equal(dec("1000")),
		"la receta válida se agrega completa")
}

func TestAggregate_InsumoInexistenteSeOmite(t *testing.T) {
	store := memory.NewStore()
	seedInsumo(store, "arroz", "Arroz", "1000", "0", "0", "4.50")
	seedReceta(store, "mixta", "Receta mixta",
		entity.RecetaInsumo{InsumoID: "arroz", QuantityBase: dec("100")},
		entity.RecetaInsumo{InsumoID: "insumo-borrado", QuantityBase: dec("50")},
	)
	seedMenu(store, t, "menu-1", "2026-03-02", 0,
		entity.MenuServiceRecipe{RecetaID: "mixta", Servings: dec("2")},
	)

	agg, err := newAggregator(store).Aggregate(context.Background(),
		day(t, "2026-03-02"), day(t, "2026-03-02"), planning.AggregateOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, agg.SkippedReferences)
	assert.Len(t, agg.Demands, 1)
	assert.NotNil(t, agg.Demands["arroz"])
}

func TestAggregate_FactorInvalidoSeOmite(t *testing.T) {
	store := memory.NewStore()
	seedInsumo(store, "roto", "Insumo corrupto", "0", "0", "0", "1")
	seedReceta(store, "receta", "Receta",
		entity.RecetaInsumo{InsumoID: "roto", QuantityBase: dec("100")},
	)
	seedMenu(store, t, "menu-1", "2026-03-02", 0,
		entity.MenuServiceRecipe{RecetaID: "receta", Servings: dec("1")},
	)

	agg, err := newAggregator(store).Aggregate(context.Background(),
		day(t, "2026-03-02"), day(t, "2026-03-02"), planning.AggregateOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, agg.SkippedReferences)
	assert.Empty(t, agg.Demands, "un factor de conversión inválido excluye al insumo")
}

func TestAggregate_EscalaPorComensales(t *testing.T) {
	store := memory.NewStore()
	seedInsumo(store, "arroz", "Arroz", "1000", "0", "0", "4.50")
	seedReceta(store, "guarnicion", "Guarnición",
		entity.RecetaInsumo{InsumoID: "arroz", QuantityBase: dec("100")},
	)
	seedMenu(store, t, "menu-1", "2026-03-02", 100,
		entity.MenuServiceRecipe{RecetaID: "guarnicion", Servings: dec("10")},
	)

	agg, err := newAggregator(store).Aggregate(context.Background(),
		day(t, "2026-03-02"), day(t, "2026-03-02"),
		planning.AggregateOptions{DinerCount: 200})

	require.NoError(t, err)
	require.NotNil(t, agg.Demands["arroz"])
	assert.True(t, agg.Demands["arroz"].QuantityBase.Equal(dec("2000")),
		"200 comensales sobre 100 de referencia duplican la cantidad")
}

func TestAggregate_SinBaselineNoEscala(t *testing.T) {
	store := memory.NewStore()
	seedInsumo(store, "arroz", "Arroz", "1000", "0", "0", "4.50")
	seedReceta(store, "guarnicion", "Guarnición",
		entity.RecetaInsumo{InsumoID: "arroz", QuantityBase: dec("100")},
	)
	seedMenu(store, t, "menu-1", "2026-03-02", 0,
		entity.MenuServiceRecipe{RecetaID: "guarnicion", Servings: dec("10")},
	)

	agg, err := newAggregator(store).Aggregate(context.Background(),
		day(t, "2026-03-02"), day(t, "2026-03-02"),
		planning.AggregateOptions{DinerCount: 500})

	require.NoError(t, err)
	require.NotNil(t, agg.Demands["arroz"])
	assert.True(t, agg.Demands["arroz"].QuantityBase.Equal(dec("1000")),
		"sin porciones de referencia el conteo de comensales no escala")
}
