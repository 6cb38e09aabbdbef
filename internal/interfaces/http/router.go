package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/planning"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/stock"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Suggestions *planning.SuggestionUseCase
	Quebrado    *planning.QuebradoUseCase
	Ledger      *stock.LedgerUseCase
	Deduction   *stock.DeductionUseCase
	InsumoRepo  repository.InsumoRepository
	PlanPDF     PurchasePlanPDFGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Planificación: sugerencias de compra y quebrado (protegido)
	planningGroup := protected.Group("/planning")
	planningHandler := NewPlanningHandler(deps.Suggestions, deps.Quebrado, deps.PlanPDF)
	planningGroup.Get("/purchase-suggestions", planningHandler.GetPurchaseSuggestions)
	planningGroup.Get("/purchase-suggestions/pdf", planningHandler.GetPurchaseSuggestionsPDF)
	planningGroup.Get("/quebrado", planningHandler.GetQuebrado)

	// Libro de stock y descuento diario (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger, deps.Deduction)
	stockGroup.Post("/movements", stockHandler.RegisterMovement)
	stockGroup.Get("/movements/:insumoID", stockHandler.GetHistory)
	stockGroup.Post("/daily-deduction", stockHandler.ProcessDailyDeduction)

	// Catálogo de insumos, solo lectura (protegido)
	insumos := protected.Group("/insumos")
	insumoHandler := NewInsumoHandler(deps.InsumoRepo)
	insumos.Get("/", insumoHandler.List)
}
