package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/planning"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/stock"
	infrapdf "github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/infrastructure/pdf"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/interfaces/http"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/pkg/config"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	insumoRepo := postgres.NewInsumoRepository(pool)
	recetaRepo := postgres.NewRecetaRepository(pool)
	menuRepo := postgres.NewMenuRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	aggregator := planning.NewDemandAggregator(menuRepo, recetaRepo, insumoRepo, log)
	suggestionUC := planning.NewSuggestionUseCase(aggregator, insumoRepo)
	quebradoUC := planning.NewQuebradoUseCase(aggregator, menuRepo, recetaRepo, insumoRepo)
	ledgerUC := stock.NewLedgerUseCase(txRunner, movementRepo, insumoRepo)
	deductionUC := stock.NewDeductionUseCase(aggregator, txRunner, log)

	planPDF := infrapdf.NewPurchasePlanGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Delicius Food Ops API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Suggestions: suggestionUC,
		Quebrado:    quebradoUC,
		Ledger:      ledgerUC,
		Deduction:   deductionUC,
		InsumoRepo:  insumoRepo,
		PlanPDF:     planPDF,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
