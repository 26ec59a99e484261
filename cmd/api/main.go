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

	"github.com/posfin/pos-finanzas-api/internal/application/auth"
	"github.com/posfin/pos-finanzas-api/internal/application/cart"
	"github.com/posfin/pos-finanzas-api/internal/application/catalog"
	"github.com/posfin/pos-finanzas-api/internal/application/inventory"
	"github.com/posfin/pos-finanzas-api/internal/application/purchases"
	"github.com/posfin/pos-finanzas-api/internal/application/sales"
	"github.com/posfin/pos-finanzas-api/internal/infrastructure/postgres"
	httpRouter "github.com/posfin/pos-finanzas-api/internal/interfaces/http"
	"github.com/posfin/pos-finanzas-api/pkg/config"
	"github.com/posfin/pos-finanzas-api/pkg/logger"
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

	// Repositorios de lectura sobre el pool; las mutaciones van por TxRunner.
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	personRepo := postgres.NewPersonRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	statusRepo := postgres.NewStatusRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	methodRepo := postgres.NewPaymentMethodRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	movRepo := postgres.NewInventoryMovementRepository(pool)
	workspaceRepo := postgres.NewWorkspaceRepository(pool)
	priceRepo := postgres.NewPriceHistoryRepository(pool)
	costRepo := postgres.NewCostHistoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockSvc := inventory.NewStockService(log, invRepo, movRepo, locationRepo)
	cartUC := cart.NewUseCase(txRunner, stockSvc, workspaceRepo, productRepo, priceRepo)
	salesUC := sales.NewUseCase(txRunner, stockSvc, personRepo, userRepo, methodRepo)
	purchaseUC := purchases.NewUseCase(txRunner, stockSvc, personRepo, productRepo, statusRepo, methodRepo, locationRepo, costRepo)
	catalogUC := catalog.NewUseCase(txRunner, productRepo, categoryRepo, personRepo, userRepo, statusRepo, locationRepo, priceRepo, costRepo, invRepo)
	authUC := auth.NewUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Finanzas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CartUC:     cartUC,
		SalesUC:    salesUC,
		PurchaseUC: purchaseUC,
		CatalogUC:  catalogUC,
		Stock:      stockSvc,
		JWTSecret:  cfg.JWT.Secret,
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
