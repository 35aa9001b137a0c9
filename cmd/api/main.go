package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tilekart/tilebill/internal/application/billing"
	"github.com/tilekart/tilebill/internal/application/usecase"
	infrapdf "github.com/tilekart/tilebill/internal/infrastructure/pdf"
	"github.com/tilekart/tilebill/internal/infrastructure/postgres"
	httpRouter "github.com/tilekart/tilebill/internal/interfaces/http"
	"github.com/tilekart/tilebill/pkg/config"
	"github.com/tilekart/tilebill/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	tileRepo := postgres.NewTileRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	tileUC := usecase.NewTileUseCase(tileRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, tileRepo, customerRepo, invoiceRepo, cfg.App.InvoicePrefix)

	pdfGenerator, err := infrapdf.NewGeneratorFromConfig(cfg.PDF, log)
	if err != nil {
		log.Fatal().Err(err).Msg("PDF engine")
	}
	pdfUC := billing.NewPDFUseCase(invoiceRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // PDF downloads can be large
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		TileUC:     tileUC,
		CustomerUC: customerUC,
		InvoiceUC:  invoiceUC,
		PDFUC:      pdfUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
