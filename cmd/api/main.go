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
	"github.com/jhoicas/procura-api/internal/application/usecase"
	infraai "github.com/jhoicas/procura-api/internal/infrastructure/ai"
	inframail "github.com/jhoicas/procura-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/procura-api/internal/infrastructure/pdf"
	"github.com/jhoicas/procura-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/procura-api/internal/interfaces/http"
	"github.com/jhoicas/procura-api/pkg/config"
	"github.com/jhoicas/procura-api/pkg/logger"
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

	vendorRepo := postgres.NewVendorRepository(pool)
	rfpRepo := postgres.NewRFPRepository(pool)
	proposalRepo := postgres.NewProposalRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Colaboradores externos: inicializados una vez e inyectados explícitamente
	// (nada de globals; en tests se sustituyen por stubs).
	geminiSvc := infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	mailSender := inframail.NewGomailSender(cfg.SMTP)
	pdfGenerator := infrapdf.NewMarotoRFPGenerator()

	vendorUC := usecase.NewVendorUseCase(vendorRepo)
	rfpUC := usecase.NewRFPUseCase(rfpRepo, vendorRepo, geminiSvc, mailSender, txRunner, cfg.SMTP.InboundAddress)
	proposalUC := usecase.NewProposalUseCase(proposalRepo, vendorRepo)
	ingestUC := usecase.NewIngestProposalUseCase(vendorRepo, rfpRepo, proposalRepo, geminiSvc)
	recUC := usecase.NewRecommendationUseCase(rfpRepo, proposalRepo, vendorRepo, geminiSvc)
	pdfUC := usecase.NewRFPPDFUseCase(rfpRepo, vendorRepo, pdfGenerator)

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
		Title:    "Procura API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		VendorUC:   vendorUC,
		RFPUC:      rfpUC,
		ProposalUC: proposalUC,
		RecUC:      recUC,
		PDFUC:      pdfUC,
		IngestUC:   ingestUC,
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
