package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/approval"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/auth"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/receipts"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/usecase"
	infraai "github.com/villa61pizzaria-cell/notarapp/internal/infrastructure/ai"
	"github.com/villa61pizzaria-cell/notarapp/internal/infrastructure/notify"
	"github.com/villa61pizzaria-cell/notarapp/internal/infrastructure/postgres"
	"github.com/villa61pizzaria-cell/notarapp/internal/infrastructure/storage"
	httpRouter "github.com/villa61pizzaria-cell/notarapp/internal/interfaces/http"
	"github.com/villa61pizzaria-cell/notarapp/pkg/config"
	"github.com/villa61pizzaria-cell/notarapp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	receiptRepo := postgres.NewReceiptRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)

	// Extrator generativo: sem API key o serviço sobe mesmo assim e o
	// envio de notas exige payload pré-extraído.
	var extractor receipts.Extractor
	if cfg.AI.GeminiAPIKey != "" {
		extractor = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	}

	var uploader receipts.Uploader = storage.NoopUploader{}
	if cfg.Storage.Endpoint != "" {
		s3, err := storage.NewS3Uploader(storage.S3Config{
			Endpoint:     cfg.Storage.Endpoint,
			Region:       cfg.Storage.Region,
			Bucket:       cfg.Storage.Bucket,
			AccessKey:    cfg.Storage.AccessKey,
			SecretKey:    cfg.Storage.SecretKey,
			PublicDomain: cfg.Storage.PublicDomain,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("configuração do storage")
		}
		uploader = s3
	}

	// Notificador fire-and-forget; nil desliga o canal sem afetar os fluxos.
	var notifier receipts.Notifier
	if wh := notify.NewWebhookNotifier(cfg.Notify.WebhookURL); wh != nil {
		notifier = wh
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.App.DefaultFirmID)
	approvalUC := approval.New(userRepo, notifier, log)
	receiptUC := receipts.New(receiptRepo, userRepo, categoryRepo, extractor, uploader, notifier, log)
	userUC := usecase.NewUserUseCase(userRepo)
	tenantUC := usecase.NewTenantUseCase(tenantRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // notas fotografadas chegam em base64
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		TenantUC:   tenantUC,
		CategoryUC: categoryUC,
		ApprovalUC: approvalUC,
		ReceiptUC:  receiptUC,
		Users:      userRepo,
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

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
