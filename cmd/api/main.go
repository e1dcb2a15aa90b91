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

	"github.com/Stephfff73/verification-antifraude/internal/application/consistency"
	"github.com/Stephfff73/verification-antifraude/internal/application/corroboration"
	"github.com/Stephfff73/verification-antifraude/internal/application/dossier"
	"github.com/Stephfff73/verification-antifraude/internal/application/extraction"
	"github.com/Stephfff73/verification-antifraude/internal/application/redflag"
	"github.com/Stephfff73/verification-antifraude/internal/application/scoring"
	"github.com/Stephfff73/verification-antifraude/internal/application/validation"
	"github.com/Stephfff73/verification-antifraude/internal/infrastructure/ban"
	"github.com/Stephfff73/verification-antifraude/internal/infrastructure/insee"
	"github.com/Stephfff73/verification-antifraude/internal/infrastructure/mailcheck"
	httpRouter "github.com/Stephfff73/verification-antifraude/internal/interfaces/http"
	"github.com/Stephfff73/verification-antifraude/pkg/config"
	"github.com/Stephfff73/verification-antifraude/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("chargement de la configuration : " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	// Registres externes : Sirene (INSEE), Base Adresse Nationale, MX.
	registry := insee.NewClient(cfg.Sirene.BaseURL, cfg.Sirene.Token, cfg.Analyse.CallTimeout)
	normalizer := ban.NewClient(cfg.BAN.BaseURL, cfg.Analyse.CallTimeout)
	mailResolver := mailcheck.NewResolver()

	aggregator, err := scoring.NewAggregator(scoring.Weights{
		Documents:   cfg.Analyse.WeightDocuments,
		Consistency: cfg.Analyse.WeightConsistency,
		RedFlags:    cfg.Analyse.WeightRedFlags,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("pondérations du score invalides")
	}

	dossierSvc := dossier.NewService(
		extraction.NewExtractor(extraction.Strictness(cfg.Analyse.Strictness)),
		validation.NewService(),
		corroboration.NewOrchestrator(registry, normalizer, mailResolver, cfg.Analyse.CallTimeout),
		consistency.NewChecker(),
		redflag.NewEngine(),
		aggregator,
		log,
		cfg.Analyse.OverallTimeout,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local : http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "API Vérification Antifraude",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Dossier:   dossierSvc,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP arrêté")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
