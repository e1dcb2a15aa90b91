package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Stephfff73/verification-antifraude/internal/application/dossier"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	Dossier   *dossier.Service
	JWTSecret string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Routes protégées (Bearer Token requis)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	analyses := protected.Group("/analyses")
	analysisHandler := NewAnalysisHandler(deps.Dossier)
	analyses.Post("/", analysisHandler.Analyze)
}
