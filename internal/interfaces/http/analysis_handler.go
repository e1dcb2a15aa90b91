package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Stephfff73/verification-antifraude/internal/application/dossier"
	"github.com/Stephfff73/verification-antifraude/internal/application/dto"
	"github.com/Stephfff73/verification-antifraude/internal/domain"
)

// AnalysisHandler traite les demandes d'analyse de dossier (protégé).
type AnalysisHandler struct {
	svc *dossier.Service
}

// NewAnalysisHandler construit le handler.
func NewAnalysisHandler(svc *dossier.Service) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

// Analyze lance l'analyse complète d'un dossier et renvoie le rapport.
// POST /api/v1/analyses
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "jeton invalide"})
	}
	var in dto.AnalyzeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps de requête invalide"})
	}
	report, err := h.svc.Analyze(c.Context(), in.ToDocuments())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "le dossier doit contenir au moins un document"})
		}
		if errors.Is(err, domain.ErrUnknownDocClass) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "classe de document inconnue"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(report)
}
