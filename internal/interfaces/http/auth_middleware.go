package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Stephfff73/verification-antifraude/internal/application/dto"
	"github.com/Stephfff73/verification-antifraude/pkg/jwt"
)

// Clés Locals pour l'utilisateur et l'agence dans Fiber.
const (
	LocalUserID = "user_id"
	LocalAgency = "agency"
)

// AuthMiddleware valide le Bearer Token JWT et place l'utilisateur et
// l'agence dans c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "en-tête Authorization requis"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format attendu : Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "jeton vide"})
		}
		userID, agency, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "jeton invalide ou expiré"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalAgency, agency)
		return c.Next()
	}
}

// GetUserID renvoie l'utilisateur du contexte (après le middleware d'auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetAgency renvoie l'agence du contexte (après le middleware d'auth).
func GetAgency(c *fiber.Ctx) string {
	v := c.Locals(LocalAgency)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
