package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/pkg/jwt"
)

// Locals keys para UserID y Role en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y Role a c.Locals.
func AuthMiddleware(jwtSecret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authenticate(c, jwtSecret, issuer); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(err)
		}
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, jwtSecret, issuer string) *dto.ErrorResponse {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"}
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return &dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"}
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"}
	}
	claims, err := jwt.Parse(jwtSecret, issuer, tokenString)
	if err != nil {
		return &dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"}
	}
	c.Locals(LocalUserID, claims.UserID)
	c.Locals(LocalRole, claims.Role)
	return nil
}

func hasRole(c *fiber.Ctx, roles []string) bool {
	role := GetRole(c)
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// RequireRole deja pasar solo a los roles indicados. Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		if hasRole(c, roles) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: domain.CodeForbidden, Message: "rol sin permisos para esta operación"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
