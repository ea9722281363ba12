package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/npochettino/sales-management-api/internal/application/auth"
	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
)

// AuthHandler maneja registro y login.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Público mientras no exista ningún usuario; después solo admin.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "email, password, name, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if ok, err := BindAndValidate(c, &in); !ok {
		return err
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := BindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if domain.Code(err) == domain.CodeUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: domain.CodeUnauthorized, Message: "credenciales inválidas"})
		}
		if domain.Code(err) == domain.CodeForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: domain.CodeForbidden, Message: "cuenta inactiva"})
		}
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// registrationGuard deja el registro abierto hasta que exista el primer usuario; después exige un admin.
func registrationGuard(uc *auth.AuthUseCase, jwtSecret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		open, err := uc.NeedsBootstrap(c.UserContext())
		if err != nil {
			return writeError(c, err)
		}
		if open {
			return c.Next()
		}
		if resp := authenticate(c, jwtSecret, issuer); resp != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(resp)
		}
		if !hasRole(c, []string{entity.RoleAdmin}) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: domain.CodeForbidden, Message: "solo un admin puede registrar usuarios"})
		}
		return c.Next()
	}
}
