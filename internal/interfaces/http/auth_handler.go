package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/financas-casa/internal/application/dto"
)

// authenticator lo implementa *auth.AuthUseCase.
type authenticator interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
}

// AuthHandler maneja el login.
type AuthHandler struct {
	uc authenticator
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc authenticator) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "person, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Person == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "person y password son requeridos"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
