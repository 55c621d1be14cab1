package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/financas-casa/internal/application/dto"
	"github.com/jhoicas/financas-casa/internal/domain"
)

// respondError traduce la taxonomía de errores del dominio a HTTP.
func respondError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConstraint):
		status, code = fiber.StatusConflict, "CONSTRAINT"
	case errors.Is(err, domain.ErrConnection):
		status, code = fiber.StatusServiceUnavailable, "DB_UNAVAILABLE"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
