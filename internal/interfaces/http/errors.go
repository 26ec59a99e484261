package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/posfin/pos-finanzas-api/internal/application/dto"
	"github.com/posfin/pos-finanzas-api/internal/domain"
)

// respondDomainError traduce errores del dominio a respuestas HTTP. Los
// errores tipados conservan su mensaje (unidad, disponible, deuda pendiente);
// lo no reconocido se responde como 500 sin filtrar detalles internos.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidAmount):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AMOUNT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrExceedsDebt):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EXCEEDS_DEBT", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyPaid):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_PAID", Message: err.Error()})
	case errors.Is(err, domain.ErrNoPriceAvailable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_PRICE", Message: err.Error()})
	case errors.Is(err, domain.ErrNoCostAvailable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_COST", Message: err.Error()})
	case errors.Is(err, domain.ErrNoCustomers):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_CUSTOMERS", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el registro ya existe"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrConfigMissing):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "CONFIG_MISSING", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
