package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/despensa/despensa-api/internal/application/dto"
	"github.com/despensa/despensa-api/internal/domain"
)

// respondError mapea errores de dominio a respuestas HTTP.
//
// Validación -> 400 (recuperable, el caller corrige y reintenta).
// Stock y ventana de edición -> 409 (conflicto con el estado actual).
// Persistencia -> 500 reintentable; inconsistencia de conciliación -> 500
// (el caso de uso ya la logueó a nivel error, aquí solo se reporta).
func respondError(c *fiber.Ctx, err error) error {
	var lineErr *domain.LineError
	if errors.As(err, &lineErr) {
		idx := lineErr.Index
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_LINE",
			Message: lineErr.Error(),
			Line:    &idx,
			Field:   lineErr.Field,
		})
	}

	switch {
	case errors.Is(err, domain.ErrEmptyMovement):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_MOVEMENT", Message: "el movimiento no tiene líneas"})
	case errors.Is(err, domain.ErrFutureDate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "FUTURE_DATE", Message: "la fecha del movimiento no puede ser futura"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrEditWindowClosed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EDIT_WINDOW_CLOSED", Message: "solo se editan o eliminan movimientos del mes en curso"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrReconciliationInconsistency):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "RECONCILIATION_INCONSISTENCY", Message: "catálogo y movimientos divergieron; la operación fue abortada"})
	case errors.Is(err, domain.ErrPersistenceFailure):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: "fallo de persistencia, reintente la operación"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
