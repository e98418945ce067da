package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/despensa/despensa-api/internal/application/dto"
	"github.com/despensa/despensa-api/internal/domain"
)

// validate instancia única del validador de requests (las etiquetas `validate`
// viven en los DTOs).
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest corre el validador sobre el DTO y responde 400 con el primer
// campo ofensivo. Devuelve true si el request es válido.
func validateRequest(c *fiber.Ctx, req any) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}
	msg := "datos inválidos"
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		msg = fmt.Sprintf("campo %s no cumple la regla %s", fieldErrs[0].Field(), fieldErrs[0].Tag())
	}
	_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	return false
}

// parseDate convierte YYYY-MM-DD (validado por etiqueta datetime) a time.Time.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
	}
	return t, nil
}

// parseDateRange convierte el rango opcional a punteros (nil = sin cota).
func parseDateRange(r dto.DateRangeRequest) (from, to *time.Time, err error) {
	if r.From != "" {
		t, err := parseDate(r.From)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if r.To != "" {
		t, err := parseDate(r.To)
		if err != nil {
			return nil, nil, err
		}
		// la cota superior es inclusiva: fin del día
		t = t.Add(24*time.Hour - time.Nanosecond)
		to = &t
	}
	return from, to, nil
}
