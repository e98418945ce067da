package http

import (
	"github.com/gofiber/fiber/v2"

	appledger "github.com/despensa/despensa-api/internal/application/ledger"
	"github.com/despensa/despensa-api/internal/application/dto"
)

// IngredientHandler maneja las consultas del catálogo de ingredientes.
// El catálogo no expone mutaciones: las existencias solo cambian vía movimientos.
type IngredientHandler struct {
	query *appledger.QueryUseCase
}

// NewIngredientHandler construye el handler.
func NewIngredientHandler(query *appledger.QueryUseCase) *IngredientHandler {
	return &IngredientHandler{query: query}
}

// List godoc
// @Summary      Listar ingredientes con existencia y precio vigentes
// @Tags         ingredients
// @Produce      json
// @Param        from    query  string  false  "YYYY-MM-DD (actualizados desde)"
// @Param        to      query  string  false  "YYYY-MM-DD (actualizados hasta)"
// @Param        limit   query  int     false  "máx 100, defecto 20"
// @Param        offset  query  int     false  "defecto 0"
// @Success      200  {array}   dto.IngredientResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ingredients [get]
func (h *IngredientHandler) List(c *fiber.Ctx) error {
	var in dto.ListIngredientsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if !validateRequest(c, &in) {
		return nil
	}
	in.DefaultPage()
	from, to, err := parseDateRange(in.DateRangeRequest)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.query.ListIngredients(c.Context(), from, to, in.Limit, in.Offset)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.IngredientResponse, 0, len(list))
	for _, i := range list {
		resp = append(resp, dto.ToIngredientResponse(i))
	}
	return c.JSON(fiber.Map{
		"total":       len(resp),
		"ingredients": resp,
	})
}
