package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/despensa/despensa-api/internal/domain/entity"
)

// ListIngredientsRequest filtros de GET /api/ingredients.
type ListIngredientsRequest struct {
	DateRangeRequest
	PageRequest
}

// IngredientResponse ingrediente del catálogo con existencia y precio vigentes.
type IngredientResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToIngredientResponse mapea la entidad al DTO de salida.
func ToIngredientResponse(i *entity.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:        i.ID,
		Name:      i.Name,
		Unit:      i.Unit,
		Price:     i.Price,
		Quantity:  i.Quantity,
		UpdatedAt: i.UpdatedAt,
	}
}
