package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/despensa/despensa-api/internal/domain/entity"
)

// SaveMovementRequest body para POST /api/movements y PUT /api/movements/:id.
// En el update el tipo se ignora: un asiento no cambia de tipo.
type SaveMovementRequest struct {
	Type  string                `json:"type" validate:"required,oneof=IMPORT EXPORT"`
	Date  string                `json:"date" validate:"required,datetime=2006-01-02"`
	Note  string                `json:"note,omitempty"`
	Lines []MovementLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// MovementLineRequest línea del movimiento. La validación fina (campo y
// línea ofensiva) la hace el validador de dominio; aquí solo la forma.
type MovementLineRequest struct {
	IngredientID   string           `json:"ingredient_id,omitempty"`
	Name           string           `json:"name,omitempty"`
	Unit           string           `json:"unit,omitempty"`
	Price          decimal.Decimal  `json:"price"`
	Quantity       decimal.Decimal  `json:"quantity"`
	OriginQuantity *decimal.Decimal `json:"origin_quantity,omitempty"`
}

// ListMovementsRequest filtros de GET /api/movements.
type ListMovementsRequest struct {
	Type string `query:"type" validate:"omitempty,oneof=IMPORT EXPORT"`
	DateRangeRequest
	PageRequest
}

// MovementResponse representación JSON de un movimiento con su total calculado.
type MovementResponse struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Date       string                 `json:"date"`
	Note       string                 `json:"note,omitempty"`
	Lines      []MovementLineResponse `json:"lines"`
	TotalPrice decimal.Decimal        `json:"total_price"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// MovementLineResponse línea con su subtotal.
type MovementLineResponse struct {
	IngredientID   string           `json:"ingredient_id"`
	Name           string           `json:"name"`
	Unit           string           `json:"unit"`
	Price          decimal.Decimal  `json:"price"`
	Quantity       decimal.Decimal  `json:"quantity"`
	OriginQuantity *decimal.Decimal `json:"origin_quantity,omitempty"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
}

// ToMovementResponse mapea la entidad al DTO de salida.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	resp := MovementResponse{
		ID:         m.ID,
		Type:       m.Type,
		Date:       m.Date.Format("2006-01-02"),
		Note:       m.Note,
		Lines:      make([]MovementLineResponse, 0, len(m.Lines)),
		TotalPrice: m.TotalPrice(),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	for _, l := range m.Lines {
		resp.Lines = append(resp.Lines, MovementLineResponse{
			IngredientID:   l.IngredientID,
			Name:           l.Name,
			Unit:           l.Unit,
			Price:          l.Price,
			Quantity:       l.Quantity,
			OriginQuantity: l.OriginQuantity,
			Subtotal:       l.Subtotal(),
		})
	}
	return resp
}
