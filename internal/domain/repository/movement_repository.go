package repository

import (
	"time"

	"github.com/despensa/despensa-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del libro de movimientos.
// Create y Update persisten el movimiento con sus líneas en orden de captura.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	Update(movement *entity.Movement) error
	Delete(id string) error
	GetByID(id string) (*entity.Movement, error)
	// List filtra por tipo (vacío = todos) y rango de fechas, con paginación.
	List(movementType string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
}
