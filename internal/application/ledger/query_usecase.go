package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/despensa/despensa-api/internal/domain"
	"github.com/despensa/despensa-api/internal/domain/entity"
	"github.com/despensa/despensa-api/internal/domain/repository"
)

// QueryUseCase lado de lectura: listados paginados del libro y del catálogo.
// Usa repositorios atados al pool (fuera de transacción).
type QueryUseCase struct {
	movRepo repository.MovementRepository
	ingRepo repository.IngredientRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(movRepo repository.MovementRepository, ingRepo repository.IngredientRepository) *QueryUseCase {
	return &QueryUseCase{movRepo: movRepo, ingRepo: ingRepo}
}

// ListMovements lista movimientos por tipo (vacío = todos) y rango de fechas.
func (uc *QueryUseCase) ListMovements(_ context.Context, movementType string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	list, err := uc.movRepo.List(movementType, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	return list, nil
}

// GetMovement obtiene un movimiento con sus líneas en orden de captura.
func (uc *QueryUseCase) GetMovement(_ context.Context, id string) (*entity.Movement, error) {
	m, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("obtener movimiento: %w", err)
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// ListIngredients lista el catálogo con existencia y precio vigentes.
func (uc *QueryUseCase) ListIngredients(_ context.Context, from, to *time.Time, limit, offset int) ([]*entity.Ingredient, error) {
	list, err := uc.ingRepo.List(from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar ingredientes: %w", err)
	}
	return list, nil
}
