package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/despensa/despensa-api/internal/domain"
	"github.com/despensa/despensa-api/internal/domain/entity"
	domledger "github.com/despensa/despensa-api/internal/domain/ledger"
	"github.com/despensa/despensa-api/internal/domain/repository"
	"github.com/despensa/despensa-api/pkg/logger"
)

// UseCase concilia el libro de movimientos contra el catálogo de ingredientes
// de forma transaccional: valida, aplica deltas de existencia con bloqueo de
// fila (SELECT FOR UPDATE) y persiste, con Commit/Rollback a cargo del TxRunner.
type UseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. El reloj es inyectable para tests.
func NewUseCase(txRunner TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, log: log, now: time.Now}
}

// WithClock reemplaza la fuente de "hoy" (política de fecha futura y ventana
// de edición). Pensado para tests.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// MovementInput entrada para registrar o editar un movimiento.
type MovementInput struct {
	Type  string
	Date  time.Time
	Note  string // solo salidas
	Lines []LineInput
}

// LineInput línea del movimiento. Para entradas el ingrediente puede ser
// nuevo: se identifica por nombre+unidad. Para salidas IngredientID es
// obligatorio. OriginQuantity conserva la cantidad capturada originalmente
// si el usuario la corrigió antes de registrar.
type LineInput struct {
	IngredientID   string
	Name           string
	Unit           string
	Price          decimal.Decimal
	Quantity       decimal.Decimal
	OriginQuantity *decimal.Decimal
}

// Post valida y registra un movimiento nuevo, aplicando los deltas al catálogo
// en la misma transacción. Devuelve el movimiento persistido con su ID generado.
func (uc *UseCase) Post(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	now := uc.now()
	m := buildMovement(input)
	m.ID = uuid.New().String()
	m.CreatedAt = now
	m.UpdatedAt = now

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		ingRepo repository.IngredientRepository,
	) error {
		return uc.postInTx(m, movRepo, ingRepo, now, false)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Update edita un movimiento ya registrado: reversa el asiento anterior,
// valida y re-registra el nuevo, todo como una sola operación lógica.
// La ventana de edición (mes en curso) aplica tanto a la fecha almacenada
// como a la nueva.
func (uc *UseCase) Update(ctx context.Context, id string, input MovementInput) (*entity.Movement, error) {
	now := uc.now()
	var updated *entity.Movement

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		ingRepo repository.IngredientRepository,
	) error {
		stored, err := movRepo.GetByID(id)
		if err != nil {
			return fmt.Errorf("obtener movimiento: %w", err)
		}
		if stored == nil {
			return domain.ErrNotFound
		}
		if err := domledger.ValidateEditWindow(stored.Date, now); err != nil {
			return err
		}
		if err := domledger.ValidateEditWindow(input.Date, now); err != nil {
			return err
		}

		input.Type = stored.Type // el tipo de un asiento no cambia al editarlo
		m := buildMovement(input)
		m.ID = stored.ID
		m.CreatedAt = stored.CreatedAt
		m.UpdatedAt = now

		if err := uc.reverseInTx(stored, ingRepo); err != nil {
			return err
		}
		if err := uc.postInTx(m, movRepo, ingRepo, now, true); err != nil {
			// Un fallo de persistencia tras la reversa dejaría el catálogo
			// "solo revertido". La transacción hace rollback, pero el contrato
			// exige reportar la divergencia como fatal, no como reintentable.
			if errors.Is(err, domain.ErrPersistenceFailure) {
				err = fmt.Errorf("%w: %w", domain.ErrReconciliationInconsistency, err)
				uc.log.Error().
					Str("movement_id", id).
					Err(err).
					Msg("re-registro falló después de revertir; rollback de la edición")
			}
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete elimina un movimiento del mes en curso revirtiendo primero su efecto
// sobre el catálogo (operación inversa del conciliador).
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	now := uc.now()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		ingRepo repository.IngredientRepository,
	) error {
		stored, err := movRepo.GetByID(id)
		if err != nil {
			return fmt.Errorf("obtener movimiento: %w", err)
		}
		if stored == nil {
			return domain.ErrNotFound
		}
		if err := domledger.ValidateEditWindow(stored.Date, now); err != nil {
			return err
		}
		if err := uc.reverseInTx(stored, ingRepo); err != nil {
			return err
		}
		if err := movRepo.Delete(id); err != nil {
			return fmt.Errorf("%w: eliminar movimiento: %w", domain.ErrPersistenceFailure, err)
		}
		return nil
	})
}

// ── Conciliación dentro de la transacción ─────────────────────────────────────

// postInTx valida el movimiento con las filas ya bloqueadas y aplica los
// deltas: entrada suma (creando el ingrediente si nombre+unidad no existen),
// salida resta. isRepost distingue el alta del re-registro de una edición.
func (uc *UseCase) postInTx(
	m *entity.Movement,
	movRepo repository.MovementRepository,
	ingRepo repository.IngredientRepository,
	now time.Time,
	isRepost bool,
) error {
	onHand := func(ingredientID string) (decimal.Decimal, error) {
		ing, err := ingRepo.GetForUpdate(ingredientID)
		if err != nil {
			return decimal.Zero, err
		}
		if ing == nil {
			return decimal.Zero, fmt.Errorf("%w: ingrediente %s", domain.ErrNotFound, ingredientID)
		}
		return ing.Quantity, nil
	}
	if err := domledger.Validate(m, onHand, now); err != nil {
		return err
	}

	if m.IsImport() {
		if err := uc.applyImport(m, ingRepo, now); err != nil {
			return err
		}
	} else {
		if err := uc.applyExport(m, ingRepo, now); err != nil {
			return err
		}
	}

	persist := movRepo.Create
	if isRepost {
		persist = movRepo.Update
	}
	if err := persist(m); err != nil {
		return fmt.Errorf("%w: guardar movimiento: %w", domain.ErrPersistenceFailure, err)
	}
	return nil
}

// applyImport suma existencias por línea. Si nombre+unidad no existen en el
// catálogo, da de alta el ingrediente; el precio de catálogo se actualiza al
// precio de la entrada.
func (uc *UseCase) applyImport(m *entity.Movement, ingRepo repository.IngredientRepository, now time.Time) error {
	for i := range m.Lines {
		line := &m.Lines[i]
		ing, err := ingRepo.GetByKey(line.Name, line.Unit)
		if err != nil {
			return fmt.Errorf("buscar ingrediente %q: %w", line.Name, err)
		}
		if ing == nil {
			ing = &entity.Ingredient{
				ID:        uuid.New().String(),
				Name:      line.Name,
				Unit:      line.Unit,
				Quantity:  decimal.Zero,
				CreatedAt: now,
			}
		}
		ing.Quantity = ing.Quantity.Add(line.Quantity)
		ing.Price = line.Price
		ing.UpdatedAt = now
		if err := ingRepo.Upsert(ing); err != nil {
			return fmt.Errorf("%w: actualizar catálogo: %w", domain.ErrPersistenceFailure, err)
		}
		line.IngredientID = ing.ID
	}
	return nil
}

// applyExport resta existencias por línea. El validador ya garantizó la
// suficiencia bajo los mismos bloqueos de fila; aquí solo se aplica el delta
// y se completa la desnormalización (nombre, unidad, precio de catálogo).
func (uc *UseCase) applyExport(m *entity.Movement, ingRepo repository.IngredientRepository, now time.Time) error {
	for i := range m.Lines {
		line := &m.Lines[i]
		ing, err := ingRepo.GetForUpdate(line.IngredientID)
		if err != nil {
			return fmt.Errorf("obtener ingrediente: %w", err)
		}
		if ing == nil {
			return fmt.Errorf("%w: ingrediente %s", domain.ErrNotFound, line.IngredientID)
		}
		newQty := ing.Quantity.Sub(line.Quantity)
		if newQty.IsNegative() {
			return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, ing.Name)
		}
		ing.Quantity = newQty
		ing.UpdatedAt = now
		if err := ingRepo.Upsert(ing); err != nil {
			return fmt.Errorf("%w: actualizar catálogo: %w", domain.ErrPersistenceFailure, err)
		}
		if line.Name == "" {
			line.Name = ing.Name
			line.Unit = ing.Unit
		}
		if line.Price.IsZero() {
			line.Price = ing.Price
		}
	}
	return nil
}

// reverseInTx aplica la inversa algebraica de un movimiento ya registrado:
// la reversa de una salida suma, la de una entrada resta. Una entrada cuyo
// insumo ya fue consumido no puede revertirse (dejaría existencia negativa).
func (uc *UseCase) reverseInTx(m *entity.Movement, ingRepo repository.IngredientRepository) error {
	now := uc.now()
	for _, line := range m.Lines {
		ing, err := ingRepo.GetForUpdate(line.IngredientID)
		if err != nil {
			return fmt.Errorf("obtener ingrediente: %w", err)
		}
		if ing == nil {
			// El libro referencia un ingrediente que el catálogo ya no tiene:
			// catálogo e historial divergieron.
			return fmt.Errorf("%w: ingrediente %s ausente del catálogo", domain.ErrReconciliationInconsistency, line.IngredientID)
		}
		if m.IsImport() {
			newQty := ing.Quantity.Sub(line.Quantity)
			if newQty.IsNegative() {
				return fmt.Errorf("%w: revertir entrada de %s", domain.ErrInsufficientStock, ing.Name)
			}
			ing.Quantity = newQty
		} else {
			ing.Quantity = ing.Quantity.Add(line.Quantity)
		}
		ing.UpdatedAt = now
		if err := ingRepo.Upsert(ing); err != nil {
			return fmt.Errorf("%w: revertir catálogo: %w", domain.ErrPersistenceFailure, err)
		}
	}
	return nil
}

// buildMovement normaliza el input a entidad: recorta nombre/unidad y descarta
// la nota en entradas (la nota es un campo de salidas).
func buildMovement(input MovementInput) *entity.Movement {
	m := &entity.Movement{
		Type:  input.Type,
		Date:  input.Date,
		Lines: make([]entity.MovementLine, 0, len(input.Lines)),
	}
	if m.IsExport() {
		m.Note = strings.TrimSpace(input.Note)
	}
	for _, l := range input.Lines {
		m.Lines = append(m.Lines, entity.MovementLine{
			IngredientID:   l.IngredientID,
			Name:           strings.TrimSpace(l.Name),
			Unit:           strings.TrimSpace(l.Unit),
			Price:          l.Price,
			Quantity:       l.Quantity,
			OriginQuantity: l.OriginQuantity,
		})
	}
	return m
}
