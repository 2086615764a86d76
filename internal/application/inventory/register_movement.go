package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MarcelaGodoy93/inventario-pro/internal/application/dto"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/entity"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma
// transaccional con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
//
// Regla de consistencia: todo cambio de Product.Quantity va emparejado con
// exactamente un Movement que captura previous_quantity y new_quantity, y el
// par se escribe en una sola transacción. Quantity nunca queda negativa.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, movementRepo repository.MovementRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, movementRepo: movementRepo}
}

// RegisterMovement valida la entrada, inicia una transacción, bloquea la fila
// del producto, aplica el delta según el tipo y persiste producto + movimiento.
//
// Semántica por tipo:
//   - entrada:       quantity se suma al stock.
//   - salida:        quantity se resta; ErrInsufficientStock si quedara negativo.
//   - ajuste:        quantity es la cantidad absoluta resultante.
//   - transferencia: suma o resta según el motivo (transferencia_entrada/_salida).
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.ProductID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) || !entity.ValidMovementReason(in.Reason) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 && in.Type != entity.MovementTypeAjuste {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == entity.MovementTypeAjuste && in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == entity.MovementTypeTransferencia &&
		in.Reason != entity.ReasonTransferenciaEntrada && in.Reason != entity.ReasonTransferenciaSalida {
		return nil, domain.ErrInvalidInput
	}
	if in.Cost != nil && in.Cost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.MovementResponse
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		// Bloquea la fila del producto para serializar movimientos concurrentes
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		// La cabeza del libro debe coincidir con el stock actual; si el
		// producto fue alterado por fuera del libro, encadenar un movimiento
		// rompería el emparejamiento previous/new y se aborta.
		latest, err := movementRepo.GetLatestByProduct(product.ID)
		if err != nil {
			return err
		}
		if latest != nil && latest.NewQuantity != product.Quantity {
			return fmt.Errorf("libro de movimientos desincronizado para el producto %s: cabeza %d, stock %d",
				product.ID, latest.NewQuantity, product.Quantity)
		}

		previous := product.Quantity
		newQty, delta, err := applyMovement(previous, in)
		if err != nil {
			return err
		}

		now := time.Now()
		cost := decimal.Zero
		if in.Cost != nil {
			cost = *in.Cost
		}
		mov := &entity.Movement{
			ID:               uuid.New().String(),
			ProductID:        product.ID,
			Type:             in.Type,
			Quantity:         delta,
			PreviousQuantity: previous,
			NewQuantity:      newQty,
			Reason:           in.Reason,
			Reference:        in.Reference,
			Notes:            in.Notes,
			UserID:           userID,
			Cost:             cost,
			CreatedAt:        now,
		}

		if err := productRepo.UpdateQuantity(product.ID, newQty); err != nil {
			return err
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
		out = toMovementResponse(mov)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterInitialInTx registra el movimiento de inventario inicial de un
// producto recién creado, usando el repositorio atado a la transacción del
// caller (la misma en la que se insertó el producto).
func RegisterInitialInTx(movementRepo repository.MovementRepository, product *entity.Product, userID string, now time.Time) error {
	mov := &entity.Movement{
		ID:               uuid.New().String(),
		ProductID:        product.ID,
		Type:             entity.MovementTypeEntrada,
		Quantity:         product.Quantity,
		PreviousQuantity: 0,
		NewQuantity:      product.Quantity,
		Reason:           entity.ReasonAjusteInventario,
		Reference:        "Inventario inicial",
		UserID:           userID,
		Cost:             product.Cost,
		CreatedAt:        now,
	}
	return movementRepo.Create(mov)
}

// List devuelve el libro de movimientos paginado (sin joins; ver reports para
// las filas con nombres resueltos).
func (uc *RegisterMovementUseCase) List(filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	list, err := uc.movementRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// applyMovement calcula la nueva cantidad y el delta registrado en el libro.
// El delta es siempre positivo; la dirección la da el tipo/motivo.
func applyMovement(previous int, in dto.RegisterMovementRequest) (newQty, delta int, err error) {
	switch in.Type {
	case entity.MovementTypeEntrada:
		return previous + in.Quantity, in.Quantity, nil
	case entity.MovementTypeSalida:
		if in.Quantity > previous {
			return 0, 0, domain.ErrInsufficientStock
		}
		return previous - in.Quantity, in.Quantity, nil
	case entity.MovementTypeAjuste:
		delta = in.Quantity - previous
		if delta < 0 {
			delta = -delta
		}
		if delta == 0 {
			return 0, 0, domain.ErrInvalidInput // ajuste sin cambio no genera movimiento
		}
		return in.Quantity, delta, nil
	case entity.MovementTypeTransferencia:
		if in.Reason == entity.ReasonTransferenciaSalida {
			if in.Quantity > previous {
				return 0, 0, domain.ErrInsufficientStock
			}
			return previous - in.Quantity, in.Quantity, nil
		}
		return previous + in.Quantity, in.Quantity, nil
	}
	return 0, 0, domain.ErrInvalidInput
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		Type:             m.Type,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Reason:           m.Reason,
		Reference:        m.Reference,
		Notes:            m.Notes,
		UserID:           m.UserID,
		Cost:             m.Cost,
		CreatedAt:        m.CreatedAt,
	}
}
