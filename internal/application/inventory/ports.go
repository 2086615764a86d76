package inventory

import (
	"context"

	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la actualización de
// Product.Quantity y la inserción del Movement asociado ocurran de forma
// atómica: ambas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error
}
