package repository

import (
	"time"

	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/entity"
)

// MovementFilter filtros de listado del libro de movimientos.
type MovementFilter struct {
	ProductID string
	Type      string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// MovementRepository puerto de persistencia para el libro de movimientos.
// Append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// GetLatestByProduct devuelve el movimiento más reciente de un producto,
	// o nil si no tiene movimientos.
	GetLatestByProduct(productID string) (*entity.Movement, error)
	List(filter MovementFilter) ([]*entity.Movement, error)
}
