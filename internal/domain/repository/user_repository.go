package repository

import (
	"time"

	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios.
// No expone Delete: los usuarios se desactivan vía Update (IsActive=false).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	// UpdateLastLogin actualiza solo la marca de último acceso.
	UpdateLastLogin(id string, at time.Time) error
	List(limit, offset int) ([]*entity.User, error)
}
