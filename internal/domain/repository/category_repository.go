package repository

import "github.com/MarcelaGodoy93/inventario-pro/internal/domain/entity"

// CategoryWithCount categoría junto con el número de productos activos que la usan.
// Lo produce la DB; el use case lo convierte en DTO.
type CategoryWithCount struct {
	Category     entity.Category
	ProductCount int
}

// CategoryRepository puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	// List devuelve las categorías con su conteo de productos activos.
	List(limit, offset int) ([]CategoryWithCount, error)
}
