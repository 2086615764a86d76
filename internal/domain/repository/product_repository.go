package repository

import "github.com/MarcelaGodoy93/inventario-pro/internal/domain/entity"

// ProductFilter filtros de listado de productos.
// Search aplica sobre name, sku y description. LowStock filtra
// quantity <= min_stock. Status vacío equivale a "active".
type ProductFilter struct {
	Search     string
	CategoryID string
	Status     string
	LowStock   bool
	Limit      int
	Offset     int
}

// ProductRepository puerto de persistencia para productos.
// Quantity no se modifica por Update: solo vía UpdateQuantity dentro de la
// transacción que registra el movimiento correspondiente.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateQuantity(id string, quantity int) error
	// List devuelve la página de productos y el total de filas que satisfacen el filtro.
	List(filter ProductFilter) ([]*entity.Product, int, error)
}
