package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MarcelaGodoy93/inventario-pro/internal/domain"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/entity"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, sku, category_id, price, cost, quantity, min_stock, max_stock,
	unit, COALESCE(barcode, ''), supplier, status, created_by, COALESCE(updated_by::text, ''), created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, sku, category_id, price, cost, quantity, min_stock, max_stock,
			unit, barcode, supplier, status, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), $13, $14, $15, NULLIF($16, '')::uuid, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.SKU, product.CategoryID,
		product.Price, product.Cost, product.Quantity, product.MinStock, product.MaxStock,
		product.Unit, product.Barcode, product.Supplier, product.Status,
		product.CreatedBy, product.UpdatedBy, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(query, id)
}

// GetBySKU obtiene un producto por SKU (único).
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanOne(query, sku)
}

// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE)
// para serializar movimientos de inventario concurrentes. Solo dentro de tx.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *ProductRepo) scanOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Name, &p.Description, &p.SKU, &p.CategoryID, &p.Price, &p.Cost,
		&p.Quantity, &p.MinStock, &p.MaxStock, &p.Unit, &p.Barcode, &p.Supplier,
		&p.Status, &p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto. No toca quantity: eso es de UpdateQuantity,
// dentro de la transacción que registra el movimiento.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, sku = $4, category_id = $5, price = $6, cost = $7,
			min_stock = $8, max_stock = $9, unit = $10, barcode = NULLIF($11, ''), supplier = $12,
			status = $13, updated_by = NULLIF($14, '')::uuid, updated_at = $15
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.SKU, product.CategoryID,
		product.Price, product.Cost, product.MinStock, product.MaxStock, product.Unit,
		product.Barcode, product.Supplier, product.Status, product.UpdatedBy, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza solo la cantidad (usado por el motor de movimientos).
func (r *ProductRepo) UpdateQuantity(id string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// List devuelve la página de productos y el total de filas según el filtro.
// La búsqueda libre aplica sobre name, sku y description (ILIKE).
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	where := `WHERE status = $1`
	args := []any{filter.Status}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (name ILIKE $%d OR sku ILIKE $%d OR description ILIKE $%d)`, n, n, n)
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		where += fmt.Sprintf(` AND category_id = $%d`, len(args))
	}
	if filter.LowStock {
		where += ` AND quantity <= min_stock`
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM products ` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT `+productColumns+` FROM products %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.SKU, &p.CategoryID, &p.Price, &p.Cost,
			&p.Quantity, &p.MinStock, &p.MaxStock, &p.Unit, &p.Barcode, &p.Supplier,
			&p.Status, &p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}
