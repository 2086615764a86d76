package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MarcelaGodoy93/inventario-pro/internal/domain"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/entity"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, description, color, icon, is_active, parent_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		category.ID, category.Name, category.Description, category.Color, category.Icon,
		category.IsActive, category.ParentID, category.CreatedBy, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.scanOne(`WHERE id = $1`, id)
}

// GetByName obtiene una categoría por nombre (único).
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	return r.scanOne(`WHERE name = $1`, name)
}

func (r *CategoryRepo) scanOne(where string, arg any) (*entity.Category, error) {
	query := `
		SELECT id, name, description, color, icon, is_active, COALESCE(parent_id::text, ''), created_by, created_at, updated_at
		FROM categories ` + where
	var c entity.Category
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Name, &c.Description, &c.Color, &c.Icon, &c.IsActive,
		&c.ParentID, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Update actualiza una categoría.
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories
		SET name = $2, description = $3, color = $4, icon = $5, is_active = $6, parent_id = NULLIF($7, '')::uuid, updated_at = $8
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		category.ID, category.Name, category.Description, category.Color, category.Icon,
		category.IsActive, category.ParentID, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// List devuelve las categorías con su conteo de productos activos.
func (r *CategoryRepo) List(limit, offset int) ([]repository.CategoryWithCount, error) {
	query := `
		SELECT c.id, c.name, c.description, c.color, c.icon, c.is_active,
		       COALESCE(c.parent_id::text, ''), c.created_by, c.created_at, c.updated_at,
		       COUNT(p.id) FILTER (WHERE p.status = 'active') AS product_count
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name
		LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []repository.CategoryWithCount
	for rows.Next() {
		var c repository.CategoryWithCount
		if err := rows.Scan(&c.Category.ID, &c.Category.Name, &c.Category.Description,
			&c.Category.Color, &c.Category.Icon, &c.Category.IsActive, &c.Category.ParentID,
			&c.Category.CreatedBy, &c.Category.CreatedAt, &c.Category.UpdatedAt,
			&c.ProductCount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
