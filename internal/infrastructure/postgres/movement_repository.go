package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/entity"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, type, quantity, previous_quantity, new_quantity,
	reason, reference, notes, user_id, cost, created_at`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: el libro es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del libro de movimientos.
// Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create añade una entrada al libro.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.PreviousQuantity, movement.NewQuantity, movement.Reason,
		movement.Reference, movement.Notes, movement.UserID, movement.Cost, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetLatestByProduct devuelve el movimiento más reciente de un producto, o nil.
func (r *MovementRepo) GetLatestByProduct(productID string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE product_id = $1 ORDER BY created_at DESC LIMIT 1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.PreviousQuantity, &m.NewQuantity,
		&m.Reason, &m.Reference, &m.Notes, &m.UserID, &m.Cost, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest movement: %w", err)
	}
	return &m, nil
}

// List devuelve movimientos según el filtro, los más recientes primero.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	where := `WHERE 1=1`
	var args []any
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		where += fmt.Sprintf(` AND product_id = $%d`, len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += fmt.Sprintf(` AND created_at <= $%d`, len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT `+movementColumns+` FROM movements %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.PreviousQuantity,
			&m.NewQuantity, &m.Reason, &m.Reference, &m.Notes, &m.UserID, &m.Cost, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
