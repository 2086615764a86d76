package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura sobre el pool. Los reportes siempre
// se calculan al momento, no hay materialización.
type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

func (r *ReportRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ReportRepo) CountActiveProducts(ctx context.Context) (int, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM products WHERE status = 'active'`)
	if err != nil {
		return 0, fmt.Errorf("count active products: %w", err)
	}
	return n, nil
}

func (r *ReportRepo) CountLowStockProducts(ctx context.Context) (int, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM products WHERE status = 'active' AND quantity <= min_stock`)
	if err != nil {
		return 0, fmt.Errorf("count low stock products: %w", err)
	}
	return n, nil
}

func (r *ReportRepo) CountActiveUsers(ctx context.Context) (int, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM users WHERE is_active = true`)
	if err != nil {
		return 0, fmt.Errorf("count active users: %w", err)
	}
	return n, nil
}

func (r *ReportRepo) CountMovementsSince(ctx context.Context, since time.Time) (int, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM movements WHERE created_at >= $1`, since)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func (r *ReportRepo) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var value decimal.Decimal
	query := `SELECT COALESCE(SUM(quantity * price), 0) FROM products WHERE status = 'active'`
	if err := r.pool.QueryRow(ctx, query).Scan(&value); err != nil {
		return decimal.Zero, fmt.Errorf("inventory value: %w", err)
	}
	return value, nil
}

// TopSoldProducts agrega las salidas por venta de la ventana. El ingreso se
// calcula con el costo capturado en cada movimiento, no con el precio actual
// del producto, para que el histórico no se mueva al cambiar precios.
func (r *ReportRepo) TopSoldProducts(ctx context.Context, since time.Time, limit int) ([]repository.TopProductResult, error) {
	query := `
		SELECT p.id, p.name, p.sku,
			SUM(m.quantity) AS total_sold,
			COALESCE(SUM(m.quantity * m.cost), 0) AS total_revenue
		FROM movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.type = 'salida' AND m.reason = 'venta' AND m.created_at >= $1
		GROUP BY p.id, p.name, p.sku
		ORDER BY total_sold DESC
		LIMIT $2`
	rows, err := r.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top sold products: %w", err)
	}
	defer rows.Close()
	var results []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.Name, &t.SKU, &t.TotalSold, &t.TotalRevenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		results = append(results, t)
	}
	return results, rows.Err()
}

func (r *ReportRepo) CategoryStats(ctx context.Context) ([]repository.CategoryStatResult, error) {
	query := `
		SELECT c.id, c.name, c.color,
			COUNT(p.id) AS count,
			COALESCE(SUM(p.quantity * p.price), 0) AS total_value
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id AND p.status = 'active'
		WHERE c.is_active = true
		GROUP BY c.id, c.name, c.color
		ORDER BY count DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	defer rows.Close()
	var results []repository.CategoryStatResult
	for rows.Next() {
		var s repository.CategoryStatResult
		if err := rows.Scan(&s.CategoryID, &s.Name, &s.Color, &s.Count, &s.TotalValue); err != nil {
			return nil, fmt.Errorf("scan category stat: %w", err)
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

func (r *ReportRepo) InventoryRows(ctx context.Context, filter repository.ProductFilter) ([]repository.InventoryRowResult, error) {
	where := `WHERE 1=1`
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND p.status = $%d`, len(args))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		where += fmt.Sprintf(` AND p.category_id = $%d`, len(args))
	}
	if filter.LowStock {
		where += ` AND p.quantity <= p.min_stock`
	}
	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.sku, COALESCE(c.name, ''), p.quantity, p.min_stock,
			p.price, p.cost, p.quantity * p.price AS total_value,
			p.quantity <= p.min_stock AS is_low_stock, p.created_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		%s
		ORDER BY p.name ASC`, where)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("inventory rows: %w", err)
	}
	defer rows.Close()
	var results []repository.InventoryRowResult
	for rows.Next() {
		var row repository.InventoryRowResult
		if err := rows.Scan(&row.ProductID, &row.Name, &row.SKU, &row.CategoryName,
			&row.Quantity, &row.MinStock, &row.Price, &row.Cost, &row.TotalValue,
			&row.IsLowStock, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *ReportRepo) MovementRows(ctx context.Context, filter repository.MovementFilter) ([]repository.MovementRowResult, error) {
	where := `WHERE 1=1`
	var args []any
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		where += fmt.Sprintf(` AND m.product_id = $%d`, len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(` AND m.type = $%d`, len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += fmt.Sprintf(` AND m.created_at >= $%d`, len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += fmt.Sprintf(` AND m.created_at <= $%d`, len(args))
	}
	query := fmt.Sprintf(`
		SELECT m.id, p.name, p.sku, COALESCE(u.name, ''), m.type, m.reason,
			m.quantity, m.previous_quantity, m.new_quantity, m.cost, m.created_at
		FROM movements m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN users u ON u.id = m.user_id
		%s
		ORDER BY m.created_at DESC`, where)
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("movement rows: %w", err)
	}
	defer rows.Close()
	var results []repository.MovementRowResult
	for rows.Next() {
		var row repository.MovementRowResult
		if err := rows.Scan(&row.MovementID, &row.ProductName, &row.ProductSKU, &row.UserName,
			&row.Type, &row.Reason, &row.Quantity, &row.PreviousQuantity, &row.NewQuantity,
			&row.Cost, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement row: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
