package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema DDL idempotente de la aplicación. movements no tiene UPDATE ni
// DELETE en ningún repositorio: el libro es append-only por construcción.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('admin', 'manager', 'employee')),
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		last_login    TIMESTAMPTZ,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		color       TEXT NOT NULL DEFAULT '#2196F3',
		icon        TEXT NOT NULL DEFAULT 'category',
		is_active   BOOLEAN NOT NULL DEFAULT TRUE,
		parent_id   UUID REFERENCES categories(id),
		created_by  UUID NOT NULL REFERENCES users(id),
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		sku         TEXT NOT NULL UNIQUE,
		category_id UUID NOT NULL REFERENCES categories(id),
		price       NUMERIC(14,2) NOT NULL CHECK (price >= 0),
		cost        NUMERIC(14,2) NOT NULL CHECK (cost >= 0),
		quantity    INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		min_stock   INTEGER NOT NULL DEFAULT 5 CHECK (min_stock >= 0),
		max_stock   INTEGER NOT NULL DEFAULT 0 CHECK (max_stock >= 0),
		unit        TEXT NOT NULL DEFAULT 'piezas',
		barcode     TEXT,
		supplier    TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive', 'discontinued')),
		created_by  UUID NOT NULL REFERENCES users(id),
		updated_by  UUID REFERENCES users(id),
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS products_barcode_idx ON products (barcode) WHERE barcode IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS products_category_status_idx ON products (category_id, status)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id                UUID PRIMARY KEY,
		product_id        UUID NOT NULL REFERENCES products(id),
		type              TEXT NOT NULL CHECK (type IN ('entrada', 'salida', 'ajuste', 'transferencia')),
		quantity          INTEGER NOT NULL CHECK (quantity > 0),
		previous_quantity INTEGER NOT NULL,
		new_quantity      INTEGER NOT NULL CHECK (new_quantity >= 0),
		reason            TEXT NOT NULL,
		reference         TEXT NOT NULL DEFAULT '',
		notes             TEXT NOT NULL DEFAULT '',
		user_id           UUID NOT NULL REFERENCES users(id),
		cost              NUMERIC(14,2) NOT NULL DEFAULT 0,
		created_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS movements_product_created_idx ON movements (product_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS movements_type_created_idx ON movements (type, created_at DESC)`,
}

// Migrate aplica el esquema. Seguro de ejecutar en cada arranque.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("aplicar esquema: %w", err)
		}
	}
	return nil
}
