package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que las capas superiores traducen a errores de dominio.
const (
	codeUniqueViolation = "23505"
)

// isUniqueViolation reporta si err proviene de un constraint UNIQUE
// (email de usuario, nombre de categoría, SKU de producto).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
