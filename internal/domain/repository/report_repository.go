package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductResult producto más vendido en una ventana de tiempo.
// Lo produce la DB; el use case lo convierte en DTO.
type TopProductResult struct {
	ProductID    string
	Name         string
	SKU          string
	TotalSold    int
	TotalRevenue decimal.Decimal
}

// CategoryStatResult conteo y valor de inventario por categoría.
type CategoryStatResult struct {
	CategoryID string
	Name       string
	Color      string
	Count      int
	TotalValue decimal.Decimal
}

// InventoryRowResult fila del reporte de inventario.
type InventoryRowResult struct {
	ProductID    string
	Name         string
	SKU          string
	CategoryName string
	Quantity     int
	MinStock     int
	Price        decimal.Decimal
	Cost         decimal.Decimal
	TotalValue   decimal.Decimal
	IsLowStock   bool
	CreatedAt    time.Time
}

// MovementRowResult fila del reporte de movimientos (con nombres resueltos).
type MovementRowResult struct {
	MovementID       string
	ProductName      string
	ProductSKU       string
	UserName         string
	Type             string
	Reason           string
	Quantity         int
	PreviousQuantity int
	NewQuantity      int
	Cost             decimal.Decimal
	CreatedAt        time.Time
}

// ReportRepository consultas de solo lectura para el dashboard y los reportes.
// Las implementaciones no modifican datos; todo se recalcula por petición.
type ReportRepository interface {
	// CountActiveProducts cuenta los productos con status = active.
	CountActiveProducts(ctx context.Context) (int, error)
	// CountLowStockProducts cuenta los productos activos con quantity <= min_stock.
	CountLowStockProducts(ctx context.Context) (int, error)
	// CountActiveUsers cuenta los usuarios con is_active = true.
	CountActiveUsers(ctx context.Context) (int, error)
	// CountMovementsSince cuenta los movimientos registrados desde la fecha dada.
	CountMovementsSince(ctx context.Context, since time.Time) (int, error)
	// InventoryValue devuelve la suma de quantity × price de los productos activos.
	// Usa COALESCE para devolver cero si no hay productos.
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
	// TopSoldProducts devuelve los `limit` productos con más unidades vendidas
	// (movimientos salida con motivo venta) desde la fecha dada.
	TopSoldProducts(ctx context.Context, since time.Time, limit int) ([]TopProductResult, error)
	// CategoryStats agrupa conteo y valor de los productos activos por categoría.
	CategoryStats(ctx context.Context) ([]CategoryStatResult, error)
	// InventoryRows devuelve las filas del reporte de inventario según el filtro.
	InventoryRows(ctx context.Context, filter ProductFilter) ([]InventoryRowResult, error)
	// MovementRows devuelve las filas del reporte de movimientos según el filtro.
	MovementRows(ctx context.Context, filter MovementFilter) ([]MovementRowResult, error)
}
