package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardOverviewDTO resumen de conteos del dashboard.
type DashboardOverviewDTO struct {
	TotalProducts    int             `json:"total_products"`
	LowStockProducts int             `json:"low_stock_products"`
	TotalUsers       int             `json:"total_users"`
	RecentMovements  int             `json:"recent_movements"`
	InventoryValue   decimal.Decimal `json:"inventory_value"`
}

// TopProductDTO producto más vendido en la ventana del dashboard.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	TotalSold    int             `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// CategoryStatDTO conteo y valor por categoría.
type CategoryStatDTO struct {
	CategoryID string          `json:"category_id"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// DashboardResponse respuesta de GET /api/reports/dashboard.
type DashboardResponse struct {
	Overview      DashboardOverviewDTO `json:"overview"`
	TopProducts   []TopProductDTO      `json:"top_products"`
	CategoryStats []CategoryStatDTO    `json:"category_stats"`
}

// InventoryReportRowDTO fila del reporte de inventario.
type InventoryReportRowDTO struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	Category   string          `json:"category"`
	Quantity   int             `json:"quantity"`
	MinStock   int             `json:"min_stock"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	TotalValue decimal.Decimal `json:"total_value"`
	IsLowStock bool            `json:"is_low_stock"`
	CreatedAt  time.Time       `json:"created_at"`
}

// InventoryReportSummaryDTO totales del reporte de inventario.
type InventoryReportSummaryDTO struct {
	TotalProducts int             `json:"total_products"`
	LowStockItems int             `json:"low_stock_items"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// InventoryReportResponse respuesta de GET /api/reports/inventory.
type InventoryReportResponse struct {
	Summary  InventoryReportSummaryDTO `json:"summary"`
	Products []InventoryReportRowDTO   `json:"products"`
}

// MovementReportRowDTO fila del reporte de movimientos, con nombres resueltos.
type MovementReportRowDTO struct {
	MovementID       string          `json:"movement_id"`
	Product          string          `json:"product"`
	SKU              string          `json:"sku"`
	User             string          `json:"user"`
	Type             string          `json:"type"`
	Reason           string          `json:"reason"`
	Quantity         int             `json:"quantity"`
	PreviousQuantity int             `json:"previous_quantity"`
	NewQuantity      int             `json:"new_quantity"`
	Cost             decimal.Decimal `json:"cost"`
	CreatedAt        time.Time       `json:"created_at"`
}

// MovementReportResponse respuesta de GET /api/reports/movements.
type MovementReportResponse struct {
	Items []MovementReportRowDTO `json:"items"`
	Page  PageResponse           `json:"page"`
}
