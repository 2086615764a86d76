// Package reports contiene los casos de uso de lectura para el dashboard y
// los reportes de inventario y movimientos. Todo se recalcula por petición:
// no hay caché ni mantenimiento incremental.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarcelaGodoy93/inventario-pro/internal/application/dto"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/repository"
)

const (
	dashboardTopProducts   = 5                   // widget de más vendidos
	recentMovementsWindow  = 7 * 24 * time.Hour  // "movimientos recientes"
	topProductsSalesWindow = 30 * 24 * time.Hour // ventana de ventas del top
)

// ReportUseCase genera el dashboard y los reportes de inventario/movimientos.
// Fuente de datos: ReportRepository (consultas read-only).
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// Dashboard construye el resumen para la vista principal.
//
// Las consultas de conteo, el valor de inventario, el top de vendidos y las
// estadísticas por categoría se lanzan en goroutines paralelas; el resultado
// se ensambla al final.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	now := time.Now()

	type countsResult struct {
		products, lowStock, users, movements int
		value                                decimal.Decimal
		err                                  error
	}
	type topResult struct {
		rows []repository.TopProductResult
		err  error
	}
	type statsResult struct {
		rows []repository.CategoryStatResult
		err  error
	}

	countsCh := make(chan countsResult, 1)
	topCh := make(chan topResult, 1)
	statsCh := make(chan statsResult, 1)

	go func() {
		var r countsResult
		if r.products, r.err = uc.repo.CountActiveProducts(ctx); r.err != nil {
			countsCh <- r
			return
		}
		if r.lowStock, r.err = uc.repo.CountLowStockProducts(ctx); r.err != nil {
			countsCh <- r
			return
		}
		if r.users, r.err = uc.repo.CountActiveUsers(ctx); r.err != nil {
			countsCh <- r
			return
		}
		if r.movements, r.err = uc.repo.CountMovementsSince(ctx, now.Add(-recentMovementsWindow)); r.err != nil {
			countsCh <- r
			return
		}
		r.value, r.err = uc.repo.InventoryValue(ctx)
		countsCh <- r
	}()
	go func() {
		rows, err := uc.repo.TopSoldProducts(ctx, now.Add(-topProductsSalesWindow), dashboardTopProducts)
		topCh <- topResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.CategoryStats(ctx)
		statsCh <- statsResult{rows, err}
	}()

	counts := <-countsCh
	top := <-topCh
	stats := <-statsCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteos: %w", counts.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: más vendidos: %w", top.err)
	}
	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: categorías: %w", stats.err)
	}

	topProducts := make([]dto.TopProductDTO, 0, len(top.rows))
	for _, r := range top.rows {
		topProducts = append(topProducts, dto.TopProductDTO{
			ProductID:    r.ProductID,
			Name:         r.Name,
			SKU:          r.SKU,
			TotalSold:    r.TotalSold,
			TotalRevenue: r.TotalRevenue.Round(2),
		})
	}
	categoryStats := make([]dto.CategoryStatDTO, 0, len(stats.rows))
	for _, r := range stats.rows {
		categoryStats = append(categoryStats, dto.CategoryStatDTO{
			CategoryID: r.CategoryID,
			Name:       r.Name,
			Color:      r.Color,
			Count:      r.Count,
			TotalValue: r.TotalValue.Round(2),
		})
	}

	return &dto.DashboardResponse{
		Overview: dto.DashboardOverviewDTO{
			TotalProducts:    counts.products,
			LowStockProducts: counts.lowStock,
			TotalUsers:       counts.users,
			RecentMovements:  counts.movements,
			InventoryValue:   counts.value.Round(2),
		},
		TopProducts:   topProducts,
		CategoryStats: categoryStats,
	}, nil
}

// Inventory construye el reporte de inventario con totales.
func (uc *ReportUseCase) Inventory(ctx context.Context, filter repository.ProductFilter) (*dto.InventoryReportResponse, error) {
	if filter.Status == "" {
		filter.Status = "active"
	}
	rows, err := uc.repo.InventoryRows(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("reporte de inventario: %w", err)
	}
	products := make([]dto.InventoryReportRowDTO, 0, len(rows))
	summary := dto.InventoryReportSummaryDTO{TotalValue: decimal.Zero}
	for _, r := range rows {
		products = append(products, dto.InventoryReportRowDTO{
			ProductID:  r.ProductID,
			Name:       r.Name,
			SKU:        r.SKU,
			Category:   r.CategoryName,
			Quantity:   r.Quantity,
			MinStock:   r.MinStock,
			Price:      r.Price,
			Cost:       r.Cost,
			TotalValue: r.TotalValue.Round(2),
			IsLowStock: r.IsLowStock,
			CreatedAt:  r.CreatedAt,
		})
		summary.TotalProducts++
		if r.IsLowStock {
			summary.LowStockItems++
		}
		summary.TotalValue = summary.TotalValue.Add(r.TotalValue)
	}
	summary.TotalValue = summary.TotalValue.Round(2)
	return &dto.InventoryReportResponse{Summary: summary, Products: products}, nil
}

// Movements construye el reporte de movimientos con nombres resueltos.
func (uc *ReportUseCase) Movements(ctx context.Context, filter repository.MovementFilter) (*dto.MovementReportResponse, error) {
	rows, err := uc.repo.MovementRows(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("reporte de movimientos: %w", err)
	}
	items := make([]dto.MovementReportRowDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.MovementReportRowDTO{
			MovementID:       r.MovementID,
			Product:          r.ProductName,
			SKU:              r.ProductSKU,
			User:             r.UserName,
			Type:             r.Type,
			Reason:           r.Reason,
			Quantity:         r.Quantity,
			PreviousQuantity: r.PreviousQuantity,
			NewQuantity:      r.NewQuantity,
			Cost:             r.Cost,
			CreatedAt:        r.CreatedAt,
		})
	}
	return &dto.MovementReportResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}
