// Package analytics contiene el resumen del dashboard: conteos, stock bajo,
// ventas recientes e ingresos del día y del mes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/application/sales"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
)

const (
	LowStockThreshold = 10 // stock por debajo del cual un producto se muestra para reponer
	dashboardListSize = 5  // filas de cada widget
)

// DashboardUseCase genera el resumen del dashboard. Solo lee; no usa unidad de trabajo.
type DashboardUseCase struct {
	dashRepo repository.DashboardRepository
	saleRepo repository.SaleRepository
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashRepo repository.DashboardRepository, saleRepo repository.SaleRepository) *DashboardUseCase {
	return &DashboardUseCase{dashRepo: dashRepo, saleRepo: saleRepo, now: time.Now}
}

// GetSummary lanza las consultas en paralelo y arma el resumen.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	now := uc.now()

	// Hoy: [00:00, mañana 00:00); mes: [día 1, mañana 00:00)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type countResult struct {
		n   int
		err error
	}
	type metricsResult struct {
		m   repository.SalesMetrics
		err error
	}
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type salesResult struct {
		list []*entity.Sale
		err  error
	}
	type topResult struct {
		list []repository.TopProduct
		err  error
	}

	productsCh := make(chan countResult, 1)
	clientsCh := make(chan countResult, 1)
	lowCh := make(chan productsResult, 1)
	recentCh := make(chan salesResult, 1)
	todayCh := make(chan metricsResult, 1)
	monthCh := make(chan metricsResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		n, err := uc.dashRepo.CountProducts(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashRepo.CountClients(ctx)
		clientsCh <- countResult{n, err}
	}()
	go func() {
		list, err := uc.dashRepo.LowStockProducts(ctx, LowStockThreshold, dashboardListSize)
		lowCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.saleRepo.List(ctx, entity.SaleFilter{Limit: dashboardListSize})
		recentCh <- salesResult{list, err}
	}()
	go func() {
		m, err := uc.dashRepo.SalesMetrics(ctx, todayStart, tomorrow)
		todayCh <- metricsResult{m, err}
	}()
	go func() {
		m, err := uc.dashRepo.SalesMetrics(ctx, monthStart, tomorrow)
		monthCh <- metricsResult{m, err}
	}()
	go func() {
		list, err := uc.dashRepo.TopProducts(ctx, monthStart, tomorrow, dashboardListSize)
		topCh <- topResult{list, err}
	}()

	products, clients := <-productsCh, <-clientsCh
	low, recent := <-lowCh, <-recentCh
	today, month, top := <-todayCh, <-monthCh, <-topCh

	switch {
	case products.err != nil:
		return nil, fmt.Errorf("dashboard: contar productos: %w", products.err)
	case clients.err != nil:
		return nil, fmt.Errorf("dashboard: contar clientes: %w", clients.err)
	case low.err != nil:
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	case recent.err != nil:
		return nil, fmt.Errorf("dashboard: ventas recientes: %w", recent.err)
	case today.err != nil:
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	case month.err != nil:
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	case top.err != nil:
		return nil, fmt.Errorf("dashboard: productos más vendidos: %w", top.err)
	}

	out := &dto.DashboardSummaryResponse{
		TotalProducts:     products.n,
		TotalClients:      clients.n,
		LowStockProducts:  make([]dto.LowStockProductResponse, 0, len(low.list)),
		RecentSales:       make([]dto.SaleResponse, 0, len(recent.list)),
		TodaySalesCount:   today.m.Count,
		TodayRevenue:      today.m.Revenue.Round(2),
		MonthlySalesCount: month.m.Count,
		MonthlyRevenue:    month.m.Revenue.Round(2),
		TopProducts:       make([]dto.TopProductResponse, 0, len(top.list)),
		DateLabel:         monthLabel(now),
	}
	for _, p := range low.list {
		out.LowStockProducts = append(out.LowStockProducts, dto.LowStockProductResponse{
			ID: p.ID, Name: p.Name, Stock: p.Stock, CategoryName: p.CategoryName,
		})
	}
	for _, s := range recent.list {
		out.RecentSales = append(out.RecentSales, *sales.ToSaleResponse(s, nil))
	}
	for _, t := range top.list {
		out.TopProducts = append(out.TopProducts, dto.TopProductResponse{
			ProductID: t.ProductID, ProductName: t.ProductName, Quantity: t.Quantity, Revenue: t.Revenue.Round(2),
		})
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
