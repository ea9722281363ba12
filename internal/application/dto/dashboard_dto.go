package dto

import "github.com/shopspring/decimal"

// DashboardSummaryResponse respuesta de GET /api/dashboard.
// Hoy y mes se calculan en la zona horaria del servidor; las ventas canceladas no suman.
type DashboardSummaryResponse struct {
	TotalProducts    int                       `json:"totalProducts"`
	TotalClients     int                       `json:"totalClients"`
	LowStockProducts []LowStockProductResponse `json:"lowStockProducts"`
	RecentSales      []SaleResponse            `json:"recentSales"`

	TodaySalesCount   int             `json:"todaySalesCount"`
	TodayRevenue      decimal.Decimal `json:"todayRevenue"`
	MonthlySalesCount int             `json:"monthlySalesCount"`
	MonthlyRevenue    decimal.Decimal `json:"monthlyRevenue"`

	// Top productos del mes por ingreso
	TopProducts []TopProductResponse `json:"topProducts"`

	DateLabel string `json:"dateLabel"` // ej: "Octubre 2026"
}

// LowStockProductResponse producto por reponer.
type LowStockProductResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Stock        int    `json:"stock"`
	CategoryName string `json:"categoryName,omitempty"`
}

// TopProductResponse producto más vendido del período.
type TopProductResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}
