package repository

import (
	"context"
	"time"

	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SalesMetrics cantidad e ingreso de las ventas no canceladas de un período.
type SalesMetrics struct {
	Count   int
	Revenue decimal.Decimal
}

// TopProduct acumulado de las líneas vendidas de un producto en un período.
// ProductName es el nombre con que se vendió la última vez.
type TopProduct struct {
	ProductID   string
	ProductName string
	Quantity    int
	Revenue     decimal.Decimal
}

// DashboardRepository consultas de solo lectura para el resumen del dashboard.
// Los rangos de fecha son semiabiertos: [from, to).
type DashboardRepository interface {
	CountProducts(ctx context.Context) (int, error)
	CountClients(ctx context.Context) (int, error)
	// LowStockProducts productos con stock < threshold, los de menor stock primero.
	LowStockProducts(ctx context.Context, threshold, limit int) ([]*entity.Product, error)
	SalesMetrics(ctx context.Context, from, to time.Time) (SalesMetrics, error)
	// TopProducts ordena por ingreso descendente.
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)
}
