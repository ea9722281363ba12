package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sale(id string, at time.Time, status entity.SaleStatus, items ...entity.SaleItem) *entity.Sale {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return &entity.Sale{ID: id, ClientID: "c1", Items: items, Total: total, Status: status, CreatedAt: at, UpdatedAt: at}
}

func line(productID, name string, qty int, subtotal string) entity.SaleItem {
	return entity.SaleItem{ProductID: productID, ProductName: name, Quantity: qty, Subtotal: dec(subtotal)}
}

func TestDashboard_GetSummary(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repos := store.Repos()
	now := time.Date(2026, time.October, 17, 15, 0, 0, 0, time.UTC)

	for i, stock := range []int{3, 50, 9} {
		require.NoError(t, repos.Products.Create(ctx, &entity.Product{
			ID: []string{"p1", "p2", "p3"}[i], Name: []string{"Mouse", "Teclado", "Monitor"}[i], Stock: stock, CreatedAt: now,
		}))
	}
	require.NoError(t, repos.Clients.Create(ctx, &entity.Client{ID: "c1", Name: "Ana", Email: "ana@example.com", CreatedAt: now}))

	sales := []*entity.Sale{
		sale("s1", now.Add(-time.Hour), entity.SaleStatusCompleted, line("p1", "Mouse", 2, "10.00")),
		sale("s2", now.AddDate(0, 0, -5), entity.SaleStatusPending, line("p2", "Teclado viejo", 1, "30.00"), line("p1", "Mouse", 1, "5.00")),
		sale("s3", now.Add(-2*time.Hour), entity.SaleStatusCancelled, line("p2", "Teclado", 10, "300.00")),
		sale("s4", now.AddDate(0, -1, 0), entity.SaleStatusCompleted, line("p3", "Monitor", 1, "200.00")),
	}
	for _, s := range sales {
		require.NoError(t, repos.Sales.Create(ctx, s))
	}

	uc := NewDashboardUseCase(store.Dashboard(), repos.Sales)
	uc.now = func() time.Time { return now }

	got, err := uc.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalProducts)
	assert.Equal(t, 1, got.TotalClients)
	require.Len(t, got.LowStockProducts, 2)
	assert.Equal(t, "p1", got.LowStockProducts[0].ID)
	assert.Equal(t, "p3", got.LowStockProducts[1].ID)

	assert.Equal(t, 1, got.TodaySalesCount)
	assert.True(t, dec("10.00").Equal(got.TodayRevenue))
	assert.Equal(t, 2, got.MonthlySalesCount, "la cancelada y la del mes anterior no suman")
	assert.True(t, dec("45.00").Equal(got.MonthlyRevenue))

	require.Len(t, got.TopProducts, 2)
	assert.Equal(t, "p2", got.TopProducts[0].ProductID)
	assert.Equal(t, "Teclado viejo", got.TopProducts[0].ProductName)
	assert.Equal(t, "p1", got.TopProducts[1].ProductID)
	assert.Equal(t, 3, got.TopProducts[1].Quantity)
	assert.True(t, dec("15.00").Equal(got.TopProducts[1].Revenue))

	require.Len(t, got.RecentSales, 4)
	assert.Equal(t, "s1", got.RecentSales[0].ID)
	assert.Equal(t, "Octubre 2026", got.DateLabel)
}

func TestDashboard_SinDatos(t *testing.T) {
	store := memory.New()
	uc := NewDashboardUseCase(store.Dashboard(), store.Repos().Sales)

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.TotalProducts)
	assert.NotNil(t, got.LowStockProducts)
	assert.NotNil(t, got.TopProducts)
	assert.True(t, decimal.Zero.Equal(got.MonthlyRevenue))
}
