package sales_test

import (
	"errors"
	"testing"

	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/sales"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLineSubtotal_Exacto(t *testing.T) {
	assert.True(t, dec("15.00").Equal(sales.LineSubtotal(dec("5.00"), 3)))
	assert.True(t, dec("0.30").Equal(sales.LineSubtotal(dec("0.10"), 3)),
		"0.1 × 3 debe ser exactamente 0.3 en decimal")
}

func TestItemsTotal_SumaSubtotales(t *testing.T) {
	items := []entity.SaleItem{
		{Quantity: 2, UnitPrice: dec("1.10"), Subtotal: dec("2.20")},
		{Quantity: 1, UnitPrice: dec("3.35"), Subtotal: dec("3.35")},
	}
	assert.True(t, dec("5.55").Equal(sales.ItemsTotal(items)))
	assert.True(t, decimal.Zero.Equal(sales.ItemsTotal(nil)))
}

func TestReconcilePayments(t *testing.T) {
	tests := []struct {
		name     string
		payments []string
		total    string
		wantErr  bool
	}{
		{name: "exacto", payments: []string{"15.00"}, total: "15.00"},
		{name: "varios medios", payments: []string{"10.00", "5.00"}, total: "15.00"},
		{name: "dentro de tolerancia por abajo", payments: []string{"14.99"}, total: "15.00"},
		{name: "dentro de tolerancia por arriba", payments: []string{"15.01"}, total: "15.00"},
		{name: "fuera de tolerancia", payments: []string{"14.00"}, total: "15.00", wantErr: true},
		{name: "apenas fuera", payments: []string{"15.011"}, total: "15.00", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pms []entity.PaymentMethod
			for _, a := range tt.payments {
				pms = append(pms, entity.PaymentMethod{Type: entity.PaymentCash, Amount: dec(a)})
			}
			err := sales.ReconcilePayments(pms, dec(tt.total))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrPaymentMismatch))
			var pm *domain.PaymentMismatchError
			require.True(t, errors.As(err, &pm))
			assert.True(t, dec(tt.total).Equal(pm.SaleTotal))
			assert.True(t, sales.PaymentsTotal(pms).Equal(pm.PaymentTotal))
		})
	}
}

func TestStockTracker_LineasRepetidasSeValidanEnOrden(t *testing.T) {
	p := &entity.Product{ID: "p1", Name: "Mouse", Stock: 10}
	tr := sales.NewStockTracker()

	require.NoError(t, tr.Reserve(p, 4))
	require.NoError(t, tr.Reserve(p, 6))
	left, ok := tr.Remaining("p1")
	require.True(t, ok)
	assert.Equal(t, 0, left)

	err := tr.Reserve(p, 1)
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "p1", ise.ProductID)
	assert.Equal(t, 1, ise.Requested)
	assert.Equal(t, 0, ise.Available)
	assert.Equal(t, domain.CodeInsufficientStock, domain.Code(err))
}

func TestStockTracker_FallaNoConsumeStock(t *testing.T) {
	p := &entity.Product{ID: "p1", Stock: 5}
	tr := sales.NewStockTracker()
	require.Error(t, tr.Reserve(p, 6))
	require.NoError(t, tr.Reserve(p, 5))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to entity.SaleStatus
		want     bool
	}{
		{entity.SaleStatusPending, entity.SaleStatusCompleted, true},
		{entity.SaleStatusPending, entity.SaleStatusCancelled, true},
		{entity.SaleStatusPending, entity.SaleStatusPending, true},
		{entity.SaleStatusCompleted, entity.SaleStatusCancelled, true},
		{entity.SaleStatusCompleted, entity.SaleStatusPending, false},
		{entity.SaleStatusCancelled, entity.SaleStatusCompleted, false},
		{entity.SaleStatusCancelled, entity.SaleStatusPending, false},
		{entity.SaleStatusPending, entity.SaleStatus("refunded"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sales.CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCanDelete(t *testing.T) {
	assert.True(t, sales.CanDelete(&entity.Sale{Status: entity.SaleStatusPending}))
	assert.False(t, sales.CanDelete(&entity.Sale{Status: entity.SaleStatusCompleted}))
	assert.False(t, sales.CanDelete(&entity.Sale{Status: entity.SaleStatusCancelled}))
}
