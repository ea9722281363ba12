package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) newSale(t *testing.T, status string) *dto.SaleResponse {
	t.Helper()
	sale, err := f.create.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientID:       "C",
		Items:          []dto.SaleItemRequest{{ProductID: "P", Quantity: 2}},
		PaymentMethods: cash("10.00"),
		Status:         status,
	})
	require.NoError(t, err)
	return sale
}

func TestUpdateStatus_Transiciones(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{name: "PendienteACompletada", from: "pending", to: "completed"},
		{name: "PendienteACancelada", from: "pending", to: "cancelled"},
		{name: "CompletadaACancelada", from: "completed", to: "cancelled"},
		{name: "MismoEstado", from: "completed", to: "completed"},
		{name: "CanceladaACompletada", from: "cancelled", to: "completed", wantErr: domain.ErrInvalidState},
		{name: "CompletadaAPendiente", from: "completed", to: "pending", wantErr: domain.ErrInvalidState},
		{name: "CanceladaAPendiente", from: "cancelled", to: "pending", wantErr: domain.ErrInvalidState},
		{name: "EstadoDesconocido", from: "pending", to: "refunded", wantErr: domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.addProduct(t, "P", "5.00", 10)
			sale := f.newSale(t, tt.from)

			got, err := f.lifecycle.UpdateStatus(context.Background(), sale.ID, dto.UpdateSaleStatusRequest{Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, got.Status)
			assert.Equal(t, 8, f.stock(t, "P"), "el cambio de estado no toca el stock")
		})
	}
}

func TestUpdateStatus_Inexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.lifecycle.UpdateStatus(context.Background(), "nope", dto.UpdateSaleStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteSale_NoPendienteSeRechaza(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addProduct(t, "P", "5.00", 10)
	sale := f.newSale(t, "completed")

	err := f.lifecycle.DeleteSale(ctx, sale.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 8, f.stock(t, "P"))

	_, err = f.lifecycle.GetSale(ctx, sale.ID)
	assert.NoError(t, err)
}

func TestDeleteSale_ProductoEliminadoSeOmite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addProduct(t, "P", "5.00", 10)
	sale := f.newSale(t, "pending")

	_, err := f.store.Repos().Products.Delete(ctx, "P")
	require.NoError(t, err)

	require.NoError(t, f.lifecycle.DeleteSale(ctx, sale.ID))
	_, err = f.lifecycle.GetSale(ctx, sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelarNoReponeStock(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P", "5.00", 10)
	sale := f.newSale(t, "pending")

	_, err := f.lifecycle.UpdateStatus(context.Background(), sale.ID, dto.UpdateSaleStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, 8, f.stock(t, "P"))
}

func TestListSales_Filtros(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addProduct(t, "P", "5.00", 10)
	f.newSale(t, "pending")
	f.newSale(t, "completed")

	all, err := f.lifecycle.ListSales(ctx, dto.ListSalesRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, 50, all.Page.Limit)

	pending, err := f.lifecycle.ListSales(ctx, dto.ListSalesRequest{Status: string(entity.SaleStatusPending)})
	require.NoError(t, err)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, "pending", pending.Items[0].Status)

	future := time.Now().Add(time.Hour)
	none, err := f.lifecycle.ListSales(ctx, dto.ListSalesRequest{StartDate: &future})
	require.NoError(t, err)
	assert.Empty(t, none.Items)

	past := time.Now().Add(-time.Hour)
	_, err = f.lifecycle.ListSales(ctx, dto.ListSalesRequest{StartDate: &future, EndDate: &past})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
