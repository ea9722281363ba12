package mongodb

import (
	"testing"
	"time"

	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDecimal128_ConservaPrecision(t *testing.T) {
	for _, s := range []string{"0", "0.10", "19.99", "123456789012.34", "-5.5"} {
		d := decimal.RequireFromString(s)
		back, err := fromD128(toD128(d))
		require.NoError(t, err)
		assert.True(t, d.Equal(back), s)
	}
}

func TestDecimal128Ptr_Nil(t *testing.T) {
	assert.Nil(t, toD128Ptr(nil))
	got, err := fromD128Ptr(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaleDoc_PasaPorBSON(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sale := &entity.Sale{
		ID:       "s1",
		ClientID: "c1",
		Items: []entity.SaleItem{{
			ProductID: "p1", ProductName: "Mouse", Quantity: 3,
			UnitPrice: decimal.RequireFromString("5.00"), Subtotal: decimal.RequireFromString("15.00"),
		}},
		PaymentMethods: []entity.PaymentMethod{{Type: entity.PaymentCash, Amount: decimal.RequireFromString("15.00")}},
		Total:          decimal.RequireFromString("15.00"),
		Status:         entity.SaleStatusCompleted,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	raw, err := bson.Marshal(newSaleDoc(sale))
	require.NoError(t, err)
	var d saleDoc
	require.NoError(t, bson.Unmarshal(raw, &d))
	got, err := d.entity()
	require.NoError(t, err)

	assert.Equal(t, sale.ID, got.ID)
	assert.Equal(t, entity.SaleStatusCompleted, got.Status)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Mouse", got.Items[0].ProductName)
	assert.True(t, sale.Total.Equal(got.Total))
	assert.True(t, sale.Items[0].Subtotal.Equal(got.Items[0].Subtotal))
	assert.True(t, now.Equal(got.CreatedAt))
}

func TestClientDoc_EmailEnMinusculas(t *testing.T) {
	d := newClientDoc(&entity.Client{ID: "c1", Email: "Ana@Example.com"})
	assert.Equal(t, "ana@example.com", d.EmailLower)
	assert.Equal(t, "Ana@Example.com", d.entity().Email)
}
