package pdf

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func sampleSale() *entity.Sale {
	return &entity.Sale{
		ID:       "3f0c1c9e-venta",
		ClientID: "c1",
		Items: []entity.SaleItem{
			{ProductID: "p1", ProductName: "Mouse", Quantity: 3, UnitPrice: decimal.RequireFromString("5.00"), Subtotal: decimal.RequireFromString("15.00")},
		},
		PaymentMethods: []entity.PaymentMethod{
			{Type: entity.PaymentCash, Amount: decimal.RequireFromString("10.00")},
			{Type: entity.PaymentTransfer, Amount: decimal.RequireFromString("5.00"), Reference: "TRX-1"},
		},
		Total:     decimal.RequireFromString("15.00"),
		Status:    entity.SaleStatusCompleted,
		CreatedAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestGenerateSaleReceipt(t *testing.T) {
	g := NewMarotoPDFGenerator(language.Spanish)
	client := &entity.Client{ID: "c1", Name: "Ana", Email: "ana@example.com"}

	out, err := g.GenerateSaleReceipt(context.Background(), sampleSale(), client)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateSaleReceipt_SinCliente(t *testing.T) {
	g := NewMarotoPDFGenerator(language.Spanish)
	out, err := g.GenerateSaleReceipt(context.Background(), sampleSale(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestMoney_UsaSeparadorDecimalDelIdioma(t *testing.T) {
	es := NewMarotoPDFGenerator(language.Spanish).money(decimal.RequireFromString("1234567.5"))
	assert.True(t, strings.HasPrefix(es, "$"))
	assert.Contains(t, es, "567,50")

	en := NewMarotoPDFGenerator(language.AmericanEnglish).money(decimal.RequireFromString("1234567.5"))
	assert.Contains(t, en, "567.50")
}
