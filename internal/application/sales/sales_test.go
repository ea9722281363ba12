package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/application/sales"
	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
	"github.com/npochettino/sales-management-api/internal/domain/repository/mocks"
	"github.com/npochettino/sales-management-api/internal/infrastructure/memory"
	"github.com/npochettino/sales-management-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	store     *memory.Store
	create    *sales.CreateSaleUseCase
	lifecycle *sales.SaleUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, store.Repos().Clients.Create(ctx, &entity.Client{
		ID: "C", Name: "Cliente", Email: "c@example.com", CreatedAt: now, UpdatedAt: now,
	}))
	return &fixture{
		store:     store,
		create:    sales.NewCreateSaleUseCase(store, logger.Nop()),
		lifecycle: sales.NewSaleUseCase(store, store.Repos(), logger.Nop()),
	}
}

func (f *fixture) addProduct(t *testing.T, id, price string, stock int) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.store.Repos().Products.Create(context.Background(), &entity.Product{
		ID: id, Name: "Producto " + id, Price: decimal.RequireFromString(price), Stock: stock,
		CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Repos().Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func cash(amount string) []dto.PaymentMethodRequest {
	return []dto.PaymentMethodRequest{{Type: "cash", Amount: decimal.RequireFromString(amount)}}
}

func TestCreateSale_ScenarioA_Exito(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P", "5.00", 10)

	sale, err := f.create.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientID:       "C",
		Items:          []dto.SaleItemRequest{{ProductID: "P", Quantity: 3}},
		PaymentMethods: cash("15.00"),
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("15.00").Equal(sale.Total))
	assert.Equal(t, string(entity.SaleStatusCompleted), sale.Status)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Producto P", sale.Items[0].ProductName)
	assert.True(t, sale.Items[0].UnitPrice.Mul(decimal.NewFromInt(3)).Equal(sale.Items[0].Subtotal))
	assert.Equal(t, 7, f.stock(t, "P"))

	got, err := f.lifecycle.GetSale(context.Background(), sale.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Client)
	assert.Equal(t, "C", got.Client.ID)
}

func TestCreateSale_ScenarioB_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P", "5.00", 2)

	_, err := f.create.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientID:       "C",
		Items:          []dto.SaleItemRequest{{ProductID: "P", Quantity: 3}},
		PaymentMethods: cash("15.00"),
	})
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "P", ise.ProductID)
	assert.Equal(t, "Producto P", ise.ProductName)
	assert.Equal(t, 3, ise.Requested)
	assert.Equal(t, 2, ise.Available)
	assert.Equal(t, 2, f.stock(t, "P"))
}

func TestCreateSale_ScenarioC_PagoNoCoincide(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P", "5.00", 10)

	_, err := f.create.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientID:       "C",
		Items:          []dto.SaleItemRequest{{ProductID: "P", Quantity: 3}},
		PaymentMethods: cash("14.00"),
	})
	var pm *domain.PaymentMismatchError
	require.True(t, errors.As(err, &pm))
	assert.True(t, decimal.RequireFromString("14.00").Equal(pm.PaymentTotal))
	assert.True(t, decimal.RequireFromString("15.00").Equal(pm.SaleTotal))
	assert.Equal(t, 10, f.stock(t, "P"))
}

func TestCreateSale_ScenarioD_BorrarPendienteReponeStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addProduct(t, "P", "5.00", 7)

	sale, err := f.create.CreateSale(ctx, dto.CreateSaleRequest{
		ClientID:       "C",
		Items:          []dto.SaleItemRequest{{ProductID: "P", Quantity: 2}},
		PaymentMethods: cash("10.00"),
		Status:         "pending",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, f.stock(t, "P"))

	require.NoError(t, f.lifecycle.DeleteSale(ctx, sale.ID))
	assert.Equal(t, 7, f.stock(t, "P"))

	_, err = f.lifecycle.GetSale(ctx, sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.lifecycle.DeleteSale(ctx, sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 7, f.stock(t, "P"))
}

func TestCreateSale_ScenarioE_Concurrencia(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P", "1.00", 10)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.create.CreateSale(context.Background(), dto.CreateSaleRequest{
				ClientID:       "C",
				Items:          []dto.SaleItemRequest{{ProductID: "P", Quantity: 6}},
				PaymentMethods: cash("6.00"),
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 4, f.stock(t, "P"))
}

func TestCreateSale_LineasRepetidasSeSuman(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P", "2.00", 5)

	_, err := f.create.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientID:       "C",
		Items:          []dto.SaleItemRequest{{ProductID: "P", Quantity: 3}, {ProductID: "P", Quantity: 3}},
		PaymentMethods: cash("12.00"),
	})
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, 2, ise.Available)
	assert.Equal(t, 5, f.stock(t, "P"))

	sale, err := f.create.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientID:       "C",
		Items:          []dto.SaleItemRequest{{ProductID: "P", Quantity: 2}, {ProductID: "P", Quantity: 3}},
		PaymentMethods: cash("10.00"),
	})
	require.NoError(t, err)
	assert.Len(t, sale.Items, 2)
	assert.Equal(t, 0, f.stock(t, "P"))
}

func TestCreateSale_FalloEnLineaPosteriorNoTocaLasAnteriores(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "A", "1.00", 10)
	f.addProduct(t, "B", "1.00", 1)

	_, err := f.create.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientID:       "C",
		Items:          []dto.SaleItemRequest{{ProductID: "A", Quantity: 4}, {ProductID: "B", Quantity: 2}},
		PaymentMethods: cash("6.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, f.stock(t, "A"))
	assert.Equal(t, 1, f.stock(t, "B"))
}

func TestCreateSale_Validaciones(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateSaleRequest
		wantErr error
	}{
		{
			name:    "ClienteInexistente",
			req:     dto.CreateSaleRequest{ClientID: "X", PaymentMethods: cash("1")},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "ClienteInexistenteConPagoInvalido",
			req: dto.CreateSaleRequest{ClientID: "X",
				Items:          []dto.SaleItemRequest{{ProductID: "P", Quantity: 1}},
				PaymentMethods: []dto.PaymentMethodRequest{{Type: "bitcoin", Amount: decimal.NewFromInt(5)}}},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "SinItems",
			req:     dto.CreateSaleRequest{ClientID: "C", PaymentMethods: cash("1")},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "SinPagos",
			req:     dto.CreateSaleRequest{ClientID: "C", Items: []dto.SaleItemRequest{{ProductID: "P", Quantity: 1}}},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "ProductoInexistente",
			req: dto.CreateSaleRequest{ClientID: "C",
				Items: []dto.SaleItemRequest{{ProductID: "nope", Quantity: 1}}, PaymentMethods: cash("1")},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "CantidadCero",
			req: dto.CreateSaleRequest{ClientID: "C",
				Items: []dto.SaleItemRequest{{ProductID: "P", Quantity: 0}}, PaymentMethods: cash("0")},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "MedioDePagoDesconocido",
			req: dto.CreateSaleRequest{ClientID: "C",
				Items:          []dto.SaleItemRequest{{ProductID: "P", Quantity: 1}},
				PaymentMethods: []dto.PaymentMethodRequest{{Type: "bitcoin", Amount: decimal.NewFromInt(5)}}},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "EstadoDesconocido",
			req: dto.CreateSaleRequest{ClientID: "C", Status: "refunded",
				Items: []dto.SaleItemRequest{{ProductID: "P", Quantity: 1}}, PaymentMethods: cash("5")},
			wantErr: domain.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.addProduct(t, "P", "5.00", 10)
			_, err := f.create.CreateSale(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 10, f.stock(t, "P"))
		})
	}
}

func TestCreateSale_ToleranciaDePago(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P", "3.333", 10)

	sale, err := f.create.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientID:       "C",
		Items:          []dto.SaleItemRequest{{ProductID: "P", Quantity: 3}},
		PaymentMethods: []dto.PaymentMethodRequest{{Type: "cash", Amount: decimal.RequireFromString("5")}, {Type: "debit", Amount: decimal.RequireFromString("5")}},
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("9.999").Equal(sale.Total))
}

// salesOverrideUoW reemplaza el repo de ventas dentro de la transacción real del store.
type salesOverrideUoW struct {
	inner repository.UnitOfWork
	sales repository.SaleRepository
}

func (u salesOverrideUoW) Do(ctx context.Context, fn func(ctx context.Context, r repository.Repos) error) error {
	return u.inner.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		r.Sales = u.sales
		return fn(ctx, r)
	})
}

func TestCreateSale_FalloAlGuardarRevierteStock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t)
	f.addProduct(t, "P", "5.00", 10)

	saleRepo := mocks.NewMockSaleRepository(ctrl)
	saleRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *entity.Sale) error {
			assert.Equal(t, "C", s.ClientID)
			assert.True(t, decimal.NewFromInt(15).Equal(s.Total))
			return errors.New("write conflict")
		})

	uc := sales.NewCreateSaleUseCase(salesOverrideUoW{inner: f.store, sales: saleRepo}, logger.Nop())
	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientID:       "C",
		Items:          []dto.SaleItemRequest{{ProductID: "P", Quantity: 3}},
		PaymentMethods: cash("15.00"),
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeInternal, domain.Code(err))
	assert.Equal(t, 10, f.stock(t, "P"))
}

func TestCreateSale_NoEscribeHistorialDePrecios(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addProduct(t, "P", "5.00", 10)

	_, err := f.create.CreateSale(ctx, dto.CreateSaleRequest{
		ClientID:       "C",
		Items:          []dto.SaleItemRequest{{ProductID: "P", Quantity: 1}},
		PaymentMethods: cash("5.00"),
	})
	require.NoError(t, err)
	history, err := f.store.Repos().PriceHistory.ListByProduct(ctx, "P")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCreateSale_ContextoCanceladoNoRegistraNada(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P", "5.00", 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sale, err := f.create.CreateSale(ctx, dto.CreateSaleRequest{
		ClientID:       "C",
		Items:          []dto.SaleItemRequest{{ProductID: "P", Quantity: 3}},
		PaymentMethods: cash("15.00"),
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, sale)
	assert.Equal(t, 10, f.stock(t, "P"))
}
