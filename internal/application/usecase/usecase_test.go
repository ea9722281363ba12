package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/application/pricehistory"
	"github.com/npochettino/sales-management-api/internal/application/usecase"
	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductUC(store *memory.Store) *usecase.ProductUseCase {
	repos := store.Repos()
	return usecase.NewProductUseCase(store, repos.Products, pricehistory.NewRecorder(repos.PriceHistory, repos.Products))
}

func ptr[T any](v T) *T { return &v }

func TestProductUseCase_HistorialDePrecios(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newProductUC(store)

	p, err := uc.Create(ctx, "admin-1", dto.CreateProductRequest{
		Name: "Teclado", Cost: decimal.NewFromInt(10), Price: decimal.NewFromInt(20), Stock: 5,
	})
	require.NoError(t, err)

	history, err := store.Repos().PriceHistory.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Nil(t, history[0].CostBefore)
	assert.Nil(t, history[0].PriceBefore)
	assert.Equal(t, usecase.ReasonInitialPrice, history[0].Reason)
	assert.Equal(t, "admin-1", history[0].UserID)

	// Cambio sin costo/precio: no agrega registro.
	_, err = uc.Update(ctx, "admin-1", p.ID, dto.UpdateProductRequest{Name: ptr("Teclado mecánico")})
	require.NoError(t, err)
	history, _ = store.Repos().PriceHistory.ListByProduct(ctx, p.ID)
	assert.Len(t, history, 1)

	// Mismo precio enviado explícitamente: tampoco.
	_, err = uc.Update(ctx, "admin-1", p.ID, dto.UpdateProductRequest{Price: ptr(decimal.RequireFromString("20.00"))})
	require.NoError(t, err)
	history, _ = store.Repos().PriceHistory.ListByProduct(ctx, p.ID)
	assert.Len(t, history, 1)

	time.Sleep(time.Millisecond)
	_, err = uc.Update(ctx, "vendedor-2", p.ID, dto.UpdateProductRequest{
		Price: ptr(decimal.NewFromInt(25)), PriceChangeReason: "Aumento proveedor",
	})
	require.NoError(t, err)
	history, _ = store.Repos().PriceHistory.ListByProduct(ctx, p.ID)
	require.Len(t, history, 2)
	latest := history[0]
	assert.Equal(t, "Aumento proveedor", latest.Reason)
	assert.Equal(t, "vendedor-2", latest.UserID)
	require.NotNil(t, latest.PriceBefore)
	assert.True(t, latest.PriceBefore.Equal(decimal.NewFromInt(20)))
	assert.True(t, latest.PriceAfter.Equal(decimal.NewFromInt(25)))
}

func TestProductUseCase_Validaciones(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newProductUC(store)

	_, err := uc.Create(ctx, "", dto.CreateProductRequest{Name: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "", dto.CreateProductRequest{Name: "x", CategoryID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, "", "nope", dto.UpdateProductRequest{Name: ptr("y")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := uc.Create(ctx, "", dto.CreateProductRequest{Name: "x", Stock: 1})
	require.NoError(t, err)
	_, err = uc.Update(ctx, "", p.ID, dto.UpdateProductRequest{Stock: ptr(-3)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.Delete(ctx, p.ID))
	assert.ErrorIs(t, uc.Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestProductUseCase_ListFiltraPorStock(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newProductUC(store)
	_, err := uc.Create(ctx, "", dto.CreateProductRequest{Name: "con stock", Stock: 3})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "", dto.CreateProductRequest{Name: "sin stock"})
	require.NoError(t, err)

	all, err := uc.List(ctx, dto.ListProductsRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	inStock, err := uc.List(ctx, dto.ListProductsRequest{InStock: true})
	require.NoError(t, err)
	require.Len(t, inStock.Items, 1)
	assert.Equal(t, "con stock", inStock.Items[0].Name)
}

func TestClientUseCase(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := usecase.NewClientUseCase(store, store.Repos().Clients)

	c, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Ana", Email: " Ana@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", c.Email)

	_, err = uc.Create(ctx, dto.CreateClientRequest{Name: "Otra", Email: "ana@example.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, domain.CodeConflict, domain.Code(err))

	other, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Beto", Email: "beto@example.com"})
	require.NoError(t, err)
	_, err = uc.Update(ctx, other.ID, dto.UpdateClientRequest{Email: ptr("ana@example.com")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	found, err := uc.List(ctx, dto.ListClientsRequest{Search: "BET"})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Beto", found.Items[0].Name)

	require.NoError(t, store.Repos().Sales.Create(ctx, &entity.Sale{ID: "s1", ClientID: c.ID, Status: entity.SaleStatusCompleted}))
	err = uc.Delete(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	require.NoError(t, uc.Delete(ctx, other.ID))
	assert.ErrorIs(t, uc.Delete(ctx, other.ID), domain.ErrNotFound)
}

func TestCategoryUseCase(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := usecase.NewCategoryUseCase(store, store.Repos().Categories)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(entity.DefaultCategories))
	assert.Equal(t, "Clothing", list[0].Name)

	again, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, again, len(entity.DefaultCategories), "el seed solo corre con la colección vacía")

	cat, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Juguetes"})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCategoryColor, cat.Color)

	products := newProductUC(store)
	p, err := products.Create(ctx, "", dto.CreateProductRequest{Name: "Pelota", CategoryID: cat.ID})
	require.NoError(t, err)
	assert.Equal(t, "Juguetes", p.CategoryName)

	_, err = uc.Update(ctx, cat.ID, dto.UpdateCategoryRequest{Name: ptr("Juegos")})
	require.NoError(t, err)
	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Juegos", got.CategoryName)

	assert.ErrorIs(t, uc.Delete(ctx, cat.ID), domain.ErrInvalidState)
	require.NoError(t, products.Delete(ctx, p.ID))
	require.NoError(t, uc.Delete(ctx, cat.ID))
	_, err = uc.GetByID(ctx, cat.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
