package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
	"github.com/npochettino/sales-management-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, s *memory.Store, id string, stock int) {
	t.Helper()
	now := time.Now()
	require.NoError(t, s.Repos().Products.Create(context.Background(), &entity.Product{
		ID: id, Name: "Producto " + id, Price: decimal.NewFromInt(5), Stock: stock, CreatedAt: now, UpdatedAt: now,
	}))
}

func TestStore_Do_RollbackRestauraTodo(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seedProduct(t, s, "p1", 10)

	boom := errors.New("boom")
	err := s.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		ok, err := r.Products.DecrementStock(ctx, "p1", 3)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, r.Sales.Create(ctx, &entity.Sale{ID: "s1", ClientID: "c1", Status: entity.SaleStatusCompleted}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Repos().Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)
	sale, err := s.Repos().Sales.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, sale)
}

func TestStore_Do_CommitPersiste(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seedProduct(t, s, "p1", 10)

	require.NoError(t, s.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		_, err := r.Products.DecrementStock(ctx, "p1", 4)
		return err
	}))
	p, _ := s.Repos().Products.GetByID(ctx, "p1")
	assert.Equal(t, 6, p.Stock)
}

func TestStore_Do_PanicRestaura(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seedProduct(t, s, "p1", 2)

	assert.Panics(t, func() {
		_ = s.Do(ctx, func(ctx context.Context, r repository.Repos) error {
			_, _ = r.Products.DecrementStock(ctx, "p1", 2)
			panic("fallo")
		})
	})
	p, _ := s.Repos().Products.GetByID(ctx, "p1")
	assert.Equal(t, 2, p.Stock)
}

func TestStore_Do_ContextoCanceladoAntesDeEmpezar(t *testing.T) {
	s := memory.New()
	seedProduct(t, s, "p1", 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStore_Do_ContextoCanceladoAntesDelCommitDescarta(t *testing.T) {
	s := memory.New()
	seedProduct(t, s, "p1", 10)

	ctx, cancel := context.WithCancel(context.Background())
	err := s.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		ok, err := r.Products.DecrementStock(ctx, "p1", 3)
		require.NoError(t, err)
		require.True(t, ok)
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)

	p, err := s.Repos().Products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)
}

func TestProductRepo_DecrementStockCondicional(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seedProduct(t, s, "p1", 3)
	repo := s.Repos().Products

	ok, err := repo.DecrementStock(ctx, "p1", 4)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DecrementStock(ctx, "p1", 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IncrementStock(ctx, "missing", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaleRepo_ListFiltraYOrdena(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	repo := s.Repos().Sales
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, st := range []entity.SaleStatus{entity.SaleStatusCompleted, entity.SaleStatusPending, entity.SaleStatusCompleted} {
		require.NoError(t, repo.Create(ctx, &entity.Sale{
			ID:        string(rune('a' + i)),
			ClientID:  "c1",
			Status:    st,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	all, err := repo.List(ctx, entity.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)

	completed, err := repo.List(ctx, entity.SaleFilter{Status: entity.SaleStatusCompleted})
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	start := base.Add(30 * time.Minute)
	ranged, err := repo.List(ctx, entity.SaleFilter{StartDate: &start, Limit: 1})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "c", ranged[0].ID)

	n, err := repo.CountByClient(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestClientRepo_EmailUnico(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().Repos().Clients
	require.NoError(t, repo.Create(ctx, &entity.Client{ID: "1", Name: "Ana", Email: "ana@x.com"}))
	err := repo.Create(ctx, &entity.Client{ID: "2", Name: "Otra", Email: "ANA@x.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	found, err := repo.List(ctx, entity.ClientFilter{Search: "an"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestPriceHistoryRepo_MasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().Repos().PriceHistory
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &entity.PriceHistory{ID: "h1", ProductID: "p1", Date: t0}))
	require.NoError(t, repo.Create(ctx, &entity.PriceHistory{ID: "h2", ProductID: "p1", Date: t0.Add(time.Hour)}))

	list, err := repo.ListByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "h2", list[0].ID)
	assert.Equal(t, "h1", list[1].ID)
}
