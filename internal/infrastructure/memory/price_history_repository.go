package memory

import (
	"context"
	"slices"

	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
)

var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

type PriceHistoryRepo struct{ view }

func (r *PriceHistoryRepo) Create(_ context.Context, entry *entity.PriceHistory) error {
	r.write(func() {
		r.s.history[entry.ProductID] = append(r.s.history[entry.ProductID], *entry)
	})
	return nil
}

// ListByProduct más reciente primero; ante igual fecha, el último insertado primero.
func (r *PriceHistoryRepo) ListByProduct(_ context.Context, productID string) ([]*entity.PriceHistory, error) {
	var list []*entity.PriceHistory
	r.read(func() {
		entries := r.s.history[productID]
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			list = append(list, &e)
		}
	})
	slices.SortStableFunc(list, func(a, b *entity.PriceHistory) int {
		return b.Date.Compare(a.Date)
	})
	return list, nil
}
