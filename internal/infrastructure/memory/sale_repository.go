package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria. Guarda copias para que el caller no comparta slices con el store.
type SaleRepo struct{ view }

func cloneSale(s entity.Sale) *entity.Sale {
	s.Items = slices.Clone(s.Items)
	s.PaymentMethods = slices.Clone(s.PaymentMethods)
	return &s
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	var err error
	r.write(func() {
		if _, ok := r.s.sales[sale.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		r.s.sales[sale.ID] = *cloneSale(*sale)
	})
	return err
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	r.read(func() {
		if s, ok := r.s.sales[id]; ok {
			out = cloneSale(s)
		}
	})
	return out, nil
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) UpdateStatus(_ context.Context, id string, status entity.SaleStatus) error {
	var err error
	r.write(func() {
		s, ok := r.s.sales[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		s.Status = status
		s.UpdatedAt = time.Now().UTC()
		r.s.sales[id] = s
	})
	return err
}

func (r *SaleRepo) Delete(_ context.Context, id string) error {
	var err error
	r.write(func() {
		if _, ok := r.s.sales[id]; !ok {
			err = domain.ErrNotFound
			return
		}
		delete(r.s.sales, id)
	})
	return err
}

func (r *SaleRepo) List(_ context.Context, filter entity.SaleFilter) ([]*entity.Sale, error) {
	var list []*entity.Sale
	r.read(func() {
		for _, s := range r.s.sales {
			if filter.ClientID != "" && s.ClientID != filter.ClientID {
				continue
			}
			if filter.Status != "" && s.Status != filter.Status {
				continue
			}
			if filter.StartDate != nil && s.CreatedAt.Before(*filter.StartDate) {
				continue
			}
			if filter.EndDate != nil && s.CreatedAt.After(*filter.EndDate) {
				continue
			}
			list = append(list, cloneSale(s))
		}
	})
	slices.SortFunc(list, func(a, b *entity.Sale) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return paginate(list, filter.Limit, filter.Offset), nil
}

func (r *SaleRepo) CountByClient(_ context.Context, clientID string) (int, error) {
	n := 0
	r.read(func() {
		for _, s := range r.s.sales {
			if s.ClientID == clientID {
				n++
			}
		}
	})
	return n, nil
}
