package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct{ view }

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	var err error
	r.write(func() {
		if _, ok := r.s.products[product.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		r.s.products[product.ID] = *product
	})
	return err
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.read(func() {
		if p, ok := r.s.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// GetManyForUpdate en memoria el lock de la unidad de trabajo ya excluye a los demás escritores.
func (r *ProductRepo) GetManyForUpdate(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	r.read(func() {
		for _, id := range ids {
			if p, ok := r.s.products[id]; ok {
				out[id] = &p
			}
		}
	})
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	var err error
	r.write(func() {
		if _, ok := r.s.products[product.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		r.s.products[product.ID] = *product
	})
	return err
}

func (r *ProductRepo) DecrementStock(_ context.Context, id string, quantity int) (bool, error) {
	var applied bool
	r.write(func() {
		p, ok := r.s.products[id]
		if !ok || p.Stock < quantity {
			return
		}
		p.Stock -= quantity
		r.s.products[id] = p
		applied = true
	})
	return applied, nil
}

func (r *ProductRepo) IncrementStock(_ context.Context, id string, quantity int) (bool, error) {
	var applied bool
	r.write(func() {
		p, ok := r.s.products[id]
		if !ok {
			return
		}
		p.Stock += quantity
		r.s.products[id] = p
		applied = true
	})
	return applied, nil
}

// List más nuevos primero.
func (r *ProductRepo) List(_ context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	var list []*entity.Product
	r.read(func() {
		for _, p := range r.s.products {
			if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
				continue
			}
			if filter.InStock && p.Stock <= 0 {
				continue
			}
			list = append(list, &p)
		}
	})
	slices.SortFunc(list, func(a, b *entity.Product) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return paginate(list, filter.Limit, filter.Offset), nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) (bool, error) {
	var ok bool
	r.write(func() {
		if _, ok = r.s.products[id]; ok {
			delete(r.s.products, id)
		}
	})
	return ok, nil
}

func (r *ProductRepo) CountByCategory(_ context.Context, categoryID string) (int, error) {
	n := 0
	r.read(func() {
		for _, p := range r.s.products {
			if p.CategoryID == categoryID {
				n++
			}
		}
	})
	return n, nil
}

func (r *ProductRepo) UpdateCategoryName(_ context.Context, categoryID, name string) error {
	r.write(func() {
		for id, p := range r.s.products {
			if p.CategoryID == categoryID {
				p.CategoryName = name
				r.s.products[id] = p
			}
		}
	})
	return nil
}
