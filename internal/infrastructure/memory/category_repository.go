package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

type CategoryRepo struct{ view }

func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	var err error
	r.write(func() {
		if _, ok := r.s.categories[category.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		r.s.categories[category.ID] = *category
	})
	return err
}

func (r *CategoryRepo) CreateMany(_ context.Context, categories []*entity.Category) error {
	var err error
	r.write(func() {
		for _, c := range categories {
			if _, ok := r.s.categories[c.ID]; ok {
				err = domain.ErrDuplicate
				return
			}
		}
		for _, c := range categories {
			r.s.categories[c.ID] = *c
		}
	})
	return err
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	r.read(func() {
		if c, ok := r.s.categories[id]; ok {
			out = &c
		}
	})
	return out, nil
}

// List ordena por nombre.
func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var list []*entity.Category
	r.read(func() {
		for _, c := range r.s.categories {
			list = append(list, &c)
		}
	})
	slices.SortFunc(list, func(a, b *entity.Category) int {
		return strings.Compare(a.Name, b.Name)
	})
	return list, nil
}

func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	var err error
	r.write(func() {
		if _, ok := r.s.categories[category.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		r.s.categories[category.ID] = *category
	})
	return err
}

func (r *CategoryRepo) Delete(_ context.Context, id string) (bool, error) {
	var ok bool
	r.write(func() {
		if _, ok = r.s.categories[id]; ok {
			delete(r.s.categories, id)
		}
	})
	return ok, nil
}

func (r *CategoryRepo) Count(_ context.Context) (int, error) {
	var n int
	r.read(func() { n = len(r.s.categories) })
	return n, nil
}
