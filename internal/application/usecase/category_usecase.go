package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	uow  repository.UnitOfWork
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(uow repository.UnitOfWork, repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{uow: uow, repo: repo}
}

// List devuelve las categorías ordenadas por nombre. Si no hay ninguna inserta las de fábrica.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	var list []*entity.Category
	err := uc.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		n, err := r.Categories.Count(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			now := time.Now().UTC()
			seed := make([]*entity.Category, 0, len(entity.DefaultCategories))
			for _, c := range entity.DefaultCategories {
				c.ID = uuid.New().String()
				c.CreatedAt, c.UpdatedAt = now, now
				seed = append(seed, &c)
			}
			if err := r.Categories.CreateMany(ctx, seed); err != nil {
				return err
			}
		}
		list, err = r.Categories.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// Create crea una categoría. El color por defecto es DefaultCategoryColor.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	color := in.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	now := time.Now().UTC()
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

// Update actualización parcial. Un cambio de nombre se propaga a los productos de la categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	var c *entity.Category
	err := uc.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		var err error
		c, err = r.Categories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		renamed := false
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			renamed = name != c.Name
			c.Name = name
		}
		if in.Description != nil {
			c.Description = *in.Description
		}
		if in.Color != nil {
			c.Color = *in.Color
		}
		c.UpdatedAt = time.Now().UTC()
		if err := r.Categories.Update(ctx, c); err != nil {
			return err
		}
		if renamed {
			return r.Products.UpdateCategoryName(ctx, c.ID, c.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

// Delete elimina una categoría sin productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		n, err := r.Products.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.NewInvalidState(fmt.Sprintf("la categoría tiene %d productos asociados y no se puede eliminar", n))
		}
		ok, err := r.Categories.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return nil
	})
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
