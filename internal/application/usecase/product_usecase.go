package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/application/pricehistory"
	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Motivos por defecto del historial de precios.
const (
	ReasonInitialPrice = "Precio inicial"
	ReasonPriceUpdate  = "Actualización de precio"
)

// ProductUseCase casos de uso CRUD para productos.
// Alta y cambios de costo/precio escriben el historial en la misma unidad de trabajo que el producto.
type ProductUseCase struct {
	uow      repository.UnitOfWork
	repo     repository.ProductRepository
	recorder *pricehistory.Recorder
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(uow repository.UnitOfWork, repo repository.ProductRepository, recorder *pricehistory.Recorder) *ProductUseCase {
	return &ProductUseCase{uow: uow, repo: repo, recorder: recorder}
}

// Create crea un producto y su primer registro de historial (sin valores previos).
func (uc *ProductUseCase) Create(ctx context.Context, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := checkMoney(in.Cost, in.Price); err != nil {
		return nil, err
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock negativo", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Cost:        in.Cost,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		if in.CategoryID != "" {
			cat, err := r.Categories.GetByID(ctx, in.CategoryID)
			if err != nil {
				return err
			}
			if cat == nil {
				return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, in.CategoryID)
			}
			product.CategoryID, product.CategoryName = cat.ID, cat.Name
		}
		if err := r.Products.Create(ctx, product); err != nil {
			return err
		}
		_, err := uc.recorder.RecordInTx(ctx, r.PriceHistory, product.ID, nil, product.Prices(), ReasonInitialPrice, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update aplica una actualización parcial con la fila bloqueada, de modo que una edición de stock
// se serializa con las ventas en curso. Si cambia costo o precio agrega un registro al historial.
func (uc *ProductUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Stock != nil && *in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock negativo", domain.ErrInvalidInput)
	}
	var product *entity.Product
	err := uc.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		locked, err := r.Products.GetManyForUpdate(ctx, []string{id})
		if err != nil {
			return err
		}
		p, ok := locked[id]
		if !ok {
			return domain.ErrNotFound
		}
		before := p.Prices()

		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.Cost != nil {
			p.Cost = *in.Cost
		}
		if in.Price != nil {
			p.Price = *in.Price
		}
		if err := checkMoney(p.Cost, p.Price); err != nil {
			return err
		}
		if in.Stock != nil {
			p.Stock = *in.Stock
		}
		if in.ImageURL != nil {
			p.ImageURL = *in.ImageURL
		}
		if in.CategoryID != nil && *in.CategoryID != p.CategoryID {
			p.CategoryID, p.CategoryName = "", ""
			if *in.CategoryID != "" {
				cat, err := r.Categories.GetByID(ctx, *in.CategoryID)
				if err != nil {
					return err
				}
				if cat == nil {
					return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, *in.CategoryID)
				}
				p.CategoryID, p.CategoryName = cat.ID, cat.Name
			}
		}
		p.UpdatedAt = time.Now().UTC()
		if err := r.Products.Update(ctx, p); err != nil {
			return err
		}

		reason := in.PriceChangeReason
		if reason == "" {
			reason = ReasonPriceUpdate
		}
		if _, err := uc.recorder.RecordInTx(ctx, r.PriceHistory, p.ID, &before, p.Prices(), reason, actorID); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros de categoría y stock.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ListProductsRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, entity.ProductFilter{
		CategoryID: in.CategoryID,
		InStock:    in.InStock,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Delete elimina un producto. Las ventas históricas conservan su foto de nombre y precio.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func checkMoney(cost, price decimal.Decimal) error {
	if cost.IsNegative() || price.IsNegative() {
		return fmt.Errorf("%w: costo y precio deben ser >= 0", domain.ErrInvalidInput)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Cost:         p.Cost,
		Price:        p.Price,
		Stock:        p.Stock,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		ImageURL:     p.ImageURL,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
