package repository

//go:generate mockgen -source=product_repository.go -destination=mocks/product_repository_mock.go -package=mocks

import (
	"context"

	"github.com/npochettino/sales-management-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetManyForUpdate bloquea las filas de los ids pedidos (en orden de id para evitar deadlocks)
	// y las devuelve indexadas por ID. Los ids inexistentes simplemente no aparecen en el mapa.
	GetManyForUpdate(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// DecrementStock resta quantity solo si stock >= quantity. Devuelve false si no se aplicó.
	DecrementStock(ctx context.Context, id string, quantity int) (bool, error)
	// IncrementStock suma quantity. Devuelve false si el producto ya no existe.
	IncrementStock(ctx context.Context, id string, quantity int) (bool, error)
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	// UpdateCategoryName propaga el nuevo nombre al campo desnormalizado de los productos.
	UpdateCategoryName(ctx context.Context, categoryID, name string) error
}
