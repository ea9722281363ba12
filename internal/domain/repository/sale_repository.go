package repository

//go:generate mockgen -source=sale_repository.go -destination=mocks/sale_repository_mock.go -package=mocks

import (
	"context"

	"github.com/npochettino/sales-management-api/internal/domain/entity"
)

// SaleRepository persiste la venta junto con sus líneas y pagos como una unidad.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate igual que GetByID pero bloquea la venta hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	UpdateStatus(ctx context.Context, id string, status entity.SaleStatus) error
	Delete(ctx context.Context, id string) error
	// List ordena por fecha de creación descendente.
	List(ctx context.Context, filter entity.SaleFilter) ([]*entity.Sale, error)
	CountByClient(ctx context.Context, clientID string) (int, error)
}
