package repository

//go:generate mockgen -source=price_history_repository.go -destination=mocks/price_history_repository_mock.go -package=mocks

import (
	"context"

	"github.com/npochettino/sales-management-api/internal/domain/entity"
)

// PriceHistoryRepository registros de precio: solo alta y lectura.
type PriceHistoryRepository interface {
	Create(ctx context.Context, entry *entity.PriceHistory) error
	// ListByProduct más reciente primero.
	ListByProduct(ctx context.Context, productID string) ([]*entity.PriceHistory, error)
}
