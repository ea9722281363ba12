package repository

import (
	"context"

	"github.com/npochettino/sales-management-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByEmail(ctx context.Context, email string) (*entity.Client, error)
	List(ctx context.Context, filter entity.ClientFilter) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) (bool, error)
}
