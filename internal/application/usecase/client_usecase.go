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

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	uow  repository.UnitOfWork
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(uow repository.UnitOfWork, repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{uow: uow, repo: repo}
}

// Create crea un cliente. Devuelve ErrDuplicate si el email ya está registrado.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe un cliente con el email %s", domain.ErrDuplicate, email)
	}
	now := time.Now().UTC()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// Update actualización parcial. Cambiar a un email de otro cliente devuelve ErrDuplicate.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		client.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != client.Email {
			other, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != client.ID {
				return nil, fmt.Errorf("%w: ya existe un cliente con el email %s", domain.ErrDuplicate, email)
			}
		}
		client.Email = email
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	client.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List busca por nombre o email.
func (uc *ClientUseCase) List(ctx context.Context, in dto.ListClientsRequest) (*dto.ClientListResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, entity.ClientFilter{Search: in.Search, Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}, nil
}

// Delete elimina un cliente sin ventas. El conteo y el borrado van en la misma unidad de trabajo.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return uc.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		n, err := r.Sales.CountByClient(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.NewInvalidState(fmt.Sprintf("el cliente tiene %d ventas asociadas y no se puede eliminar", n))
		}
		ok, err := r.Clients.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return nil
	})
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
