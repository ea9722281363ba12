package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
	"github.com/npochettino/sales-management-api/internal/domain/sales"
	"github.com/npochettino/sales-management-api/pkg/logger"
)

// msgOnlyPendingDeletable motivo devuelto al intentar borrar una venta no pendiente.
const msgOnlyPendingDeletable = "solo se pueden eliminar ventas pendientes"

// SaleUseCase consulta, cambio de estado y baja de ventas.
type SaleUseCase struct {
	uow   repository.UnitOfWork
	repos repository.Repos
	log   *logger.Logger
	now   func() time.Time
}

// NewSaleUseCase construye el caso de uso. repos son los repositorios fuera de transacción.
func NewSaleUseCase(uow repository.UnitOfWork, repos repository.Repos, log *logger.Logger) *SaleUseCase {
	return &SaleUseCase{uow: uow, repos: repos, log: log, now: time.Now}
}

// GetSale devuelve la venta con su cliente adjunto. Si el cliente ya no existe, Client queda vacío.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	client, err := uc.repos.Clients.GetByID(ctx, sale.ClientID)
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale, client), nil
}

// ListSales lista ventas filtradas, más recientes primero.
func (uc *SaleUseCase) ListSales(ctx context.Context, in dto.ListSalesRequest) (*dto.SaleListResponse, error) {
	in.DefaultPage()
	if in.Status != "" && !entity.SaleStatus(in.Status).Valid() {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, in.Status)
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, fmt.Errorf("%w: endDate anterior a startDate", domain.ErrInvalidInput)
	}
	list, err := uc.repos.Sales.List(ctx, entity.SaleFilter{
		ClientID:  in.ClientID,
		Status:    entity.SaleStatus(in.Status),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}
	for _, s := range list {
		out.Items = append(out.Items, *ToSaleResponse(s, nil))
	}
	return out, nil
}

// UpdateStatus cambia solo el estado (y la fecha de actualización). No toca el stock.
// Una venta completada o cancelada es inmutable salvo su estado, y solo en los casos de
// sales.CanTransition: completed -> cancelled. Ninguna vuelve a pending ni sale de cancelled;
// esos pedidos devuelven ErrInvalidState.
func (uc *SaleUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateSaleStatusRequest) (*dto.SaleResponse, error) {
	to := entity.SaleStatus(in.Status)
	if !to.Valid() {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, in.Status)
	}
	var sale *entity.Sale
	err := uc.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		current, err := r.Sales.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if !sales.CanTransition(current.Status, to) {
			return domain.NewInvalidState(fmt.Sprintf("no se puede pasar una venta de %s a %s", current.Status, to))
		}
		if current.Status != to {
			if err := r.Sales.UpdateStatus(ctx, id, to); err != nil {
				return err
			}
		}
		sale, err = r.Sales.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("sale_id", id).Str("status", string(to)).Msg("estado de venta actualizado")
	return ToSaleResponse(sale, nil), nil
}

// DeleteSale elimina una venta pendiente y repone el stock de cada línea en la misma unidad de trabajo.
// Los productos que ya no existen se omiten. Una segunda llamada devuelve ErrNotFound sin tocar el stock.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, id string) error {
	var restored int
	err := uc.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		sale, err := r.Sales.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if !sales.CanDelete(sale) {
			return domain.NewInvalidState(msgOnlyPendingDeletable)
		}
		for _, it := range sale.Items {
			ok, err := r.Products.IncrementStock(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return err
			}
			if ok {
				restored++
			}
		}
		return r.Sales.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("sale_id", id).Int("lines_restored", restored).Msg("venta eliminada")
	return nil
}
