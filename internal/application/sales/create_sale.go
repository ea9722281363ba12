// Package sales contiene los casos de uso de ventas: alta transaccional, consulta,
// cambio de estado, baja con reposición de stock y comprobante PDF.
package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
	"github.com/npochettino/sales-management-api/internal/domain/sales"
	"github.com/npochettino/sales-management-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// CreateSaleUseCase crea una venta y descuenta el stock en una sola unidad de trabajo.
type CreateSaleUseCase struct {
	uow repository.UnitOfWork
	log *logger.Logger
	now func() time.Time
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(uow repository.UnitOfWork, log *logger.Logger) *CreateSaleUseCase {
	return &CreateSaleUseCase{uow: uow, log: log, now: time.Now}
}

// CreateSale valida cliente, líneas, stock y pagos y, solo si todo es correcto, descuenta el stock
// de cada producto y guarda la venta. Lecturas y escrituras ocurren en la misma transacción:
// si algo falla no queda ningún efecto.
//
// Errores:
//   - domain.ErrNotFound              cliente o producto inexistente.
//   - domain.ErrInvalidInput          sin líneas, sin pagos, cantidad o pago inválido.
//   - *domain.InsufficientStockError  cantidad mayor al stock (nombra el producto).
//   - *domain.PaymentMismatchError    |pagos − total| > 0.01.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.ClientID == "" {
		return nil, fmt.Errorf("%w: clientId es obligatorio", domain.ErrInvalidInput)
	}
	status := entity.SaleStatusCompleted
	if in.Status != "" {
		status = entity.SaleStatus(in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, in.Status)
		}
	}
	var sale *entity.Sale
	err := uc.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		// 1) Cliente
		client, err := r.Clients.GetByID(ctx, in.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.ClientID)
		}

		// 2) Líneas y pagos no vacíos
		if len(in.Items) == 0 {
			return fmt.Errorf("%w: la venta debe tener al menos un ítem", domain.ErrInvalidInput)
		}
		payments, err := toPayments(in.PaymentMethods)
		if err != nil {
			return err
		}
		if len(payments) == 0 {
			return fmt.Errorf("%w: la venta debe tener al menos un medio de pago", domain.ErrInvalidInput)
		}

		// 3) Bloquear productos y validar stock línea por línea
		products, err := r.Products.GetManyForUpdate(ctx, productIDs(in.Items))
		if err != nil {
			return err
		}
		tracker := sales.NewStockTracker()
		items := make([]entity.SaleItem, 0, len(in.Items))
		for _, line := range in.Items {
			if line.Quantity <= 0 {
				return fmt.Errorf("%w: cantidad inválida para el producto %s", domain.ErrInvalidInput, line.ProductID)
			}
			product, ok := products[line.ProductID]
			if !ok {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, line.ProductID)
			}
			if err := tracker.Reserve(product, line.Quantity); err != nil {
				return err
			}
			// 4) Foto de nombre y precio al momento de vender
			items = append(items, entity.SaleItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.Price,
				Subtotal:    sales.LineSubtotal(product.Price, line.Quantity),
			})
		}
		total := sales.ItemsTotal(items)

		// 5) Conciliación de pagos
		if err := sales.ReconcilePayments(payments, total); err != nil {
			return err
		}

		// Efectos: descuento condicional de stock y alta de la venta
		for _, it := range items {
			ok, err := r.Products.DecrementStock(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				p := products[it.ProductID]
				return &domain.InsufficientStockError{
					ProductID: p.ID, ProductName: p.Name, Requested: it.Quantity, Available: p.Stock,
				}
			}
		}

		now := uc.now().UTC()
		sale = &entity.Sale{
			ID:             uuid.New().String(),
			ClientID:       client.ID,
			Items:          items,
			PaymentMethods: payments,
			Total:          total,
			Status:         status,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return r.Sales.Create(ctx, sale)
	})
	if err != nil {
		uc.logRejected(in, err)
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("client_id", sale.ClientID).
		Int("items", len(sale.Items)).
		Str("total", sale.Total.String()).
		Str("status", string(sale.Status)).
		Msg("venta registrada")
	return ToSaleResponse(sale, nil), nil
}

func (uc *CreateSaleUseCase) logRejected(in dto.CreateSaleRequest, err error) {
	ev := uc.log.Debug()
	if domain.Code(err) == domain.CodeInternal {
		ev = uc.log.Error()
	}
	ev = ev.Err(err).Str("client_id", in.ClientID).Str("code", domain.Code(err))
	var ise *domain.InsufficientStockError
	if errors.As(err, &ise) {
		ev = ev.Str("product_id", ise.ProductID).Int("requested", ise.Requested).Int("available", ise.Available)
	}
	ev.Msg("venta rechazada")
}

func toPayments(in []dto.PaymentMethodRequest) ([]entity.PaymentMethod, error) {
	out := make([]entity.PaymentMethod, 0, len(in))
	for _, p := range in {
		t := entity.PaymentType(p.Type)
		if !t.Valid() {
			return nil, fmt.Errorf("%w: medio de pago %q desconocido", domain.ErrInvalidInput, p.Type)
		}
		if p.Amount.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: monto de pago negativo", domain.ErrInvalidInput)
		}
		out = append(out, entity.PaymentMethod{Type: t, Amount: p.Amount, Reference: p.Reference})
	}
	return out, nil
}

// productIDs ids distintos en orden de aparición.
func productIDs(items []dto.SaleItemRequest) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}
