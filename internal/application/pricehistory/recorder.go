// Package pricehistory registra los cambios de costo y precio de los productos.
package pricehistory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
)

// Recorder agrega registros al historial de precios y los consulta.
type Recorder struct {
	historyRepo repository.PriceHistoryRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewRecorder construye el recorder con los repos fuera de transacción.
func NewRecorder(historyRepo repository.PriceHistoryRepository, productRepo repository.ProductRepository) *Recorder {
	return &Recorder{historyRepo: historyRepo, productRepo: productRepo, now: time.Now}
}

// RecordInTx agrega un registro usando el repo del caller (misma unidad de trabajo).
// before nil indica el primer registro del producto. Si before está presente y ni el costo
// ni el precio cambiaron no se escribe nada y devuelve (nil, nil).
func (r *Recorder) RecordInTx(
	ctx context.Context,
	historyRepo repository.PriceHistoryRepository,
	productID string,
	before *entity.PriceSnapshot,
	after entity.PriceSnapshot,
	reason, actorID string,
) (*entity.PriceHistory, error) {
	if before != nil && before.Cost.Equal(after.Cost) && before.Price.Equal(after.Price) {
		return nil, nil
	}
	entry := &entity.PriceHistory{
		ID:         uuid.New().String(),
		ProductID:  productID,
		Date:       r.now().UTC(),
		CostAfter:  after.Cost,
		PriceAfter: after.Price,
		Reason:     reason,
		UserID:     actorID,
	}
	if before != nil {
		cost, price := before.Cost, before.Price
		entry.CostBefore = &cost
		entry.PriceBefore = &price
	}
	if err := historyRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("registrar historial de precios: %w", err)
	}
	return entry, nil
}

// ListByProduct historial del producto, más reciente primero. ErrNotFound si el producto no existe.
func (r *Recorder) ListByProduct(ctx context.Context, productID string) ([]dto.PriceHistoryResponse, error) {
	p, err := r.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	list, err := r.historyRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, ToResponse(h))
	}
	return out, nil
}

// ToResponse convierte un registro a su DTO.
func ToResponse(h *entity.PriceHistory) dto.PriceHistoryResponse {
	return dto.PriceHistoryResponse{
		ID:          h.ID,
		ProductID:   h.ProductID,
		Date:        h.Date,
		CostBefore:  h.CostBefore,
		CostAfter:   h.CostAfter,
		PriceBefore: h.PriceBefore,
		PriceAfter:  h.PriceAfter,
		Reason:      h.Reason,
		UserID:      h.UserID,
	}
}
