package postgres

import (
	"context"
	"fmt"

	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
)

var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

// PriceHistoryRepo registros de precio; la tabla es de solo inserción.
type PriceHistoryRepo struct {
	q Querier
}

// NewPriceHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceHistoryRepository(q Querier) *PriceHistoryRepo {
	return &PriceHistoryRepo{q: q}
}

func (r *PriceHistoryRepo) Create(ctx context.Context, e *entity.PriceHistory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO price_history (id, product_id, date, cost_before, cost_after, price_before, price_after, reason, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.ProductID, e.Date, e.CostBefore, e.CostAfter, e.PriceBefore, e.PriceAfter, e.Reason, e.UserID,
	)
	if err != nil {
		return fmt.Errorf("insert price history: %w", err)
	}
	return nil
}

func (r *PriceHistoryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.PriceHistory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, date, cost_before, cost_after, price_before, price_after, reason, user_id
		FROM price_history WHERE product_id = $1 ORDER BY date DESC, id DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceHistory
	for rows.Next() {
		var e entity.PriceHistory
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Date, &e.CostBefore, &e.CostAfter,
			&e.PriceBefore, &e.PriceAfter, &e.Reason, &e.UserID); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
