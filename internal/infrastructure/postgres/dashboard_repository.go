package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el dashboard.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del dashboard.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

func (r *DashboardRepo) count(ctx context.Context, table string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard.count %s: %w", table, err)
	}
	return n, nil
}

func (r *DashboardRepo) CountProducts(ctx context.Context) (int, error) {
	return r.count(ctx, "products")
}

func (r *DashboardRepo) CountClients(ctx context.Context) (int, error) {
	return r.count(ctx, "clients")
}

func (r *DashboardRepo) LowStockProducts(ctx context.Context, threshold, limit int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE stock < $1 ORDER BY stock, name LIMIT $2`,
		threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.LowStockProducts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("dashboard.LowStockProducts scan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SalesMetrics usa COALESCE para devolver cero si el período no tiene ventas.
func (r *DashboardRepo) SalesMetrics(ctx context.Context, from, to time.Time) (repository.SalesMetrics, error) {
	const query = `
	SELECT
	    COUNT(*),
	    COALESCE(SUM(total), 0)
	FROM sales
	WHERE status <> 'cancelled'
	  AND created_at >= $1
	  AND created_at <  $2`

	var m repository.SalesMetrics
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&m.Count, &m.Revenue); err != nil {
		return repository.SalesMetrics{}, fmt.Errorf("dashboard.SalesMetrics: %w", err)
	}
	return m, nil
}

// TopProducts expande las líneas JSONB de cada venta y agrupa por producto.
func (r *DashboardRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProduct, error) {
	const query = `
	SELECT
	    item->>'productId'                                                       AS product_id,
	    (ARRAY_AGG(item->>'productName' ORDER BY s.created_at DESC))[1]          AS product_name,
	    SUM((item->>'quantity')::INTEGER)                                        AS quantity,
	    SUM((item->>'subtotal')::NUMERIC)                                        AS revenue
	FROM sales s
	CROSS JOIN LATERAL jsonb_array_elements(s.items) AS item
	WHERE s.status <> 'cancelled'
	  AND s.created_at >= $1
	  AND s.created_at <  $2
	GROUP BY item->>'productId'
	ORDER BY revenue DESC, product_id
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.TopProducts: %w", err)
	}
	defer rows.Close()

	results := []repository.TopProduct{}
	for rows.Next() {
		var t repository.TopProduct
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.Quantity, &t.Revenue); err != nil {
			return nil, fmt.Errorf("dashboard.TopProducts scan: %w", err)
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dashboard.TopProducts rows: %w", err)
	}
	return results, nil
}
