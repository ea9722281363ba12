package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, client_id, items, payment_methods, total, status, created_at, updated_at`

// SaleRepo ventas sobre PostgreSQL. Líneas y pagos viven en columnas JSONB de la misma fila,
// así la venta se escribe y se borra como una unidad.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

type saleItemRow struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type paymentRow struct {
	Type      entity.PaymentType `json:"type"`
	Amount    decimal.Decimal    `json:"amount"`
	Reference string             `json:"reference,omitempty"`
}

func encodeLines(sale *entity.Sale) (items, payments []byte, err error) {
	ir := make([]saleItemRow, len(sale.Items))
	for i, it := range sale.Items {
		ir[i] = saleItemRow(it)
	}
	pr := make([]paymentRow, len(sale.PaymentMethods))
	for i, pm := range sale.PaymentMethods {
		pr[i] = paymentRow(pm)
	}
	if items, err = json.Marshal(ir); err != nil {
		return nil, nil, err
	}
	if payments, err = json.Marshal(pr); err != nil {
		return nil, nil, err
	}
	return items, payments, nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var (
		s                entity.Sale
		itemsRaw, payRaw []byte
		status           string
		itemRows         []saleItemRow
		payRows          []paymentRow
	)
	if err := row.Scan(&s.ID, &s.ClientID, &itemsRaw, &payRaw, &s.Total, &status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsRaw, &itemRows); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if err := json.Unmarshal(payRaw, &payRows); err != nil {
		return nil, fmt.Errorf("decode payment methods: %w", err)
	}
	s.Status = entity.SaleStatus(status)
	s.Items = make([]entity.SaleItem, len(itemRows))
	for i, it := range itemRows {
		s.Items[i] = entity.SaleItem(it)
	}
	s.PaymentMethods = make([]entity.PaymentMethod, len(payRows))
	for i, pm := range payRows {
		s.PaymentMethods[i] = entity.PaymentMethod(pm)
	}
	return &s, nil
}

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	items, payments, err := encodeLines(sale)
	if err != nil {
		return fmt.Errorf("encode sale: %w", err)
	}
	_, err = r.q.Exec(ctx,
		`INSERT INTO sales (`+saleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sale.ID, sale.ClientID, items, payments, sale.Total, string(sale.Status), sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) get(ctx context.Context, query, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) UpdateStatus(ctx context.Context, id string, status entity.SaleStatus) error {
	cmd, err := r.q.Exec(ctx, `UPDATE sales SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra por cliente, estado y rango de fechas (ambos extremos inclusive), más nuevas primero.
func (r *SaleRepo) List(ctx context.Context, filter entity.SaleFilter) ([]*entity.Sale, error) {
	var w whereBuilder
	if filter.ClientID != "" {
		w.add("client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		w.add("status = ?", string(filter.Status))
	}
	if filter.StartDate != nil {
		w.add("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		w.add("created_at <= ?", *filter.EndDate)
	}
	query := `SELECT ` + saleColumns + ` FROM sales` + w.String() + ` ORDER BY created_at DESC, id` + w.page(filter.Limit, filter.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SaleRepo) CountByClient(ctx context.Context, clientID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM sales WHERE client_id = $1`, clientID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales by client: %w", err)
	}
	return n, nil
}
